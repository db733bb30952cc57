package loci

import (
	"strconv"
	"strings"

	"github.com/hupe1980/molsel/expr"
	"github.com/hupe1980/molsel/internal/bitmap"
	"github.com/hupe1980/molsel/structure"
)

// RangeThreshold is the run length above which consecutive source indices
// are encoded as an inclusive range instead of set members.
const RangeThreshold = 12

type opGroup struct {
	opNames []string
	model   *structure.Model
	ranges  []int // lo, hi pairs
	set     []int
}

// ToExpression encodes l as a re-evaluatable expression over operator
// names and source indices. Operator groups with identical index encodings
// (and, with several models, the same model) share one atom-groups term.
func ToExpression(l Loci) expr.Expression {
	if l.IsEmpty() {
		return expr.Empty()
	}
	multiModel := len(l.structure.Models()) > 1

	type groupKey struct {
		op    string
		model *structure.Model
	}
	bySource := map[groupKey]*bitmap.Bitmap{}
	var keys []groupKey
	for _, e := range l.elements {
		if e.Indices.IsEmpty() {
			continue
		}
		key := groupKey{op: e.Unit.Operator().Name}
		if multiModel {
			key.model = e.Unit.Model()
		}
		xs, ok := bySource[key]
		if !ok {
			xs = bitmap.New()
			bySource[key] = xs
			keys = append(keys, key)
		}
		u, unitElements := e.Unit, e.Unit.Elements()
		e.Indices.ForEach(func(v, _ int) {
			xs.Add(u.SourceIndex(unitElements[v]))
		})
	}

	merged := map[string]*opGroup{}
	var groups []*opGroup
	for _, key := range keys {
		g := encodeGroup(bySource[key].AppendTo(nil))
		g.opNames = []string{key.op}
		g.model = key.model
		sig := g.signature()
		if prev, ok := merged[sig]; ok {
			prev.opNames = append(prev.opNames, key.op)
			continue
		}
		merged[sig] = g
		groups = append(groups, g)
	}

	queries := make([]expr.Expression, len(groups))
	for i, g := range groups {
		queries[i] = g.expression()
	}
	if len(queries) == 1 {
		return expr.Union(queries[0])
	}
	for i := range queries {
		queries[i] = expr.Union(queries[i])
	}
	return expr.Union(expr.Merge(queries...))
}

// encodeGroup splits sorted unique xs into long runs and loose members.
func encodeGroup(xs []int) *opGroup {
	g := &opGroup{}
	for i := 0; i < len(xs); {
		start := i
		for i++; i < len(xs) && xs[i-1]+1 == xs[i]; i++ {
		}
		if i-start > RangeThreshold {
			g.ranges = append(g.ranges, xs[start], xs[i-1])
			continue
		}
		g.set = append(g.set, xs[start:i]...)
	}
	return g
}

func (g *opGroup) signature() string {
	var sb strings.Builder
	for _, v := range g.ranges {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	for _, v := range g.set {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte(',')
	}
	if g.model != nil {
		sb.WriteByte('|')
		sb.WriteString(g.model.Label)
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(g.model.ModelNum))
	}
	return sb.String()
}

func (g *opGroup) expression() expr.Expression {
	var tests []expr.Expression
	if len(g.set) > 0 {
		tests = append(tests, expr.SetHas(expr.IntSet(g.set...), expr.SourceIndex()))
	}
	for r := 0; r < len(g.ranges); r += 2 {
		tests = append(tests, expr.InRange(expr.SourceIndex(), g.ranges[r], g.ranges[r+1]))
	}
	atomTest := tests[0]
	if len(tests) > 1 {
		atomTest = expr.Or(tests...)
	}

	chainTest := expr.Eq(expr.OperatorName(), expr.Str(g.opNames[0]))
	if len(g.opNames) > 1 {
		chainTest = expr.SetHas(expr.StrSet(g.opNames...), expr.OperatorName())
	}

	args := expr.AtomGroupsArgs{AtomTest: &atomTest, ChainTest: &chainTest}
	if g.model != nil {
		args.EntityTest = expr.Ptr(expr.And(
			expr.Eq(expr.ModelLabel(), expr.Str(g.model.Label)),
			expr.Eq(expr.ModelIndex(), expr.Int(g.model.ModelNum)),
		))
	}
	return expr.AtomGroups(args)
}
