package molsel

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hupe1980/molsel/expr"
	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/loci"
	"github.com/hupe1980/molsel/query"
	"github.com/hupe1980/molsel/structure"
)

// Hit is one element returned by a spatial query.
type Hit struct {
	UnitID int `json:"unit_id"`
	// Element is the model element index.
	Element         int     `json:"element"`
	SourceIndex     int     `json:"source_index"`
	SquaredDistance float64 `json:"squared_distance"`
}

// Explorer answers spatial queries and selection operations over one
// structure. It is safe for concurrent use.
type Explorer struct {
	structure *structure.Structure
	lookup    *structure.Lookup3D
	contexts  sync.Pool
	opts      options
}

// New creates an Explorer over s. The structure spatial index is built
// eagerly.
func New(s *structure.Structure, optFns ...Option) (*Explorer, error) {
	if s == nil {
		return nil, ErrNilStructure
	}
	o := applyOptions(optFns)
	ex := &Explorer{
		structure: s,
		lookup:    s.Lookup3D(),
		opts:      o,
	}
	ex.contexts.New = func() any { return structure.NewQueryContext() }
	o.logger.WithStructure(len(s.Units()), s.ElementCount()).Info("explorer ready")
	return ex, nil
}

// FromUnits builds a structure from units and creates an Explorer over it.
func FromUnits(units []*structure.Unit, optFns ...Option) (*Explorer, error) {
	s, err := structure.New(units)
	if err != nil {
		return nil, translateError(err)
	}
	return New(s, optFns...)
}

// Structure returns the explored structure.
func (ex *Explorer) Structure() *structure.Structure { return ex.structure }

// Boundary returns the structure boundary.
func (ex *Explorer) Boundary() geom.Boundary { return ex.lookup.Boundary() }

func (ex *Explorer) getContext() *structure.QueryContext {
	return ex.contexts.Get().(*structure.QueryContext)
}

func (ex *Explorer) putContext(c *structure.QueryContext) { ex.contexts.Put(c) }

func validRadius(r float64) bool { return r >= 0 && !math.IsNaN(r) }

func hits(res *structure.Result) []Hit {
	out := make([]Hit, res.Count)
	for i := range res.Count {
		loc := res.Location(i)
		out[i] = Hit{
			UnitID:          loc.Unit.ID(),
			Element:         loc.Element,
			SourceIndex:     loc.Unit.SourceIndex(loc.Element),
			SquaredDistance: res.SquaredDistances[i],
		}
	}
	return out
}

// Within returns every element whose sphere intersects the ball of radius
// around center, in no particular order.
func (ex *Explorer) Within(ctx context.Context, center geom.Vec3, radius float64) ([]Hit, error) {
	start := time.Now()
	out, err := ex.within(ctx, center, radius)
	ex.opts.metricsCollector.RecordFind(len(out), time.Since(start), err)
	ex.opts.logger.LogFind(ctx, center, radius, len(out), err)
	return out, err
}

func (ex *Explorer) within(ctx context.Context, center geom.Vec3, radius float64) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validRadius(radius) {
		return nil, ErrInvalidRadius
	}
	qc := ex.getContext()
	defer ex.putContext(qc)
	return hits(ex.lookup.Find(center[0], center[1], center[2], radius, qc)), nil
}

// Any reports whether any element lies within radius of center.
func (ex *Explorer) Any(ctx context.Context, center geom.Vec3, radius float64) (bool, error) {
	start := time.Now()
	found, err := ex.check(ctx, center, radius)
	ex.opts.metricsCollector.RecordCheck(found, time.Since(start), err)
	ex.opts.logger.LogCheck(ctx, center, radius, found, err)
	return found, err
}

func (ex *Explorer) check(ctx context.Context, center geom.Vec3, radius float64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !validRadius(radius) {
		return false, ErrInvalidRadius
	}
	qc := ex.getContext()
	defer ex.putContext(qc)
	return ex.lookup.Check(center[0], center[1], center[2], radius, qc), nil
}

// Nearest returns up to k elements closest to center, ascending by squared
// sphere distance.
func (ex *Explorer) Nearest(ctx context.Context, center geom.Vec3, k int) ([]Hit, error) {
	start := time.Now()
	out, err := ex.nearest(ctx, center, k)
	ex.opts.metricsCollector.RecordNearest(k, len(out), time.Since(start), err)
	ex.opts.logger.LogNearest(ctx, center, k, len(out), err)
	return out, err
}

func (ex *Explorer) nearest(ctx context.Context, center geom.Vec3, k int) ([]Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, ErrInvalidK
	}
	qc := ex.getContext()
	defer ex.putContext(qc)
	return hits(ex.lookup.Nearest(center[0], center[1], center[2], k, qc)), nil
}

// SelectWithin selects the elements within radius of center and extends the
// selection to granularity g.
func (ex *Explorer) SelectWithin(ctx context.Context, center geom.Vec3, radius float64, g loci.Granularity) (loci.Loci, error) {
	if err := ctx.Err(); err != nil {
		return loci.None(ex.structure), err
	}
	if !validRadius(radius) {
		return loci.None(ex.structure), ErrInvalidRadius
	}
	qc := ex.getContext()
	b := loci.NewBuilder(ex.structure)
	ex.lookup.FindIntoBuilder(center[0], center[1], center[2], radius, b, qc)
	ex.putContext(qc)
	return ex.extend(ctx, b.Build(), g)
}

// Extend grows l to the named granularity.
func (ex *Explorer) Extend(ctx context.Context, l loci.Loci, granularity string) (loci.Loci, error) {
	g, err := loci.ParseGranularity(granularity)
	if err != nil {
		ex.opts.logger.LogExtend(ctx, granularity, l.Size(), l.Size(), err)
		return l, err
	}
	return ex.extend(ctx, l, g)
}

func (ex *Explorer) extend(ctx context.Context, l loci.Loci, g loci.Granularity) (loci.Loci, error) {
	start := time.Now()
	out := loci.Extend(l, g)
	ex.opts.metricsCollector.RecordExtend(string(g), l.Size(), out.Size(), time.Since(start))
	ex.opts.logger.LogExtend(ctx, string(g), l.Size(), out.Size(), nil)
	return out, nil
}

// Expression encodes l as an expression.
func (ex *Explorer) Expression(l loci.Loci) expr.Expression {
	return loci.ToExpression(loci.Remap(l, ex.structure))
}

// Encode encodes the expression of l with the configured codec.
func (ex *Explorer) Encode(l loci.Loci) ([]byte, error) {
	return ex.opts.codec.Marshal(ex.Expression(l))
}

// Query compiles e and evaluates it on the structure.
func (ex *Explorer) Query(ctx context.Context, e expr.Expression) (loci.Loci, error) {
	return ex.query(ctx, e, 0)
}

// Decode decodes an expression written by Encode and evaluates it.
func (ex *Explorer) Decode(ctx context.Context, data []byte) (loci.Loci, error) {
	start := time.Now()
	var e expr.Expression
	if err := ex.opts.codec.Unmarshal(data, &e); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidQuery, err)
		ex.opts.metricsCollector.RecordQuery(0, time.Since(start), err)
		ex.opts.logger.LogQuery(ctx, len(data), 0, err)
		return loci.None(ex.structure), err
	}
	return ex.query(ctx, e, len(data))
}

func (ex *Explorer) query(ctx context.Context, e expr.Expression, size int) (loci.Loci, error) {
	start := time.Now()
	l, err := ex.compileAndEvaluate(ctx, e)
	ex.opts.metricsCollector.RecordQuery(l.Size(), time.Since(start), err)
	ex.opts.logger.LogQuery(ctx, size, l.Size(), err)
	return l, err
}

func (ex *Explorer) compileAndEvaluate(ctx context.Context, e expr.Expression) (loci.Loci, error) {
	if err := ctx.Err(); err != nil {
		return loci.None(ex.structure), err
	}
	q, err := query.Compile(e)
	if err != nil {
		return loci.None(ex.structure), translateError(err)
	}
	return q.Evaluate(ex.structure), nil
}
