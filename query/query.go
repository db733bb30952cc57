package query

import (
	"github.com/hupe1980/molsel/expr"
	"github.com/hupe1980/molsel/loci"
	"github.com/hupe1980/molsel/orderedset"
	"github.com/hupe1980/molsel/structure"
)

// Query is a compiled selection expression. The zero value selects nothing.
type Query struct {
	eval func(s *structure.Structure) loci.Loci
}

// Evaluate runs q against s.
func (q Query) Evaluate(s *structure.Structure) loci.Loci {
	if q.eval == nil {
		return loci.None(s)
	}
	return q.eval(s)
}

// Compile turns e into a Query.
func Compile(e expr.Expression) (Query, error) {
	eval, err := compileSelection(e)
	if err != nil {
		return Query{}, err
	}
	return Query{eval: eval}, nil
}

type selection func(s *structure.Structure) loci.Loci

func compileSelection(e expr.Expression) (selection, error) {
	switch e.Head {
	case expr.SymEmpty:
		if len(e.Args) != 0 {
			return nil, &ErrArity{Symbol: e.Head, Want: "0", Got: len(e.Args)}
		}
		return loci.None, nil
	case expr.SymAtomGroups:
		return compileAtomGroups(e)
	case expr.SymUnion:
		// selections are already a single group
		if len(e.Args) != 1 {
			return nil, &ErrArity{Symbol: e.Head, Want: "1", Got: len(e.Args)}
		}
		return compileSelection(e.Args[0])
	case expr.SymMerge:
		if len(e.Args) == 0 {
			return nil, &ErrArity{Symbol: e.Head, Want: "at least 1", Got: 0}
		}
		parts := make([]selection, len(e.Args))
		for i, a := range e.Args {
			p, err := compileSelection(a)
			if err != nil {
				return nil, err
			}
			parts[i] = p
		}
		return func(s *structure.Structure) loci.Loci {
			out := parts[0](s)
			for _, p := range parts[1:] {
				out = loci.Union(out, p(s))
			}
			return out
		}, nil
	case "":
		return nil, &ErrType{Symbol: "query", Want: "selection", Got: describe(e)}
	}
	return nil, &ErrUnknownSymbol{Symbol: e.Head}
}

func compileAtomGroups(e expr.Expression) (selection, error) {
	if len(e.Args) != 0 {
		return nil, &ErrArity{Symbol: e.Head, Want: "0 positional", Got: len(e.Args)}
	}
	tests := map[string]test{}
	for name, arg := range e.Named {
		switch name {
		case expr.ArgAtomTest, expr.ArgChainTest, expr.ArgEntityTest:
		default:
			return nil, &ErrUnknownSymbol{Symbol: e.Head + " :" + name}
		}
		t, err := compileTest(arg)
		if err != nil {
			return nil, err
		}
		tests[name] = t
	}
	atomTest := tests[expr.ArgAtomTest]
	chainTest := tests[expr.ArgChainTest]
	entityTest := tests[expr.ArgEntityTest]

	return func(s *structure.Structure) loci.Loci {
		var elements []loci.Element
		for _, u := range s.Units() {
			var (
				positions []int
				chain     = -1
				chainOK   bool
			)
			for i, el := range u.Elements() {
				loc := structure.Location{Unit: u, Element: el}
				// entity and chain tests see the first element of each chain
				if c := u.ChainIndex(el); c != chain {
					chain = c
					chainOK = (entityTest == nil || entityTest(loc)) && (chainTest == nil || chainTest(loc))
				}
				if chainOK && (atomTest == nil || atomTest(loc)) {
					positions = append(positions, i)
				}
			}
			if len(positions) > 0 {
				elements = append(elements, loci.Element{Unit: u, Indices: orderedset.OfSortedArray(positions)})
			}
		}
		return loci.New(s, elements)
	}, nil
}
