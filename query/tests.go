package query

import (
	"github.com/hupe1980/molsel/expr"
	"github.com/hupe1980/molsel/structure"
)

// test is a compiled boolean predicate over locations.
type test func(loc structure.Location) bool

func compileTest(e expr.Expression) (test, error) {
	switch e.Head {
	case expr.SymAnd, expr.SymOr:
		return compileLogic(e)
	case expr.SymEq:
		return compileEq(e)
	case expr.SymInRange:
		return compileInRange(e)
	case expr.SymSetHas:
		return compileSetHas(e)
	case "":
		return nil, &ErrType{Symbol: "test", Want: "boolean expression", Got: describe(e)}
	}
	return nil, &ErrUnknownSymbol{Symbol: e.Head}
}

func compileLogic(e expr.Expression) (test, error) {
	if len(e.Args) == 0 {
		return nil, &ErrArity{Symbol: e.Head, Want: "at least 1", Got: 0}
	}
	tests := make([]test, len(e.Args))
	for i, a := range e.Args {
		t, err := compileTest(a)
		if err != nil {
			return nil, err
		}
		tests[i] = t
	}
	if len(tests) == 1 {
		return tests[0], nil
	}
	if e.Head == expr.SymAnd {
		return func(loc structure.Location) bool {
			for _, t := range tests {
				if !t(loc) {
					return false
				}
			}
			return true
		}, nil
	}
	return func(loc structure.Location) bool {
		for _, t := range tests {
			if t(loc) {
				return true
			}
		}
		return false
	}, nil
}

func compileEq(e expr.Expression) (test, error) {
	if len(e.Args) != 2 {
		return nil, &ErrArity{Symbol: e.Head, Want: "2", Got: len(e.Args)}
	}
	a, err := compileValue(e.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := compileValue(e.Args[1])
	if err != nil {
		return nil, err
	}
	if a.typ != b.typ {
		return nil, &ErrType{Symbol: e.Head, Want: a.typ.String(), Got: b.typ.String()}
	}
	if a.typ == typeString {
		return func(loc structure.Location) bool { return a.s(loc) == b.s(loc) }, nil
	}
	return func(loc structure.Location) bool { return a.i(loc) == b.i(loc) }, nil
}

func compileInRange(e expr.Expression) (test, error) {
	if len(e.Args) != 3 {
		return nil, &ErrArity{Symbol: e.Head, Want: "3", Got: len(e.Args)}
	}
	vs := make([]value, 3)
	for i, a := range e.Args {
		v, err := compileValue(a)
		if err != nil {
			return nil, err
		}
		if v.typ != typeInt {
			return nil, &ErrType{Symbol: e.Head, Want: "int", Got: v.typ.String()}
		}
		vs[i] = v
	}
	x, lo, hi := vs[0].i, vs[1].i, vs[2].i
	return func(loc structure.Location) bool {
		v := x(loc)
		return v >= lo(loc) && v <= hi(loc)
	}, nil
}

func compileSetHas(e expr.Expression) (test, error) {
	if len(e.Args) != 2 {
		return nil, &ErrArity{Symbol: e.Head, Want: "2", Got: len(e.Args)}
	}
	s, err := compileSet(e.Args[0])
	if err != nil {
		return nil, err
	}
	v, err := compileValue(e.Args[1])
	if err != nil {
		return nil, err
	}
	if s.typ != v.typ && len(e.Args[0].Args) > 0 {
		return nil, &ErrType{Symbol: e.Head, Want: s.typ.String(), Got: v.typ.String()}
	}
	if v.typ == typeString {
		return func(loc structure.Location) bool {
			_, ok := s.strs[v.s(loc)]
			return ok
		}, nil
	}
	if s.ints == nil {
		return func(structure.Location) bool { return false }, nil
	}
	return func(loc structure.Location) bool { return s.ints.Contains(v.i(loc)) }, nil
}
