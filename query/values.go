package query

import (
	"github.com/hupe1980/molsel/expr"
	"github.com/hupe1980/molsel/internal/bitmap"
	"github.com/hupe1980/molsel/internal/conv"
	"github.com/hupe1980/molsel/structure"
)

type valueType uint8

const (
	typeInt valueType = iota
	typeString
)

func (t valueType) String() string {
	if t == typeString {
		return "string"
	}
	return "int"
}

// value is an int or string valued function of a location.
type value struct {
	typ valueType
	i   func(loc structure.Location) int
	s   func(loc structure.Location) string
}

func intValue(f func(loc structure.Location) int) value {
	return value{typ: typeInt, i: f}
}

func stringValue(f func(loc structure.Location) string) value {
	return value{typ: typeString, s: f}
}

var properties = map[string]value{
	expr.SymOperatorName: stringValue(func(loc structure.Location) string { return loc.Unit.Operator().Name }),
	expr.SymSourceIndex:  intValue(func(loc structure.Location) int { return loc.Unit.SourceIndex(loc.Element) }),
	expr.SymModelLabel:   stringValue(func(loc structure.Location) string { return loc.Unit.Model().Label }),
	expr.SymModelIndex:   intValue(func(loc structure.Location) int { return loc.Unit.Model().ModelNum }),
	expr.SymEntityID:     stringValue(func(loc structure.Location) string { return loc.Unit.EntityKey(loc.Element) }),
	expr.SymUnitID:       intValue(func(loc structure.Location) int { return loc.Unit.ID() }),
}

func compileValue(e expr.Expression) (value, error) {
	switch {
	case e.Int != nil:
		v := *e.Int
		return intValue(func(structure.Location) int { return v }), nil
	case e.Str != nil:
		v := *e.Str
		return stringValue(func(structure.Location) string { return v }), nil
	}
	p, ok := properties[e.Head]
	if !ok {
		return value{}, &ErrUnknownSymbol{Symbol: e.Head}
	}
	if len(e.Args) != 0 {
		return value{}, &ErrArity{Symbol: e.Head, Want: "0", Got: len(e.Args)}
	}
	return p, nil
}

// set is a compiled set literal.
type set struct {
	typ  valueType
	ints *bitmap.Bitmap
	strs map[string]struct{}
}

func compileSet(e expr.Expression) (set, error) {
	if e.Head != expr.SymSet {
		return set{}, &ErrType{Symbol: expr.SymSetHas, Want: "set literal", Got: describe(e)}
	}
	if len(e.Args) == 0 {
		return set{typ: typeInt, ints: bitmap.New()}, nil
	}
	if e.Args[0].Str != nil {
		out := set{typ: typeString, strs: make(map[string]struct{}, len(e.Args))}
		for _, a := range e.Args {
			if a.Str == nil {
				return set{}, &ErrType{Symbol: expr.SymSet, Want: "string", Got: describe(a)}
			}
			out.strs[*a.Str] = struct{}{}
		}
		return out, nil
	}
	out := set{typ: typeInt, ints: bitmap.New()}
	for _, a := range e.Args {
		if a.Int == nil || !conv.FitsUint32(*a.Int) {
			return set{}, &ErrType{Symbol: expr.SymSet, Want: "uint32 int", Got: describe(a)}
		}
		out.ints.Add(*a.Int)
	}
	return out, nil
}

func describe(e expr.Expression) string {
	switch {
	case e.Int != nil:
		return "int"
	case e.Str != nil:
		return "string"
	case e.Head == "":
		return "empty expression"
	}
	return e.Head
}
