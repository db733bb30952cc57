package query

import "fmt"

// ErrUnknownSymbol indicates a symbol or named argument the compiler does not know.
type ErrUnknownSymbol struct {
	Symbol string
}

func (e *ErrUnknownSymbol) Error() string {
	return fmt.Sprintf("unknown symbol %q", e.Symbol)
}

// ErrArity indicates a symbol applied to the wrong number of arguments.
type ErrArity struct {
	Symbol string
	Want   string
	Got    int
}

func (e *ErrArity) Error() string {
	return fmt.Sprintf("%s: want %s arguments, got %d", e.Symbol, e.Want, e.Got)
}

// ErrType indicates an operand of the wrong type.
type ErrType struct {
	Symbol string
	Want   string
	Got    string
}

func (e *ErrType) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", e.Symbol, e.Want, e.Got)
}
