package expr

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Expression is either a literal (Int or Str set, Head empty) or the
// application of Head to positional Args or Named arguments.
type Expression struct {
	Head  string                `json:"head,omitempty"`
	Args  []Expression          `json:"args,omitempty"`
	Named map[string]Expression `json:"named,omitempty"`
	Int   *int                  `json:"int,omitempty"`
	Str   *string               `json:"str,omitempty"`
}

// Int returns an int literal.
func Int(v int) Expression { return Expression{Int: &v} }

// Str returns a string literal.
func Str(v string) Expression { return Expression{Str: &v} }

// Apply returns the application of head to positional args.
func Apply(head string, args ...Expression) Expression {
	return Expression{Head: head, Args: args}
}

// ApplyNamed returns the application of head to named args.
func ApplyNamed(head string, named map[string]Expression) Expression {
	return Expression{Head: head, Named: named}
}

// IsLiteral reports whether e is a literal.
func (e Expression) IsLiteral() bool { return e.Head == "" }

// Equal reports structural equality.
func (e Expression) Equal(o Expression) bool {
	if e.Head != o.Head || len(e.Args) != len(o.Args) || len(e.Named) != len(o.Named) {
		return false
	}
	if (e.Int == nil) != (o.Int == nil) || (e.Int != nil && *e.Int != *o.Int) {
		return false
	}
	if (e.Str == nil) != (o.Str == nil) || (e.Str != nil && *e.Str != *o.Str) {
		return false
	}
	for i := range e.Args {
		if !e.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	for k, v := range e.Named {
		w, ok := o.Named[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// String renders e as an s-expression. Named arguments are sorted by name.
func (e Expression) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e Expression) write(sb *strings.Builder) {
	switch {
	case e.Int != nil:
		sb.WriteString(strconv.Itoa(*e.Int))
		return
	case e.Str != nil:
		sb.WriteString(strconv.Quote(*e.Str))
		return
	case e.Head == "":
		sb.WriteString("()")
		return
	}
	sb.WriteByte('(')
	sb.WriteString(e.Head)
	for _, a := range e.Args {
		sb.WriteByte(' ')
		a.write(sb)
	}
	for _, k := range slices.Sorted(maps.Keys(e.Named)) {
		sb.WriteString(" :")
		sb.WriteString(k)
		sb.WriteByte(' ')
		e.Named[k].write(sb)
	}
	sb.WriteByte(')')
}
