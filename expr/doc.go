// Package expr defines a small declarative selection language as a
// serializable tree of symbol applications over int and string literals.
//
//	e := expr.Union(expr.AtomGroups(expr.AtomGroupsArgs{
//	    AtomTest:  expr.InRange(expr.SourceIndex(), 10, 40),
//	    ChainTest: expr.Eq(expr.OperatorName(), expr.Str("1_555")),
//	}))
//	fmt.Println(e) // (struct.modifier.union (struct.generator.atom-groups ...))
//
// The query package compiles expressions back into selections.
package expr
