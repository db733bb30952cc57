// Package query compiles selection expressions into queries that evaluate
// to loci on a structure.
//
//	q, err := query.Compile(loci.ToExpression(sel))
//	if err != nil {
//	    return err
//	}
//	again := q.Evaluate(s)
//
// Compilation checks symbols, arity and operand types up front, so Evaluate
// itself never fails.
package query
