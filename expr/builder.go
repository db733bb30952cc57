package expr

// Empty selects nothing.
func Empty() Expression { return Apply(SymEmpty) }

// AtomGroupsArgs are the optional tests of AtomGroups. Unset tests accept all.
type AtomGroupsArgs struct {
	AtomTest   *Expression
	ChainTest  *Expression
	EntityTest *Expression
}

// AtomGroups selects the atoms passing all given tests.
func AtomGroups(args AtomGroupsArgs) Expression {
	named := map[string]Expression{}
	if args.AtomTest != nil {
		named[ArgAtomTest] = *args.AtomTest
	}
	if args.ChainTest != nil {
		named[ArgChainTest] = *args.ChainTest
	}
	if args.EntityTest != nil {
		named[ArgEntityTest] = *args.EntityTest
	}
	return ApplyNamed(SymAtomGroups, named)
}

// Ptr returns a pointer to e, for AtomGroupsArgs.
func Ptr(e Expression) *Expression { return &e }

// Union collapses the groups of a selection into one.
func Union(e Expression) Expression { return Apply(SymUnion, e) }

// Merge combines several selections.
func Merge(es ...Expression) Expression { return Apply(SymMerge, es...) }

func And(es ...Expression) Expression { return Apply(SymAnd, es...) }
func Or(es ...Expression) Expression  { return Apply(SymOr, es...) }

// Eq tests a == b.
func Eq(a, b Expression) Expression { return Apply(SymEq, a, b) }

// InRange tests lo <= x <= hi.
func InRange(x Expression, lo, hi int) Expression { return Apply(SymInRange, x, Int(lo), Int(hi)) }

// SetHas tests membership of x in set.
func SetHas(set, x Expression) Expression { return Apply(SymSetHas, set, x) }

// IntSet is a set literal of ints.
func IntSet(values ...int) Expression {
	args := make([]Expression, len(values))
	for i, v := range values {
		args[i] = Int(v)
	}
	return Apply(SymSet, args...)
}

// StrSet is a set literal of strings.
func StrSet(values ...string) Expression {
	args := make([]Expression, len(values))
	for i, v := range values {
		args[i] = Str(v)
	}
	return Apply(SymSet, args...)
}

func OperatorName() Expression { return Apply(SymOperatorName) }
func SourceIndex() Expression  { return Apply(SymSourceIndex) }
func ModelLabel() Expression   { return Apply(SymModelLabel) }
func ModelIndex() Expression   { return Apply(SymModelIndex) }
func EntityID() Expression     { return Apply(SymEntityID) }
func UnitID() Expression       { return Apply(SymUnitID) }
