package expr

// Symbols understood by the query compiler.
const (
	SymEmpty      = "struct.generator.empty"
	SymAtomGroups = "struct.generator.atom-groups"
	SymUnion      = "struct.modifier.union"
	SymMerge      = "struct.combinator.merge"

	SymAnd     = "core.logic.and"
	SymOr      = "core.logic.or"
	SymEq      = "core.rel.eq"
	SymInRange = "core.rel.in-range"
	SymSetHas  = "core.set.has"
	SymSet     = "core.type.set"

	SymOperatorName = "struct.atom-property.core.operator-name"
	SymSourceIndex  = "struct.atom-property.core.source-index"
	SymModelLabel   = "struct.atom-property.core.model-label"
	SymModelIndex   = "struct.atom-property.core.model-index"
	SymEntityID     = "struct.atom-property.core.entity-id"
	SymUnitID       = "struct.atom-property.core.unit-id"
)

// Named arguments of SymAtomGroups.
const (
	ArgAtomTest   = "atom-test"
	ArgChainTest  = "chain-test"
	ArgEntityTest = "entity-test"
)
