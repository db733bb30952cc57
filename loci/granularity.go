package loci

import (
	"errors"
	"fmt"
)

// ErrUnknownGranularity is returned by ParseGranularity for unknown names.
var ErrUnknownGranularity = errors.New("unknown granularity")

// Granularity names a selection extension level.
type Granularity string

const (
	GranularityElement   Granularity = "element"
	GranularityResidue   Granularity = "residue"
	GranularityChain     Granularity = "chain"
	GranularityEntity    Granularity = "entity"
	GranularityModel     Granularity = "model"
	GranularityOperator  Granularity = "operator"
	GranularityInstances Granularity = "instances"
	GranularityStructure Granularity = "structure"
)

// Granularities lists every valid granularity.
var Granularities = []Granularity{
	GranularityElement, GranularityResidue, GranularityChain, GranularityEntity,
	GranularityModel, GranularityOperator, GranularityInstances, GranularityStructure,
}

// ParseGranularity parses a granularity name.
func ParseGranularity(s string) (Granularity, error) {
	for _, g := range Granularities {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
}

// Extend grows l to granularity g. Unknown granularities return l unchanged.
func Extend(l Loci, g Granularity) Loci {
	switch g {
	case GranularityResidue:
		return ExtendToWholeResidues(l, false)
	case GranularityChain:
		return ExtendToWholeChains(l)
	case GranularityEntity:
		return ExtendToWholeEntities(l)
	case GranularityModel:
		return ExtendToWholeModels(l)
	case GranularityOperator:
		return ExtendToWholeOperators(l)
	case GranularityInstances:
		return ExtendToAllInstances(l)
	case GranularityStructure:
		if l.IsEmpty() {
			return l
		}
		return All(l.structure)
	}
	return l
}
