package structure

// Kind is the closed set of unit element kinds.
type Kind uint8

const (
	// KindAtomic units hold atoms with residue and alternate-location data.
	KindAtomic Kind = iota
	// KindSpheres units hold coarse spheres, one per residue.
	KindSpheres
	// KindGaussians units hold coarse gaussians, one per residue.
	KindGaussians
)

func (k Kind) String() string {
	switch k {
	case KindAtomic:
		return "atomic"
	case KindSpheres:
		return "spheres"
	case KindGaussians:
		return "gaussians"
	}
	return "unknown"
}

// IsCoarse reports whether k is a coarse kind.
func (k Kind) IsCoarse() bool {
	switch k {
	case KindSpheres, KindGaussians:
		return true
	case KindAtomic:
		return false
	}
	return false
}

// Partitioning describes whether a chain is split across several units.
type Partitioning uint8

const (
	// Unordered units hold whole chains.
	Unordered Partitioning = iota
	// Partitioned units share a chain with the other units of their
	// ChainOperatorGroup.
	Partitioned
)

func (p Partitioning) String() string {
	if p == Partitioned {
		return "partitioned"
	}
	return "unordered"
}

// ChainOperatorGroup keys the units that together hold one placed chain group.
type ChainOperatorGroup struct {
	ChainGroupID int
	OperatorName string
}
