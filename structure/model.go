package structure

// Segmentation splits a contiguous element table into consecutive segments.
// Index maps element to segment; Offsets[s] and Offsets[s+1] bound segment s.
type Segmentation struct {
	Index   []int
	Offsets []int
}

// SegmentationOf derives offsets from a non-decreasing element to segment map
// whose segment ids are 0, 1, 2, ... without gaps.
func SegmentationOf(index []int) Segmentation {
	offsets := []int{0}
	for e := 1; e < len(index); e++ {
		if index[e] != index[e-1] {
			offsets = append(offsets, e)
		}
	}
	if len(index) > 0 {
		offsets = append(offsets, len(index))
	}
	return Segmentation{Index: index, Offsets: offsets}
}

// Count returns the number of segments.
func (s Segmentation) Count() int { return max(len(s.Offsets)-1, 0) }

// Range returns the element bounds [start, end) of segment seg.
func (s Segmentation) Range(seg int) (int, int) { return s.Offsets[seg], s.Offsets[seg+1] }

// AtomicHierarchy holds the per-atom tables of a model in file order.
type AtomicHierarchy struct {
	X, Y, Z []float64
	// AltIDs are alternate-location ids; "" is blank. May be nil.
	AltIDs []string
	// SourceIndex maps atom to its stable file index. Nil means identity.
	// Values must be in [0, 2^32).
	SourceIndex []int
	// Radius holds optional per-atom radii.
	Radius      []float64
	Residues    Segmentation
	Chains      Segmentation
	ChainEntity []int
}

// Len returns the number of atoms.
func (h *AtomicHierarchy) Len() int { return len(h.X) }

// CoarseHierarchy holds sphere or gaussian elements, one per residue.
type CoarseHierarchy struct {
	X, Y, Z     []float64
	Radius      []float64
	Chains      Segmentation
	ChainEntity []int
}

// Len returns the number of coarse elements.
func (h *CoarseHierarchy) Len() int { return len(h.X) }

// Model is a parsed model shared by reference between units and structures.
type Model struct {
	ID        string
	Label     string
	ModelNum  int
	EntityIDs []string
	Atomic    *AtomicHierarchy
	Spheres   *CoarseHierarchy
	Gaussians *CoarseHierarchy
}

func (m *Model) elementCount(kind Kind) (int, bool) {
	switch kind {
	case KindAtomic:
		if m.Atomic != nil {
			return m.Atomic.Len(), true
		}
	case KindSpheres:
		if m.Spheres != nil {
			return m.Spheres.Len(), true
		}
	case KindGaussians:
		if m.Gaussians != nil {
			return m.Gaussians.Len(), true
		}
	}
	return 0, false
}

func (m *Model) coarse(kind Kind) *CoarseHierarchy {
	if kind == KindGaussians {
		return m.Gaussians
	}
	return m.Spheres
}
