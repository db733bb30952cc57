package testutil

import (
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/structure"
)

// ModelSpec describes a synthetic atomic model on a lattice: chains along x,
// residues along y, atoms along z.
type ModelSpec struct {
	Chains           int
	ResiduesPerChain int
	AtomsPerResidue  int
	// ChainEntity maps chain to entity index. Nil puts every chain in entity 0.
	ChainEntity []int
	// AltResidues lists global residue indices whose second half of atoms
	// carries alternate location "A" and a duplicate half "B".
	AltResidues []int
	Spacing     float64
}

// AtomicModel builds a model from shape. Source indices are offset by 1000 so
// tests notice when element and source indices are mixed up.
func AtomicModel(id string, shape ModelSpec) *structure.Model {
	if shape.Spacing == 0 {
		shape.Spacing = 1.5
	}
	h := &structure.AtomicHierarchy{}
	var residueIndex, chainIndex []int
	residue := 0
	for c := range shape.Chains {
		for ri := range shape.ResiduesPerChain {
			n := shape.AtomsPerResidue
			alt := slices.Contains(shape.AltResidues, residue)
			if alt {
				n += shape.AtomsPerResidue / 2
			}
			for a := range n {
				h.X = append(h.X, float64(c)*shape.Spacing*4)
				h.Y = append(h.Y, float64(ri)*shape.Spacing)
				h.Z = append(h.Z, float64(a)*shape.Spacing/4)
				altID := ""
				if alt && a >= shape.AtomsPerResidue/2 {
					altID = "A"
					if a >= shape.AtomsPerResidue {
						altID = "B"
					}
				}
				h.AltIDs = append(h.AltIDs, altID)
				h.SourceIndex = append(h.SourceIndex, 1000+len(h.SourceIndex))
				residueIndex = append(residueIndex, residue)
				chainIndex = append(chainIndex, c)
			}
			residue++
		}
	}
	h.Residues = structure.SegmentationOf(residueIndex)
	h.Chains = structure.SegmentationOf(chainIndex)

	entities := 1
	h.ChainEntity = make([]int, shape.Chains)
	if shape.ChainEntity != nil {
		copy(h.ChainEntity, shape.ChainEntity)
		entities = slices.Max(shape.ChainEntity) + 1
	}
	m := &structure.Model{ID: id, Label: id, ModelNum: 1, Atomic: h}
	for e := range entities {
		m.EntityIDs = append(m.EntityIDs, fmt.Sprint(e+1))
	}
	return m
}

// ChainUnits builds one unordered unit per chain of m under op, with ids
// starting at firstID.
func ChainUnits(m *structure.Model, op structure.Operator, firstID int) []*structure.Unit {
	chains := m.Atomic.Chains
	units := make([]*structure.Unit, 0, chains.Count())
	for c := range chains.Count() {
		lo, hi := chains.Range(c)
		elements := make([]int, 0, hi-lo)
		for e := lo; e < hi; e++ {
			elements = append(elements, e)
		}
		u, err := structure.NewUnit(firstID+c, structure.KindAtomic, m, elements, op, func(o *structure.UnitOptions) {
			o.ChainGroupID = c
		})
		if err != nil {
			panic(err)
		}
		units = append(units, u)
	}
	return units
}

// MustStructure is structure.New that panics on error.
func MustStructure(units []*structure.Unit) *structure.Structure {
	s, err := structure.New(units)
	if err != nil {
		panic(err)
	}
	return s
}

// HalfTurn returns the 180 degree rotation about z through the origin.
func HalfTurn(name string) structure.Operator {
	op, err := structure.NewOperator(name, geom.RotationZ(math.Pi), func(o *structure.Operator) {
		o.Symmetry = structure.SymmetryAssembly
		o.AssemblyID = "1"
	})
	if err != nil {
		panic(err)
	}
	return op
}

// Shift returns a pure translation operator.
func Shift(name string, t geom.Vec3) structure.Operator {
	op, err := structure.NewOperator(name, geom.Translation(t), func(o *structure.Operator) {
		o.Symmetry = structure.SymmetryCrystal
	})
	if err != nil {
		panic(err)
	}
	return op
}

// TwoUnitStructure returns two ten-atom units: A under the identity and B,
// built on distinct atoms, under a half turn about the origin.
func TwoUnitStructure() *structure.Structure {
	h := &structure.AtomicHierarchy{}
	var residues, chains []int
	for i := range 20 {
		t := float64(i % 10)
		h.X = append(h.X, t*0.6-2.7)
		h.Y = append(h.Y, 0.4*t-1.5+float64(i/10)*0.7)
		h.Z = append(h.Z, math.Sin(t)*0.8)
		residues = append(residues, i/2)
		chains = append(chains, i/10)
	}
	h.Residues = structure.SegmentationOf(residues)
	h.Chains = structure.SegmentationOf(chains)
	h.ChainEntity = []int{0, 0}
	m := &structure.Model{ID: "two", Label: "two", ModelNum: 1, EntityIDs: []string{"1"}, Atomic: h}

	a, err := structure.NewUnit(1, structure.KindAtomic, m, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, structure.IdentityOperator())
	if err != nil {
		panic(err)
	}
	b, err := structure.NewUnit(2, structure.KindAtomic, m, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}, HalfTurn("2"), func(o *structure.UnitOptions) {
		o.ChainGroupID = 1
	})
	if err != nil {
		panic(err)
	}
	return MustStructure([]*structure.Unit{a, b})
}

// StructureHit is an exact structure-level query answer.
type StructureHit struct {
	UnitID          int
	Index           int
	SquaredDistance float64
}

// BruteForceStructureWithin scans every placed element of s.
func BruteForceStructureWithin(s *structure.Structure, q geom.Vec3, r float64) []StructureHit {
	var hits []StructureHit
	for _, u := range s.Units() {
		for i, e := range u.Elements() {
			d2 := geom.SquaredDistance(u.Position(e), q)
			rr := r + u.Radius(e)
			if d2 <= rr*rr {
				hits = append(hits, StructureHit{UnitID: u.ID(), Index: i, SquaredDistance: d2})
			}
		}
	}
	return hits
}

// BruteForceStructureNearest returns the k closest placed elements of s.
func BruteForceStructureNearest(s *structure.Structure, q geom.Vec3, k int) []StructureHit {
	var hits []StructureHit
	for _, u := range s.Units() {
		for i, e := range u.Elements() {
			d := math.Max(0, geom.Distance(u.Position(e), q)-u.Radius(e))
			hits = append(hits, StructureHit{UnitID: u.ID(), Index: i, SquaredDistance: d * d})
		}
	}
	slices.SortStableFunc(hits, func(a, b StructureHit) int {
		switch {
		case a.SquaredDistance < b.SquaredDistance:
			return -1
		case a.SquaredDistance > b.SquaredDistance:
			return 1
		}
		return 0
	})
	return hits[:min(max(k, 0), len(hits))]
}

// StructureDistances returns the hit distances in hit order.
func StructureDistances(hits []StructureHit) []float64 {
	out := make([]float64, len(hits))
	for i, h := range hits {
		out[i] = h.SquaredDistance
	}
	return out
}
