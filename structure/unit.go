package structure

import (
	"fmt"

	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/lookup"
)

// UnitOptions configures NewUnit.
type UnitOptions struct {
	InvariantID  int
	ChainGroupID int
	Partitioning Partitioning
	// Lookup tunes the local grid.
	Lookup []func(o *lookup.Options)
}

// localIndex is the part of a unit shared between its symmetry copies.
type localIndex struct {
	grid     *lookup.Grid
	boundary geom.Sphere
}

// Unit is an immutable rigid group of model elements.
type Unit struct {
	id           int
	invariantID  int
	chainGroupID int
	kind         Kind
	partitioning Partitioning
	model        *Model
	elements     []int
	operator     Operator
	local        *localIndex
}

// NewUnit validates elements against model and builds the local grid.
// elements must be strictly increasing and is retained.
func NewUnit(id int, kind Kind, model *Model, elements []int, op Operator, optFns ...func(o *UnitOptions)) (*Unit, error) {
	var opts UnitOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	n, ok := model.elementCount(kind)
	if !ok {
		return nil, fmt.Errorf("unit %d (%s): %w", id, kind, ErrNoHierarchy)
	}
	for i, e := range elements {
		if e < 0 || e >= n {
			return nil, &ErrElementOutOfRange{UnitID: id, Element: e, Count: n}
		}
		if i > 0 && e <= elements[i-1] {
			return nil, &ErrUnsortedElements{UnitID: id, Position: i}
		}
	}

	u := &Unit{
		id:           id,
		invariantID:  opts.InvariantID,
		chainGroupID: opts.ChainGroupID,
		kind:         kind,
		partitioning: opts.Partitioning,
		model:        model,
		elements:     elements,
		operator:     op,
	}
	u.local = u.buildLocal(opts.Lookup)
	return u, nil
}

func (u *Unit) buildLocal(lookupOpts []func(o *lookup.Options)) *localIndex {
	n := len(u.elements)
	pos := lookup.Positions{X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}
	withRadius := u.kind.IsCoarse() || (u.model.Atomic != nil && u.model.Atomic.Radius != nil)
	if withRadius {
		pos.Radius = make([]float64, n)
	}
	for i, e := range u.elements {
		p := u.LocalPosition(e)
		pos.X[i], pos.Y[i], pos.Z[i] = p[0], p[1], p[2]
		if withRadius {
			pos.Radius[i] = u.Radius(e)
		}
	}
	grid := lookup.New(pos, lookupOpts...)
	return &localIndex{grid: grid, boundary: grid.Boundary().Sphere}
}

// ApplyOperator returns a copy of u placed by op under a new id. The copy
// shares elements, local grid and local boundary with u.
func (u *Unit) ApplyOperator(id int, op Operator) *Unit {
	c := *u
	c.id = id
	c.operator = op
	return &c
}

// Child returns a unit with the same id and placement holding a subset of
// u's elements.
func (u *Unit) Child(elements []int) (*Unit, error) {
	return NewUnit(u.id, u.kind, u.model, elements, u.operator, func(o *UnitOptions) {
		o.InvariantID = u.invariantID
		o.ChainGroupID = u.chainGroupID
		o.Partitioning = u.partitioning
	})
}

// ID returns the unit id, unique within a structure.
func (u *Unit) ID() int { return u.id }

// InvariantID returns the id shared by u and its symmetry copies.
func (u *Unit) InvariantID() int { return u.invariantID }

// ChainGroupID returns the chain group used to pair partitioned copies.
func (u *Unit) ChainGroupID() int { return u.chainGroupID }

// Kind returns the element kind.
func (u *Unit) Kind() Kind { return u.kind }

// Model returns the model the elements index into.
func (u *Unit) Model() *Model { return u.model }

// Partitioning reports whether u is one of several partitioned copies.
func (u *Unit) Partitioning() Partitioning { return u.partitioning }

// Elements returns the sorted model element indices. Callers must not modify it.
func (u *Unit) Elements() []int { return u.elements }

// Len returns the number of elements.
func (u *Unit) Len() int { return len(u.elements) }

// Operator returns the placement operator.
func (u *Unit) Operator() *Operator { return &u.operator }

// IsPartitioned reports whether u shares its chain with other units.
func (u *Unit) IsPartitioned() bool { return u.partitioning == Partitioned }

// Group returns the chain-operator group key of u.
func (u *Unit) Group() ChainOperatorGroup {
	return ChainOperatorGroup{ChainGroupID: u.chainGroupID, OperatorName: u.operator.Name}
}

// LocalLookup returns the grid over untransformed element positions.
// Result indices are positions into Elements.
func (u *Unit) LocalLookup() *lookup.Grid { return u.local.grid }

// LocalBoundary returns the bounding sphere in the local frame.
func (u *Unit) LocalBoundary() geom.Sphere { return u.local.boundary }

// Boundary returns the bounding sphere in the structure frame.
func (u *Unit) Boundary() geom.Sphere {
	return geom.Sphere{Center: u.operator.Apply(u.local.boundary.Center), Radius: u.local.boundary.Radius}
}

// LocalPosition returns the untransformed position of model element e.
func (u *Unit) LocalPosition(e int) geom.Vec3 {
	switch u.kind {
	case KindAtomic:
		h := u.model.Atomic
		return geom.V3(h.X[e], h.Y[e], h.Z[e])
	case KindSpheres, KindGaussians:
		h := u.model.coarse(u.kind)
		return geom.V3(h.X[e], h.Y[e], h.Z[e])
	}
	return geom.Vec3{}
}

// Position returns the structure-frame position of model element e.
func (u *Unit) Position(e int) geom.Vec3 {
	return u.operator.Apply(u.LocalPosition(e))
}

// Radius returns the radius of model element e, zero for atoms without radii.
func (u *Unit) Radius(e int) float64 {
	switch u.kind {
	case KindAtomic:
		if r := u.model.Atomic.Radius; r != nil {
			return r[e]
		}
		return 0
	case KindSpheres, KindGaussians:
		return u.model.coarse(u.kind).Radius[e]
	}
	return 0
}

// Residues returns the residue segmentation of the model element table.
// Coarse elements are one per residue, so ok is false for coarse kinds.
func (u *Unit) Residues() (seg Segmentation, ok bool) {
	switch u.kind {
	case KindAtomic:
		return u.model.Atomic.Residues, true
	case KindSpheres, KindGaussians:
		return Segmentation{}, false
	}
	return Segmentation{}, false
}

// Chains returns the chain segmentation of the model element table.
func (u *Unit) Chains() Segmentation {
	switch u.kind {
	case KindAtomic:
		return u.model.Atomic.Chains
	case KindSpheres, KindGaussians:
		return u.model.coarse(u.kind).Chains
	}
	return Segmentation{}
}

// ResidueIndex returns the residue of model element e. Coarse elements are
// their own residue.
func (u *Unit) ResidueIndex(e int) int {
	if seg, ok := u.Residues(); ok {
		return seg.Index[e]
	}
	return e
}

// ChainIndex returns the chain of model element e.
func (u *Unit) ChainIndex(e int) int { return u.Chains().Index[e] }

// EntityKey returns the entity id of model element e, "" when unknown.
func (u *Unit) EntityKey(e int) string {
	var chainEntity []int
	switch u.kind {
	case KindAtomic:
		chainEntity = u.model.Atomic.ChainEntity
	case KindSpheres, KindGaussians:
		chainEntity = u.model.coarse(u.kind).ChainEntity
	}
	c := u.ChainIndex(e)
	if c >= len(chainEntity) {
		return ""
	}
	ent := chainEntity[c]
	if ent < 0 || ent >= len(u.model.EntityIDs) {
		return ""
	}
	return u.model.EntityIDs[ent]
}

// AltID returns the alternate-location id of model element e, "" if blank.
func (u *Unit) AltID(e int) string {
	if u.kind != KindAtomic || u.model.Atomic.AltIDs == nil {
		return ""
	}
	return u.model.Atomic.AltIDs[e]
}

// SourceIndex returns the stable file-order index of model element e. Coarse
// elements use e itself.
func (u *Unit) SourceIndex(e int) int {
	if u.kind == KindAtomic && u.model.Atomic.SourceIndex != nil {
		return u.model.Atomic.SourceIndex[e]
	}
	return e
}
