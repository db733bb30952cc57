package structure

import (
	"slices"
	"sync"

	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/lookup"
)

// Structure is an immutable, id-sorted collection of units.
type Structure struct {
	units        []*Unit
	unitIndex    map[int]int
	groups       map[ChainOperatorGroup][]int
	byModel      map[*Model][]int
	models       []*Model
	elementCount int
	boundary     geom.Boundary
	lookupOpts   []func(o *lookup.Options)

	lookupOnce sync.Once
	lookup     *Lookup3D
}

// New sorts units by id and indexes them. Duplicate ids are rejected.
func New(units []*Unit, lookupOpts ...func(o *lookup.Options)) (*Structure, error) {
	sorted := slices.Clone(units)
	slices.SortFunc(sorted, func(a, b *Unit) int { return a.id - b.id })

	s := &Structure{
		units:      sorted,
		unitIndex:  make(map[int]int, len(sorted)),
		groups:     make(map[ChainOperatorGroup][]int),
		byModel:    make(map[*Model][]int),
		lookupOpts: lookupOpts,
	}

	centers := make([]geom.Vec3, len(sorted))
	radii := make([]float64, len(sorted))
	for i, u := range sorted {
		if i > 0 && sorted[i-1].id == u.id {
			return nil, &ErrDuplicateUnit{UnitID: u.id}
		}
		s.unitIndex[u.id] = i
		s.elementCount += u.Len()
		if u.IsPartitioned() {
			s.groups[u.Group()] = append(s.groups[u.Group()], i)
		}
		if _, seen := s.byModel[u.model]; !seen {
			s.models = append(s.models, u.model)
		}
		s.byModel[u.model] = append(s.byModel[u.model], i)

		b := u.Boundary()
		centers[i], radii[i] = b.Center, b.Radius
	}
	s.boundary = geom.BoundaryOfSpheres(centers, radii)
	return s, nil
}

// Units returns the units ordered by id. Callers must not modify it.
func (s *Structure) Units() []*Unit { return s.units }

// UnitByID returns the unit with the given id.
func (s *Structure) UnitByID(id int) (*Unit, bool) {
	i, ok := s.unitIndex[id]
	if !ok {
		return nil, false
	}
	return s.units[i], true
}

// UnitPosition returns the position of the unit with the given id in Units.
func (s *Structure) UnitPosition(id int) (int, bool) {
	i, ok := s.unitIndex[id]
	return i, ok
}

// UnitsInGroup returns the positions of the partitioned units of group g.
func (s *Structure) UnitsInGroup(g ChainOperatorGroup) []int { return s.groups[g] }

// UnitsOfModel returns the positions of the units built on m.
func (s *Structure) UnitsOfModel(m *Model) []int { return s.byModel[m] }

// Models returns the distinct models in first-use order.
func (s *Structure) Models() []*Model { return s.models }

// ElementCount returns the total number of unit elements.
func (s *Structure) ElementCount() int { return s.elementCount }

// IsEmpty reports whether s has no elements.
func (s *Structure) IsEmpty() bool { return s.elementCount == 0 }

// Boundary returns the enclosing box and sphere of the placed unit spheres.
func (s *Structure) Boundary() geom.Boundary { return s.boundary }

// Lookup3D returns the spatial index, building it on first use.
func (s *Structure) Lookup3D() *Lookup3D {
	s.lookupOnce.Do(func() {
		s.lookup = newLookup3D(s)
	})
	return s.lookup
}
