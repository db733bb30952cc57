package structure_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/structure"
	"github.com/hupe1980/molsel/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperator(t *testing.T) {
	op, err := structure.NewOperator("half", geom.RotationZ(math.Pi))
	require.NoError(t, err)
	assert.False(t, op.IsIdentity)
	assert.True(t, geom.ApproxEqual(geom.V3(-1, -2, 3), op.Apply(geom.V3(1, 2, 3)), 1e-12))
	assert.True(t, geom.ApproxEqual(geom.V3(1, 2, 3), op.ApplyInverse(op.Apply(geom.V3(1, 2, 3))), 1e-12))

	id, err := structure.NewOperator("id", geom.Identity())
	require.NoError(t, err)
	assert.True(t, id.IsIdentity)

	scale := geom.Identity()
	scale[0] = 2
	_, err = structure.NewOperator("scale", scale)
	assert.ErrorIs(t, err, structure.ErrNotRigid)
}

func TestNewUnit_Validation(t *testing.T) {
	m := testutil.AtomicModel("m", testutil.ModelSpec{Chains: 1, ResiduesPerChain: 2, AtomsPerResidue: 3})

	_, err := structure.NewUnit(1, structure.KindAtomic, m, []int{0, 2, 2}, structure.IdentityOperator())
	var unsorted *structure.ErrUnsortedElements
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, 2, unsorted.Position)

	_, err = structure.NewUnit(1, structure.KindAtomic, m, []int{0, 6}, structure.IdentityOperator())
	var oor *structure.ErrElementOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 6, oor.Element)

	_, err = structure.NewUnit(1, structure.KindSpheres, m, []int{0}, structure.IdentityOperator())
	assert.True(t, errors.Is(err, structure.ErrNoHierarchy))
}

func TestNew_RejectsDuplicateIDs(t *testing.T) {
	m := testutil.AtomicModel("m", testutil.ModelSpec{Chains: 2, ResiduesPerChain: 2, AtomsPerResidue: 2})
	units := testutil.ChainUnits(m, structure.IdentityOperator(), 1)
	units = append(units, units[0].ApplyOperator(1, testutil.HalfTurn("2")))

	_, err := structure.New(units)
	var dup *structure.ErrDuplicateUnit
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1, dup.UnitID)
}

func TestStructure_Accessors(t *testing.T) {
	m := testutil.AtomicModel("m", testutil.ModelSpec{Chains: 3, ResiduesPerChain: 4, AtomsPerResidue: 5, ChainEntity: []int{0, 1, 0}})
	units := testutil.ChainUnits(m, structure.IdentityOperator(), 10)
	slices.Reverse(units)
	s := testutil.MustStructure(units)

	assert.Equal(t, 60, s.ElementCount())
	assert.Equal(t, []*structure.Model{m}, s.Models())
	assert.Equal(t, 10, s.Units()[0].ID())

	u, ok := s.UnitByID(11)
	require.True(t, ok)
	assert.Equal(t, "2", u.EntityKey(u.Elements()[0]))
	assert.Equal(t, 1000+u.Elements()[0], u.SourceIndex(u.Elements()[0]))
	assert.Len(t, s.UnitsOfModel(m), 3)

	_, ok = s.UnitByID(99)
	assert.False(t, ok)

	for _, u := range s.Units() {
		b := s.Boundary()
		for _, e := range u.Elements() {
			assert.True(t, b.Box.Contains(u.Position(e)))
			assert.LessOrEqual(t, geom.Distance(b.Sphere.Center, u.Position(e)), b.Sphere.Radius+1e-9)
		}
	}
}

func TestApplyOperator_SharesLocalIndex(t *testing.T) {
	s := testutil.TwoUnitStructure()
	a := s.Units()[0]

	c := a.ApplyOperator(7, testutil.Shift("x", geom.V3(10, 0, 0)))
	assert.Same(t, a.LocalLookup(), c.LocalLookup())
	assert.Equal(t, a.LocalBoundary(), c.LocalBoundary())
	assert.True(t, geom.ApproxEqual(a.Boundary().Center.Add(geom.V3(10, 0, 0)), c.Boundary().Center, 1e-9))
	assert.Equal(t, 7, c.ID())
	assert.Equal(t, 1, a.ID())
}

func TestUnit_Child(t *testing.T) {
	s := testutil.TwoUnitStructure()
	b := s.Units()[1]

	c, err := b.Child([]int{11, 13})
	require.NoError(t, err)
	assert.Equal(t, b.ID(), c.ID())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, b.Position(13), c.Position(13))
}

func TestSegmentationOf(t *testing.T) {
	seg := structure.SegmentationOf([]int{0, 0, 1, 2, 2, 2})
	assert.Equal(t, []int{0, 2, 3, 6}, seg.Offsets)
	assert.Equal(t, 3, seg.Count())
	lo, hi := seg.Range(2)
	assert.Equal(t, 3, lo)
	assert.Equal(t, 6, hi)

	assert.Equal(t, 0, structure.SegmentationOf(nil).Count())
}
