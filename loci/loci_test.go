package loci_test

import (
	"testing"

	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/loci"
	"github.com/hupe1980/molsel/orderedset"
	"github.com/hupe1980/molsel/structure"
	"github.com/hupe1980/molsel/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture: three chains of entity 1, 2, 1 under the identity, copied by a
// half turn and a shift.
func symmetric(t *testing.T) (*structure.Structure, *structure.Model) {
	t.Helper()
	m := testutil.AtomicModel("m", testutil.ModelSpec{
		Chains: 3, ResiduesPerChain: 6, AtomsPerResidue: 4,
		ChainEntity: []int{0, 1, 0},
		AltResidues: []int{2, 9},
	})
	units := testutil.ChainUnits(m, structure.IdentityOperator(), 0)
	base := len(units)
	for i := range base {
		units = append(units, units[i].ApplyOperator(10+i, testutil.HalfTurn("2")))
		units = append(units, units[i].ApplyOperator(20+i, testutil.Shift("3", geom.V3(40, 0, 0))))
	}
	return testutil.MustStructure(units), m
}

func randomLoci(rng *testutil.RNG, s *structure.Structure) loci.Loci {
	var elements []loci.Element
	for _, u := range s.Units() {
		if rng.Intn(2) == 0 {
			continue
		}
		var indices orderedset.Set
		if rng.Intn(2) == 0 {
			lo := rng.Intn(u.Len())
			indices = orderedset.OfBounds(lo, lo+1+rng.Intn(u.Len()-lo))
		} else {
			var xs []int
			for i := range u.Len() {
				if rng.Intn(3) == 0 {
					xs = append(xs, i)
				}
			}
			indices = orderedset.OfSortedArray(xs)
		}
		elements = append(elements, loci.Element{Unit: u, Indices: indices})
	}
	return loci.New(s, elements)
}

func TestAlgebra_Properties(t *testing.T) {
	s, _ := symmetric(t)
	rng := testutil.NewRNG(4711)

	for range 200 {
		a, b := randomLoci(rng, s), randomLoci(rng, s)
		u, x := loci.Union(a, b), loci.Intersect(a, b)

		assert.True(t, loci.AreEqual(u, loci.Union(b, a)))
		assert.True(t, loci.AreEqualUnordered(a, loci.Intersect(a, a)))
		assert.Equal(t, a.Size()+b.Size(), u.Size()+x.Size())
		assert.True(t, loci.IsSubset(a, u))
		assert.True(t, loci.IsSubset(x, a))
		assert.Equal(t, !x.IsEmpty(), loci.AreIntersecting(a, b))
		assert.Equal(t, a.Size()-x.Size(), loci.Subtract(a, b).Size())
		assert.False(t, loci.AreIntersecting(loci.Subtract(a, b), b))
	}
}

func TestAlgebra_EmptyOperands(t *testing.T) {
	s, _ := symmetric(t)
	none, all := loci.None(s), loci.All(s)

	assert.True(t, none.IsEmpty())
	assert.True(t, all.IsWholeStructure())
	assert.True(t, loci.AreEqual(all, loci.Union(none, all)))
	assert.True(t, loci.Intersect(none, all).IsEmpty())
	assert.False(t, loci.AreIntersecting(none, none))
	assert.True(t, loci.IsSubset(none, none))
	assert.True(t, loci.IsSubset(none, all))
	assert.False(t, loci.IsSubset(all, none))
	assert.True(t, loci.Subtract(all, all).IsEmpty())
	assert.Empty(t, loci.Subtract(all, all).Elements())
}

func TestAreEqual_OrderSensitive(t *testing.T) {
	s, _ := symmetric(t)
	u0, u1 := s.Units()[0], s.Units()[1]
	e0 := loci.Element{Unit: u0, Indices: orderedset.OfBounds(0, 3)}
	e1 := loci.Element{Unit: u1, Indices: orderedset.OfSortedArray([]int{1, 4})}

	ab := loci.New(s, []loci.Element{e0, e1})
	ba := loci.New(s, []loci.Element{e1, e0})
	assert.False(t, loci.AreEqual(ab, ba))
	assert.True(t, loci.AreEqualUnordered(ab, ba))

	withEmpty := loci.New(s, []loci.Element{e0, {Unit: s.Units()[2]}, e1})
	assert.True(t, loci.AreEqual(ab, withEmpty))
}

func extensions() map[string]func(loci.Loci) loci.Loci {
	return map[string]func(loci.Loci) loci.Loci{
		"residues":  func(l loci.Loci) loci.Loci { return loci.ExtendToWholeResidues(l, false) },
		"chains":    loci.ExtendToWholeChains,
		"entities":  loci.ExtendToWholeEntities,
		"models":    loci.ExtendToWholeModels,
		"operators": loci.ExtendToWholeOperators,
		"instances": loci.ExtendToAllInstances,
	}
}

func TestExtend_IdempotentAndGrowing(t *testing.T) {
	s, _ := symmetric(t)
	rng := testutil.NewRNG(42)

	for name, extend := range extensions() {
		t.Run(name, func(t *testing.T) {
			for range 50 {
				l := randomLoci(rng, s)
				once := extend(l)
				assert.True(t, loci.IsSubset(l, once))
				assert.GreaterOrEqual(t, once.Size(), l.Size())
				assert.True(t, loci.AreEqual(once, extend(once)))
			}
		})
	}
}

func TestExtendToWholeResidues(t *testing.T) {
	s, m := symmetric(t)
	u := s.Units()[0]
	residues := m.Atomic.Residues

	// residue 1 of chain 0: atoms 4..7
	lo, hi := residues.Range(1)
	pos := orderedset.OfSingleton(lo + 1)
	got := loci.ExtendToWholeResidues(loci.New(s, []loci.Element{{Unit: u, Indices: pos}}), false)
	require.Len(t, got.Elements(), 1)
	assert.Equal(t, hi-lo, got.Size())
	assert.True(t, got.Elements()[0].Indices.IsInterval())
}

func TestExtendToWholeResidues_AltLocations(t *testing.T) {
	s, m := symmetric(t)
	u := s.Units()[0]
	lo, hi := m.Atomic.Residues.Range(2)
	require.Equal(t, 6, hi-lo) // 2 shared, 2 "A", 2 "B"

	var posA int
	for i := lo; i < hi; i++ {
		if m.Atomic.AltIDs[i] == "A" {
			posA = i
			break
		}
	}
	touchA := loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfSingleton(posA)}})

	restricted := loci.ExtendToWholeResidues(touchA, true)
	assert.Equal(t, 4, restricted.Size())
	restricted.ForEachLocation(func(loc structure.Location) {
		assert.NotEqual(t, "B", u.AltID(loc.Element))
	})
	assert.Equal(t, 6, loci.ExtendToWholeResidues(touchA, false).Size())

	// touching a blank atom, as the first pass does, widens to every conformation
	assert.Equal(t, 6, loci.ExtendToWholeResidues(restricted, true).Size())

	// a touched blank atom keeps every conformation
	touchShared := loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfSingleton(lo)}})
	assert.Equal(t, 6, loci.ExtendToWholeResidues(touchShared, true).Size())
}

func TestExtendToWholeChains_Partitioned(t *testing.T) {
	m := testutil.AtomicModel("p", testutil.ModelSpec{Chains: 2, ResiduesPerChain: 4, AtomsPerResidue: 3})
	part := func(id int, elements []int, op structure.Operator) *structure.Unit {
		u, err := structure.NewUnit(id, structure.KindAtomic, m, elements, op, func(o *structure.UnitOptions) {
			o.ChainGroupID = 7
			o.Partitioning = structure.Partitioned
		})
		require.NoError(t, err)
		return u
	}
	// chain 0 spans units 1 and 2 (split mid-chain), chain 1 is unit 3
	id := structure.IdentityOperator()
	u1 := part(1, []int{0, 1, 2, 3, 4, 5}, id)
	u2 := part(2, []int{6, 7, 8, 9, 10, 11}, id)
	u3 := part(3, []int{12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}, id)
	twin := u1.ApplyOperator(4, testutil.HalfTurn("2"))
	s := testutil.MustStructure([]*structure.Unit{u1, u2, u3, twin})

	touched := loci.New(s, []loci.Element{{Unit: u1, Indices: orderedset.OfSingleton(2)}})
	got := loci.ExtendToWholeChains(touched)

	require.Len(t, got.Elements(), 2)
	assert.Equal(t, 1, got.Elements()[0].Unit.ID())
	assert.Equal(t, 2, got.Elements()[1].Unit.ID())
	assert.Equal(t, 12, got.Size())
}

func TestExtendToWholeChains_Unordered(t *testing.T) {
	s, _ := symmetric(t)
	u := s.Units()[1]
	got := loci.ExtendToWholeChains(loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfSingleton(5)}}))
	require.Len(t, got.Elements(), 1)
	assert.Equal(t, u.Len(), got.Size())
	assert.False(t, got.IsWholeStructure())
}

func TestExtendToWholeEntitiesModelsOperators(t *testing.T) {
	s, _ := symmetric(t)
	u0, ok := s.UnitByID(0) // chain 0, entity 1, operator 1_555
	require.True(t, ok)
	l := loci.New(s, []loci.Element{{Unit: u0, Indices: orderedset.OfSingleton(0)}})

	entities := loci.ExtendToWholeEntities(l)
	var ids []int
	for _, e := range entities.Elements() {
		ids = append(ids, e.Unit.ID())
	}
	// chains 0 and 2 in every copy
	assert.Equal(t, []int{0, 2, 10, 12, 20, 22}, ids)

	assert.True(t, loci.ExtendToWholeModels(l).IsWholeStructure())

	ops := loci.ExtendToWholeOperators(l)
	assert.Len(t, ops.Elements(), 3)
	for _, e := range ops.Elements() {
		assert.Equal(t, structure.IdentityName, e.Unit.Operator().Name)
	}
}

func TestExtendToAllInstances(t *testing.T) {
	s, _ := symmetric(t)
	u0, _ := s.UnitByID(0)
	l := loci.New(s, []loci.Element{{Unit: u0, Indices: orderedset.OfSortedArray([]int{1, 3, 8})}})

	got := loci.ExtendToAllInstances(l)
	require.Len(t, got.Elements(), 3)
	for _, e := range got.Elements() {
		assert.Equal(t, []int{1, 3, 8}, e.Indices.ToSlice())
		assert.Equal(t, 0, e.Unit.ChainGroupID())
	}

	whole := loci.ExtendToAllInstances(loci.New(s, []loci.Element{{Unit: u0, Indices: orderedset.OfLength(u0.Len())}}))
	for _, e := range whole.Elements() {
		assert.True(t, e.Indices.IsInterval())
	}
}

func TestBoundary(t *testing.T) {
	s, _ := symmetric(t)
	b := loci.Boundary(loci.None(s), nil)
	assert.Equal(t, 0.0, b.Sphere.Radius)
	assert.Equal(t, geom.Vec3{}, b.Sphere.Center)

	u, _ := s.UnitByID(10)
	single := loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfSingleton(5)}})
	b = loci.Boundary(single, nil)
	p := u.Position(u.Elements()[5])
	assert.Equal(t, 0.0, b.Sphere.Radius)
	assert.True(t, geom.ApproxEqual(p, b.Sphere.Center, 1e-9))

	shift := geom.Translation(geom.V3(1, 2, 3))
	b = loci.Boundary(single, &shift)
	assert.True(t, geom.ApproxEqual(p.Add(geom.V3(1, 2, 3)), b.Sphere.Center, 1e-9))

	all := loci.All(s)
	b = loci.Boundary(all, nil)
	all.ForEachLocation(func(loc structure.Location) {
		assert.LessOrEqual(t, geom.Distance(b.Sphere.Center, loc.Position()), b.Sphere.Radius+1e-9)
		assert.True(t, b.Box.Contains(loc.Position()))
	})
}

func TestToPositionsArray(t *testing.T) {
	s, _ := symmetric(t)
	u, _ := s.UnitByID(20)
	l := loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfBounds(0, 2)}})

	out := loci.ToPositionsArray(l, make([]float64, 3), 3)
	require.Len(t, out, 9)
	p := u.Position(u.Elements()[1])
	assert.Equal(t, []float64{p[0], p[1], p[2]}, out[6:9])
	assert.Equal(t, []float64{0, 0, 0}, out[:3])
}

func TestPrincipalAxes(t *testing.T) {
	s, _ := symmetric(t)
	u, _ := s.UnitByID(0)
	// one chain lies along y
	pa := loci.PrincipalAxes(loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfLength(u.Len())}}))
	assert.Greater(t, abs(pa.Axes[0][1]), 0.95)

	many := loci.PrincipalAxesMany(loci.None(s), loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfLength(u.Len())}}))
	assert.InDeltaSlice(t, pa.Values[:], many.Values[:], 1e-9)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestFirstAndForEach(t *testing.T) {
	s, m := symmetric(t)
	u, _ := s.UnitByID(11)
	l := loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfSortedArray([]int{5, 9})}})

	loc, ok := l.FirstLocation()
	require.True(t, ok)
	assert.Equal(t, u.Elements()[5], loc.Element)

	assert.Equal(t, 1, loci.FirstElement(l).Size())
	lo, hi := m.Atomic.Residues.Range(u.ResidueIndex(loc.Element))
	assert.Equal(t, hi-lo, loci.FirstResidue(l).Size())
	assert.Equal(t, u.Len(), loci.FirstChain(l).Size())

	_, ok = loci.None(s).FirstLocation()
	assert.False(t, ok)
	assert.True(t, loci.FirstElement(loci.None(s)).IsEmpty())

	var n int
	l.ForEachLocation(func(structure.Location) { n++ })
	assert.Equal(t, 2, n)
}

func TestRemapAndToStructure(t *testing.T) {
	s, _ := symmetric(t)
	u0, _ := s.UnitByID(0)
	u10, _ := s.UnitByID(10)
	l := loci.New(s, []loci.Element{
		{Unit: u0, Indices: orderedset.OfSortedArray([]int{0, 2, 4})},
		{Unit: u10, Indices: orderedset.OfBounds(3, 8)},
	})

	sub, err := loci.ToStructure(l)
	require.NoError(t, err)
	assert.Equal(t, l.Size(), sub.ElementCount())

	back := loci.Remap(l, sub)
	assert.Same(t, sub, back.Structure())
	assert.True(t, back.IsWholeStructure())

	// units missing from the target are dropped
	only, err := loci.ToStructure(loci.New(s, l.Elements()[:1]))
	require.NoError(t, err)
	assert.Equal(t, 3, loci.Remap(l, only).Size())

	assert.True(t, loci.AreEqual(l, loci.Remap(l, s)))
}

func TestBuilder(t *testing.T) {
	s, _ := symmetric(t)
	u, _ := s.UnitByID(2)
	b := loci.NewBuilder(s)

	b.BeginUnit(u)
	b.AddElement(u.Elements()[7])
	b.AddElement(u.Elements()[3])
	b.AddElement(u.Elements()[7])
	b.CommitUnit()
	b.BeginUnit(u)
	b.AddElement(u.Elements()[1])
	b.CommitUnit()
	b.BeginUnit(s.Units()[0])
	b.CommitUnit()

	l := b.Build()
	require.Len(t, l.Elements(), 1)
	assert.Equal(t, []int{1, 3, 7}, l.Elements()[0].Indices.ToSlice())
}

func TestBuilder_FromLookup(t *testing.T) {
	s := testutil.TwoUnitStructure()
	b := loci.NewBuilder(s)
	s.Lookup3D().FindIntoBuilder(0, 0, 0, 2, b, nil)

	got := b.Build()
	assert.Equal(t, len(testutil.BruteForceStructureWithin(s, geom.Vec3{}, 2)), got.Size())
}

func TestExtend_Granularity(t *testing.T) {
	s, _ := symmetric(t)
	u, _ := s.UnitByID(0)
	l := loci.New(s, []loci.Element{{Unit: u, Indices: orderedset.OfSingleton(0)}})

	for _, g := range loci.Granularities {
		parsed, err := loci.ParseGranularity(string(g))
		require.NoError(t, err)
		assert.True(t, loci.IsSubset(l, loci.Extend(l, parsed)))
	}
	assert.True(t, loci.Extend(l, loci.GranularityStructure).IsWholeStructure())
	assert.True(t, loci.AreEqual(l, loci.Extend(l, loci.GranularityElement)))

	_, err := loci.ParseGranularity("atom")
	assert.ErrorIs(t, err, loci.ErrUnknownGranularity)
}
