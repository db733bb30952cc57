package orderedset

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfSortedArray_Representation(t *testing.T) {
	assert.True(t, OfSortedArray(nil).IsEmpty())
	assert.True(t, OfSortedArray([]int{3, 4, 5, 6}).IsInterval(), "contiguous above threshold")
	assert.False(t, OfSortedArray([]int{3, 4, 5}).IsInterval(), "contiguous at threshold stays an array")
	assert.False(t, OfSortedArray([]int{1, 3, 5, 7, 9}).IsInterval())

	s := OfSortedArray([]int{3, 4, 5, 6})
	assert.Equal(t, 4, s.Size())
	assert.Equal(t, 3, s.Min())
	assert.Equal(t, 6, s.Max())
	assert.Equal(t, 5, s.At(2))
	assert.Equal(t, 2, s.IndexOf(5))
	assert.Equal(t, -1, s.IndexOf(7))
}

func TestSet_ZeroValueIsEmpty(t *testing.T) {
	var s Set
	assert.Equal(t, 0, s.Size())
	assert.True(t, s.IsEmpty())
	assert.False(t, s.Has(0))
	assert.Equal(t, 0, s.Start())
	assert.Equal(t, 0, s.End())
}

func TestSubtract_SplitsInterval(t *testing.T) {
	s := Subtract(OfBounds(0, 10), OfBounds(3, 5))
	assert.Equal(t, []int{0, 1, 2, 5, 6, 7, 8, 9}, s.ToSlice())
	assert.False(t, s.IsInterval())

	assert.True(t, Subtract(OfBounds(2, 4), OfBounds(0, 10)).IsEmpty())
	assert.Equal(t, []int{4, 5}, Subtract(OfBounds(0, 6), OfBounds(0, 4)).ToSlice())
}

func TestUnion_TouchingIntervalsMerge(t *testing.T) {
	u := Union(OfBounds(0, 5), OfBounds(5, 9))
	assert.True(t, u.IsInterval())
	assert.Equal(t, 9, u.Size())

	u = Union(OfBounds(0, 2), OfBounds(5, 7))
	assert.Equal(t, []int{0, 1, 5, 6}, u.ToSlice())
}

func TestUnion_IntervalContainsArray(t *testing.T) {
	iv := OfBounds(0, 10)
	u := Union(OfSortedArray([]int{1, 4, 9}), iv)
	assert.True(t, u.IsInterval())
	assert.True(t, AreEqual(u, iv))
}

func TestAreEqual_AcrossRepresentations(t *testing.T) {
	arr := Set{kind: kindArray, xs: []int{4, 5, 6}}
	assert.True(t, AreEqual(arr, OfBounds(4, 7)))
	assert.True(t, AreEqual(OfBounds(4, 7), arr))
	assert.False(t, AreEqual(arr, OfBounds(4, 8)))
	assert.True(t, AreEqual(Empty(), OfSortedArray(nil)))
}

func TestIsSubset(t *testing.T) {
	assert.True(t, IsSubset(Empty(), OfBounds(0, 3)))
	assert.True(t, IsSubset(OfSortedArray([]int{1, 2}), OfBounds(0, 3)))
	assert.True(t, IsSubset(OfBounds(2, 4), OfSortedArray([]int{0, 2, 3, 7})))
	assert.False(t, IsSubset(OfBounds(2, 5), OfSortedArray([]int{0, 2, 3, 7})))
	assert.False(t, IsSubset(OfBounds(0, 3), Empty()))
}

func TestIndexedIntersect(t *testing.T) {
	a := []int{10, 11, 12, 13, 14}
	b := []int{11, 13, 20}
	got := IndexedIntersect(OfBounds(0, 5), a, b)
	assert.Equal(t, []int{0, 1}, got.ToSlice())

	same := OfSortedArray([]int{1, 3})
	assert.True(t, AreEqual(same, IndexedIntersect(same, a, slices.Clone(a))))
	assert.True(t, IndexedIntersect(Empty(), a, b).IsEmpty())
}

func randomSet(rng *rand.Rand) Set {
	switch rng.Intn(3) {
	case 0:
		lo := rng.Intn(40)
		return OfBounds(lo, lo+rng.Intn(20))
	default:
		var xs []int
		for v := 0; v < 60; v++ {
			if rng.Intn(3) == 0 {
				xs = append(xs, v)
			}
		}
		return OfSortedArray(xs)
	}
}

func members(s Set) map[int]bool {
	m := make(map[int]bool, s.Size())
	s.ForEach(func(v, _ int) { m[v] = true })
	return m
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

func TestAlgebra_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(4711))

	for iter := 0; iter < 500; iter++ {
		a, b := randomSet(rng), randomSet(rng)
		ma, mb := members(a), members(b)

		union := map[int]bool{}
		inter := map[int]bool{}
		diff := map[int]bool{}
		for v := range ma {
			union[v] = true
			if mb[v] {
				inter[v] = true
			} else {
				diff[v] = true
			}
		}
		for v := range mb {
			union[v] = true
		}

		u, i, d := Union(a, b), Intersect(a, b), Subtract(a, b)
		require.Equal(t, sortedKeys(union), nonNil(u.ToSlice()), "union %v %v", a, b)
		require.Equal(t, sortedKeys(inter), nonNil(i.ToSlice()), "intersect %v %v", a, b)
		require.Equal(t, sortedKeys(diff), nonNil(d.ToSlice()), "subtract %v %v", a, b)

		assert.Equal(t, len(inter) > 0, AreIntersecting(a, b))
		assert.Equal(t, len(inter), IntersectionSize(a, b))
		assert.Equal(t, len(diff) == 0, IsSubset(a, b))
		assert.True(t, IsSubset(a, u))
		assert.True(t, AreEqual(u, Union(b, a)))
		assert.Equal(t, a.Size()+b.Size(), u.Size()+i.Size())
	}
}

func nonNil(xs []int) []int {
	if xs == nil {
		return []int{}
	}
	return xs
}
