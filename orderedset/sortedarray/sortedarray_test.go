package sortedarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindRange(t *testing.T) {
	xs := []int{1, 3, 5, 7, 9}

	start, end := FindRange(xs, 3, 7)
	assert.Equal(t, 1, start)
	assert.Equal(t, 4, end)

	start, end = FindRange(xs, 10, 20)
	assert.Equal(t, start, end)

	start, end = FindRange(xs, 4, 2)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestSetOperations(t *testing.T) {
	a := []int{1, 2, 3, 8}
	b := []int{2, 3, 4}

	assert.Equal(t, []int{1, 2, 3, 4, 8}, Union(a, b))
	assert.Equal(t, []int{2, 3}, Intersect(a, b))
	assert.Equal(t, []int{1, 8}, Subtract(a, b))
	assert.Equal(t, 2, IntersectionSize(a, b))
	assert.True(t, AreIntersecting(a, b))
	assert.False(t, AreIntersecting([]int{1}, []int{2}))
	assert.True(t, IsSubset([]int{2, 3}, a))
	assert.False(t, IsSubset(b, a))
}

func TestUnion_ReturnsOperandWhenUnchanged(t *testing.T) {
	a := []int{1, 2, 3}
	u := Union(a, []int{2})
	assert.Equal(t, a, u)
}

func TestIndicesOf(t *testing.T) {
	a := []int{10, 20, 30, 40}
	assert.Equal(t, []int{1, 3}, IndicesOf(a, []int{5, 20, 40, 50}))
	assert.Nil(t, IndicesOf(a, nil))
}

func TestIsSortedAndIsRange(t *testing.T) {
	assert.True(t, IsSorted([]int{1, 2, 5}))
	assert.False(t, IsSorted([]int{1, 1, 5}))
	assert.True(t, IsRange([]int{4, 5, 6}))
	assert.False(t, IsRange([]int{4, 6}))
	assert.False(t, IsRange(nil))
}
