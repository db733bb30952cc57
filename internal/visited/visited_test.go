package visited

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New(10)

	assert.False(t, s.Visited(1))
	assert.True(t, s.Visit(1))
	assert.False(t, s.Visit(1))
	assert.True(t, s.Visited(1))
	assert.False(t, s.Visited(5))

	assert.True(t, s.Visit(63))
	assert.True(t, s.Visit(64))
	assert.Len(t, s.dirty, 2)

	s.Reset()
	for _, id := range []int{1, 5, 63, 64} {
		assert.False(t, s.Visited(id))
	}
	assert.Empty(t, s.dirty)
}

func TestSet_Grow(t *testing.T) {
	s := New(2)
	s.Visit(1)

	assert.False(t, s.Visited(1000))
	assert.True(t, s.Visit(1000))
	assert.True(t, s.Visited(1000))
	assert.True(t, s.Visited(1))

	s.EnsureCapacity(5000)
	assert.GreaterOrEqual(t, len(s.bits)*64, 5000)
	assert.True(t, s.Visited(1000))
}

func TestSet_ZeroCapacity(t *testing.T) {
	s := New(0)
	assert.False(t, s.Visited(0))
	assert.True(t, s.Visit(0))
	s.Reset()
	assert.False(t, s.Visited(0))
}
