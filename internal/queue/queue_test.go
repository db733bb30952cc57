package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushBounded_KeepsKSmallest(t *testing.T) {
	pq := NewMax(4)
	for i, d := range []float64{9, 1, 7, 3, 5, 0.5, 8} {
		pq.PushBounded(Item{Index: i, Distance: d}, 3)
	}
	assert.Equal(t, 3, pq.Len())

	top, ok := pq.TopItem()
	assert.True(t, ok)
	assert.Equal(t, 3.0, top.Distance)

	out := pq.DrainAscending(nil)
	assert.Equal(t, 0, pq.Len())
	assert.Equal(t, []float64{0.5, 1, 3}, []float64{out[0].Distance, out[1].Distance, out[2].Distance})
	assert.Equal(t, 5, out[0].Index)
}

func TestPushBounded_ZeroK(t *testing.T) {
	pq := NewMax(1)
	assert.False(t, pq.PushBounded(Item{Distance: 1}, 0))
	assert.Equal(t, 0, pq.Len())
}

func TestMinHeap_DrainAscending(t *testing.T) {
	pq := NewMin(4)
	for _, d := range []float64{4, 2, 6, 1} {
		pq.PushItem(Item{Distance: d})
	}
	out := pq.DrainAscending(nil)
	assert.Equal(t, []float64{1, 2, 4, 6}, []float64{out[0].Distance, out[1].Distance, out[2].Distance, out[3].Distance})
}

func TestReset(t *testing.T) {
	pq := NewMin(2)
	pq.PushItem(Item{Distance: 1})
	pq.Reset()
	_, ok := pq.PopItem()
	assert.False(t, ok)
}
