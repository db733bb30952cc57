package lookup

import "github.com/hupe1980/molsel/internal/queue"

// Result holds query hits as parallel slices. The first Count entries are valid.
type Result struct {
	Count            int
	Indices          []int
	SquaredDistances []float64

	heap *queue.PriorityQueue
}

// NewResult creates a Result with the given initial capacity.
func NewResult(capacity int) *Result {
	return &Result{
		Indices:          make([]int, 0, capacity),
		SquaredDistances: make([]float64, 0, capacity),
	}
}

// Reset clears the hits, keeping capacity.
func (r *Result) Reset() {
	r.Count = 0
	r.Indices = r.Indices[:0]
	r.SquaredDistances = r.SquaredDistances[:0]
	if r.heap != nil {
		r.heap.Reset()
	}
}

// Add appends a hit.
func (r *Result) Add(index int, squaredDistance float64) {
	r.Indices = append(r.Indices, index)
	r.SquaredDistances = append(r.SquaredDistances, squaredDistance)
	r.Count++
}

func (r *Result) scratchHeap() *queue.PriorityQueue {
	if r.heap == nil {
		r.heap = queue.NewMin(64)
	}
	return r.heap
}
