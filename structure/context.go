package structure

import (
	"github.com/hupe1980/molsel/internal/queue"
	"github.com/hupe1980/molsel/internal/visited"
	"github.com/hupe1980/molsel/lookup"
)

// Result holds structure-frame query hits as parallel slices. Indices are
// positions into the hit unit's Elements.
type Result struct {
	Count            int
	Units            []*Unit
	Indices          []int
	SquaredDistances []float64
}

// Reset clears the hits, keeping capacity.
func (r *Result) Reset() {
	r.Count = 0
	r.Units = r.Units[:0]
	r.Indices = r.Indices[:0]
	r.SquaredDistances = r.SquaredDistances[:0]
}

func (r *Result) add(u *Unit, index int, squaredDistance float64) {
	r.Units = append(r.Units, u)
	r.Indices = append(r.Indices, index)
	r.SquaredDistances = append(r.SquaredDistances, squaredDistance)
	r.Count++
}

// Location returns hit i as a Location.
func (r *Result) Location(i int) Location {
	u := r.Units[i]
	return Location{Unit: u, Element: u.elements[r.Indices[i]]}
}

// QueryContext is the scratch state of spatial queries. A Result returned
// by a query aliases the context and stays valid until its next query.
// A context must not be used by concurrent queries.
type QueryContext struct {
	result Result
	units  *lookup.Result
	group  *lookup.Result
	heap   *queue.PriorityQueue
	items  []queue.Item
	seen   *visited.Set
}

// NewQueryContext creates an empty context.
func NewQueryContext() *QueryContext {
	return &QueryContext{
		units: lookup.NewResult(16),
		group: lookup.NewResult(64),
		heap:  queue.NewMax(64),
		seen:  visited.New(64),
	}
}

// markSeen clears the seen units and sizes the set for n units.
func (c *QueryContext) markSeen(n int) *visited.Set {
	c.seen.Reset()
	c.seen.EnsureCapacity(n)
	return c.seen
}
