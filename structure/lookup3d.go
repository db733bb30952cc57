package structure

import (
	"math"

	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/internal/queue"
	"github.com/hupe1980/molsel/lookup"
)

// Lookup3D answers proximity queries over a whole structure. A coarse grid
// over the placed unit spheres selects candidate units; each candidate's
// local grid is then queried with the query point mapped into its frame.
// Operators are rigid, so radii and distances carry over unchanged.
type Lookup3D struct {
	structure  *Structure
	units      *lookup.Grid
	defaultCtx *QueryContext
}

func newLookup3D(s *Structure) *Lookup3D {
	n := len(s.units)
	pos := lookup.Positions{
		X:      make([]float64, n),
		Y:      make([]float64, n),
		Z:      make([]float64, n),
		Radius: make([]float64, n),
	}
	for i, u := range s.units {
		b := u.Boundary()
		pos.X[i], pos.Y[i], pos.Z[i] = b.Center[0], b.Center[1], b.Center[2]
		pos.Radius[i] = b.Radius
	}
	return &Lookup3D{
		structure:  s,
		units:      lookup.New(pos, s.lookupOpts...),
		defaultCtx: NewQueryContext(),
	}
}

func (l *Lookup3D) context(ctx *QueryContext) *QueryContext {
	if ctx == nil {
		return l.defaultCtx
	}
	return ctx
}

func pivot(u *Unit, x, y, z float64) geom.Vec3 {
	return u.operator.ApplyInverse(geom.V3(x, y, z))
}

// Boundary returns the structure boundary.
func (l *Lookup3D) Boundary() geom.Boundary { return l.structure.boundary }

// FindUnitIndices returns the positions of units whose placed bounding
// sphere intersects the query sphere.
func (l *Lookup3D) FindUnitIndices(x, y, z, radius float64, ctx *QueryContext) *lookup.Result {
	ctx = l.context(ctx)
	return l.units.Find(x, y, z, radius, ctx.units)
}

// Find returns every element within radius of the point, in no particular
// order. A nil ctx uses the index's own context, which is not safe for
// concurrent use.
func (l *Lookup3D) Find(x, y, z, radius float64, ctx *QueryContext) *Result {
	ctx = l.context(ctx)
	res := &ctx.result
	res.Reset()

	closeUnits := l.units.Find(x, y, z, radius, ctx.units)
	for t := 0; t < closeUnits.Count; t++ {
		u := l.structure.units[closeUnits.Indices[t]]
		p := pivot(u, x, y, z)
		group := u.local.grid.Find(p[0], p[1], p[2], radius, ctx.group)
		for j := 0; j < group.Count; j++ {
			res.add(u, group.Indices[j], group.SquaredDistances[j])
		}
	}
	return res
}

// Check reports whether any element lies within radius of the point.
func (l *Lookup3D) Check(x, y, z, radius float64, ctx *QueryContext) bool {
	ctx = l.context(ctx)
	closeUnits := l.units.Find(x, y, z, radius, ctx.units)
	for t := 0; t < closeUnits.Count; t++ {
		u := l.structure.units[closeUnits.Indices[t]]
		p := pivot(u, x, y, z)
		if u.local.grid.Check(p[0], p[1], p[2], radius) {
			return true
		}
	}
	return false
}

// Nearest returns the min(k, ElementCount) elements closest to the point in
// ascending squared distance.
//
// Units are scanned by increasing distance of their bounding sphere until
// they hold at least k elements and the next unit cannot beat the current
// k-th best. A second coarse pass with the k-th best distance as radius then
// scans any unit the first pass did not reach that could still hold a closer
// element.
func (l *Lookup3D) Nearest(x, y, z float64, k int, ctx *QueryContext) *Result {
	ctx = l.context(ctx)
	res := &ctx.result
	res.Reset()
	units := l.structure.units
	if k <= 0 || len(units) == 0 {
		return res
	}

	var (
		best    queue.Item
		hasBest bool
		heap    = ctx.heap
	)
	heap.Reset()
	seen := ctx.markSeen(len(units))

	full := func() bool {
		if k == 1 {
			return hasBest
		}
		return heap.Len() >= k
	}
	kth := func() float64 {
		if k == 1 {
			return best.Distance
		}
		top, _ := heap.TopItem()
		return top.Distance
	}
	scan := func(ui int) {
		seen.Visit(ui)
		u := units[ui]
		p := pivot(u, x, y, z)
		group := u.local.grid.Nearest(p[0], p[1], p[2], k, nil, ctx.group)
		for j := 0; j < group.Count; j++ {
			item := queue.Item{Group: ui, Index: group.Indices[j], Distance: group.SquaredDistances[j]}
			if k == 1 {
				if !hasBest || item.Distance < best.Distance {
					best, hasBest = item, true
				}
				continue
			}
			heap.PushBounded(item, k)
		}
	}

	elements := 0
	closeUnits := l.units.Nearest(x, y, z, len(units), func(ui int) bool {
		elements += units[ui].Len()
		return elements >= k
	}, ctx.units)
	for t := 0; t < closeUnits.Count; t++ {
		if full() && kth() < closeUnits.SquaredDistances[t] {
			break
		}
		scan(closeUnits.Indices[t])
	}

	if full() && closeUnits.Count < len(units) {
		more := l.units.Find(x, y, z, math.Sqrt(kth()), ctx.units)
		for t := 0; t < more.Count; t++ {
			if ui := more.Indices[t]; !seen.Visited(ui) {
				scan(ui)
			}
		}
	}

	if k == 1 {
		if hasBest {
			res.add(units[best.Group], best.Index, best.Distance)
		}
		return res
	}
	ctx.items = heap.DrainAscending(ctx.items[:0])
	for _, it := range ctx.items {
		res.add(units[it.Group], it.Index, it.Distance)
	}
	return res
}

// FindIntoBuilder streams every element within radius of the point into sink.
func (l *Lookup3D) FindIntoBuilder(x, y, z, radius float64, sink ElementSink, ctx *QueryContext) {
	l.FindIntoBuilderIf(x, y, z, radius, sink, nil, ctx)
}

// FindIntoBuilderIf is FindIntoBuilder restricted to locations passing test.
// A nil test accepts every location.
func (l *Lookup3D) FindIntoBuilderIf(x, y, z, radius float64, sink ElementSink, test func(loc Location) bool, ctx *QueryContext) {
	ctx = l.context(ctx)
	closeUnits := l.units.Find(x, y, z, radius, ctx.units)
	for t := 0; t < closeUnits.Count; t++ {
		u := l.structure.units[closeUnits.Indices[t]]
		p := pivot(u, x, y, z)
		group := u.local.grid.Find(p[0], p[1], p[2], radius, ctx.group)
		if group.Count == 0 {
			continue
		}
		sink.BeginUnit(u)
		for j := 0; j < group.Count; j++ {
			e := u.elements[group.Indices[j]]
			if test == nil || test(Location{Unit: u, Element: e}) {
				sink.AddElement(e)
			}
		}
		sink.CommitUnit()
	}
}

// FindIntoBuilderWithRadius streams elements e whose sphere of radius
// eRadius(e) lies within radius of the pivot sphere (x, y, z, pivotRadius):
// sqrt(d²) - pivotRadius - eRadius(e) <= radius. maxRadius must bound eRadius.
func (l *Lookup3D) FindIntoBuilderWithRadius(x, y, z, pivotRadius, maxRadius, radius float64, eRadius func(loc Location) float64, sink ElementSink, ctx *QueryContext) {
	ctx = l.context(ctx)
	queryRadius := pivotRadius + maxRadius + radius
	closeUnits := l.units.Find(x, y, z, queryRadius, ctx.units)
	for t := 0; t < closeUnits.Count; t++ {
		u := l.structure.units[closeUnits.Indices[t]]
		p := pivot(u, x, y, z)
		group := u.local.grid.Find(p[0], p[1], p[2], queryRadius, ctx.group)
		if group.Count == 0 {
			continue
		}
		sink.BeginUnit(u)
		for j := 0; j < group.Count; j++ {
			loc := Location{Unit: u, Element: u.elements[group.Indices[j]]}
			if math.Sqrt(group.SquaredDistances[j])-pivotRadius-eRadius(loc) > radius {
				continue
			}
			sink.AddElement(loc.Element)
		}
		sink.CommitUnit()
	}
}
