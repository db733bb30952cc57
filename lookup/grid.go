package lookup

import (
	"math"

	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/internal/queue"
)

// Lookup3D is the query surface shared by grids over elements and over units.
type Lookup3D interface {
	// Find reports every point whose sphere intersects the query sphere.
	Find(x, y, z, radius float64, res *Result) *Result
	// Nearest reports up to k points ordered by increasing squared distance.
	Nearest(x, y, z float64, k int, stop func(index int) bool, res *Result) *Result
	// Check reports whether any point's sphere intersects the query sphere.
	Check(x, y, z, radius float64) bool
	// Boundary returns the enclosing box and sphere of all points.
	Boundary() geom.Boundary
}

// Positions are parallel coordinate slices. Radius may be nil for points.
type Positions struct {
	X, Y, Z []float64
	Radius  []float64
}

// Len returns the number of points.
func (p Positions) Len() int { return len(p.X) }

func (p Positions) radius(i int) float64 {
	if p.Radius == nil {
		return 0
	}
	return p.Radius[i]
}

// Options configures grid construction.
type Options struct {
	// CellSize fixes the cell edge length. Zero derives it from ElementsPerCell.
	CellSize float64
	// ElementsPerCell is the target mean occupancy of a cell.
	ElementsPerCell int
}

// DefaultOptions contains the default grid options.
var DefaultOptions = Options{
	ElementsPerCell: 32,
}

var _ Lookup3D = (*Grid)(nil)

// Grid buckets points into uniform cubic cells stored in CSR form.
type Grid struct {
	pos       Positions
	origin    geom.Vec3
	cellSize  float64
	inv       float64
	dims      [3]int
	cellStart []int
	cellItems []int
	maxRadius float64
	boundary  geom.Boundary
}

// New builds a grid over positions. The slices are retained, not copied.
func New(positions Positions, optFns ...func(o *Options)) *Grid {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ElementsPerCell <= 0 {
		opts.ElementsPerCell = DefaultOptions.ElementsPerCell
	}

	g := &Grid{pos: positions}
	n := positions.Len()

	h := geom.NewBoundaryHelper()
	lo := geom.V3(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := geom.V3(math.Inf(-1), math.Inf(-1), math.Inf(-1))
	for i := 0; i < n; i++ {
		p := geom.V3(positions.X[i], positions.Y[i], positions.Z[i])
		r := positions.radius(i)
		h.IncludePositionRadius(p, r)
		g.maxRadius = math.Max(g.maxRadius, r)
		for a := 0; a < 3; a++ {
			lo[a] = math.Min(lo[a], p[a])
			hi[a] = math.Max(hi[a], p[a])
		}
	}
	h.FinishedIncludeStep()
	for i := 0; i < n; i++ {
		h.RadiusPositionRadius(geom.V3(positions.X[i], positions.Y[i], positions.Z[i]), positions.radius(i))
	}
	g.boundary = h.Boundary()

	if n == 0 {
		g.cellSize, g.inv = 1, 1
		g.cellStart = []int{0, 0}
		g.dims = [3]int{1, 1, 1}
		return g
	}

	g.origin = lo
	size := hi.Sub(lo)
	g.cellSize = opts.CellSize
	if g.cellSize <= 0 {
		vol := math.Max(size[0], 1e-3) * math.Max(size[1], 1e-3) * math.Max(size[2], 1e-3)
		g.cellSize = math.Cbrt(vol * float64(opts.ElementsPerCell) / float64(n))
		if g.cellSize <= 0 || math.IsNaN(g.cellSize) {
			g.cellSize = 1
		}
	}
	for {
		for a := 0; a < 3; a++ {
			g.dims[a] = int(size[a]/g.cellSize) + 1
		}
		// keep the cell table proportional to the point count for elongated inputs
		if g.dims[0]*g.dims[1]*g.dims[2] <= 8*n+64 {
			break
		}
		g.cellSize *= 2
	}
	g.inv = 1 / g.cellSize

	cells := g.dims[0] * g.dims[1] * g.dims[2]
	g.cellStart = make([]int, cells+1)
	cellOf := make([]int, n)
	for i := 0; i < n; i++ {
		c := g.cellIndex(positions.X[i], positions.Y[i], positions.Z[i])
		cellOf[i] = c
		g.cellStart[c+1]++
	}
	for c := 0; c < cells; c++ {
		g.cellStart[c+1] += g.cellStart[c]
	}
	g.cellItems = make([]int, n)
	fill := make([]int, cells)
	for i := 0; i < n; i++ {
		c := cellOf[i]
		g.cellItems[g.cellStart[c]+fill[c]] = i
		fill[c]++
	}
	return g
}

// Len returns the number of indexed points.
func (g *Grid) Len() int { return g.pos.Len() }

// CellSize returns the cell edge length.
func (g *Grid) CellSize() float64 { return g.cellSize }

// Boundary returns the enclosing box and sphere of all points.
func (g *Grid) Boundary() geom.Boundary { return g.boundary }

func (g *Grid) clampedCoord(v float64, a int) int {
	f := math.Floor((v - g.origin[a]) * g.inv)
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f >= float64(g.dims[a]):
		return g.dims[a] - 1
	}
	return int(f)
}

// rawCoord is the unclamped cell coordinate, saturated to keep ring arithmetic in range.
func (g *Grid) rawCoord(v float64, a int) int {
	f := math.Floor((v - g.origin[a]) * g.inv)
	const limit = 1 << 30
	switch {
	case math.IsNaN(f):
		return 0
	case f < -limit:
		return -limit
	case f > limit:
		return limit
	}
	return int(f)
}

func (g *Grid) cellIndex(x, y, z float64) int {
	cx, cy, cz := g.clampedCoord(x, 0), g.clampedCoord(y, 1), g.clampedCoord(z, 2)
	return (cz*g.dims[1]+cy)*g.dims[0] + cx
}

func (g *Grid) cell(cx, cy, cz int) []int {
	c := (cz*g.dims[1]+cy)*g.dims[0] + cx
	return g.cellItems[g.cellStart[c]:g.cellStart[c+1]]
}

func (g *Grid) overlaps(x, y, z, reach float64) bool {
	b := g.boundary.Box
	return x+reach >= b.Min[0]-g.maxRadius && x-reach <= b.Max[0]+g.maxRadius &&
		y+reach >= b.Min[1]-g.maxRadius && y-reach <= b.Max[1]+g.maxRadius &&
		z+reach >= b.Min[2]-g.maxRadius && z-reach <= b.Max[2]+g.maxRadius
}

// visitRange calls f for every point in cells overlapping the query cube of
// half-width reach. f returns false to stop early.
func (g *Grid) visitRange(x, y, z, reach float64, f func(i int) bool) {
	if g.Len() == 0 || !g.overlaps(x, y, z, reach) {
		return
	}
	x0, x1 := g.clampedCoord(x-reach, 0), g.clampedCoord(x+reach, 0)
	y0, y1 := g.clampedCoord(y-reach, 1), g.clampedCoord(y+reach, 1)
	z0, z1 := g.clampedCoord(z-reach, 2), g.clampedCoord(z+reach, 2)
	for cz := z0; cz <= z1; cz++ {
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				for _, i := range g.cell(cx, cy, cz) {
					if !f(i) {
						return
					}
				}
			}
		}
	}
}

func (g *Grid) squaredDistance(i int, x, y, z float64) float64 {
	dx, dy, dz := g.pos.X[i]-x, g.pos.Y[i]-y, g.pos.Z[i]-z
	return dx*dx + dy*dy + dz*dz
}

// Find reports every point i with |p_i - q| <= radius + r_i, with the squared
// centre distance.
func (g *Grid) Find(x, y, z, radius float64, res *Result) *Result {
	if res == nil {
		res = NewResult(16)
	}
	res.Reset()
	g.visitRange(x, y, z, radius+g.maxRadius, func(i int) bool {
		d2 := g.squaredDistance(i, x, y, z)
		rr := radius + g.pos.radius(i)
		if d2 <= rr*rr {
			res.Add(i, d2)
		}
		return true
	})
	return res
}

// Check reports whether Find would return at least one point.
func (g *Grid) Check(x, y, z, radius float64) bool {
	found := false
	g.visitRange(x, y, z, radius+g.maxRadius, func(i int) bool {
		rr := radius + g.pos.radius(i)
		if g.squaredDistance(i, x, y, z) <= rr*rr {
			found = true
			return false
		}
		return true
	})
	return found
}

// Nearest reports up to k points ordered by increasing squared sphere
// distance max(0, |p_i - q| - r_i)². Candidates are searched in rings of
// cells around the query and only emitted once no unvisited cell can hold a
// closer point. When stop is non-nil it is called on each emitted index in
// order, and the search ends after the first index for which it returns true.
func (g *Grid) Nearest(x, y, z float64, k int, stop func(index int) bool, res *Result) *Result {
	if res == nil {
		res = NewResult(max(k, 1))
	}
	res.Reset()
	n := g.Len()
	if k <= 0 || n == 0 {
		return res
	}
	k = min(k, n)

	candidates := res.scratchHeap()
	q := [3]int{g.rawCoord(x, 0), g.rawCoord(y, 1), g.rawCoord(z, 2)}

	// first ring that touches the grid, and the ring that covers all of it
	first, last := 0, 0
	for a := 0; a < 3; a++ {
		if q[a] < 0 {
			first = max(first, -q[a])
		} else if q[a] > g.dims[a]-1 {
			first = max(first, q[a]-(g.dims[a]-1))
		}
		last = max(last, max(abs(q[a]), abs(q[a]-(g.dims[a]-1))))
	}

	emit := func(bound float64) bool {
		for candidates.Len() > 0 {
			top, _ := candidates.TopItem()
			if top.Distance > bound {
				return false
			}
			candidates.PopItem()
			res.Add(top.Index, top.Distance)
			if res.Count >= k || (stop != nil && stop(top.Index)) {
				return true
			}
		}
		return false
	}

	for ring := first; ring <= last; ring++ {
		g.visitRing(q, ring, func(i int) {
			d := math.Sqrt(g.squaredDistance(i, x, y, z)) - g.pos.radius(i)
			if d < 0 {
				d = 0
			}
			candidates.PushItem(queue.Item{Index: i, Distance: d * d})
		})
		bound := float64(ring)*g.cellSize - g.maxRadius
		if bound < 0 {
			continue
		}
		if emit(bound * bound) {
			candidates.Reset()
			return res
		}
	}
	emit(math.Inf(1))
	candidates.Reset()
	return res
}

// visitRing calls f for every point in grid cells at Chebyshev distance ring from q.
func (g *Grid) visitRing(q [3]int, ring int, f func(i int)) {
	x0, x1 := max(q[0]-ring, 0), min(q[0]+ring, g.dims[0]-1)
	y0, y1 := max(q[1]-ring, 0), min(q[1]+ring, g.dims[1]-1)
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			if abs(cx-q[0]) == ring || abs(cy-q[1]) == ring {
				for cz := max(q[2]-ring, 0); cz <= min(q[2]+ring, g.dims[2]-1); cz++ {
					for _, i := range g.cell(cx, cy, cz) {
						f(i)
					}
				}
				continue
			}
			for _, cz := range [2]int{q[2] - ring, q[2] + ring} {
				if cz < 0 || cz >= g.dims[2] {
					continue
				}
				for _, i := range g.cell(cx, cy, cz) {
					f(i)
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
