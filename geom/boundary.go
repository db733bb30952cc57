package geom

import "math"

// Boundary is the enclosing sphere and box of a set of positions.
type Boundary struct {
	Box    Box
	Sphere Sphere
}

// BoundaryHelper fits a Boundary in two streaming passes over the same
// positions: the include pass gathers the centroid and box, the radius pass
// measures the enclosing radius around that centroid.
//
// The centroid is weighted by element radius; when every radius is zero it
// falls back to the plain mean.
type BoundaryHelper struct {
	count   int
	sumP    Vec3
	sumWP   Vec3
	sumW    float64
	box     Box
	center  Vec3
	radius  float64
	settled bool
}

// NewBoundaryHelper returns a reset helper.
func NewBoundaryHelper() *BoundaryHelper {
	h := &BoundaryHelper{}
	h.Reset()
	return h
}

// Reset clears all accumulated state.
func (h *BoundaryHelper) Reset() {
	*h = BoundaryHelper{box: EmptyBox()}
}

// IncludePositionRadius adds p with radius r to the first pass.
func (h *BoundaryHelper) IncludePositionRadius(p Vec3, r float64) {
	h.count++
	h.sumP = h.sumP.Add(p)
	if r > 0 {
		h.sumWP = h.sumWP.Add(p.Scale(r))
		h.sumW += r
	}
	h.box = h.box.IncludeSphere(p, r)
}

// FinishedIncludeStep fixes the centroid. Must be called between the passes.
func (h *BoundaryHelper) FinishedIncludeStep() {
	h.settled = true
	switch {
	case h.count == 0:
		h.center = Vec3{}
	case h.sumW > 0:
		h.center = h.sumWP.Scale(1 / h.sumW)
	default:
		h.center = h.sumP.Scale(1 / float64(h.count))
	}
	h.radius = 0
}

// RadiusPositionRadius grows the enclosing radius to cover the sphere (p, r).
func (h *BoundaryHelper) RadiusPositionRadius(p Vec3, r float64) {
	h.radius = math.Max(h.radius, Distance(h.center, p)+r)
}

// Sphere returns the fitted sphere. Empty input yields a zero sphere at the origin.
func (h *BoundaryHelper) Sphere() Sphere {
	if !h.settled || h.count == 0 {
		return Sphere{}
	}
	return Sphere{Center: h.center, Radius: h.radius}
}

// Box returns the fitted box. Empty input yields a zero box at the origin.
func (h *BoundaryHelper) Box() Box {
	if h.count == 0 {
		return Box{}
	}
	return h.box
}

// Boundary returns the box and sphere together.
func (h *BoundaryHelper) Boundary() Boundary {
	return Boundary{Box: h.Box(), Sphere: h.Sphere()}
}

// BoundaryOfSpheres fits a boundary around spheres given as parallel slices.
func BoundaryOfSpheres(centers []Vec3, radii []float64) Boundary {
	h := NewBoundaryHelper()
	for i, c := range centers {
		h.IncludePositionRadius(c, radii[i])
	}
	h.FinishedIncludeStep()
	for i, c := range centers {
		h.RadiusPositionRadius(c, radii[i])
	}
	return h.Boundary()
}
