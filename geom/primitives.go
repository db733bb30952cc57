package geom

import "math"

// Sphere is a center and radius.
type Sphere struct {
	Center Vec3
	Radius float64
}

// Box is an axis-aligned box given by its min and max corners.
type Box struct {
	Min Vec3
	Max Vec3
}

// Size returns Max-Min.
func (b Box) Size() Vec3 { return b.Max.Sub(b.Min) }

// EmptyBox returns an inverted box that any Include call will replace.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{Min: Vec3{inf, inf, inf}, Max: Vec3{-inf, -inf, -inf}}
}

// IsEmpty reports whether b holds no point.
func (b Box) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// IncludeSphere grows b to contain the sphere (p, r).
func (b Box) IncludeSphere(p Vec3, r float64) Box {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i]-r)
		b.Max[i] = math.Max(b.Max[i], p[i]+r)
	}
	return b
}

// Contains reports whether p lies inside b, borders included.
func (b Box) Contains(p Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}
