package loci

import (
	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/structure"
)

// Boundary fits the enclosing box and sphere of the selected elements in
// two passes, mapping positions through transform when it is non-nil. An
// empty selection yields a zero sphere and box at the origin.
func Boundary(l Loci, transform *geom.Mat4) geom.Boundary {
	h := geom.NewBoundaryHelper()
	position := func(loc structure.Location) geom.Vec3 {
		p := loc.Position()
		if transform != nil {
			p = transform.TransformPoint(p)
		}
		return p
	}
	l.ForEachLocation(func(loc structure.Location) {
		h.IncludePositionRadius(position(loc), loc.Radius())
	})
	h.FinishedIncludeStep()
	l.ForEachLocation(func(loc structure.Location) {
		h.RadiusPositionRadius(position(loc), loc.Radius())
	})
	return h.Boundary()
}

// ToPositionsArray writes the selected positions as x, y, z triples into
// out starting at offset, growing out when needed, and returns it.
func ToPositionsArray(l Loci, out []float64, offset int) []float64 {
	if need := offset + 3*l.Size(); len(out) < need {
		out = append(out, make([]float64, need-len(out))...)
	}
	m := offset
	l.ForEachLocation(func(loc structure.Location) {
		p := loc.Position()
		out[m], out[m+1], out[m+2] = p[0], p[1], p[2]
		m += 3
	})
	return out
}

// PrincipalAxes fits principal axes to the selected positions.
func PrincipalAxes(l Loci) geom.PrincipalAxes {
	return geom.PrincipalAxesOf(ToPositionsArray(l, nil, 0))
}

// PrincipalAxesMany fits principal axes to the combined positions of ls.
func PrincipalAxesMany(ls ...Loci) geom.PrincipalAxes {
	n := 0
	for _, l := range ls {
		n += l.Size()
	}
	positions := make([]float64, 3*n)
	offset := 0
	for _, l := range ls {
		positions = ToPositionsArray(l, positions, offset)
		offset += 3 * l.Size()
	}
	return geom.PrincipalAxesOf(positions)
}
