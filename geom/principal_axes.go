package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// PrincipalAxes describes the orientation of a point cloud.
type PrincipalAxes struct {
	// Origin is the centroid.
	Origin Vec3
	// Axes are unit eigenvectors of the covariance, by decreasing variance.
	// Axes[2] is Axes[0]×Axes[1], so the frame is right-handed.
	Axes [3]Vec3
	// Values are the matching covariance eigenvalues.
	Values [3]float64
	// HalfExtents are the largest absolute projections onto each axis.
	HalfExtents [3]float64
}

// PrincipalAxesOf computes principal axes of flattened xyz positions.
// Fewer than one point yields the zero value.
func PrincipalAxesOf(positions []float64) PrincipalAxes {
	n := len(positions) / 3
	if n == 0 {
		return PrincipalAxes{}
	}

	var c Vec3
	for i := 0; i < n; i++ {
		c = c.Add(Vec3{positions[3*i], positions[3*i+1], positions[3*i+2]})
	}
	c = c.Scale(1 / float64(n))

	var cov [6]float64 // xx, xy, xz, yy, yz, zz
	for i := 0; i < n; i++ {
		dx := positions[3*i] - c[0]
		dy := positions[3*i+1] - c[1]
		dz := positions[3*i+2] - c[2]
		cov[0] += dx * dx
		cov[1] += dx * dy
		cov[2] += dx * dz
		cov[3] += dy * dy
		cov[4] += dy * dz
		cov[5] += dz * dz
	}
	for i := range cov {
		cov[i] /= float64(n)
	}

	sym := mat.NewSymDense(3, []float64{
		cov[0], cov[1], cov[2],
		cov[1], cov[3], cov[4],
		cov[2], cov[4], cov[5],
	})

	pa := PrincipalAxes{Origin: c}
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		pa.Axes = [3]Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	} else {
		values := eig.Values(nil) // ascending
		var vecs mat.Dense
		eig.VectorsTo(&vecs)
		for k := 0; k < 3; k++ {
			col := 2 - k
			pa.Values[k] = values[col]
			pa.Axes[k] = Vec3{vecs.At(0, col), vecs.At(1, col), vecs.At(2, col)}.Normalize()
		}
		pa.Axes[2] = pa.Axes[0].Cross(pa.Axes[1]).Normalize()
	}

	for i := 0; i < n; i++ {
		d := Vec3{positions[3*i], positions[3*i+1], positions[3*i+2]}.Sub(c)
		for k := 0; k < 3; k++ {
			pa.HalfExtents[k] = math.Max(pa.HalfExtents[k], math.Abs(d.Dot(pa.Axes[k])))
		}
	}
	return pa
}
