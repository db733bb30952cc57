// Package lookup implements a uniform-grid spatial index over 3D points with
// optional per-point radii.
//
// A Grid is immutable after New and safe for concurrent readers. Every query
// writes into a caller-owned Result, which also carries the scratch heap used
// by Nearest, so one Result must not be shared between goroutines.
//
//	g := lookup.New(lookup.Positions{X: xs, Y: ys, Z: zs})
//	res := lookup.NewResult(64)
//	g.Find(0, 0, 0, 5, res)
//	for i := 0; i < res.Count; i++ {
//	    fmt.Println(res.Indices[i], res.SquaredDistances[i])
//	}
package lookup
