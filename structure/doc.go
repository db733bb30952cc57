// Package structure models rigid multi-unit 3D structures and the two-level
// spatial index over them.
//
// A Structure is an immutable, id-sorted list of Units. Each Unit is a sorted
// set of model element indices placed into the structure frame by a rigid
// Operator and owns a local grid over its untransformed positions. Lookup3D
// combines a coarse grid over the units' transformed bounding spheres with
// those local grids.
//
// Spatial queries take a caller-owned QueryContext holding all scratch
// buffers. The grids are read-only and may be shared freely; a context may
// not.
package structure
