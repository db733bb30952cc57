// Package geom provides the small amount of 3D linear algebra the spatial
// index and selection layer need: points, rigid 4x4 transforms, enclosing
// spheres and boxes, a two-pass boundary fit and principal axes.
//
// Matrices are column-major, matching the layout of the operators found in
// structure files.
package geom
