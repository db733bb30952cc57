// Package conv provides checked integer narrowing.
//
// Selection indices are plain ints throughout; bitmaps and frame headers
// store them as uint32. Values crossing that boundary from untrusted input
// (decoded expressions, payload lengths) go through these helpers.
package conv
