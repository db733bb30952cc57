// Package orderedset implements an immutable ascending set of integer indices.
//
// A Set is a tagged variant holding either a half-open interval [lo, hi) or a
// strictly increasing array. The representation is an implementation detail:
// size, membership and ascending iteration order are identical for both.
//
//	a := orderedset.OfBounds(0, 10)              // interval form
//	b := orderedset.OfSortedArray([]int{2, 4, 6}) // array form
//	c := orderedset.Subtract(a, b)               // {0,1,3,5,7,8,9}
//
// Inputs to OfSortedArray must be strictly increasing. This is a caller
// precondition and is not checked.
package orderedset
