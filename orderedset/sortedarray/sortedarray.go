// Package sortedarray provides set operations over strictly increasing int slices.
//
// Inputs are never modified. Results may alias an input when the result is
// equal to it, so callers must treat every slice as read-only.
package sortedarray

import "slices"

// IsSorted reports whether xs is strictly increasing.
func IsSorted(xs []int) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i-1] >= xs[i] {
			return false
		}
	}
	return true
}

// IsRange reports whether xs holds every integer between its first and last element.
func IsRange(xs []int) bool {
	if len(xs) == 0 {
		return false
	}
	return xs[len(xs)-1]-xs[0]+1 == len(xs)
}

// IndexOf returns the position of v in xs or -1.
func IndexOf(xs []int, v int) int {
	i, ok := slices.BinarySearch(xs, v)
	if !ok {
		return -1
	}
	return i
}

// Has reports whether v is in xs.
func Has(xs []int, v int) bool {
	return IndexOf(xs, v) >= 0
}

// FindPredecessorIndex returns the index of the first element >= v.
func FindPredecessorIndex(xs []int, v int) int {
	i, _ := slices.BinarySearch(xs, v)
	return i
}

// FindRange returns the half-open index range [start, end) of elements in [lo, hi].
func FindRange(xs []int, lo, hi int) (start, end int) {
	if hi < lo {
		return 0, 0
	}
	start = FindPredecessorIndex(xs, lo)
	end = start + FindPredecessorIndex(xs[start:], hi+1)
	return start, end
}

// AreEqual reports whether a and b hold the same elements.
func AreEqual(a, b []int) bool {
	return slices.Equal(a, b)
}

// AreIntersecting reports whether a and b share at least one element.
func AreIntersecting(a, b []int) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if a[len(a)-1] < b[0] || b[len(b)-1] < a[0] {
		return false
	}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			return true
		}
	}
	return false
}

// IsSubset reports whether every element of sub is in super.
func IsSubset(sub, super []int) bool {
	if len(sub) == 0 {
		return true
	}
	if len(sub) > len(super) || sub[0] < super[0] || sub[len(sub)-1] > super[len(super)-1] {
		return false
	}
	j := FindPredecessorIndex(super, sub[0])
	for _, v := range sub {
		for j < len(super) && super[j] < v {
			j++
		}
		if j == len(super) || super[j] != v {
			return false
		}
		j++
	}
	return true
}

// IntersectionSize returns |a ∩ b|.
func IntersectionSize(a, b []int) int {
	n, i, j := 0, 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			n++
			i++
			j++
		}
	}
	return n
}

// Union returns the sorted union of a and b.
func Union(a, b []int) []int {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	// disjoint and ordered: plain concatenation
	if a[len(a)-1] < b[0] {
		return slices.Concat(a, b)
	}
	if b[len(b)-1] < a[0] {
		return slices.Concat(b, a)
	}
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	if len(out) == len(a) {
		return a
	}
	if len(out) == len(b) {
		return b
	}
	return out
}

// Intersect returns the sorted intersection of a and b.
func Intersect(a, b []int) []int {
	n := IntersectionSize(a, b)
	if n == 0 {
		return nil
	}
	if n == len(a) {
		return a
	}
	if n == len(b) {
		return b
	}
	out := make([]int, 0, n)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

// Subtract returns the elements of a that are not in b.
func Subtract(a, b []int) []int {
	n := IntersectionSize(a, b)
	if n == 0 {
		return a
	}
	if n == len(a) {
		return nil
	}
	out := make([]int, 0, len(a)-n)
	i, j := 0, 0
	for i < len(a) {
		if j < len(b) && b[j] < a[i] {
			j++
			continue
		}
		if j < len(b) && b[j] == a[i] {
			i++
			j++
			continue
		}
		out = append(out, a[i])
		i++
	}
	return out
}

// IndicesOf returns, in ascending order, the positions in a of the elements of b
// that are present in a.
func IndicesOf(a, b []int) []int {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]int, 0, min(len(a), len(b)))
	i := FindPredecessorIndex(a, b[0])
	j := 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, i)
			i++
			j++
		}
	}
	return out
}
