package orderedset

import "github.com/hupe1980/molsel/orderedset/sortedarray"

// AreEqual reports whether a and b hold the same elements.
func AreEqual(a, b Set) bool {
	sa, sb := a.Size(), b.Size()
	if sa != sb {
		return false
	}
	if sa == 0 {
		return true
	}
	if a.kind == kindArray && b.kind == kindArray {
		return sortedarray.AreEqual(a.xs, b.xs)
	}
	// a strictly increasing array with the same size and bounds as an interval is that interval
	return a.Min() == b.Min() && a.Max() == b.Max()
}

// AreIntersecting reports whether a and b share an element.
func AreIntersecting(a, b Set) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	switch {
	case a.kind == kindInterval && b.kind == kindInterval:
		return a.lo < b.hi && b.lo < a.hi
	case a.kind == kindInterval:
		start, end := sortedarray.FindRange(b.xs, a.lo, a.hi-1)
		return end > start
	case b.kind == kindInterval:
		start, end := sortedarray.FindRange(a.xs, b.lo, b.hi-1)
		return end > start
	default:
		return sortedarray.AreIntersecting(a.xs, b.xs)
	}
}

// IsSubset reports whether every element of sub is in super.
func IsSubset(sub, super Set) bool {
	if sub.IsEmpty() {
		return true
	}
	if super.IsEmpty() || sub.Size() > super.Size() {
		return false
	}
	if sub.Min() < super.Min() || sub.Max() > super.Max() {
		return false
	}
	switch {
	case super.kind == kindInterval:
		return true
	case sub.kind == kindInterval:
		start, end := sortedarray.FindRange(super.xs, sub.lo, sub.hi-1)
		return end-start == sub.Size()
	default:
		return sortedarray.IsSubset(sub.xs, super.xs)
	}
}

// IntersectionSize returns |a ∩ b|.
func IntersectionSize(a, b Set) int {
	if a.IsEmpty() || b.IsEmpty() {
		return 0
	}
	switch {
	case a.kind == kindInterval && b.kind == kindInterval:
		return max(0, min(a.hi, b.hi)-max(a.lo, b.lo))
	case a.kind == kindInterval:
		start, end := sortedarray.FindRange(b.xs, a.lo, a.hi-1)
		return end - start
	case b.kind == kindInterval:
		start, end := sortedarray.FindRange(a.xs, b.lo, b.hi-1)
		return end - start
	default:
		return sortedarray.IntersectionSize(a.xs, b.xs)
	}
}

// Union returns a ∪ b.
func Union(a, b Set) Set {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	switch {
	case a.kind == kindInterval && b.kind == kindInterval:
		if a.lo == b.lo && a.hi == b.hi {
			return a
		}
		// overlapping or touching intervals stay an interval
		if a.lo <= b.hi && b.lo <= a.hi {
			return OfBounds(min(a.lo, b.lo), max(a.hi, b.hi))
		}
		if a.lo < b.lo {
			return OfSortedArrayRange(append(a.ToSlice(), b.ToSlice()...))
		}
		return OfSortedArrayRange(append(b.ToSlice(), a.ToSlice()...))
	case a.kind == kindInterval:
		return unionIntervalArray(a, b.xs)
	case b.kind == kindInterval:
		return unionIntervalArray(b, a.xs)
	default:
		return OfSortedArrayRange(sortedarray.Union(a.xs, b.xs))
	}
}

func unionIntervalArray(iv Set, xs []int) Set {
	if xs[0] >= iv.lo && xs[len(xs)-1] < iv.hi {
		return iv
	}
	start, end := sortedarray.FindRange(xs, iv.lo, iv.hi-1)
	out := make([]int, 0, start+(len(xs)-end)+iv.Size())
	out = append(out, xs[:start]...)
	for v := iv.lo; v < iv.hi; v++ {
		out = append(out, v)
	}
	out = append(out, xs[end:]...)
	return OfSortedArrayRange(out)
}

// Intersect returns a ∩ b.
func Intersect(a, b Set) Set {
	if a.IsEmpty() || b.IsEmpty() {
		return Set{}
	}
	switch {
	case a.kind == kindInterval && b.kind == kindInterval:
		return OfBounds(max(a.lo, b.lo), min(a.hi, b.hi))
	case a.kind == kindInterval:
		return intersectArrayInterval(b, a)
	case b.kind == kindInterval:
		return intersectArrayInterval(a, b)
	default:
		return OfSortedArrayRange(sortedarray.Intersect(a.xs, b.xs))
	}
}

func intersectArrayInterval(arr, iv Set) Set {
	start, end := sortedarray.FindRange(arr.xs, iv.lo, iv.hi-1)
	if end == start {
		return Set{}
	}
	if end-start == len(arr.xs) {
		return arr
	}
	return OfSortedArrayRange(arr.xs[start:end])
}

// Subtract returns a \ b.
func Subtract(a, b Set) Set {
	if a.IsEmpty() || b.IsEmpty() {
		return a
	}
	switch {
	case a.kind == kindInterval && b.kind == kindInterval:
		return subtractIntervals(a, b)
	case a.kind == kindInterval:
		start, end := sortedarray.FindRange(b.xs, a.lo, a.hi-1)
		if end == start {
			return a
		}
		if end-start == a.Size() {
			return Set{}
		}
		holes := b.xs[start:end]
		out := make([]int, 0, a.Size()-len(holes))
		h := 0
		for v := a.lo; v < a.hi; v++ {
			if h < len(holes) && holes[h] == v {
				h++
				continue
			}
			out = append(out, v)
		}
		return OfSortedArrayRange(out)
	case b.kind == kindInterval:
		start, end := sortedarray.FindRange(a.xs, b.lo, b.hi-1)
		if end == start {
			return a
		}
		if end-start == len(a.xs) {
			return Set{}
		}
		out := make([]int, 0, len(a.xs)-(end-start))
		out = append(out, a.xs[:start]...)
		out = append(out, a.xs[end:]...)
		return OfSortedArrayRange(out)
	default:
		return OfSortedArrayRange(sortedarray.Subtract(a.xs, b.xs))
	}
}

func subtractIntervals(a, b Set) Set {
	if b.hi <= a.lo || a.hi <= b.lo {
		return a
	}
	left := OfBounds(a.lo, b.lo)
	right := OfBounds(b.hi, a.hi)
	switch {
	case left.IsEmpty():
		return right
	case right.IsEmpty():
		return left
	default:
		// b splits a in two; no longer representable as a single interval
		return Set{kind: kindArray, xs: append(left.ToSlice(), right.ToSlice()...)}
	}
}

// IndexedIntersect maps idx, a set of positions into a, onto positions into b
// of the elements a[idx] that are also present in b. a and b must be sorted.
func IndexedIntersect(idx Set, a, b []int) Set {
	if idx.IsEmpty() || len(a) == 0 || len(b) == 0 {
		return Set{}
	}
	if len(a) == len(b) && sortedarray.AreEqual(a, b) {
		return idx
	}
	startJ := sortedarray.FindPredecessorIndex(b, a[idx.Min()])
	endJ := sortedarray.FindPredecessorIndex(b, a[idx.Max()]+1)
	out := make([]int, 0, min(idx.Size(), endJ-startJ))
	o, j, n := 0, startJ, idx.Size()
	for o < n && j < endJ {
		x, y := a[idx.At(o)], b[j]
		switch {
		case x < y:
			o++
		case x > y:
			j++
		default:
			out = append(out, j)
			o++
			j++
		}
	}
	return OfSortedArrayRange(out)
}
