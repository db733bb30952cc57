package orderedset

import (
	"fmt"
	"iter"
	"strings"

	"github.com/hupe1980/molsel/orderedset/sortedarray"
)

// IntervalThreshold is the array length above which a contiguous array is
// stored as an interval by OfSortedArray.
const IntervalThreshold = 3

type kind uint8

const (
	kindInterval kind = iota
	kindArray
)

// Set is an immutable ascending set of integers. The zero value is empty.
type Set struct {
	kind kind
	lo   int
	hi   int
	xs   []int
}

// Empty returns the empty set.
func Empty() Set { return Set{} }

// OfBounds returns the interval [lo, hi). hi <= lo yields the empty set.
func OfBounds(lo, hi int) Set {
	if hi <= lo {
		return Set{}
	}
	return Set{kind: kindInterval, lo: lo, hi: hi}
}

// OfRange returns the closed interval [lo, hi].
func OfRange(lo, hi int) Set { return OfBounds(lo, hi+1) }

// OfLength returns [0, n).
func OfLength(n int) Set { return OfBounds(0, n) }

// OfSingleton returns {v}.
func OfSingleton(v int) Set { return OfBounds(v, v+1) }

// OfSortedArray wraps a strictly increasing slice. The slice is retained and
// must not be modified afterwards. Contiguous arrays longer than
// IntervalThreshold are stored as intervals.
func OfSortedArray(xs []int) Set {
	if len(xs) == 0 {
		return Set{}
	}
	if len(xs) > IntervalThreshold && sortedarray.IsRange(xs) {
		return OfRange(xs[0], xs[len(xs)-1])
	}
	return Set{kind: kindArray, xs: xs}
}

// OfSortedArrayRange wraps a strictly increasing slice, collapsing any
// contiguous array into an interval regardless of length.
func OfSortedArrayRange(xs []int) Set {
	if len(xs) == 0 {
		return Set{}
	}
	if sortedarray.IsRange(xs) {
		return OfRange(xs[0], xs[len(xs)-1])
	}
	return Set{kind: kindArray, xs: xs}
}

// IsInterval reports whether s is stored in interval form.
func (s Set) IsInterval() bool { return s.kind == kindInterval }

// Size returns the number of elements.
func (s Set) Size() int {
	if s.kind == kindInterval {
		return s.hi - s.lo
	}
	return len(s.xs)
}

// IsEmpty reports whether s has no elements.
func (s Set) IsEmpty() bool { return s.Size() == 0 }

// Has reports whether v is in s.
func (s Set) Has(v int) bool {
	if s.kind == kindInterval {
		return v >= s.lo && v < s.hi
	}
	return sortedarray.Has(s.xs, v)
}

// IndexOf returns the rank of v in s or -1.
func (s Set) IndexOf(v int) int {
	if s.kind == kindInterval {
		if v >= s.lo && v < s.hi {
			return v - s.lo
		}
		return -1
	}
	return sortedarray.IndexOf(s.xs, v)
}

// At returns the i-th smallest element. i must be in [0, Size()).
func (s Set) At(i int) int {
	if s.kind == kindInterval {
		return s.lo + i
	}
	return s.xs[i]
}

// Min returns the smallest element. Undefined for the empty set.
func (s Set) Min() int {
	if s.kind == kindInterval {
		return s.lo
	}
	return s.xs[0]
}

// Max returns the largest element. Undefined for the empty set.
func (s Set) Max() int {
	if s.kind == kindInterval {
		return s.hi - 1
	}
	return s.xs[len(s.xs)-1]
}

// Start returns Min, or 0 for the empty interval.
func (s Set) Start() int {
	if s.IsEmpty() {
		return 0
	}
	return s.Min()
}

// End returns Max+1, or 0 for the empty interval.
func (s Set) End() int {
	if s.IsEmpty() {
		return 0
	}
	return s.Max() + 1
}

// ForEach calls f with each element and its rank in ascending order.
func (s Set) ForEach(f func(v, i int)) {
	if s.kind == kindInterval {
		for v := s.lo; v < s.hi; v++ {
			f(v, v-s.lo)
		}
		return
	}
	for i, v := range s.xs {
		f(v, i)
	}
}

// All iterates over (rank, element) pairs in ascending order.
func (s Set) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		n := s.Size()
		for i := 0; i < n; i++ {
			if !yield(i, s.At(i)) {
				return
			}
		}
	}
}

// ToSlice returns the elements as a new slice.
func (s Set) ToSlice() []int {
	out := make([]int, s.Size())
	s.ForEach(func(v, i int) { out[i] = v })
	return out
}

// array returns the elements as a slice, aliasing the backing array when possible.
func (s Set) array() []int {
	if s.kind == kindArray {
		return s.xs
	}
	return s.ToSlice()
}

// String renders intervals as "[lo, hi)" and arrays as "{a, b, c}".
func (s Set) String() string {
	if s.kind == kindInterval {
		return fmt.Sprintf("[%d, %d)", s.lo, s.hi)
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.xs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte('}')
	return b.String()
}
