// Package visited provides a resettable set of small non-negative ints.
package visited

// Set tracks visited ids in a bitset. Reset only clears the words touched
// since the last reset, so reuse across queries costs O(visited).
type Set struct {
	bits  []uint64
	dirty []int // word indices with at least one bit set
}

// New creates a set sized for ids below capacity. Larger ids grow it.
func New(capacity int) *Set {
	return &Set{
		bits:  make([]uint64, (capacity+63)/64),
		dirty: make([]int, 0, 16),
	}
}

// Visit marks id and reports whether it was newly marked.
func (s *Set) Visit(id int) bool {
	w := id >> 6
	if w >= len(s.bits) {
		s.grow(w + 1)
	}
	mask := uint64(1) << (id & 63)
	old := s.bits[w]
	if old&mask != 0 {
		return false
	}
	if old == 0 {
		s.dirty = append(s.dirty, w)
	}
	s.bits[w] = old | mask
	return true
}

// Visited reports whether id is marked.
func (s *Set) Visited(id int) bool {
	w := id >> 6
	if w >= len(s.bits) {
		return false
	}
	return s.bits[w]&(uint64(1)<<(id&63)) != 0
}

// Reset clears all marks.
func (s *Set) Reset() {
	for _, w := range s.dirty {
		s.bits[w] = 0
	}
	s.dirty = s.dirty[:0]
}

// EnsureCapacity grows the set to hold ids below capacity without reallocating.
func (s *Set) EnsureCapacity(capacity int) {
	if words := (capacity + 63) / 64; words > len(s.bits) {
		s.grow(words)
	}
}

func (s *Set) grow(words int) {
	n := max(len(s.bits)*2, words)
	bits := make([]uint64, n)
	copy(bits, s.bits)
	s.bits = bits
}
