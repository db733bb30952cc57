package loci

import "github.com/hupe1980/molsel/orderedset"

func indexByUnit(l Loci) map[int]orderedset.Set {
	m := make(map[int]orderedset.Set, len(l.elements))
	for _, e := range l.elements {
		m[e.Unit.ID()] = e.Indices
	}
	return m
}

// Union selects the elements of either operand. The smaller operand is
// indexed by unit and merged into a scan of the larger.
func Union(a, b Loci) Loci {
	if len(a.elements) > len(b.elements) {
		a, b = b, a
	}
	if a.IsEmpty() {
		return b.normalized()
	}
	small := indexByUnit(a)
	elements := make([]Element, 0, len(a.elements)+len(b.elements))
	for _, e := range b.elements {
		if indices, ok := small[e.Unit.ID()]; ok {
			elements = append(elements, Element{Unit: e.Unit, Indices: orderedset.Union(indices, e.Indices)})
			delete(small, e.Unit.ID())
			continue
		}
		elements = append(elements, e)
	}
	for _, e := range a.elements {
		if _, ok := small[e.Unit.ID()]; ok {
			elements = append(elements, e)
		}
	}
	return fromEntries(b.structure, elements)
}

// Subtract selects the elements of a that are not in b.
func Subtract(a, b Loci) Loci {
	other := indexByUnit(b)
	elements := make([]Element, 0, len(a.elements))
	for _, e := range a.elements {
		if indices, ok := other[e.Unit.ID()]; ok {
			e = Element{Unit: e.Unit, Indices: orderedset.Subtract(e.Indices, indices)}
		}
		elements = append(elements, e)
	}
	return fromEntries(a.structure, elements)
}

// Intersect selects the elements in both a and b.
func Intersect(a, b Loci) Loci {
	if len(a.elements) > len(b.elements) {
		a, b = b, a
	}
	small := indexByUnit(a)
	elements := make([]Element, 0, len(a.elements))
	for _, e := range b.elements {
		indices, ok := small[e.Unit.ID()]
		if !ok {
			continue
		}
		elements = append(elements, Element{Unit: e.Unit, Indices: orderedset.Intersect(indices, e.Indices)})
	}
	return fromEntries(b.structure, elements)
}

// AreIntersecting reports whether a and b share an element.
func AreIntersecting(a, b Loci) bool {
	if len(a.elements) > len(b.elements) {
		a, b = b, a
	}
	small := indexByUnit(a)
	for _, e := range b.elements {
		if indices, ok := small[e.Unit.ID()]; ok && orderedset.AreIntersecting(indices, e.Indices) {
			return true
		}
	}
	return false
}

// IsSubset reports whether every element of small is also in big.
func IsSubset(small, big Loci) bool {
	index := indexByUnit(big)
	for _, e := range small.elements {
		if e.Indices.IsEmpty() {
			continue
		}
		indices, ok := index[e.Unit.ID()]
		if !ok || !orderedset.IsSubset(e.Indices, indices) {
			return false
		}
	}
	return true
}
