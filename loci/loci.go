package loci

import (
	"slices"

	"github.com/hupe1980/molsel/orderedset"
	"github.com/hupe1980/molsel/structure"
)

// Element is the touched subset of one unit, as positions into Unit.Elements.
type Element struct {
	Unit    *structure.Unit
	Indices orderedset.Set
}

// Loci is a selection over a structure. At most one Element per unit.
type Loci struct {
	structure *structure.Structure
	elements  []Element
}

// New returns a Loci over s holding elements as given.
func New(s *structure.Structure, elements []Element) Loci {
	return Loci{structure: s, elements: elements}
}

// All selects every element of s.
func All(s *structure.Structure) Loci {
	elements := make([]Element, 0, len(s.Units()))
	for _, u := range s.Units() {
		elements = append(elements, Element{Unit: u, Indices: orderedset.OfLength(u.Len())})
	}
	return Loci{structure: s, elements: elements}
}

// None selects nothing on s.
func None(s *structure.Structure) Loci { return Loci{structure: s} }

// Structure returns the structure the selection refers to.
func (l Loci) Structure() *structure.Structure { return l.structure }

// Elements returns the per-unit entries. Callers must not modify it.
func (l Loci) Elements() []Element { return l.elements }

// Size returns the number of selected elements.
func (l Loci) Size() int {
	n := 0
	for _, e := range l.elements {
		n += e.Indices.Size()
	}
	return n
}

// IsEmpty reports whether nothing is selected.
func (l Loci) IsEmpty() bool {
	for _, e := range l.elements {
		if !e.Indices.IsEmpty() {
			return false
		}
	}
	return true
}

// IsWholeStructure reports whether every element of the structure is selected.
func (l Loci) IsWholeStructure() bool {
	return l.Size() == l.structure.ElementCount()
}

// AreEqual compares entries pairwise in stored order; empty entries are
// skipped. Selections with equal content but different entry order compare
// unequal. See AreEqualUnordered.
func AreEqual(a, b Loci) bool {
	if a.structure != b.structure {
		return false
	}
	i, j := 0, 0
	for {
		for i < len(a.elements) && a.elements[i].Indices.IsEmpty() {
			i++
		}
		for j < len(b.elements) && b.elements[j].Indices.IsEmpty() {
			j++
		}
		if i == len(a.elements) || j == len(b.elements) {
			return i == len(a.elements) && j == len(b.elements)
		}
		ea, eb := a.elements[i], b.elements[j]
		if ea.Unit.ID() != eb.Unit.ID() || !orderedset.AreEqual(ea.Indices, eb.Indices) {
			return false
		}
		i++
		j++
	}
}

// AreEqualUnordered is AreEqual after putting both selections in unit order.
func AreEqualUnordered(a, b Loci) bool {
	return AreEqual(a.normalized(), b.normalized())
}

// normalized returns l in structure unit order, duplicate unit entries
// merged and empty entries dropped.
func (l Loci) normalized() Loci {
	return fromEntries(l.structure, slices.Clone(l.elements))
}

// fromEntries normalizes entries in place, reusing the slice.
func fromEntries(s *structure.Structure, entries []Element) Loci {
	entries = slices.DeleteFunc(entries, func(e Element) bool { return e.Indices.IsEmpty() })
	if !isCanonical(entries) {
		slices.SortStableFunc(entries, func(a, b Element) int { return a.Unit.ID() - b.Unit.ID() })
		out := entries[:0]
		for _, e := range entries {
			if n := len(out); n > 0 && out[n-1].Unit.ID() == e.Unit.ID() {
				out[n-1].Indices = orderedset.Union(out[n-1].Indices, e.Indices)
				continue
			}
			out = append(out, e)
		}
		entries = out
	}
	return Loci{structure: s, elements: entries}
}

func isCanonical(entries []Element) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Unit.ID() >= entries[i].Unit.ID() {
			return false
		}
	}
	return true
}

// FirstLocation returns the first selected element.
func (l Loci) FirstLocation() (structure.Location, bool) {
	for _, e := range l.elements {
		if !e.Indices.IsEmpty() {
			return structure.Location{Unit: e.Unit, Element: e.Unit.Elements()[e.Indices.Min()]}, true
		}
	}
	return structure.Location{}, false
}

// FirstElement selects only the first selected element.
func FirstElement(l Loci) Loci {
	for _, e := range l.elements {
		if !e.Indices.IsEmpty() {
			return Loci{structure: l.structure, elements: []Element{{Unit: e.Unit, Indices: orderedset.OfSingleton(e.Indices.Min())}}}
		}
	}
	return None(l.structure)
}

// FirstResidue selects the whole residue of the first selected element.
func FirstResidue(l Loci) Loci { return ExtendToWholeResidues(FirstElement(l), false) }

// FirstChain selects the whole chain of the first selected element.
func FirstChain(l Loci) Loci { return ExtendToWholeChains(FirstElement(l)) }

// ForEachLocation calls f on every selected element in entry order.
func (l Loci) ForEachLocation(f func(loc structure.Location)) {
	for _, e := range l.elements {
		elements := e.Unit.Elements()
		e.Indices.ForEach(func(v, _ int) {
			f(structure.Location{Unit: e.Unit, Element: elements[v]})
		})
	}
}

// Remap re-expresses l on s by unit id and model element. Units missing
// from s are dropped, as are elements no longer in their unit.
func Remap(l Loci, s *structure.Structure) Loci {
	if s == l.structure {
		return l
	}
	elements := make([]Element, 0, len(l.elements))
	for _, e := range l.elements {
		u, ok := s.UnitByID(e.Unit.ID())
		if !ok {
			continue
		}
		indices := orderedset.IndexedIntersect(e.Indices, e.Unit.Elements(), u.Elements())
		if !indices.IsEmpty() {
			elements = append(elements, Element{Unit: u, Indices: indices})
		}
	}
	return fromEntries(s, elements)
}

// ToStructure builds a new structure from the selected elements.
func ToStructure(l Loci) (*structure.Structure, error) {
	units := make([]*structure.Unit, 0, len(l.elements))
	for _, e := range l.elements {
		if e.Indices.IsEmpty() {
			continue
		}
		elements := make([]int, 0, e.Indices.Size())
		unitElements := e.Unit.Elements()
		e.Indices.ForEach(func(v, _ int) {
			elements = append(elements, unitElements[v])
		})
		child, err := e.Unit.Child(elements)
		if err != nil {
			return nil, err
		}
		units = append(units, child)
	}
	return structure.New(units)
}
