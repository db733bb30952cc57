package loci

import (
	"slices"

	"github.com/hupe1980/molsel/orderedset"
	"github.com/hupe1980/molsel/orderedset/sortedarray"
	"github.com/hupe1980/molsel/structure"
)

var _ structure.ElementSink = (*Builder)(nil)

// Builder accumulates streamed model elements into a Loci. Units may be
// begun more than once; their elements are merged.
type Builder struct {
	structure *structure.Structure
	current   *structure.Unit
	pending   []int
	units     map[int]*builderUnit
}

type builderUnit struct {
	unit     *structure.Unit
	elements []int
}

// NewBuilder returns an empty builder over s.
func NewBuilder(s *structure.Structure) *Builder {
	return &Builder{structure: s, units: map[int]*builderUnit{}}
}

// BeginUnit starts collecting elements of u.
func (b *Builder) BeginUnit(u *structure.Unit) {
	b.current = u
	b.pending = b.pending[:0]
}

// AddElement adds a model element of the current unit.
func (b *Builder) AddElement(element int) {
	b.pending = append(b.pending, element)
}

// CommitUnit merges the elements added since BeginUnit.
func (b *Builder) CommitUnit() {
	if b.current == nil || len(b.pending) == 0 {
		b.current = nil
		return
	}
	slices.Sort(b.pending)
	added := slices.Compact(slices.Clone(b.pending))
	if acc, ok := b.units[b.current.ID()]; ok {
		acc.elements = sortedarray.Union(acc.elements, added)
	} else {
		b.units[b.current.ID()] = &builderUnit{unit: b.current, elements: added}
	}
	b.current = nil
}

// Build returns the accumulated selection.
func (b *Builder) Build() Loci {
	elements := make([]Element, 0, len(b.units))
	for _, acc := range b.units {
		indices := orderedset.OfSortedArray(sortedarray.IndicesOf(acc.unit.Elements(), acc.elements))
		elements = append(elements, Element{Unit: acc.unit, Indices: indices})
	}
	return fromEntries(b.structure, elements)
}
