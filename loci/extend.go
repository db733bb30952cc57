package loci

import (
	"github.com/hupe1980/molsel/internal/bitmap"
	"github.com/hupe1980/molsel/orderedset"
	"github.com/hupe1980/molsel/orderedset/sortedarray"
	"github.com/hupe1980/molsel/structure"
)

func isWholeUnit(e Element) bool { return e.Indices.Size() == e.Unit.Len() }

// ExtendToWholeResidues grows every touched atomic residue to all of its
// atoms in the unit. With restrictToConformation, atoms of other alternate
// locations than the touched ones are left out unless a blank location was
// touched. Coarse units are one element per residue and pass through.
func ExtendToWholeResidues(l Loci, restrictToConformation bool) Loci {
	elements := make([]Element, 0, len(l.elements))
	altIDs := map[string]struct{}{}
	for _, e := range l.elements {
		if e.Indices.IsEmpty() {
			continue
		}
		residues, ok := e.Unit.Residues()
		if !ok || isWholeUnit(e) {
			elements = append(elements, e)
			continue
		}

		u := e.Unit
		unitElements := u.Elements()
		touched := make([]int, 0, e.Indices.Size())
		n := e.Indices.Size()
		for i := 0; i < n; {
			clear(altIDs)
			first := unitElements[e.Indices.At(i)]
			residue := residues.Index[first]
			altIDs[u.AltID(first)] = struct{}{}
			for i++; i < n; i++ {
				el := unitElements[e.Indices.At(i)]
				if residues.Index[el] != residue {
					break
				}
				altIDs[u.AltID(el)] = struct{}{}
			}
			_, hasSharedAltID := altIDs[""]

			lo, hi := residues.Range(residue)
			start, end := sortedarray.FindRange(unitElements, lo, hi-1)
			for j := start; j < end; j++ {
				if restrictToConformation && !hasSharedAltID {
					alt := u.AltID(unitElements[j])
					if _, seen := altIDs[alt]; alt != "" && !seen {
						continue
					}
				}
				touched = append(touched, j)
			}
		}
		elements = append(elements, Element{Unit: u, Indices: orderedset.OfSortedArray(touched)})
	}
	return fromEntries(l.structure, elements)
}

// collectChains appends the positions of u's elements whose chain is in chains.
func collectChains(u *structure.Unit, chains *bitmap.Bitmap, elements []Element) []Element {
	chainIndex := u.Chains().Index
	unitElements := u.Elements()
	positions := make([]int, 0, len(unitElements))
	for i, el := range unitElements {
		if chains.Contains(chainIndex[el]) {
			positions = append(positions, i)
		}
	}
	switch len(positions) {
	case 0:
		return elements
	case len(unitElements):
		return append(elements, Element{Unit: u, Indices: orderedset.OfLength(len(unitElements))})
	}
	return append(elements, Element{Unit: u, Indices: orderedset.OfSortedArray(positions)})
}

// ExtendToWholeChains grows the selection to whole chains. For partitioned
// units the chains touched across a run of entries of one chain-operator
// group are re-collected from every unit of that group.
func ExtendToWholeChains(l Loci) Loci {
	elements := make([]Element, 0, len(l.elements))
	units := l.structure.Units()

	for i := 0; i < len(l.elements); i++ {
		e := l.elements[i]
		if e.Indices.IsEmpty() {
			continue
		}
		if !e.Unit.IsPartitioned() && isWholeUnit(e) {
			elements = append(elements, e)
			continue
		}

		chains := bitmap.Get()
		if !e.Unit.IsPartitioned() {
			touchChains(e, chains)
			elements = collectChains(e.Unit, chains, elements)
			bitmap.Put(chains)
			continue
		}

		group := e.Unit.Group()
		for ; i < len(l.elements) && l.elements[i].Unit.IsPartitioned() && l.elements[i].Unit.Group() == group; i++ {
			touchChains(l.elements[i], chains)
		}
		i--
		for _, ui := range l.structure.UnitsInGroup(group) {
			elements = collectChains(units[ui], chains, elements)
		}
		bitmap.Put(chains)
	}
	return fromEntries(l.structure, elements)
}

func touchChains(e Element, chains *bitmap.Bitmap) {
	chainIndex := e.Unit.Chains().Index
	unitElements := e.Unit.Elements()
	e.Indices.ForEach(func(v, _ int) {
		chains.Add(chainIndex[unitElements[v]])
	})
}

func wholeUnits(l Loci, match func(u *structure.Unit) bool) Loci {
	elements := make([]Element, 0, len(l.elements))
	for _, u := range l.structure.Units() {
		if u.Len() > 0 && match(u) {
			elements = append(elements, Element{Unit: u, Indices: orderedset.OfLength(u.Len())})
		}
	}
	return Loci{structure: l.structure, elements: elements}
}

type entityKey struct {
	model  *structure.Model
	entity string
}

func unitEntityKey(u *structure.Unit) entityKey {
	return entityKey{model: u.Model(), entity: u.EntityKey(u.Elements()[0])}
}

// ExtendToWholeEntities selects every unit whose model and first-element
// entity match those of a touched unit.
func ExtendToWholeEntities(l Loci) Loci {
	keys := map[entityKey]struct{}{}
	for _, e := range l.elements {
		if !e.Indices.IsEmpty() {
			keys[unitEntityKey(e.Unit)] = struct{}{}
		}
	}
	return wholeUnits(l, func(u *structure.Unit) bool {
		_, ok := keys[unitEntityKey(u)]
		return ok
	})
}

// ExtendToWholeModels selects every unit of a touched model.
func ExtendToWholeModels(l Loci) Loci {
	models := map[*structure.Model]struct{}{}
	for _, e := range l.elements {
		if !e.Indices.IsEmpty() {
			models[e.Unit.Model()] = struct{}{}
		}
	}
	return wholeUnits(l, func(u *structure.Unit) bool {
		_, ok := models[u.Model()]
		return ok
	})
}

// ExtendToWholeOperators selects every unit placed by a touched operator name.
func ExtendToWholeOperators(l Loci) Loci {
	names := map[string]struct{}{}
	for _, e := range l.elements {
		if !e.Indices.IsEmpty() {
			names[e.Unit.Operator().Name] = struct{}{}
		}
	}
	return wholeUnits(l, func(u *structure.Unit) bool {
		_, ok := names[u.Operator().Name]
		return ok
	})
}

// ExtendToAllInstances replicates the touched model elements onto every
// unit built on the same model.
func ExtendToAllInstances(l Loci) Loci {
	byModel := map[*structure.Model]*bitmap.Bitmap{}
	var order []*structure.Model
	for _, e := range l.elements {
		if e.Indices.IsEmpty() {
			continue
		}
		m := e.Unit.Model()
		acc, ok := byModel[m]
		if !ok {
			acc = bitmap.New()
			byModel[m] = acc
			order = append(order, m)
		}
		unitElements := e.Unit.Elements()
		e.Indices.ForEach(func(v, _ int) {
			acc.Add(unitElements[v])
		})
	}

	units := l.structure.Units()
	elements := make([]Element, 0, len(l.elements))
	for _, m := range order {
		global := byModel[m].AppendTo(nil)
		for _, ui := range l.structure.UnitsOfModel(m) {
			u := units[ui]
			unitElements := u.Elements()
			var indices orderedset.Set
			if len(unitElements) == len(global) && sortedarray.IsRange(unitElements) && sortedarray.AreEqual(unitElements, global) {
				indices = orderedset.OfLength(len(unitElements))
			} else {
				indices = orderedset.OfSortedArray(sortedarray.IndicesOf(unitElements, global))
			}
			elements = append(elements, Element{Unit: u, Indices: indices})
		}
	}
	return fromEntries(l.structure, elements)
}
