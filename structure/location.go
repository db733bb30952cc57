package structure

import "github.com/hupe1980/molsel/geom"

// Location addresses one model element of one unit.
type Location struct {
	Unit    *Unit
	Element int
}

// Position returns the structure-frame position of the location.
func (l Location) Position() geom.Vec3 { return l.Unit.Position(l.Element) }

// Radius returns the element radius of the location.
func (l Location) Radius() float64 { return l.Unit.Radius(l.Element) }

// ElementSink accumulates streamed query hits unit by unit. Elements are
// model element indices of the unit passed to BeginUnit.
type ElementSink interface {
	BeginUnit(u *Unit)
	AddElement(element int)
	CommitUnit()
}
