package structure

import (
	"errors"
	"fmt"
)

var (
	// ErrNotRigid is returned when an operator matrix is not a rotation plus translation.
	ErrNotRigid = errors.New("operator is not rigid")

	// ErrNoHierarchy is returned when a unit kind has no matching model hierarchy.
	ErrNoHierarchy = errors.New("model has no hierarchy for unit kind")
)

// ErrUnsortedElements indicates unit elements that are not strictly increasing.
type ErrUnsortedElements struct {
	UnitID   int
	Position int
}

func (e *ErrUnsortedElements) Error() string {
	return fmt.Sprintf("unit %d: elements not strictly increasing at position %d", e.UnitID, e.Position)
}

// ErrElementOutOfRange indicates a unit element outside the model's element table.
type ErrElementOutOfRange struct {
	UnitID  int
	Element int
	Count   int
}

func (e *ErrElementOutOfRange) Error() string {
	return fmt.Sprintf("unit %d: element %d out of range [0, %d)", e.UnitID, e.Element, e.Count)
}

// ErrDuplicateUnit indicates two units with the same id in one structure.
type ErrDuplicateUnit struct {
	UnitID int
}

func (e *ErrDuplicateUnit) Error() string {
	return fmt.Sprintf("duplicate unit id %d", e.UnitID)
}
