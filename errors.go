package molsel

import (
	"errors"
	"fmt"

	"github.com/hupe1980/molsel/loci"
	"github.com/hupe1980/molsel/query"
	"github.com/hupe1980/molsel/structure"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")
	// ErrInvalidRadius is returned for negative or NaN radii.
	ErrInvalidRadius = errors.New("radius must be a non-negative number")
	// ErrUnknownGranularity is returned for unknown extension levels.
	ErrUnknownGranularity = loci.ErrUnknownGranularity
	// ErrNilStructure is returned when an Explorer is created without a structure.
	ErrNilStructure = errors.New("structure is nil")
	// ErrInvalidQuery wraps compile errors of decoded or given expressions.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidStructure wraps structure and unit construction errors.
	ErrInvalidStructure = errors.New("invalid structure")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var us *query.ErrUnknownSymbol
	var ar *query.ErrArity
	var ty *query.ErrType
	if errors.As(err, &us) || errors.As(err, &ar) || errors.As(err, &ty) {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	var ue *structure.ErrUnsortedElements
	var oor *structure.ErrElementOutOfRange
	var du *structure.ErrDuplicateUnit
	if errors.As(err, &ue) || errors.As(err, &oor) || errors.As(err, &du) ||
		errors.Is(err, structure.ErrNotRigid) || errors.Is(err, structure.ErrNoHierarchy) {
		return fmt.Errorf("%w: %w", ErrInvalidStructure, err)
	}

	return err
}
