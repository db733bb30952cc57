package structure

import (
	"fmt"

	"github.com/hupe1980/molsel/geom"
)

// IdentityName is the name of the identity operator.
const IdentityName = "1_555"

const rigidEps = 1e-6

// Symmetry classifies the origin of an operator.
type Symmetry uint8

const (
	SymmetryNone Symmetry = iota
	SymmetryAssembly
	SymmetryCrystal
	SymmetryNCS
)

func (s Symmetry) String() string {
	switch s {
	case SymmetryAssembly:
		return "assembly"
	case SymmetryCrystal:
		return "crystal"
	case SymmetryNCS:
		return "ncs"
	}
	return "none"
}

// Operator is a named rigid transform from a unit's local frame into the
// structure frame.
type Operator struct {
	Name       string
	Matrix     geom.Mat4
	Inverse    geom.Mat4
	IsIdentity bool
	Symmetry   Symmetry
	AssemblyID string
	NCSID      int
}

// NewOperator validates m as rigid and precomputes its inverse.
func NewOperator(name string, m geom.Mat4, optFns ...func(o *Operator)) (Operator, error) {
	if !m.IsRotationAndTranslation(rigidEps) {
		return Operator{}, fmt.Errorf("%s: %w", name, ErrNotRigid)
	}
	inv, ok := geom.Invert(m)
	if !ok {
		return Operator{}, fmt.Errorf("%s: %w", name, ErrNotRigid)
	}
	op := Operator{
		Name:       name,
		Matrix:     m,
		Inverse:    inv,
		IsIdentity: m.IsIdentity(rigidEps),
	}
	for _, fn := range optFns {
		fn(&op)
	}
	return op, nil
}

// IdentityOperator returns the identity operator.
func IdentityOperator() Operator {
	return Operator{
		Name:       IdentityName,
		Matrix:     geom.Identity(),
		Inverse:    geom.Identity(),
		IsIdentity: true,
	}
}

// Apply maps a local point into the structure frame.
func (o *Operator) Apply(p geom.Vec3) geom.Vec3 {
	if o.IsIdentity {
		return p
	}
	return o.Matrix.TransformPoint(p)
}

// ApplyInverse maps a structure-frame point into the local frame.
func (o *Operator) ApplyInverse(p geom.Vec3) geom.Vec3 {
	if o.IsIdentity {
		return p
	}
	return o.Inverse.TransformPoint(p)
}
