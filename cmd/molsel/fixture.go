package main

import (
	"errors"
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"
	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/internal/conv"
	"github.com/hupe1980/molsel/lookup"
	"github.com/hupe1980/molsel/structure"
)

// Fixture is the JSON form of a structure.
type Fixture struct {
	Models    []ModelFixture    `json:"models" validate:"required,min=1,dive"`
	Operators []OperatorFixture `json:"operators" validate:"dive"`
	Units     []UnitFixture     `json:"units" validate:"required,min=1,dive"`
}

// ModelFixture is one model with atomic and optional coarse tables.
type ModelFixture struct {
	ID        string         `json:"id" validate:"required"`
	Label     string         `json:"label"`
	ModelNum  int            `json:"model_num"`
	EntityIDs []string       `json:"entity_ids"`
	Atoms     *AtomsFixture  `json:"atoms"`
	Spheres   *CoarseFixture `json:"spheres"`
	Gaussians *CoarseFixture `json:"gaussians"`
}

// AtomsFixture holds per-atom columns. Residue and chain ids must start at 0
// and never decrease or skip.
type AtomsFixture struct {
	X            []float64 `json:"x" validate:"required"`
	Y            []float64 `json:"y" validate:"required"`
	Z            []float64 `json:"z" validate:"required"`
	AltIDs       []string  `json:"alt_ids"`
	SourceIndex  []int     `json:"source_index"`
	Radius       []float64 `json:"radius"`
	ResidueIndex []int     `json:"residue_index" validate:"required"`
	ChainIndex   []int     `json:"chain_index" validate:"required"`
	ChainEntity  []int     `json:"chain_entity"`
}

// CoarseFixture holds per-element columns of a coarse hierarchy.
type CoarseFixture struct {
	X           []float64 `json:"x" validate:"required"`
	Y           []float64 `json:"y" validate:"required"`
	Z           []float64 `json:"z" validate:"required"`
	Radius      []float64 `json:"radius" validate:"required"`
	ChainIndex  []int     `json:"chain_index" validate:"required"`
	ChainEntity []int     `json:"chain_entity"`
}

// OperatorFixture is a named column-major rigid transform.
type OperatorFixture struct {
	Name     string    `json:"name" validate:"required"`
	Matrix   []float64 `json:"matrix" validate:"len=16"`
	Symmetry string    `json:"symmetry" validate:"omitempty,oneof=none assembly crystal ncs"`
}

// UnitFixture places elements of a model under an operator.
type UnitFixture struct {
	ID           int    `json:"id"`
	Model        string `json:"model" validate:"required"`
	Kind         string `json:"kind" validate:"omitempty,oneof=atomic spheres gaussians"`
	Elements     []int  `json:"elements" validate:"required"`
	Operator     string `json:"operator"`
	ChainGroupID int    `json:"chain_group_id"`
	Partitioned  bool   `json:"partitioned"`
}

var (
	errColumnLength = errors.New("column length mismatch")
	errSegmentIndex = errors.New("segment ids must start at 0 and grow by at most 1")
	errSourceIndex  = errors.New("source index must be a non-negative uint32")
)

// checkSegmentIndex rejects element to segment maps that decrease or skip ids.
func checkSegmentIndex(column string, index []int) error {
	prev := -1
	for e, id := range index {
		if id != prev+1 && (e == 0 || id != prev) {
			return fmt.Errorf("%s[%d] = %d after %d: %w", column, e, id, prev, errSegmentIndex)
		}
		prev = id
	}
	return nil
}

func checkSourceIndex(index []int) error {
	for e, v := range index {
		if !conv.FitsUint32(v) {
			return fmt.Errorf("source_index[%d] = %d: %w", e, v, errSourceIndex)
		}
	}
	return nil
}

func readFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read structure: %w", err)
	}
	var f Fixture
	if err := gojson.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse structure %s: %w", path, err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid structure %s: %w", path, err)
	}
	return &f, nil
}

// Build turns the fixture into a structure.
func (f *Fixture) Build(lookupOpts ...func(o *lookup.Options)) (*structure.Structure, error) {
	models := make(map[string]*structure.Model, len(f.Models))
	for _, mf := range f.Models {
		m, err := mf.build()
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", mf.ID, err)
		}
		models[mf.ID] = m
	}

	ops := map[string]structure.Operator{structure.IdentityName: structure.IdentityOperator()}
	for _, of := range f.Operators {
		op, err := of.build()
		if err != nil {
			return nil, err
		}
		ops[of.Name] = op
	}

	units := make([]*structure.Unit, 0, len(f.Units))
	for _, uf := range f.Units {
		m, ok := models[uf.Model]
		if !ok {
			return nil, fmt.Errorf("unit %d: unknown model %q", uf.ID, uf.Model)
		}
		name := uf.Operator
		if name == "" {
			name = structure.IdentityName
		}
		op, ok := ops[name]
		if !ok {
			return nil, fmt.Errorf("unit %d: unknown operator %q", uf.ID, name)
		}
		u, err := structure.NewUnit(uf.ID, parseKind(uf.Kind), m, uf.Elements, op, func(o *structure.UnitOptions) {
			o.ChainGroupID = uf.ChainGroupID
			if uf.Partitioned {
				o.Partitioning = structure.Partitioned
			}
			o.Lookup = lookupOpts
		})
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return structure.New(units, lookupOpts...)
}

func parseKind(s string) structure.Kind {
	switch s {
	case "spheres":
		return structure.KindSpheres
	case "gaussians":
		return structure.KindGaussians
	default:
		return structure.KindAtomic
	}
}

func parseSymmetry(s string) structure.Symmetry {
	switch s {
	case "assembly":
		return structure.SymmetryAssembly
	case "crystal":
		return structure.SymmetryCrystal
	case "ncs":
		return structure.SymmetryNCS
	default:
		return structure.SymmetryNone
	}
}

func (of OperatorFixture) build() (structure.Operator, error) {
	var m geom.Mat4
	copy(m[:], of.Matrix)
	return structure.NewOperator(of.Name, m, func(o *structure.Operator) {
		o.Symmetry = parseSymmetry(of.Symmetry)
	})
}

func (mf ModelFixture) build() (*structure.Model, error) {
	m := &structure.Model{
		ID:        mf.ID,
		Label:     mf.Label,
		ModelNum:  mf.ModelNum,
		EntityIDs: mf.EntityIDs,
	}
	if m.Label == "" {
		m.Label = mf.ID
	}
	if a := mf.Atoms; a != nil {
		n := len(a.X)
		if len(a.Y) != n || len(a.Z) != n || len(a.ResidueIndex) != n || len(a.ChainIndex) != n ||
			(a.AltIDs != nil && len(a.AltIDs) != n) ||
			(a.SourceIndex != nil && len(a.SourceIndex) != n) ||
			(a.Radius != nil && len(a.Radius) != n) {
			return nil, fmt.Errorf("atoms: %w", errColumnLength)
		}
		if err := checkSegmentIndex("atoms.residue_index", a.ResidueIndex); err != nil {
			return nil, err
		}
		if err := checkSegmentIndex("atoms.chain_index", a.ChainIndex); err != nil {
			return nil, err
		}
		if err := checkSourceIndex(a.SourceIndex); err != nil {
			return nil, err
		}
		m.Atomic = &structure.AtomicHierarchy{
			X: a.X, Y: a.Y, Z: a.Z,
			AltIDs:      a.AltIDs,
			SourceIndex: a.SourceIndex,
			Radius:      a.Radius,
			Residues:    structure.SegmentationOf(a.ResidueIndex),
			Chains:      structure.SegmentationOf(a.ChainIndex),
			ChainEntity: a.ChainEntity,
		}
	}
	var err error
	if m.Spheres, err = mf.Spheres.build("spheres"); err != nil {
		return nil, err
	}
	if m.Gaussians, err = mf.Gaussians.build("gaussians"); err != nil {
		return nil, err
	}
	return m, nil
}

func (cf *CoarseFixture) build(name string) (*structure.CoarseHierarchy, error) {
	if cf == nil {
		return nil, nil
	}
	n := len(cf.X)
	if len(cf.Y) != n || len(cf.Z) != n || len(cf.Radius) != n || len(cf.ChainIndex) != n {
		return nil, fmt.Errorf("%s: %w", name, errColumnLength)
	}
	if err := checkSegmentIndex(name+".chain_index", cf.ChainIndex); err != nil {
		return nil, err
	}
	return &structure.CoarseHierarchy{
		X: cf.X, Y: cf.Y, Z: cf.Z,
		Radius:      cf.Radius,
		Chains:      structure.SegmentationOf(cf.ChainIndex),
		ChainEntity: cf.ChainEntity,
	}, nil
}
