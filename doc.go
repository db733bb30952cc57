// Package molsel provides spatial queries and a selection algebra over rigid
// multi-unit 3D molecular structures.
//
// A structure is a set of units, each a sorted subset of a model's atoms or
// coarse elements placed by a rigid symmetry operator. Molsel indexes a
// structure two levels deep (a coarse grid over unit boundary spheres and a
// per-unit grid in the unit's local frame) and answers radius and k-nearest
// queries in the structure frame. Selections (loci) support set algebra,
// extension to residues, chains, entities, models, operators and symmetry
// instances, geometric summaries and a round trip through a serializable
// query expression.
//
// # Quick Start
//
//	ex, err := molsel.New(s, molsel.WithLogger(molsel.NewTextLogger(slog.LevelInfo)))
//	if err != nil {
//	    return err
//	}
//
//	hits, _ := ex.Within(ctx, geom.V3(1, 2, 3), 5)
//	for _, h := range hits {
//	    fmt.Println(h.UnitID, h.Element, math.Sqrt(h.SquaredDistance))
//	}
//
//	// whole residues around a point, as a re-evaluatable expression
//	sel, _ := ex.SelectWithin(ctx, geom.V3(1, 2, 3), 5, loci.GranularityResidue)
//	payload, _ := ex.Encode(sel)
//	again, _ := ex.Decode(ctx, payload)
//
// # Concurrency
//
// Structures, units and loci are immutable after construction. An Explorer
// keeps a pool of query contexts so it may be shared by any number of
// goroutines. The lower-level structure.Lookup3D requires one
// structure.QueryContext per goroutine.
//
// # Packages
//
//   - orderedset: compact sorted integer sets (interval or sorted array)
//   - geom: vectors, rigid transforms, bounding spheres, principal axes
//   - lookup: uniform-grid 3D lookup with radius, existence and k-NN queries
//   - structure: models, operators, units, structures and the two-level index
//   - loci: the selection value and its algebra
//   - expr, query: selection expressions and their compiler
//   - codec: expression encoding with optional compression
package molsel
