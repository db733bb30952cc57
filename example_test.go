package molsel_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/molsel"
	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/loci"
	"github.com/hupe1980/molsel/testutil"
)

func ExampleExplorer_SelectWithin() {
	ctx := context.Background()
	ex, err := molsel.New(testutil.TwoUnitStructure())
	if err != nil {
		panic(err)
	}

	sel, err := ex.SelectWithin(ctx, geom.V3(-2.7, -1.5, 0), 0.1, loci.GranularityResidue)
	if err != nil {
		panic(err)
	}
	fmt.Println(sel.Size())
	fmt.Println(ex.Expression(sel))
	// Output:
	// 2
	// (struct.modifier.union (struct.generator.atom-groups :atom-test (core.set.has (core.type.set 0 1) (struct.atom-property.core.source-index)) :chain-test (core.rel.eq (struct.atom-property.core.operator-name) "1_555")))
}
