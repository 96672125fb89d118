package generate_test

import (
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

func ExampleGenerator_FromPreset() {
	rng, _ := generate.Seeded(1)
	g := generate.New(widget.DefaultProfiles(), generate.DefaultPresets(), rng, &generate.SequentialIDs{Prefix: "w"})

	items, err := g.FromPreset("3+1", generate.MinWidthNone)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, it := range items {
		fmt.Println(it.I, it.Position())
	}
	// Output:
	// w1 0,0 4x6
	// w2 4,0 4x6
	// w3 8,0 4x6
	// w4 0,6 12x6
}

func ExampleGenerator_BinPacked() {
	g := generate.New(widget.Profiles{
		"SimpleLineChart": {MinCols: 6, MinRows: 6, SkeletonMode: "chart"},
	}, nil, nil, &generate.SequentialIDs{Prefix: "w"})

	items, _ := g.BinPacked(3)
	for _, it := range items {
		fmt.Println(it.I, it.Component, it.Position())
	}
	// Output:
	// w1 SimpleLineChart 0,0 6x6
	// w2 SimpleLineChart 6,0 6x6
	// w3 SimpleLineChart 0,6 6x6
}
