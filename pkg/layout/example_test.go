package layout_test

import (
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
)

func ExampleResolve() {
	items := []layout.Item{
		{I: "a", X: 0, Y: 0, W: 6, H: 4},
		{I: "b", X: 3, Y: 0, W: 6, H: 4},
		{I: "c", X: 0, Y: 2, W: 12, H: 2},
	}

	resolved, _ := layout.Resolve(items, grid.DisplayColumns)
	for _, it := range resolved {
		fmt.Println(it.I, it.Position())
	}
	// Output:
	// a 0,0 6x4
	// b 6,0 6x4
	// c 0,4 12x2
}
