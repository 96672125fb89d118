// Package grid defines the two integer coordinate spaces dashgrid works in
// and the lossy mapping between them.
//
// # Coordinate Spaces
//
// The upstream analysis service describes widgets on a 20-column by 30-row
// [Analysis] grid. Dashboards are rendered on a 12-column [Display] grid
// whose height is unbounded. A [Position] carries no space tag of its own;
// every function that interprets one takes the [Space] explicitly so the two
// are never mixed silently.
//
// # Mapping
//
// [Map] rescales the horizontal axis only. Rows are the same unit in both
// spaces, so Y and H pass through unchanged:
//
//	p := grid.Position{X: 10, Y: 4, W: 5, H: 6}
//	q := grid.Map(p, grid.AnalysisColumns, grid.DisplayColumns)
//	// q == grid.Position{X: 6, Y: 4, W: 3, H: 6}
//
// The mapping rounds, so it has no exact inverse. Mapping a value whose
// source and target column counts are equal is a no-op.
package grid
