// Package layout holds the display-grid item type and the stages that
// operate on a working list of items: normalization and overlap resolution.
//
// # Items
//
// An [Item] is one widget placed on the grid. It carries the geometry, the
// advertised bounds (MinW, MinH, MaxW), the canonical component name and an
// opaque props map that the engine never reads.
//
// # Normalization
//
// [Normalizer] applies heuristic corrections. Each correction is logged at
// warn level and returned as a [Correction]; none of them are errors.
//
//   - [Normalizer.ApplyPolicy] runs the size policy for a coordinate space.
//   - [Normalizer.BalanceFiveCardRows] rewrites any analysis-space row made of
//     exactly five small cards to widths 3,3,4,5,5 at offsets 0,3,6,10,15.
//
// # Overlap Resolution
//
// [Resolve] is a first-fit placement: items are visited in (y, x) order and
// each is moved right, then down, one cell at a time until its rectangle is
// free. It never fails because the grid is unbounded vertically, and running
// it on a layout that has no overlaps returns the same positions.
//
//	items, moves := layout.Resolve(items, grid.DisplayColumns)
//	if a, b, ok := layout.Overlaps(items); ok {
//	    panic("unreachable") // Resolve guarantees disjoint cells
//	}
package layout
