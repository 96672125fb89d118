// Package generate synthesizes display-grid layouts without an analysis
// result.
//
// Two strategies are offered, both producing items directly in the
// 12-column display space with a fixed row height of 6:
//
//   - Preset layouts ([Generator.FromPreset], [Generator.FromPattern]) lay
//     out rows from a pattern of per-row widget counts such as "3+1".
//   - Bin-packed layouts ([Generator.BinPacked]) fill rows greedily with
//     randomly chosen widget types, each at its minimum width.
//
// Neither strategy needs overlap resolution or normalization: rows are
// built left to right and never exceed their width, with one documented
// exception in bin-packing (see [Generator.BinPacked]).
//
// # Randomness
//
// All random choices go through the [Rand] interface and all ids through
// [IDSource], so tests can pin exact output:
//
//	rng, ids := generate.Seeded(42)
//	g := generate.New(widget.DefaultProfiles(), generate.DefaultPresets(), rng, ids)
//	items, err := g.FromPreset("3+1", 1)
package generate
