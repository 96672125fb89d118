// Package pkg provides the core libraries for dashgrid dashboard layouts.
//
// # Overview
//
// dashgrid places dashboard widgets on a 12-column display grid. Layouts
// come from three sources: screenshot analysis results on a coarse 20x30
// grid, named row presets, and random bin packing. Every source ends in the
// same collision resolver, so finished layouts never overlap.
//
// # Architecture
//
// The data flow for an analysis result:
//
//	analysis JSON (20x30 grid)
//	         ↓
//	    [analysis] decode and validate
//	         ↓
//	    [layout] card caps and five-card rows (analysis grid)
//	         ↓
//	    [grid] rescale to 12 columns
//	         ↓
//	    [layout] category floors, then overlap resolution
//	         ↓
//	    [layout.Layout] items + corrections
//
// Generated layouts skip the first three steps: [generate] emits items on
// the display grid directly.
//
// # Main Packages
//
// [grid] - Positions, grid spaces and the horizontal rescaling between them.
//
// [widget] - The component vocabulary, raw-type mapping, size policy and the
// generator profile table.
//
// [layout] - Display items, heuristic corrections and the first-fit
// collision resolver.
//
// [analysis] - Decoding and conversion of analysis results.
//
// [generate] - Preset and bin-packing generators with seedable randomness.
//
// [pipeline] - Job orchestration with caching, shared by the CLI and the
// HTTP API.
//
// [cache] - Null, memory, file and Redis cache backends plus key builders.
//
// [config] - TOML and YAML configuration for profiles, presets, cache and
// server.
//
// [errors] - Structured error codes. [observability] - Pipeline, cache and
// HTTP hooks.
//
// # Quick Start
//
//	data, _ := os.ReadFile("analysis.json")
//	l, err := analysis.Convert(data, nil)
//	if err != nil {
//	    // structural input error, see errors.GetCode(err)
//	}
//	for _, c := range l.Corrections {
//	    fmt.Println(c.ID, c.Rule, c.Before, "→", c.After)
//	}
//
// Generate a seeded preset layout:
//
//	rng, ids := generate.Seeded(42)
//	g := generate.New(widget.DefaultProfiles(), generate.DefaultPresets(), rng, ids)
//	items, _ := g.FromPreset("overview", 1)
//	items, _ = layout.Resolve(items, grid.Display.Columns)
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/grid
// [widget]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/widget
// [layout]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/layout
// [layout.Layout]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/layout#Layout
// [analysis]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/analysis
// [generate]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/generate
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/dashgrid/pkg/observability
package pkg
