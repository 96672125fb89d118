package generate

import (
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// DefaultRowHeight is the height, in grid rows, of every generated widget.
const DefaultRowHeight = 6

// Minimum-width modes accepted by [Generator.FromPattern].
const (
	MinWidthNone  = 1 // no limit
	MinWidthHalf  = 2 // at least half the grid
	MinWidthThird = 3 // at least a third of the grid
)

// Generator builds layouts from explicit configuration. It holds no state
// between calls beyond what its Rand and IDSource keep.
type Generator struct {
	Profiles  widget.Profiles
	Presets   Presets
	Rand      Rand
	IDs       IDSource
	Columns   int
	RowHeight int
}

// New creates a generator on the display grid. A nil rng uses the global
// math/rand/v2 source; nil ids mint random UUIDs.
func New(profiles widget.Profiles, presets Presets, rng Rand, ids IDSource) *Generator {
	if rng == nil {
		rng = globalRand{}
	}
	if ids == nil {
		ids = UUIDSource{}
	}
	return &Generator{
		Profiles:  profiles,
		Presets:   presets,
		Rand:      rng,
		IDs:       ids,
		Columns:   grid.DisplayColumns,
		RowHeight: DefaultRowHeight,
	}
}

// FromPreset looks up a named preset and lays it out with [Generator.FromPattern].
func (g *Generator) FromPreset(name string, minWidthCols int) ([]layout.Item, error) {
	preset, err := g.Presets.Lookup(name)
	if err != nil {
		return nil, err
	}
	return g.FromPattern(preset.Pattern, minWidthCols)
}

// FromPattern lays out one row per pattern entry.
//
// minWidthCols limits how narrow widgets may get: 1 means no limit, 2 half
// the grid, 3 a third. Rows asking for more widgets than fit are truncated.
// Each widget in a row gets width columns/count, the row height and
// y = row*RowHeight.
//
// Widgets are typed by picking uniformly among available profiles whose
// bounds accept the slot, falling back to any available profile and then to
// [widget.DefaultComponent].
func (g *Generator) FromPattern(pattern []int, minWidthCols int) ([]layout.Item, error) {
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}
	if minWidthCols < MinWidthNone || minWidthCols > MinWidthThird {
		return nil, errors.New(errors.ErrCodeInvalidPreset, "minWidthCols must be 1, 2 or 3, got %d", minWidthCols)
	}

	minWidth := 1
	if minWidthCols != MinWidthNone {
		minWidth = g.Columns / minWidthCols
	}
	maxPerRow := g.Columns / minWidth

	var items []layout.Item
	for row, requested := range pattern {
		count := min(requested, maxPerRow)
		width := g.Columns / count
		for k := range count {
			items = append(items, g.presetItem(k*width, row*g.RowHeight, width))
		}
	}
	return items, nil
}

func (g *Generator) presetItem(x, y, w int) layout.Item {
	it := layout.Item{
		I:     g.IDs.NewID(),
		X:     x,
		Y:     y,
		W:     w,
		H:     g.RowHeight,
		Props: map[string]any{},
	}

	name, ok := g.pick(func(p widget.Profile) bool {
		return p.MinCols <= w && p.MinRows <= g.RowHeight && (p.MaxCols == 0 || p.MaxCols >= w)
	})
	if !ok {
		name, ok = g.pick(nil)
	}
	if !ok {
		floor := widget.DefaultPolicy().MinDimensions(widget.DefaultComponent)
		it.Component = widget.DefaultComponent
		it.MinW, it.MinH = min(floor.MinW, w), min(floor.MinH, it.H)
		return it
	}

	p := g.Profiles[name]
	it.Component = widget.Component(name)
	it.MinW, it.MinH = min(p.MinCols, w), min(p.MinRows, it.H)
	if p.MaxCols >= w {
		it.MaxW = p.MaxCols
	}
	it.Props["skeletonMode"] = p.SkeletonMode
	return it
}

// BinPacked fills rows left to right with count randomly typed widgets.
//
// For each widget the available profiles whose MinCols fits the rest of the
// current row are eligible and one is picked uniformly; the widget takes
// exactly MinCols columns. When nothing fits, the row is closed and a type
// is picked from all available profiles without checking that it fits an
// empty row, so a profile wider than the grid yields an item wider than the
// grid.
func (g *Generator) BinPacked(count int) ([]layout.Item, error) {
	if count < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "widget count must be >= 0, got %d", count)
	}
	if count > 0 && len(g.Profiles.AvailableNames()) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no widget type is available for random selection")
	}

	items := make([]layout.Item, 0, count)
	x, y := 0, 0
	for range count {
		remaining := g.Columns - x
		name, ok := g.pick(func(p widget.Profile) bool { return p.MinCols <= remaining })
		if !ok {
			x, y = 0, y+g.RowHeight
			name, _ = g.pick(nil)
		}

		p := g.Profiles[name]
		items = append(items, layout.Item{
			I:         g.IDs.NewID(),
			X:         x,
			Y:         y,
			W:         p.MinCols,
			H:         g.RowHeight,
			MinW:      p.MinCols,
			MinH:      min(p.MinRows, g.RowHeight),
			MaxW:      p.MaxCols,
			Component: widget.Component(name),
			Props:     map[string]any{"skeletonMode": p.SkeletonMode},
		})

		x += p.MinCols
		if x >= g.Columns {
			x, y = 0, y+g.RowHeight
		}
	}
	return items, nil
}

// pick chooses uniformly among available profiles accepted by keep, in
// sorted name order. A nil keep accepts every available profile.
func (g *Generator) pick(keep func(widget.Profile) bool) (string, bool) {
	var eligible []string
	for _, name := range g.Profiles.AvailableNames() {
		if keep == nil || keep(g.Profiles[name]) {
			eligible = append(eligible, name)
		}
	}
	if len(eligible) == 0 {
		return "", false
	}
	return eligible[g.Rand.IntN(len(eligible))], true
}
