package layout

import (
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// =============================================================================
// Item - Display Grid Element
// =============================================================================

// Item is one widget on the display grid, in the shape the renderer
// consumes.
type Item struct {
	I            string           `json:"i"`
	X            int              `json:"x"`
	Y            int              `json:"y"`
	W            int              `json:"w"`
	H            int              `json:"h"`
	MinW         int              `json:"minW"`
	MinH         int              `json:"minH"`
	MaxW         int              `json:"maxW,omitempty"`
	Component    widget.Component `json:"component"`
	Props        map[string]any   `json:"props"`
	OriginalType string           `json:"originalType,omitempty"`
}

// Position returns the item's rectangle.
func (it Item) Position() grid.Position {
	return grid.Position{X: it.X, Y: it.Y, W: it.W, H: it.H}
}

// Right returns the first column to the right of the item.
func (it Item) Right() int { return it.X + it.W }

// SetPosition overwrites the item's rectangle.
func (it *Item) SetPosition(p grid.Position) {
	it.X, it.Y, it.W, it.H = p.X, p.Y, p.W, p.H
}

// Clone returns a copy of the items. Props maps are shared.
func Clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// =============================================================================
// Correction - Heuristic Fix Record
// =============================================================================

// Rule names for corrections made by this package. Size rules come from
// [widget.Rule].
const (
	RuleFiveCardRow = "five-card-row"
	RuleOverlap     = "overlap"
)

// Correction records a heuristic change made to one item.
type Correction struct {
	ID     string        `json:"id"`
	Rule   string        `json:"rule"`
	Space  string        `json:"space"`
	Before grid.Position `json:"before"`
	After  grid.Position `json:"after"`
}

// =============================================================================
// Layout - Result Envelope
// =============================================================================

// Source values for [Layout.Source].
const (
	SourceAnalysis = "analysis"
	SourcePreset   = "preset"
	SourceBinPack  = "binpack"
	SourceResolve  = "resolve"
)

// Layout is a finished display-grid arrangement plus the corrections made
// while producing it.
type Layout struct {
	Source      string       `json:"source"`
	Columns     int          `json:"columns"`
	Theme       string       `json:"theme,omitempty"`
	Preset      string       `json:"preset,omitempty"`
	Items       []Item       `json:"items"`
	Corrections []Correction `json:"corrections,omitempty"`
}

// Rows returns the number of grid rows the layout occupies.
func (l Layout) Rows() int {
	rows := 0
	for _, it := range l.Items {
		rows = max(rows, it.Y+it.H)
	}
	return rows
}
