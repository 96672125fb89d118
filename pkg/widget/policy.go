package widget

import (
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Dimensions is a minimum footprint in display-grid cells.
type Dimensions struct {
	MinW int `json:"minW"`
	MinH int `json:"minH"`
}

// Rule names the sizing rule that produced an [Adjustment].
type Rule string

// Size rules applied by [Policy].
const (
	RuleCardWidthCap Rule = "card-width-cap"
	RuleMinWidth     Rule = "min-width"
	RuleMinHeight    Rule = "min-height"
)

// Adjustment records one change a policy made to a position.
type Adjustment struct {
	Rule   Rule
	Before grid.Position
	After  grid.Position
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s: %v -> %v", a.Rule, a.Before, a.After)
}

// Policy enforces per-category size bounds. The zero value is not usable;
// start from [DefaultPolicy].
type Policy struct {
	// Floors holds the display-space minimum per category.
	Floors map[Category]Dimensions

	// Fallback is used for categories missing from Floors.
	Fallback Dimensions

	// CardCapPercent is the width, as a percentage of the grid, above which
	// a small card is considered oversized.
	CardCapPercent int

	// CardWidthPercent is the width, as a percentage of the grid, that
	// oversized small cards are reset to. It is also the advertised maximum
	// width of small cards.
	CardWidthPercent int
}

// DefaultPolicy returns the built-in floors and card caps: 35% of the
// analysis grid (7 of 20 columns) triggers a reset to 25% (5 of 20), and
// small cards advertise a maximum of 25% of the display grid (3 of 12).
func DefaultPolicy() Policy {
	return Policy{
		Floors: map[Category]Dimensions{
			CategoryBarChart: {MinW: 6, MinH: 8},
			CategoryChart:    {MinW: 3, MinH: 6},
			CategoryList:     {MinW: 3, MinH: 5},
			CategoryCard:     {MinW: 2, MinH: 3},
			CategoryOther:    {MinW: 2, MinH: 3},
		},
		Fallback:         Dimensions{MinW: 2, MinH: 3},
		CardCapPercent:   35,
		CardWidthPercent: 25,
	}
}

// MinDimensions returns the display-space floor for c. Unknown component
// names get the smallest card floor.
func (p Policy) MinDimensions(c Component) Dimensions {
	if !c.Known() {
		return p.Fallback
	}
	if d, ok := p.Floors[c.Category()]; ok {
		return d
	}
	return p.Fallback
}

// CardCap returns the oversized threshold for small cards in space s.
func (p Policy) CardCap(s grid.Space) int {
	return s.Columns * p.CardCapPercent / 100
}

// CardWidth returns the reset and advertised maximum width for small cards
// in space s.
func (p Policy) CardWidth(s grid.Space) int {
	return max(s.Columns*p.CardWidthPercent/100, 1)
}

// MaxWidth returns the advertised maximum width of c in space s, or 0 when c
// has none.
func (p Policy) MaxWidth(s grid.Space, c Component) int {
	if !c.IsSmallCard() {
		return 0
	}
	return p.CardWidth(s)
}

// Apply enforces the rules that belong to space s and returns the corrected
// position with one adjustment per rule that fired.
//
// In a bounded (analysis) space only the small-card width cap applies. In
// the display space widths and heights are raised to the category floor.
// The display-space maximum width is advertised through [Policy.MaxWidth],
// never applied here.
func (p Policy) Apply(s grid.Space, c Component, pos grid.Position) (grid.Position, []Adjustment) {
	var adj []Adjustment
	if s.Bounded() {
		if c.IsSmallCard() && pos.W > p.CardCap(s) {
			next := pos
			next.W = p.CardWidth(s)
			adj = append(adj, Adjustment{Rule: RuleCardWidthCap, Before: pos, After: next})
			pos = next
		}
		return pos, adj
	}

	floor := p.MinDimensions(c)
	if pos.W < floor.MinW {
		next := pos
		next.W = floor.MinW
		adj = append(adj, Adjustment{Rule: RuleMinWidth, Before: pos, After: next})
		pos = next
	}
	if pos.H < floor.MinH {
		next := pos
		next.H = floor.MinH
		adj = append(adj, Adjustment{Rule: RuleMinHeight, Before: pos, After: next})
		pos = next
	}
	return pos, adj
}
