package layout

import (
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// Five-card row pattern, in analysis-grid columns. The first three cards
// and the last two each cover half of the 20-column row.
var (
	fiveCardWidths  = [5]int{3, 3, 4, 5, 5}
	fiveCardOffsets = [5]int{0, 3, 6, 10, 15}
)

// Normalizer applies heuristic size corrections to a working list of items.
// It mutates the list it is given and returns what it changed.
type Normalizer struct {
	Policy widget.Policy
	Logger *log.Logger
}

// NewNormalizer creates a normalizer with the default policy. A nil logger
// discards output.
func NewNormalizer(logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Normalizer{Policy: widget.DefaultPolicy(), Logger: logger}
}

// NormalizeRaw runs the analysis-space corrections in order: the size policy
// first, then five-card row balancing.
func (n *Normalizer) NormalizeRaw(items []Item) []Correction {
	out := n.ApplyPolicy(grid.Analysis, items)
	return append(out, n.BalanceFiveCardRows(items)...)
}

// ApplyPolicy enforces the size policy of space s on every item.
//
// In the display space it also records the advertised bounds on the item:
// MinW and MinH from the category floor and MaxW for small cards.
func (n *Normalizer) ApplyPolicy(s grid.Space, items []Item) []Correction {
	var out []Correction
	for i := range items {
		it := &items[i]
		c := n.policyComponent(s, *it)

		pos, adj := n.Policy.Apply(s, c, it.Position())
		it.SetPosition(pos)
		for _, a := range adj {
			out = append(out, n.record(it.I, string(a.Rule), s, a.Before, a.After))
		}

		if !s.Bounded() {
			floor := n.Policy.MinDimensions(c)
			it.MinW, it.MinH = floor.MinW, floor.MinH
			it.MaxW = n.Policy.MaxWidth(s, c)
		}
	}
	return out
}

// BalanceFiveCardRows rewrites analysis-space rows that hold exactly five
// small cards. Rows are grouped by Y; within a row cards are ordered by X and
// get widths 3,3,4,5,5 at offsets 0,3,6,10,15. Rows that already match are
// left alone, as are rows of any other size or with a non-card member.
func (n *Normalizer) BalanceFiveCardRows(items []Item) []Correction {
	rows := make(map[int][]int)
	for i, it := range items {
		rows[it.Y] = append(rows[it.Y], i)
	}

	var out []Correction
	for _, y := range slices.Sorted(maps.Keys(rows)) {
		idx := rows[y]
		if len(idx) != len(fiveCardWidths) || !n.allSmallCards(items, idx) {
			continue
		}
		slices.SortStableFunc(idx, func(a, b int) int { return items[a].X - items[b].X })
		if matchesFiveCardPattern(items, idx) {
			continue
		}
		for k, i := range idx {
			before := items[i].Position()
			after := before
			after.X, after.W = fiveCardOffsets[k], fiveCardWidths[k]
			items[i].SetPosition(after)
			if before != after {
				out = append(out, n.record(items[i].I, RuleFiveCardRow, grid.Analysis, before, after))
			}
		}
	}
	return out
}

func (n *Normalizer) allSmallCards(items []Item, idx []int) bool {
	for _, i := range idx {
		if !rawSmallCard(items[i]) {
			return false
		}
	}
	return true
}

func matchesFiveCardPattern(items []Item, idx []int) bool {
	for k, i := range idx {
		if items[i].X != fiveCardOffsets[k] || items[i].W != fiveCardWidths[k] {
			return false
		}
	}
	return true
}

// policyComponent picks the component the policy should see. In the analysis
// space only raw types with an explicit mapping count, so an unrecognized tag
// is never treated as a card there.
func (n *Normalizer) policyComponent(s grid.Space, it Item) widget.Component {
	if s.Bounded() && it.OriginalType != "" {
		if c, ok := widget.LookupRawType(it.OriginalType); ok {
			return c
		}
		return ""
	}
	return it.Component
}

func rawSmallCard(it Item) bool {
	if it.OriginalType != "" {
		c, ok := widget.LookupRawType(it.OriginalType)
		return ok && c.IsSmallCard()
	}
	return it.Component.IsSmallCard()
}

func (n *Normalizer) record(id, rule string, s grid.Space, before, after grid.Position) Correction {
	n.Logger.Warn("corrected widget", "id", id, "rule", rule, "space", s.Name, "before", before, "after", after)
	return Correction{ID: id, Rule: rule, Space: s.Name, Before: before, After: after}
}
