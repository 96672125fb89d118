package layout

import (
	"cmp"
	"slices"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// placed holds the rectangles already fixed during a resolve pass.
type placed []grid.Position

// blocker returns the first placed rectangle that p intersects.
func (ps placed) blocker(p grid.Position) (grid.Position, bool) {
	for _, q := range ps {
		if q.Intersects(p) {
			return q, true
		}
	}
	return grid.Position{}, false
}

// Resolve moves items so that no two cover the same cell on a grid of cols
// columns. Items are placed in (y, x) order; each keeps its size and is
// shifted right one column at a time, wrapping to x=0 on the next row when
// it would cross the right edge, until its rectangle is free.
//
// A candidate that crosses the right edge is never tested, not even the
// item's own origin: such an item wraps before it is checked for overlap.
// An item wider than the grid is only ever placed at x=0.
//
// The returned slice is a copy in input order. Every move is reported as a
// correction with rule [RuleOverlap].
func Resolve(items []Item, cols int) ([]Item, []Correction) {
	out := Clone(items)
	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Or(cmp.Compare(out[a].Y, out[b].Y), cmp.Compare(out[a].X, out[b].X))
	})

	ps := make(placed, 0, len(out))
	var moves []Correction
	for _, i := range order {
		before := out[i].Position()
		p := firstFit(ps, before, cols)
		ps = append(ps, p)
		if p != before {
			out[i].SetPosition(p)
			moves = append(moves, Correction{
				ID:     out[i].I,
				Rule:   RuleOverlap,
				Space:  grid.Display.Name,
				Before: before,
				After:  p,
			})
		}
	}
	return out, moves
}

// firstFit returns the first free candidate at or after p in reading order.
// A blocked candidate skips past its blocker. A row scanned from x=0 with
// every candidate blocked resumes at the nearest blocker bottom.
func firstFit(ps placed, p grid.Position, cols int) grid.Position {
	p.X, p.Y = max(p.X, 0), max(p.Y, 0)
	fromZero := p.X == 0
	nextY := 0
	for {
		if p.Right() > cols && !(p.W > cols && p.X == 0) {
			if fromZero && nextY > p.Y {
				p.Y = nextY
			} else {
				p.Y++
			}
			p.X, fromZero, nextY = 0, true, 0
			continue
		}
		q, hit := ps.blocker(p)
		if !hit {
			return p
		}
		if b := q.Bottom(); nextY == 0 || b < nextY {
			nextY = b
		}
		p.X = q.Right()
	}
}

// Overlaps reports the indexes of the first pair of items whose rectangles
// intersect.
func Overlaps(items []Item) (a, b int, ok bool) {
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].Position().Intersects(items[j].Position()) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
