package grid

import (
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// Grid dimensions used throughout dashgrid.
const (
	AnalysisColumns = 20
	AnalysisRows    = 30
	DisplayColumns  = 12
)

// Position is an integer rectangle on a grid: top-left cell (X, Y) plus
// width W and height H in cells.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Right returns the first column to the right of the rectangle.
func (p Position) Right() int { return p.X + p.W }

// Bottom returns the first row below the rectangle.
func (p Position) Bottom() int { return p.Y + p.H }

// Intersects reports whether p and q share at least one cell.
func (p Position) Intersects(q Position) bool {
	return p.X < q.Right() && q.X < p.Right() && p.Y < q.Bottom() && q.Y < p.Bottom()
}

// String formats the position as "x,y wxh".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d %dx%d", p.X, p.Y, p.W, p.H)
}

// Space describes the bounds of a coordinate space. Rows == 0 means the
// space is unbounded vertically.
type Space struct {
	Name    string
	Columns int
	Rows    int
}

// The two spaces dashgrid works with.
var (
	Analysis = Space{Name: "analysis", Columns: AnalysisColumns, Rows: AnalysisRows}
	Display  = Space{Name: "display", Columns: DisplayColumns}
)

// Bounded reports whether the space has a fixed row count.
func (s Space) Bounded() bool { return s.Rows > 0 }

// Validate checks that p lies inside s: x in [0, cols-1], w in [1, cols] and,
// for bounded spaces, y in [0, rows-1] and h in [1, rows]. Out-of-range
// values are reported, never clamped.
func (s Space) Validate(p Position) error {
	if p.X < 0 || p.X >= s.Columns {
		return errors.New(errors.ErrCodeInvalidPosition, "x=%d outside [0,%d] of %s grid", p.X, s.Columns-1, s.Name)
	}
	if p.W < 1 || p.W > s.Columns {
		return errors.New(errors.ErrCodeInvalidPosition, "w=%d outside [1,%d] of %s grid", p.W, s.Columns, s.Name)
	}
	if p.Y < 0 || (s.Bounded() && p.Y >= s.Rows) {
		return errors.New(errors.ErrCodeInvalidPosition, "y=%d outside %s of %s grid", p.Y, s.rowRange(0), s.Name)
	}
	if p.H < 1 || (s.Bounded() && p.H > s.Rows) {
		return errors.New(errors.ErrCodeInvalidPosition, "h=%d outside %s of %s grid", p.H, s.rowRange(1), s.Name)
	}
	return nil
}

func (s Space) rowRange(lo int) string {
	if !s.Bounded() {
		return fmt.Sprintf("[%d,inf)", lo)
	}
	hi := s.Rows - 1
	if lo == 1 {
		hi = s.Rows
	}
	return fmt.Sprintf("[%d,%d]", lo, hi)
}
