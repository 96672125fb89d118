package grid

import "math"

// ScalePosition projects a horizontal offset from a grid of from columns onto
// a grid of to columns. The result is rounded and never clamped: an offset of
// 0 is legitimate.
func ScalePosition(value, from, to int) int {
	if from == to {
		return value
	}
	return int(math.Round(float64(value) / float64(from) * float64(to)))
}

// ScaleWidth projects a width like [ScalePosition] and clamps the result to
// [1, to]. A width that rounds down to zero becomes 1.
func ScaleWidth(value, from, to int) int {
	return min(max(ScalePosition(value, from, to), 1), to)
}

// Map rescales the horizontal axis of p. Y and H are already in the shared
// row unit and pass through.
func Map(p Position, from, to int) Position {
	return Position{
		X: ScalePosition(p.X, from, to),
		Y: p.Y,
		W: ScaleWidth(p.W, from, to),
		H: p.H,
	}
}

// ToDisplay maps a position from the analysis grid to the display grid.
func ToDisplay(p Position) Position {
	return Map(p, Analysis.Columns, Display.Columns)
}
