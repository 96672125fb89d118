package grid

import (
	"testing"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

func TestScalePosition(t *testing.T) {
	tests := []struct {
		value, from, to int
		want            int
	}{
		{0, 20, 12, 0},
		{1, 20, 12, 1},  // 0.6
		{3, 20, 12, 2},  // 1.8
		{10, 20, 12, 6}, // exact
		{15, 20, 12, 9},
		{19, 20, 12, 11}, // 11.4
		{5, 12, 12, 5},   // same space
	}

	for _, tt := range tests {
		if got := ScalePosition(tt.value, tt.from, tt.to); got != tt.want {
			t.Errorf("ScalePosition(%d, %d, %d) = %d, want %d", tt.value, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestScaleWidth(t *testing.T) {
	tests := []struct {
		name  string
		value int
		want  int
	}{
		{"rounds down to zero", 0, 1},
		{"one column", 1, 1},
		{"quarter", 5, 3},
		{"half", 10, 6},
		{"full", 20, 12},
		{"oversized clamps", 40, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScaleWidth(tt.value, AnalysisColumns, DisplayColumns); got != tt.want {
				t.Errorf("ScaleWidth(%d) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestMapKeepsVerticalAxis(t *testing.T) {
	p := Position{X: 10, Y: 7, W: 5, H: 9}
	got := ToDisplay(p)
	want := Position{X: 6, Y: 7, W: 3, H: 9}
	if got != want {
		t.Errorf("ToDisplay(%v) = %v, want %v", p, got, want)
	}
}

func TestMapIdempotentInSameSpace(t *testing.T) {
	p := ToDisplay(Position{X: 13, Y: 2, W: 7, H: 4})
	again := Map(p, DisplayColumns, DisplayColumns)
	if again != p {
		t.Errorf("Map in display space changed %v to %v", p, again)
	}
}

func TestSpaceValidate(t *testing.T) {
	tests := []struct {
		name    string
		space   Space
		pos     Position
		wantErr bool
	}{
		{"origin", Analysis, Position{0, 0, 1, 1}, false},
		{"max corner", Analysis, Position{19, 29, 20, 30}, false},
		{"x out of range", Analysis, Position{20, 0, 1, 1}, true},
		{"negative x", Analysis, Position{-1, 0, 1, 1}, true},
		{"y out of range", Analysis, Position{0, 30, 1, 1}, true},
		{"zero width", Analysis, Position{0, 0, 0, 1}, true},
		{"too wide", Analysis, Position{0, 0, 21, 1}, true},
		{"too tall", Analysis, Position{0, 0, 1, 31}, true},
		{"display unbounded rows", Display, Position{0, 500, 12, 40}, false},
		{"display x out of range", Display, Position{12, 0, 1, 1}, true},
		{"display zero height", Display, Position{0, 0, 1, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.space.Validate(tt.pos)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%v) error = %v, wantErr %v", tt.pos, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidPosition) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidPosition)
			}
		})
	}
}

func TestPositionIntersects(t *testing.T) {
	a := Position{X: 0, Y: 0, W: 4, H: 6}
	tests := []struct {
		name string
		b    Position
		want bool
	}{
		{"adjacent right", Position{X: 4, Y: 0, W: 4, H: 6}, false},
		{"adjacent below", Position{X: 0, Y: 6, W: 4, H: 6}, false},
		{"overlap corner", Position{X: 3, Y: 5, W: 2, H: 2}, true},
		{"contained", Position{X: 1, Y: 1, W: 1, H: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects(%v) = %v, want %v", tt.b, got, tt.want)
			}
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("Intersects is not symmetric for %v", tt.b)
			}
		})
	}
}
