package layout

import (
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Validate checks a finished layout on a grid of cols columns: ids are
// present and unique, every rectangle is inside the grid and no two
// rectangles intersect.
func Validate(items []Item, cols int) error {
	space := grid.Space{Name: grid.Display.Name, Columns: cols}
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.I == "" {
			return errors.New(errors.ErrCodeInvalidInput, "item at %v has no id", it.Position())
		}
		if _, dup := seen[it.I]; dup {
			return errors.New(errors.ErrCodeDuplicateID, "duplicate item id %q", it.I).For(it.I)
		}
		seen[it.I] = struct{}{}
		if err := space.Validate(it.Position()); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPosition, err, "item %q", it.I).For(it.I)
		}
		if it.Right() > cols {
			return errors.New(errors.ErrCodeInvalidPosition, "item %q: x+w=%d exceeds %d columns", it.I, it.Right(), cols).For(it.I)
		}
	}
	if a, b, ok := Overlaps(items); ok {
		return errors.New(errors.ErrCodeInvalidPosition, "items %q and %q overlap", items[a].I, items[b].I).For(items[b].I)
	}
	return nil
}
