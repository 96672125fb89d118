package analysis

import (
	"io"
	"maps"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// Converter turns analysis results into display layouts.
type Converter struct {
	Policy widget.Policy
	IDs    generate.IDSource // mints ids for widgets that arrive without one
	Logger *log.Logger
}

// NewConverter creates a converter with the default policy and UUID ids.
// A nil logger discards output.
func NewConverter(logger *log.Logger) *Converter {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Converter{
		Policy: widget.DefaultPolicy(),
		IDs:    generate.UUIDSource{},
		Logger: logger,
	}
}

// Convert runs the full analysis pipeline on res. The input is not modified.
func (c *Converter) Convert(res Result) (layout.Layout, error) {
	space := res.Layout.Space()
	items, err := c.items(res, space)
	if err != nil {
		return layout.Layout{}, err
	}

	n := layout.NewNormalizer(c.Logger)
	if c.Policy.Floors != nil {
		n.Policy = c.Policy
	}
	var corrections []layout.Correction
	if space == grid.Analysis {
		corrections = n.NormalizeRaw(items)
	} else {
		// The five-card pattern is defined in 20-column units only.
		corrections = n.ApplyPolicy(space, items)
	}

	for i := range items {
		items[i].SetPosition(grid.Map(items[i].Position(), space.Columns, grid.Display.Columns))
	}
	corrections = append(corrections, n.ApplyPolicy(grid.Display, items)...)

	items, moved := layout.Resolve(items, grid.Display.Columns)
	for _, m := range moved {
		n.Logger.Warn("corrected widget", "id", m.ID, "rule", m.Rule, "space", m.Space, "before", m.Before, "after", m.After)
	}
	corrections = append(corrections, moved...)

	n.Logger.Debug("converted analysis result", "widgets", len(items), "corrections", len(corrections))
	return layout.Layout{
		Source:      layout.SourceAnalysis,
		Columns:     grid.Display.Columns,
		Theme:       res.Theme,
		Items:       items,
		Corrections: corrections,
	}, nil
}

// items builds the working list in input order. Results that did not come
// through Decode are validated here too.
func (c *Converter) items(res Result, space grid.Space) ([]layout.Item, error) {
	if err := res.Layout.validate(); err != nil {
		return nil, err
	}
	ids := c.IDs
	if ids == nil {
		ids = generate.UUIDSource{}
	}

	seen := make(map[string]bool, len(res.Widgets))
	for _, w := range res.Widgets {
		if w.ID == "" {
			continue
		}
		if seen[w.ID] {
			return nil, errors.New(errors.ErrCodeDuplicateID, "duplicate widget id %q", w.ID).For(w.ID)
		}
		seen[w.ID] = true
	}

	items := make([]layout.Item, 0, len(res.Widgets))
	for i, w := range res.Widgets {
		if err := space.Validate(w.Position); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidPosition, "widget %s: %s", w.label(i), errors.UserMessage(err)).For(w.ID)
		}
		id := w.ID
		for id == "" || seen[id] {
			id = ids.NewID()
		}
		seen[id] = true

		props := maps.Clone(w.Props)
		if props == nil {
			props = map[string]any{}
		}
		it := layout.Item{
			I:            id,
			Component:    widget.FromRawType(w.Type),
			Props:        props,
			OriginalType: w.Type,
		}
		it.SetPosition(w.Position)
		items = append(items, it)
	}
	return items, nil
}

// Convert decodes data and converts it with the default converter.
func Convert(data []byte, logger *log.Logger) (layout.Layout, error) {
	res, err := Decode(data)
	if err != nil {
		return layout.Layout{}, err
	}
	return NewConverter(logger).Convert(res)
}
