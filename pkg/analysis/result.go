package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Largest grid an analysis result may declare.
const (
	MaxColumns = 1000
	MaxRows    = 1000
)

// GridSpec is the grid an analysis result declares. Zero values fall back to
// the standard analysis grid.
type GridSpec struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// Space returns the coordinate space the document declares.
func (g GridSpec) Space() grid.Space {
	s := grid.Analysis
	if g.Columns > 0 {
		s.Columns = g.Columns
	}
	if g.Rows > 0 {
		s.Rows = g.Rows
	}
	return s
}

func (g GridSpec) validate() error {
	if g.Columns < 0 || g.Rows < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "layout declares negative size %dx%d", g.Columns, g.Rows)
	}
	if g.Columns > MaxColumns || g.Rows > MaxRows {
		return errors.New(errors.ErrCodeInvalidInput, "layout declares %dx%d, larger than %dx%d", g.Columns, g.Rows, MaxColumns, MaxRows)
	}
	return nil
}

// Widget is one widget found by the analysis service. Everything besides id,
// type and position is kept verbatim in Props.
type Widget struct {
	ID       string         `json:"id,omitempty"`
	Type     string         `json:"type"`
	Position grid.Position  `json:"position"`
	Props    map[string]any `json:"-"`
}

// Result is the analysis document.
type Result struct {
	Layout  GridSpec `json:"layout"`
	Theme   string   `json:"theme,omitempty"`
	Widgets []Widget `json:"widgets"`
}

// ReadFile decodes an analysis result from a JSON file.
func ReadFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Decode(data)
}

// Read decodes an analysis result from r.
func Read(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read analysis result: %w", err)
	}
	return Decode(data)
}

// Decode parses and structurally validates an analysis document. It fails
// on the first problem: a declared grid larger than [MaxColumns] x [MaxRows],
// widgets that are not a list, a widget without a complete position, or a
// coordinate outside the declared grid.
func Decode(data []byte) (Result, error) {
	var doc struct {
		Layout  GridSpec        `json:"layout"`
		Theme   string          `json:"theme"`
		Widgets json.RawMessage `json:"widgets"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode analysis result")
	}
	if err := doc.Layout.validate(); err != nil {
		return Result{}, err
	}

	raw := bytes.TrimSpace(doc.Widgets)
	if len(raw) == 0 || raw[0] != '[' {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "widgets must be a list")
	}
	var entries []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "widgets must be a list of objects")
	}

	res := Result{Layout: doc.Layout, Theme: doc.Theme, Widgets: make([]Widget, 0, len(entries))}
	space := doc.Layout.Space()
	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		w, err := decodeWidget(i, entry)
		if err != nil {
			return Result{}, err
		}
		if err := space.Validate(w.Position); err != nil {
			return Result{}, errors.New(errors.ErrCodeInvalidPosition, "widget %s: %s", w.label(i), errors.UserMessage(err)).For(w.ID)
		}
		if w.ID != "" {
			if seen[w.ID] {
				return Result{}, errors.New(errors.ErrCodeDuplicateID, "duplicate widget id %q", w.ID).For(w.ID)
			}
			seen[w.ID] = true
		}
		res.Widgets = append(res.Widgets, w)
	}
	return res, nil
}

func decodeWidget(i int, entry map[string]json.RawMessage) (Widget, error) {
	var w Widget
	if raw, ok := entry["id"]; ok {
		id, err := decodeID(raw)
		if err != nil {
			return Widget{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "widget #%d: id", i)
		}
		w.ID = id
	}
	if raw, ok := entry["type"]; ok {
		if err := json.Unmarshal(raw, &w.Type); err != nil {
			return Widget{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "widget %s: type must be a string", w.label(i))
		}
	}

	raw, ok := entry["position"]
	if !ok {
		return Widget{}, errors.New(errors.ErrCodeInvalidPosition, "widget %s: missing position", w.label(i))
	}
	var pos struct {
		X, Y, W, H *int
	}
	if err := json.Unmarshal(raw, &pos); err != nil {
		return Widget{}, errors.Wrap(errors.ErrCodeInvalidPosition, err, "widget %s: position", w.label(i))
	}
	for _, f := range []struct {
		name string
		v    *int
	}{{"x", pos.X}, {"y", pos.Y}, {"w", pos.W}, {"h", pos.H}} {
		if f.v == nil {
			return Widget{}, errors.New(errors.ErrCodeInvalidPosition, "widget %s: position is missing %s", w.label(i), f.name)
		}
	}
	w.Position = grid.Position{X: *pos.X, Y: *pos.Y, W: *pos.W, H: *pos.H}

	w.Props = make(map[string]any, len(entry))
	for key, value := range entry {
		switch key {
		case "id", "type", "position":
			continue
		}
		var v any
		if err := json.Unmarshal(value, &v); err != nil {
			return Widget{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "widget %s: field %s", w.label(i), key)
		}
		w.Props[key] = v
	}
	return w, nil
}

// decodeID accepts string and numeric ids.
func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", err
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return "", err
	}
	return n.String(), nil
}

func (w Widget) label(i int) string {
	if w.ID != "" {
		return strconv.Quote(w.ID)
	}
	return fmt.Sprintf("#%d", i)
}
