package layout

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

func TestItemsFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	items := []Item{{
		I: "kpi-1", X: 0, Y: 0, W: 3, H: 3, MinW: 2, MinH: 3, MaxW: 3,
		Component: widget.SimpleKPI, Props: map[string]any{"title": "Revenue"}, OriginalType: "kpi",
	}}

	if err := WriteItemsFile(items, path); err != nil {
		t.Fatalf("WriteItemsFile: %v", err)
	}
	got, err := ReadItemsFile(path)
	if err != nil {
		t.Fatalf("ReadItemsFile: %v", err)
	}
	if len(got) != 1 || got[0].I != "kpi-1" || got[0].MaxW != 3 || got[0].Props["title"] != "Revenue" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestWriteItemsEmptyProps(t *testing.T) {
	var buf bytes.Buffer
	items := []Item{{I: "a", W: 1, H: 1}}
	if err := WriteItems(items, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"props": {}`) {
		t.Errorf("expected empty props object, got %s", buf.String())
	}
	if strings.Contains(buf.String(), "maxW") || strings.Contains(buf.String(), "originalType") {
		t.Errorf("optional fields should be omitted: %s", buf.String())
	}
	if items[0].Props != nil {
		t.Error("WriteItems modified its input")
	}
}

func TestReadItemsRejectsObject(t *testing.T) {
	_, err := ReadItems(strings.NewReader(`{"i": "a"}`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadItems(object) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestReadItemsFileNotFound(t *testing.T) {
	_, err := ReadItemsFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestUnmarshalLayout(t *testing.T) {
	l := Layout{Source: SourcePreset, Columns: 12, Items: []Item{{I: "a", X: 0, Y: 0, W: 12, H: 6}}}
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if got.Rows() != 6 || got.Source != SourcePreset {
		t.Errorf("got %+v", got)
	}
	if _, err := UnmarshalLayout([]byte(`{"items": []}`)); err == nil {
		t.Error("expected error for missing columns")
	}
}
