package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// =============================================================================
// Item Serialization API
// =============================================================================

// MarshalItems encodes items as the pretty-printed JSON array the renderer
// consumes.
func MarshalItems(items []Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteItems(items, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteItems writes items as a JSON array.
func WriteItems(items []Item, w io.Writer) error {
	items = Clone(items)
	for i := range items {
		if items[i].Props == nil {
			items[i].Props = map[string]any{}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteItemsFile writes items as a JSON array to path.
func WriteItemsFile(items []Item, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteItems(items, f)
}

// ReadItems decodes a JSON array of items. A document that is not an array
// is an input error.
func ReadItems(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode items")
	}
	return items, nil
}

// ReadItemsFile reads a JSON array of items from path.
func ReadItemsFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadItems(f)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Columns <= 0 {
		return Layout{}, fmt.Errorf("layout must declare a positive column count")
	}
	return l, nil
}
