package generate

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// Preset is a named row pattern: one entry per row, each the number of
// widgets in that row.
type Preset struct {
	Name    string `json:"name"`
	Pattern []int  `json:"pattern"`
}

// Presets maps preset names to patterns.
type Presets map[string][]int

// Lookup returns the named preset.
func (ps Presets) Lookup(name string) (Preset, error) {
	pattern, ok := ps[name]
	if !ok {
		return Preset{}, errors.New(errors.ErrCodeInvalidPreset, "unknown preset %q", name)
	}
	return Preset{Name: name, Pattern: slices.Clone(pattern)}, nil
}

// List returns all presets sorted by name.
func (ps Presets) List() []Preset {
	names := make([]string, 0, len(ps))
	for name := range ps {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]Preset, len(names))
	for i, name := range names {
		out[i] = Preset{Name: name, Pattern: slices.Clone(ps[name])}
	}
	return out
}

// Validate checks every pattern.
func (ps Presets) Validate() error {
	for _, p := range ps.List() {
		if err := ValidatePattern(p.Pattern); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "preset %q", p.Name)
		}
	}
	return nil
}

// DefaultPresets returns the built-in preset table. Each call allocates a
// new map.
func DefaultPresets() Presets {
	ps := Presets{
		"overview":   {4, 2, 1},
		"analytics":  {3, 2, 2},
		"operations": {4, 3, 2},
		"kpi-strip":  {4},
	}
	for _, name := range []string{
		"1", "2", "3", "4", "6",
		"1+1", "1+2", "2+1", "2+2", "1+3", "3+1", "2+3", "3+2", "3+3",
		"2+4", "4+2", "4+4", "4+1",
		"1+2+3", "3+2+1", "2+1+2", "3+3+3", "4+4+4", "4+3+2", "4+2+2",
	} {
		pattern, _ := ParsePattern(name)
		ps[name] = pattern
	}
	return ps
}

// ParsePattern parses a "+"-separated pattern such as "3+1".
func ParsePattern(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeInvalidPreset, "empty pattern")
	}
	parts := strings.Split(s, "+")
	pattern := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "pattern %q: row %d", s, i+1)
		}
		pattern[i] = n
	}
	if err := ValidatePattern(pattern); err != nil {
		return nil, err
	}
	return pattern, nil
}

// ValidatePattern checks that a pattern has at least one row and every row
// at least one widget.
func ValidatePattern(pattern []int) error {
	if len(pattern) == 0 {
		return errors.New(errors.ErrCodeInvalidPreset, "pattern has no rows")
	}
	for i, n := range pattern {
		if n < 1 {
			return errors.New(errors.ErrCodeInvalidPreset, "row %d requests %d widgets", i+1, n)
		}
	}
	return nil
}

// FormatPattern renders a pattern in "+" notation.
func FormatPattern(pattern []int) string {
	parts := make([]string, len(pattern))
	for i, n := range pattern {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "+")
}
