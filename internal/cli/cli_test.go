package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/config"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envConfig, "")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func decodeLayout(t *testing.T, out string) layout.Layout {
	t.Helper()
	l, err := layout.UnmarshalLayout([]byte(out))
	if err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return l
}

func TestConvertCommandStdin(t *testing.T) {
	input := `{"widgets": [
		{"id": "rev", "type": "kpi", "position": {"x": 0, "y": 0, "w": 5, "h": 3}},
		{"id": "trend", "type": "line", "position": {"x": 5, "y": 0, "w": 15, "h": 8}}
	]}`

	out, err := runCLI(t, input, "convert", "-", "--no-cache")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	l := decodeLayout(t, out)
	if l.Source != layout.SourceAnalysis || l.Columns != 12 || len(l.Items) != 2 {
		t.Fatalf("layout = %+v", l)
	}
	if err := layout.Validate(l.Items, l.Columns); err != nil {
		t.Errorf("invalid layout: %v", err)
	}
}

func TestConvertCommandItemsOnly(t *testing.T) {
	input := `{"widgets": [{"id": "a", "type": "table", "position": {"x": 0, "y": 0, "w": 20, "h": 10}}]}`

	out, err := runCLI(t, input, "convert", "-", "--items")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	items, err := layout.ReadItems(strings.NewReader(out))
	if err != nil {
		t.Fatalf("decode items: %v", err)
	}
	if len(items) != 1 || items[0].W != 12 || items[0].Component != widget.SimpleTable {
		t.Errorf("items = %+v", items)
	}
}

func TestConvertCommandOutputFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envConfig, "")
	dir := t.TempDir()
	in := filepath.Join(dir, "analysis.json")
	input := `{"widgets": [{"id": "rev", "type": "kpi", "position": {"x": 0, "y": 0, "w": 5, "h": 3}}]}`
	if err := os.WriteFile(in, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"convert", "--save", in})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("convert --save: %v", err)
	}

	if stdout.Len() != 0 {
		t.Errorf("stdout should stay empty when writing a file, got:\n%s", stdout.String())
	}
	for _, want := range []string{"Layout complete", "analysis.layout.json", "1 items", "resolve"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("status output missing %q:\n%s", want, stderr.String())
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "analysis.layout.json"))
	if err != nil {
		t.Fatal(err)
	}
	if l := decodeLayout(t, string(data)); len(l.Items) != 1 {
		t.Errorf("saved layout has %d items", len(l.Items))
	}
}

func TestConvertCommandOutOfBounds(t *testing.T) {
	input := `{"widgets": [{"id": "a", "type": "kpi", "position": {"x": 20, "y": 0, "w": 1, "h": 1}}]}`

	_, err := runCLI(t, input, "convert", "-")
	if !errors.Is(err, errors.ErrCodeInvalidPosition) {
		t.Errorf("error = %v, want INVALID_POSITION", err)
	}
}

func TestConvertCommandMissingFile(t *testing.T) {
	_, err := runCLI(t, "", "convert", filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestPresetCommand(t *testing.T) {
	out, err := runCLI(t, "", "preset", "--pattern", "3+1", "--seed", "7")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	l := decodeLayout(t, out)
	if len(l.Items) != 4 || l.Preset != "3+1" {
		t.Fatalf("layout = %+v", l)
	}

	again, err := runCLI(t, "", "preset", "--pattern", "3+1", "--seed", "7", "--no-cache")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	if again != out {
		t.Error("same seed should produce the same layout")
	}
}

func TestPresetCommandUnknown(t *testing.T) {
	_, err := runCLI(t, "", "preset", "nope")
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("error = %v, want INVALID_PRESET", err)
	}
}

func TestBinPackCommand(t *testing.T) {
	out, err := runCLI(t, "", "binpack", "-n", "6", "--seed", "3")
	if err != nil {
		t.Fatalf("binpack: %v", err)
	}

	l := decodeLayout(t, out)
	if len(l.Items) != 6 {
		t.Fatalf("got %d items", len(l.Items))
	}
	if err := layout.Validate(l.Items, 12); err != nil {
		t.Errorf("invalid layout: %v", err)
	}
}

func TestResolveCommand(t *testing.T) {
	input := `[
		{"i": "a", "x": 0, "y": 0, "w": 6, "h": 6, "component": "SimpleLineChart", "props": {}},
		{"i": "b", "x": 0, "y": 0, "w": 6, "h": 6, "component": "SimpleLineChart", "props": {}}
	]`

	out, err := runCLI(t, input, "resolve", "-")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	l := decodeLayout(t, out)
	if len(l.Items) != 2 || l.Items[1].X != 6 || l.Items[1].Y != 0 {
		t.Errorf("items = %+v", l.Items)
	}
}

func TestDecodeItems(t *testing.T) {
	items := []layout.Item{{I: "a", W: 3, H: 3, Component: widget.SimpleKPI}}
	envelope, _ := layout.MarshalLayout(layout.Layout{Source: layout.SourcePreset, Columns: 12, Items: items})
	array, _ := layout.MarshalItems(items)

	for name, data := range map[string][]byte{"envelope": envelope, "array": array} {
		got, err := decodeItems(data)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(got) != 1 || got[0].I != "a" {
			t.Errorf("%s: got %+v", name, got)
		}
	}

	if _, err := decodeItems([]byte(`"nope"`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestPresetsCommandWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashgrid.toml")
	if err := os.WriteFile(path, []byte("[presets]\nhero = [1, 3]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "", "presets", "--json", "--config", path)
	if err != nil {
		t.Fatalf("presets: %v", err)
	}

	var presets []generate.Preset
	if err := json.Unmarshal([]byte(out), &presets); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, p := range presets {
		if p.Name == "hero" && generate.FormatPattern(p.Pattern) == "1+3" {
			found = true
		}
	}
	if !found || len(presets) != len(generate.DefaultPresets())+1 {
		t.Errorf("got %d presets, hero found = %v", len(presets), found)
	}
}

func TestTypesCommand(t *testing.T) {
	out, err := runCLI(t, "", "types")
	if err != nil {
		t.Fatalf("types: %v", err)
	}
	for _, want := range []string{"SimpleBarChart", "bar-chart", "6x8"} {
		if !strings.Contains(out, want) {
			t.Errorf("types output missing %q", want)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := runCLI(t, "", "config", "--defaults")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"[profiles.SimpleKPI]", "[cache]", "[server]"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q", want)
		}
	}
}

func TestCachePathAndClear(t *testing.T) {
	t.Setenv(envConfig, "")
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	dir := strings.TrimSpace(out.String())
	if dir != filepath.Join(xdg, appName) {
		t.Fatalf("cache path = %q", dir)
	}

	store, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(context.Background(), "k", []byte("v"), cache.TTLAnalysis); err != nil {
		t.Fatal(err)
	}

	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after clear", len(entries))
	}
}

func TestNewCacheBackends(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     config.CacheConfig
		noCache bool
		check   func(cache.Cache) bool
	}{
		{"no-cache flag", config.CacheConfig{Backend: config.BackendMemory}, true, func(c cache.Cache) bool {
			_, ok := c.(cache.NullCache)
			return ok
		}},
		{"none", config.CacheConfig{Backend: config.BackendNone}, false, func(c cache.Cache) bool {
			_, ok := c.(cache.NullCache)
			return ok
		}},
		{"memory", config.CacheConfig{Backend: config.BackendMemory}, false, func(c cache.Cache) bool {
			_, ok := c.(*cache.MemoryCache)
			return ok
		}},
		{"file", config.CacheConfig{Backend: config.BackendFile, Dir: t.TempDir()}, false, func(c cache.Cache) bool {
			_, ok := c.(*cache.FileCache)
			return ok
		}},
		{"file without dir", config.CacheConfig{Backend: config.BackendFile}, false, func(c cache.Cache) bool {
			_, ok := c.(cache.NullCache)
			return ok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(ctx, tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			if !tt.check(c) {
				t.Errorf("newCache returned %T", c)
			}
		})
	}
}

func TestItemTable(t *testing.T) {
	items := []layout.Item{
		{I: "rev", X: 0, Y: 0, W: 3, H: 3, MinW: 2, MinH: 3, MaxW: 3, Component: widget.SimpleKPI},
		{I: "trend", X: 3, Y: 0, W: 9, H: 6, MinW: 3, MinH: 6, Component: widget.SimpleLineChart},
	}
	out := itemTable(items)
	for _, want := range []string{"rev", "SimpleKPI", "trend", "3x6"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
