package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Backend = %q", cfg.Cache.Backend)
	}
	if _, ok := cfg.Presets["3+1"]; !ok {
		t.Error("built-in presets missing")
	}
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "dashgrid.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p, ok := cfg.Profiles["RevenueChart"]
	if !ok {
		t.Fatal("RevenueChart not merged")
	}
	if p.MinCols != 6 || p.SkeletonMode != "chart" || p.Category != widget.CategoryChart {
		t.Errorf("RevenueChart = %+v", p)
	}
	if !cfg.Profiles["SimpleHeatmap"].Available() {
		t.Error("SimpleHeatmap override not applied")
	}
	if _, ok := cfg.Profiles[string(widget.SimpleLineChart)]; !ok {
		t.Error("built-in profiles dropped without replace_profiles")
	}
	if got := cfg.Presets["hero"]; len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("hero = %v", got)
	}
	if cfg.Cache.Backend != BackendMemory || cfg.Cache.Prefix != "staging:" || cfg.Cache.TTL != 12*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.ReadTimeout != DefaultReadTimeout {
		t.Errorf("Server = %+v", cfg.Server)
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "dashgrid.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Profiles) != 1 {
		t.Errorf("replace_profiles kept %d profiles", len(cfg.Profiles))
	}
	if p := cfg.Profiles["OnlyCard"]; p.MaxCols != 3 || p.Category != widget.CategoryCard {
		t.Errorf("OnlyCard = %+v", p)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
		{"bad extension", write("cfg.json", "{}"), errors.ErrCodeInvalidConfig},
		{"malformed toml", write("bad.toml", "[cache\n"), errors.ErrCodeInvalidConfig},
		{"unknown toml key", write("unknown.toml", "colour = 1\n"), errors.ErrCodeInvalidConfig},
		{"unknown yaml key", write("unknown.yaml", "colour: 1\n"), errors.ErrCodeInvalidConfig},
		{"bad profile", write("profile.toml", "[profiles.X]\nmin_cols = 0\nmin_rows = 1\n"), errors.ErrCodeInvalidConfig},
		{"bad preset", write("preset.toml", "[presets]\nbroken = [0]\n"), errors.ErrCodeInvalidConfig},
		{"bad backend", write("backend.yaml", "cache:\n  backend: memcached\n"), errors.ErrCodeInvalidConfig},
		{"redis without url", write("redis.yaml", "cache:\n  backend: redis\n"), errors.ErrCodeInvalidConfig},
		{"mongo without uri", write("mongo.toml", "[cache]\nbackend = \"mongo\"\nmongo_db = \"grid\"\n"), errors.ErrCodeInvalidConfig},
		{
			"nothing available",
			write("none.yaml", "replace_profiles: true\nprofiles:\n  X:\n    category: chart\n    min_cols: 3\n    min_rows: 3\n    available_in_random: false\n"),
			errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, err)
			}
		})
	}
}

func TestParseEmptyYAML(t *testing.T) {
	cfg, err := Parse(nil, "yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.Profiles) != len(widget.DefaultProfiles()) {
		t.Error("empty file should yield defaults")
	}
}

func TestWriteTOML(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().WriteTOML(&buf); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[profiles.SimpleBarChart]", "min_cols = 6", "[server]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
