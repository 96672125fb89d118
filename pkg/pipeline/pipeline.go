// Package pipeline runs dashgrid layout jobs for the CLI and the HTTP server.
//
// A job is one of four kinds:
//
//  1. analysis: convert an analysis result into a display layout
//  2. preset: generate rows from a named preset or an ad-hoc pattern
//  3. binpack: greedily pack a number of random widgets
//  4. resolve: remove overlaps from an existing item list
//
// By centralizing this logic both entry points share validation, caching and
// instrumentation.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:   pipeline.KindPreset,
//	    Preset: "3+1",
//	    Seed:   42,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items := result.Layout.Items
//
// Conversions are always cached; generator runs only when seeded, since an
// unseeded run is expected to differ every time.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Job kinds. They double as [layout.Layout.Source] values.
const (
	KindAnalysis = layout.SourceAnalysis
	KindPreset   = layout.SourcePreset
	KindBinPack  = layout.SourceBinPack
	KindResolve  = layout.SourceResolve
)

const (
	// DefaultCount is the number of widgets the CLI and API bin-pack when
	// the request does not say.
	DefaultCount = 8

	// MaxCount bounds bin-packing requests.
	MaxCount = 500
)

// ValidKinds is the set of supported job kinds.
var ValidKinds = map[string]bool{
	KindAnalysis: true,
	KindPreset:   true,
	KindBinPack:  true,
	KindResolve:  true,
}

// =============================================================================
// Options - Job Configuration
// =============================================================================

// Options contains all configuration for one job.
// This struct supports JSON serialization for API requests.
type Options struct {
	Kind string `json:"kind"`

	// Preset options. Pattern wins over Preset when both are set.
	Preset       string `json:"preset,omitempty"`
	Pattern      []int  `json:"pattern,omitempty"`
	MinWidthCols int    `json:"min_width_cols,omitempty"`

	// Bin-packing options
	Count int `json:"count,omitempty"`

	// Seed makes generator runs reproducible and cacheable. Zero means a
	// fresh random run.
	Seed uint64 `json:"seed,omitempty"`

	// Refresh bypasses cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Inputs for the analysis and resolve kinds (not serialized)
	Input []byte        `json:"-"`
	Items []layout.Item `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the output of a job.
type Result struct {
	// Layout is the finished arrangement.
	Layout layout.Layout

	// Hash is the content hash of the layout JSON.
	Hash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the layout came from the cache.
	CacheHit bool
}

// Stats contains job execution statistics.
type Stats struct {
	Inputs      int
	Items       int
	Corrections int
	Duration    time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateKind checks that a job kind is valid.
func ValidateKind(kind string) error {
	if !ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid kind: %q (must be one of: analysis, preset, binpack, resolve)", kind)
	}
	return nil
}

// ValidateMinWidthCols checks the preset minimum-width mode.
func ValidateMinWidthCols(n int) error {
	switch n {
	case generate.MinWidthNone, generate.MinWidthHalf, generate.MinWidthThird:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidPreset, "invalid min_width_cols: %d (must be 1, 2 or 3)", n)
}

// ValidateCount checks a bin-packing widget count.
func ValidateCount(n int) error {
	if n < 0 || n > MaxCount {
		return errors.New(errors.ErrCodeInvalidInput, "invalid count: %d (must be 0..%d)", n, MaxCount)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the fields the job kind needs and fills in
// defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if err := ValidateKind(o.Kind); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	switch o.Kind {
	case KindAnalysis:
		if len(o.Input) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "analysis input is required")
		}
	case KindPreset:
		if o.Preset == "" && len(o.Pattern) == 0 {
			return errors.New(errors.ErrCodeInvalidPreset, "preset or pattern is required")
		}
		if o.MinWidthCols == 0 {
			o.MinWidthCols = generate.MinWidthNone
		}
		if err := ValidateMinWidthCols(o.MinWidthCols); err != nil {
			return err
		}
		if len(o.Pattern) > 0 {
			if err := generate.ValidatePattern(o.Pattern); err != nil {
				return err
			}
		}
	case KindBinPack:
		if err := ValidateCount(o.Count); err != nil {
			return err
		}
	}
	return nil
}

// Cacheable reports whether the job's result may be cached.
func (o *Options) Cacheable() bool {
	switch o.Kind {
	case KindAnalysis:
		return true
	case KindPreset, KindBinPack:
		return o.Seed != 0
	}
	return false
}

// PresetLabel returns the name recorded on preset layouts.
func (o *Options) PresetLabel() string {
	if len(o.Pattern) > 0 {
		return generate.FormatPattern(o.Pattern)
	}
	return o.Preset
}

// GenerateKeyOpts returns cache key options for a generator run.
func (o *Options) GenerateKeyOpts(pattern []int, configHash string) cache.GenerateKeyOpts {
	return cache.GenerateKeyOpts{
		Pattern:      pattern,
		MinWidthCols: o.MinWidthCols,
		Count:        o.Count,
		Seed:         o.Seed,
		ConfigHash:   configHash,
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("%d inputs, %d items, %d corrections in %s", s.Inputs, s.Items, s.Corrections, s.Duration)
}
