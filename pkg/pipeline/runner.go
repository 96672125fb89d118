package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/dashgrid/pkg/analysis"
	"github.com/matzehuels/dashgrid/pkg/cache"
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
	"github.com/matzehuels/dashgrid/pkg/observability"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// Runner encapsulates job execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner doesn't store results outside the cache. Multiple goroutines can
// safely use the same Runner as long as the tables are not modified;
// concurrent cacheable jobs with the same key are computed once. A Runner
// must not be copied after first use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	Profiles widget.Profiles
	Presets  generate.Presets
	Policy   widget.Policy

	// TTL overrides the per-kind cache lifetime when positive.
	TTL time.Duration

	inflight singleflight.Group
}

// NewRunner creates a runner with the built-in profile, preset and policy
// tables. If keyer is nil, a DefaultKeyer is used. If cache is nil, a
// NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Profiles: widget.DefaultProfiles(),
		Presets:  generate.DefaultPresets(),
		Policy:   widget.DefaultPolicy(),
	}
}

// Execute validates opts and runs the job with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnRunStart(ctx, opts.Kind, inputCount(opts))
	start := time.Now()

	result, err := r.run(ctx, opts)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnRunComplete(ctx, opts.Kind, 0, elapsed, err)
		return nil, fmt.Errorf("%s: %w", opts.Kind, err)
	}
	hooks.OnRunComplete(ctx, opts.Kind, len(result.Layout.Items), elapsed, nil)
	if !result.CacheHit {
		for _, c := range result.Layout.Corrections {
			hooks.OnCorrection(ctx, opts.Kind, c.Rule)
		}
	}

	result.Stats.Duration = elapsed
	opts.Logger.Info("computed layout",
		"kind", opts.Kind,
		"items", result.Stats.Items,
		"corrections", result.Stats.Corrections,
		"cached", result.CacheHit,
		"duration", elapsed)
	return result, nil
}

// Convert runs an analysis job on input.
func (r *Runner) Convert(ctx context.Context, input []byte, opts Options) (*Result, error) {
	opts.Kind, opts.Input = KindAnalysis, input
	return r.Execute(ctx, opts)
}

// Preset runs a preset job.
func (r *Runner) Preset(ctx context.Context, opts Options) (*Result, error) {
	opts.Kind = KindPreset
	return r.Execute(ctx, opts)
}

// BinPack runs a bin-packing job.
func (r *Runner) BinPack(ctx context.Context, opts Options) (*Result, error) {
	opts.Kind = KindBinPack
	return r.Execute(ctx, opts)
}

// Resolve runs an overlap-resolution job on items.
func (r *Runner) Resolve(ctx context.Context, items []layout.Item, opts Options) (*Result, error) {
	opts.Kind, opts.Items = KindResolve, items
	return r.Execute(ctx, opts)
}

func (r *Runner) run(ctx context.Context, opts Options) (*Result, error) {
	key, ttl, err := r.cacheKey(opts)
	if err != nil {
		return nil, err
	}
	if key == "" {
		l, err := r.compute(opts)
		if err != nil {
			return nil, err
		}
		return newResult(opts, l, false)
	}

	if !opts.Refresh {
		if l, ok := r.lookup(ctx, opts.Kind, key); ok {
			return newResult(opts, l, true)
		}
	}

	// Identical jobs running at the same time share one computation.
	v, err, _ := r.inflight.Do(key, func() (any, error) {
		l, err := r.compute(opts)
		if err != nil {
			return nil, err
		}
		if r.TTL > 0 {
			ttl = r.TTL
		}
		r.store(ctx, opts.Kind, key, l, ttl)
		return l, nil
	})
	if err != nil {
		return nil, err
	}
	return newResult(opts, v.(layout.Layout), false)
}

func (r *Runner) compute(opts Options) (layout.Layout, error) {
	switch opts.Kind {
	case KindAnalysis:
		return r.convert(opts)
	case KindPreset:
		return r.preset(opts)
	case KindBinPack:
		return r.binPack(opts)
	case KindResolve:
		return r.resolve(opts)
	}
	return layout.Layout{}, errors.New(errors.ErrCodeUnsupported, "unknown kind %q", opts.Kind)
}

func (r *Runner) convert(opts Options) (layout.Layout, error) {
	res, err := analysis.Decode(opts.Input)
	if err != nil {
		return layout.Layout{}, err
	}
	conv := analysis.NewConverter(opts.Logger)
	conv.Policy = r.Policy
	return conv.Convert(res)
}

func (r *Runner) preset(opts Options) (layout.Layout, error) {
	pattern, err := r.pattern(opts)
	if err != nil {
		return layout.Layout{}, err
	}
	items, err := r.generator(opts.Seed).FromPattern(pattern, opts.MinWidthCols)
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Layout{
		Source:  layout.SourcePreset,
		Columns: grid.DisplayColumns,
		Preset:  opts.PresetLabel(),
		Items:   items,
	}, nil
}

func (r *Runner) binPack(opts Options) (layout.Layout, error) {
	items, err := r.generator(opts.Seed).BinPacked(opts.Count)
	if err != nil {
		return layout.Layout{}, err
	}
	return layout.Layout{
		Source:  layout.SourceBinPack,
		Columns: grid.DisplayColumns,
		Items:   items,
	}, nil
}

func (r *Runner) resolve(opts Options) (layout.Layout, error) {
	if err := checkItems(opts.Items); err != nil {
		return layout.Layout{}, err
	}
	items, moves := layout.Resolve(opts.Items, grid.DisplayColumns)
	for _, m := range moves {
		opts.Logger.Warn("corrected widget", "id", m.ID, "rule", m.Rule, "before", m.Before, "after", m.After)
	}
	return layout.Layout{
		Source:      layout.SourceResolve,
		Columns:     grid.DisplayColumns,
		Items:       items,
		Corrections: moves,
	}, nil
}

// generator returns a generator for one run. A zero seed draws from the
// global source and mints random UUIDs.
func (r *Runner) generator(seed uint64) *generate.Generator {
	if seed == 0 {
		return generate.New(r.Profiles, r.Presets, nil, nil)
	}
	rng, ids := generate.Seeded(seed)
	return generate.New(r.Profiles, r.Presets, rng, ids)
}

func (r *Runner) pattern(opts Options) ([]int, error) {
	if len(opts.Pattern) > 0 {
		return opts.Pattern, nil
	}
	p, err := r.Presets.Lookup(opts.Preset)
	if err != nil {
		return nil, err
	}
	return p.Pattern, nil
}

// =============================================================================
// Caching
// =============================================================================

// cacheKey returns the key for opts, or "" when the job is not cacheable.
func (r *Runner) cacheKey(opts Options) (string, time.Duration, error) {
	if !opts.Cacheable() {
		return "", 0, nil
	}
	switch opts.Kind {
	case KindAnalysis:
		hash, err := cache.DigestJSON(r.Policy)
		if err != nil {
			return "", 0, err
		}
		return r.Keyer.AnalysisKey(cache.Digest(opts.Input), cache.AnalysisKeyOpts{ConfigHash: hash}), cache.TTLAnalysis, nil
	case KindPreset:
		pattern, err := r.pattern(opts)
		if err != nil {
			return "", 0, err
		}
		hash, err := cache.DigestJSON(r.Profiles)
		if err != nil {
			return "", 0, err
		}
		return r.Keyer.GenerateKey(opts.Kind, opts.GenerateKeyOpts(pattern, hash)), cache.TTLGenerated, nil
	default:
		hash, err := cache.DigestJSON(r.Profiles)
		if err != nil {
			return "", 0, err
		}
		return r.Keyer.GenerateKey(opts.Kind, opts.GenerateKeyOpts(nil, hash)), cache.TTLGenerated, nil
	}
}

func (r *Runner) lookup(ctx context.Context, kind, key string) (layout.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", kind, "err", err)
		return layout.Layout{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return layout.Layout{}, false
	}
	l, err := layout.UnmarshalLayout(data)
	if err != nil {
		// Stale entry from an older format; recompute
		observability.Cache().OnCacheMiss(ctx, kind)
		return layout.Layout{}, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return l, true
}

func (r *Runner) store(ctx context.Context, kind, key string, l layout.Layout, ttl time.Duration) {
	data, err := layout.MarshalLayout(l)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// =============================================================================
// Helpers
// =============================================================================

func newResult(opts Options, l layout.Layout, hit bool) (*Result, error) {
	// A named preset and its pattern share a cache entry.
	if opts.Kind == KindPreset {
		l.Preset = opts.PresetLabel()
	}
	data, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, fmt.Errorf("serialize layout: %w", err)
	}
	return &Result{
		Layout: l,
		Hash:   cache.Digest(data),
		Stats: Stats{
			Inputs:      inputCount(opts),
			Items:       len(l.Items),
			Corrections: len(l.Corrections),
		},
		CacheHit: hit,
	}, nil
}

// inputCount is a rough size of the request: items to resolve, widgets to
// pack or pattern rows. Analysis input is counted in bytes.
func inputCount(opts Options) int {
	switch opts.Kind {
	case KindAnalysis:
		return len(opts.Input)
	case KindResolve:
		return len(opts.Items)
	case KindBinPack:
		return opts.Count
	case KindPreset:
		return len(opts.Pattern)
	}
	return 0
}

// Bounds on the geometry of items submitted for resolving.
const (
	MaxItemSpan = 1000   // widest or tallest item
	MaxItemRow  = 100000 // lowest origin row
)

// checkItems rejects resolve input that no placement can fix.
func checkItems(items []layout.Item) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if it.I == "" {
			return errors.New(errors.ErrCodeInvalidInput, "item at %v has no id", it.Position())
		}
		if seen[it.I] {
			return errors.New(errors.ErrCodeDuplicateID, "duplicate item id %q", it.I).For(it.I)
		}
		seen[it.I] = true
		if it.W < 1 || it.H < 1 {
			return errors.New(errors.ErrCodeInvalidPosition, "item %q: size %dx%d must be positive", it.I, it.W, it.H).For(it.I)
		}
		if it.W > MaxItemSpan || it.H > MaxItemSpan {
			return errors.New(errors.ErrCodeInvalidPosition, "item %q: size %dx%d exceeds %d cells", it.I, it.W, it.H, MaxItemSpan).For(it.I)
		}
		if it.X < 0 || it.Y < 0 {
			return errors.New(errors.ErrCodeInvalidPosition, "item %q: origin (%d,%d) must not be negative", it.I, it.X, it.Y).For(it.I)
		}
		if it.X > MaxItemSpan || it.Y > MaxItemRow {
			return errors.New(errors.ErrCodeInvalidPosition, "item %q: origin (%d,%d) outside %dx%d", it.I, it.X, it.Y, MaxItemSpan, MaxItemRow).For(it.I)
		}
	}
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
