// Package observability reports what the layout engine does to pluggable
// sinks.
//
// Three event streams exist: layout runs (with the heuristic corrections
// they made), cache traffic and served HTTP requests. Each stream has a
// hook interface with a no-op default. A process installs a [Hooks] bundle
// once at startup, and library code fetches the current sink when it emits:
//
//	observability.Install(observability.Combine(
//	    observability.LogHooks(logger),
//	    stats.Hooks(),
//	))
//
//	observability.Pipeline().OnCorrection(ctx, "analysis", "five-card-row")
//
// [LogHooks] writes events to a charmbracelet logger; [Stats] aggregates
// them in memory for the server's /stats route.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from layout runs. Kind is the layout source:
// "analysis", "preset", "binpack" or "resolve".
type PipelineHooks interface {
	OnRunStart(ctx context.Context, kind string, inputs int)
	OnRunComplete(ctx context.Context, kind string, items int, duration time.Duration, err error)

	// OnCorrection is called once per heuristic correction, with the rule
	// that fired.
	OnCorrection(ctx context.Context, kind, rule string)
}

// CacheHooks receives cache traffic for a layout kind.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, path string, status int, duration time.Duration)
}

// Hooks bundles one sink per stream. A nil field means no-op.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

// NoopPipelineHooks discards pipeline events.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnCorrection(context.Context, string, string)                     {}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks discards HTTP events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

func (h Hooks) withDefaults() Hooks {
	if h.Pipeline == nil {
		h.Pipeline = NoopPipelineHooks{}
	}
	if h.Cache == nil {
		h.Cache = NoopCacheHooks{}
	}
	if h.HTTP == nil {
		h.HTTP = NoopHTTPHooks{}
	}
	return h
}

var current atomic.Pointer[Hooks]

func init() { Reset() }

// Install replaces the process-wide hooks. Nil fields become no-ops.
func Install(h Hooks) {
	h = h.withDefaults()
	current.Store(&h)
}

// Reset installs no-op hooks for every stream.
func Reset() { Install(Hooks{}) }

// Installed returns the current bundle.
func Installed() Hooks { return *current.Load() }

// Pipeline returns the installed pipeline sink.
func Pipeline() PipelineHooks { return current.Load().Pipeline }

// Cache returns the installed cache sink.
func Cache() CacheHooks { return current.Load().Cache }

// HTTP returns the installed HTTP sink.
func HTTP() HTTPHooks { return current.Load().HTTP }

// Combine fans every event out to each bundle in order. Nil fields are
// skipped.
func Combine(bundles ...Hooks) Hooks {
	var f fanout
	for _, b := range bundles {
		if b.Pipeline != nil {
			f.pipeline = append(f.pipeline, b.Pipeline)
		}
		if b.Cache != nil {
			f.cache = append(f.cache, b.Cache)
		}
		if b.HTTP != nil {
			f.http = append(f.http, b.HTTP)
		}
	}
	return Hooks{Pipeline: f, Cache: f, HTTP: f}
}

type fanout struct {
	pipeline []PipelineHooks
	cache    []CacheHooks
	http     []HTTPHooks
}

func (f fanout) OnRunStart(ctx context.Context, kind string, inputs int) {
	for _, h := range f.pipeline {
		h.OnRunStart(ctx, kind, inputs)
	}
}

func (f fanout) OnRunComplete(ctx context.Context, kind string, items int, d time.Duration, err error) {
	for _, h := range f.pipeline {
		h.OnRunComplete(ctx, kind, items, d, err)
	}
}

func (f fanout) OnCorrection(ctx context.Context, kind, rule string) {
	for _, h := range f.pipeline {
		h.OnCorrection(ctx, kind, rule)
	}
}

func (f fanout) OnCacheHit(ctx context.Context, kind string) {
	for _, h := range f.cache {
		h.OnCacheHit(ctx, kind)
	}
}

func (f fanout) OnCacheMiss(ctx context.Context, kind string) {
	for _, h := range f.cache {
		h.OnCacheMiss(ctx, kind)
	}
}

func (f fanout) OnCacheSet(ctx context.Context, kind string, size int) {
	for _, h := range f.cache {
		h.OnCacheSet(ctx, kind, size)
	}
}

func (f fanout) OnRequest(ctx context.Context, method, path string) {
	for _, h := range f.http {
		h.OnRequest(ctx, method, path)
	}
}

func (f fanout) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	for _, h := range f.http {
		h.OnResponse(ctx, method, path, status, d)
	}
}
