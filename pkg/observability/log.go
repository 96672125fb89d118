package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks returns a bundle that writes every stream to logger. Pipeline and
// cache events are logged at debug level, so they only show up in verbose
// mode; served requests are logged at info level.
func LogHooks(logger *log.Logger) Hooks {
	return Hooks{
		Pipeline: LogPipelineHooks{Logger: logger},
		Cache:    LogCacheHooks{Logger: logger},
		HTTP:     LogHTTPHooks{Logger: logger},
	}
}

// LogPipelineHooks reports pipeline events at debug level.
type LogPipelineHooks struct {
	Logger *log.Logger
}

func (h LogPipelineHooks) OnRunStart(_ context.Context, kind string, inputs int) {
	h.Logger.Debug("layout run started", "kind", kind, "inputs", inputs)
}

func (h LogPipelineHooks) OnRunComplete(_ context.Context, kind string, items int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout run failed", "kind", kind, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("layout run complete", "kind", kind, "items", items, "duration", d)
}

func (h LogPipelineHooks) OnCorrection(_ context.Context, kind, rule string) {
	h.Logger.Debug("correction applied", "kind", kind, "rule", rule)
}

// LogCacheHooks reports cache events at debug level.
type LogCacheHooks struct {
	Logger *log.Logger
}

func (h LogCacheHooks) OnCacheHit(_ context.Context, kind string) {
	h.Logger.Debug("cache hit", "kind", kind)
}

func (h LogCacheHooks) OnCacheMiss(_ context.Context, kind string) {
	h.Logger.Debug("cache miss", "kind", kind)
}

func (h LogCacheHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.Logger.Debug("layout cached", "kind", kind, "bytes", size)
}

// LogHTTPHooks logs each served request at info level.
type LogHTTPHooks struct {
	Logger *log.Logger
}

func (h LogHTTPHooks) OnRequest(context.Context, string, string) {}

func (h LogHTTPHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("request", "method", method, "path", path, "status", status, "duration", d)
}
