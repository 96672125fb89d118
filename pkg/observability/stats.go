package observability

import (
	"context"
	"maps"
	"strconv"
	"sync"
	"time"
)

// Stats counts events in memory. It implements all three hook interfaces;
// use [Stats.Hooks] to install it.
type Stats struct {
	mu          sync.Mutex
	started     time.Time
	runs        map[string]RunStats
	corrections map[string]int
	cache       map[string]CacheStats
	responses   map[string]int
}

// RunStats aggregates the runs of one layout kind.
type RunStats struct {
	Runs     int           `json:"runs"`
	Failures int           `json:"failures"`
	Items    int           `json:"items"`
	Duration time.Duration `json:"durationNs"`
}

// CacheStats aggregates the cache traffic of one layout kind.
type CacheStats struct {
	Hits   int `json:"hits"`
	Misses int `json:"misses"`
	Sets   int `json:"sets"`
	Bytes  int `json:"bytes"`
}

// StatsSnapshot is a point-in-time copy of a [Stats].
type StatsSnapshot struct {
	Uptime      time.Duration         `json:"uptimeNs"`
	Runs        map[string]RunStats   `json:"runs"`
	Corrections map[string]int        `json:"corrections"`
	Cache       map[string]CacheStats `json:"cache"`
	Responses   map[string]int        `json:"responses"`
}

// NewStats creates empty counters.
func NewStats() *Stats {
	return &Stats{
		started:     time.Now(),
		runs:        make(map[string]RunStats),
		corrections: make(map[string]int),
		cache:       make(map[string]CacheStats),
		responses:   make(map[string]int),
	}
}

// Hooks returns s as a bundle for [Install] or [Combine].
func (s *Stats) Hooks() Hooks {
	return Hooks{Pipeline: s, Cache: s, HTTP: s}
}

// Snapshot copies the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		Uptime:      time.Since(s.started),
		Runs:        maps.Clone(s.runs),
		Corrections: maps.Clone(s.corrections),
		Cache:       maps.Clone(s.cache),
		Responses:   maps.Clone(s.responses),
	}
}

func (s *Stats) OnRunStart(context.Context, string, int) {}

func (s *Stats) OnRunComplete(_ context.Context, kind string, items int, d time.Duration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.runs[kind]
	r.Runs++
	r.Duration += d
	if err != nil {
		r.Failures++
	} else {
		r.Items += items
	}
	s.runs[kind] = r
}

func (s *Stats) OnCorrection(_ context.Context, _, rule string) {
	s.mu.Lock()
	s.corrections[rule]++
	s.mu.Unlock()
}

func (s *Stats) OnCacheHit(_ context.Context, kind string) {
	s.updateCache(kind, func(c *CacheStats) { c.Hits++ })
}

func (s *Stats) OnCacheMiss(_ context.Context, kind string) {
	s.updateCache(kind, func(c *CacheStats) { c.Misses++ })
}

func (s *Stats) OnCacheSet(_ context.Context, kind string, size int) {
	s.updateCache(kind, func(c *CacheStats) {
		c.Sets++
		c.Bytes += size
	})
}

func (s *Stats) OnRequest(context.Context, string, string) {}

// OnResponse counts responses by status code.
func (s *Stats) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	s.mu.Lock()
	s.responses[strconv.Itoa(status)]++
	s.mu.Unlock()
}

func (s *Stats) updateCache(kind string, fn func(*CacheStats)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cache[kind]
	fn(&c)
	s.cache[kind] = c
}

var (
	_ PipelineHooks = (*Stats)(nil)
	_ CacheHooks    = (*Stats)(nil)
	_ HTTPHooks     = (*Stats)(nil)
)
