package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var errPermanent = errors.New("permanent")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestDigest(t *testing.T) {
	h1 := Digest([]byte("hello"))
	if h1 != Digest([]byte("hello")) {
		t.Error("Digest should be deterministic")
	}
	if h1 == Digest([]byte("world")) {
		t.Error("different inputs should produce different digests")
	}
	if len(h1) != 64 {
		t.Errorf("Digest length = %d, want 64", len(h1))
	}

	a, err := DigestJSON(map[string][]int{"b": {1}, "a": {2}})
	if err != nil {
		t.Fatalf("DigestJSON: %v", err)
	}
	b, _ := DigestJSON(map[string][]int{"a": {2}, "b": {1}})
	if a != b {
		t.Error("DigestJSON should not depend on map insertion order")
	}
	if _, err := DigestJSON(func() {}); err == nil {
		t.Error("DigestJSON should fail on unencodable values")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	a1 := k.AnalysisKey("abc", AnalysisKeyOpts{ConfigHash: "c1"})
	a2 := k.AnalysisKey("abc", AnalysisKeyOpts{ConfigHash: "c2"})
	if a1 == a2 {
		t.Error("different config hashes should produce different keys")
	}
	if !strings.HasPrefix(a1, "analysis:") {
		t.Errorf("AnalysisKey unexpected: %s", a1)
	}

	g1 := k.GenerateKey("preset", GenerateKeyOpts{Pattern: []int{3, 1}, MinWidthCols: 1, Seed: 7})
	g2 := k.GenerateKey("preset", GenerateKeyOpts{Pattern: []int{3, 1}, MinWidthCols: 2, Seed: 7})
	g3 := k.GenerateKey("binpack", GenerateKeyOpts{Pattern: []int{3, 1}, MinWidthCols: 1, Seed: 7})
	if g1 == g2 || g1 == g3 {
		t.Error("different GenerateKeyOpts or kinds should produce different keys")
	}
	if g1 != k.GenerateKey("preset", GenerateKeyOpts{Pattern: []int{3, 1}, MinWidthCols: 1, Seed: 7}) {
		t.Error("GenerateKey should be deterministic")
	}
	if !strings.HasPrefix(g1, "preset:") {
		t.Errorf("GenerateKey unexpected: %s", g1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:123:")

	want := "tenant:123:" + inner.AnalysisKey("abc", AnalysisKeyOpts{})
	if got := scoped.AnalysisKey("abc", AnalysisKeyOpts{}); got != want {
		t.Errorf("ScopedKeyer AnalysisKey = %s, want %s", got, want)
	}

	key := scoped.GenerateKey("binpack", GenerateKeyOpts{Count: 5})
	if !strings.HasPrefix(key, "tenant:123:binpack:") {
		t.Errorf("ScopedKeyer GenerateKey should be prefixed: %s", key)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.AnalysisKey("abc", AnalysisKeyOpts{})
	if key != "prefix:"+NewDefaultKeyer().AnalysisKey("abc", AnalysisKeyOpts{}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	data := []byte("layout")
	if err := c.Set(ctx, "k", data, time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data[0] = 'X'

	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = %v, %v", hit, err)
	}
	if string(got) != "layout" {
		t.Errorf("Get = %q, stored value aliased caller slice", got)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not dropped, Len = %d", c.Len())
	}

	_ = c.Set(ctx, "forever", []byte("x"), 0)
	now = now.Add(365 * 24 * time.Hour)
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should never expire")
	}

	if err := c.Delete(ctx, "forever"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); hit {
		t.Error("deleted entry should miss")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("empty cache should miss")
	}

	if err := c.Set(ctx, "k", []byte(`{"items":[]}`), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(got) != `{"items":[]}` {
		t.Errorf("Get = %q, %v, %v", got, hit, err)
	}

	if err := c.Set(ctx, "old", []byte("x"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	// Corrupt entries are dropped on read.
	bad := c.path("bad")
	if err := os.MkdirAll(filepath.Dir(bad), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "bad"); hit || err != nil {
		t.Errorf("corrupt entry Get = %v, %v; want miss", hit, err)
	}

	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}

	if c.Dir() != dir {
		t.Errorf("Dir() = %s, want %s", c.Dir(), dir)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Clear should remove entries")
	}
}

func TestFileCachePrune(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", []byte("a"), time.Minute)
	_ = c.Set(ctx, "long", []byte("b"), time.Hour)
	_ = c.Set(ctx, "forever", []byte("c"), 0)

	now = now.Add(10 * time.Minute)
	n, err := c.Prune()
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if n != 1 {
		t.Errorf("Prune removed %d entries, want 1", n)
	}
	for _, k := range []string{"long", "forever"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s should survive Prune", k)
		}
	}
}

func TestTransientError(t *testing.T) {
	if Transient(nil) != nil {
		t.Error("Transient(nil) should return nil")
	}

	err := Transient(ErrUnavailable)
	if !IsTransient(err) {
		t.Error("IsTransient should return true for wrapped error")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("Transient should unwrap to the original error")
	}
	if err.Error() != ErrUnavailable.Error() {
		t.Errorf("message not preserved: %s", err)
	}
	if IsTransient(errPermanent) {
		t.Error("IsTransient should return false for unwrapped error")
	}
}

func TestBackoffDo(t *testing.T) {
	ctx := context.Background()
	b := Backoff{Attempts: 3, Initial: time.Millisecond, Max: 2 * time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"success", 0, nil, 1, nil},
		{"permanent", 5, errPermanent, 1, errPermanent},
		{"recovers", 2, Transient(ErrUnavailable), 3, nil},
		{"exhausted", 5, Transient(ErrUnavailable), 3, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := b.Do(ctx, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if err != tt.wantErr {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DefaultBackoff.Do(ctx, func() error {
		return Transient(ErrUnavailable)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
