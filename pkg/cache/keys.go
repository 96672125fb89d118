package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys.
type Keyer interface {
	// AnalysisKey keys the conversion of an analysis result.
	AnalysisKey(inputDigest string, opts AnalysisKeyOpts) string

	// GenerateKey keys a seeded generator run of the given kind.
	GenerateKey(kind string, opts GenerateKeyOpts) string
}

// AnalysisKeyOpts holds everything besides the input that affects a
// conversion.
type AnalysisKeyOpts struct {
	ConfigHash string `json:"config"`
}

// GenerateKeyOpts holds everything that affects a generator run.
type GenerateKeyOpts struct {
	Pattern      []int  `json:"pattern,omitempty"`
	MinWidthCols int    `json:"min_width_cols,omitempty"`
	Count        int    `json:"count,omitempty"`
	Seed         uint64 `json:"seed"`
	ConfigHash   string `json:"config"`
}

// DefaultKeyer produces keys of the form "<kind>:<sha256>", where kind is
// "analysis" or the generator kind.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AnalysisKey implements [Keyer].
func (DefaultKeyer) AnalysisKey(inputDigest string, opts AnalysisKeyOpts) string {
	return key("analysis", inputDigest, opts)
}

// GenerateKey implements [Keyer].
func (DefaultKeyer) GenerateKey(kind string, opts GenerateKeyOpts) string {
	return key(kind, opts)
}

// ScopedKeyer prefixes the keys of another keyer so several deployments can
// share one Redis database or Mongo collection.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "dashgrid:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// AnalysisKey implements [Keyer].
func (k *ScopedKeyer) AnalysisKey(inputDigest string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(inputDigest, opts)
}

// GenerateKey implements [Keyer].
func (k *ScopedKeyer) GenerateKey(kind string, opts GenerateKeyOpts) string {
	return k.prefix + k.inner.GenerateKey(kind, opts)
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestJSON returns the [Digest] of the JSON encoding of v. Map keys are
// encoded in sorted order, so equal values always share a digest.
func DigestJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return Digest(data), nil
}

func key(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Digest(data)
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = (*ScopedKeyer)(nil)
)
