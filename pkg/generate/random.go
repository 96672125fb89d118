package generate

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Rand is the random source used for type selection.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). n is always > 0.
	IntN(n int) int
}

// IDSource mints unique item ids.
type IDSource interface {
	NewID() string
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// UUIDSource mints random (version 4) UUIDs. Reader supplies the random
// bytes; nil uses the uuid package's default source.
type UUIDSource struct {
	Reader io.Reader
}

// NewID returns a new UUID string.
func (s UUIDSource) NewID() string {
	if s.Reader == nil {
		return uuid.NewString()
	}
	id, err := uuid.NewRandomFromReader(s.Reader)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SequentialIDs mints ids of the form "<prefix><n>" starting at 1. It is
// not safe for concurrent use.
type SequentialIDs struct {
	Prefix string
	next   int
}

// NewID returns the next id in the sequence.
func (s *SequentialIDs) NewID() string {
	s.next++
	return fmt.Sprintf("%s%d", s.Prefix, s.next)
}

// Seeded returns a deterministic random source and a UUID source drawing
// from a separate stream of the same seed. The same seed always yields the
// same types and ids.
func Seeded(seed uint64) (*rand.Rand, IDSource) {
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	ids := rand.New(rand.NewPCG(seed^0x5eed, seed))
	return rng, UUIDSource{Reader: &randReader{rng: ids}}
}

// randReader adapts a *rand.Rand to io.Reader.
type randReader struct {
	rng *rand.Rand
}

func (r *randReader) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := r.rng.Uint64()
		for j := 0; j < 8 && i+j < len(p); j++ {
			p[i+j] = byte(v >> (8 * j))
		}
	}
	return len(p), nil
}
