package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable is returned when a remote backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

func unavailable(backend string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, backend, err)
}

// TransientError marks a backend failure that may succeed on retry, such as
// a dropped connection or a timeout.
type TransientError struct{ Err error }

// Transient wraps err as a [TransientError]. A nil err stays nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

func (e *TransientError) Error() string { return e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err carries a [TransientError].
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// Backoff retries an operation while it fails with a [TransientError],
// doubling the delay between attempts up to Max.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultBackoff is what the remote backends use.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 100 * time.Millisecond, Max: time.Second}

// Do runs op until it succeeds, fails permanently, runs out of attempts, or
// ctx is done. The last error is returned unwrapped.
func (b Backoff) Do(ctx context.Context, op func() error) error {
	delay := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if !IsTransient(err) {
			return err
		}
		if attempt >= b.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	var te *TransientError
	if errors.As(err, &te) {
		return te.Err
	}
	return err
}
