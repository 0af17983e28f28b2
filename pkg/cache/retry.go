package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend connectivity failures (timeouts, refused
// connections). Remote backends wrap it with [Retryable].
var ErrNetwork = errors.New("network error")

type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err, or anything it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// Backoff is a retry policy: up to Attempts calls, sleeping Initial before
// the second call and doubling up to Max after that.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

// DefaultBackoff is used by remote caches: three attempts, 100ms then 200ms.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 100 * time.Millisecond, Max: time.Second}

// Retry calls fn until it succeeds, returns an error not marked
// [Retryable], or runs out of attempts. The last error is returned;
// cancellation of ctx while waiting returns ctx.Err().
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	delay := b.Initial
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		if delay *= 2; b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
}
