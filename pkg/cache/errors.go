package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnavailable reports a remote backend that could not be reached at
	// open time. Callers usually fall back to a memory or null cache.
	ErrUnavailable = errors.New("cache backend unavailable")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("cache closed")
)

// RetryableError marks a transient backend failure, such as a dropped
// connection or a timeout, that RetryWithBackoff may try again.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff bounds RetryWithBackoff. The pause doubles after every failure.
type Backoff struct {
	Attempts int
	Delay    time.Duration
}

// DefaultBackoff keeps worst-case waits near 150ms, since cache writes sit
// on the layout path.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 50 * time.Millisecond}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// Retryable, or b.Attempts calls have failed. It stops early when ctx ends.
func RetryWithBackoff(ctx context.Context, b Backoff, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	err := fn()
	for n := 1; n < attempts && IsRetryable(err); n++ {
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		err = fn()
	}
	return err
}
