package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. The geocoding client wraps
// timeouts and 5xx responses in it; anything unwrapped (4xx, parse
// failures) aborts the retry loop on the first attempt.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retry runs fn up to attempts times, doubling delay between attempts.
// Only errors wrapped in [RetryableError] are retried; others return
// immediately. If the context is cancelled while waiting, ctx.Err() is
// returned instead of the last failure.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// RetryWithBackoff runs fn with the defaults used for geocoding lookups:
// three attempts starting at one second. The initial delay also keeps a
// retried request from violating the provider's one-request-per-second
// rate policy.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, 3, time.Second, fn)
}

// IsRetryable reports whether err carries a [RetryableError] anywhere in
// its chain.
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}
