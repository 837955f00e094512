package proxy

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"
)

// Retry settings for model calls.
const (
	retryAttempts = 3
	retryDelay    = 500 * time.Millisecond
)

// retryableError marks a failure worth another attempt.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// transientStatus reports whether a model API status is likely to clear up
// on its own.
func transientStatus(code int) bool {
	switch code {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retry runs fn up to attempts times, doubling delay after each failure.
// Only errors wrapped in retryableError are retried; the wrapper is removed
// from the returned error.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error
	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		var re *retryableError
		if !stderrors.As(err, &re) {
			return err
		}
		lastErr = re.err
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
