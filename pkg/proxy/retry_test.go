package proxy

import (
	"context"
	stderrors "errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	transient := stderrors.New("overloaded")
	fatal := stderrors.New("bad request")

	tests := []struct {
		name      string
		failures  []error
		wantCalls int
		wantErr   error
	}{
		{"first try", nil, 1, nil},
		{"recovers", []error{&retryableError{transient}}, 2, nil},
		{"gives up", []error{&retryableError{transient}, &retryableError{transient}, &retryableError{transient}}, 3, transient},
		{"not retryable", []error{fatal}, 1, fatal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retry(context.Background(), 3, time.Millisecond, func() error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
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

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := retry(ctx, 3, time.Hour, func() error {
		return &retryableError{stderrors.New("overloaded")}
	})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestTransientStatus(t *testing.T) {
	for code, want := range map[int]bool{500: true, 503: true, 504: true, 400: false, 429: false, 0: false} {
		if got := transientStatus(code); got != want {
			t.Errorf("transientStatus(%d) = %v, want %v", code, got, want)
		}
	}
}
