package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryErrWithContext(t *testing.T) {
	tests := []struct {
		name      string
		maxTries  int
		failUntil int
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "succeeds first try",
			maxTries:  3,
			failUntil: 0,
			wantErr:   false,
			wantCalls: 1,
		},
		{
			name:      "succeeds after retries",
			maxTries:  3,
			failUntil: 2,
			wantErr:   false,
			wantCalls: 3,
		},
		{
			name:      "exhausts all tries",
			maxTries:  2,
			failUntil: 5,
			wantErr:   true,
			wantCalls: 2,
		},
		{
			name:      "zero tries defaults to one",
			maxTries:  0,
			failUntil: 0,
			wantErr:   false,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryErrWithContext(context.Background(), tt.maxTries, func(ctx context.Context) error {
				calls++
				if calls <= tt.failUntil {
					return errors.New("boom")
				}
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("RetryErrWithContext() error = %v, wantErr %v", err, tt.wantErr)
			}
			if calls != tt.wantCalls {
				t.Errorf("RetryErrWithContext() calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestRetryErrWithContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := RetryErrWithContext(ctx, 3, func(ctx context.Context) error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no calls after cancellation, got %d", calls)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	t.Run("respects shouldRetry predicate", func(t *testing.T) {
		permanent := errors.New("permanent")
		calls := 0
		_, err := RetryWithBackoff(context.Background(), 5, time.Millisecond, func(err error) bool {
			return !errors.Is(err, permanent)
		}, func(ctx context.Context) (int, error) {
			calls++
			return 0, permanent
		})
		if !errors.Is(err, permanent) {
			t.Errorf("expected permanent error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("expected 1 call for non-retryable error, got %d", calls)
		}
	})

	t.Run("returns value on eventual success", func(t *testing.T) {
		calls := 0
		got, err := RetryWithBackoff(context.Background(), 3, time.Millisecond, nil, func(ctx context.Context) (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("transient")
			}
			return 42, nil
		})
		if err != nil {
			t.Fatalf("RetryWithBackoff() error = %v", err)
		}
		if got != 42 {
			t.Errorf("RetryWithBackoff() = %d, want 42", got)
		}
	})
}
