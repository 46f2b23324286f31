package worker_test

import (
	"testing"
	"time"

	"github.com/nexfest/festhub/internal/queue/worker"
)

const jitter = 250 * time.Millisecond

func TestExponentialBackoffDoubles(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 1, want: 2 * time.Second},
		{attempt: 2, want: 4 * time.Second},
		{attempt: 3, want: 8 * time.Second},
		{attempt: 5, want: 32 * time.Second},
	}

	for _, tc := range tests {
		got := worker.ExponentialBackoff(tc.attempt)

		if got < tc.want || got >= tc.want+jitter {
			t.Fatalf("attempt %d: got %v, want [%v, %v)", tc.attempt, got, tc.want, tc.want+jitter)
		}
	}
}

func TestExponentialBackoffCapsAtFiveMinutes(t *testing.T) {
	cap := 5 * time.Minute

	for _, attempt := range []int{10, 20, 100, 1000} {
		got := worker.ExponentialBackoff(attempt)

		if got < cap || got >= cap+jitter {
			t.Fatalf("attempt %d: got %v, want capped in [%v, %v)", attempt, got, cap, cap+jitter)
		}
	}
}

func TestExponentialBackoffClampsLowAttempts(t *testing.T) {
	for _, attempt := range []int{-5, 0, 1} {
		got := worker.ExponentialBackoff(attempt)

		if got < 2*time.Second || got >= 2*time.Second+jitter {
			t.Fatalf("attempt %d: got %v, want clamped to the base delay", attempt, got)
		}
	}
}
