package worker

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoff doubles the delay per attempt, capped at five minutes.
// attempt=1 => 2s, attempt=2 => 4s, attempt=3 => 8s and so on.
func ExponentialBackoff(attempt int) time.Duration {
	base := 2 * time.Second

	capDelay := 5 * time.Minute

	if attempt < 1 {
		attempt = 1
	}

	multiple := math.Pow(2, float64(attempt-1))
	delay := time.Duration(float64(base) * multiple)

	if delay > capDelay || delay <= 0 {
		delay = capDelay
	}

	// small jitter (0-250ms) to avoid thundering herd
	delay += time.Duration(rand.Intn(250)) * time.Millisecond

	return delay
}
