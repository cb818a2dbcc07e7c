package timeutil

import (
	"math"
	"math/rand"
	"time"
)

// ExponentialBackoffDelay computes the wait before retry number attempt (1-based):
// initial * multiplier^(attempt-1), capped at the max duration, plus a random
// jitter in [0, jitter) drawn from rng.
func ExponentialBackoffDelay(
	attempt int,
	jitter time.Duration,
	rng *rand.Rand,
	param BackoffParam,
) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := float64(param.InitialDuration()) * math.Pow(param.Multiplier(), float64(attempt-1))
	if param.MaxDuration() > 0 && delay > float64(param.MaxDuration()) {
		delay = float64(param.MaxDuration())
	}
	if jitter > 0 && rng != nil {
		delay += float64(rng.Int63n(int64(jitter)))
	}
	return time.Duration(delay)
}

// MaxDuration returns the largest value in durations, or zero for an empty slice.
func MaxDuration(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	max := durations[0]
	for _, d := range durations[1:] {
		if d > max {
			max = d
		}
	}
	return max
}
