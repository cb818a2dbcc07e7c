package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rohmanhakim/element-locator/pkg/failure"
	"github.com/rohmanhakim/element-locator/pkg/timeutil"
)

// Retry executes fn up to MaxAttempts times, sleeping with exponential backoff
// and jitter between attempts. Only retryable errors trigger another attempt;
// a non-retryable error is returned as-is. The wait is cut short when ctx is done.
func Retry[T any](
	ctx context.Context,
	retryParam RetryParam,
	fn func(ctx context.Context) (T, failure.ClassifiedError),
) (T, failure.ClassifiedError) {
	var zero T
	var lastErr failure.ClassifiedError

	if retryParam.MaxAttempts < 1 {
		return zero, &RetryError{
			Message:   "max attempt cannot be 0",
			Cause:     ErrZeroAttempt,
			Retryable: false,
		}
	}

	rng := rand.New(rand.NewSource(retryParam.RandomSeed))

	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isErrorRetryable(err) {
			return zero, err
		}
		if attempt == retryParam.MaxAttempts {
			break
		}

		delay := timeutil.ExponentialBackoffDelay(attempt, retryParam.Jitter, rng, retryParam.BackoffParam)
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, &RetryError{
				Message:   ctx.Err().Error(),
				Cause:     ErrCanceled,
				Retryable: false,
				Attempts:  attempt,
				Last:      lastErr,
			}
		case <-timer.C:
		}
	}

	return zero, &RetryError{
		Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", retryParam.MaxAttempts, lastErr),
		Cause:     ErrExhaustedAttempts,
		Retryable: true,
		Attempts:  retryParam.MaxAttempts,
		Last:      lastErr,
	}
}

// isErrorRetryable defaults to true for errors that do not say otherwise.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}
	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return err.Severity() == failure.SeverityRecoverable
}
