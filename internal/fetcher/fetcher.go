package fetcher

import (
	"context"

	"github.com/rohmanhakim/element-locator/pkg/failure"
	"github.com/rohmanhakim/element-locator/pkg/retry"
)

// Fetcher loads the page a static locate run works on.
type Fetcher interface {
	Fetch(
		ctx context.Context,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
