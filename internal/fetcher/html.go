package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
	"github.com/rohmanhakim/element-locator/pkg/retry"
)

/*
Responsibilities

- Load the page a static locate run evaluates strategies against
- Apply headers and timeouts
- Retry transient failures with backoff
- Classify responses

Fetch Semantics

- Only successful HTML responses are returned
- Non-HTML content is rejected
- file:// URLs are read from disk without retries
- Every fetch is recorded with metadata

The fetcher never parses content; it only returns bytes and metadata.
*/

type HtmlFetcher struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
}

var _ Fetcher = (*HtmlFetcher)(nil)

// NewHtmlFetcher builds a fetcher whose requests time out after timeout;
// zero means no client-side timeout.
func NewHtmlFetcher(
	metadataSink metadata.MetadataSink,
	timeout time.Duration,
) HtmlFetcher {
	return HtmlFetcher{
		metadataSink: metadataSink,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

func (h *HtmlFetcher) Fetch(
	ctx context.Context,
	fetchParam FetchParam,
	retryParam retry.RetryParam,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "HtmlFetcher.Fetch"
	startTime := time.Now()

	var result FetchResult
	var err failure.ClassifiedError
	attempts := 0

	switch fetchParam.pageURL.Scheme {
	case "file":
		attempts = 1
		result, err = readLocal(fetchParam.pageURL)
	case "http", "https":
		result, err = h.fetchWithRetry(ctx, fetchParam.pageURL, fetchParam.userAgent, retryParam, &attempts)
	default:
		err = &FetchError{
			Message:   fmt.Sprintf("cannot load %q", fetchParam.pageURL.String()),
			Retryable: false,
			Cause:     ErrCauseUnsupportedScheme,
		}
	}

	var statusCode int
	var contentType string
	if err == nil {
		statusCode = result.Code()
		contentType = result.ContentType()
	}
	h.metadataSink.RecordFetch(
		fetchParam.pageURL.String(),
		statusCode,
		time.Since(startTime),
		contentType,
		attempts,
	)

	if err != nil {
		h.recordError(callerMethod, fetchParam.pageURL, err)
		return FetchResult{}, err
	}
	return result, nil
}

func (h *HtmlFetcher) recordError(callerMethod string, fetchUrl url.URL, err failure.ClassifiedError) {
	cause := metadata.CauseUnknown
	attrs := []metadata.Attribute{
		metadata.NewAttr(metadata.AttrURL, fetchUrl.String()),
	}

	var fetchError *FetchError
	var retryError *retry.RetryError
	// RetryError unwraps to the last FetchError, so it is checked first.
	switch {
	case errors.As(err, &retryError):
		cause = metadata.CauseNetworkFailure
		attrs = append(attrs, metadata.NewAttr(metadata.AttrMessage, retryError.Error()))
	case errors.As(err, &fetchError):
		cause = mapFetchErrorToMetadataCause(fetchError)
	}

	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		cause,
		err.Error(),
		attrs,
	)
}

func (h *HtmlFetcher) fetchWithRetry(
	ctx context.Context,
	fetchUrl url.URL,
	userAgent string,
	retryParam retry.RetryParam,
	attempts *int,
) (FetchResult, failure.ClassifiedError) {
	fetchTask := func(ctx context.Context) (FetchResult, failure.ClassifiedError) {
		*attempts++
		return h.performFetch(ctx, fetchUrl, userAgent)
	}

	result, retryErr := retry.Retry(ctx, retryParam, fetchTask)
	if retryErr != nil {
		// A non-retryable FetchError surfaces as-is. Exhaustion and
		// cancellation come back as RetryError wrapping the last failure.
		return FetchResult{}, retryErr
	}
	return result, nil
}

func (h *HtmlFetcher) performFetch(ctx context.Context, fetchUrl url.URL, userAgent string) (FetchResult, failure.ClassifiedError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchUrl.String(), nil)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseNetworkFailure,
		}
	}

	for key, value := range requestHeaders(userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("server error: %d", resp.StatusCode),
			Retryable: true,
			Cause:     ErrCauseRequest5xx,
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		return FetchResult{}, &FetchError{
			Message:   "rate limited (429)",
			Retryable: true,
			Cause:     ErrCauseRequestTooMany,
		}
	case resp.StatusCode == http.StatusForbidden:
		return FetchResult{}, &FetchError{
			Message:   "access forbidden (403)",
			Retryable: false,
			Cause:     ErrCauseRequestPageForbidden,
		}
	case resp.StatusCode >= 400:
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("client error: %d", resp.StatusCode),
			Retryable: false,
			Cause:     ErrCauseRequest4xx,
		}
	case resp.StatusCode >= 300:
		// http.Client follows redirects, so a 3xx here means the redirect
		// limit was hit.
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("redirect error: %d", resp.StatusCode),
			Retryable: false,
			Cause:     ErrCauseRedirectLimitExceeded,
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isHTMLContent(contentType) {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("non-HTML content type: %s", contentType),
			Retryable: false,
			Cause:     ErrCauseContentTypeInvalid,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseReadResponseBodyError,
		}
	}

	finalURL := fetchUrl
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = *resp.Request.URL
	}

	return FetchResult{
		requestedURL: fetchUrl,
		finalURL:     finalURL,
		markup:       body,
		statusCode:   resp.StatusCode,
		contentType:  contentType,
	}, nil
}

func readLocal(fileUrl url.URL) (FetchResult, failure.ClassifiedError) {
	body, err := os.ReadFile(fileUrl.Path)
	if err != nil {
		return FetchResult{}, &FetchError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseLocalReadFailure,
		}
	}
	return FetchResult{
		requestedURL: fileUrl,
		finalURL:     fileUrl,
		markup:       body,
		local:        true,
	}, nil
}

func isHTMLContent(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "text/html") ||
		strings.Contains(contentType, "application/xhtml")
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
	}
}
