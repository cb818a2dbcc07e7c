package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseNetworkFailure        FetchErrorCause = "network issues"
	ErrCauseReadResponseBodyError FetchErrorCause = "failed to read response body"
	ErrCauseContentTypeInvalid    FetchErrorCause = "non-HTML content"
	ErrCauseRedirectLimitExceeded FetchErrorCause = "reached redirect limit"
	ErrCauseRequestPageForbidden  FetchErrorCause = "forbidden"
	ErrCauseRequest4xx            FetchErrorCause = "4xx"
	ErrCauseRequestTooMany        FetchErrorCause = "too many requests"
	ErrCauseRequest5xx            FetchErrorCause = "5xx"
	ErrCauseLocalReadFailure      FetchErrorCause = "failed to read local file"
	ErrCauseUnsupportedScheme     FetchErrorCause = "unsupported url scheme"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNetworkFailure,
		ErrCauseReadResponseBodyError,
		ErrCauseRedirectLimitExceeded,
		ErrCauseRequestPageForbidden,
		ErrCauseRequest4xx,
		ErrCauseRequestTooMany,
		ErrCauseRequest5xx:
		return metadata.CauseNetworkFailure
	case ErrCauseContentTypeInvalid, ErrCauseUnsupportedScheme:
		return metadata.CauseContentInvalid
	case ErrCauseLocalReadFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
