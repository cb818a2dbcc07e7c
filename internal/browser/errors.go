package browser

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type BrowserErrorCause string

const (
	ErrCauseLaunchFailure     BrowserErrorCause = "launch failure"
	ErrCauseConnectFailure    BrowserErrorCause = "connect failure"
	ErrCauseNavigationFailure BrowserErrorCause = "navigation failure"
	ErrCauseEvalFailure       BrowserErrorCause = "script evaluation failure"
	ErrCauseDecodeFailure     BrowserErrorCause = "unexpected script result"
)

type BrowserError struct {
	Message   string
	Retryable bool
	Cause     BrowserErrorCause
}

func (e *BrowserError) Error() string {
	return fmt.Sprintf("browser error: %s: %s", e.Cause, e.Message)
}

func (e *BrowserError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func MapBrowserErrorToMetadataCause(err *BrowserError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseLaunchFailure, ErrCauseConnectFailure, ErrCauseNavigationFailure:
		return metadata.CauseNetworkFailure
	case ErrCauseEvalFailure:
		return metadata.CauseEvaluationFailure
	case ErrCauseDecodeFailure:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
