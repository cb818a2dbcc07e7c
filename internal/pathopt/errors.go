package pathopt

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type OptimizeErrorCause string

const (
	ErrCauseEmptyPath    OptimizeErrorCause = "empty path"
	ErrCauseNoSegments   OptimizeErrorCause = "no parseable segment"
	ErrCauseResultLength OptimizeErrorCause = "unexpected result length"
)

type OptimizeError struct {
	Message   string
	Retryable bool
	Cause     OptimizeErrorCause
}

func (e *OptimizeError) Error() string {
	return fmt.Sprintf("path optimizer error: %s: %s", e.Cause, e.Message)
}

func (e *OptimizeError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// MapOptimizeErrorToMetadataCause is observational only.
func MapOptimizeErrorToMetadataCause(err *OptimizeError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseEmptyPath, ErrCauseNoSegments:
		return metadata.CauseContentInvalid
	case ErrCauseResultLength:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
