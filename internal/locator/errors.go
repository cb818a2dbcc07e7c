package locator

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type LocateErrorCause string

const (
	ErrCauseStrategiesExhausted LocateErrorCause = "strategies exhausted"
	ErrCauseCanceled            LocateErrorCause = "canceled"
)

type LocateError struct {
	Message   string
	Retryable bool
	Cause     LocateErrorCause
	Attempts  int
}

func (e *LocateError) Error() string {
	return fmt.Sprintf("locate error: %s: %s", e.Cause, e.Message)
}

func (e *LocateError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func mapLocateErrorToMetadataCause(err *LocateError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseStrategiesExhausted:
		return metadata.CauseStrategiesExhausted
	default:
		return metadata.CauseUnknown
	}
}
