package strategy

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type StrategyErrorCause string

const (
	ErrCauseMissingType   StrategyErrorCause = "missing strategy type"
	ErrCauseDecodeFailure StrategyErrorCause = "decode failed"
	ErrCauseEncodeFailure StrategyErrorCause = "encode failed"
)

type StrategyError struct {
	Message   string
	Retryable bool
	Cause     StrategyErrorCause
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy error: %s: %s", e.Cause, e.Message)
}

func (e *StrategyError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// MapStrategyErrorToMetadataCause is observational only.
func MapStrategyErrorToMetadataCause(err *StrategyError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseMissingType, ErrCauseDecodeFailure:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
