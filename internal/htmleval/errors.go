package htmleval

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type EvalErrorCause string

const (
	ErrCauseInvalidExpression EvalErrorCause = "invalid expression"
)

type EvalError struct {
	Message   string
	Retryable bool
	Cause     EvalErrorCause
	Expr      string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluation error: %s: %s (%s)", e.Cause, e.Message, e.Expr)
}

func (e *EvalError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func MapEvalErrorToMetadataCause(err *EvalError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidExpression:
		return metadata.CauseEvaluationFailure
	default:
		return metadata.CauseUnknown
	}
}
