package workflow

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type WorkflowErrorCause string

const (
	ErrCauseUnsupportedFormat WorkflowErrorCause = "unsupported file format"
	ErrCauseReadFailure       WorkflowErrorCause = "read failure"
	ErrCauseParseFailure      WorkflowErrorCause = "parse failure"
	ErrCauseEncodeFailure     WorkflowErrorCause = "encode failure"
	ErrCauseWriteFailure      WorkflowErrorCause = "write failure"
)

type WorkflowError struct {
	Message   string
	Retryable bool
	Cause     WorkflowErrorCause
	Path      string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("workflow error: %s: %s (%s)", e.Cause, e.Message, e.Path)
}

func (e *WorkflowError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func MapWorkflowErrorToMetadataCause(err *WorkflowError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseUnsupportedFormat, ErrCauseParseFailure, ErrCauseReadFailure:
		return metadata.CauseContentInvalid
	case ErrCauseEncodeFailure:
		return metadata.CauseInvariantViolation
	case ErrCauseWriteFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
