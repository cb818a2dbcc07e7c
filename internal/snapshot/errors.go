package snapshot

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type SnapshotErrorCause string

const (
	ErrCauseNotHTML       SnapshotErrorCause = "not an html document"
	ErrCauseInvalidRecord SnapshotErrorCause = "invalid selector map"
)

type SnapshotError struct {
	Message   string
	Retryable bool
	Cause     SnapshotErrorCause
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot error: %s: %s", e.Cause, e.Message)
}

func (e *SnapshotError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func MapSnapshotErrorToMetadataCause(err *SnapshotError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML, ErrCauseInvalidRecord:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
