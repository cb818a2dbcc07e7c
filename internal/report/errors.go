package report

import (
	"fmt"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

type ReportErrorCause string

const (
	ErrCauseConversionFailure ReportErrorCause = "conversion failed"
	ErrCauseUnknownFormat     ReportErrorCause = "unknown format"
)

type ReportError struct {
	Message   string
	Retryable bool
	Cause     ReportErrorCause
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report error: %s: %s", e.Cause, e.Message)
}

func (e *ReportError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func mapReportErrorToMetadataCause(err *ReportError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseConversionFailure, ErrCauseUnknownFormat:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
