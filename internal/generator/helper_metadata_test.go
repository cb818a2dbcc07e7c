package generator_test

import (
	"time"

	"github.com/rohmanhakim/element-locator/internal/metadata"
)

// errorRecordingSink is a test double that keeps the recorded error causes
type errorRecordingSink struct {
	causes []metadata.ErrorCause
}

func (e *errorRecordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	e.causes = append(e.causes, cause)
}

func (e *errorRecordingSink) RecordAttempt(
	kind string,
	value string,
	priority int,
	success bool,
	duration time.Duration,
	attrs []metadata.Attribute,
) {
}

func (e *errorRecordingSink) RecordAdvisory(packageName string, action string, message string, attrs []metadata.Attribute) {
}

func (e *errorRecordingSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
) {
}

func (e *errorRecordingSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}
