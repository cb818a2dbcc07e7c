package failure_test

import (
	"testing"

	"github.com/rohmanhakim/element-locator/pkg/failure"
	"github.com/stretchr/testify/assert"
)

type stubError struct {
	severity failure.Severity
}

func (s *stubError) Error() string { return "stub" }
func (s *stubError) Severity() failure.Severity { return s.severity }

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "fatal", failure.SeverityFatal.String())
	assert.Equal(t, "recoverable", failure.SeverityRecoverable.String())
	assert.Equal(t, "unknown", failure.Severity(42).String())
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, failure.IsRecoverable(nil))
	assert.True(t, failure.IsRecoverable(&stubError{severity: failure.SeverityRecoverable}))
	assert.False(t, failure.IsRecoverable(&stubError{severity: failure.SeverityFatal}))
}
