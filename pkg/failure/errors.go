package failure

// Severity tells a caller whether a failure ends the current run or can be
// absorbed (logged, reported, tried again by a later call).
type Severity int

const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityRecoverable:
		return "recoverable"
	default:
		return "unknown"
	}
}

type ClassifiedError interface {
	error
	Severity() Severity
}

// IsRecoverable reports whether err is a ClassifiedError that can be absorbed.
// A nil error is considered recoverable.
func IsRecoverable(err ClassifiedError) bool {
	if err == nil {
		return true
	}
	return err.Severity() == SeverityRecoverable
}
