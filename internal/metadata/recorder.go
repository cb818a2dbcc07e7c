package metadata

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

/*
Metadata Collected
- Strategy attempts (kind, value, priority, outcome, duration)
- Advisory notes that never change an outcome (target text mismatches)
- Page fetches
- Written artifacts
- Classified errors

Metadata is write-only.
No component may read metadata to influence generation or location decisions.
*/

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)

	RecordAttempt(
		kind string,
		value string,
		priority int,
		success bool,
		duration time.Duration,
		attrs []Attribute,
	)

	RecordAdvisory(
		packageName string,
		action string,
		message string,
		attrs []Attribute,
	)

	RecordFetch(
		fetchUrl string,
		httpStatus int,
		duration time.Duration,
		contentType string,
		retryCount int,
	)

	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

/*
Recorder writes metadata events as structured log records.
It must not:
- perform I/O decisions
- affect control flow
Events are emitted synchronously in call order.
*/
type Recorder struct {
	logger *slog.Logger
}

// NewRecorder falls back to slog.Default when logger is nil.
func NewRecorder(logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		logger: logger,
	}
}

var _ MetadataSink = (*Recorder)(nil)

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
	args := []slog.Attr{
		slog.Time("observed_at", observedAt),
		slog.String("package", packageName),
		slog.String("action", action),
		slog.String("cause", cause.String()),
		slog.String("details", details),
	}
	r.logger.LogAttrs(context.Background(), slog.LevelWarn, "error", append(args, toSlogAttrs(attrs)...)...)
}

func (r *Recorder) RecordAttempt(
	kind string,
	value string,
	priority int,
	success bool,
	duration time.Duration,
	attrs []Attribute,
) {
	args := []slog.Attr{
		slog.String(string(AttrKind), kind),
		slog.String(string(AttrValue), value),
		slog.Int(string(AttrPriority), priority),
		slog.Bool("success", success),
		slog.Duration("duration", duration),
	}
	r.logger.LogAttrs(context.Background(), slog.LevelInfo, "strategy attempt", append(args, toSlogAttrs(attrs)...)...)
}

func (r *Recorder) RecordAdvisory(
	packageName string,
	action string,
	message string,
	attrs []Attribute,
) {
	args := []slog.Attr{
		slog.String("package", packageName),
		slog.String("action", action),
		slog.String(string(AttrMessage), message),
	}
	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "advisory", append(args, toSlogAttrs(attrs)...)...)
}

func (r *Recorder) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
) {
	r.logger.LogAttrs(context.Background(), slog.LevelInfo, "fetch",
		slog.String(string(AttrURL), fetchUrl),
		slog.String(string(AttrHTTPStatus), strconv.Itoa(httpStatus)),
		slog.Duration("duration", duration),
		slog.String("content_type", contentType),
		slog.Int("retry_count", retryCount),
	)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	args := []slog.Attr{
		slog.String("kind", string(kind)),
		slog.String(string(AttrWritePath), path),
	}
	r.logger.LogAttrs(context.Background(), slog.LevelInfo, "artifact", append(args, toSlogAttrs(attrs)...)...)
}

func toSlogAttrs(attrs []Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, slog.String(string(a.Key), a.Value))
	}
	return out
}

// NoopSink, struct that implements metadata.MetadataSink but does nothing.
// Callers (or tests) decide whether to inject a Recorder or a NoopSink,
// which keeps metadata orthogonal to behavior.
type NoopSink struct{}

var _ MetadataSink = (*NoopSink)(nil)

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	details string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordAttempt(
	kind string,
	value string,
	priority int,
	success bool,
	duration time.Duration,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordAdvisory(packageName string, action string, message string, attrs []Attribute) {
}

func (n *NoopSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
) {
}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}
