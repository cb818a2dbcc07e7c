package locator_test

import (
	"context"
	"time"

	"github.com/rohmanhakim/element-locator/internal/locator"
	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/stretchr/testify/mock"
)

type mockPage struct {
	mock.Mock
}

func (m *mockPage) Snapshot(ctx context.Context) (locator.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(locator.Snapshot), args.Error(1)
}

func (m *mockPage) Evaluate(ctx context.Context, expr string) (*locator.EvalResult, error) {
	args := m.Called(ctx, expr)
	res, _ := args.Get(0).(*locator.EvalResult)
	return res, args.Error(1)
}

var _ locator.Page = (*mockPage)(nil)

func pageWith(nodes ...locator.Node) *mockPage {
	p := &mockPage{}
	p.On("Snapshot", mock.Anything).Return(locator.NewSnapshot(nodes...), nil)
	return p
}

func node(idx int, tag, text string) locator.NodeFields {
	return locator.NodeFields{Idx: idx, TagName: tag, TextContent: text, IsVisible: true}
}

type advisory struct {
	message string
	attrs   []metadata.Attribute
}

// recordingSink keeps error causes, attempt outcomes and advisories
type recordingSink struct {
	causes     []metadata.ErrorCause
	attempts   []bool
	advisories []advisory
}

func (r *recordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	r.causes = append(r.causes, cause)
}

func (r *recordingSink) RecordAttempt(
	kind string,
	value string,
	priority int,
	success bool,
	duration time.Duration,
	attrs []metadata.Attribute,
) {
	r.attempts = append(r.attempts, success)
}

func (r *recordingSink) RecordAdvisory(packageName string, action string, message string, attrs []metadata.Attribute) {
	r.advisories = append(r.advisories, advisory{message: message, attrs: attrs})
}

func (r *recordingSink) RecordFetch(
	fetchUrl string,
	httpStatus int,
	duration time.Duration,
	contentType string,
	retryCount int,
) {
}

func (r *recordingSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}
