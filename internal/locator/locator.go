package locator

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/internal/strategy"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

/*
Responsibilities
- Try strategies against the current page in ascending priority
- Stop at the first visible match
- Keep an attempt entry for every strategy tried

Each call reads the snapshot once. A failing snapshot provider or path
evaluator only fails the attempts that need it; the call goes on with the
next strategy. There are no retries here: callers that want to wait for the
page to settle call Locate again.
*/

const (
	msgNoSnapshot       = "selector map not available for semantic strategy"
	msgNoSemanticMatch  = "no matching element found in DOM"
	msgNoPathMatch      = "path expression query returned no results"
	msgPathNotVisible   = "element found but not visible"
	msgPathEvalFailed   = "path evaluation failed: %v"
	msgPathEvalReported = "path evaluation error: %s"
	msgNotSupported     = "strategy type %q not supported"
)

type Locator struct {
	metadataSink metadata.MetadataSink
}

func NewLocator(metadataSink metadata.MetadataSink) Locator {
	return Locator{
		metadataSink: metadataSink,
	}
}

// Locate tries strategies against page and returns the first match. The
// returned Result always carries the attempts made, also when the error is
// non-nil. targetText is a hint only: a match that does not contain it is
// still accepted.
func (l *Locator) Locate(
	ctx context.Context,
	page Page,
	strategies []strategy.Strategy,
	targetText string,
) (Result, failure.ClassifiedError) {
	attempts := make([]Attempt, 0, len(strategies))
	if len(strategies) == 0 {
		return Result{Attempts: attempts}, l.fail(&LocateError{
			Message:   "no strategies to try",
			Retryable: false,
			Cause:     ErrCauseStrategiesExhausted,
		}, targetText)
	}

	sorted := strategy.SortByPriority(strategies)
	snapshot, snapshotErr := page.Snapshot(ctx)
	if snapshotErr != nil {
		l.metadataSink.RecordError(
			time.Now(),
			"locator",
			"Locator.Locate",
			metadata.CauseEvaluationFailure,
			snapshotErr.Error(),
			nil,
		)
	}

	for _, s := range sorted {
		if err := ctx.Err(); err != nil {
			return Result{Attempts: attempts}, l.fail(&LocateError{
				Message:   fmt.Sprintf("stopped after %d attempts: %v", len(attempts), err),
				Retryable: true,
				Cause:     ErrCauseCanceled,
				Attempts:  len(attempts),
			}, targetText)
		}

		start := time.Now()
		match, failReason := l.try(ctx, page, s, snapshot, snapshotErr)
		attempt := Attempt{
			Kind:     string(s.Kind()),
			Value:    s.Value(),
			Priority: s.Priority(),
			Success:  match != nil,
			Error:    failReason,
			Metadata: s.Metadata(),
			Duration: time.Since(start),
		}
		attempts = append(attempts, attempt)
		l.recordAttempt(attempt, match)

		if match != nil {
			l.adviseTargetText(match, snapshot, targetText)
			return Result{Match: match, Attempts: attempts}, nil
		}
	}

	return Result{Attempts: attempts}, l.fail(&LocateError{
		Message:   fmt.Sprintf("all %d strategies failed", len(attempts)),
		Retryable: true,
		Cause:     ErrCauseStrategiesExhausted,
		Attempts:  len(attempts),
	}, targetText)
}

// try runs a single strategy. It returns the match, or the reason the
// attempt failed.
func (l *Locator) try(
	ctx context.Context,
	page Page,
	s strategy.Strategy,
	snapshot Snapshot,
	snapshotErr error,
) (*Match, string) {
	kind := s.Kind()
	switch {
	case kind == strategy.KindPathExpression:
		return l.tryPath(ctx, page, s, snapshot)
	case kind.IsSemantic():
		if snapshotErr != nil {
			return nil, msgNoSnapshot
		}
		return trySemantic(s, snapshot)
	default:
		return nil, fmt.Sprintf(msgNotSupported, kind)
	}
}

func (l *Locator) tryPath(ctx context.Context, page Page, s strategy.Strategy, snapshot Snapshot) (*Match, string) {
	expr := NormalizePath(s.Value())
	res, err := page.Evaluate(ctx, expr)
	switch {
	case err != nil:
		l.metadataSink.RecordError(
			time.Now(),
			"locator",
			"Locator.tryPath",
			metadata.CauseEvaluationFailure,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrValue, expr),
			},
		)
		return nil, fmt.Sprintf(msgPathEvalFailed, err)
	case res == nil:
		return nil, msgNoPathMatch
	case res.Error != "":
		return nil, fmt.Sprintf(msgPathEvalReported, res.Error)
	case !res.Found:
		return nil, msgNoPathMatch
	case !res.Visible:
		return nil, msgPathNotVisible
	}

	match := &Match{
		Strategy: s,
		Index:    -1,
		Path:     expr,
		Tag:      strings.ToLower(res.Tag),
		Text:     res.Text,
	}
	if node, ok := correlate(snapshot, res); ok {
		match.Index = node.Index()
	}
	return match, ""
}

func trySemantic(s strategy.Strategy, snapshot Snapshot) (*Match, string) {
	for _, node := range snapshot.Nodes() {
		if !node.Visible() || !matchesNode(node, s) {
			continue
		}
		return &Match{
			Strategy: s,
			Index:    node.Index(),
			Tag:      strings.ToLower(node.Tag()),
			Text:     strings.TrimSpace(node.Text()),
		}, ""
	}
	return nil, msgNoSemanticMatch
}

// NormalizePath roots a bare expression so "html/body/a" evaluates from the
// document. Expressions starting with "/" or "(" are left alone.
func NormalizePath(expr string) string {
	if expr == "" || strings.HasPrefix(expr, "/") || strings.HasPrefix(expr, "(") {
		return expr
	}
	return "/" + expr
}

func (l *Locator) adviseTargetText(match *Match, snapshot Snapshot, targetText string) {
	if strings.TrimSpace(targetText) == "" {
		return
	}
	node := l.matchedNode(match, snapshot)
	if TargetTextMatches(node, targetText) {
		return
	}
	l.metadataSink.RecordAdvisory(
		"locator",
		"Locator.Locate",
		fmt.Sprintf("target text %q not found in matched element, proceeding", targetText),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrTargetText, targetText),
			metadata.NewAttr(metadata.AttrIndex, strconv.Itoa(match.Index)),
			metadata.NewAttr(metadata.AttrKind, string(match.Strategy.Kind())),
		},
	)
}

// matchedNode returns the snapshot node of a match, or a node built from
// the match itself when it has no snapshot counterpart.
func (l *Locator) matchedNode(match *Match, snapshot Snapshot) Node {
	if match.Index >= 0 {
		for _, node := range snapshot.Nodes() {
			if node.Index() == match.Index {
				return node
			}
		}
	}
	return NodeFields{Idx: match.Index, TextContent: match.Text, TagName: match.Tag, IsVisible: true}
}

func (l *Locator) recordAttempt(attempt Attempt, match *Match) {
	var attrs []metadata.Attribute
	if match != nil {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrIndex, strconv.Itoa(match.Index)))
	}
	if attempt.Error != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrMessage, attempt.Error))
	}
	l.metadataSink.RecordAttempt(attempt.Kind, attempt.Value, attempt.Priority, attempt.Success, attempt.Duration, attrs)
}

func (l *Locator) fail(err *LocateError, targetText string) *LocateError {
	var attrs []metadata.Attribute
	if targetText != "" {
		attrs = append(attrs, metadata.NewAttr(metadata.AttrTargetText, targetText))
	}
	l.metadataSink.RecordError(
		time.Now(),
		"locator",
		"Locator.Locate",
		mapLocateErrorToMetadataCause(err),
		err.Error(),
		attrs,
	)
	return err
}
