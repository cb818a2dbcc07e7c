package locator

import (
	"context"
	"sort"
	"time"

	"github.com/rohmanhakim/element-locator/internal/strategy"
)

// Node is one element of the current page as seen by a snapshot provider.
// Providers normalize whatever they read into this shape; the locator only
// reads it.
type Node interface {
	Index() int
	Text() string
	Tag() string
	Role() string
	AriaLabel() string
	Placeholder() string
	Title() string
	Alt() string
	Attributes() map[string]string
	Visible() bool
}

// NodeFields is the plain-data Node used by every provider in this module.
type NodeFields struct {
	Idx            int               `json:"index"`
	TextContent    string            `json:"text"`
	TagName        string            `json:"tag_name"`
	RoleName       string            `json:"role,omitempty"`
	AriaLabelValue string            `json:"aria_label,omitempty"`
	PlaceholderVal string            `json:"placeholder,omitempty"`
	TitleValue     string            `json:"title,omitempty"`
	AltValue       string            `json:"alt,omitempty"`
	Attrs          map[string]string `json:"attributes,omitempty"`
	IsVisible      bool              `json:"is_visible"`
}

func NewNode(f NodeFields) Node {
	return f
}

func (n NodeFields) Index() int                    { return n.Idx }
func (n NodeFields) Text() string                  { return n.TextContent }
func (n NodeFields) Tag() string                   { return n.TagName }
func (n NodeFields) Role() string                  { return n.RoleName }
func (n NodeFields) AriaLabel() string             { return n.AriaLabelValue }
func (n NodeFields) Placeholder() string           { return n.PlaceholderVal }
func (n NodeFields) Title() string                 { return n.TitleValue }
func (n NodeFields) Alt() string                   { return n.AltValue }
func (n NodeFields) Attributes() map[string]string { return n.Attrs }
func (n NodeFields) Visible() bool                 { return n.IsVisible }

var _ Node = NodeFields{}

// Snapshot is the indexed element map of the current page, ordered by
// ascending index.
type Snapshot struct {
	nodes []Node
}

func NewSnapshot(nodes ...Node) Snapshot {
	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index() < sorted[j].Index()
	})
	return Snapshot{nodes: sorted}
}

func (s Snapshot) Nodes() []Node {
	return s.nodes
}

func (s Snapshot) Len() int {
	return len(s.nodes)
}

// EvalResult describes the first element matched by a path expression.
type EvalResult struct {
	Found       bool   `json:"found"`
	Visible     bool   `json:"visible"`
	Tag         string `json:"tag"`
	Text        string `json:"text"`
	ID          string `json:"id,omitempty"`
	AriaLabel   string `json:"ariaLabel,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Name        string `json:"name,omitempty"`
	Error       string `json:"error,omitempty"`
}

type SnapshotProvider interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// PathEvaluator resolves a path expression against the live page. A nil
// result with a nil error means nothing matched.
type PathEvaluator interface {
	Evaluate(ctx context.Context, expr string) (*EvalResult, error)
}

type Page interface {
	SnapshotProvider
	PathEvaluator
}

type page struct {
	SnapshotProvider
	PathEvaluator
}

// NewPage combines independent collaborators into a Page.
func NewPage(provider SnapshotProvider, evaluator PathEvaluator) Page {
	return page{SnapshotProvider: provider, PathEvaluator: evaluator}
}

// Attempt is one audit entry of a locate call.
type Attempt struct {
	Kind     string         `json:"strategy_type"`
	Value    string         `json:"strategy_value"`
	Priority int            `json:"priority"`
	Success  bool           `json:"success"`
	Error    string         `json:"error_message,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Duration time.Duration  `json:"duration_ns"`
}

// Match is a located element. Index is the snapshot index, or -1 when a path
// match could not be tied to a snapshot node. Path is set for path matches.
type Match struct {
	Strategy strategy.Strategy
	Index    int
	Path     string
	Tag      string
	Text     string
}

type Result struct {
	Match    *Match
	Attempts []Attempt
}

func (r Result) Found() bool {
	return r.Match != nil
}
