package strategy

// Kind names a strategy variant on the wire.
type Kind string

const (
	KindTextExact      Kind = "text_exact"
	KindRoleText       Kind = "role_text"
	KindAriaLabel      Kind = "aria_label"
	KindPlaceholder    Kind = "placeholder"
	KindTitle          Kind = "title"
	KindAltText        Kind = "alt_text"
	KindTextFuzzy      Kind = "text_fuzzy"
	KindPathExpression Kind = "path_expression"
)

// legacyPathKind is the name older recordings use for path expressions.
const legacyPathKind = "xpath"

const DefaultFuzzyThreshold = 0.8

// Fixed priorities of the semantic tier. Path expressions carry a computed
// priority, with FallbackPathPriority for expressions not produced by the
// optimizer.
const (
	PriorityTextExact    = 1
	PriorityRoleText     = 2
	PriorityAriaLabel    = 3
	PriorityPlaceholder  = 4
	PriorityTitle        = 5
	PriorityAltText      = 6
	PriorityTextFuzzy    = 7
	FallbackPathPriority = 8
)

// Metadata keys written on the wire.
const (
	MetaTag       = "tag"
	MetaRole      = "role"
	MetaThreshold = "threshold"
	MetaStrategy  = "strategy"
	MetaOptimized = "optimized"
	MetaIndex     = "index"
	MetaFallback  = "fallback"
)

func (k Kind) IsSemantic() bool {
	switch k {
	case KindTextExact, KindRoleText, KindAriaLabel, KindPlaceholder,
		KindTitle, KindAltText, KindTextFuzzy:
		return true
	}
	return false
}

func (k Kind) IsKnown() bool {
	return k == KindPathExpression || k.IsSemantic()
}

/*
Strategy is a single typed rule for relocating an element.

The set of implementations is closed: one type per Kind plus Unknown, which
preserves kinds this build does not understand so they survive a
decode/encode round trip. Each variant carries only the fields it needs;
Metadata derives the wire map from those fields.
*/
type Strategy interface {
	Kind() Kind
	Value() string
	Priority() int
	Metadata() map[string]any
	sealed()
}

type base struct {
	value    string
	priority int
	tag      string
}

func (b base) Value() string {
	return b.value
}

func (b base) Priority() int {
	return b.priority
}

// Tag is the element tag captured at recording time.
func (b base) Tag() string {
	return b.tag
}

func (base) sealed() {}

func tagMeta(tag string) map[string]any {
	return map[string]any{MetaTag: tag}
}

type TextExact struct{ base }

func NewTextExact(text string, priority int, tag string) TextExact {
	return TextExact{base{value: text, priority: priority, tag: tag}}
}

func (TextExact) Kind() Kind                 { return KindTextExact }
func (s TextExact) Metadata() map[string]any { return tagMeta(s.tag) }

type RoleText struct {
	base
	role string
}

func NewRoleText(text string, role string, priority int, tag string) RoleText {
	return RoleText{base: base{value: text, priority: priority, tag: tag}, role: role}
}

func (RoleText) Kind() Kind { return KindRoleText }

func (s RoleText) Role() string { return s.role }

func (s RoleText) Metadata() map[string]any {
	return map[string]any{MetaRole: s.role, MetaTag: s.tag}
}

type AriaLabel struct{ base }

func NewAriaLabel(label string, priority int, tag string) AriaLabel {
	return AriaLabel{base{value: label, priority: priority, tag: tag}}
}

func (AriaLabel) Kind() Kind                 { return KindAriaLabel }
func (s AriaLabel) Metadata() map[string]any { return tagMeta(s.tag) }

type Placeholder struct{ base }

func NewPlaceholder(placeholder string, priority int, tag string) Placeholder {
	return Placeholder{base{value: placeholder, priority: priority, tag: tag}}
}

func (Placeholder) Kind() Kind                 { return KindPlaceholder }
func (s Placeholder) Metadata() map[string]any { return tagMeta(s.tag) }

type Title struct{ base }

func NewTitle(title string, priority int, tag string) Title {
	return Title{base{value: title, priority: priority, tag: tag}}
}

func (Title) Kind() Kind                 { return KindTitle }
func (s Title) Metadata() map[string]any { return tagMeta(s.tag) }

type AltText struct{ base }

func NewAltText(alt string, priority int, tag string) AltText {
	return AltText{base{value: alt, priority: priority, tag: tag}}
}

func (AltText) Kind() Kind                 { return KindAltText }
func (s AltText) Metadata() map[string]any { return tagMeta(s.tag) }

type TextFuzzy struct {
	base
	threshold float64
}

// NewTextFuzzy uses DefaultFuzzyThreshold when threshold is outside (0, 1].
func NewTextFuzzy(text string, threshold float64, priority int, tag string) TextFuzzy {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFuzzyThreshold
	}
	return TextFuzzy{base: base{value: text, priority: priority, tag: tag}, threshold: threshold}
}

func (TextFuzzy) Kind() Kind { return KindTextFuzzy }

func (s TextFuzzy) Threshold() float64 { return s.threshold }

func (s TextFuzzy) Metadata() map[string]any {
	return map[string]any{MetaThreshold: s.threshold, MetaTag: s.tag}
}

// PathExpression is a structural query. Optimized expressions remember the
// optimizer classification and their position in the optimizer output;
// fallback expressions were synthesized from attributes.
type PathExpression struct {
	base
	name      string
	optimized bool
	index     int
	fallback  bool
}

func NewOptimizedPath(expr string, priority int, tag string, name string, index int) PathExpression {
	return PathExpression{
		base:      base{value: expr, priority: priority, tag: tag},
		name:      name,
		optimized: true,
		index:     index,
	}
}

func NewFallbackPath(expr string, priority int, tag string) PathExpression {
	return PathExpression{
		base:     base{value: expr, priority: priority, tag: tag},
		fallback: true,
	}
}

func NewPath(expr string, priority int, tag string) PathExpression {
	return PathExpression{base: base{value: expr, priority: priority, tag: tag}}
}

func (PathExpression) Kind() Kind { return KindPathExpression }

func (s PathExpression) Name() string    { return s.name }
func (s PathExpression) Optimized() bool { return s.optimized }
func (s PathExpression) Index() int      { return s.index }
func (s PathExpression) Fallback() bool  { return s.fallback }

func (s PathExpression) Metadata() map[string]any {
	m := tagMeta(s.tag)
	if s.optimized {
		m[MetaStrategy] = s.name
		m[MetaOptimized] = true
		m[MetaIndex] = s.index
	}
	if s.fallback {
		m[MetaFallback] = true
	}
	return m
}

// Unknown keeps a persisted strategy whose kind is not recognized.
type Unknown struct {
	kind     string
	value    string
	priority int
	metadata map[string]any
}

func NewUnknown(kind string, value string, priority int, metadata map[string]any) Unknown {
	return Unknown{kind: kind, value: value, priority: priority, metadata: copyMeta(metadata)}
}

func (s Unknown) Kind() Kind               { return Kind(s.kind) }
func (s Unknown) Value() string            { return s.value }
func (s Unknown) Priority() int            { return s.priority }
func (s Unknown) Metadata() map[string]any { return copyMeta(s.metadata) }
func (Unknown) sealed()                    {}

func copyMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var (
	_ Strategy = TextExact{}
	_ Strategy = RoleText{}
	_ Strategy = AriaLabel{}
	_ Strategy = Placeholder{}
	_ Strategy = Title{}
	_ Strategy = AltText{}
	_ Strategy = TextFuzzy{}
	_ Strategy = PathExpression{}
	_ Strategy = Unknown{}
)
