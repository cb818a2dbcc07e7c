package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used to decide whether a strategy is retried,
	   skipped, or whether a locate call ends.
	 - Packages MAY map their local errors to ErrorCause, but MUST NOT invent
	   new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure
  - Transport or remote availability failures while fetching a page or
    talking to a browser.

# CauseContentInvalid
  - Content was obtained but could not be used: non-HTML responses,
    unparseable documents, malformed workflow or strategy files.

# CauseEvaluationFailure
  - The path-evaluation channel or snapshot provider errored.

# CauseStrategiesExhausted
  - Every strategy of a locate call was tried without a match.

# CauseGenerationDegraded
  - A sub-strategy failed during generation and was replaced by a fallback.

# CauseStorageFailure
  - Failure while persisting reports or workflow files.

# CauseInvariantViolation
  - An internal consistency check failed (for example an optimizer
    result of the wrong length).
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseEvaluationFailure
	CauseStrategiesExhausted
	CauseGenerationDegraded
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseEvaluationFailure:
		return "evaluation_failure"
	case CauseStrategiesExhausted:
		return "strategies_exhausted"
	case CauseGenerationDegraded:
		return "generation_degraded"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactReport   ArtifactKind = "report"
	ArtifactWorkflow ArtifactKind = "workflow"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrPath       AttributeKey = "path"
	AttrWritePath  AttributeKey = "write_path"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrKind       AttributeKey = "strategy_kind"
	AttrValue      AttributeKey = "strategy_value"
	AttrPriority   AttributeKey = "priority"
	AttrIndex      AttributeKey = "element_index"
	AttrTargetText AttributeKey = "target_text"
	AttrMessage    AttributeKey = "message"
	AttrField      AttributeKey = "field"
)
