package generator

// Descriptor is an element as captured at recording time.
type Descriptor struct {
	Tag          string            `json:"tag_name" yaml:"tag_name"`
	Text         string            `json:"text" yaml:"text"`
	Attributes   map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	AbsolutePath string            `json:"xpath,omitempty" yaml:"xpath,omitempty"`
}

const (
	DefaultMaxPathAlternatives = 2
	DefaultMaxTotalStrategies  = 2
	// fuzzyMinTextLen is the rune count text must exceed before a fuzzy
	// strategy is worth generating.
	fuzzyMinTextLen = 3
)

type Params struct {
	enablePathOptimization bool
	maxPathAlternatives    int
	maxTotalStrategies     int
	fuzzyThreshold         float64
}

// NewParams builds generator settings. maxTotalStrategies <= 0 disables the
// total cap.
func NewParams(
	enablePathOptimization bool,
	maxPathAlternatives int,
	maxTotalStrategies int,
	fuzzyThreshold float64,
) Params {
	return Params{
		enablePathOptimization: enablePathOptimization,
		maxPathAlternatives:    maxPathAlternatives,
		maxTotalStrategies:     maxTotalStrategies,
		fuzzyThreshold:         fuzzyThreshold,
	}
}

func DefaultParams() Params {
	return NewParams(true, DefaultMaxPathAlternatives, DefaultMaxTotalStrategies, 0.8)
}

func (p Params) EnablePathOptimization() bool {
	return p.enablePathOptimization
}

func (p Params) MaxPathAlternatives() int {
	return p.maxPathAlternatives
}

func (p Params) MaxTotalStrategies() int {
	return p.maxTotalStrategies
}

func (p Params) FuzzyThreshold() float64 {
	return p.fuzzyThreshold
}
