package pathopt

// Element is what the optimizer knows about the target besides its path.
type Element struct {
	Tag        string
	Text       string
	Attributes map[string]string
}

// Segment is one step of an absolute path, e.g. "td[3]".
type Segment struct {
	Tag      string
	Index    int // 1-based sibling index, 0 when the segment has none
	Original string
}

func (s Segment) HasIndex() bool {
	return s.Index > 0
}

// stableContainers anchor relative expressions.
var stableContainers = map[string]struct{}{
	"table":   {},
	"form":    {},
	"nav":     {},
	"header":  {},
	"footer":  {},
	"section": {},
	"article": {},
	"aside":   {},
	"main":    {},
}

// shortenAnchors are the tags a shortened path may start from.
var shortenAnchors = map[string]struct{}{
	"html":   {},
	"body":   {},
	"table":  {},
	"form":   {},
	"nav":    {},
	"header": {},
	"footer": {},
	"main":   {},
}

const (
	// shortenMinSegments is the segment count a path must exceed before a
	// shortened variant is produced.
	shortenMinSegments = 4
	shortenKeep        = 3
	textContainsMinLen = 3
	generatedClassPref = "css-"
)
