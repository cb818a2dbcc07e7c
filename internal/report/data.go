package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rohmanhakim/element-locator/internal/locator"
	"github.com/rohmanhakim/element-locator/internal/strategy"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", &ReportError{
		Message: fmt.Sprintf("unknown report format %q", name),
		Cause:   ErrCauseUnknownFormat,
	}
}

// Extension is the file extension a report of this format is stored under.
func (f Format) Extension() string {
	if f == FormatHTML {
		return ".html"
	}
	return ".md"
}

// Input is everything one locate call leaves behind. PageHTML is optional;
// without it the report carries no page excerpt.
type Input struct {
	PageURL         string
	StepDescription string
	TargetText      string
	Strategies      []strategy.Strategy
	Result          locator.Result
	PageHTML        []byte
	GeneratedAt     time.Time
}

type Document struct {
	markdown []byte
	content  []byte
	format   Format
}

func NewDocument(markdown []byte, content []byte, format Format) Document {
	return Document{
		markdown: markdown,
		content:  content,
		format:   format,
	}
}

// Markdown is the report source, whatever the rendered format.
func (d *Document) Markdown() []byte {
	return d.markdown
}

func (d *Document) Content() []byte {
	return d.content
}

func (d *Document) Format() Format {
	return d.format
}
