package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/rohmanhakim/element-locator/internal/locator"
	"github.com/rohmanhakim/element-locator/internal/metadata"
	"github.com/rohmanhakim/element-locator/internal/strategy"
	"github.com/rohmanhakim/element-locator/pkg/failure"
)

/*
Responsibilities
- Turn the audit trail of one locate call into a readable report
- Render it as GitHub-Flavored Markdown or as a complete HTML page

Report Layout
- Header with page, step and target text
- Outcome and matched element
- One table row per attempt in the order attempts were made
- Optional page excerpt around the match

Rendering is deterministic for a given Input.
*/

type Renderer struct {
	metadataSink metadata.MetadataSink
}

func NewRenderer(metadataSink metadata.MetadataSink) *Renderer {
	return &Renderer{
		metadataSink: metadataSink,
	}
}

func (r *Renderer) Render(in Input, format Format) (Document, failure.ClassifiedError) {
	md, err := r.markdown(in)
	if err != nil {
		r.recordError(in, err)
		return Document{}, err
	}

	switch format {
	case FormatMarkdown:
		return NewDocument(md, md, format), nil
	case FormatHTML:
		return NewDocument(md, toHTML(md, reportTitle(in)), format), nil
	}

	err = &ReportError{
		Message: fmt.Sprintf("cannot render %q", format),
		Cause:   ErrCauseUnknownFormat,
	}
	r.recordError(in, err)
	return Document{}, err
}

func (r *Renderer) recordError(in Input, err *ReportError) {
	r.metadataSink.RecordError(
		time.Now(),
		"report",
		"Renderer.Render",
		mapReportErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, in.PageURL),
		},
	)
}

func (r *Renderer) markdown(in Input) ([]byte, *ReportError) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", reportTitle(in))
	if in.PageURL != "" {
		fmt.Fprintf(&b, "- Page: `%s`\n", in.PageURL)
	}
	if in.TargetText != "" {
		fmt.Fprintf(&b, "- Target text: %s\n", escapeInline(in.TargetText))
	}
	if !in.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "- Generated at: %s\n", in.GeneratedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "- Strategies: %d\n", len(in.Strategies))
	fmt.Fprintf(&b, "- Attempts: %d\n\n", len(in.Result.Attempts))

	b.WriteString("## Outcome\n\n")
	writeOutcome(&b, in.Result)

	b.WriteString("## Attempts\n\n")
	writeAttempts(&b, in.Result.Attempts)

	if len(in.Strategies) > 0 {
		b.WriteString("## Strategies\n\n```text\n")
		b.WriteString(strategy.Summary(in.Strategies))
		b.WriteString("\n```\n\n")
	}

	if len(in.PageHTML) > 0 {
		index := -1
		if in.Result.Match != nil {
			index = in.Result.Match.Index
		}
		excerpt, err := Excerpt(in.PageHTML, index, defaultExcerptRunes)
		if err != nil {
			return nil, err
		}
		if excerpt != "" {
			b.WriteString("## Page excerpt\n\n")
			for _, line := range strings.Split(excerpt, "\n") {
				if line == "" {
					b.WriteString(">\n")
					continue
				}
				fmt.Fprintf(&b, "> %s\n", line)
			}
			b.WriteString("\n")
		}
	}

	return []byte(b.String()), nil
}

func reportTitle(in Input) string {
	if in.StepDescription != "" {
		return "Locate report: " + in.StepDescription
	}
	return "Locate report"
}

func writeOutcome(b *strings.Builder, result locator.Result) {
	if !result.Found() {
		b.WriteString("**Not found.** Every strategy failed.\n\n")
		return
	}
	m := result.Match
	fmt.Fprintf(b, "**Found** with `%s` at priority %d.\n\n", m.Strategy.Kind(), m.Strategy.Priority())
	fmt.Fprintf(b, "- Value: `%s`\n", m.Strategy.Value())
	if m.Index >= 0 {
		fmt.Fprintf(b, "- Element index: %d\n", m.Index)
	}
	if m.Path != "" {
		fmt.Fprintf(b, "- Path: `%s`\n", m.Path)
	}
	if m.Tag != "" {
		fmt.Fprintf(b, "- Tag: `%s`\n", m.Tag)
	}
	if m.Text != "" {
		fmt.Fprintf(b, "- Text: %s\n", escapeInline(m.Text))
	}
	b.WriteString("\n")
}

func writeAttempts(b *strings.Builder, attempts []locator.Attempt) {
	if len(attempts) == 0 {
		b.WriteString("No strategy was tried.\n\n")
		return
	}
	b.WriteString("| # | Priority | Kind | Value | Result | Duration | Error |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for i, a := range attempts {
		outcome := "failed"
		if a.Success {
			outcome = "matched"
		}
		fmt.Fprintf(b, "| %d | %d | %s | %s | %s | %s | %s |\n",
			i+1,
			a.Priority,
			escapeCell(a.Kind),
			codeCell(a.Value),
			outcome,
			a.Duration.Round(time.Microsecond),
			escapeCell(a.Error),
		)
	}
	b.WriteString("\n")
}

func codeCell(s string) string {
	if s == "" {
		return ""
	}
	return "`" + strings.ReplaceAll(escapeCell(s), "`", "'") + "`"
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

func escapeInline(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// toHTML renders md as a standalone page. A gomarkdown parser keeps state, so
// one is built per call.
func toHTML(md []byte, title string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Title: title,
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
	})
	return markdown.ToHTML(md, p, renderer)
}
