package report

import (
	"bytes"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/element-locator/internal/snapshot"
	"golang.org/x/net/html"
)

const defaultExcerptRunes = 600

// Excerpt renders the surroundings of the element at snapshot index as
// Markdown: the element's parent block, or the page body when index is
// negative or out of range. The output is cut to maxRunes runes.
func Excerpt(pageHTML []byte, index int, maxRunes int) (string, *ReportError) {
	root, err := html.Parse(bytes.NewReader(pageHTML))
	if err != nil {
		return "", &ReportError{
			Message: err.Error(),
			Cause:   ErrCauseConversionFailure,
		}
	}

	node := excerptNode(goquery.NewDocumentFromNode(root), index)
	if node == nil {
		return "", nil
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	markdown, err := conv.ConvertNode(node)
	if err != nil {
		return "", &ReportError{
			Message: err.Error(),
			Cause:   ErrCauseConversionFailure,
		}
	}
	return truncateRunes(strings.TrimSpace(string(markdown)), maxRunes), nil
}

func excerptNode(doc *goquery.Document, index int) *html.Node {
	if index >= 0 {
		sel := doc.Find(snapshot.InteractiveSelector).Eq(index)
		if sel.Length() > 0 {
			if parent := sel.Parent(); parent.Length() > 0 && goquery.NodeName(parent) != "html" {
				return parent.Get(0)
			}
			return sel.Get(0)
		}
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return nil
	}
	return body.Get(0)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + " …"
}
