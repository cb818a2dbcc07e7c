package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/element-locator/internal/locator"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Parse a static HTML page once
- Index its interactive elements in document order
- Decide visibility from markup alone

A static page has no layout, so visibility is approximated from the hidden
attribute, inline display/visibility styles, hidden inputs and non-rendered
ancestors.
*/

// InteractiveSelector picks the elements a selector map indexes. The browser
// snapshot script runs the same selector.
const InteractiveSelector = "a, button, input, select, textarea, option, summary, img, " +
	"[role], [onclick], [tabindex], [contenteditable], [aria-label], [title]"

type Static struct {
	root *html.Node
	doc  *goquery.Document
}

var _ locator.SnapshotProvider = (*Static)(nil)

// NewStatic parses htmlByte. The document must contain an html element.
func NewStatic(htmlByte []byte) (*Static, error) {
	root, err := html.Parse(bytes.NewReader(htmlByte))
	if err != nil {
		return nil, &SnapshotError{
			Message: fmt.Sprintf("failed to parse HTML: %v", err),
			Cause:   ErrCauseNotHTML,
		}
	}
	doc := goquery.NewDocumentFromNode(root)
	if doc.Find("html").Length() == 0 {
		return nil, &SnapshotError{
			Message: "input is not a valid HTML document",
			Cause:   ErrCauseNotHTML,
		}
	}
	return &Static{root: root, doc: doc}, nil
}

// Root is the parsed document, shared with path evaluation over the same
// page.
func (s *Static) Root() *html.Node {
	return s.root
}

func (s *Static) Snapshot(ctx context.Context) (locator.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return locator.Snapshot{}, err
	}

	var nodes []locator.Node
	s.doc.Find(InteractiveSelector).Each(func(i int, sel *goquery.Selection) {
		nodes = append(nodes, toNode(i, sel))
	})
	return locator.NewSnapshot(nodes...), nil
}

func toNode(index int, sel *goquery.Selection) locator.NodeFields {
	n := sel.Get(0)
	attrs := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		attrs[a.Key] = a.Val
	}
	tag := goquery.NodeName(sel)

	return locator.NodeFields{
		Idx:            index,
		TextContent:    nodeText(tag, sel, attrs),
		TagName:        tag,
		RoleName:       attrs["role"],
		AriaLabelValue: attrs["aria-label"],
		PlaceholderVal: attrs["placeholder"],
		TitleValue:     attrs["title"],
		AltValue:       attrs["alt"],
		Attrs:          attrs,
		IsVisible:      Visible(n),
	}
}

// nodeText is the whitespace-collapsed text content. Button-like inputs
// show their value instead.
func nodeText(tag string, sel *goquery.Selection, attrs map[string]string) string {
	if tag == "input" {
		switch strings.ToLower(attrs["type"]) {
		case "submit", "button", "reset":
			return strings.TrimSpace(attrs["value"])
		}
		return ""
	}
	return CollapseSpace(sel.Text())
}

// CollapseSpace trims s and folds every whitespace run into one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
