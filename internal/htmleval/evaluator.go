package htmleval

import (
	"context"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/rohmanhakim/element-locator/internal/locator"
	"github.com/rohmanhakim/element-locator/internal/snapshot"
	"golang.org/x/net/html"
)

// Evaluator resolves path expressions over a parsed static document. It is
// the static counterpart of the browser evaluator and reports visibility
// with the same markup rules as the static snapshot.
type Evaluator struct {
	root *html.Node
}

var _ locator.PathEvaluator = (*Evaluator)(nil)

func NewEvaluator(root *html.Node) *Evaluator {
	return &Evaluator{root: root}
}

// Evaluate returns the first element in document order matched by expr, or
// nil when nothing matches. A text node match resolves to its parent
// element.
func (e *Evaluator) Evaluate(ctx context.Context, expr string) (*locator.EvalResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n, err := htmlquery.Query(e.root, expr)
	if err != nil {
		return nil, &EvalError{
			Message: err.Error(),
			Cause:   ErrCauseInvalidExpression,
			Expr:    expr,
		}
	}
	n = owningElement(n)
	if n == nil {
		return nil, nil
	}

	return &locator.EvalResult{
		Found:       true,
		Visible:     snapshot.Visible(n),
		Tag:         strings.ToUpper(n.Data),
		Text:        strings.TrimSpace(htmlquery.InnerText(n)),
		ID:          htmlquery.SelectAttr(n, "id"),
		AriaLabel:   htmlquery.SelectAttr(n, "aria-label"),
		Placeholder: htmlquery.SelectAttr(n, "placeholder"),
		Name:        htmlquery.SelectAttr(n, "name"),
	}, nil
}

func owningElement(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode {
			return cur
		}
	}
	return nil
}
