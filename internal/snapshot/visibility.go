package snapshot

import (
	"strings"

	"golang.org/x/net/html"
)

var nonRendered = map[string]struct{}{
	"head":     {},
	"script":   {},
	"style":    {},
	"template": {},
	"noscript": {},
	"title":    {},
	"meta":     {},
}

// Visible reports whether n would render, judged from markup. n and every
// element ancestor must be rendered and not hidden.
func Visible(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		if hiddenElement(cur) {
			return false
		}
	}
	return true
}

func hiddenElement(n *html.Node) bool {
	if _, ok := nonRendered[n.Data]; ok {
		return true
	}
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "type":
			if n.Data == "input" && strings.EqualFold(a.Val, "hidden") {
				return true
			}
		case "style":
			if hiddenStyle(a.Val) {
				return true
			}
		}
	}
	return false
}

func hiddenStyle(style string) bool {
	compact := strings.ToLower(strings.Join(strings.Fields(style), ""))
	return strings.Contains(compact, "display:none") || strings.Contains(compact, "visibility:hidden")
}
