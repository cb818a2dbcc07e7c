package strategy

import "strings"

var tagRoles = map[string]string{
	"button":   "button",
	"a":        "link",
	"input":    "textbox",
	"textarea": "textbox",
	"select":   "combobox",
	"h1":       "heading",
	"h2":       "heading",
	"h3":       "heading",
	"h4":       "heading",
	"h5":       "heading",
	"h6":       "heading",
	"img":      "img",
	"table":    "table",
	"ul":       "list",
	"ol":       "list",
	"nav":      "navigation",
}

var inputTypeRoles = map[string]string{
	"checkbox": "checkbox",
	"radio":    "radio",
	"submit":   "button",
}

// InferRole returns the accessibility role of an element: an explicit role
// attribute wins, then checkbox/radio/submit input types, then the implicit
// role of the tag. Empty when none applies.
func InferRole(tag string, attrs map[string]string) string {
	if role := attrs["role"]; role != "" {
		return role
	}
	tag = strings.ToLower(tag)
	if tag == "input" {
		if role, ok := inputTypeRoles[strings.ToLower(attrs["type"])]; ok {
			return role
		}
	}
	return tagRoles[tag]
}
