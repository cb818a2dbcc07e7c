package pathopt

import "strings"

const (
	PriorityAbsolute   = 10
	PriorityAttribute  = 2
	PriorityAria       = 3
	PriorityAnchored   = 4
	PriorityDefault    = 5
	PriorityClass      = 6
	PriorityText       = 7
	PriorityPositional = 8
)

// Priority scores an expression, lower is tried first. The checks run in a
// fixed order and the first hit wins, so an id predicate inside a
// table-anchored path scores as id-based.
func Priority(expr string, isAbsolute bool) int {
	switch {
	case isAbsolute || strings.HasPrefix(expr, "/html/body"):
		return PriorityAbsolute
	case hasIDPredicate(expr):
		return PriorityAttribute
	case hasNamePredicate(expr):
		return PriorityAttribute
	case strings.Contains(expr, "@data-"):
		return PriorityAttribute
	case strings.Contains(expr, "@aria-label=") ||
		strings.Contains(expr, "@aria-labelledby=") ||
		strings.Contains(expr, "@role="):
		return PriorityAria
	case isTableAnchored(expr):
		return PriorityAnchored
	case strings.Contains(expr, "//form//"):
		return PriorityAnchored
	case (strings.Contains(expr, "//table//") ||
		strings.Contains(expr, "//form//") ||
		strings.Contains(expr, "//nav//")) && strings.Contains(expr, "text()"):
		return PriorityDefault
	case hasClassPredicate(expr):
		return PriorityClass
	case strings.Contains(expr, "text()"):
		return PriorityText
	case strings.Count(expr, "[") > 1 && strings.Contains(expr, "]"):
		return PriorityPositional
	default:
		return PriorityDefault
	}
}

// ClassAbsolute names the captured path itself.
const ClassAbsolute = "absolute-fallback"

// Classify labels an expression for diagnostics, using the same predicates
// in the same order as Priority.
func Classify(expr string) string {
	switch {
	case strings.HasPrefix(expr, "/html/body"):
		return ClassAbsolute
	case hasIDPredicate(expr):
		return "id-based"
	case hasNamePredicate(expr):
		return "name-based"
	case strings.Contains(expr, "@data-"):
		return "data-attribute"
	case strings.Contains(expr, "@aria-label=") || strings.Contains(expr, "@aria-labelledby="):
		return "aria-based"
	case strings.Contains(expr, "@role="):
		return "role-based"
	case isTableAnchored(expr):
		return "table-anchored"
	case strings.Contains(expr, "//form//"):
		return "form-anchored"
	case strings.Contains(expr, "//nav//"):
		return "nav-anchored"
	case strings.Contains(expr, "text()="):
		return "text-exact"
	case strings.Contains(expr, "contains(text()"):
		return "text-contains"
	case hasClassPredicate(expr):
		return "class-based"
	case strings.Contains(expr, "[") && strings.Contains(expr, "]"):
		return "positional"
	default:
		return "relative-xpath"
	}
}

func hasIDPredicate(expr string) bool {
	return strings.Contains(expr, "@id=") || strings.Contains(expr, "@id =")
}

func hasNamePredicate(expr string) bool {
	return strings.Contains(expr, "@name=") || strings.Contains(expr, "@name =")
}

func isTableAnchored(expr string) bool {
	return strings.Contains(expr, "//table//") &&
		(strings.Contains(expr, "tr[") || strings.Contains(expr, "td["))
}

func hasClassPredicate(expr string) bool {
	return strings.Contains(expr, "@class=") || strings.Contains(expr, "contains(@class")
}
