package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rohmanhakim/element-locator/internal/pathopt"
)

// FallbackExpression builds a single //tag[predicate] expression from the
// most specific attribute available: id, name, the first non-empty data-*
// attribute by name, aria-label, placeholder, then the text. It reports
// false when the element offers none of them.
func FallbackExpression(tag, text string, attrs map[string]string) (string, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "*"
	}

	var predicate string
	switch {
	case attrs["id"] != "":
		predicate = "@id=" + pathopt.Quote(attrs["id"])
	case attrs["name"] != "":
		predicate = "@name=" + pathopt.Quote(attrs["name"])
	case firstDataAttribute(attrs) != "":
		name := firstDataAttribute(attrs)
		predicate = "@" + name + "=" + pathopt.Quote(attrs[name])
	case attrs["aria-label"] != "":
		predicate = "@aria-label=" + pathopt.Quote(attrs["aria-label"])
	case attrs["placeholder"] != "":
		predicate = "@placeholder=" + pathopt.Quote(attrs["placeholder"])
	case strings.TrimSpace(text) != "":
		predicate = "contains(text(), " + pathopt.Quote(strings.TrimSpace(text)) + ")"
	default:
		return "", false
	}
	return fmt.Sprintf("//%s[%s]", tag, predicate), true
}

func firstDataAttribute(attrs map[string]string) string {
	var names []string
	for name, value := range attrs {
		if strings.HasPrefix(name, "data-") && value != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0]
}
