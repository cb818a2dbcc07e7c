package pathopt

import "strings"

// Quote renders value as a path-expression string literal. Literals have no
// escape character, so a value holding both quote kinds becomes a concat()
// call split on single quotes, each piece single-quoted.
func Quote(value string) string {
	switch {
	case value == "":
		return "''"
	case !strings.Contains(value, "'"):
		return "'" + value + "'"
	case !strings.Contains(value, `"`):
		return `"` + value + `"`
	}

	parts := strings.Split(value, "'")
	args := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if part != "" {
			args = append(args, "'"+part+"'")
		}
		if i < len(parts)-1 {
			args = append(args, `"'"`)
		}
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}
