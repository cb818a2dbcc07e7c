package locator

import (
	"strings"

	"github.com/rohmanhakim/element-locator/internal/strategy"
)

// matchesNode reports whether node satisfies the semantic strategy s.
// Visibility is checked by the caller.
func matchesNode(node Node, s strategy.Strategy) bool {
	value := s.Value()
	switch v := s.(type) {
	case strategy.TextExact:
		return strings.TrimSpace(node.Text()) == value
	case strategy.RoleText:
		return strings.EqualFold(nodeRole(node), v.Role()) &&
			strings.TrimSpace(node.Text()) == value
	case strategy.AriaLabel:
		return strings.TrimSpace(node.AriaLabel()) == value
	case strategy.Placeholder:
		return strings.TrimSpace(node.Placeholder()) == value
	case strategy.Title:
		return strings.TrimSpace(node.Title()) == value
	case strategy.AltText:
		return strings.TrimSpace(node.Alt()) == value
	case strategy.TextFuzzy:
		return FuzzyMatch(value, strings.TrimSpace(node.Text()), v.Threshold())
	}
	return false
}

// nodeRole is the explicit role, or the role implied by the tag.
func nodeRole(node Node) string {
	if role := strings.TrimSpace(node.Role()); role != "" {
		return role
	}
	return strategy.InferRole(node.Tag(), node.Attributes())
}

// textSources lists the lowercased, trimmed strings a target text hint is
// compared against.
func textSources(node Node) []string {
	candidates := []string{
		node.Text(),
		node.AriaLabel(),
		node.Placeholder(),
		node.Title(),
		node.Alt(),
		node.Attributes()["name"],
	}
	var out []string
	for _, c := range candidates {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// TargetTextMatches reports whether targetText and any text source of node
// contain one another. An empty target always matches.
func TargetTextMatches(node Node, targetText string) bool {
	target := strings.ToLower(strings.TrimSpace(targetText))
	if target == "" {
		return true
	}
	for _, source := range textSources(node) {
		if strings.Contains(source, target) || strings.Contains(target, source) {
			return true
		}
	}
	return false
}

const (
	correlateMinMatches = 2
	correlateMinChecks  = 2
	correlateMinRatio   = 0.7
)

// correlate finds the visible snapshot node that agrees best with a path
// match on tag, text, id, aria-label, placeholder and name. An id match or
// an exact text match counts twice. Ties go to the lowest index.
func correlate(snapshot Snapshot, res *EvalResult) (Node, bool) {
	var best Node
	bestScore := 0
	for _, node := range snapshot.Nodes() {
		if !node.Visible() {
			continue
		}
		score, ok := correlation(node, res)
		if ok && score > bestScore {
			best, bestScore = node, score
		}
	}
	return best, best != nil
}

func correlation(node Node, res *EvalResult) (int, bool) {
	matches, checks := 0, 0
	compare := func(nodeValue, resValue string, weight int, equal func(a, b string) bool) {
		if nodeValue == "" || resValue == "" {
			return
		}
		checks++
		if equal(nodeValue, resValue) {
			matches += weight
		}
	}
	same := func(a, b string) bool { return a == b }

	compare(strings.ToLower(node.Tag()), strings.ToLower(res.Tag), 1, same)
	nodeText, resText := strings.TrimSpace(node.Text()), strings.TrimSpace(res.Text)
	if nodeText == resText {
		compare(nodeText, resText, 2, same)
	} else {
		compare(nodeText, resText, 1, func(a, b string) bool {
			return strings.Contains(a, b) || strings.Contains(b, a)
		})
	}
	compare(node.Attributes()["id"], res.ID, 2, same)
	compare(node.AriaLabel(), res.AriaLabel, 1, same)
	compare(node.Placeholder(), res.Placeholder, 1, same)
	compare(node.Attributes()["name"], res.Name, 1, same)

	if matches >= correlateMinMatches {
		return matches, true
	}
	if checks >= correlateMinChecks && matches > 0 && float64(matches)/float64(checks) >= correlateMinRatio {
		return matches, true
	}
	return matches, false
}
