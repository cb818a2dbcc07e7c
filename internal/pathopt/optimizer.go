package pathopt

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

/*
Responsibilities
- Turn a brittle absolute path into resilient alternatives
- Rank alternatives from most to least robust
- Always keep the absolute path as the last resort

Candidate tiers, in emission order
1. attribute predicates on the target tag
2. paths anchored at stable containers (table, form, nav, ...)
3. first occurrence inside a table
4. shortened suffix of the absolute path

The optimizer is pure. It never touches a page.
*/

// Optimize returns exactly maxAlternatives expressions, the last being
// absolutePath as given. maxAlternatives <= 1 yields only the absolute path.
// A captured path without the leading slash is accepted.
func Optimize(absolutePath string, element Element, maxAlternatives int) ([]string, error) {
	absolutePath = strings.TrimSpace(absolutePath)
	if absolutePath == "" {
		return nil, &OptimizeError{Message: "absolute path is required", Cause: ErrCauseEmptyPath}
	}
	segments := Parse(absolutePath)
	if len(segments) == 0 {
		return nil, &OptimizeError{
			Message: fmt.Sprintf("%q has no tag segment", absolutePath),
			Cause:   ErrCauseNoSegments,
		}
	}

	if maxAlternatives <= 1 {
		return []string{absolutePath}, nil
	}

	var candidates []string
	candidates = append(candidates, attributeCandidates(element)...)
	candidates = append(candidates, anchoredCandidates(segments, element)...)
	candidates = append(candidates, positionalCandidates(segments, element)...)
	if shortened, ok := shortenedCandidate(segments); ok && shortened != absolutePath {
		candidates = append(candidates, shortened)
	}

	want := maxAlternatives - 1
	alternatives := uniqueExcluding(candidates, absolutePath, want)
	if len(alternatives) < want {
		alternatives = pad(alternatives, absolutePath, targetTag(element, segments), want)
	}

	result := append(alternatives, absolutePath)
	if len(result) != maxAlternatives {
		return nil, &OptimizeError{
			Message: fmt.Sprintf("built %d alternatives, want %d", len(result), maxAlternatives),
			Cause:   ErrCauseResultLength,
		}
	}
	return result, nil
}

func uniqueExcluding(candidates []string, exclude string, limit int) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, limit)
	for _, c := range candidates {
		if len(out) == limit {
			break
		}
		if c == exclude {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// pad fills the list with generic tag expressions when the element offered
// too few distinct candidates: //tag, then (//tag)[1], (//tag)[2], ...
func pad(alternatives []string, absolutePath string, tag string, want int) []string {
	seen := make(map[string]struct{}, want)
	for _, a := range alternatives {
		seen[a] = struct{}{}
	}
	seen[absolutePath] = struct{}{}

	next := "//" + tag
	for k := 1; len(alternatives) < want; k++ {
		if _, ok := seen[next]; !ok {
			seen[next] = struct{}{}
			alternatives = append(alternatives, next)
		}
		next = fmt.Sprintf("(//%s)[%d]", tag, k)
	}
	return alternatives
}

func elementTag(element Element) string {
	tag := strings.ToLower(strings.TrimSpace(element.Tag))
	if tag == "" {
		return "*"
	}
	return tag
}

// targetTag prefers the captured element tag and falls back to the last
// path segment.
func targetTag(element Element, segments []Segment) string {
	if tag := elementTag(element); tag != "*" {
		return tag
	}
	if len(segments) > 0 {
		return segments[len(segments)-1].Tag
	}
	return "*"
}

func hasElementInfo(element Element) bool {
	return element.Tag != "" || element.Text != "" || len(element.Attributes) > 0
}

func attributeCandidates(element Element) []string {
	tag := elementTag(element)
	attrs := element.Attributes
	text := strings.TrimSpace(element.Text)

	var out []string
	if v := attrs["id"]; v != "" {
		out = append(out, fmt.Sprintf("//%s[@id=%s]", tag, Quote(v)))
	}
	if v := attrs["name"]; v != "" {
		out = append(out, fmt.Sprintf("//%s[@name=%s]", tag, Quote(v)))
	}
	for _, name := range dataAttributeNames(attrs) {
		out = append(out, fmt.Sprintf("//%s[@%s=%s]", tag, name, Quote(attrs[name])))
	}
	if v := attrs["aria-label"]; v != "" {
		out = append(out, fmt.Sprintf("//%s[@aria-label=%s]", tag, Quote(v)))
	}
	if v := attrs["aria-labelledby"]; v != "" {
		out = append(out, fmt.Sprintf("//%s[@aria-labelledby=%s]", tag, Quote(v)))
	}
	if v := attrs["role"]; v != "" {
		if text != "" {
			out = append(out, fmt.Sprintf("//%s[@role=%s and contains(text(), %s)]", tag, Quote(v), Quote(text)))
		} else {
			out = append(out, fmt.Sprintf("//%s[@role=%s]", tag, Quote(v)))
		}
	}
	if class := firstStableClass(attrs["class"]); class != "" {
		out = append(out, fmt.Sprintf("//%s[contains(@class, %s)]", tag, Quote(class)))
	}
	if text != "" {
		out = append(out, fmt.Sprintf("//%s[text()=%s]", tag, Quote(text)))
		if utf8.RuneCountInString(text) > textContainsMinLen {
			out = append(out, fmt.Sprintf("//%s[contains(text(), %s)]", tag, Quote(text)))
		}
	}
	return out
}

// dataAttributeNames returns the non-empty data-* attributes in name order.
func dataAttributeNames(attrs map[string]string) []string {
	var names []string
	for name, value := range attrs {
		if strings.HasPrefix(name, "data-") && value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func firstStableClass(class string) string {
	for _, token := range strings.Fields(class) {
		if !strings.HasPrefix(token, generatedClassPref) {
			return token
		}
	}
	return ""
}

func anchoredCandidates(segments []Segment, element Element) []string {
	var out []string
	target := segments[len(segments)-1].Tag
	text := strings.TrimSpace(element.Text)

	for i, seg := range segments {
		if _, ok := stableContainers[seg.Tag]; !ok {
			continue
		}
		out = append(out, "//"+seg.Tag+relativePath(segments[i+1:]))
		if text != "" {
			out = append(out, fmt.Sprintf("//%s//%s[contains(text(), %s)]", seg.Tag, target, Quote(text)))
		}
	}

	for i := 0; i+2 < len(segments); i++ {
		if segments[i].Tag != "table" {
			continue
		}
		row, okRow := firstIndexed(segments[i:], "tr")
		cell, okCell := firstIndexed(segments[i:], "td")
		if !okRow || !okCell {
			continue
		}
		out = append(out,
			fmt.Sprintf("//table//tr[%d]/td[%d]//%s", row, cell, target),
			fmt.Sprintf("//table//tr[%d]/td[%d]/%s", row, cell, target),
		)
	}
	return out
}

// relativePath renders segments as "//first/second[2]/third".
func relativePath(segments []Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		if i == 0 {
			b.WriteString("//")
		} else {
			b.WriteString("/")
		}
		b.WriteString(seg.Tag)
		if seg.HasIndex() {
			fmt.Fprintf(&b, "[%d]", seg.Index)
		}
	}
	return b.String()
}

func firstIndexed(segments []Segment, tag string) (int, bool) {
	for _, seg := range segments {
		if seg.Tag == tag && seg.HasIndex() {
			return seg.Index, true
		}
	}
	return 0, false
}

func positionalCandidates(segments []Segment, element Element) []string {
	if !hasElementInfo(element) {
		return nil
	}
	for _, seg := range segments {
		if seg.Tag == "table" {
			return []string{fmt.Sprintf("(//table//%s)[1]", segments[len(segments)-1].Tag)}
		}
	}
	return nil
}

// shortenedCandidate keeps the last three segments when every shorten anchor
// lies before them. The suffix is emitted as a descendant path since it no
// longer starts at the root.
func shortenedCandidate(segments []Segment) (string, bool) {
	if len(segments) <= shortenMinSegments {
		return "", false
	}
	lastStable := 0
	for i, seg := range segments {
		if _, ok := shortenAnchors[seg.Tag]; ok {
			lastStable = i
		}
	}
	keepFrom := len(segments) - shortenKeep
	// An anchor among the last three segments leaves nothing worth cutting.
	if lastStable >= keepFrom {
		return "", false
	}
	return "/" + Join(segments[keepFrom:]), true
}
