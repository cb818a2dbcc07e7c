package pathopt

import (
	"regexp"
	"strconv"
	"strings"
)

var segmentPattern = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(?:\[(\d+)\])?$`)

// Parse splits an absolute path into segments. Segments that are not a plain
// tag with an optional numeric index (predicates, wildcards, empty steps from
// "//") are skipped.
func Parse(path string) []Segment {
	trimmed := strings.TrimLeft(path, "/")
	if trimmed == "" {
		return nil
	}

	var segments []Segment
	for _, raw := range strings.Split(trimmed, "/") {
		m := segmentPattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		seg := Segment{Tag: m[1], Original: raw}
		if m[2] != "" {
			if idx, err := strconv.Atoi(m[2]); err == nil {
				seg.Index = idx
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// Join rebuilds an absolute path from segments.
func Join(segments []Segment) string {
	parts := make([]string, len(segments))
	for i, s := range segments {
		parts[i] = s.Original
	}
	return "/" + strings.Join(parts, "/")
}
