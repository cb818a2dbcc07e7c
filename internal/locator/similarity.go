package locator

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the Ratcliff/Obershelp ratio 2*M/T of a and b compared
// case-insensitively, rune by rune. Two empty strings are identical.
func Similarity(a, b string) float64 {
	matcher := difflib.NewMatcher(runeSeq(strings.ToLower(a)), runeSeq(strings.ToLower(b)))
	return matcher.Ratio()
}

// FuzzyMatch reports whether candidate is at least threshold similar to
// target.
func FuzzyMatch(target, candidate string, threshold float64) bool {
	return Similarity(target, candidate) >= threshold
}

func runeSeq(s string) []string {
	seq := make([]string, 0, len(s))
	for _, r := range s {
		seq = append(seq, string(r))
	}
	return seq
}
