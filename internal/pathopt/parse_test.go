package pathopt_test

import (
	"testing"

	"github.com/rohmanhakim/element-locator/internal/pathopt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	segments := pathopt.Parse("/html/body/div[3]/table/tbody/tr[2]/td[1]/a")

	require.Len(t, segments, 8)
	assert.Equal(t, pathopt.Segment{Tag: "html", Original: "html"}, segments[0])
	assert.Equal(t, pathopt.Segment{Tag: "div", Index: 3, Original: "div[3]"}, segments[2])
	assert.Equal(t, pathopt.Segment{Tag: "tr", Index: 2, Original: "tr[2]"}, segments[5])
	assert.False(t, segments[7].HasIndex())
}

func TestParse_RoundTrip(t *testing.T) {
	paths := []string{
		"/html/body/form/div[3]/table/tbody/tr[2]/td[3]/a",
		"/html/body/main/section[2]/custom-element/span_1",
		"/html",
	}
	for _, p := range paths {
		assert.Equal(t, p, pathopt.Join(pathopt.Parse(p)))
	}
}

func TestParse_SkipsMalformedSegments(t *testing.T) {
	tests := []struct {
		name string
		path string
		want []string
	}{
		{name: "predicate segment", path: "/html/body/div[@id='x']/a", want: []string{"html", "body", "a"}},
		{name: "wildcard", path: "/html/*/a", want: []string{"html", "a"}},
		{name: "double slash", path: "/html//a", want: []string{"html", "a"}},
		{name: "function call", path: "/html/body/text()", want: []string{"html", "body"}},
		{name: "empty", path: "", want: nil},
		{name: "root only", path: "/", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags []string
			for _, s := range pathopt.Parse(tt.path) {
				tags = append(tags, s.Tag)
			}
			assert.Equal(t, tt.want, tags)
		})
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "empty", value: "", want: "''"},
		{name: "plain", value: "hello", want: "'hello'"},
		{name: "double quotes only", value: `say "hi"`, want: `'say "hi"'`},
		{name: "single quote only", value: "it's", want: `"it's"`},
		{name: "both quote kinds", value: `it's "x"`, want: `concat('it', "'", 's "x"')`},
		{name: "leading single quote", value: `'a"`, want: `concat("'", 'a"')`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pathopt.Quote(tt.value))
		})
	}
}
