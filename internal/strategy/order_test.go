package strategy_test

import (
	"strings"
	"testing"

	"github.com/rohmanhakim/element-locator/internal/strategy"
	"github.com/rohmanhakim/element-locator/pkg/hashutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByPriority_StableAndNonMutating(t *testing.T) {
	in := []strategy.Strategy{
		strategy.NewAriaLabel("Close", 3, "button"),
		strategy.NewOptimizedPath("//button[@id='a']", 2, "button", "id-based", 0),
		strategy.NewTextExact("Close", 1, "button"),
		strategy.NewRoleText("Close", "button", 2, "button"),
	}

	sorted := strategy.SortByPriority(in)

	require.Len(t, sorted, 4)
	assert.Equal(t, strategy.KindTextExact, sorted[0].Kind())
	assert.Equal(t, strategy.KindPathExpression, sorted[1].Kind(), "equal priorities keep input order")
	assert.Equal(t, strategy.KindRoleText, sorted[2].Kind())
	assert.Equal(t, strategy.KindAriaLabel, sorted[3].Kind())
	assert.True(t, strategy.IsSorted(sorted))

	assert.Equal(t, strategy.KindAriaLabel, in[0].Kind(), "input must not be reordered")
}

func TestDedupe(t *testing.T) {
	in := []strategy.Strategy{
		strategy.NewTextExact("Go", 1, "a"),
		strategy.NewTextFuzzy("Go", 0.8, 7, "a"),
		strategy.NewTextExact("Go", 4, "a"),
	}

	out := strategy.Dedupe(in)

	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Priority(), "first occurrence wins")
	assert.Equal(t, strategy.KindTextFuzzy, out[1].Kind())
}

func TestTruncate(t *testing.T) {
	in := []strategy.Strategy{
		strategy.NewTextExact("a", 1, "a"),
		strategy.NewAriaLabel("b", 3, "a"),
		strategy.NewTitle("c", 5, "a"),
	}

	assert.Len(t, strategy.Truncate(in, 2), 2)
	assert.Len(t, strategy.Truncate(in, 0), 3)
	assert.Len(t, strategy.Truncate(in, 10), 3)
}

func TestSummary(t *testing.T) {
	long := strings.Repeat("x", 60)
	list := []strategy.Strategy{
		strategy.NewTextExact(long, 1, "a"),
		strategy.NewRoleText("b", "link", 2, "a"),
		strategy.NewAriaLabel("c", 3, "a"),
		strategy.NewPlaceholder("d", 4, "a"),
		strategy.NewTitle("e", 5, "a"),
		strategy.NewAltText("f", 6, "a"),
		strategy.NewTextFuzzy("ggggg", 0.8, 7, "a"),
	}

	summary := strategy.Summary(list)

	assert.True(t, strings.HasPrefix(summary, "Generated 7 selector strategies:"))
	assert.Contains(t, summary, "  1. [priority 1] text_exact: "+strings.Repeat("x", 50)+"...")
	assert.Contains(t, summary, "  5. [priority 5] title: e")
	assert.NotContains(t, summary, "alt_text")
	assert.True(t, strings.HasSuffix(summary, "  ... and 2 more"))
}

func TestFingerprint_StableForEqualLists(t *testing.T) {
	a := []strategy.Strategy{strategy.NewRoleText("Save", "button", 2, "button")}
	b := []strategy.Strategy{strategy.NewRoleText("Save", "button", 2, "button")}
	c := []strategy.Strategy{strategy.NewRoleText("Save", "link", 2, "a")}

	fa, err := strategy.Fingerprint(a, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	fb, err := strategy.Fingerprint(b, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)
	fc, err := strategy.Fingerprint(c, hashutil.HashAlgoBLAKE3)
	require.NoError(t, err)

	assert.Equal(t, fa, fb)
	assert.NotEqual(t, fa, fc)
}

func TestInferRole(t *testing.T) {
	tests := []struct {
		tag   string
		attrs map[string]string
		want  string
	}{
		{tag: "button", want: "button"},
		{tag: "a", want: "link"},
		{tag: "input", want: "textbox"},
		{tag: "input", attrs: map[string]string{"type": "checkbox"}, want: "checkbox"},
		{tag: "input", attrs: map[string]string{"type": "Radio"}, want: "radio"},
		{tag: "input", attrs: map[string]string{"type": "submit"}, want: "button"},
		{tag: "textarea", want: "textbox"},
		{tag: "select", want: "combobox"},
		{tag: "H2", want: "heading"},
		{tag: "img", want: "img"},
		{tag: "ol", want: "list"},
		{tag: "nav", want: "navigation"},
		{tag: "div", want: ""},
		{tag: "div", attrs: map[string]string{"role": "button"}, want: "button"},
		{tag: "a", attrs: map[string]string{"role": "tab"}, want: "tab"},
	}

	for _, tt := range tests {
		t.Run(tt.tag+"/"+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, strategy.InferRole(tt.tag, tt.attrs))
		})
	}
}
