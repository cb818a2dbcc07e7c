package strategy_test

import (
	"errors"
	"testing"

	"github.com/rohmanhakim/element-locator/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_MetadataPerVariant(t *testing.T) {
	tests := []struct {
		name     string
		in       strategy.Strategy
		wantType string
		wantMeta map[string]any
	}{
		{
			name:     "text exact carries tag",
			in:       strategy.NewTextExact("Submit", 1, "button"),
			wantType: "text_exact",
			wantMeta: map[string]any{"tag": "button"},
		},
		{
			name:     "role text carries role and tag",
			in:       strategy.NewRoleText("Submit", "button", 2, "button"),
			wantType: "role_text",
			wantMeta: map[string]any{"role": "button", "tag": "button"},
		},
		{
			name:     "fuzzy carries threshold",
			in:       strategy.NewTextFuzzy("Submit", 0.8, 7, "button"),
			wantType: "text_fuzzy",
			wantMeta: map[string]any{"threshold": 0.8, "tag": "button"},
		},
		{
			name:     "optimized path carries provenance",
			in:       strategy.NewOptimizedPath("//a[@id='x']", 2, "a", "id-based", 0),
			wantType: "path_expression",
			wantMeta: map[string]any{"tag": "a", "strategy": "id-based", "optimized": true, "index": 0},
		},
		{
			name:     "fallback path is flagged",
			in:       strategy.NewFallbackPath("//a[@name='n']", 8, "a"),
			wantType: "path_expression",
			wantMeta: map[string]any{"tag": "a", "fallback": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := strategy.Encode(tt.in)
			assert.Equal(t, tt.wantType, rec.Type)
			assert.Equal(t, tt.in.Value(), rec.Value)
			assert.Equal(t, tt.in.Priority(), rec.Priority)
			assert.Equal(t, tt.wantMeta, rec.Metadata)
		})
	}
}

func TestDecode_LegacyPathKind(t *testing.T) {
	s, err := strategy.Decode(strategy.Record{
		Type:     "xpath",
		Value:    "//table//tr[2]/td[3]//a",
		Priority: 4,
		Metadata: map[string]any{"tag": "a", "strategy": "table-anchored", "optimized": true, "index": float64(1)},
	})
	require.NoError(t, err)

	path, ok := s.(strategy.PathExpression)
	require.True(t, ok, "expected PathExpression, got %T", s)
	assert.Equal(t, strategy.KindPathExpression, path.Kind())
	assert.True(t, path.Optimized())
	assert.Equal(t, "table-anchored", path.Name())
	assert.Equal(t, 1, path.Index())
	assert.Equal(t, "a", path.Tag())
}

func TestDecode_UnknownKindIsPreserved(t *testing.T) {
	rec := strategy.Record{
		Type:     "css_attr",
		Value:    "[data-test=submit]",
		Priority: 9,
		Metadata: map[string]any{"engine": "css"},
	}

	s, err := strategy.Decode(rec)
	require.NoError(t, err)

	unknown, ok := s.(strategy.Unknown)
	require.True(t, ok)
	assert.Equal(t, strategy.Kind("css_attr"), unknown.Kind())
	assert.False(t, unknown.Kind().IsKnown())
	assert.Equal(t, rec, strategy.Encode(unknown))
}

func TestDecode_MissingType(t *testing.T) {
	_, err := strategy.Decode(strategy.Record{Value: "Submit", Priority: 1})
	require.Error(t, err)

	var strategyErr *strategy.StrategyError
	require.True(t, errors.As(err, &strategyErr))
	assert.Equal(t, strategy.ErrCauseMissingType, strategyErr.Cause)
}

func TestDecode_FuzzyThresholdFallsBackToDefault(t *testing.T) {
	s, err := strategy.Decode(strategy.Record{Type: "text_fuzzy", Value: "Submit", Priority: 7})
	require.NoError(t, err)
	assert.InDelta(t, strategy.DefaultFuzzyThreshold, s.(strategy.TextFuzzy).Threshold(), 1e-9)

	s, err = strategy.Decode(strategy.Record{
		Type: "text_fuzzy", Value: "Submit", Priority: 7,
		Metadata: map[string]any{"threshold": "0.65"},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.65, s.(strategy.TextFuzzy).Threshold(), 1e-9)
}

func TestJSONRoundTrip(t *testing.T) {
	list := []strategy.Strategy{
		strategy.NewTextExact("Submit", 1, "button"),
		strategy.NewRoleText("Submit", "button", 2, "button"),
		strategy.NewTextFuzzy("Submit", 0.8, 7, "button"),
		strategy.NewOptimizedPath("//button[@id='go']", 2, "button", "id-based", 0),
	}

	data, err := strategy.EncodeJSON(list)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type": "path_expression"`)

	decoded, err := strategy.DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, list, decoded)
}

func TestDecodeYAML(t *testing.T) {
	doc := []byte(`
- type: placeholder
  value: Enter your email
  priority: 4
  metadata:
    tag: input
- type: xpath
  value: /html/body/form/input[2]
  priority: 10
  metadata:
    tag: input
    strategy: absolute-fallback
    optimized: true
    index: 1
`)
	list, err := strategy.DecodeYAML(doc)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, strategy.KindPlaceholder, list[0].Kind())
	assert.Equal(t, "Enter your email", list[0].Value())

	path := list[1].(strategy.PathExpression)
	assert.Equal(t, 1, path.Index())
	assert.Equal(t, "absolute-fallback", path.Name())

	out, err := strategy.EncodeYAML(list)
	require.NoError(t, err)
	assert.Contains(t, string(out), "type: path_expression")
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := strategy.DecodeJSON([]byte(`{"type":`))
	var strategyErr *strategy.StrategyError
	require.True(t, errors.As(err, &strategyErr))
	assert.Equal(t, strategy.ErrCauseDecodeFailure, strategyErr.Cause)
}
