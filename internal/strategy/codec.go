package strategy

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Record is the persisted form of a strategy, shared by the JSON and YAML
// workflow documents.
type Record struct {
	Type     string         `json:"type" yaml:"type"`
	Value    string         `json:"value" yaml:"value"`
	Priority int            `json:"priority" yaml:"priority"`
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
}

func Encode(s Strategy) Record {
	meta := s.Metadata()
	if meta == nil {
		meta = map[string]any{}
	}
	return Record{
		Type:     string(s.Kind()),
		Value:    s.Value(),
		Priority: s.Priority(),
		Metadata: meta,
	}
}

func EncodeAll(list []Strategy) []Record {
	records := make([]Record, 0, len(list))
	for _, s := range list {
		records = append(records, Encode(s))
	}
	return records
}

// Decode builds the variant named by r.Type. Unrecognized types decode to
// Unknown; only a missing type is an error.
func Decode(r Record) (Strategy, error) {
	if r.Type == "" {
		return nil, &StrategyError{
			Message: fmt.Sprintf("strategy with value %q has no type", r.Value),
			Cause:   ErrCauseMissingType,
		}
	}
	tag := metaString(r.Metadata, MetaTag)

	switch Kind(r.Type) {
	case KindTextExact:
		return NewTextExact(r.Value, r.Priority, tag), nil
	case KindRoleText:
		return NewRoleText(r.Value, metaString(r.Metadata, MetaRole), r.Priority, tag), nil
	case KindAriaLabel:
		return NewAriaLabel(r.Value, r.Priority, tag), nil
	case KindPlaceholder:
		return NewPlaceholder(r.Value, r.Priority, tag), nil
	case KindTitle:
		return NewTitle(r.Value, r.Priority, tag), nil
	case KindAltText:
		return NewAltText(r.Value, r.Priority, tag), nil
	case KindTextFuzzy:
		threshold := metaFloat(r.Metadata, MetaThreshold, DefaultFuzzyThreshold)
		return NewTextFuzzy(r.Value, threshold, r.Priority, tag), nil
	case KindPathExpression, legacyPathKind:
		switch {
		case metaBool(r.Metadata, MetaOptimized):
			return NewOptimizedPath(r.Value, r.Priority, tag,
				metaString(r.Metadata, MetaStrategy), metaInt(r.Metadata, MetaIndex, 0)), nil
		case metaBool(r.Metadata, MetaFallback):
			return NewFallbackPath(r.Value, r.Priority, tag), nil
		default:
			return NewPath(r.Value, r.Priority, tag), nil
		}
	default:
		return NewUnknown(r.Type, r.Value, r.Priority, r.Metadata), nil
	}
}

func DecodeAll(records []Record) ([]Strategy, error) {
	list := make([]Strategy, 0, len(records))
	for i, r := range records {
		s, err := Decode(r)
		if err != nil {
			return nil, fmt.Errorf("strategy %d: %w", i, err)
		}
		list = append(list, s)
	}
	return list, nil
}

func EncodeJSON(list []Strategy) ([]byte, error) {
	data, err := json.MarshalIndent(EncodeAll(list), "", "  ")
	if err != nil {
		return nil, &StrategyError{Message: err.Error(), Cause: ErrCauseEncodeFailure}
	}
	return data, nil
}

func DecodeJSON(data []byte) ([]Strategy, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &StrategyError{Message: err.Error(), Cause: ErrCauseDecodeFailure}
	}
	return DecodeAll(records)
}

func EncodeYAML(list []Strategy) ([]byte, error) {
	data, err := yaml.Marshal(EncodeAll(list))
	if err != nil {
		return nil, &StrategyError{Message: err.Error(), Cause: ErrCauseEncodeFailure}
	}
	return data, nil
}

func DecodeYAML(data []byte) ([]Strategy, error) {
	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, &StrategyError{Message: err.Error(), Cause: ErrCauseDecodeFailure}
	}
	return DecodeAll(records)
}

// JSON numbers arrive as float64, YAML numbers as int or float64, and
// hand-edited files sometimes quote them.

func metaString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func metaFloat(m map[string]any, key string, def float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func metaInt(m map[string]any, key string, def int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == math.Trunc(v) {
			return int(v)
		}
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func metaBool(m map[string]any, key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	return false
}
