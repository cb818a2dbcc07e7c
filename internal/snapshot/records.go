package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/rohmanhakim/element-locator/internal/locator"
)

// Record is one entry of a serialized selector map. Visibility defaults to
// true when the field is absent.
type Record struct {
	Index       *int              `json:"index,omitempty"`
	Text        string            `json:"text"`
	TagName     string            `json:"tag_name"`
	Role        string            `json:"role,omitempty"`
	AriaLabel   string            `json:"aria_label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Title       string            `json:"title,omitempty"`
	Alt         string            `json:"alt,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	IsVisible   *bool             `json:"is_visible,omitempty"`
}

// Recorded serves a snapshot decoded from a selector-map file.
type Recorded struct {
	snapshot locator.Snapshot
}

var _ locator.SnapshotProvider = (*Recorded)(nil)

func (r *Recorded) Snapshot(ctx context.Context) (locator.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return locator.Snapshot{}, err
	}
	return r.snapshot, nil
}

// FromRecords decodes a selector map. Two shapes are accepted: an object
// keyed by element index, or an array where a missing index defaults to the
// array position.
func FromRecords(data []byte) (*Recorded, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return &Recorded{snapshot: locator.NewSnapshot()}, nil
	}

	var nodes []locator.Node
	switch trimmed[0] {
	case '{':
		var byIndex map[string]Record
		if err := json.Unmarshal(trimmed, &byIndex); err != nil {
			return nil, invalidRecords(err)
		}
		keys := make([]string, 0, len(byIndex))
		for k := range byIndex {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			idx, err := strconv.Atoi(k)
			if err != nil {
				return nil, invalidRecords(fmt.Errorf("index %q is not a number", k))
			}
			nodes = append(nodes, byIndex[k].toNode(idx))
		}
	case '[':
		var list []Record
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, invalidRecords(err)
		}
		for i, rec := range list {
			idx := i
			if rec.Index != nil {
				idx = *rec.Index
			}
			nodes = append(nodes, rec.toNode(idx))
		}
	default:
		return nil, invalidRecords(fmt.Errorf("expected a JSON object or array"))
	}
	return &Recorded{snapshot: locator.NewSnapshot(nodes...)}, nil
}

func (r Record) toNode(index int) locator.NodeFields {
	visible := true
	if r.IsVisible != nil {
		visible = *r.IsVisible
	}
	return locator.NodeFields{
		Idx:            index,
		TextContent:    r.Text,
		TagName:        r.TagName,
		RoleName:       r.Role,
		AriaLabelValue: r.AriaLabel,
		PlaceholderVal: r.Placeholder,
		TitleValue:     r.Title,
		AltValue:       r.Alt,
		Attrs:          r.Attributes,
		IsVisible:      visible,
	}
}

func invalidRecords(err error) *SnapshotError {
	return &SnapshotError{
		Message: err.Error(),
		Cause:   ErrCauseInvalidRecord,
	}
}
