package snapshot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rohmanhakim/element-locator/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecords_ObjectKeyedByIndex(t *testing.T) {
	data := []byte(`{
		"12": {"text": "Submit", "tag_name": "button"},
		"3": {"text": "", "tag_name": "input", "placeholder": "Search", "is_visible": false},
		"7": {"text": "Docs", "tag_name": "a", "attributes": {"href": "/docs"}}
	}`)

	provider, err := snapshot.FromRecords(data)
	require.NoError(t, err)
	snap, err := provider.Snapshot(context.Background())
	require.NoError(t, err)

	nodes := snap.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, []int{3, 7, 12}, []int{nodes[0].Index(), nodes[1].Index(), nodes[2].Index()})
	assert.False(t, nodes[0].Visible())
	assert.True(t, nodes[1].Visible())
	assert.Equal(t, "/docs", nodes[1].Attributes()["href"])
}

func TestFromRecords_Array(t *testing.T) {
	data := []byte(`[
		{"text": "One", "tag_name": "a"},
		{"index": 40, "text": "Two", "tag_name": "button", "role": "button"}
	]`)

	provider, err := snapshot.FromRecords(data)
	require.NoError(t, err)
	snap, err := provider.Snapshot(context.Background())
	require.NoError(t, err)

	nodes := snap.Nodes()
	require.Len(t, nodes, 2)
	assert.Equal(t, 0, nodes[0].Index())
	assert.Equal(t, 40, nodes[1].Index())
	assert.Equal(t, "button", nodes[1].Role())
}

func TestFromRecords_Empty(t *testing.T) {
	provider, err := snapshot.FromRecords([]byte("  "))
	require.NoError(t, err)
	snap, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Len())
}

func TestFromRecords_Invalid(t *testing.T) {
	for _, input := range []string{`"text"`, `{"x": {"text": "a"}}`, `[{"text": 1}]`} {
		_, err := snapshot.FromRecords([]byte(input))
		var snapErr *snapshot.SnapshotError
		require.True(t, errors.As(err, &snapErr), input)
		assert.Equal(t, snapshot.ErrCauseInvalidRecord, snapErr.Cause)
	}
}
