package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ysmood/gson"
)

func TestDecodeEvalResult(t *testing.T) {
	res, err := decodeEvalResult(gson.NewFrom(`{"found":true,"visible":true,"tag":"A","text":"License 12345","id":"","ariaLabel":"Open","placeholder":"","name":"lic"}`))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Found)
	assert.Equal(t, "A", res.Tag)
	assert.Equal(t, "Open", res.AriaLabel)
	assert.Equal(t, "lic", res.Name)
}

func TestDecodeEvalResult_NoMatch(t *testing.T) {
	res, err := decodeEvalResult(gson.New(nil))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestDecodeEvalResult_ScriptError(t *testing.T) {
	res, err := decodeEvalResult(gson.New(map[string]any{"error": "The string '//a[' is not a valid XPath expression."}))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Found)
	assert.Contains(t, res.Error, "not a valid XPath")
}

func TestDecodeEvalResult_Garbage(t *testing.T) {
	_, err := decodeEvalResult(gson.New("not an object"))
	var browserErr *BrowserError
	require.True(t, errors.As(err, &browserErr))
	assert.Equal(t, ErrCauseDecodeFailure, browserErr.Cause)
}

func TestDecodeSnapshot(t *testing.T) {
	snap, err := decodeSnapshot(gson.NewFrom(`[
		{"index":0,"text":"Home","tag_name":"a","attributes":{"href":"/"},"is_visible":true},
		{"index":1,"text":"","tag_name":"input","placeholder":"Search","is_visible":false}
	]`))
	require.NoError(t, err)
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, "Home", snap.Nodes()[0].Text())
	assert.False(t, snap.Nodes()[1].Visible())
	assert.Equal(t, "Search", snap.Nodes()[1].Placeholder())
}

func TestDecodeSnapshot_Garbage(t *testing.T) {
	_, err := decodeSnapshot(gson.New("oops"))
	var browserErr *BrowserError
	require.True(t, errors.As(err, &browserErr))
	assert.Equal(t, ErrCauseDecodeFailure, browserErr.Cause)
}
