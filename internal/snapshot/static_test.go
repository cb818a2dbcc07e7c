package snapshot_test

import (
	"context"
	"testing"

	"github.com/rohmanhakim/element-locator/internal/locator"
	"github.com/rohmanhakim/element-locator/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginPage = `<!DOCTYPE html>
<html>
<head><title>Login</title></head>
<body>
  <nav><a href="/">Home</a></nav>
  <form id="login">
    <input type="email" name="email" placeholder="Email address">
    <input type="hidden" name="csrf" value="x">
    <input type="submit" value="Sign in">
    <button type="button" aria-label="Close dialog">   X
    </button>
  </form>
  <div style="display: none"><a href="/secret">Secret</a></div>
  <span hidden><button>Ghost</button></span>
  <img src="logo.png" alt="Company logo">
  <p>Plain text is not indexed</p>
  <div role="tab" title="Settings tab">Settings</div>
</body>
</html>`

func takeSnapshot(t *testing.T, page string) locator.Snapshot {
	t.Helper()
	s, err := snapshot.NewStatic([]byte(page))
	require.NoError(t, err)
	snap, err := s.Snapshot(context.Background())
	require.NoError(t, err)
	return snap
}

func TestStatic_IndexesInteractiveElementsInDocumentOrder(t *testing.T) {
	snap := takeSnapshot(t, loginPage)

	var tags []string
	for _, n := range snap.Nodes() {
		tags = append(tags, n.Tag())
	}
	assert.Equal(t, []string{"a", "input", "input", "input", "button", "a", "button", "img", "div"}, tags)

	for i, n := range snap.Nodes() {
		assert.Equal(t, i, n.Index())
	}
}

func TestStatic_NodeFields(t *testing.T) {
	nodes := takeSnapshot(t, loginPage).Nodes()

	email := nodes[1]
	assert.Equal(t, "Email address", email.Placeholder())
	assert.Equal(t, "email", email.Attributes()["name"])
	assert.Equal(t, "", email.Text())
	assert.True(t, email.Visible())

	assert.False(t, nodes[2].Visible(), "hidden input")
	assert.Equal(t, "Sign in", nodes[3].Text())

	closeBtn := nodes[4]
	assert.Equal(t, "Close dialog", closeBtn.AriaLabel())
	assert.Equal(t, "X", closeBtn.Text())

	assert.False(t, nodes[5].Visible(), "display:none ancestor")
	assert.False(t, nodes[6].Visible(), "hidden ancestor")
	assert.Equal(t, "Company logo", nodes[7].Alt())

	tab := nodes[8]
	assert.Equal(t, "tab", tab.Role())
	assert.Equal(t, "Settings tab", tab.Title())
	assert.Equal(t, "Settings", tab.Text())
}

func TestStatic_CanceledContext(t *testing.T) {
	s, err := snapshot.NewStatic([]byte(loginPage))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", snapshot.CollapseSpace("  a \n\t b   c "))
	assert.Equal(t, "", snapshot.CollapseSpace(" \n "))
}
