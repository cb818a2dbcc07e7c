package htmleval_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/antchfx/htmlquery"
	"github.com/rohmanhakim/element-locator/internal/htmleval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const licensePage = `<html><body>
<form>
  <div></div><div></div>
  <div>
    <table><tbody>
      <tr><td>Name</td><td>Kind</td><td>Link</td></tr>
      <tr><td>MIT</td><td>OSS</td><td><a class="license-link" href="/l/1">License 12345</a></td></tr>
    </tbody></table>
  </div>
</form>
<input id="q" name="query" placeholder="Search" style="visibility: hidden">
</body></html>`

func newEvaluator(t *testing.T) *htmleval.Evaluator {
	t.Helper()
	root, err := htmlquery.Parse(strings.NewReader(licensePage))
	require.NoError(t, err)
	return htmleval.NewEvaluator(root)
}

func TestEvaluate_LicenseLinkAlternatives(t *testing.T) {
	e := newEvaluator(t)

	for _, expr := range []string{
		"/html/body/form/div[3]/table/tbody/tr[2]/td[3]/a",
		"//a[contains(@class, 'license-link')]",
		"//a[text()='License 12345']",
		"//table//tr[2]/td[3]//a",
		"(//table//a)[1]",
	} {
		t.Run(expr, func(t *testing.T) {
			res, err := e.Evaluate(context.Background(), expr)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.Found)
			assert.True(t, res.Visible)
			assert.Equal(t, "A", res.Tag)
			assert.Equal(t, "License 12345", res.Text)
		})
	}
}

func TestEvaluate_NoMatch(t *testing.T) {
	res, err := newEvaluator(t).Evaluate(context.Background(), "//button[@id='missing']")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestEvaluate_AttributesAndVisibility(t *testing.T) {
	res, err := newEvaluator(t).Evaluate(context.Background(), "//input[@id='q']")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.Visible)
	assert.Equal(t, "q", res.ID)
	assert.Equal(t, "query", res.Name)
	assert.Equal(t, "Search", res.Placeholder)
}

func TestEvaluate_TextNodeResolvesToElement(t *testing.T) {
	res, err := newEvaluator(t).Evaluate(context.Background(), "//td[3]/a/text()")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "A", res.Tag)
}

func TestEvaluate_InvalidExpression(t *testing.T) {
	_, err := newEvaluator(t).Evaluate(context.Background(), "//a[")
	var evalErr *htmleval.EvalError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, htmleval.ErrCauseInvalidExpression, evalErr.Cause)
}
