package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New()

	html, err := r.Render("# Overview\n\nBuilt with **Go**.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, string(html), `<h1 id="overview">Overview</h1>`)
	assert.Contains(t, string(html), "<strong>Go</strong>")
	assert.Contains(t, string(html), "<table>")
}

func TestRender_DropsRawHTML(t *testing.T) {
	html, err := New().Render("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
	assert.Contains(t, string(html), "text")
}
