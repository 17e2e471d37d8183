package cmd

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/api"
	"github.com/Zachkp/portfolio/internal/devapi"
	"github.com/Zachkp/portfolio/internal/forms"
	"github.com/Zachkp/portfolio/internal/markdown"
	"github.com/Zachkp/portfolio/internal/theme"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// run executes the root command against a dev API serving a small content set.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	content, err := devapi.Load(fstest.MapFS{
		"projects/shop.md": &fstest.MapFile{Data: []byte("---\ntitle: Shop\ncategory: web\ntechnologies: [Go]\n---\nBody\n")},
		"projects/app.md":  &fstest.MapFile{Data: []byte("---\ntitle: Tracker\ncategory: mobile\ntechnologies: [Swift]\n---\nBody\n")},
	}, markdown.New())
	require.NoError(t, err)
	srv := httptest.NewServer(devapi.NewServer(devapi.NewStore(content), nil, nil).Handler())
	t.Cleanup(srv.Close)

	t.Setenv("PORTFOLIO_API_URL", srv.URL)
	t.Setenv("PORTFOLIO_STORAGE_PATH", filepath.Join(t.TempDir(), "client.db"))

	t.Cleanup(func() {
		asJSON = false
		projectFilters = api.ProjectFilters{}
		contactMsg = api.ContactMessage{}
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestProjectsList(t *testing.T) {
	out, _, err := run(t, "projects", "list", "--category", "mobile", "--json")
	require.NoError(t, err)

	var projects []api.Project
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "Tracker", projects[0].Title)
}

func TestProjectsShow_NotFound(t *testing.T) {
	_, _, err := run(t, "projects", "show", "missing")
	require.Error(t, err)
	assert.Equal(t, "Project not found", err.Error())
}

func TestContact_ValidatesBeforeSending(t *testing.T) {
	_, stderr, err := run(t, "contact", "--name", "A", "--email", "bad")
	require.Error(t, err)
	assert.True(t, forms.IsValidationError(err))
	assert.Contains(t, stderr, "Name should be at least 2 characters")
	assert.Contains(t, stderr, "Invalid email address")
}

func TestContact_Sends(t *testing.T) {
	out, _, err := run(t, "contact",
		"--name", "Ada", "--email", "ada@example.com", "--subject", "Hello", "-m", "I would like to chat.")
	require.NoError(t, err)
	assert.Contains(t, out, "Thank you for your message!")
}

func TestThemeSet(t *testing.T) {
	out, _, err := run(t, "theme", "set", "dark", "--json")
	require.NoError(t, err)

	var got struct {
		Mode   theme.Mode                     `json:"mode"`
		Tokens map[theme.Variant]theme.Tokens `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, theme.Dark, got.Mode)
	assert.Len(t, got.Tokens, len(theme.Variants()))

	_, _, err = run(t, "theme", "set", "sepia")
	require.Error(t, err)
}

func TestRenderTheme(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderTheme(&buf, theme.Light))
	assert.Contains(t, buf.String(), "VARIANT")
	assert.Contains(t, buf.String(), string(theme.VariantFilterActive))
	assert.Contains(t, buf.String(), theme.PaletteFor(theme.Light).Primary)
}
