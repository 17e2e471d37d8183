package theme

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/storage"
)

func noPreference() (Mode, bool) { return "", false }

func TestNew_InitialResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("persisted value wins", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set(ctx, storage.KeyTheme, "dark"))
		s := New(ctx, store, WithPreference(Fixed(Light)))
		assert.Equal(t, Dark, s.Read())
	})

	t.Run("os preference when nothing persisted", func(t *testing.T) {
		s := New(ctx, storage.NewMemory(), WithPreference(Fixed(Dark)))
		assert.Equal(t, Dark, s.Read())
	})

	t.Run("light by default", func(t *testing.T) {
		s := New(ctx, storage.NewMemory(), WithPreference(noPreference))
		assert.Equal(t, Light, s.Read())
	})

	t.Run("invalid persisted value is ignored", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set(ctx, storage.KeyTheme, "sepia"))
		s := New(ctx, store, WithPreference(Fixed(Dark)))
		assert.Equal(t, Dark, s.Read())
	})
}

func TestToggle_IsInvolution(t *testing.T) {
	for _, start := range []Mode{Light, Dark} {
		s := New(context.Background(), storage.NewMemory(), WithPreference(Fixed(start)))
		s.Toggle()
		assert.Equal(t, start.Opposite(), s.Read())
		s.Toggle()
		assert.Equal(t, start, s.Read())
	}
}

func TestSetThenRead(t *testing.T) {
	s := New(context.Background(), storage.NewMemory(), WithPreference(noPreference))
	for _, m := range []Mode{Dark, Dark, Light, Dark} {
		require.NoError(t, s.Set(m))
		assert.Equal(t, m, s.Read())
	}

	assert.Error(t, s.Set("sepia"))
	assert.Equal(t, Dark, s.Read(), "invalid set leaves state unchanged")
}

func TestTransitions_PersistAndUpdateRoot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "client.db")
	store, err := storage.Open(ctx, path, nil)
	require.NoError(t, err)

	s := New(ctx, store, WithPreference(noPreference))
	assert.Equal(t, DocumentRoot{DataTheme: "light"}, s.Root())

	var seen []Mode
	s.OnChange(func(m Mode) { seen = append(seen, m) })

	s.Toggle()
	assert.Equal(t, DocumentRoot{DataTheme: "dark", Class: "dark"}, s.Root())
	assert.Equal(t, []Mode{Dark}, seen)
	require.NoError(t, store.Close())

	// A new process picks the persisted value up.
	store2, err := storage.Open(ctx, path, nil)
	require.NoError(t, err)
	defer store2.Close()
	s2 := New(ctx, store2, WithPreference(Fixed(Light)))
	assert.Equal(t, Dark, s2.Read())
}

func TestUnavailableStorage_IsBestEffort(t *testing.T) {
	s := New(context.Background(), storage.Unavailable{}, WithPreference(Fixed(Dark)))
	assert.Equal(t, Dark, s.Read())

	s.Toggle()
	assert.Equal(t, Light, s.Read(), "in-memory state stays authoritative")
}

func TestEnvPreference(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	m, ok := EnvPreference()
	assert.True(t, ok)
	assert.Equal(t, Dark, m)

	t.Setenv("COLORFGBG", "0;15")
	m, ok = EnvPreference()
	assert.True(t, ok)
	assert.Equal(t, Light, m)

	t.Setenv("COLORFGBG", "")
	_, ok = EnvPreference()
	assert.False(t, ok)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, Dark, m)

	_, err = ParseMode("blue")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "#121212", Resolve(Dark, VariantPage).Background)
	assert.Equal(t, "#ffffff", Resolve(Light, VariantPage).Background)
	assert.Equal(t, "#3498db", Resolve(Dark, VariantFilterActive).Background)
	assert.Equal(t, "#2a2a2a", Resolve(Dark, VariantFilter).Background)
	assert.Equal(t, "#f0f0f0", Resolve(Light, VariantFilter).Background)
	assert.Equal(t, Resolve(Light, VariantPage), Resolve("unknown", "unknown"))
}

func TestCSSVariables(t *testing.T) {
	css := string(CSSVariables(Dark))
	assert.True(t, strings.HasPrefix(css, ":root{"))
	assert.Contains(t, css, "--page-bg:#121212;")
	assert.Contains(t, css, "--filter-active-bg:#3498db;")
}
