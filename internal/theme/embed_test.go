package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEmbeddedTheme(t *testing.T) {
	css, found := GetEmbeddedTheme("default")
	require.True(t, found)
	assert.Contains(t, css, ".notica-banner")

	_, found = GetEmbeddedTheme("does-not-exist")
	assert.False(t, found)
}

func TestListEmbeddedThemes(t *testing.T) {
	themes := ListEmbeddedThemes()
	assert.Contains(t, themes, "default")
	assert.Contains(t, themes, "minimal")
}

func TestIsEmbeddedTheme(t *testing.T) {
	assert.True(t, IsEmbeddedTheme(DefaultThemeName))
	assert.False(t, IsEmbeddedTheme("nope"))
}

func TestResolveCSS_UserOverridesBundled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.css"),
		[]byte(".notica-banner { color: red; }"), 0600))

	css, fromUser := ResolveCSS(dir, "default")
	assert.True(t, fromUser)
	assert.Contains(t, css, "color: red")
}

func TestResolveCSS_FallsBackToBundledDefault(t *testing.T) {
	css, fromUser := ResolveCSS(t.TempDir(), "unknown-theme")
	assert.False(t, fromUser)
	assert.Contains(t, css, ".notica-banner")
}

func TestResolveCSS_EmptyNameUsesDefault(t *testing.T) {
	css, _ := ResolveCSS("", "")
	bundled, found := GetEmbeddedTheme(DefaultThemeName)
	require.True(t, found)
	assert.Equal(t, bundled, css)
}
