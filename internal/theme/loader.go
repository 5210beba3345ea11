package theme

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// Loader loads banner CSS and applies it to the GTK display.
type Loader struct {
	mu          sync.RWMutex
	logger      *slog.Logger
	provider    *gtk.CSSProvider
	themesDir   string
	currentName string
}

// NewLoader creates a new theme loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	themesDir, err := ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		themesDir = ""
	}

	return &Loader{
		logger:    logger,
		provider:  gtk.NewCSSProvider(),
		themesDir: themesDir,
	}
}

// ThemesDir returns the path to the user's themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "notica", "themes"), nil
}

// ResolveCSS finds the CSS for a theme name. A file in themesDir wins over a
// bundled theme of the same name; an unknown name falls back to the bundled
// default. fromUser reports whether the user's file was used.
func ResolveCSS(themesDir, name string) (css string, fromUser bool) {
	if name == "" {
		name = DefaultThemeName
	}

	if themesDir != "" {
		path := filepath.Join(themesDir, name+".css")
		if data, err := os.ReadFile(path); err == nil {
			return string(data), true
		}
	}

	if css, found := GetEmbeddedTheme(name); found {
		return css, false
	}

	css, _ = GetEmbeddedTheme(DefaultThemeName)
	return css, false
}

// LoadTheme loads a theme by name into the provider. User themes override
// bundled ones of the same name.
func (l *Loader) LoadTheme(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		name = DefaultThemeName
	}

	css, fromUser := ResolveCSS(l.themesDir, name)
	l.provider.LoadFromString(css)
	l.currentName = name
	if fromUser {
		l.logger.Info("loaded user theme", "name", name, "dir", l.themesDir)
	} else {
		l.logger.Info("loaded bundled theme", "name", name)
	}
}

// Apply applies the loaded theme to a display.
// This should be called after the GTK application is initialized.
func (l *Loader) Apply(display *gdk.Display) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if display == nil {
		display = gdk.DisplayGetDefault()
	}
	if display == nil {
		l.logger.Warn("no display available, cannot apply theme")
		return
	}

	gtk.StyleContextAddProviderForDisplay(
		display,
		l.provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	l.logger.Debug("applied theme to display", "name", l.currentName)
}

// CurrentTheme returns the name of the currently loaded theme.
func (l *Loader) CurrentTheme() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentName
}

// ListThemes returns available theme names, bundled and user, with
// duplicates removed.
func (l *Loader) ListThemes() []string {
	seen := make(map[string]bool)
	var themes []string

	for _, name := range ListEmbeddedThemes() {
		if !seen[name] {
			seen[name] = true
			themes = append(themes, name)
		}
	}

	if l.themesDir != "" {
		entries, err := os.ReadDir(l.themesDir)
		if err == nil {
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				name := entry.Name()
				if filepath.Ext(name) == ".css" {
					themeName := name[:len(name)-4]
					if !seen[themeName] {
						seen[themeName] = true
						themes = append(themes, themeName)
					}
				}
			}
		} else {
			l.logger.Debug("failed to read themes directory", "error", err)
		}
	}

	return themes
}
