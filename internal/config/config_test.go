package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notica/notica/internal/banner"
	"github.com/notica/notica/internal/model"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"seconds", "5s", 5 * time.Second, false},
		{"minutes", "1m", time.Minute, false},
		{"compound", "1h30m", 90 * time.Minute, false},
		{"milliseconds as int", "1500", 1500 * time.Millisecond, false},
		{"zero means never", "0", 0, false},
		{"garbage", "not-a-duration", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Duration())
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration(5 * time.Second)
	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "5s", string(text))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, StyleTop, cfg.Display.Style)
	assert.Equal(t, 5, cfg.Display.MaxVisible)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Normal.Duration())
	assert.Equal(t, time.Duration(0), cfg.Timeouts.Critical.Duration())
	assert.True(t, cfg.Interaction.PanEnabled)
	assert.Equal(t, TapDismiss, cfg.Interaction.OnTap)
}

func TestLoadFile_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noticad.toml")
	content := `
[display]
style = "bottom"
edge_offset = 20.0

[timeouts]
normal = "3s"
critical = 2500
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, StyleBottom, cfg.Display.Style)
	assert.Equal(t, 20.0, cfg.Display.EdgeOffset)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.Normal.Duration())
	assert.Equal(t, 2500*time.Millisecond, cfg.Timeouts.Critical.Duration())

	// Untouched sections keep their defaults.
	assert.Equal(t, 5*time.Second, cfg.Timeouts.Low.Duration())
	assert.True(t, cfg.Interaction.PanEnabled)
}

func TestLoadFile_RejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noticad.toml")
	content := `
[display]
style = "diagonal"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid style")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad style", func(c *Config) { c.Display.Style = "sideways" }, "invalid style"},
		{"width too small", func(c *Config) { c.Display.Width = 50 }, "width"},
		{"max visible zero", func(c *Config) { c.Display.MaxVisible = 0 }, "max_visible"},
		{"negative edge offset", func(c *Config) { c.Display.EdgeOffset = -1 }, "edge_offset"},
		{"zero swipe velocity", func(c *Config) { c.Interaction.MinSwipeVelocity = 0 }, "min_swipe_velocity"},
		{"negative swipe distance", func(c *Config) { c.Interaction.MinSwipeDistance = -1 }, "min_swipe_distance"},
		{"bad tap action", func(c *Config) { c.Interaction.OnTap = "explode" }, "on_tap"},
		{"volume out of range", func(c *Config) { c.Audio.Volume = 150 }, "volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Style(t *testing.T) {
	cfg := Default()

	cfg.Display.Style = StyleCenter
	assert.Equal(t, banner.StyleCenter, cfg.Style())

	cfg.Display.Style = StyleBottom
	assert.Equal(t, banner.StyleBottom, cfg.Style())

	cfg.Display.Style = StyleTop
	assert.Equal(t, banner.StyleTop, cfg.Style())
}

func TestConfig_TapAction(t *testing.T) {
	cfg := Default()

	cfg.Interaction.OnTap = TapDelayExit
	assert.Equal(t, banner.TapDelayExit, cfg.TapAction())

	cfg.Interaction.OnTap = TapForward
	assert.Equal(t, banner.TapForward, cfg.TapAction())

	cfg.Interaction.OnTap = TapNone
	assert.Equal(t, banner.TapNone, cfg.TapAction())

	cfg.Interaction.OnTap = TapDismiss
	assert.Equal(t, banner.TapDismiss, cfg.TapAction())
}

func TestConfig_TimeoutForUrgency(t *testing.T) {
	cfg := Default()
	cfg.Timeouts.Low = Duration(time.Second)
	cfg.Timeouts.Normal = Duration(2 * time.Second)
	cfg.Timeouts.Critical = Duration(0)

	assert.Equal(t, time.Second, cfg.TimeoutForUrgency(model.UrgencyLow))
	assert.Equal(t, 2*time.Second, cfg.TimeoutForUrgency(model.UrgencyNormal))
	assert.Equal(t, time.Duration(0), cfg.TimeoutForUrgency(model.UrgencyCritical))

	// Unknown urgency falls back to normal.
	assert.Equal(t, 2*time.Second, cfg.TimeoutForUrgency(99))
}

func TestConfig_AttributesFor(t *testing.T) {
	cfg := Default()
	cfg.Display.Style = StyleBottom
	cfg.Display.EdgeOffset = 15
	cfg.Interaction.MinSwipeVelocity = 75
	cfg.Interaction.MinSwipeDistance = 40

	attrs := cfg.AttributesFor(model.UrgencyCritical)

	assert.Equal(t, banner.StyleBottom, attrs.Style)
	assert.Equal(t, 15.0, attrs.Constraints.EdgeOffset)
	assert.Equal(t, 75.0, attrs.Interaction.Pan.MinVelocity)
	assert.Equal(t, 40.0, attrs.Interaction.Pan.MinDistance)
	assert.False(t, attrs.HasFiniteDuration(), "critical banners never expire by default")
}

func TestConfig_SoundForUrgency(t *testing.T) {
	cfg := Default()
	cfg.Audio.Sounds.Normal = "/usr/share/sounds/ping.ogg"
	cfg.Audio.Sounds.Critical = "~/sounds/alarm.ogg"

	assert.Equal(t, "/usr/share/sounds/ping.ogg", cfg.SoundForUrgency(model.UrgencyNormal))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sounds", "alarm.ogg"), cfg.SoundForUrgency(model.UrgencyCritical))
}
