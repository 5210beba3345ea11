// Package config loads and validates the noticad configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/notica/notica/internal/banner"
	"github.com/notica/notica/internal/model"
)

// Duration is a time.Duration that unmarshals from human-readable strings
// ("5s", "1m", "1h30m") or integer milliseconds. Zero means a banner never
// auto-dismisses.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m', '1h30m' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the noticad configuration, loaded from
// ~/.config/notica/noticad.toml.
type Config struct {
	Display     DisplayConfig     `toml:"display"`
	Timeouts    TimeoutConfig     `toml:"timeouts"`
	Interaction InteractionConfig `toml:"interaction"`
	Audio       AudioConfig       `toml:"audio"`
	Behavior    BehaviorConfig    `toml:"behavior"`
}

// DisplayConfig positions banners on screen.
type DisplayConfig struct {
	Style      string  `toml:"style"`       // "center", "top", or "bottom"
	EdgeOffset float64 `toml:"edge_offset"` // Points from the style's screen edge
	Width      int     `toml:"width"`       // Banner width in pixels
	MaxVisible int     `toml:"max_visible"` // Maximum simultaneous banners
	Gap        int     `toml:"gap"`         // Gap between stacked banners
	Theme      string  `toml:"theme"`       // CSS theme name
}

// TimeoutConfig holds display durations per urgency level. Zero means the
// banner stays until dismissed.
type TimeoutConfig struct {
	Low      Duration `toml:"low"`
	Normal   Duration `toml:"normal"`
	Critical Duration `toml:"critical"`
}

// InteractionConfig maps onto a banner's gesture policies.
type InteractionConfig struct {
	PanEnabled       bool    `toml:"pan_enabled"`
	StretchEnabled   bool    `toml:"stretch_enabled"`
	MinSwipeVelocity float64 `toml:"min_swipe_velocity"` // Points per second
	MinSwipeDistance float64 `toml:"min_swipe_distance"` // Points past the resting edge
	OnTap            string  `toml:"on_tap"`             // "dismiss", "delay-exit", "forward", "none"
}

// AudioConfig controls per-urgency notification sounds.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig holds per-urgency sound file paths.
type SoundConfig struct {
	Low      string `toml:"low"`
	Normal   string `toml:"normal"`
	Critical string `toml:"critical"`
}

// BehaviorConfig tunes how repeated notifications behave.
type BehaviorConfig struct {
	// StackDuplicates collapses repeated app/summary/body triples onto the
	// banner already on screen instead of showing another one.
	StackDuplicates bool `toml:"stack_duplicates"`
}

// Valid display styles.
const (
	StyleCenter = "center"
	StyleTop    = "top"
	StyleBottom = "bottom"
)

// ValidStyles returns all valid display style values.
func ValidStyles() []string {
	return []string{StyleCenter, StyleTop, StyleBottom}
}

// Valid tap actions.
const (
	TapDismiss   = "dismiss"
	TapDelayExit = "delay-exit"
	TapForward   = "forward"
	TapNone      = "none"
)

// ValidTapActions returns all valid on_tap values.
func ValidTapActions() []string {
	return []string{TapDismiss, TapDelayExit, TapForward, TapNone}
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Style:      StyleTop,
			EdgeOffset: 10,
			Width:      350,
			MaxVisible: 5,
			Gap:        5,
			Theme:      "default",
		},
		Timeouts: TimeoutConfig{
			Low:      Duration(5 * time.Second),
			Normal:   Duration(10 * time.Second),
			Critical: Duration(0), // Never expires
		},
		Interaction: InteractionConfig{
			PanEnabled:       true,
			StretchEnabled:   true,
			MinSwipeVelocity: 60,
			MinSwipeDistance: 50,
			OnTap:            TapDismiss,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  80,
		},
		Behavior: BehaviorConfig{
			StackDuplicates: true,
		},
	}
}

// Path returns the path to the noticad config file.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "notica", "noticad.toml"), nil
}

// Load reads the configuration from disk. A missing file yields the
// defaults; a present file overlays them.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to disk atomically.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validStyle := false
	for _, s := range ValidStyles() {
		if c.Display.Style == s {
			validStyle = true
			break
		}
	}
	if !validStyle {
		return fmt.Errorf("invalid style %q, must be one of: %v", c.Display.Style, ValidStyles())
	}

	if c.Display.Width < 100 || c.Display.Width > 1000 {
		return fmt.Errorf("width must be between 100 and 1000, got %d", c.Display.Width)
	}
	if c.Display.MaxVisible < 1 || c.Display.MaxVisible > 20 {
		return fmt.Errorf("max_visible must be between 1 and 20, got %d", c.Display.MaxVisible)
	}
	if c.Display.EdgeOffset < 0 {
		return fmt.Errorf("edge_offset must not be negative, got %v", c.Display.EdgeOffset)
	}

	if c.Interaction.MinSwipeVelocity <= 0 {
		return fmt.Errorf("min_swipe_velocity must be positive, got %v", c.Interaction.MinSwipeVelocity)
	}
	if c.Interaction.MinSwipeDistance < 0 {
		return fmt.Errorf("min_swipe_distance must not be negative, got %v", c.Interaction.MinSwipeDistance)
	}

	validTap := false
	for _, a := range ValidTapActions() {
		if c.Interaction.OnTap == a {
			validTap = true
			break
		}
	}
	if !validTap {
		return fmt.Errorf("invalid on_tap %q, must be one of: %v", c.Interaction.OnTap, ValidTapActions())
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}

	return nil
}

// Style returns the configured display style as a banner.Style.
func (c *Config) Style() banner.Style {
	switch c.Display.Style {
	case StyleCenter:
		return banner.StyleCenter
	case StyleBottom:
		return banner.StyleBottom
	default:
		return banner.StyleTop
	}
}

// TapAction returns the configured tap policy as a banner.TapAction.
func (c *Config) TapAction() banner.TapAction {
	switch c.Interaction.OnTap {
	case TapDelayExit:
		return banner.TapDelayExit
	case TapForward:
		return banner.TapForward
	case TapNone:
		return banner.TapNone
	default:
		return banner.TapDismiss
	}
}

// TimeoutForUrgency returns the display duration for the given urgency
// level. Zero means never expire.
func (c *Config) TimeoutForUrgency(urgency int) time.Duration {
	switch urgency {
	case model.UrgencyLow:
		return c.Timeouts.Low.Duration()
	case model.UrgencyCritical:
		return c.Timeouts.Critical.Duration()
	default:
		return c.Timeouts.Normal.Duration()
	}
}

// AttributesFor assembles the banner attributes for a notification of the
// given urgency.
func (c *Config) AttributesFor(urgency int) banner.Attributes {
	return banner.Attributes{
		DisplayDuration: c.TimeoutForUrgency(urgency),
		Style:           c.Style(),
		Interaction: banner.Interaction{
			Pan: banner.PanPolicy{
				Enabled:        c.Interaction.PanEnabled,
				StretchEnabled: c.Interaction.StretchEnabled,
				MinVelocity:    c.Interaction.MinSwipeVelocity,
				MinDistance:    c.Interaction.MinSwipeDistance,
			},
			OnTap: c.TapAction(),
		},
		Constraints: banner.Constraints{
			EdgeOffset: c.Display.EdgeOffset,
		},
	}
}

// SoundForUrgency returns the sound file path for the given urgency level,
// with ~ expanded to the home directory.
func (c *Config) SoundForUrgency(urgency int) string {
	var path string
	switch urgency {
	case model.UrgencyLow:
		path = c.Audio.Sounds.Low
	case model.UrgencyCritical:
		path = c.Audio.Sounds.Critical
	default:
		path = c.Audio.Sounds.Normal
	}
	return expandPath(path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
