// Package audio plays notification sounds per urgency level.
package audio

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/notica/notica/internal/config"
)

// Player decodes, caches, and plays notification sounds. Safe for
// concurrent use.
type Player struct {
	mu     sync.Mutex
	logger *slog.Logger
	cfg    *config.Config

	volume      float64 // 0.0 to 1.0
	initialized bool
	sampleRate  beep.SampleRate

	cacheMu sync.RWMutex
	cache   map[string]*beep.Buffer
}

// NewPlayer creates a Player from the audio configuration.
func NewPlayer(cfg *config.Config, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Player{
		logger:     logger,
		cfg:        cfg,
		volume:     1.0,
		sampleRate: beep.SampleRate(44100),
		cache:      make(map[string]*beep.Buffer),
	}
	p.applyConfig(cfg)
	return p
}

// PlayForUrgency plays the configured sound for an urgency level. Missing
// or unconfigured sounds are not an error.
func (p *Player) PlayForUrgency(urgency int) error {
	p.mu.Lock()
	cfg := p.cfg
	p.mu.Unlock()

	if !cfg.Audio.Enabled {
		return nil
	}
	path := cfg.SoundForUrgency(urgency)
	if path == "" {
		p.logger.Debug("no sound configured for urgency", "urgency", urgency)
		return nil
	}
	return p.Play(path)
}

// Play plays a sound file. Supports WAV, OGG, and MP3 formats.
func (p *Player) Play(path string) error {
	if path == "" {
		return nil
	}
	path = expandPath(path)

	p.cacheMu.RLock()
	buffer, ok := p.cache[path]
	p.cacheMu.RUnlock()

	if !ok {
		var err error
		buffer, err = p.loadSound(path)
		if err != nil {
			p.logger.Warn("failed to load sound", "path", path, "error", err)
			return err
		}
		p.cacheMu.Lock()
		p.cache[path] = buffer
		p.cacheMu.Unlock()
	}

	return p.playBuffer(buffer)
}

// Preload decodes a sound file into the cache for faster first playback.
func (p *Player) Preload(path string) error {
	if path == "" {
		return nil
	}
	path = expandPath(path)

	p.cacheMu.RLock()
	_, ok := p.cache[path]
	p.cacheMu.RUnlock()
	if ok {
		return nil
	}

	buffer, err := p.loadSound(path)
	if err != nil {
		return err
	}
	p.cacheMu.Lock()
	p.cache[path] = buffer
	p.cacheMu.Unlock()

	p.logger.Debug("preloaded sound", "path", path)
	return nil
}

// UpdateConfig swaps the audio configuration, used on hot reload. The
// decode cache is dropped so changed sound files are re-read.
func (p *Player) UpdateConfig(cfg *config.Config) {
	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()

	p.cacheMu.Lock()
	p.cache = make(map[string]*beep.Buffer)
	p.cacheMu.Unlock()

	p.applyConfig(cfg)
	p.preloadConfigured(cfg)
}

// Start preloads every configured sound.
func (p *Player) Start() {
	p.mu.Lock()
	cfg := p.cfg
	p.mu.Unlock()
	p.preloadConfigured(cfg)
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		speaker.Close()
		p.initialized = false
	}

	p.cacheMu.Lock()
	p.cache = make(map[string]*beep.Buffer)
	p.cacheMu.Unlock()

	p.logger.Debug("audio player closed")
}

func (p *Player) applyConfig(cfg *config.Config) {
	volume := float64(cfg.Audio.Volume) / 100.0
	p.mu.Lock()
	p.volume = math.Max(0, math.Min(1, volume))
	p.mu.Unlock()
}

func (p *Player) preloadConfigured(cfg *config.Config) {
	if !cfg.Audio.Enabled {
		return
	}
	for _, path := range []string{cfg.Audio.Sounds.Low, cfg.Audio.Sounds.Normal, cfg.Audio.Sounds.Critical} {
		if path == "" {
			continue
		}
		expanded := expandPath(path)
		if _, err := os.Stat(expanded); err != nil {
			p.logger.Warn("sound file not found", "path", expanded)
			continue
		}
		if err := p.Preload(expanded); err != nil {
			p.logger.Warn("failed to preload sound", "path", expanded, "error", err)
		}
	}
}

func (p *Player) loadSound(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var streamer beep.StreamSeekCloser
	var format beep.Format

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode sound: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	if err := p.ensureInitialized(format.SampleRate); err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return buffer, nil
}

func (p *Player) ensureInitialized(sampleRate beep.SampleRate) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	bufferSize := sampleRate.N(time.Millisecond * 100)
	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	p.sampleRate = sampleRate
	p.initialized = true
	p.logger.Debug("speaker initialized", "sample_rate", sampleRate)
	return nil
}

func (p *Player) playBuffer(buffer *beep.Buffer) error {
	if buffer == nil {
		return nil
	}

	p.mu.Lock()
	volume := p.volume
	sampleRate := p.sampleRate
	p.mu.Unlock()

	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != sampleRate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, sampleRate, streamer)
	}
	if volume < 1.0 {
		streamer = &effects.Volume{
			Streamer: streamer,
			Base:     2,
			Volume:   volumeToDecibels(volume),
			Silent:   volume == 0,
		}
	}

	speaker.Play(streamer)
	return nil
}

// volumeToDecibels converts a linear volume (0-1) to decibels.
func volumeToDecibels(volume float64) float64 {
	if volume <= 0 {
		return -100
	}
	return 20 * math.Log10(volume)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
