// Package daemon provides supporting services for noticad.
package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/notica/notica/internal/config"
)

// debounceDelay coalesces the burst of filesystem events an editor save
// produces into one reload.
const debounceDelay = 250 * time.Millisecond

// ConfigWatcher reloads the daemon configuration when the file changes on
// disk. A change that fails validation keeps the previous configuration.
type ConfigWatcher struct {
	mu     sync.Mutex
	logger *slog.Logger

	configPath string
	watcher    *fsnotify.Watcher
	current    *config.Config

	onReload func(*config.Config)
	onError  func(error)

	debounce *time.Timer
	running  bool
	done     chan struct{}
}

// NewConfigWatcher creates a watcher for the default noticad config file.
func NewConfigWatcher(initial *config.Config, logger *slog.Logger) (*ConfigWatcher, error) {
	path, err := config.Path()
	if err != nil {
		return nil, err
	}
	return NewConfigWatcherAt(path, initial, logger)
}

// NewConfigWatcherAt creates a watcher for an explicit config path.
func NewConfigWatcherAt(path string, initial *config.Config, logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ConfigWatcher{
		logger:     logger,
		configPath: path,
		watcher:    watcher,
		current:    initial,
		done:       make(chan struct{}),
	}, nil
}

// SetReloadCallback sets the callback invoked with each validated config.
func (w *ConfigWatcher) SetReloadCallback(fn func(*config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

// SetErrorCallback sets the callback invoked when a changed file fails to
// load or validate.
func (w *ConfigWatcher) SetErrorCallback(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onError = fn
}

// Current returns the most recently validated configuration.
func (w *ConfigWatcher) Current() *config.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Start begins watching. The config directory is watched rather than the
// file itself so atomic renames are seen.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.configPath)); err != nil {
		return err
	}

	go w.watch(ctx)

	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// Stop stops the watcher.
func (w *ConfigWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	if w.debounce != nil {
		w.debounce.Stop()
	}
	close(w.done)
	return w.watcher.Close()
}

func (w *ConfigWatcher) watch(ctx context.Context) {
	filename := filepath.Base(w.configPath)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.scheduleReload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
	}
}

func (w *ConfigWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, w.reload)
}

func (w *ConfigWatcher) reload() {
	w.mu.Lock()
	onReload := w.onReload
	onError := w.onError
	w.mu.Unlock()

	cfg, err := config.LoadFile(w.configPath)
	if err != nil {
		w.logger.Warn("config file changed but reload failed", "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.current = cfg
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.configPath)
	if onReload != nil {
		onReload(cfg)
	}
}
