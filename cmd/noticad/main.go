// Package main is the entry point for the noticad notification daemon.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/diamondburned/gotk4-adwaita/pkg/adw"
	"github.com/diamondburned/gotk4/pkg/glib/v2"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/notica/notica/internal/audio"
	"github.com/notica/notica/internal/config"
	"github.com/notica/notica/internal/coordinator"
	"github.com/notica/notica/internal/daemon"
	"github.com/notica/notica/internal/dbus"
	"github.com/notica/notica/internal/model"
	"github.com/notica/notica/internal/surface"
	"github.com/notica/notica/internal/theme"
)

const (
	appID   = "io.github.notica.noticad"
	appName = "noticad"
)

var (
	// Build-time variables
	version = "dev"
)

func main() {
	// Parse command line flags
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		println("noticad version", version)
		os.Exit(0)
	}

	// Set up structured logging
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	runDaemon(logger)
}

// runDaemon runs noticad as the session's notification daemon.
func runDaemon(logger *slog.Logger) {
	logger.Info("starting noticad", "version", version)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create the libadwaita application
	app := adw.NewApplication(appID, 0)

	// Shared state between GTK main loop and signal handlers
	var (
		server        *dbus.Server
		surf          *surface.Surface
		coord         *coordinator.Coordinator
		player        *audio.Player
		themeLoader   *theme.Loader
		configWatcher *daemon.ConfigWatcher
		running       atomic.Bool
	)

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()

		// Stop components in GTK main loop context
		glib.IdleAdd(func() {
			if running.Load() {
				if coord != nil {
					coord.CloseAll()
				}
				if configWatcher != nil {
					_ = configWatcher.Stop()
				}
				if player != nil {
					player.Close()
				}
				if server != nil {
					_ = server.Stop()
				}
				app.Quit()
			}
		})
	}()

	// Handle application activation
	app.ConnectActivate(func() {
		if running.Load() {
			logger.Warn("application already running")
			return
		}
		running.Store(true)

		// Every presenter, timer, and animation frame runs on the GTK main
		// loop; this is the post function that gets them there.
		post := func(fn func()) { glib.IdleAdd(fn) }

		// Initialize the layer-shell surface
		surf = surface.New(&app.Application, cfg, post, logger)
		if err := surf.Start(); err != nil {
			logger.Error("failed to start surface", "error", err)
			app.Quit()
			return
		}

		// Load and apply the banner CSS theme
		themeLoader = theme.NewLoader(logger)
		themeLoader.LoadTheme(cfg.Display.Theme)
		themeLoader.Apply(nil)

		// Initialize the banner coordinator
		coord = coordinator.New(cfg, surf, logger)

		// Initialize the sound player
		player = audio.NewPlayer(cfg, logger)
		player.Start()

		// Initialize D-Bus server
		server = dbus.NewServer(logger)
		server.SetServerInfo(dbus.ServerInfo{
			Name:        appName,
			Vendor:      "notica",
			Version:     version,
			SpecVersion: "1.2",
		})

		// A tap on a banner carrying a default action relays ActionInvoked;
		// the tap policy then closes the banner through the normal path.
		surf.SetActionFunc(func(n *model.Notification, key string) {
			if err := server.EmitActionInvoked(n.ID, key); err != nil {
				logger.Warn("failed to emit action signal", "id", n.ID, "action", key, "error", err)
			}
		})

		// The coordinator reports every departed banner; relay it to the bus
		// as NotificationClosed.
		coord.SetClosedFunc(func(n *model.Notification, reason dbus.CloseReason) {
			if err := server.CloseWithReason(n.ID, reason); err != nil {
				logger.Warn("failed to emit close signal", "id", n.ID, "error", err)
			}
		})

		// Connect D-Bus notifications to the coordinator
		server.SetNotifyHandler(func(notification *dbus.DBusNotification, id uint32) {
			n, err := buildNotification(notification, id)
			if err != nil {
				logger.Error("failed to build notification model", "id", id, "error", err)
				return
			}

			// Play notification sound based on urgency, off the dispatch
			// goroutine. A sound-file hint takes precedence over the
			// per-urgency configured sound.
			if !notification.SuppressSound() {
				go playSound(player, n, logger)
			}

			// Schedule presentation on the GTK main loop
			glib.IdleAdd(func() {
				if err := coord.Present(n); err != nil {
					logger.Error("failed to present notification", "id", id, "error", err)
				}
			})
		})

		server.SetCloseHandler(func(id uint32) {
			glib.IdleAdd(func() {
				coord.CloseByID(id, dbus.CloseReasonClosed)
			})
		})

		// Start D-Bus server
		if err := server.Start(); err != nil {
			logger.Error("failed to start D-Bus server", "error", err)
			app.Quit()
			return
		}

		// Initialize config watcher for hot-reload
		configWatcher, err = daemon.NewConfigWatcher(cfg, logger)
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else {
			configWatcher.SetReloadCallback(func(newConfig *config.Config) {
				glib.IdleAdd(func() {
					coord.UpdateConfig(newConfig)
					surf.UpdateConfig(newConfig)
					player.UpdateConfig(newConfig)
					if newConfig.Display.Theme != cfg.Display.Theme {
						themeLoader.LoadTheme(newConfig.Display.Theme)
					}
					cfg = newConfig
					logger.Info("configuration reloaded")
				})
			})
			configWatcher.SetErrorCallback(func(err error) {
				logger.Warn("config change rejected, keeping previous", "error", err)
			})
			if err := configWatcher.Start(ctx); err != nil {
				logger.Warn("failed to start config watcher", "error", err)
			}
		}

		logger.Info("noticad ready", "dbus_interface", dbus.DBusInterface)

		// Create a hidden window to keep the application running
		// (GTK apps quit when all windows are closed)
		keepAliveWindow := gtk.NewWindow()
		keepAliveWindow.SetApplication(&app.Application)
		keepAliveWindow.SetDefaultSize(1, 1)
		keepAliveWindow.SetDecorated(false)
		keepAliveWindow.SetVisible(false)
	})

	// Handle shutdown
	app.ConnectShutdown(func() {
		logger.Info("application shutting down")
		if configWatcher != nil {
			_ = configWatcher.Stop()
		}
		if player != nil {
			player.Close()
		}
		if server != nil {
			_ = server.Stop()
		}
		running.Store(false)
	})

	// Run the application
	status := app.Run(os.Args)

	// Ensure context is cancelled
	cancel()

	if status != 0 {
		logger.Error("application exited with error", "status", status)
		os.Exit(status)
	}

	logger.Info("noticad stopped")
}

// buildNotification converts a raw D-Bus notification into the model the
// coordinator presents.
func buildNotification(d *dbus.DBusNotification, id uint32) (*model.Notification, error) {
	n, err := model.NewNotification()
	if err != nil {
		return nil, err
	}

	n.ID = id
	n.AppName = d.AppName
	n.Summary = d.Summary
	n.Body = d.Body
	n.ExpireTimeout = int(d.ExpireTimeout)
	n.IconPath = d.AppIcon
	if path := d.ImagePath(); path != "" {
		n.IconPath = path
	}
	n.SetUrgency(d.Urgency())
	n.Category = d.Category()
	n.Actions = d.ParsedActions()
	n.ImageData = d.ImageData()
	n.SoundFile = d.SoundFile()
	n.SoundName = d.SoundName()
	n.DesktopEntry = d.DesktopEntry()
	n.Resident = d.Resident()
	n.Transient = d.Transient()

	// Some senders omit the app name; keep the model valid.
	if n.AppName == "" {
		n.AppName = "unknown"
	}
	return n, nil
}

// playSound plays the notification's sound-file hint if present, falling
// back to the configured per-urgency sound.
func playSound(player *audio.Player, n *model.Notification, logger *slog.Logger) {
	if n.SoundFile != "" {
		if err := player.Play(n.SoundFile); err != nil {
			logger.Debug("failed to play sound file hint", "file", n.SoundFile, "error", err)
		}
		return
	}
	if err := player.PlayForUrgency(n.Urgency); err != nil {
		logger.Debug("failed to play urgency sound", "urgency", n.Urgency, "error", err)
	}
}
