// Package surface presents banners as GTK4 layer-shell windows on Wayland
// compositors. Each notification gets its own window whose vertical margin
// is driven by the presenter's position constraint.
package surface

import (
	"fmt"
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/notica/notica/internal/animation"
	"github.com/notica/notica/internal/banner"
	"github.com/notica/notica/internal/config"
	"github.com/notica/notica/internal/model"
)

// fallbackScreenHeight is used when no monitor geometry is available.
const fallbackScreenHeight = 1080

// Surface mounts banners into layer-shell windows. It implements
// coordinator.Host and must only be used from the GTK main loop.
type Surface struct {
	app    *gtk.Application
	cfg    *config.Config
	logger *slog.Logger

	clock animation.Clock
	sched banner.Scheduler

	windows      map[string]*Window // Keyed by notica ULID
	screenHeight float64

	actionFunc func(n *model.Notification, key string)
}

// New creates a Surface. The post function marshals callbacks onto the GTK
// main loop; both the animation clock and the dismiss scheduler deliver
// through it.
func New(app *gtk.Application, cfg *config.Config, post func(func()), logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{
		app:          app,
		cfg:          cfg,
		logger:       logger,
		clock:        animation.NewTickerClock(post),
		sched:        banner.NewTimerScheduler(post),
		windows:      make(map[string]*Window),
		screenHeight: fallbackScreenHeight,
	}
}

// SetActionFunc sets the callback invoked when a tap activates a
// notification's default action. The tap's dismiss policy still applies
// afterwards.
func (s *Surface) SetActionFunc(fn func(n *model.Notification, key string)) {
	s.actionFunc = fn
}

// Start resolves the display geometry. Must be called once GTK is
// initialized.
func (s *Surface) Start() error {
	display := gdk.DisplayGetDefault()
	if display == nil {
		return fmt.Errorf("no display available")
	}

	monitors := display.Monitors()
	if monitors.NItems() > 0 {
		if mon, ok := monitors.Item(0).Cast().(*gdk.Monitor); ok {
			geo := mon.Geometry()
			if h := geo.Height(); h > 0 {
				s.screenHeight = float64(h)
			}
		}
	}

	s.logger.Info("surface started", "screen_height", s.screenHeight)
	return nil
}

// Mount implements coordinator.Host. It builds the banner window, creates
// the presenter with the slide strategy, and wires gestures through.
func (s *Surface) Mount(n *model.Notification, slot int, attrs banner.Attributes, delegate banner.Delegate) (*banner.Presenter, error) {
	w := newWindow(s.app, n, s.cfg, slot, s.screenHeight, s.logger)

	p := banner.New(attrs, n, w, delegate, animation.Factory(s.clock), s.sched, s.logger)
	w.setPresenter(p)
	w.ObserveOffset(p.Constraint())
	if s.actionFunc != nil {
		w.onAction = func(key string) { s.actionFunc(n, key) }
	}

	s.windows[n.NoticaID] = w
	return p, nil
}

// Reslot implements coordinator.Host.
func (s *Surface) Reslot(n *model.Notification, slot int) {
	if w, ok := s.windows[n.NoticaID]; ok {
		w.SetSlot(slot)
	}
}

// SetStackCount implements coordinator.Host.
func (s *Surface) SetStackCount(n *model.Notification, count int) {
	if w, ok := s.windows[n.NoticaID]; ok {
		w.SetStackCount(count)
	}
}

// Unmount implements coordinator.Host.
func (s *Surface) Unmount(n *model.Notification) {
	delete(s.windows, n.NoticaID)
}

// UpdateConfig swaps the configuration for subsequently mounted banners.
func (s *Surface) UpdateConfig(cfg *config.Config) {
	s.cfg = cfg
}
