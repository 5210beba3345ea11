package surface

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/notica/notica/internal/banner"
	"github.com/notica/notica/internal/config"
	"github.com/notica/notica/internal/model"
)

// nominalHeight is the assumed banner height for slot spacing until the
// widget has been through a layout pass.
const nominalHeight = 100

// Window is one layer-shell banner window. It implements banner.Container:
// the presenter's constraint drives the window's vertical margin, so the
// entrance, drag, and exit animations all move the real surface.
type Window struct {
	window       *gtk.Window
	box          *gtk.Box
	notification *model.Notification
	cfg          *config.Config
	logger       *slog.Logger

	slot         int
	screenHeight float64
	edgeOffset   float64
	offset       float64 // Current constraint value

	summaryLbl    *gtk.Label
	bodyLbl       *gtk.Label
	appNameLbl    *gtk.Label
	iconImage     *gtk.Image
	stackCountLbl *gtk.Label

	presenter *banner.Presenter
	onAction  func(key string)

	// Drag recognizer state. The presenter consumes per-event deltas, so
	// the cumulative drag offset is differenced here.
	dragLastY    float64
	dragLastTime time.Time
	dragVelocity float64
}

// newWindow builds the banner window for a notification. The window is not
// presented until the presenter attaches its content.
func newWindow(app *gtk.Application, n *model.Notification, cfg *config.Config, slot int, screenHeight float64, logger *slog.Logger) *Window {
	w := &Window{
		notification: n,
		cfg:          cfg,
		logger:       logger,
		slot:         slot,
		screenHeight: screenHeight,
		edgeOffset:   cfg.Display.EdgeOffset,
		offset:       cfg.Display.EdgeOffset,
	}

	w.window = gtk.NewWindow()
	w.window.SetApplication(app)
	w.window.SetDecorated(false)
	w.window.SetResizable(false)
	w.window.SetDefaultSize(cfg.Display.Width, -1)

	layershell.InitForWindow(w.window)
	layershell.SetLayer(w.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(w.window, 0)
	layershell.SetKeyboardMode(w.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(w.window, "notica-banner")

	// Horizontally centered: only the top edge is anchored, the vertical
	// margin is what the animation moves.
	layershell.SetAnchor(w.window, layershell.LayerShellEdgeTop, true)

	w.buildUI()
	w.connectGestures()
	w.applyMargin()

	return w
}

// setPresenter wires gesture events into the presenter. Must be called
// before the window receives input.
func (w *Window) setPresenter(p *banner.Presenter) {
	w.presenter = p
}

// Attach implements banner.Container.
func (w *Window) Attach(banner.Content) {
	w.window.Present()
}

// Detach implements banner.Container.
func (w *Window) Detach(banner.Content) {
	w.window.Close()
}

// Height implements banner.Container: the height of the presentation
// context, used to size the off-screen travel distance.
func (w *Window) Height() float64 {
	return w.screenHeight
}

// EndEditing implements banner.Container. Layer-shell banners never hold
// keyboard focus, so there is nothing to defocus.
func (w *Window) EndEditing() {}

// ObserveOffset registers this window on the presenter's position
// constraint so margin updates follow the animation.
func (w *Window) ObserveOffset(c *banner.Constraint) {
	c.Observe(func(value float64) {
		w.offset = value
		w.applyMargin()
	})
}

// SetSlot moves the window to a new stacking slot.
func (w *Window) SetSlot(slot int) {
	if w.slot == slot {
		return
	}
	w.slot = slot
	w.applyMargin()
}

// SetStackCount updates the duplicate-count badge. A count of one hides it.
func (w *Window) SetStackCount(count int) {
	if w.stackCountLbl == nil {
		return
	}
	if count > 1 {
		w.stackCountLbl.SetText(countBadge(count))
		w.stackCountLbl.SetVisible(true)
	} else {
		w.stackCountLbl.SetVisible(false)
	}
}

// applyMargin converts the constraint offset into a layer-shell top margin.
// The offset is a downward displacement: the resting value equals the
// configured edge offset, and the slide strategy parks it off-screen before
// the entrance.
func (w *Window) applyMargin() {
	delta := w.offset - w.edgeOffset
	margin := w.restingTop() + delta
	layershell.SetMargin(w.window, layershell.LayerShellEdgeTop, int(margin))
}

// restingTop returns the top margin of the slot's resting position.
func (w *Window) restingTop() float64 {
	spacing := float64(w.slot) * (w.bannerHeight() + float64(w.cfg.Display.Gap))
	switch w.cfg.Style() {
	case banner.StyleBottom:
		return w.screenHeight - w.bannerHeight() - w.edgeOffset - spacing
	case banner.StyleCenter:
		return (w.screenHeight-w.bannerHeight())/2 + spacing
	default:
		return w.edgeOffset + spacing
	}
}

func (w *Window) bannerHeight() float64 {
	if h := w.window.AllocatedHeight(); h > 0 {
		return float64(h)
	}
	return nominalHeight
}

func (w *Window) buildUI() {
	w.box = gtk.NewBox(gtk.OrientationVertical, 6)
	w.box.AddCSSClass("notica-banner")
	w.box.AddCSSClass(urgencyClass(w.notification.Urgency))
	w.box.SetMarginTop(8)
	w.box.SetMarginBottom(8)
	w.box.SetMarginStart(12)
	w.box.SetMarginEnd(12)

	header := gtk.NewBox(gtk.OrientationHorizontal, 8)
	header.AddCSSClass("notica-header")

	w.iconImage = gtk.NewImage()
	w.iconImage.SetPixelSize(48)
	if w.notification.IconPath != "" {
		w.iconImage.SetFromIconName(w.notification.IconPath)
	} else {
		w.iconImage.SetFromIconName("dialog-information")
	}
	header.Append(w.iconImage)

	w.summaryLbl = gtk.NewLabel(w.notification.Summary)
	w.summaryLbl.AddCSSClass("notica-summary")
	w.summaryLbl.SetXAlign(0)
	w.summaryLbl.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	w.summaryLbl.SetMaxWidthChars(40)
	w.summaryLbl.SetHExpand(true)
	header.Append(w.summaryLbl)

	w.stackCountLbl = gtk.NewLabel("")
	w.stackCountLbl.AddCSSClass("notica-stack-count")
	w.stackCountLbl.SetVisible(false)
	header.Append(w.stackCountLbl)

	w.box.Append(header)

	if w.notification.Body != "" {
		w.bodyLbl = gtk.NewLabel("")
		w.bodyLbl.AddCSSClass("notica-body")
		w.bodyLbl.SetXAlign(0)
		w.bodyLbl.SetWrap(true)
		w.bodyLbl.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
		w.bodyLbl.SetMaxWidthChars(50)
		if strings.Contains(w.notification.Body, "<") {
			w.bodyLbl.SetMarkup(w.notification.Body)
		} else {
			w.bodyLbl.SetText(w.notification.Body)
		}
		w.box.Append(w.bodyLbl)
	}

	w.appNameLbl = gtk.NewLabel(w.notification.AppName)
	w.appNameLbl.AddCSSClass("notica-appname")
	w.appNameLbl.SetXAlign(0)
	w.box.Append(w.appNameLbl)

	w.window.SetChild(w.box)
}

// connectGestures wires the drag and click recognizers into presenter pan
// and tap events.
func (w *Window) connectGestures() {
	drag := gtk.NewGestureDrag()
	drag.ConnectDragBegin(func(x, y float64) {
		if w.presenter == nil || !w.presenter.WantsPan() {
			return
		}
		w.dragLastY = 0
		w.dragLastTime = time.Now()
		w.dragVelocity = 0
		w.presenter.HandlePan(banner.PanEvent{Phase: banner.PhaseBegan})
	})
	drag.ConnectDragUpdate(func(x, y float64) {
		if w.presenter == nil || !w.presenter.WantsPan() {
			return
		}
		delta := y - w.dragLastY
		now := time.Now()
		if dt := now.Sub(w.dragLastTime).Seconds(); dt > 0 {
			w.dragVelocity = delta / dt
		}
		w.dragLastY = y
		w.dragLastTime = now
		w.presenter.HandlePan(banner.PanEvent{
			Translation: delta,
			Velocity:    w.dragVelocity,
			Phase:       banner.PhaseChanged,
		})
	})
	drag.ConnectDragEnd(func(x, y float64) {
		if w.presenter == nil || !w.presenter.WantsPan() {
			return
		}
		w.presenter.HandlePan(banner.PanEvent{
			Translation: y - w.dragLastY,
			Velocity:    w.dragVelocity,
			Phase:       banner.PhaseEnded,
		})
	})
	w.window.AddController(drag)

	click := gtk.NewGestureClick()
	click.SetButton(1)
	click.ConnectReleased(func(nPress int, x, y float64) {
		if w.presenter == nil {
			return
		}
		if w.onAction != nil {
			if a, ok := w.notification.DefaultAction(); ok {
				w.onAction(a.Key)
			}
		}
		if w.presenter.WantsTap() {
			w.presenter.HandleTap()
		}
	})
	w.window.AddController(click)
}

func urgencyClass(urgency int) string {
	switch urgency {
	case model.UrgencyLow:
		return "urgency-low"
	case model.UrgencyCritical:
		return "urgency-critical"
	default:
		return "urgency-normal"
	}
}

func countBadge(count int) string {
	return fmt.Sprintf("(%d)", count)
}
