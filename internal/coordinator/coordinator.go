// Package coordinator sequences banners across the visible slots: it caps
// how many are on screen, queues the overflow by urgency, stacks duplicates,
// and reports the freedesktop close reason when a banner leaves.
//
// The coordinator is not safe for concurrent use. Every method must be
// called from the UI context; the daemon marshals D-Bus callbacks onto it.
package coordinator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/notica/notica/internal/banner"
	"github.com/notica/notica/internal/config"
	"github.com/notica/notica/internal/dbus"
	"github.com/notica/notica/internal/model"
)

// Host mounts notification content into a surface. Mount returns a live
// presenter whose entrance animation the coordinator starts; Reslot moves a
// visible notification to a new stacking slot; Unmount releases host
// bookkeeping once the banner has left; SetStackCount updates the duplicate
// badge.
type Host interface {
	Mount(n *model.Notification, slot int, attrs banner.Attributes, delegate banner.Delegate) (*banner.Presenter, error)
	Reslot(n *model.Notification, slot int)
	Unmount(n *model.Notification)
	SetStackCount(n *model.Notification, count int)
}

// ClosedFunc is called when a notification finally leaves the screen.
type ClosedFunc func(n *model.Notification, reason dbus.CloseReason)

// entry is a visible banner.
type entry struct {
	notification *model.Notification
	presenter    *banner.Presenter
	slot         int
	stackCount   int
	expiresAt    time.Time // Zero means never expires

	// reason, when non-zero, overrides the inferred close reason.
	reason dbus.CloseReason
	// replaced suppresses the closed callback when a banner is swapped
	// out for a newer notification with the same D-Bus ID.
	replaced bool
}

// Coordinator owns the visible banner set and the pending queue.
type Coordinator struct {
	cfg      *config.Config
	host     Host
	logger   *slog.Logger
	onClosed ClosedFunc

	visible []*entry
	queue   []*model.Notification // Urgency-descending, FIFO within an urgency

	now func() time.Time
}

// New creates a Coordinator presenting through the given host.
func New(cfg *config.Config, host Host, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Coordinator{
		cfg:    cfg,
		host:   host,
		logger: logger,
		now:    time.Now,
	}
}

// SetClosedFunc sets the callback invoked when a notification leaves the
// screen or is dropped from the queue.
func (c *Coordinator) SetClosedFunc(fn ClosedFunc) {
	c.onClosed = fn
}

// Present shows a notification, queues it, or stacks it onto a visible
// duplicate.
func (c *Coordinator) Present(n *model.Notification) error {
	// A repeated D-Bus ID replaces the existing banner in place. The
	// replacement takes the freed slot before the queue may drain into it;
	// departed skips draining for replaced entries.
	if e := c.findByDBusID(n.ID); e != nil {
		e.replaced = true
		e.presenter.Close(true, false)
		err := c.mount(n)
		c.drainQueue()
		return err
	}

	if c.cfg.Behavior.StackDuplicates && !n.Transient {
		if e := c.findByStackKey(n.StackKey()); e != nil {
			e.stackCount++
			e.expiresAt = c.expiry(n.Urgency)
			e.presenter.ExtendDisplay()
			c.host.SetStackCount(e.notification, e.stackCount)
			c.logger.Debug("stacked duplicate notification",
				"id", n.ID,
				"onto_id", e.notification.ID,
				"stack_count", e.stackCount,
			)
			c.emitClosed(n, dbus.CloseReasonDismissed)
			return nil
		}
	}

	if len(c.visible) < c.cfg.Display.MaxVisible {
		return c.mount(n)
	}

	// A critical notification preempts the least urgent visible banner.
	if n.Urgency >= model.UrgencyCritical {
		if victim := c.leastUrgentVisible(); victim != nil && victim.notification.Urgency < model.UrgencyCritical {
			victim.reason = dbus.CloseReasonExpired
			victim.presenter.Close(true, false)
			return c.mount(n)
		}
	}

	c.enqueue(n)
	c.logger.Debug("queued notification",
		"id", n.ID,
		"urgency", n.Urgency,
		"queue_size", len(c.queue),
	)
	return nil
}

// CloseByID closes a visible or queued notification by its D-Bus ID with the
// given reason. Returns false when the ID is unknown.
func (c *Coordinator) CloseByID(id uint32, reason dbus.CloseReason) bool {
	if e := c.findByDBusID(id); e != nil {
		e.reason = reason
		e.presenter.Close(false, false)
		return true
	}
	return c.dropQueued(func(n *model.Notification) bool { return n.ID == id }, reason)
}

// CloseByNoticaID closes a visible or queued notification by its ULID.
func (c *Coordinator) CloseByNoticaID(id string, reason dbus.CloseReason) bool {
	for _, e := range c.visible {
		if e.notification.NoticaID == id {
			e.reason = reason
			e.presenter.Close(false, false)
			return true
		}
	}
	return c.dropQueued(func(n *model.Notification) bool { return n.NoticaID == id }, reason)
}

// CloseAll dismisses every visible banner promptly and drops the queue.
func (c *Coordinator) CloseAll() {
	dropped := c.queue
	c.queue = nil
	for _, n := range dropped {
		c.emitClosed(n, dbus.CloseReasonDismissed)
	}

	snapshot := append([]*entry(nil), c.visible...)
	for _, e := range snapshot {
		e.reason = dbus.CloseReasonDismissed
		e.presenter.Close(true, false)
	}
}

// ActiveCount returns the number of visible banners.
func (c *Coordinator) ActiveCount() int { return len(c.visible) }

// QueuedCount returns the number of notifications waiting for a slot.
func (c *Coordinator) QueuedCount() int { return len(c.queue) }

// TotalCount returns visible plus queued notifications.
func (c *Coordinator) TotalCount() int { return len(c.visible) + len(c.queue) }

// ActiveNoticaIDs returns the ULIDs of all visible and queued notifications.
func (c *Coordinator) ActiveNoticaIDs() []string {
	ids := make([]string, 0, c.TotalCount())
	for _, e := range c.visible {
		ids = append(ids, e.notification.NoticaID)
	}
	for _, n := range c.queue {
		ids = append(ids, n.NoticaID)
	}
	return ids
}

// UpdateConfig swaps the configuration, used on hot reload. Visible banners
// keep their current attributes; freed slots drain the queue.
func (c *Coordinator) UpdateConfig(cfg *config.Config) {
	old := c.cfg.Display.MaxVisible
	c.cfg = cfg
	c.logger.Debug("coordinator config updated",
		"old_max_visible", old,
		"new_max_visible", cfg.Display.MaxVisible,
	)
	c.drainQueue()
	// A lowered max_visible does not evict banners already on screen; they
	// leave on their own and new ones respect the limit.
}

func (c *Coordinator) mount(n *model.Notification) error {
	attrs := c.cfg.AttributesFor(n.Urgency)
	e := &entry{
		notification: n,
		slot:         len(c.visible),
		stackCount:   1,
		expiresAt:    c.expiry(n.Urgency),
	}

	p, err := c.host.Mount(n, e.slot, attrs, &entryDelegate{c: c, e: e})
	if err != nil {
		return fmt.Errorf("failed to mount notification %d: %w", n.ID, err)
	}
	e.presenter = p
	c.visible = append(c.visible, e)
	p.Display()

	c.logger.Debug("presented notification",
		"id", n.ID,
		"notica_id", n.NoticaID,
		"slot", e.slot,
		"urgency", n.Urgency,
		"visible", len(c.visible),
	)
	return nil
}

func (c *Coordinator) expiry(urgency int) time.Time {
	if d := c.cfg.TimeoutForUrgency(urgency); d > 0 {
		return c.now().Add(d)
	}
	return time.Time{}
}

func (c *Coordinator) findByDBusID(id uint32) *entry {
	for _, e := range c.visible {
		if e.notification.ID == id {
			return e
		}
	}
	return nil
}

func (c *Coordinator) findByStackKey(key string) *entry {
	for _, e := range c.visible {
		if !e.notification.Transient && e.notification.StackKey() == key {
			return e
		}
	}
	return nil
}

func (c *Coordinator) leastUrgentVisible() *entry {
	var victim *entry
	for _, e := range c.visible {
		if victim == nil || e.notification.Urgency < victim.notification.Urgency {
			victim = e
		}
	}
	return victim
}

// enqueue inserts by urgency, keeping arrival order within an urgency level.
func (c *Coordinator) enqueue(n *model.Notification) {
	at := len(c.queue)
	for i, queued := range c.queue {
		if n.Urgency > queued.Urgency {
			at = i
			break
		}
	}
	c.queue = append(c.queue, nil)
	copy(c.queue[at+1:], c.queue[at:])
	c.queue[at] = n
}

func (c *Coordinator) dropQueued(match func(*model.Notification) bool, reason dbus.CloseReason) bool {
	for i, n := range c.queue {
		if match(n) {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			c.emitClosed(n, reason)
			return true
		}
	}
	return false
}

// drainQueue fills free slots from the front of the queue.
func (c *Coordinator) drainQueue() {
	for len(c.visible) < c.cfg.Display.MaxVisible && len(c.queue) > 0 {
		n := c.queue[0]
		c.queue = c.queue[1:]
		if err := c.mount(n); err != nil {
			c.logger.Warn("failed to present queued notification", "id", n.ID, "error", err)
		}
	}
}

// departed finalizes an entry whose banner has left the screen.
func (c *Coordinator) departed(e *entry) {
	at := -1
	for i, candidate := range c.visible {
		if candidate == e {
			at = i
			break
		}
	}
	if at < 0 {
		return
	}
	c.visible = append(c.visible[:at], c.visible[at+1:]...)
	c.host.Unmount(e.notification)

	if !e.replaced {
		c.emitClosed(e.notification, c.resolveReason(e))
	}

	for i, remaining := range c.visible {
		if remaining.slot != i {
			remaining.slot = i
			c.host.Reslot(remaining.notification, i)
		}
	}
	// Replaced entries leave their slot to the incoming replacement, which
	// Present mounts before draining.
	if !e.replaced {
		c.drainQueue()
	}
}

// resolveReason infers why a banner left when no explicit reason was set:
// past its deadline means it expired, otherwise the user dismissed it.
func (c *Coordinator) resolveReason(e *entry) dbus.CloseReason {
	if e.reason != 0 {
		return e.reason
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		return dbus.CloseReasonExpired
	}
	return dbus.CloseReasonDismissed
}

func (c *Coordinator) emitClosed(n *model.Notification, reason dbus.CloseReason) {
	c.logger.Debug("notification closed", "id", n.ID, "reason", reason.String())
	if c.onClosed != nil {
		c.onClosed(n, reason)
	}
}

// entryDelegate routes one banner's state changes back to the coordinator.
type entryDelegate struct {
	c *Coordinator
	e *entry
}

func (d *entryDelegate) ChangedToActive(attrs banner.Attributes) {
	d.c.logger.Debug("banner active", "id", d.e.notification.ID, "style", attrs.Style)
}

func (d *entryDelegate) ChangedToInactive(banner.Attributes) {
	d.c.departed(d.e)
}

func (d *entryDelegate) ClosedByUser(banner.Content) {
	d.c.logger.Debug("banner closed by user", "id", d.e.notification.ID)
}
