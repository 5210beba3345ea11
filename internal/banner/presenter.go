// Package banner implements the interactive lifecycle of a single on-screen
// notification: entrance, auto-dismiss timing, drag and swipe dismissal with
// rubber-band physics, and exit. Rendering, animation curves, and stacking
// of multiple banners live behind the Container, Strategy, and Delegate
// interfaces.
package banner

import (
	"log/slog"
	"math"
	"time"
)

// Swipe exit durations are proportional to how far off-rest the banner sits
// at release, clamped to keep the exit snappy at any velocity.
const (
	minSwipeDuration = 300 * time.Millisecond
	maxSwipeDuration = 700 * time.Millisecond
)

// Presenter owns one banner from attach to detach. All methods must run on
// the single UI context; timer callbacks are marshalled there by the
// Scheduler, so no field needs a lock.
type Presenter struct {
	attrs     Attributes
	content   Content
	container Container
	delegate  Delegate
	strategy  Strategy
	sched     Scheduler
	logger    *slog.Logger

	rule       styleRule
	constraint *Constraint

	// totalTranslation accumulates drag distance since the last rest
	// position. Seeded to the edge offset and reset back to it on every
	// rubber-band pullback.
	totalTranslation float64

	cancelDismiss CancelFunc
	closing       bool
	closed        bool
}

// New builds a presenter: attaches the content to the container, scopes an
// animation strategy to it, and captures the constraint the strategy
// drives. The caller wires gesture recognizers according to WantsPan and
// WantsTap; a presenter with neither recognizer is still fully closable via
// Close.
func New(attrs Attributes, content Content, container Container, delegate Delegate,
	newStrategy StrategyFactory, sched Scheduler, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Presenter{
		attrs:            attrs,
		content:          content,
		container:        container,
		delegate:         delegate,
		sched:            sched,
		logger:           logger,
		rule:             ruleFor(attrs.Style),
		totalTranslation: attrs.Constraints.EdgeOffset,
	}

	container.Attach(content)
	if lc, ok := content.(Lifecycle); ok {
		lc.WillAppear()
	}

	p.strategy = newStrategy(content, container, attrs)
	p.constraint = p.strategy.Constraint()

	return p
}

// WantsPan reports whether the host should register a pan recognizer.
func (p *Presenter) WantsPan() bool {
	return p.attrs.Interaction.Pan.Enabled
}

// WantsTap reports whether the host should register a tap recognizer. A
// forwarding tap policy means taps never reach the presenter.
func (p *Presenter) WantsTap() bool {
	return p.attrs.Interaction.OnTap != TapForward
}

// Attributes returns the banner's configuration.
func (p *Presenter) Attributes() Attributes {
	return p.attrs
}

// Offset returns the current constraint value. Exposed for hosts and tests.
func (p *Presenter) Offset() float64 {
	return p.constraint.Value()
}

// Constraint returns the position constraint so a host can observe offset
// changes and move the real surface.
func (p *Presenter) Constraint() *Constraint {
	return p.constraint
}

// Display reports the banner active and runs the entrance animation. The
// activation notice reaches the delegate before the animation starts; the
// auto-dismiss deadline is armed only once the entrance completes.
func (p *Presenter) Display() {
	if p.closed || p.closing {
		return
	}
	p.delegate.ChangedToActive(p.attrs)
	p.logger.Debug("banner displaying", "style", p.attrs.Style, "duration", p.attrs.DisplayDuration)
	p.strategy.Show(func() {
		if p.closed || p.closing {
			return
		}
		p.scheduleDismiss()
	})
}

// Close tears the banner down. Promptly skips the exit animation and
// detaches synchronously, used for forced or batch teardown. Otherwise the
// strategy's hide runs first and the detach plus, for user-initiated
// closes, the ClosedByUser notice follow its completion. A second call on
// either path is a no-op.
func (p *Presenter) Close(promptly, userInitiated bool) {
	if p.closed || p.closing {
		return
	}
	if promptly {
		p.teardown(false)
		return
	}
	p.closing = true
	hideUserInitiated := userInitiated
	p.strategy.Hide(func() {
		p.teardown(hideUserInitiated)
	})
}

// ExtendDisplay restarts the auto-dismiss countdown from now, as if the
// banner had just finished its entrance. No-op once the banner is exiting
// or when the display duration is infinite.
func (p *Presenter) ExtendDisplay() {
	if p.closed || p.closing {
		return
	}
	p.scheduleDismiss()
}

// HandleTap dispatches a tap on the banner content per policy.
func (p *Presenter) HandleTap() {
	if p.closed || p.closing {
		return
	}
	switch p.attrs.Interaction.OnTap {
	case TapDelayExit:
		if p.attrs.HasFiniteDuration() {
			p.scheduleDismiss()
		}
	case TapDismiss:
		p.Close(false, true)
		// The original falls through into the no-op default here; treated
		// as intentional.
	default:
	}
}

// HandlePan runs the drag state machine for one classified pan callback.
// Events must carry incremental translation deltas; see PanEvent.
func (p *Presenter) HandlePan(ev PanEvent) {
	if p.closed || p.closing {
		return
	}

	p.container.EndEditing()

	// A drag holds a delay-exit banner open: the deadline is lifted while
	// the finger is down and re-armed in full on release.
	if p.attrs.Interaction.OnTap == TapDelayExit && p.attrs.HasFiniteDuration() {
		switch {
		case ev.Phase == PhaseBegan:
			p.cancelPendingDismiss()
		case ev.Phase.terminal():
			p.scheduleDismiss()
		}
	}

	edge := p.attrs.Constraints.EdgeOffset
	if p.rule.shouldStretch(ev.Translation, p.constraint.Value(), edge) {
		if p.attrs.Interaction.Pan.StretchEnabled {
			p.totalTranslation += ev.Translation
			p.applyStretchOffset()
			if ev.Phase.terminal() {
				p.pullback()
			}
		}
		return
	}

	switch {
	case ev.Phase.terminal():
		p.swipeEnded(ev.Velocity)
	case ev.Phase == PhaseChanged:
		p.constraint.Set(p.constraint.Value() + ev.Translation)
	}
}

// applyStretchOffset moves the constraint by a logarithmically damped step,
// so the banner creeps ever more slowly the harder it is pulled past its
// resting edge.
func (p *Presenter) applyStretchOffset() {
	limit := p.verticalLimit()
	offset := math.Abs(p.totalTranslation) + limit
	delta := 1 + math.Log10(offset/limit)
	p.constraint.Set(p.rule.stretchAdjust(p.constraint.Value(), delta))
}

// swipeEnded decides between completing the swipe and rubber-banding back.
// The swipe completes only when pan dismissal is enabled, the fling is fast
// enough in the exit direction, and the banner has already cleared the
// resting edge by the policy's minimum distance.
func (p *Presenter) swipeEnded(velocity float64) {
	pan := p.attrs.Interaction.Pan
	edge := p.attrs.Constraints.EdgeOffset
	offset := p.constraint.Value()

	if pan.Enabled &&
		p.rule.swipeVelocityOK(velocity, pan.MinVelocity) &&
		p.rule.swipeInConstraintOK(offset, edge, pan.MinDistance) {
		p.stretchOut(swipeDuration(math.Abs(offset), velocity))
		return
	}
	p.pullback()
}

// swipeDuration scales the exit animation to the remaining distance and the
// release velocity, clamped to [minSwipeDuration, maxSwipeDuration].
func swipeDuration(distance, velocity float64) time.Duration {
	v := math.Abs(velocity)
	if v == 0 {
		return maxSwipeDuration
	}
	d := time.Duration(distance / v * float64(time.Second))
	if d < minSwipeDuration {
		return minSwipeDuration
	}
	if d > maxSwipeDuration {
		return maxSwipeDuration
	}
	return d
}

// stretchOut finishes a completed swipe: the strategy carries the banner
// the rest of the way off screen and the teardown runs as user-initiated.
func (p *Presenter) stretchOut(d time.Duration) {
	p.closing = true
	p.logger.Debug("banner swiped out", "style", p.attrs.Style, "duration", d)
	p.strategy.SwipeOut(d, func() {
		p.teardown(true)
	})
}

// pullback rubber-bands the banner to rest and re-seeds the drag
// accumulator.
func (p *Presenter) pullback() {
	p.totalTranslation = p.attrs.Constraints.EdgeOffset
	p.strategy.RubberBandPullback()
}

// scheduleDismiss arms the auto-dismiss deadline, replacing any pending
// one; two schedules in a row leave exactly one timer alive. An infinite
// display duration schedules nothing.
func (p *Presenter) scheduleDismiss() {
	p.cancelPendingDismiss()
	if !p.attrs.HasFiniteDuration() {
		return
	}
	p.cancelDismiss = p.sched.After(p.attrs.DisplayDuration, p.dismissDeadlineReached)
}

func (p *Presenter) dismissDeadlineReached() {
	if p.closed || p.closing {
		return
	}
	p.logger.Debug("banner display duration elapsed", "style", p.attrs.Style)
	p.Close(false, true)
}

func (p *Presenter) cancelPendingDismiss() {
	if p.cancelDismiss != nil {
		p.cancelDismiss()
		p.cancelDismiss = nil
	}
}

// teardown detaches the banner exactly once: timer cancelled, delegate told
// the banner went inactive, content removed, observers released. A timer
// firing mid-close loses the race here, never a double teardown.
func (p *Presenter) teardown(userInitiated bool) {
	if p.closed {
		return
	}
	p.closed = true
	p.closing = true

	p.cancelPendingDismiss()
	p.delegate.ChangedToInactive(p.attrs)
	p.container.Detach(p.content)
	p.constraint.Observe(nil)
	if lc, ok := p.content.(Lifecycle); ok {
		lc.DidDisappear()
	}
	if userInitiated {
		p.delegate.ClosedByUser(p.content)
	}
	p.logger.Debug("banner closed", "style", p.attrs.Style, "user_initiated", userInitiated)
}

// verticalLimit is the damping reference length for the rubber band: the
// container height plus the resting edge offset.
func (p *Presenter) verticalLimit() float64 {
	return p.container.Height() + p.attrs.Constraints.EdgeOffset
}
