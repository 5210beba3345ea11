package banner

import "time"

// Content is whatever gets hosted inside a banner. The presenter treats it
// as opaque; concrete containers know how to attach and render their own
// content types.
type Content interface{}

// Lifecycle is implemented by content that wants to observe being hosted,
// the controller-backed variant. Bare views implement nothing.
type Lifecycle interface {
	// WillAppear runs after the content is attached, before the entrance
	// animation starts.
	WillAppear()
	// DidDisappear runs after the content is detached on final exit.
	DidDisappear()
}

// Container hosts banner content and reports the geometry and focus state
// the presenter's offset math depends on.
type Container interface {
	// Attach adds the content to the container's view tree.
	Attach(Content)
	// Detach removes previously attached content. Called exactly once per
	// presenter, on final exit.
	Detach(Content)
	// Height is the container height in points.
	Height() float64
	// EndEditing defocuses any active text input in the container.
	EndEditing()
}

// Constraint is the live vertical offset driving a banner's on-screen
// position. The presenter and the animation strategy both write it; the
// container observes it to reposition the content. Zero is the resting
// position for an edge offset of zero.
type Constraint struct {
	value    float64
	onChange func(float64)
}

// NewConstraint returns a constraint resting at the given offset.
func NewConstraint(value float64) *Constraint {
	return &Constraint{value: value}
}

// Value returns the current offset.
func (c *Constraint) Value() float64 {
	return c.value
}

// Set updates the offset and notifies the observer, if any.
func (c *Constraint) Set(value float64) {
	c.value = value
	if c.onChange != nil {
		c.onChange(value)
	}
}

// Observe registers the single observer notified on every Set. Passing nil
// removes it; teardown does this so a destroyed surface is never called
// back.
func (c *Constraint) Observe(fn func(float64)) {
	c.onChange = fn
}

// Strategy animates a banner's constraint. The presenter never overlaps
// calls: at most one show, hide, or swipe-out is in flight per strategy,
// and each completion callback fires exactly once on the UI context.
type Strategy interface {
	// Constraint returns the offset constraint this strategy drives. The
	// presenter captures it at construction and manipulates it directly
	// during drags.
	Constraint() *Constraint
	// Show runs the entrance animation.
	Show(done func())
	// Hide runs the exit animation.
	Hide(done func())
	// SwipeOut runs the exit animation over an explicit duration, used when
	// a completed swipe carries its own momentum.
	SwipeOut(d time.Duration, done func())
	// RubberBandPullback animates the constraint back to rest after a
	// released drag that did not complete a swipe.
	RubberBandPullback()
}

// StrategyFactory builds a strategy scoped to one banner.
type StrategyFactory func(content Content, container Container, attrs Attributes) Strategy

// Delegate receives lifecycle transitions from a presenter. It must not
// re-enter the presenter synchronously from these calls in a way that
// triggers a second teardown; calls arrive on the single UI context.
type Delegate interface {
	// ChangedToActive fires when Display is requested, before the entrance
	// animation begins.
	ChangedToActive(Attributes)
	// ChangedToInactive fires once at teardown, on either close path.
	ChangedToInactive(Attributes)
	// ClosedByUser fires after a user-initiated exit finishes, with the
	// content that was dismissed.
	ClosedByUser(Content)
}
