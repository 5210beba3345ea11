// Package animation provides the concrete slide strategy driving a
// banner's offset constraint: eased entrance and exit, a velocity-matched
// swipe-out, and the rubber-band pullback. The presenter decides when to
// animate; this package only decides how the constraint moves.
package animation

import (
	"math"
	"time"

	"github.com/notica/notica/internal/banner"
)

// Default animation lengths. SwipeOut always receives its duration from the
// presenter's velocity math.
const (
	ShowDuration     = 400 * time.Millisecond
	HideDuration     = 300 * time.Millisecond
	PullbackDuration = 350 * time.Millisecond
)

// Slide animates a banner between its off-screen and resting offsets along
// the style's travel axis.
type Slide struct {
	container  banner.Container
	attrs      banner.Attributes
	constraint *banner.Constraint
	clock      Clock

	// seq invalidates superseded animations: a frame whose sequence no
	// longer matches stops without completing.
	seq int
}

// Factory returns a banner.StrategyFactory building Slide strategies on the
// given clock.
func Factory(clock Clock) banner.StrategyFactory {
	return func(_ banner.Content, container banner.Container, attrs banner.Attributes) banner.Strategy {
		return NewSlide(container, attrs, clock)
	}
}

// NewSlide builds a slide strategy with the constraint parked at the
// entrance offset, fully off screen.
func NewSlide(container banner.Container, attrs banner.Attributes, clock Clock) *Slide {
	s := &Slide{
		container: container,
		attrs:     attrs,
		clock:     clock,
	}
	s.constraint = banner.NewConstraint(s.entranceOffset())
	return s
}

// Constraint returns the offset constraint this strategy drives.
func (s *Slide) Constraint() *banner.Constraint {
	return s.constraint
}

// Show eases the banner in from its entrance side.
func (s *Slide) Show(done func()) {
	s.animate(s.restOffset(), ShowDuration, easeOutCubic, done)
}

// Hide eases the banner out along its exit side.
func (s *Slide) Hide(done func()) {
	s.animate(s.exitOffset(), HideDuration, easeInCubic, done)
}

// SwipeOut carries the banner out over the presenter-computed duration.
// The curve starts fast to match the momentum of the fling.
func (s *Slide) SwipeOut(d time.Duration, done func()) {
	s.animate(s.exitOffset(), d, easeOutQuad, done)
}

// RubberBandPullback settles the banner back to rest.
func (s *Slide) RubberBandPullback() {
	s.animate(s.restOffset(), PullbackDuration, easeOutExpo, nil)
}

func (s *Slide) restOffset() float64 {
	return s.attrs.Constraints.EdgeOffset
}

// travel is the full on/off-screen distance for this banner.
func (s *Slide) travel() float64 {
	return s.container.Height() + s.attrs.Constraints.EdgeOffset
}

// entranceOffset is off screen on the side opposite the exit.
func (s *Slide) entranceOffset() float64 {
	return -s.attrs.Style.ExitSign() * s.travel()
}

// exitOffset is off screen on the exit side.
func (s *Slide) exitOffset() float64 {
	return s.attrs.Style.ExitSign() * s.travel()
}

// animate replaces any in-flight animation with a new tween toward to. The
// completion callback fires exactly once, only if the animation runs to its
// end without being superseded.
func (s *Slide) animate(to float64, d time.Duration, ease func(float64) float64, done func()) {
	s.seq++
	seq := s.seq
	from := s.constraint.Value()

	if d <= 0 || from == to {
		s.constraint.Set(to)
		if done != nil {
			done()
		}
		return
	}

	s.clock.Animate(func(elapsed time.Duration) bool {
		if seq != s.seq {
			return false
		}
		t := float64(elapsed) / float64(d)
		if t >= 1 {
			s.constraint.Set(to)
			if done != nil {
				done()
			}
			return false
		}
		s.constraint.Set(from + (to-from)*ease(t))
		return true
	})
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func easeInCubic(t float64) float64 {
	return t * t * t
}

func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// easeOutExpo settles exponentially with no overshoot, the rubber-band
// release feel.
func easeOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Exp2(-10*t)
}
