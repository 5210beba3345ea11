package animation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notica/notica/internal/banner"
)

type stubContainer struct{ height float64 }

func (c *stubContainer) Attach(banner.Content) {}
func (c *stubContainer) Detach(banner.Content) {}
func (c *stubContainer) Height() float64       { return c.height }
func (c *stubContainer) EndEditing()           {}

func newSlide(style banner.Style, edge float64) (*Slide, *ManualClock) {
	attrs := banner.DefaultAttributes(style)
	attrs.Constraints.EdgeOffset = edge
	clock := NewManualClock()
	return NewSlide(&stubContainer{height: 800}, attrs, clock), clock
}

func TestSlide_StartsOffScreenOppositeExit(t *testing.T) {
	// Center exits upward, so it enters from below.
	s, _ := newSlide(banner.StyleCenter, 0)
	assert.InDelta(t, 800, s.Constraint().Value(), 1e-9)

	// Top exits downward, so it enters from above.
	s, _ = newSlide(banner.StyleTop, 0)
	assert.InDelta(t, -800, s.Constraint().Value(), 1e-9)
}

func TestSlide_ShowSettlesAtRestAndCompletesOnce(t *testing.T) {
	s, clock := newSlide(banner.StyleCenter, 10)

	completions := 0
	s.Show(func() { completions++ })

	mid := s.Constraint().Value()
	clock.Step(ShowDuration / 2)
	assert.Less(t, s.Constraint().Value(), mid, "moving toward rest")
	assert.Equal(t, 0, completions)

	clock.Step(ShowDuration)
	assert.InDelta(t, 10, s.Constraint().Value(), 1e-9)
	assert.Equal(t, 1, completions)

	clock.Step(ShowDuration)
	assert.Equal(t, 1, completions, "completion fires exactly once")
	assert.Equal(t, 0, clock.Running())
}

func TestSlide_HideLeavesOnExitSide(t *testing.T) {
	s, clock := newSlide(banner.StyleCenter, 0)
	s.Show(nil)
	clock.Step(2 * ShowDuration)
	require.InDelta(t, 0, s.Constraint().Value(), 1e-9)

	done := false
	s.Hide(func() { done = true })
	clock.Step(2 * HideDuration)

	assert.True(t, done)
	assert.InDelta(t, -800, s.Constraint().Value(), 1e-9, "center exits upward")
}

func TestSlide_SwipeOutHonorsGivenDuration(t *testing.T) {
	s, clock := newSlide(banner.StyleTop, 0)
	s.Show(nil)
	clock.Step(2 * ShowDuration)

	done := false
	s.SwipeOut(300*time.Millisecond, func() { done = true })

	clock.Step(200 * time.Millisecond)
	assert.False(t, done)
	clock.Step(200 * time.Millisecond)
	assert.True(t, done)
	assert.InDelta(t, 800, s.Constraint().Value(), 1e-9, "top exits downward")
}

func TestSlide_PullbackReturnsToRest(t *testing.T) {
	s, clock := newSlide(banner.StyleCenter, 0)
	s.Show(nil)
	clock.Step(2 * ShowDuration)

	// Simulate a released drag that left the banner off rest.
	s.Constraint().Set(35)
	s.RubberBandPullback()
	clock.Step(2 * PullbackDuration)

	assert.InDelta(t, 0, s.Constraint().Value(), 1e-9)
}

func TestSlide_NewAnimationSupersedesOldWithoutCompleting(t *testing.T) {
	s, clock := newSlide(banner.StyleCenter, 0)

	showDone := false
	s.Show(func() { showDone = true })
	clock.Step(ShowDuration / 4)

	hideDone := false
	s.Hide(func() { hideDone = true })
	clock.Step(2 * HideDuration)

	assert.False(t, showDone, "superseded show must not complete")
	assert.True(t, hideDone)
	assert.Equal(t, 0, clock.Running())
}

func TestSlide_ZeroDurationCompletesImmediately(t *testing.T) {
	s, _ := newSlide(banner.StyleCenter, 0)
	done := false
	s.SwipeOut(0, func() { done = true })
	assert.True(t, done)
	assert.InDelta(t, -800, s.Constraint().Value(), 1e-9)
}
