package banner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRules_MirroredSignConventions(t *testing.T) {
	// Every style-dependent test must agree on one exit sign: the stretch
	// trigger, the swipe velocity comparison, and the swipe position test
	// all point the same way, mirrored between the upward styles and the
	// downward one.
	tests := []struct {
		name          string
		style         Style
		stretchTrans  float64 // translation that triggers stretch from rest
		exitVelocity  float64 // fling that passes the velocity test
		clearedOffset float64 // offset that passes the position test
	}{
		{"center exits up", StyleCenter, -10, -800, -120},
		{"bottom exits up", StyleBottom, -10, -800, -120},
		{"top exits down", StyleTop, 10, 800, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ruleFor(tt.style)

			assert.True(t, r.shouldStretch(tt.stretchTrans, 0, 0))
			assert.False(t, r.shouldStretch(-tt.stretchTrans, 0, 0),
				"opposite translation must not stretch")

			assert.True(t, r.swipeVelocityOK(tt.exitVelocity, 60))
			assert.False(t, r.swipeVelocityOK(-tt.exitVelocity, 60),
				"opposite fling must not pass")
			assert.False(t, r.swipeVelocityOK(tt.exitVelocity/100, 60),
				"slow fling must not pass")

			assert.True(t, r.swipeInConstraintOK(tt.clearedOffset, 0, 50))
			assert.False(t, r.swipeInConstraintOK(-tt.clearedOffset, 0, 50),
				"offset on the wrong side must not pass")
			assert.False(t, r.swipeInConstraintOK(tt.clearedOffset/12, 0, 50),
				"offset barely past the edge must not pass")
		})
	}
}

func TestRules_StretchRequiresOffsetAtOrPastEdge(t *testing.T) {
	r := ruleFor(StyleCenter)

	// At rest on a non-zero edge the pull still stretches.
	assert.True(t, r.shouldStretch(-5, 40, 40))
	assert.True(t, r.shouldStretch(-5, 30, 40))

	// Once the banner has been free-dragged past the edge the pull is a
	// plain drag, not a stretch.
	assert.False(t, r.shouldStretch(-5, 50, 40))
}

func TestRules_StretchAdjustDirection(t *testing.T) {
	up := ruleFor(StyleBottom)
	down := ruleFor(StyleTop)

	assert.InDelta(t, -1.5, up.stretchAdjust(0, 1.5), 1e-9, "upward styles subtract")
	assert.InDelta(t, 1.5, down.stretchAdjust(0, 1.5), 1e-9, "the downward style adds")
}

func TestRules_UnknownStyleFallsBackToCenter(t *testing.T) {
	assert.Equal(t, ruleFor(StyleCenter), ruleFor(Style(99)))
}
