package banner

// styleRule consolidates every style-dependent sign decision in one place:
// the exit direction, the stretch trigger, the swipe velocity comparison,
// and the swipe position test all derive from a single sign. Center and
// bottom banners exit upward (negative), top banners exit downward
// (positive).
type styleRule struct {
	exitSign float64
}

var styleRules = map[Style]styleRule{
	StyleCenter: {exitSign: -1},
	StyleBottom: {exitSign: -1},
	StyleTop:    {exitSign: +1},
}

// ruleFor returns the sign rule for a style. Unknown styles behave like
// StyleCenter rather than panicking; the style enum is closed in practice.
func ruleFor(style Style) styleRule {
	if r, ok := styleRules[style]; ok {
		return r
	}
	return styleRules[StyleCenter]
}

// ExitSign is the sign of vertical motion that carries the style off
// screen: negative for the upward-exiting styles, positive for StyleTop.
// Animation strategies use it to place entrance and exit endpoints.
func (s Style) ExitSign() float64 {
	return ruleFor(s).exitSign
}

// shouldStretch reports whether a drag with the given incremental
// translation puts the banner in rubber-band stretch mode: the translation
// points along the exit sign while the offset sits at or past the resting
// edge on that same side.
func (r styleRule) shouldStretch(translation, offset, edge float64) bool {
	return r.exitSign*translation > 0 && r.exitSign*(offset-edge) >= 0
}

// stretchAdjust moves the offset by the damped delta in the style's stretch
// direction: subtracted for upward-exiting styles, added for the downward
// one.
func (r styleRule) stretchAdjust(offset, delta float64) float64 {
	return offset + r.exitSign*delta
}

// swipeVelocityOK reports whether a release velocity is a fling in the exit
// direction faster than the policy minimum.
func (r styleRule) swipeVelocityOK(velocity, minVelocity float64) bool {
	return r.exitSign*velocity > minVelocity
}

// swipeInConstraintOK reports whether the offset has cleared the resting
// edge in the exit direction by at least minDistance.
func (r styleRule) swipeInConstraintOK(offset, edge, minDistance float64) bool {
	return r.exitSign*(offset-edge) >= minDistance
}
