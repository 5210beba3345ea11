package banner

import "time"

// Style determines where a banner rests on screen and the direction it
// travels when entering, exiting, and being dragged. It is fixed for the
// lifetime of a presenter and drives every sign convention in the offset
// math.
type Style int

const (
	// StyleCenter slides up into the vertical center of the container.
	StyleCenter Style = iota
	// StyleTop slides down from the top edge of the container.
	StyleTop
	// StyleBottom slides up from the bottom edge of the container.
	StyleBottom
)

// String returns the string representation of the style.
func (s Style) String() string {
	switch s {
	case StyleCenter:
		return "center"
	case StyleTop:
		return "top"
	case StyleBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// TapAction selects what a tap on the banner content does.
type TapAction int

const (
	// TapNone leaves taps to custom handling outside the presenter.
	TapNone TapAction = iota
	// TapDismiss closes the banner immediately.
	TapDismiss
	// TapDelayExit reschedules the auto-dismiss deadline, extending the
	// banner's visible time. Only meaningful with a finite display duration.
	TapDelayExit
	// TapForward passes taps through to whatever sits under the banner.
	// A presenter with this action registers no tap recognizer at all.
	TapForward
)

// String returns the string representation of the tap action.
func (a TapAction) String() string {
	switch a {
	case TapNone:
		return "none"
	case TapDismiss:
		return "dismiss"
	case TapDelayExit:
		return "delay-exit"
	case TapForward:
		return "forward"
	default:
		return "unknown"
	}
}

// PanPolicy configures drag interaction on a banner.
type PanPolicy struct {
	// Enabled registers the pan recognizer and permits swipe dismissal.
	Enabled bool
	// StretchEnabled permits the rubber-band stretch when the banner is
	// dragged past its resting edge against the exit direction.
	StretchEnabled bool
	// MinVelocity is the fling speed (points per second, magnitude) a
	// release must exceed in the exit direction to complete a swipe.
	MinVelocity float64
	// MinDistance is how far past the resting edge the banner must sit at
	// release, in the exit direction, for the swipe to complete.
	MinDistance float64
}

// Interaction groups the gesture policies of a banner.
type Interaction struct {
	Pan   PanPolicy
	OnTap TapAction
}

// Constraints positions the banner inside its container.
type Constraints struct {
	// EdgeOffset is the resting offset from the style's screen edge.
	EdgeOffset float64
	// KeyboardBound keeps the banner above an on-screen keyboard.
	KeyboardBound bool
}

// DurationInfinite marks a banner that never auto-dismisses.
const DurationInfinite time.Duration = 0

// Attributes is the immutable per-banner configuration. A presenter copies
// it at construction and never mutates it.
type Attributes struct {
	// DisplayDuration is how long the banner stays up before auto-dismiss.
	// DurationInfinite (or any non-positive value) means the banner never
	// dismisses on its own.
	DisplayDuration time.Duration
	Style           Style
	Interaction     Interaction
	Constraints     Constraints
}

// HasFiniteDuration reports whether the banner auto-dismisses.
func (a Attributes) HasFiniteDuration() bool {
	return a.DisplayDuration > 0
}

// DefaultAttributes returns attributes for a tap-to-dismiss, swipeable
// banner in the given style.
func DefaultAttributes(style Style) Attributes {
	return Attributes{
		DisplayDuration: 5 * time.Second,
		Style:           style,
		Interaction: Interaction{
			Pan: PanPolicy{
				Enabled:        true,
				StretchEnabled: true,
				MinVelocity:    60,
				MinDistance:    50,
			},
			OnTap: TapDismiss,
		},
	}
}
