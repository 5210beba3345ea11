package banner

// Phase is the lifecycle stage of a gesture callback. Hosts translate their
// platform recognizer states into these phases before handing events to a
// presenter.
type Phase int

const (
	// PhaseBegan is the first callback of a gesture.
	PhaseBegan Phase = iota
	// PhaseChanged is an intermediate movement callback.
	PhaseChanged
	// PhaseEnded is a normal release.
	PhaseEnded
	// PhaseCancelled means the gesture was taken over by the system.
	PhaseCancelled
	// PhaseFailed means the recognizer gave up on the gesture.
	PhaseFailed
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// terminal reports whether the phase ends the gesture.
func (p Phase) terminal() bool {
	return p == PhaseEnded || p == PhaseCancelled || p == PhaseFailed
}

// PanEvent is one already-classified drag callback. Translation is the
// vertical movement since the previous event, not since the gesture began:
// the host must reset its recognizer's accumulator after every callback so
// each event carries only the incremental delta. Velocity is the vertical
// fling speed at the time of the callback, in points per second. Positive
// values point down the screen.
type PanEvent struct {
	Translation float64
	Velocity    float64
	Phase       Phase
}
