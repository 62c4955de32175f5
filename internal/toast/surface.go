package toast

import "time"

// Surface is the display region a Manager renders into.
// Callbacks passed to ScheduleAfter must run one at a time and never from
// inside a Surface method called by the Manager.
type Surface interface {
	// Attach adds the element for n to the display.
	Attach(n *Notification) error
	// Detach removes the element for n. Detaching an element that is not attached is a no-op.
	Detach(n *Notification)
	// ScheduleAfter runs fn once d has elapsed.
	ScheduleAfter(d time.Duration, fn func()) CancelToken
	// Cancel prevents a scheduled callback from running. Unknown or spent tokens are ignored.
	Cancel(token CancelToken)
}

// Transitioner is implemented by surfaces that animate phase changes.
// Transition is called when n enters PhaseVisible or PhaseDismissing.
type Transitioner interface {
	Transition(n *Notification, phase Phase)
}

// SurfaceError represents a failure to render on a surface.
type SurfaceError struct {
	Message string
	Cause   error
}

func (e *SurfaceError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *SurfaceError) Unwrap() error {
	return e.Cause
}
