package toast

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Phase is the lifecycle state of a notification.
type Phase int

const (
	// PhaseEntering means the element is attached but the entrance transition has not finished.
	PhaseEntering Phase = iota
	// PhaseVisible means the entrance transition finished and the toast is fully shown.
	PhaseVisible
	// PhaseDismissing means the exit transition is running.
	PhaseDismissing
	// PhaseRemoved means the element has been detached. Removed notifications are never reused.
	PhaseRemoved
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseDismissing:
		return "dismissing"
	case PhaseRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// CloseReason represents why a notification left the display surface.
type CloseReason int

const (
	// CloseReasonExpired indicates the auto-dismiss timer fired.
	CloseReasonExpired CloseReason = iota + 1
	// CloseReasonDismissed indicates the user closed the toast.
	CloseReasonDismissed
	// CloseReasonReplaced indicates a newer notification evicted this one.
	CloseReasonReplaced
	// CloseReasonClosed indicates the manager was closed.
	CloseReasonClosed
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonReplaced:
		return "replaced"
	case CloseReasonClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// CancelToken identifies a callback scheduled on a Surface.
type CancelToken uint64

// Notification is a single toast instance.
// The exported fields are fixed at creation; lifecycle state is owned by the Manager.
type Notification struct {
	ID           string
	Message      string
	Severity     Severity
	Presentation Presentation
	Duration     time.Duration
	CreatedAt    time.Time

	mu           sync.Mutex
	phase        Phase
	visibleSince time.Time

	// Scheduled callbacks, zero when not armed
	entranceTimer CancelToken
	dismissTimer  CancelToken
	exitTimer     CancelToken
}

func newNotification(message string, severity Severity, duration time.Duration, now time.Time) *Notification {
	return &Notification{
		ID:           newID(now),
		Message:      message,
		Severity:     severity,
		Presentation: severity.Presentation(),
		Duration:     duration,
		CreatedAt:    now,
		phase:        PhaseEntering,
	}
}

// newID generates a ULID for a notification.
func newID(now time.Time) string {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		// Fall back to the package default entropy source
		return ulid.Make().String()
	}
	return id.String()
}

// Phase returns the current lifecycle phase.
func (n *Notification) Phase() Phase {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.phase
}

// VisibleSince returns when the notification became visible.
// It is the zero time until the entrance transition finishes.
func (n *Notification) VisibleSince() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visibleSince
}

// Active reports whether the notification is still on the surface.
func (n *Notification) Active() bool {
	return n.Phase() != PhaseRemoved
}

func (n *Notification) setPhase(p Phase) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.phase = p
}

func (n *Notification) markVisible(at time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.phase = PhaseVisible
	n.visibleSince = at
}

// NewNotification creates a detached notification in PhaseEntering.
// Managers create their own; this is for surfaces and previews that render
// a notification without showing it.
func NewNotification(message string, severity Severity, duration time.Duration) *Notification {
	return newNotification(message, severity.Normalize(), duration, time.Now())
}
