package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/folio/internal/toast"
)

// timerMsg fires a callback scheduled through the Surface.
type timerMsg struct {
	token toast.CancelToken
}

// toastChangedMsg asks the program to redraw after the overlay changed.
type toastChangedMsg struct{}

// Surface renders the toast overlay of the TUI. Scheduled callbacks are
// delivered as timerMsg and run from Model.Update, so they share the
// program's event loop with key handling.
type Surface struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	nextID  toast.CancelToken
	timers  map[toast.CancelToken]*time.Timer
	pending map[toast.CancelToken]func()

	current *toast.Notification
	phase   toast.Phase
}

// NewSurface creates a TUI surface. Messages are dropped until SetSender is called.
func NewSurface() *Surface {
	return &Surface{
		timers:  make(map[toast.CancelToken]*time.Timer),
		pending: make(map[toast.CancelToken]func()),
	}
}

// SetSender sets the function used to deliver messages, normally (*tea.Program).Send.
func (s *Surface) SetSender(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = send
}

// Attach puts n in the overlay.
func (s *Surface) Attach(n *toast.Notification) error {
	s.mu.Lock()
	if s.current != nil {
		id := s.current.ID
		s.mu.Unlock()
		return &toast.SurfaceError{Message: "overlay already shows " + id}
	}
	s.current = n
	s.phase = toast.PhaseEntering
	s.mu.Unlock()

	s.changed()
	return nil
}

// Transition updates the phase drawn for n.
func (s *Surface) Transition(n *toast.Notification, phase toast.Phase) {
	s.mu.Lock()
	if s.current != n {
		s.mu.Unlock()
		return
	}
	s.phase = phase
	s.mu.Unlock()

	s.changed()
}

// Detach clears the overlay if it shows n.
func (s *Surface) Detach(n *toast.Notification) {
	s.mu.Lock()
	if s.current != n {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.phase = toast.PhaseRemoved
	s.mu.Unlock()

	s.changed()
}

// Showing returns the notification in the overlay and its phase.
func (s *Surface) Showing() (*toast.Notification, toast.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.phase
}

// ScheduleAfter delivers a timerMsg for fn once d has elapsed.
func (s *Surface) ScheduleAfter(d time.Duration, fn func()) toast.CancelToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.pending[id] = fn
	s.timers[id] = time.AfterFunc(d, func() {
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		if send != nil {
			send(timerMsg{token: id})
		}
	})
	return id
}

// Cancel prevents a scheduled callback from running.
func (s *Surface) Cancel(token toast.CancelToken) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[token]; ok {
		t.Stop()
	}
	delete(s.timers, token)
	delete(s.pending, token)
}

// Fire runs the callback for token unless it was cancelled. It must be called
// from the program's update loop.
func (s *Surface) Fire(token toast.CancelToken) {
	s.mu.Lock()
	fn, ok := s.pending[token]
	delete(s.pending, token)
	delete(s.timers, token)
	s.mu.Unlock()

	if ok {
		fn()
	}
}

// Stop cancels every scheduled callback.
func (s *Surface) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	clear(s.pending)
	s.send = nil
}

// changed requests a redraw. Surface methods run while the toast manager holds
// its lock, and Send blocks until the update loop takes the message, so the
// send happens on its own goroutine.
func (s *Surface) changed() {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		go send(toastChangedMsg{})
	}
}
