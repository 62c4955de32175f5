package surface

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/folio/internal/loop"
	"github.com/jmylchreest/folio/internal/render"
	"github.com/jmylchreest/folio/internal/toast"
)

// HTML keeps the markup of the single display slot of the page.
type HTML struct {
	loopScheduler
	width  int
	logger *slog.Logger

	mu       sync.Mutex
	current  *toast.Notification
	markup   string
	onChange func(markup string)
}

// NewHTML creates an HTML surface. width limits the element's max-width in pixels (0 = 400).
func NewHTML(l *loop.Loop, width int, logger *slog.Logger) *HTML {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTML{
		loopScheduler: loopScheduler{loop: l},
		width:         width,
		logger:        logger,
	}
}

// OnChange sets a callback receiving the slot markup after every change.
// An empty string means the slot is empty.
func (h *HTML) OnChange(cb func(markup string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = cb
}

// Slot returns the markup currently in the display slot.
func (h *HTML) Slot() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.markup
}

// Attach renders n into the empty slot.
func (h *HTML) Attach(n *toast.Notification) error {
	markup, err := render.HTML(n, toast.PhaseEntering, h.width)
	if err != nil {
		return err
	}

	h.mu.Lock()
	if h.current != nil {
		h.mu.Unlock()
		return &toast.SurfaceError{Message: "display slot already occupied by " + h.current.ID}
	}
	h.current = n
	h.markup = markup
	cb := h.onChange
	h.mu.Unlock()

	if cb != nil {
		cb(markup)
	}
	return nil
}

// Transition re-renders the slot for the new phase.
func (h *HTML) Transition(n *toast.Notification, phase toast.Phase) {
	markup, err := render.HTML(n, phase, h.width)
	if err != nil {
		h.logger.Warn("failed to render transition", "id", n.ID, "phase", phase.String(), "error", err)
		return
	}

	h.mu.Lock()
	if h.current != n {
		h.mu.Unlock()
		return
	}
	h.markup = markup
	cb := h.onChange
	h.mu.Unlock()

	if cb != nil {
		cb(markup)
	}
}

// Detach empties the slot if it holds n.
func (h *HTML) Detach(n *toast.Notification) {
	h.mu.Lock()
	if h.current != n {
		h.mu.Unlock()
		return
	}
	h.current = nil
	h.markup = ""
	cb := h.onChange
	h.mu.Unlock()

	if cb != nil {
		cb("")
	}
}
