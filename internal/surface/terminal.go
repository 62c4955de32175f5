package surface

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/folio/internal/loop"
	"github.com/jmylchreest/folio/internal/render"
	"github.com/jmylchreest/folio/internal/toast"
)

var closedStyle = lipgloss.NewStyle().Faint(true)

// Terminal prints each toast to a writer as a coloured box.
type Terminal struct {
	loopScheduler
	w     io.Writer
	width int

	mu       sync.Mutex
	attached map[string]bool
}

// NewTerminal creates a Terminal surface writing to w.
func NewTerminal(w io.Writer, l *loop.Loop, width int) *Terminal {
	return &Terminal{
		loopScheduler: loopScheduler{loop: l},
		w:             w,
		width:         width,
		attached:      make(map[string]bool),
	}
}

// Attach prints the toast.
func (t *Terminal) Attach(n *toast.Notification) error {
	if t.w == nil {
		return &toast.SurfaceError{Message: "terminal surface has no output"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := fmt.Fprintln(t.w, render.Terminal(n, toast.PhaseEntering, t.width)); err != nil {
		return &toast.SurfaceError{Message: "failed to write notification", Cause: err}
	}
	t.attached[n.ID] = true
	return nil
}

// Detach prints a closing marker for a previously printed toast.
func (t *Terminal) Detach(n *toast.Notification) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.attached[n.ID] {
		return
	}
	delete(t.attached, n.ID)
	fmt.Fprintln(t.w, closedStyle.Render(render.Glyph(n.Severity)+" closed"))
}
