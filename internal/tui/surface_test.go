package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/folio/internal/toast"
)

var (
	_ toast.Surface      = (*Surface)(nil)
	_ toast.Transitioner = (*Surface)(nil)
)

func receiveTimer(t *testing.T, msgs <-chan tea.Msg) timerMsg {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-msgs:
			if tm, ok := msg.(timerMsg); ok {
				return tm
			}
		case <-deadline:
			t.Fatal("timer message not delivered")
		}
	}
}

func TestSurface_ScheduleAndFire(t *testing.T) {
	s := NewSurface()
	msgs := make(chan tea.Msg, 8)
	s.SetSender(func(msg tea.Msg) { msgs <- msg })

	calls := 0
	token := s.ScheduleAfter(time.Millisecond, func() { calls++ })

	tm := receiveTimer(t, msgs)
	assert.Equal(t, token, tm.token)

	s.Fire(tm.token)
	s.Fire(tm.token)
	assert.Equal(t, 1, calls)
}

func TestSurface_CancelAfterDelivery(t *testing.T) {
	s := NewSurface()
	msgs := make(chan tea.Msg, 8)
	s.SetSender(func(msg tea.Msg) { msgs <- msg })

	called := false
	token := s.ScheduleAfter(time.Millisecond, func() { called = true })

	// The message is already queued when Cancel runs
	tm := receiveTimer(t, msgs)
	s.Cancel(token)
	s.Fire(tm.token)
	assert.False(t, called)
}

func TestSurface_AttachDetach(t *testing.T) {
	s := NewSurface()
	msgs := make(chan tea.Msg, 8)
	s.SetSender(func(msg tea.Msg) { msgs <- msg })

	n := toast.NewNotification("hi", toast.SeverityInfo, 0)
	require.NoError(t, s.Attach(n))

	select {
	case msg := <-msgs:
		assert.IsType(t, toastChangedMsg{}, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("no redraw requested")
	}

	other := toast.NewNotification("other", toast.SeverityInfo, 0)
	var surfaceErr *toast.SurfaceError
	assert.ErrorAs(t, s.Attach(other), &surfaceErr)

	s.Transition(n, toast.PhaseVisible)
	got, phase := s.Showing()
	assert.Same(t, n, got)
	assert.Equal(t, toast.PhaseVisible, phase)

	s.Detach(other)
	got, _ = s.Showing()
	assert.Same(t, n, got)

	s.Detach(n)
	got, _ = s.Showing()
	assert.Nil(t, got)
}

func TestSurface_Stop(t *testing.T) {
	s := NewSurface()
	s.SetSender(func(tea.Msg) { t.Error("no message expected after Stop") })

	s.ScheduleAfter(5*time.Millisecond, func() {})
	s.Stop()
	time.Sleep(20 * time.Millisecond)
}
