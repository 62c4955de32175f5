package toast

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/folio/internal/config"
)

type closeEvent struct {
	message string
	reason  CloseReason
}

func newTestManager(t *testing.T) (*Manager, *fakeSurface, *[]closeEvent) {
	t.Helper()

	surface := newFakeSurface()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewManager(surface, &config.DefaultConfig().Toast, logger)
	m.SetClock(surface.Now)

	var closed []closeEvent
	m.SetCloseCallback(func(n *Notification, reason CloseReason) {
		closed = append(closed, closeEvent{message: n.Message, reason: reason})
	})
	return m, surface, &closed
}

func TestNotify_RendersSeverityPresentation(t *testing.T) {
	for _, sev := range []Severity{SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo, "bogus"} {
		t.Run(string(sev), func(t *testing.T) {
			m, surface, _ := newTestManager(t)

			n := m.Notify("hello", sev, 0)
			require.NotNil(t, n)
			require.Len(t, surface.attached, 1)

			want := sev.Normalize().Presentation()
			assert.Equal(t, want, surface.attached[0].Presentation)
			assert.Equal(t, sev.Normalize(), n.Severity)
		})
	}

	t.Run("unknown falls back to info", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		n := m.Notify("hello", Severity("critical"), 0)
		require.NotNil(t, n)
		assert.Equal(t, SeverityInfo, n.Severity)
		assert.Equal(t, "#1FB8CD", n.Presentation.Color)
		assert.Equal(t, "info-circle", n.Presentation.Icon)
	})
}

func TestNotify_AtMostOneAttached(t *testing.T) {
	m, surface, _ := newTestManager(t)

	sequence := []struct {
		msg     string
		advance time.Duration
	}{
		{"one", 0},
		{"two", 50 * time.Millisecond},
		{"three", 200 * time.Millisecond},
		{"four", 4100 * time.Millisecond}, // first dismissing, then evicted
		{"five", 0},
	}

	for _, step := range sequence {
		surface.Advance(step.advance)
		m.Notify(step.msg, SeverityInfo, 0)
		assert.LessOrEqual(t, len(surface.attached), 1, "after notify %q", step.msg)
		assert.Same(t, m.Current(), surface.attached[0])
	}
}

func TestNotify_AutoDismissAfterDurationAndExit(t *testing.T) {
	m, surface, closed := newTestManager(t)

	n := m.Notify("Welcome", SeveritySuccess, 0)
	require.NotNil(t, n)
	assert.Equal(t, PhaseEntering, n.Phase())
	assert.Equal(t, "check-circle", n.Presentation.Icon)
	assert.Equal(t, "#10B981", n.Presentation.Color)
	assert.Equal(t, 4000*time.Millisecond, n.Duration)

	surface.Advance(100 * time.Millisecond)
	assert.Equal(t, PhaseVisible, n.Phase())
	assert.Equal(t, surface.Now(), n.VisibleSince())

	surface.Advance(3899 * time.Millisecond) // t=3999
	assert.Equal(t, PhaseVisible, n.Phase())

	surface.Advance(1 * time.Millisecond) // t=4000
	assert.Equal(t, PhaseDismissing, n.Phase())
	assert.Len(t, surface.attached, 1)

	surface.Advance(299 * time.Millisecond) // t=4299
	assert.Len(t, surface.attached, 1)
	assert.True(t, n.Active(), "dismissing toasts stay on the surface")

	surface.Advance(1 * time.Millisecond) // t=4300
	assert.Empty(t, surface.attached)
	assert.Equal(t, PhaseRemoved, n.Phase())
	assert.False(t, n.Active())
	assert.Nil(t, m.Current())
	assert.Equal(t, []closeEvent{{"Welcome", CloseReasonExpired}}, *closed)
	assert.Equal(t, []string{"Welcome:visible", "Welcome:dismissing"}, surface.transitions)
	assert.Zero(t, surface.Pending())
}

func TestNotify_NewNotifyEvictsImmediately(t *testing.T) {
	m, surface, closed := newTestManager(t)

	a := m.Notify("A", SeverityInfo, 5000*time.Millisecond)
	require.NotNil(t, a)
	b := m.Notify("B", SeverityError, 3000*time.Millisecond)
	require.NotNil(t, b)

	// A is gone synchronously, without an exit transition
	assert.Equal(t, PhaseRemoved, a.Phase())
	assert.Equal(t, 1, surface.detachCount[a.ID])
	assert.Equal(t, []*Notification{b}, surface.attached)
	assert.Same(t, b, m.Current())
	assert.NotContains(t, surface.transitions, "A:dismissing")
	assert.Equal(t, []closeEvent{{"A", CloseReasonReplaced}}, *closed)

	surface.Advance(2999 * time.Millisecond)
	assert.Equal(t, PhaseVisible, b.Phase())

	surface.Advance(1 * time.Millisecond) // t=3000
	assert.Equal(t, PhaseDismissing, b.Phase())

	surface.Advance(300 * time.Millisecond)
	assert.Empty(t, surface.attached)

	// A's 5000ms timer was cancelled when it was evicted
	surface.Advance(5 * time.Second)
	assert.Equal(t, 1, surface.detachCount[a.ID])
	assert.Equal(t, []closeEvent{
		{"A", CloseReasonReplaced},
		{"B", CloseReasonExpired},
	}, *closed)
}

func TestDismiss_ManualCloseCancelsAutoDismiss(t *testing.T) {
	m, surface, closed := newTestManager(t)

	c := m.Notify("C", SeverityWarning, 0)
	require.NotNil(t, c)

	m.Dismiss(c)
	assert.Equal(t, PhaseDismissing, c.Phase())
	assert.Len(t, surface.attached, 1)

	surface.Advance(299 * time.Millisecond)
	assert.Len(t, surface.attached, 1)

	surface.Advance(1 * time.Millisecond)
	assert.Empty(t, surface.attached)
	assert.Equal(t, PhaseRemoved, c.Phase())
	assert.Zero(t, surface.Pending())

	// The 4000ms timer never fires
	surface.Advance(10 * time.Second)
	assert.Equal(t, 1, surface.detachCount[c.ID])
	assert.Equal(t, []closeEvent{{"C", CloseReasonDismissed}}, *closed)

	// The entrance never completed, so the toast never became visible
	assert.True(t, c.VisibleSince().IsZero())
	assert.Equal(t, []string{"C:dismissing"}, surface.transitions)
}

func TestNotify_EmptyMessageIsNoop(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\t"} {
		m, surface, closed := newTestManager(t)

		prev := m.Notify("keep me", SeveritySuccess, 0)
		require.NotNil(t, prev)

		n := m.Notify(msg, SeverityInfo, 0)
		assert.Nil(t, n)
		assert.Same(t, prev, m.Current())
		assert.Equal(t, []*Notification{prev}, surface.attached)
		assert.Equal(t, PhaseEntering, prev.Phase())
		assert.Empty(t, *closed)
	}
}

func TestDismiss_Idempotent(t *testing.T) {
	t.Run("twice", func(t *testing.T) {
		m, surface, closed := newTestManager(t)
		n := m.Notify("x", SeverityInfo, 0)

		m.Dismiss(n)
		m.Dismiss(n)
		surface.Advance(time.Second)
		m.Dismiss(n)

		assert.Equal(t, 1, surface.detachCount[n.ID])
		assert.Len(t, *closed, 1)
	})

	t.Run("after timer fired", func(t *testing.T) {
		m, surface, closed := newTestManager(t)
		n := m.Notify("x", SeverityInfo, time.Second)

		surface.Advance(time.Second) // dismissing
		m.Dismiss(n)
		surface.Advance(time.Second) // removed
		m.Dismiss(n)

		assert.Equal(t, 1, surface.detachCount[n.ID])
		assert.Equal(t, []closeEvent{{"x", CloseReasonExpired}}, *closed)
	})

	t.Run("after eviction", func(t *testing.T) {
		m, surface, _ := newTestManager(t)
		old := m.Notify("old", SeverityInfo, 0)
		m.Notify("new", SeverityInfo, 0)

		m.Dismiss(old)
		surface.Advance(time.Second)
		assert.Equal(t, 1, surface.detachCount[old.ID])
		assert.Equal(t, PhaseVisible, m.Current().Phase())
	})

	t.Run("nil", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		assert.NotPanics(t, func() { m.Dismiss(nil) })
		assert.NotPanics(t, m.DismissCurrent)
	})
}

func TestNotify_NonPositiveDurationUsesDefault(t *testing.T) {
	for _, d := range []time.Duration{0, -1, -5 * time.Second} {
		m, surface, _ := newTestManager(t)
		n := m.Notify("x", SeverityInfo, d)
		require.NotNil(t, n)
		assert.Equal(t, config.DefaultToastDuration, n.Duration)

		surface.Advance(config.DefaultToastDuration - time.Millisecond)
		assert.Equal(t, PhaseVisible, n.Phase())
		surface.Advance(time.Millisecond)
		assert.Equal(t, PhaseDismissing, n.Phase())
	}
}

func TestNotify_EvictsDismissingNotification(t *testing.T) {
	m, surface, closed := newTestManager(t)

	a := m.Notify("A", SeverityInfo, 0)
	m.Dismiss(a)
	surface.Advance(100 * time.Millisecond)

	b := m.Notify("B", SeverityInfo, 0)
	assert.Equal(t, PhaseRemoved, a.Phase())
	assert.Equal(t, []*Notification{b}, surface.attached)

	// A's exit timer was cancelled, so no second close event
	surface.Advance(time.Second)
	assert.Equal(t, []closeEvent{{"A", CloseReasonReplaced}}, *closed)
	assert.Equal(t, 1, surface.detachCount[a.ID])
}

func TestNotify_NilSurface(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewManager(nil, nil, logger)

	var n *Notification
	assert.NotPanics(t, func() {
		n = m.Notify("hello", SeverityInfo, 0)
	})
	assert.Nil(t, n)
	assert.Nil(t, m.Current())
	assert.NotPanics(t, m.Close)
}

func TestNotify_AttachFailureIsSwallowed(t *testing.T) {
	m, surface, closed := newTestManager(t)

	prev := m.Notify("prev", SeverityInfo, 0)
	surface.attachErr = &SurfaceError{Message: "surface gone", Cause: errors.New("boom")}

	n := m.Notify("next", SeverityError, 0)
	assert.Nil(t, n)
	assert.Nil(t, m.Current())
	assert.Equal(t, PhaseRemoved, prev.Phase())
	assert.Empty(t, surface.attached)
	assert.Zero(t, surface.Pending())
	assert.Equal(t, []closeEvent{{"prev", CloseReasonReplaced}}, *closed)
}

func TestClose_RemovesCurrent(t *testing.T) {
	m, surface, closed := newTestManager(t)

	n := m.Notify("bye", SeverityInfo, 0)
	m.Close()

	assert.Nil(t, m.Current())
	assert.Empty(t, surface.attached)
	assert.Equal(t, PhaseRemoved, n.Phase())
	assert.Zero(t, surface.Pending())
	assert.Equal(t, []closeEvent{{"bye", CloseReasonClosed}}, *closed)
}

func TestUpdateConfig(t *testing.T) {
	m, surface, _ := newTestManager(t)

	first := m.Notify("first", SeverityInfo, 0)

	cfg := config.DefaultConfig().Toast
	cfg.DefaultDuration = config.Duration(time.Second)
	cfg.ExitDuration = config.Duration(50 * time.Millisecond)
	m.UpdateConfig(&cfg)

	assert.Equal(t, time.Second, m.Timings().DefaultDuration)
	assert.Equal(t, 4000*time.Millisecond, first.Duration)

	second := m.Notify("second", SeverityInfo, 0)
	assert.Equal(t, time.Second, second.Duration)

	surface.Advance(time.Second + 50*time.Millisecond)
	assert.Equal(t, PhaseRemoved, second.Phase())
}

func TestNotification_IDsAreUnique(t *testing.T) {
	m, _, _ := newTestManager(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		n := m.Notify("x", SeverityInfo, 0)
		require.NotNil(t, n)
		assert.Len(t, n.ID, 26)
		assert.False(t, seen[n.ID])
		seen[n.ID] = true
	}
}

func TestSurfaceError(t *testing.T) {
	cause := errors.New("no display")
	err := &SurfaceError{Message: "attach failed", Cause: cause}

	assert.Equal(t, "attach failed: no display", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "plain", (&SurfaceError{Message: "plain"}).Error())
}
