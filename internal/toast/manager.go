package toast

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jmylchreest/folio/internal/config"
)

// CloseCallback is called after a notification has been detached from the surface.
type CloseCallback func(n *Notification, reason CloseReason)

// Timings holds the lifecycle delays used by a Manager.
type Timings struct {
	DefaultDuration time.Duration // Auto-dismiss delay when Notify gets a non-positive duration
	EntranceDelay   time.Duration // Entering -> visible
	ExitDuration    time.Duration // Dismissing -> removed
}

// TimingsFromConfig extracts manager timings from the toast config section.
func TimingsFromConfig(cfg *config.ToastConfig) Timings {
	if cfg == nil {
		cfg = &config.DefaultConfig().Toast
	}
	t := Timings{
		DefaultDuration: cfg.DefaultDuration.Duration(),
		EntranceDelay:   cfg.EntranceDelay.Duration(),
		ExitDuration:    cfg.ExitDuration.Duration(),
	}
	if t.DefaultDuration <= 0 {
		t.DefaultDuration = config.DefaultToastDuration
	}
	return t
}

// Manager shows at most one notification at a time on a Surface.
// A new notification evicts the current one immediately, without an exit transition.
// Dismissal, by timer or by the user, plays the exit transition before detaching.
type Manager struct {
	surface Surface
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	timings Timings
	current *Notification

	onClose CloseCallback
}

// NewManager creates a Manager rendering into surface.
// A nil surface is accepted; every Notify is then logged and dropped.
func NewManager(surface Surface, cfg *config.ToastConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		surface: surface,
		logger:  logger,
		now:     time.Now,
		timings: TimingsFromConfig(cfg),
	}
}

// SetCloseCallback sets the callback for notification close events.
func (m *Manager) SetCloseCallback(cb CloseCallback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClose = cb
}

// SetClock replaces the time source used for CreatedAt and VisibleSince.
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Timings returns the current lifecycle timings.
func (m *Manager) Timings() Timings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timings
}

// UpdateConfig replaces the timings used by subsequent Notify calls.
// The current notification keeps the timers it was armed with.
func (m *Manager) UpdateConfig(cfg *config.ToastConfig) {
	t := TimingsFromConfig(cfg)

	m.mu.Lock()
	old := m.timings
	m.timings = t
	m.mu.Unlock()

	m.logger.Debug("toast manager config updated",
		"old_default_duration", old.DefaultDuration,
		"new_default_duration", t.DefaultDuration,
	)
}

// Current returns the notification on the surface, or nil.
func (m *Manager) Current() *Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Notify shows message with the given severity and auto-dismisses it after duration.
// Unknown severities are shown as info, and a non-positive duration uses the default.
// A blank message is ignored and leaves the current notification untouched.
//
// Notify never fails from the caller's point of view: rendering problems are logged
// and nil is returned.
func (m *Manager) Notify(message string, severity Severity, duration time.Duration) *Notification {
	if strings.TrimSpace(message) == "" {
		m.logger.Debug("ignoring notification with empty message", "severity", severity)
		return nil
	}
	if !severity.Valid() {
		m.logger.Debug("unknown severity, using info", "severity", severity)
		severity = SeverityInfo
	}

	m.mu.Lock()
	if m.surface == nil {
		m.mu.Unlock()
		m.logger.Warn("cannot show notification: no display surface", "message", message)
		return nil
	}

	if duration <= 0 {
		duration = m.timings.DefaultDuration
	}

	evicted := m.evictLocked()

	n := newNotification(message, severity, duration, m.now())
	if err := m.surface.Attach(n); err != nil {
		n.setPhase(PhaseRemoved)
		onClose := m.onClose
		m.mu.Unlock()

		m.logger.Warn("cannot show notification", "id", n.ID, "error", err)
		m.fireClose(onClose, evicted, CloseReasonReplaced)
		return nil
	}
	m.current = n

	n.entranceTimer = m.surface.ScheduleAfter(m.timings.EntranceDelay, func() {
		m.enter(n)
	})
	n.dismissTimer = m.surface.ScheduleAfter(duration, func() {
		m.dismiss(n, CloseReasonExpired)
	})
	onClose := m.onClose
	m.mu.Unlock()

	m.logger.Debug("showed notification",
		"id", n.ID,
		"severity", n.Severity,
		"duration_ms", duration.Milliseconds(),
	)

	m.fireClose(onClose, evicted, CloseReasonReplaced)
	return n
}

// Dismiss starts the exit transition for n and detaches it once the transition ends.
// It is safe to call on a notification that is already dismissing, removed, or nil.
func (m *Manager) Dismiss(n *Notification) {
	m.dismiss(n, CloseReasonDismissed)
}

// DismissCurrent dismisses whatever notification is on the surface.
func (m *Manager) DismissCurrent() {
	m.Dismiss(m.Current())
}

// Close removes the current notification immediately and cancels its timers.
func (m *Manager) Close() {
	m.mu.Lock()
	evicted := m.evictLocked()
	onClose := m.onClose
	m.mu.Unlock()

	m.fireClose(onClose, evicted, CloseReasonClosed)
}

// enter completes the entrance transition.
func (m *Manager) enter(n *Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n.entranceTimer = 0
	if n.Phase() != PhaseEntering {
		return
	}
	n.markVisible(m.now())
	m.transitionLocked(n, PhaseVisible)
}

func (m *Manager) dismiss(n *Notification, reason CloseReason) {
	if n == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if reason == CloseReasonExpired {
		n.dismissTimer = 0
	}

	switch n.Phase() {
	case PhaseDismissing, PhaseRemoved:
		return
	}

	m.cancelLocked(n)
	n.setPhase(PhaseDismissing)
	m.transitionLocked(n, PhaseDismissing)

	n.exitTimer = m.surface.ScheduleAfter(m.timings.ExitDuration, func() {
		m.remove(n, reason)
	})

	m.logger.Debug("dismissing notification", "id", n.ID, "reason", reason.String())
}

// remove detaches n once its exit transition has finished.
func (m *Manager) remove(n *Notification, reason CloseReason) {
	m.mu.Lock()
	n.exitTimer = 0
	if n.Phase() != PhaseDismissing {
		m.mu.Unlock()
		return
	}

	m.surface.Detach(n)
	n.setPhase(PhaseRemoved)
	if m.current == n {
		m.current = nil
	}
	onClose := m.onClose
	m.mu.Unlock()

	m.logger.Debug("removed notification", "id", n.ID, "reason", reason.String())
	m.fireClose(onClose, n, reason)
}

// evictLocked synchronously removes the current notification. Caller must hold the lock.
func (m *Manager) evictLocked() *Notification {
	cur := m.current
	if cur == nil {
		return nil
	}
	m.current = nil

	m.cancelLocked(cur)
	if cur.exitTimer != 0 {
		m.surface.Cancel(cur.exitTimer)
		cur.exitTimer = 0
	}
	m.surface.Detach(cur)
	cur.setPhase(PhaseRemoved)

	m.logger.Debug("evicted notification", "id", cur.ID)
	return cur
}

// cancelLocked cancels the entrance and auto-dismiss timers of n. Caller must hold the lock.
func (m *Manager) cancelLocked(n *Notification) {
	if n.entranceTimer != 0 {
		m.surface.Cancel(n.entranceTimer)
		n.entranceTimer = 0
	}
	if n.dismissTimer != 0 {
		m.surface.Cancel(n.dismissTimer)
		n.dismissTimer = 0
	}
}

// transitionLocked forwards a phase change to surfaces that animate. Caller must hold the lock.
func (m *Manager) transitionLocked(n *Notification, phase Phase) {
	if t, ok := m.surface.(Transitioner); ok {
		t.Transition(n, phase)
	}
}

// fireClose runs the close callback outside the lock.
func (m *Manager) fireClose(cb CloseCallback, n *Notification, reason CloseReason) {
	if cb == nil || n == nil {
		return
	}
	cb(n, reason)
}
