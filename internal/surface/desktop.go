package surface

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/jmylchreest/folio/internal/dbus"
	"github.com/jmylchreest/folio/internal/loop"
	"github.com/jmylchreest/folio/internal/render"
	"github.com/jmylchreest/folio/internal/toast"
)

// DesktopNotifier is the part of dbus.Client the Desktop surface needs.
type DesktopNotifier interface {
	Notify(msg *dbus.Message) (uint32, error)
	CloseNotification(id uint32) error
}

// DefaultAction is the action key servers invoke when the notification body is clicked.
const DefaultAction = "default"

// CapabilityReporter is implemented by notifiers that can list the server's capabilities.
// *dbus.Client implements it.
type CapabilityReporter interface {
	GetCapabilities() ([]string, error)
}

// desktopIcons maps severities to freedesktop icon names.
var desktopIcons = map[toast.Severity]string{
	toast.SeveritySuccess: "emblem-default",
	toast.SeverityError:   "dialog-error",
	toast.SeverityWarning: "dialog-warning",
	toast.SeverityInfo:    "dialog-information",
}

// desktopUrgency maps severities to freedesktop urgency levels.
var desktopUrgency = map[toast.Severity]byte{
	toast.SeveritySuccess: dbus.UrgencyLow,
	toast.SeverityError:   dbus.UrgencyCritical,
	toast.SeverityWarning: dbus.UrgencyNormal,
	toast.SeverityInfo:    dbus.UrgencyLow,
}

// Desktop shows toasts through the desktop notification server.
// Expiry stays with the toast manager, so notifications are sent without a server timeout.
type Desktop struct {
	loopScheduler
	client  DesktopNotifier
	appName string
	logger  *slog.Logger

	capsOnce sync.Once
	actions  bool // Server supports actions (click to dismiss)

	mu        sync.Mutex
	serverIDs map[string]uint32              // toast ID -> server ID
	toasts    map[uint32]*toast.Notification // server ID -> toast
	onDismiss func(n *toast.Notification)
}

// NewDesktop creates a Desktop surface.
func NewDesktop(client DesktopNotifier, l *loop.Loop, appName string, logger *slog.Logger) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Desktop{
		loopScheduler: loopScheduler{loop: l},
		client:        client,
		appName:       appName,
		logger:        logger,
		serverIDs:     make(map[string]uint32),
		toasts:        make(map[uint32]*toast.Notification),
	}
}

// OnDismiss sets the callback invoked (on the loop) when the user closes a toast on the desktop.
func (d *Desktop) OnDismiss(cb func(n *toast.Notification)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onDismiss = cb
}

// Attach sends n to the notification server.
func (d *Desktop) Attach(n *toast.Notification) error {
	if d.client == nil {
		return &toast.SurfaceError{Message: "no notification server connection"}
	}

	msg := &dbus.Message{
		AppName:       d.appName,
		AppIcon:       desktopIcons[n.Severity.Normalize()],
		Summary:       summaryFor(n.Severity),
		Body:          render.StripMarkup(n.Message),
		ExpireTimeout: 0,
	}
	if d.supportsActions() {
		msg.Actions = []string{DefaultAction, "Dismiss"}
	}
	msg.SetHint("urgency", desktopUrgency[n.Severity.Normalize()])
	msg.SetHint("category", "x-folio."+string(n.Severity))
	msg.SetHint("transient", true)

	id, err := d.client.Notify(msg)
	if err != nil {
		return &toast.SurfaceError{Message: "failed to show desktop notification", Cause: err}
	}

	d.logger.Debug("sent desktop notification",
		"id", id,
		"urgency", msg.Urgency(),
		"category", msg.Category(),
		"transient", msg.Transient(),
	)

	d.mu.Lock()
	d.serverIDs[n.ID] = id
	d.toasts[id] = n
	d.mu.Unlock()
	return nil
}

// Detach closes the server notification for n.
func (d *Desktop) Detach(n *toast.Notification) {
	d.mu.Lock()
	id, ok := d.serverIDs[n.ID]
	if ok {
		delete(d.serverIDs, n.ID)
		delete(d.toasts, id)
	}
	d.mu.Unlock()

	if !ok {
		return
	}
	if err := d.client.CloseNotification(id); err != nil {
		// Already gone on the server side
		d.logger.Debug("failed to close desktop notification", "id", id, "error", err)
	}
}

// HandleClosed is the dbus.ClosedHandler for the server's NotificationClosed signal.
// Closes we requested ourselves are ignored; anything else counts as a user dismissal.
func (d *Desktop) HandleClosed(id uint32, reason dbus.CloseReason) {
	if reason == dbus.CloseReasonClosed {
		return
	}

	d.mu.Lock()
	n, ok := d.toasts[id]
	cb := d.onDismiss
	d.mu.Unlock()

	if !ok || cb == nil {
		return
	}
	d.loop.Post(func() { cb(n) })
}

// HandleAction is the dbus.ActionHandler for the server's ActionInvoked signal.
// Clicking the notification dismisses the toast.
func (d *Desktop) HandleAction(id uint32, actionKey string) {
	if actionKey != DefaultAction {
		return
	}
	d.HandleClosed(id, dbus.CloseReasonDismissed)
}

// supportsActions asks the server once whether it supports actions.
// Notifiers that cannot report capabilities are assumed to support them.
func (d *Desktop) supportsActions() bool {
	d.capsOnce.Do(func() {
		d.actions = true
		r, ok := d.client.(CapabilityReporter)
		if !ok {
			return
		}
		caps, err := r.GetCapabilities()
		if err != nil {
			d.logger.Debug("failed to get server capabilities", "error", err)
			return
		}
		d.actions = slices.Contains(caps, "actions")
		d.logger.Debug("notification server capabilities", "capabilities", caps)
	})
	return d.actions
}

func summaryFor(s toast.Severity) string {
	s = s.Normalize()
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
