package dbus

import (
	"github.com/godbus/dbus/v5"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name owned by the notification server.
	DBusBusName = "org.freedesktop.Notifications"
)

// Urgency levels from the freedesktop notification specification.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// CloseReason represents the reason for closing a notification.
// These values are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved by the freedesktop notification specification.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// Message holds the arguments of an org.freedesktop.Notifications.Notify call.
type Message struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// SetHint sets a hint, allocating the map if needed.
func (m *Message) SetHint(key string, value any) {
	if m.Hints == nil {
		m.Hints = make(map[string]dbus.Variant)
	}
	m.Hints[key] = dbus.MakeVariant(value)
}

// Urgency extracts the urgency hint from the message.
// Returns UrgencyNormal if not specified.
func (m *Message) Urgency() byte {
	if v, ok := m.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return b
		}
	}
	return UrgencyNormal
}

// Category extracts the category hint from the message.
// Returns empty string if not specified.
func (m *Message) Category() string {
	if v, ok := m.Hints["category"]; ok {
		if s, ok := v.Value().(string); ok {
			return s
		}
	}
	return ""
}

// Transient returns true if the transient hint is set.
func (m *Message) Transient() bool {
	if v, ok := m.Hints["transient"]; ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return false
}

// args returns the Notify call arguments in wire order.
func (m *Message) args() []any {
	actions := m.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := m.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}
	return []any{
		m.AppName,
		m.ReplacesID,
		m.AppIcon,
		m.Summary,
		m.Body,
		actions,
		hints,
		m.ExpireTimeout,
	}
}

// ServerInfo contains information about the notification server.
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}
