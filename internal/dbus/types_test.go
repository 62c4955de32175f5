package dbus

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseReasonString(t *testing.T) {
	tests := []struct {
		reason   CloseReason
		expected string
	}{
		{CloseReasonExpired, "expired"},
		{CloseReasonDismissed, "dismissed"},
		{CloseReasonClosed, "closed"},
		{CloseReasonUndefined, "undefined"},
		{CloseReason(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.String())
		})
	}
}

func TestMessageHints(t *testing.T) {
	m := &Message{}
	assert.Equal(t, UrgencyNormal, m.Urgency())
	assert.Empty(t, m.Category())
	assert.False(t, m.Transient())

	m.SetHint("urgency", UrgencyCritical)
	m.SetHint("category", "im.received")
	m.SetHint("transient", true)

	assert.Equal(t, UrgencyCritical, m.Urgency())
	assert.Equal(t, "im.received", m.Category())
	assert.True(t, m.Transient())
}

func TestMessageArgs(t *testing.T) {
	m := &Message{
		AppName:       "folio",
		Summary:       "Success",
		Body:          "Saved",
		AppIcon:       "dialog-information",
		ExpireTimeout: 0,
	}

	args := m.args()
	require.Len(t, args, 8)
	assert.Equal(t, "folio", args[0])
	assert.Equal(t, uint32(0), args[1])
	assert.Equal(t, "dialog-information", args[2])
	assert.Equal(t, "Success", args[3])
	assert.Equal(t, "Saved", args[4])
	assert.Equal(t, []string{}, args[5])
	assert.Equal(t, map[string]dbus.Variant{}, args[6])
	assert.Equal(t, int32(0), args[7])
}
