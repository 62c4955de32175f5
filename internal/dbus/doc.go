// Package dbus is a client for the org.freedesktop.Notifications D-Bus interface.
// It sends notifications to the running desktop notification server, closes
// them, and reports NotificationClosed and ActionInvoked signals back.
package dbus
