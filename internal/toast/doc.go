// Package toast manages the single transient notification shown on a display
// surface. A Manager owns the notification lifecycle (entering, visible,
// dismissing, removed) and evicts the current notification when a new one arrives.
package toast
