// Package surface provides toast.Surface implementations: a terminal writer,
// a single-slot HTML fragment, and the freedesktop notification server.
// All of them schedule lifecycle callbacks on a loop.Loop.
package surface
