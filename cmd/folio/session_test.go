package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/toast"
)

func setupTestGlobals(t *testing.T) {
	t.Helper()

	cfg = config.DefaultConfig()
	cfg.Toast.DefaultDuration = config.Duration(20 * time.Millisecond)
	cfg.Toast.EntranceDelay = config.Duration(time.Millisecond)
	cfg.Toast.ExitDuration = config.Duration(5 * time.Millisecond)
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSurfaceKind(t *testing.T) {
	setupTestGlobals(t)

	assert.Equal(t, config.SurfaceTerminal, surfaceKind(""))
	assert.Equal(t, config.SurfaceHTML, surfaceKind("html"))
}

func TestOpenSession_UnknownSurface(t *testing.T) {
	setupTestGlobals(t)

	_, err := openSession("hologram", io.Discard)
	assert.ErrorContains(t, err, "unknown surface")
}

func TestSession_HTMLUntilRemoved(t *testing.T) {
	setupTestGlobals(t)

	var out bytes.Buffer
	s, err := openSession(config.SurfaceHTML, &out)
	require.NoError(t, err)
	defer s.close()

	n := s.manager.Notify("Saved!", toast.SeveritySuccess, 0)
	require.NotNil(t, n)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.wait(ctx, n)

	assert.Equal(t, toast.PhaseRemoved, n.Phase())
	assert.Contains(t, out.String(), "notification--success")
	assert.Contains(t, out.String(), `data-phase="dismissing"`)
}

func TestSession_CancelDismisses(t *testing.T) {
	setupTestGlobals(t)

	var out bytes.Buffer
	s, err := openSession(config.SurfaceTerminal, &out)
	require.NoError(t, err)
	defer s.close()

	n := s.manager.Notify("Long one", toast.SeverityInfo, time.Hour)
	require.NotNil(t, n)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.wait(ctx, n)

	assert.Equal(t, toast.PhaseRemoved, n.Phase())
	assert.Contains(t, out.String(), "Long one")
	assert.Contains(t, out.String(), "closed")
}

func TestSession_WaitAfterRemovedReturns(t *testing.T) {
	setupTestGlobals(t)

	s, err := openSession(config.SurfaceTerminal, io.Discard)
	require.NoError(t, err)
	defer s.close()

	n := s.manager.Notify("Once", toast.SeverityInfo, 0)
	require.NotNil(t, n)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.wait(ctx, n)
	require.False(t, n.Active())

	// The close event was already consumed, so only the phase check can end this wait
	done := make(chan struct{})
	go func() {
		s.wait(context.Background(), n)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wait blocked on a removed notification")
	}
}
