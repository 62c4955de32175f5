package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jmylchreest/folio/internal/config"
	"github.com/jmylchreest/folio/internal/dbus"
	"github.com/jmylchreest/folio/internal/loop"
	"github.com/jmylchreest/folio/internal/render"
	"github.com/jmylchreest/folio/internal/surface"
	"github.com/jmylchreest/folio/internal/toast"
)

// session runs a toast manager on a surface for a one-shot command.
type session struct {
	manager *toast.Manager
	closed  chan *toast.Notification

	stopLoop context.CancelFunc
	loopDone chan struct{}
	client   *dbus.Client
}

// openSession starts an event loop and a manager rendering to the named surface.
func openSession(kind config.SurfaceKind, out io.Writer) (*session, error) {
	l := loop.New(logger)
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		closed:   make(chan *toast.Notification, 8),
		stopLoop: cancel,
		loopDone: make(chan struct{}),
	}
	go func() {
		l.Run(ctx)
		close(s.loopDone)
	}()

	var (
		surf    toast.Surface
		desktop *surface.Desktop
	)
	switch kind {
	case config.SurfaceTerminal:
		surf = surface.NewTerminal(out, l, render.TerminalWidth(cfg.Display.Width, 0))

	case config.SurfaceHTML:
		h := surface.NewHTML(l, cfg.Display.Width, logger)
		h.OnChange(func(markup string) {
			if markup != "" {
				fmt.Fprintln(out, markup)
			}
		})
		surf = h

	case config.SurfaceDesktop:
		s.client = dbus.NewClient(logger)
		if err := s.client.Connect(); err != nil {
			s.close()
			return nil, fmt.Errorf("failed to connect to notification server: %w", err)
		}
		if info, err := s.client.GetServerInformation(); err != nil {
			logger.Debug("failed to get server information", "error", err)
		} else {
			logger.Debug("connected to notification server",
				"name", info.Name,
				"vendor", info.Vendor,
				"version", info.Version,
				"spec_version", info.SpecVersion,
			)
		}
		desktop = surface.NewDesktop(s.client, l, cfg.Display.AppName, logger)
		s.client.SetClosedHandler(desktop.HandleClosed)
		s.client.SetActionHandler(desktop.HandleAction)
		surf = desktop

	default:
		s.close()
		return nil, fmt.Errorf("unknown surface %q (valid: %v)", kind, config.ValidSurfaces())
	}

	s.manager = toast.NewManager(surf, &cfg.Toast, logger)
	s.manager.SetCloseCallback(func(n *toast.Notification, reason toast.CloseReason) {
		logger.Debug("notification closed", "id", n.ID, "reason", reason.String())
		select {
		case s.closed <- n:
		default:
		}
	})
	if desktop != nil {
		desktop.OnDismiss(s.manager.Dismiss)
	}
	return s, nil
}

// wait blocks until n has left the surface. Cancelling ctx dismisses n early.
func (s *session) wait(ctx context.Context, n *toast.Notification) {
	if n == nil || !n.Active() {
		return
	}
	done := ctx.Done()
	for {
		select {
		case got := <-s.closed:
			if got == n {
				return
			}
		case <-done:
			s.manager.Dismiss(n)
			done = nil
		}
	}
}

// close tears the session down.
func (s *session) close() {
	if s.manager != nil {
		s.manager.Close()
	}
	s.stopLoop()
	<-s.loopDone
	if s.client != nil {
		if err := s.client.Close(); err != nil {
			logger.Debug("failed to close dbus client", "error", err)
		}
	}
}

// surfaceKind resolves the --surface flag against the configured default.
func surfaceKind(flag string) config.SurfaceKind {
	if flag != "" {
		return config.SurfaceKind(flag)
	}
	return config.SurfaceKind(cfg.Display.Surface)
}
