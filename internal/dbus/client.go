package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

// ClosedHandler is called when the server reports a notification as closed.
type ClosedHandler func(id uint32, reason CloseReason)

// ActionHandler is called when the user invokes an action on a notification.
type ActionHandler func(id uint32, actionKey string)

// Client sends notifications to the session notification server.
type Client struct {
	logger *slog.Logger

	mu       sync.RWMutex
	conn     *dbus.Conn
	obj      dbus.BusObject
	signals  chan *dbus.Signal
	onClosed ClosedHandler
	onAction ActionHandler
}

// NewClient creates a new, unconnected Client.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{logger: logger}
}

// SetClosedHandler sets the callback for NotificationClosed signals.
func (c *Client) SetClosedHandler(handler ClosedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onClosed = handler
}

// SetActionHandler sets the callback for ActionInvoked signals.
func (c *Client) SetActionHandler(handler ActionHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAction = handler
}

// Connect opens a private session bus connection and subscribes to server signals.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return fmt.Errorf("client already connected")
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(DBusPath),
		dbus.WithMatchInterface(DBusInterface),
	); err != nil {
		conn.Close()
		return fmt.Errorf("failed to subscribe to notification signals: %w", err)
	}

	c.conn = conn
	c.obj = conn.Object(DBusBusName, DBusPath)
	c.signals = make(chan *dbus.Signal, 16)
	conn.Signal(c.signals)

	go c.processSignals(c.signals)

	c.logger.Debug("connected to notification server")
	return nil
}

// Notify sends msg and returns the id assigned by the server.
func (c *Client) Notify(msg *Message) (uint32, error) {
	obj, err := c.object()
	if err != nil {
		return 0, err
	}

	var id uint32
	if err := obj.Call(DBusInterface+".Notify", 0, msg.args()...).Store(&id); err != nil {
		return 0, fmt.Errorf("failed to send notification: %w", err)
	}

	c.logger.Debug("sent notification", "id", id, "summary", msg.Summary)
	return id, nil
}

// CloseNotification asks the server to close the notification with id.
func (c *Client) CloseNotification(id uint32) error {
	obj, err := c.object()
	if err != nil {
		return err
	}

	if err := obj.Call(DBusInterface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("failed to close notification %d: %w", id, err)
	}
	return nil
}

// GetCapabilities returns the capabilities advertised by the server.
func (c *Client) GetCapabilities() ([]string, error) {
	obj, err := c.object()
	if err != nil {
		return nil, err
	}

	var caps []string
	if err := obj.Call(DBusInterface+".GetCapabilities", 0).Store(&caps); err != nil {
		return nil, fmt.Errorf("failed to get capabilities: %w", err)
	}
	return caps, nil
}

// GetServerInformation returns the identity of the running server.
func (c *Client) GetServerInformation() (ServerInfo, error) {
	obj, err := c.object()
	if err != nil {
		return ServerInfo{}, err
	}

	var info ServerInfo
	err = obj.Call(DBusInterface+".GetServerInformation", 0).
		Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("failed to get server information: %w", err)
	}
	return info, nil
}

// Close unsubscribes from signals and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	signals := c.signals
	c.conn = nil
	c.obj = nil
	c.signals = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	conn.RemoveSignal(signals)
	close(signals)
	return conn.Close()
}

func (c *Client) object() (dbus.BusObject, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.obj == nil {
		return nil, fmt.Errorf("not connected to D-Bus")
	}
	return c.obj, nil
}

// processSignals dispatches server signals until the channel is closed.
func (c *Client) processSignals(ch <-chan *dbus.Signal) {
	for sig := range ch {
		c.handleSignal(sig)
	}
}

func (c *Client) handleSignal(sig *dbus.Signal) {
	if sig == nil {
		return
	}

	c.mu.RLock()
	onClosed := c.onClosed
	onAction := c.onAction
	c.mu.RUnlock()

	switch sig.Name {
	case DBusInterface + ".NotificationClosed":
		if len(sig.Body) < 2 {
			c.logger.Warn("malformed NotificationClosed signal", "body_len", len(sig.Body))
			return
		}
		id, ok1 := sig.Body[0].(uint32)
		reason, ok2 := sig.Body[1].(uint32)
		if !ok1 || !ok2 {
			c.logger.Warn("invalid NotificationClosed argument types")
			return
		}
		c.logger.Debug("notification closed by server", "id", id, "reason", CloseReason(reason).String())
		if onClosed != nil {
			onClosed(id, CloseReason(reason))
		}

	case DBusInterface + ".ActionInvoked":
		if len(sig.Body) < 2 {
			c.logger.Warn("malformed ActionInvoked signal", "body_len", len(sig.Body))
			return
		}
		id, ok1 := sig.Body[0].(uint32)
		key, ok2 := sig.Body[1].(string)
		if !ok1 || !ok2 {
			c.logger.Warn("invalid ActionInvoked argument types")
			return
		}
		if onAction != nil {
			onAction(id, key)
		}
	}
}
