package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/domain"
)

const (
	notifyDest  = "org.freedesktop.Notifications"
	notifyPath  = "/org/freedesktop/Notifications"
	notifyIface = "org.freedesktop.Notifications"

	appName = "keytune"
)

// caller is the slice of dbus.BusObject the notifier needs, kept narrow
// so tests can fake the call.
type caller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// DBusNotifier sends desktop notifications over the session bus.
// Each alert replaces the previous one so a burst of volume steps
// collapses into a single popup instead of stacking.
type DBusNotifier struct {
	logger *zap.Logger
	obj    caller

	mu     sync.Mutex
	lastID uint32
}

var _ domain.Notifier = (*DBusNotifier)(nil)

// NewDBus connects to the session bus notification service.
func NewDBus(logger *zap.Logger) (*DBusNotifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return &DBusNotifier{
		logger: logger,
		obj:    conn.Object(notifyDest, dbus.ObjectPath(notifyPath)),
	}, nil
}

// Notify delivers the alert.
//
// D-Bus Notify signature:
// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
func (n *DBusNotifier) Notify(ctx context.Context, notif domain.Notification) error {
	timeout := int32(-1) // server default
	if notif.Duration > 0 {
		timeout = int32(notif.Duration / time.Millisecond)
	}

	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(1)),
		"desktop-entry": dbus.MakeVariant(appName),
	}

	n.mu.Lock()
	replaces := n.lastID
	n.mu.Unlock()

	call := n.obj.CallWithContext(ctx,
		notifyIface+".Notify",
		0,
		appName,
		replaces,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints,
		timeout,
	)
	if call.Err != nil {
		return fmt.Errorf("dbus notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("dbus notify reply: %w", err)
	}

	n.mu.Lock()
	n.lastID = id
	n.mu.Unlock()

	n.logger.Debug("Alert delivered",
		zap.Uint32("id", id),
		zap.String("title", notif.Title))
	return nil
}
