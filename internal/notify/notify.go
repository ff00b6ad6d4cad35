// Package notify delivers desktop alerts through whichever notification
// service the host offers.
package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/applescript"
	"github.com/keytune/keytune/internal/domain"
)

// New selects a notifier for the configured alert backend. "auto" probes
// the session bus first and falls back to osascript, then to a stub that
// only logs.
func New(backend string, logger *zap.Logger) (domain.Notifier, error) {
	switch backend {
	case "auto":
		if n, err := NewDBus(logger); err == nil {
			return n, nil
		}
		if applescript.Available() {
			return NewOSA(applescript.NewOSARunner(logger), logger), nil
		}
		logger.Warn("No notification service found, alerts will only be logged")
		return NewStub(logger), nil
	case "dbus":
		return NewDBus(logger)
	case "osascript":
		return NewOSA(applescript.NewOSARunner(logger), logger), nil
	case "none":
		return NewStub(logger), nil
	default:
		return nil, fmt.Errorf("unknown alert backend %q", backend)
	}
}

// StubNotifier drops alerts after logging them.
type StubNotifier struct {
	logger *zap.Logger
}

// NewStub creates a notifier that only logs.
func NewStub(logger *zap.Logger) *StubNotifier {
	return &StubNotifier{logger: logger}
}

// Notify logs the alert and discards it.
func (n *StubNotifier) Notify(_ context.Context, notif domain.Notification) error {
	n.logger.Debug("Alert dropped",
		zap.String("title", notif.Title),
		zap.String("body", notif.Body))
	return nil
}
