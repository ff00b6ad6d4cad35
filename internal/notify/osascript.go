package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/applescript"
	"github.com/keytune/keytune/internal/domain"
)

// OSANotifier posts alerts through the macOS notification center.
// The notification center decides display duration and icon itself,
// so those fields are ignored here.
type OSANotifier struct {
	logger *zap.Logger
	runner applescript.Runner
}

var _ domain.Notifier = (*OSANotifier)(nil)

// NewOSA creates a notifier that shells out to osascript.
func NewOSA(runner applescript.Runner, logger *zap.Logger) *OSANotifier {
	return &OSANotifier{logger: logger, runner: runner}
}

// Notify displays the alert. Strings are quoted with %q so titles
// containing quotes cannot break out of the script.
func (n *OSANotifier) Notify(ctx context.Context, notif domain.Notification) error {
	script := fmt.Sprintf(`display notification %q with title %q`, notif.Body, notif.Title)
	if _, err := n.runner.Run(ctx, script); err != nil {
		return fmt.Errorf("display notification: %w", err)
	}

	n.logger.Debug("Alert delivered", zap.String("title", notif.Title))
	return nil
}
