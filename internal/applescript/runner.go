package applescript

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Runner executes AppleScript source and returns its output with the
// trailing newline stripped.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// OSARunner runs scripts through the osascript binary.
type OSARunner struct {
	logger *zap.Logger
}

// NewOSARunner creates a runner backed by the system osascript binary.
func NewOSARunner(logger *zap.Logger) *OSARunner {
	return &OSARunner{logger: logger}
}

// Available checks if the osascript binary exists in PATH.
func Available() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

// Run executes the script with osascript -e.
func (r *OSARunner) Run(ctx context.Context, script string) (string, error) {
	r.logger.Debug("Running AppleScript", zap.String("script", script))

	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("osascript failed: %w (output: %s)",
			err, strings.TrimSpace(string(output)))
	}

	return strings.TrimRight(string(output), "\n"), nil
}
