// Package applescript controls a media player through its AppleScript
// scripting interface, using osascript as the bridge.
package applescript

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/domain"
)

// Backend drives a scriptable player application by name.
type Backend struct {
	logger *zap.Logger
	runner Runner
	name   string
}

var _ domain.Backend = (*Backend)(nil)

// New creates a backend for the named player application, e.g. "Spotify".
func New(runner Runner, playerName string, logger *zap.Logger) *Backend {
	return &Backend{
		logger: logger,
		runner: runner,
		name:   playerName,
	}
}

// Name identifies the backend in logs and status output.
func (b *Backend) Name() string {
	return "applescript:" + b.name
}

// Running checks the process list via System Events. Telling the player
// application directly would launch it, which a status probe must not do.
func (b *Backend) Running(ctx context.Context) bool {
	script := fmt.Sprintf(`tell application "System Events" to (name of processes) contains %q`, b.name)
	out, err := b.runner.Run(ctx, script)
	if err != nil {
		b.logger.Warn("Process check failed", zap.Error(err))
		return false
	}
	return strings.TrimSpace(out) == "true"
}

// PlayPause toggles playback.
func (b *Backend) PlayPause(ctx context.Context) error {
	return b.command(ctx, "playpause")
}

// Next skips to the next track.
func (b *Backend) Next(ctx context.Context) error {
	return b.command(ctx, "next track")
}

// Previous returns to the previous track.
func (b *Backend) Previous(ctx context.Context) error {
	return b.command(ctx, "previous track")
}

func (b *Backend) command(ctx context.Context, verb string) error {
	script := fmt.Sprintf(`tell application %q to %s`, b.name, verb)
	if _, err := b.runner.Run(ctx, script); err != nil {
		return fmt.Errorf("applescript %s: %w", verb, err)
	}
	return nil
}

// Volume reads the player volume as a 0-100 integer.
func (b *Backend) Volume(ctx context.Context) (int, error) {
	script := fmt.Sprintf(`tell application %q to sound volume as integer`, b.name)
	out, err := b.runner.Run(ctx, script)
	if err != nil {
		return 0, fmt.Errorf("%w: volume read: %v", domain.ErrQueryFailed, err)
	}

	level, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("%w: volume output %q is not a number", domain.ErrQueryFailed, out)
	}
	return level, nil
}

// SetVolume writes the player volume as a 0-100 integer.
func (b *Backend) SetVolume(ctx context.Context, level int) error {
	script := fmt.Sprintf(`tell application %q to set sound volume to %d`, b.name, level)
	if _, err := b.runner.Run(ctx, script); err != nil {
		return fmt.Errorf("applescript set volume: %w", err)
	}
	return nil
}

// CurrentTrack reads the playing track. The script joins the fields
// with linefeeds so values containing separators survive intact.
// Players raise a script error when nothing is loaded, which is
// reported as an empty track rather than a failure.
func (b *Backend) CurrentTrack(ctx context.Context) (domain.Track, error) {
	script := fmt.Sprintf(
		`tell application %q to get name of current track & linefeed & artist of current track & linefeed & album of current track & linefeed & artwork url of current track`,
		b.name)

	out, err := b.runner.Run(ctx, script)
	if err != nil {
		b.logger.Debug("Track query returned nothing", zap.Error(err))
		return domain.Track{}, nil
	}

	track := domain.Track{}
	parts := strings.Split(out, "\n")
	if len(parts) > 0 {
		track.Name = &parts[0]
	}
	if len(parts) > 1 {
		track.Artist = &parts[1]
	}
	if len(parts) > 2 {
		track.Album = &parts[2]
	}
	if len(parts) > 3 {
		track.ArtURL = parts[3]
	}
	return track, nil
}
