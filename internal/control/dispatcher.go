// Package control implements the backend-agnostic command layer: the
// dispatcher, the volume controller and the track formatter.
package control

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/albumskip"
	"github.com/keytune/keytune/internal/config"
	"github.com/keytune/keytune/internal/domain"
)

// IconResolver turns a track's artwork reference into a local icon path
// for notifications. A nil resolver disables icons.
type IconResolver interface {
	Icon(ctx context.Context, artURL string) (string, error)
}

// Dispatcher routes actions to the backend and its helpers. Every
// operation checks that the player is running first and fails fast with
// ErrPlayerNotRunning, touching nothing else. Simple commands never
// retry; the only retrying component is the album-skip session behind
// SkipAlbum, which reports through notifications because it outlives the
// call.
type Dispatcher struct {
	backend  domain.Backend
	volume   *VolumeController
	skipper  *albumskip.Coordinator
	notifier domain.Notifier
	settings *config.Settings
	icons    IconResolver
	logger   *zap.Logger
}

// NewDispatcher creates the command dispatcher.
func NewDispatcher(
	backend domain.Backend,
	volume *VolumeController,
	skipper *albumskip.Coordinator,
	notifier domain.Notifier,
	settings *config.Settings,
	icons IconResolver,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		backend:  backend,
		volume:   volume,
		skipper:  skipper,
		notifier: notifier,
		settings: settings,
		icons:    icons,
		logger:   logger,
	}
}

// Settings exposes the runtime-tunable options the dispatcher owns.
func (d *Dispatcher) Settings() *config.Settings {
	return d.settings
}

// Dispatch runs the operation bound to an action name. Operations that
// produce a value surface it through a notification; Dispatch itself only
// reports success or failure.
func (d *Dispatcher) Dispatch(ctx context.Context, action domain.Action) error {
	d.logger.Debug("Dispatching action", zap.String("action", string(action)))

	switch action {
	case domain.ActionTogglePlayPause:
		return d.TogglePlayPause(ctx)
	case domain.ActionNextTrack:
		return d.NextTrack(ctx)
	case domain.ActionPreviousTrack:
		return d.PreviousTrack(ctx)
	case domain.ActionShowTrack:
		_, err := d.ShowTrack(ctx)
		return err
	case domain.ActionSkipAlbum:
		return d.SkipAlbum(ctx)
	case domain.ActionVolumeUp:
		_, err := d.volume.Adjust(ctx, d.settings.VolumeStep())
		return err
	case domain.ActionVolumeDown:
		_, err := d.volume.Adjust(ctx, -d.settings.VolumeStep())
		return err
	}
	return fmt.Errorf("unknown action: %s", action)
}

// TogglePlayPause flips the player between playing and paused.
func (d *Dispatcher) TogglePlayPause(ctx context.Context) error {
	if !d.backend.Running(ctx) {
		return domain.ErrPlayerNotRunning
	}
	if err := d.backend.PlayPause(ctx); err != nil {
		return fmt.Errorf("toggle play/pause: %w", err)
	}
	return nil
}

// NextTrack advances to the next track.
func (d *Dispatcher) NextTrack(ctx context.Context) error {
	if !d.backend.Running(ctx) {
		return domain.ErrPlayerNotRunning
	}
	if err := d.backend.Next(ctx); err != nil {
		return fmt.Errorf("next track: %w", err)
	}
	return nil
}

// PreviousTrack returns to the previous track.
func (d *Dispatcher) PreviousTrack(ctx context.Context) error {
	if !d.backend.Running(ctx) {
		return domain.ErrPlayerNotRunning
	}
	if err := d.backend.Previous(ctx); err != nil {
		return fmt.Errorf("previous track: %w", err)
	}
	return nil
}

// ShowTrack formats the current track with the live display template,
// notifies it and returns the rendered line. A player with nothing
// playing yields ErrNoTrack after a "Nothing playing" notification, so a
// bound hotkey still gives visible feedback.
func (d *Dispatcher) ShowTrack(ctx context.Context) (string, error) {
	if !d.backend.Running(ctx) {
		return "", domain.ErrPlayerNotRunning
	}

	track, err := d.backend.CurrentTrack(ctx)
	if err != nil {
		return "", fmt.Errorf("read current track: %w", err)
	}

	line, ok := FormatTrack(track, d.settings.TrackFormat())
	if !ok {
		d.notify(ctx, domain.Notification{
			Title:    "Nothing playing",
			Duration: d.settings.AlertDuration(),
		})
		return "", domain.ErrNoTrack
	}

	d.notify(ctx, domain.Notification{
		Title:    "Now playing",
		Body:     line,
		Icon:     d.resolveIcon(ctx, track.ArtURL),
		Duration: d.settings.AlertDuration(),
	})
	return line, nil
}

// SkipAlbum starts an album-skip session and returns as soon as it is
// scheduled; the outcome arrives later as a notification.
func (d *Dispatcher) SkipAlbum(ctx context.Context) error {
	if !d.backend.Running(ctx) {
		return domain.ErrPlayerNotRunning
	}
	return d.skipper.Start(ctx)
}

// GetVolume reads the current volume level.
func (d *Dispatcher) GetVolume(ctx context.Context) (int, error) {
	return d.volume.Get(ctx)
}

// SetVolume clamps and applies a volume target, returning the applied level.
func (d *Dispatcher) SetVolume(ctx context.Context, target int) (int, error) {
	return d.volume.Set(ctx, target)
}

// AdjustVolume shifts the volume by delta, returning the applied level.
func (d *Dispatcher) AdjustVolume(ctx context.Context, delta int) (int, error) {
	return d.volume.Adjust(ctx, delta)
}

func (d *Dispatcher) resolveIcon(ctx context.Context, artURL string) string {
	if d.icons == nil || artURL == "" {
		return ""
	}
	icon, err := d.icons.Icon(ctx, artURL)
	if err != nil {
		d.logger.Debug("Artwork icon unavailable",
			zap.String("artUrl", artURL),
			zap.Error(err))
		return ""
	}
	return icon
}

func (d *Dispatcher) notify(ctx context.Context, n domain.Notification) {
	if err := d.notifier.Notify(ctx, n); err != nil {
		d.logger.Warn("Notification failed",
			zap.String("title", n.Title),
			zap.Error(err))
	}
}
