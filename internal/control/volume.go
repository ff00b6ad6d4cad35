package control

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/config"
	"github.com/keytune/keytune/internal/domain"
)

// VolumeController owns the volume range invariant: every applied level
// lands in [0, 100]. Out-of-range targets are clamped, never rejected,
// and clamping happens once, at the final set.
type VolumeController struct {
	backend  domain.Backend
	notifier domain.Notifier
	settings *config.Settings
	logger   *zap.Logger
}

// NewVolumeController creates a volume controller over the given backend.
func NewVolumeController(backend domain.Backend, notifier domain.Notifier, settings *config.Settings, logger *zap.Logger) *VolumeController {
	return &VolumeController{
		backend:  backend,
		notifier: notifier,
		settings: settings,
		logger:   logger,
	}
}

// Clamp bounds a volume level to [0, 100].
func Clamp(level int) int {
	if level < 0 {
		return 0
	}
	if level > 100 {
		return 100
	}
	return level
}

// Get reads the current volume. It fails with ErrPlayerNotRunning when
// the player is down and with ErrQueryFailed when the player yields no
// usable value.
func (v *VolumeController) Get(ctx context.Context) (int, error) {
	if !v.backend.Running(ctx) {
		return 0, domain.ErrPlayerNotRunning
	}
	level, err := v.backend.Volume(ctx)
	if err != nil {
		return 0, fmt.Errorf("read volume: %w", err)
	}
	return level, nil
}

// Set clamps target and applies it, returning the level actually set.
// The player is never touched when it is not running.
func (v *VolumeController) Set(ctx context.Context, target int) (int, error) {
	if !v.backend.Running(ctx) {
		return 0, domain.ErrPlayerNotRunning
	}

	level := Clamp(target)
	if err := v.backend.SetVolume(ctx, level); err != nil {
		return 0, fmt.Errorf("set volume: %w", err)
	}

	v.logger.Debug("Volume applied",
		zap.Int("target", target),
		zap.Int("level", level))
	v.announce(ctx, level)
	return level, nil
}

// Adjust reads the current volume and applies current+delta through Set.
// A failed read propagates unchanged; no base value is guessed. The sum
// is clamped only once, by Set, so a large delta saturates at the bounds.
func (v *VolumeController) Adjust(ctx context.Context, delta int) (int, error) {
	current, err := v.Get(ctx)
	if err != nil {
		return 0, err
	}
	return v.Set(ctx, current+delta)
}

func (v *VolumeController) announce(ctx context.Context, level int) {
	n := domain.Notification{
		Title:    fmt.Sprintf("Volume: %d%%", level),
		Duration: v.settings.AlertDuration(),
	}
	if err := v.notifier.Notify(ctx, n); err != nil {
		v.logger.Warn("Volume notification failed", zap.Error(err))
	}
}
