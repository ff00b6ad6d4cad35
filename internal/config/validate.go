package config

import (
	"errors"
	"fmt"

	"github.com/keytune/keytune/internal/domain"
	"github.com/keytune/keytune/internal/hotkeys"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.Alerts.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("alerts: %w", err))
	}
	if err := c.Track.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("track: %w", err))
	}
	if err := c.Skip.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("skip: %w", err))
	}
	if err := c.Volume.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("volume: %w", err))
	}
	if err := c.validateBindings(); err != nil {
		errs = append(errs, fmt.Errorf("bindings: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	switch c.Backend {
	case "", "auto", "mpris", "applescript":
		// valid
	default:
		return fmt.Errorf("invalid backend: %s (must be auto, mpris, or applescript)", c.Backend)
	}
	if c.Name == "" {
		return errors.New("name must not be empty")
	}
	return nil
}

// Validate checks AlertsConfig for errors.
func (c *AlertsConfig) Validate() error {
	if c.DurationSeconds <= 0 {
		return errors.New("duration_seconds must be positive")
	}
	switch c.Backend {
	case "", "auto", "dbus", "osascript", "none":
		// valid
	default:
		return fmt.Errorf("invalid backend: %s (must be auto, dbus, osascript, or none)", c.Backend)
	}
	return nil
}

// Validate checks TrackConfig for errors.
func (c *TrackConfig) Validate() error {
	if c.Format == "" {
		return errors.New("format must not be empty")
	}
	return nil
}

// Validate checks SkipConfig for errors.
func (c *SkipConfig) Validate() error {
	if c.MaxAttempts <= 0 {
		return errors.New("max_attempts must be positive")
	}
	if c.ProbeDelayMS <= 0 {
		return errors.New("probe_delay_ms must be positive")
	}
	return nil
}

// Validate checks VolumeConfig for errors.
func (c *VolumeConfig) Validate() error {
	if c.Step <= 0 || c.Step > 100 {
		return errors.New("step must be between 1 and 100")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	return nil
}

// validateBindings checks every binding names a known action and parses
// as a chord.
func (c *Config) validateBindings() error {
	var errs []error
	for action, chord := range c.Bindings {
		if !domain.ValidAction(action) {
			errs = append(errs, fmt.Errorf("unknown action: %s", action))
			continue
		}
		if _, err := hotkeys.ParseChord(chord); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", action, err))
		}
	}
	return errors.Join(errs...)
}
