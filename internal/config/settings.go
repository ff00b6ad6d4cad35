package config

import (
	"errors"
	"sync"
	"time"
)

// Settings holds the user-tunable options that may change while the
// daemon runs. The command dispatcher owns one instance; every accessor
// is safe for concurrent use and every read sees the latest value.
type Settings struct {
	mu              sync.RWMutex
	alertDuration   time.Duration
	trackFormat     string
	maxSkipAttempts int
	probeDelay      time.Duration
	volumeStep      int
}

// Snapshot is a point-in-time copy of the runtime-tunable settings.
type Snapshot struct {
	AlertDuration   time.Duration
	TrackFormat     string
	MaxSkipAttempts int
	ProbeDelay      time.Duration
	VolumeStep      int
}

// NewSettings builds the runtime settings from a loaded configuration.
func NewSettings(cfg *Config) *Settings {
	return &Settings{
		alertDuration:   time.Duration(cfg.Alerts.DurationSeconds) * time.Second,
		trackFormat:     cfg.Track.Format,
		maxSkipAttempts: cfg.Skip.MaxAttempts,
		probeDelay:      time.Duration(cfg.Skip.ProbeDelayMS) * time.Millisecond,
		volumeStep:      cfg.Volume.Step,
	}
}

// AlertDuration returns how long notifications stay on screen.
func (s *Settings) AlertDuration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alertDuration
}

// SetAlertDuration updates the notification duration.
func (s *Settings) SetAlertDuration(d time.Duration) error {
	if d <= 0 {
		return errors.New("alert duration must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alertDuration = d
	return nil
}

// TrackFormat returns the track display template.
func (s *Settings) TrackFormat() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trackFormat
}

// SetTrackFormat updates the track display template.
func (s *Settings) SetTrackFormat(format string) error {
	if format == "" {
		return errors.New("track format must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackFormat = format
	return nil
}

// MaxSkipAttempts returns the album-skip probe budget.
func (s *Settings) MaxSkipAttempts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxSkipAttempts
}

// SetMaxSkipAttempts updates the album-skip probe budget.
func (s *Settings) SetMaxSkipAttempts(n int) error {
	if n <= 0 {
		return errors.New("max skip attempts must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxSkipAttempts = n
	return nil
}

// ProbeDelay returns the delay between album-skip probes.
func (s *Settings) ProbeDelay() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.probeDelay
}

// VolumeStep returns the percent change applied by volumeUp/volumeDown.
func (s *Settings) VolumeStep() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.volumeStep
}

// Snapshot returns a copy of every tunable value.
func (s *Settings) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		AlertDuration:   s.alertDuration,
		TrackFormat:     s.trackFormat,
		MaxSkipAttempts: s.maxSkipAttempts,
		ProbeDelay:      s.probeDelay,
		VolumeStep:      s.volumeStep,
	}
}
