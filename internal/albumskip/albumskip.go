// Package albumskip implements the timed probe loop that advances tracks
// until the player lands on a different album.
package albumskip

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/config"
	"github.com/keytune/keytune/internal/domain"
)

// state tracks where a skip session is in its lifecycle.
type state int

const (
	// stateProbing means the session is waiting on its next scheduled probe
	stateProbing state = iota
	// stateFound means a probe observed a different album
	stateFound
	// stateExhausted means the attempt budget ran out without a change
	stateExhausted
)

func (s state) String() string {
	switch s {
	case stateProbing:
		return "probing"
	case stateFound:
		return "found"
	case stateExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Coordinator launches album-skip sessions: advance one track, then probe
// the album identity on a timer until it changes or the attempt budget
// runs out. The outcome is reported through a notification, never a
// return value, because the session outlives the triggering command.
//
// Sessions are independent. A second invocation while one is in flight
// starts a second session; the two will observe each other's track
// advances. No serialization is attempted.
type Coordinator struct {
	backend   domain.Backend
	notifier  domain.Notifier
	scheduler domain.Scheduler
	settings  *config.Settings
	logger    *zap.Logger
}

// session holds the state owned by one skip invocation. It is only ever
// touched by the Start call that creates it and by its own scheduled
// probes, which run strictly one after another.
type session struct {
	startAlbum string
	startSeen  bool
	attempts   int
	max        int
	state      state
}

// New creates an album-skip coordinator.
func New(
	backend domain.Backend,
	notifier domain.Notifier,
	scheduler domain.Scheduler,
	settings *config.Settings,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		backend:   backend,
		notifier:  notifier,
		scheduler: scheduler,
		settings:  settings,
		logger:    logger,
	}
}

// Start begins a skip session and returns as soon as the first probe is
// scheduled. It fails fast when the player is not running or the initial
// track advance is refused; after that the session cannot fail, only end
// in a Found or Exhausted notification.
//
// The attempt budget and probe delay are read once here, so mid-session
// configuration changes apply from the next invocation on.
func (c *Coordinator) Start(ctx context.Context) error {
	if !c.backend.Running(ctx) {
		return domain.ErrPlayerNotRunning
	}

	s := &session{
		max:   c.settings.MaxSkipAttempts(),
		state: stateProbing,
	}

	// Capture the album we are leaving. A player that reports no album
	// still gets a session; any album seen later counts as a change.
	track, err := c.backend.CurrentTrack(ctx)
	if err != nil {
		c.logger.Warn("Could not capture starting album, treating it as absent",
			zap.Error(err))
	} else {
		s.startAlbum, s.startSeen = track.AlbumIdentity()
	}

	if err := c.backend.Next(ctx); err != nil {
		return fmt.Errorf("advance track: %w", err)
	}

	c.logger.Info("Album skip session started",
		zap.String("startAlbum", s.startAlbum),
		zap.Bool("albumKnown", s.startSeen),
		zap.Int("maxAttempts", s.max))

	c.schedule(s)
	return nil
}

// schedule queues the next probe after the configured delay.
func (c *Coordinator) schedule(s *session) {
	c.scheduler.AfterFunc(c.settings.ProbeDelay(), func() {
		c.probe(s)
	})
}

// probe runs one scheduled attempt: sample the album, finish on a change
// or an exhausted budget, otherwise advance again and reschedule.
func (c *Coordinator) probe(s *session) {
	if s.state != stateProbing {
		return
	}

	ctx := context.Background()
	s.attempts++

	album, seen := c.readAlbum(ctx)
	if seen && (!s.startSeen || album != s.startAlbum) {
		s.state = stateFound
		c.logger.Info("Album skip finished",
			zap.String("state", s.state.String()),
			zap.String("album", album),
			zap.Int("attempts", s.attempts))
		c.report(ctx, "Album skipped", album)
		return
	}

	if s.attempts >= s.max {
		s.state = stateExhausted
		c.logger.Info("Album skip finished",
			zap.String("state", s.state.String()),
			zap.Int("attempts", s.attempts))
		c.report(ctx, "Album skip gave up",
			fmt.Sprintf("No album change after %d tracks", s.attempts))
		return
	}

	// Still the same album and budget left: advance and try again. A
	// refused advance is not fatal; the next probe will see whether the
	// player moved anyway.
	if err := c.backend.Next(ctx); err != nil {
		c.logger.Warn("Track advance failed mid-session", zap.Error(err))
	}

	c.logger.Debug("Album unchanged, probing again",
		zap.Int("attempts", s.attempts),
		zap.Int("maxAttempts", s.max))
	c.schedule(s)
}

// readAlbum samples the current album identity. Read failures and absent
// metadata both come back as "not seen", which the probe loop treats as
// "no change observed".
func (c *Coordinator) readAlbum(ctx context.Context) (string, bool) {
	track, err := c.backend.CurrentTrack(ctx)
	if err != nil {
		c.logger.Debug("Album probe read failed", zap.Error(err))
		return "", false
	}
	return track.AlbumIdentity()
}

func (c *Coordinator) report(ctx context.Context, title, body string) {
	n := domain.Notification{
		Title:    title,
		Body:     body,
		Duration: c.settings.AlertDuration(),
	}
	if err := c.notifier.Notify(ctx, n); err != nil {
		c.logger.Warn("Album skip notification failed", zap.Error(err))
	}
}
