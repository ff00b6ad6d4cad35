package domain

import (
	"context"
	"time"
)

// Backend defines the interface for driving one running media player.
// Implementations exist for MPRIS over the D-Bus session bus and for
// AppleScript via osascript; everything above this interface is agnostic
// to which one is in use.
type Backend interface {
	// Name identifies the backend in logs and error messages
	Name() string

	// Running reports whether the controlled player is currently running.
	// An unreachable player counts as not running.
	Running(ctx context.Context) bool

	// PlayPause toggles between playing and paused
	PlayPause(ctx context.Context) error

	// Next advances to the next track
	Next(ctx context.Context) error

	// Previous returns to the previous track
	Previous(ctx context.Context) error

	// Volume returns the current volume as a percentage in [0, 100]
	// Returns ErrQueryFailed when the player yields no usable value
	Volume(ctx context.Context) (int, error)

	// SetVolume applies a volume percentage; callers clamp before calling
	SetVolume(ctx context.Context, level int) error

	// CurrentTrack returns a snapshot of the current track metadata.
	// Fields the player did not report are nil; a player with nothing
	// loaded yields an all-nil Track and no error.
	CurrentTrack(ctx context.Context) (Track, error)
}

// Notifier defines the interface for rendering user-visible notifications
// Implementations are fire-and-forget; callers log failures, never act on them
type Notifier interface {
	// Notify displays a notification
	Notify(ctx context.Context, n Notification) error
}

// Scheduler defines the interface for running a function after a delay
// without blocking the caller. The production implementation wraps
// time.AfterFunc; tests substitute a manually driven queue.
type Scheduler interface {
	// AfterFunc schedules fn to run once after d on its own goroutine
	AfterFunc(d time.Duration, fn func())
}

// Fetcher defines the interface for retrieving album artwork
type Fetcher interface {
	// Fetch downloads or reads image data from a URL or local path
	// Returns the raw image bytes or an error
	Fetch(ctx context.Context, url string) ([]byte, error)
}
