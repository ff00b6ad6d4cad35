package domain

import "errors"

// Sentinel errors shared across the command layer and the backends.
var (
	// ErrPlayerNotRunning indicates the controlled player process is not
	// running; mutating commands are skipped entirely in that state
	ErrPlayerNotRunning = errors.New("player is not running")

	// ErrQueryFailed indicates the player was reachable but returned no
	// usable value for a query
	ErrQueryFailed = errors.New("player query failed")

	// ErrNoTrack indicates the player reported no current track
	ErrNoTrack = errors.New("no track playing")
)
