package domain

import "time"

// Action identifies a dispatcher operation that can be bound to a hotkey
// or invoked over the trigger socket
type Action string

const (
	// ActionTogglePlayPause toggles between playing and paused
	ActionTogglePlayPause Action = "togglePlayPause"
	// ActionNextTrack advances to the next track
	ActionNextTrack Action = "nextTrack"
	// ActionPreviousTrack returns to the previous track
	ActionPreviousTrack Action = "previousTrack"
	// ActionShowTrack displays the current track metadata
	ActionShowTrack Action = "showTrack"
	// ActionSkipAlbum advances tracks until the album changes
	ActionSkipAlbum Action = "skipAlbum"
	// ActionVolumeUp raises the volume by the configured step
	ActionVolumeUp Action = "volumeUp"
	// ActionVolumeDown lowers the volume by the configured step
	ActionVolumeDown Action = "volumeDown"
)

// Actions returns every dispatchable action in display order
func Actions() []Action {
	return []Action{
		ActionTogglePlayPause,
		ActionNextTrack,
		ActionPreviousTrack,
		ActionShowTrack,
		ActionSkipAlbum,
		ActionVolumeUp,
		ActionVolumeDown,
	}
}

// ValidAction reports whether s names a known action
func ValidAction(s string) bool {
	for _, a := range Actions() {
		if Action(s) == a {
			return true
		}
	}
	return false
}

// Track contains a snapshot of the currently playing media.
// A nil field means the player did not report that value, which is
// distinct from a field the player reported as empty.
type Track struct {
	// Name of the currently playing track
	Name *string
	// Artist name
	Artist *string
	// Album name
	Album *string
	// ArtURL is the URL or local path to the album artwork, empty when none
	ArtURL string
}

// AlbumIdentity returns the album the track belongs to and whether the
// player reported one at all
func (t Track) AlbumIdentity() (string, bool) {
	if t.Album == nil {
		return "", false
	}
	return *t.Album, true
}

// Notification is a user-visible message rendered by a Notifier
type Notification struct {
	// Title line of the notification
	Title string
	// Body text, may be empty
	Body string
	// Icon is a local file path or theme icon name, empty for none
	Icon string
	// Duration the notification stays on screen
	Duration time.Duration
}
