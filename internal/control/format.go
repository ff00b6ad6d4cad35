package control

import (
	"strings"

	"github.com/keytune/keytune/internal/domain"
)

// unknownField substitutes for artist or album values the player did not
// report.
const unknownField = "Unknown"

// FormatTrack renders a track against a display template containing
// {name}, {artist} and {album} placeholders. ok is false when the track
// has no name, which is how a player reports "nothing playing"; the
// pattern is not consulted in that case. Artist and album fall back to a
// literal when absent. Substitution is plain text replacement, so a
// string already free of placeholders passes through unchanged.
func FormatTrack(t domain.Track, pattern string) (string, bool) {
	if t.Name == nil {
		return "", false
	}

	artist := unknownField
	if t.Artist != nil {
		artist = *t.Artist
	}
	album := unknownField
	if t.Album != nil {
		album = *t.Album
	}

	out := strings.ReplaceAll(pattern, "{name}", *t.Name)
	out = strings.ReplaceAll(out, "{artist}", artist)
	out = strings.ReplaceAll(out, "{album}", album)
	return out, true
}
