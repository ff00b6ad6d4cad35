// Package hotkeys parses and formats the key chords that bind dispatcher
// actions to an external hotkey daemon. keytune never grabs keys itself;
// bindings exist to be listed and exported.
package hotkeys

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/keytune/keytune/internal/domain"
)

// Modifier is a chord modifier key.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModAlt   Modifier = "alt"
	ModShift Modifier = "shift"
	ModCmd   Modifier = "cmd"
)

// modRank fixes the canonical modifier order within a chord.
var modRank = map[Modifier]int{
	ModCtrl:  0,
	ModAlt:   1,
	ModShift: 2,
	ModCmd:   3,
}

// Chord is a parsed hotkey specification: zero or more modifiers plus a
// single key.
type Chord struct {
	Modifiers []Modifier
	Key       string
}

// ParseChord parses a "ctrl+alt+p" style specification. Modifier order
// is normalized so equivalent specifications compare equal.
func ParseChord(s string) (Chord, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return Chord{}, errors.New("empty chord")
	}

	parts := strings.Split(spec, "+")
	seen := map[Modifier]bool{}
	chord := Chord{}

	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return Chord{}, fmt.Errorf("empty element in chord %q", s)
		}

		last := i == len(parts)-1
		mod := Modifier(part)
		if _, isMod := modRank[mod]; isMod {
			if last {
				return Chord{}, fmt.Errorf("chord %q must end with a key", s)
			}
			if seen[mod] {
				return Chord{}, fmt.Errorf("duplicate modifier %q in chord %q", part, s)
			}
			seen[mod] = true
			chord.Modifiers = append(chord.Modifiers, mod)
			continue
		}

		if !last {
			return Chord{}, fmt.Errorf("unknown modifier %q in chord %q", part, s)
		}
		chord.Key = part
	}

	sort.Slice(chord.Modifiers, func(i, j int) bool {
		return modRank[chord.Modifiers[i]] < modRank[chord.Modifiers[j]]
	})
	return chord, nil
}

// String renders the chord in canonical "ctrl+alt+p" form.
func (c Chord) String() string {
	parts := make([]string, 0, len(c.Modifiers)+1)
	for _, m := range c.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// Bindings maps dispatcher actions to their chords. Unbound actions stay
// invokable over the trigger socket.
type Bindings map[domain.Action]Chord

// FromConfig parses a raw action name to chord spec table.
func FromConfig(raw map[string]string) (Bindings, error) {
	b := Bindings{}
	var errs []error
	for name, spec := range raw {
		if !domain.ValidAction(name) {
			errs = append(errs, fmt.Errorf("unknown action: %s", name))
			continue
		}
		chord, err := ParseChord(spec)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		b[domain.Action(name)] = chord
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b, nil
}

// Describe returns a short human description of an action for binding
// listings.
func Describe(a domain.Action) string {
	switch a {
	case domain.ActionTogglePlayPause:
		return "Toggle play/pause"
	case domain.ActionNextTrack:
		return "Next track"
	case domain.ActionPreviousTrack:
		return "Previous track"
	case domain.ActionShowTrack:
		return "Show current track"
	case domain.ActionSkipAlbum:
		return "Skip to the next album"
	case domain.ActionVolumeUp:
		return "Volume up"
	case domain.ActionVolumeDown:
		return "Volume down"
	}
	return string(a)
}
