package hotkeys

import (
	"reflect"
	"strings"
	"testing"

	"github.com/keytune/keytune/internal/domain"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Chord
		wantErr bool
	}{
		{
			name:  "plain key",
			input: "p",
			want:  Chord{Key: "p"},
		},
		{
			name:  "single modifier",
			input: "ctrl+p",
			want:  Chord{Modifiers: []Modifier{ModCtrl}, Key: "p"},
		},
		{
			name:  "two modifiers",
			input: "ctrl+alt+p",
			want:  Chord{Modifiers: []Modifier{ModCtrl, ModAlt}, Key: "p"},
		},
		{
			name:  "modifiers normalized to canonical order",
			input: "shift+ctrl+f9",
			want:  Chord{Modifiers: []Modifier{ModCtrl, ModShift}, Key: "f9"},
		},
		{
			name:  "case and whitespace folded",
			input: " Ctrl+ALT+Space ",
			want:  Chord{Modifiers: []Modifier{ModCtrl, ModAlt}, Key: "space"},
		},
		{
			name:  "named key",
			input: "cmd+audioplay",
			want:  Chord{Modifiers: []Modifier{ModCmd}, Key: "audioplay"},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "modifier without key",
			input:   "ctrl+alt",
			wantErr: true,
		},
		{
			name:    "duplicate modifier",
			input:   "ctrl+ctrl+p",
			wantErr: true,
		},
		{
			name:    "unknown modifier",
			input:   "hyper+p",
			wantErr: true,
		},
		{
			name:    "empty element",
			input:   "ctrl++p",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChord(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseChord(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseChord(%q) returned error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseChord(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestChordStringRoundTrip(t *testing.T) {
	specs := []string{"p", "ctrl+p", "ctrl+alt+space", "ctrl+shift+cmd+f5"}
	for _, spec := range specs {
		chord, err := ParseChord(spec)
		if err != nil {
			t.Fatalf("ParseChord(%q) returned error: %v", spec, err)
		}
		reparsed, err := ParseChord(chord.String())
		if err != nil {
			t.Fatalf("ParseChord(%q) returned error: %v", chord.String(), err)
		}
		if !reflect.DeepEqual(chord, reparsed) {
			t.Errorf("round trip of %q changed chord: %+v vs %+v", spec, chord, reparsed)
		}
	}
}

func TestFromConfig(t *testing.T) {
	raw := map[string]string{
		"togglePlayPause": "ctrl+alt+p",
		"skipAlbum":       "ctrl+alt+s",
	}
	b, err := FromConfig(raw)
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}
	if len(b) != 2 {
		t.Fatalf("FromConfig returned %d bindings, want 2", len(b))
	}
	if got := b[domain.ActionTogglePlayPause].String(); got != "ctrl+alt+p" {
		t.Errorf("togglePlayPause chord = %q, want %q", got, "ctrl+alt+p")
	}
}

func TestFromConfigRejectsUnknownAction(t *testing.T) {
	_, err := FromConfig(map[string]string{"explodePlaylist": "ctrl+x"})
	if err == nil {
		t.Fatal("FromConfig accepted an unknown action")
	}
	if !strings.Contains(err.Error(), "explodePlaylist") {
		t.Errorf("error %q does not name the offending action", err)
	}
}

func TestFromConfigRejectsBadChord(t *testing.T) {
	_, err := FromConfig(map[string]string{"nextTrack": "ctrl+"})
	if err == nil {
		t.Fatal("FromConfig accepted a malformed chord")
	}
}

func TestSxhkd(t *testing.T) {
	b, err := FromConfig(map[string]string{
		"togglePlayPause": "ctrl+alt+p",
		"volumeUp":        "cmd+f12",
	})
	if err != nil {
		t.Fatalf("FromConfig returned error: %v", err)
	}

	out := Sxhkd(b)

	if !strings.Contains(out, "ctrl + alt + p\n\tkeytune trigger togglePlayPause\n") {
		t.Errorf("snippet missing togglePlayPause stanza:\n%s", out)
	}
	if !strings.Contains(out, "super + f12\n\tkeytune trigger volumeUp\n") {
		t.Errorf("snippet missing volumeUp stanza with super modifier:\n%s", out)
	}
	// togglePlayPause precedes volumeUp in display order
	if strings.Index(out, "togglePlayPause") > strings.Index(out, "volumeUp") {
		t.Errorf("snippet stanzas out of display order:\n%s", out)
	}
}
