package mpris

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"

	"github.com/keytune/keytune/internal/domain"
)

// MPRIS names for the player control surface.
const (
	busPrefix   = "org.mpris.MediaPlayer2."
	objectPath  = "/org/mpris/MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"

	methodPlayPause = playerIface + ".PlayPause"
	methodNext      = playerIface + ".Next"
	methodPrevious  = playerIface + ".Previous"
	propMetadata    = playerIface + ".Metadata"
	propVolume      = playerIface + ".Volume"
)

// Backend drives a player that implements the MPRIS Player interface.
// Volume crosses this boundary as a percentage; MPRIS itself carries it
// as a float in [0.0, 1.0].
type Backend struct {
	logger *zap.Logger
	conn   BusClient
	name   string // display name, e.g. "Spotify"
	dest   string // bus name, e.g. "org.mpris.MediaPlayer2.spotify"
}

var _ domain.Backend = (*Backend)(nil)

// New creates an MPRIS backend for the named player. The bus name is
// derived by lowercasing the player name.
func New(conn BusClient, playerName string, logger *zap.Logger) *Backend {
	return &Backend{
		logger: logger,
		conn:   conn,
		name:   playerName,
		dest:   busPrefix + strings.ToLower(playerName),
	}
}

// Name identifies the backend in logs and error messages
func (b *Backend) Name() string {
	return "mpris:" + b.name
}

// Running reports whether the player currently owns its MPRIS bus name.
func (b *Backend) Running(_ context.Context) bool {
	has, err := b.conn.NameHasOwner(b.dest)
	if err != nil {
		b.logger.Warn("Bus liveness check failed",
			zap.String("dest", b.dest),
			zap.Error(err))
		return false
	}
	return has
}

// PlayPause toggles between playing and paused
func (b *Backend) PlayPause(_ context.Context) error {
	if err := b.conn.Call(b.dest, objectPath, methodPlayPause); err != nil {
		return fmt.Errorf("mpris play/pause: %w", err)
	}
	return nil
}

// Next advances to the next track
func (b *Backend) Next(_ context.Context) error {
	if err := b.conn.Call(b.dest, objectPath, methodNext); err != nil {
		return fmt.Errorf("mpris next: %w", err)
	}
	return nil
}

// Previous returns to the previous track
func (b *Backend) Previous(_ context.Context) error {
	if err := b.conn.Call(b.dest, objectPath, methodPrevious); err != nil {
		return fmt.Errorf("mpris previous: %w", err)
	}
	return nil
}

// Volume reads the player volume as a percentage.
func (b *Backend) Volume(_ context.Context) (int, error) {
	variant, err := b.conn.GetProperty(b.dest, objectPath, propVolume)
	if err != nil {
		return 0, fmt.Errorf("%w: volume read: %v", domain.ErrQueryFailed, err)
	}

	// SAFE CAST: Some players expose Volume with a wrong or empty type
	// when idle.
	f, ok := variant.Value().(float64)
	if !ok {
		return 0, fmt.Errorf("%w: volume has type %T", domain.ErrQueryFailed, variant.Value())
	}
	return int(math.Round(f * 100)), nil
}

// SetVolume writes the player volume. level is a percentage the caller
// has already clamped.
func (b *Backend) SetVolume(_ context.Context, level int) error {
	value := dbus.MakeVariant(float64(level) / 100)
	if err := b.conn.SetProperty(b.dest, objectPath, propVolume, value); err != nil {
		return fmt.Errorf("mpris volume write: %w", err)
	}
	return nil
}

// CurrentTrack reads and parses the MPRIS Metadata property.
func (b *Backend) CurrentTrack(_ context.Context) (domain.Track, error) {
	variant, err := b.conn.GetProperty(b.dest, objectPath, propMetadata)
	if err != nil {
		return domain.Track{}, fmt.Errorf("%w: metadata read: %v", domain.ErrQueryFailed, err)
	}

	// SAFE CAST: Players with nothing loaded may expose an empty or
	// odd-typed Metadata property; that is "no track", not an error.
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		b.logger.Debug("Metadata variant is not a map, treating as no track",
			zap.String("dest", b.dest))
		return domain.Track{}, nil
	}

	return b.parseTrack(metadata), nil
}

// parseTrack converts MPRIS metadata to the domain model. Missing keys
// stay nil so callers can tell "not reported" from "reported empty".
func (b *Backend) parseTrack(metadata map[string]dbus.Variant) domain.Track {
	var track domain.Track

	// Extract title
	if titleVar, ok := metadata["xesam:title"]; ok {
		if title, ok := titleVar.Value().(string); ok {
			track.Name = &title
		}
	}

	// Extract artist (can be an array)
	if artistVar, ok := metadata["xesam:artist"]; ok {
		switch artists := artistVar.Value().(type) {
		case []string:
			if len(artists) > 0 {
				track.Artist = &artists[0]
			}
		case string:
			track.Artist = &artists
		default:
			// Some non-compliant players may use unexpected types
			b.logger.Debug("Unexpected artist type in metadata",
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
	}

	// Extract album
	if albumVar, ok := metadata["xesam:album"]; ok {
		if album, ok := albumVar.Value().(string); ok {
			track.Album = &album
		}
	}

	// Extract art URL
	if artVar, ok := metadata["mpris:artUrl"]; ok {
		if artURL, ok := artVar.Value().(string); ok {
			track.ArtURL = artURL
		}
	}

	return track
}
