package config

// Defaults for the user-tunable settings, shared with the runtime
// Settings accessors.
const (
	DefaultAlertDurationSeconds = 5
	DefaultTrackFormat          = "{name} - {artist} [{album}]"
	DefaultMaxSkipAttempts      = 20
	DefaultProbeDelayMS         = 300
	DefaultVolumeStep           = 5
	DefaultPlayerName           = "Spotify"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	enabled := true
	return &Config{
		Player: PlayerConfig{
			Backend: "auto",
			Name:    DefaultPlayerName,
		},
		Alerts: AlertsConfig{
			DurationSeconds: DefaultAlertDurationSeconds,
			Backend:         "auto",
		},
		Track: TrackConfig{
			Format: DefaultTrackFormat,
		},
		Skip: SkipConfig{
			MaxAttempts:  DefaultMaxSkipAttempts,
			ProbeDelayMS: DefaultProbeDelayMS,
		},
		Volume: VolumeConfig{
			Step: DefaultVolumeStep,
		},
		Artwork: ArtworkConfig{
			Enabled: &enabled,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Player
	if c.Player.Backend == "" {
		c.Player.Backend = d.Player.Backend
	}
	if c.Player.Name == "" {
		c.Player.Name = d.Player.Name
	}

	// Alerts
	if c.Alerts.DurationSeconds == 0 {
		c.Alerts.DurationSeconds = d.Alerts.DurationSeconds
	}
	if c.Alerts.Backend == "" {
		c.Alerts.Backend = d.Alerts.Backend
	}

	// Track
	if c.Track.Format == "" {
		c.Track.Format = d.Track.Format
	}

	// Skip
	if c.Skip.MaxAttempts == 0 {
		c.Skip.MaxAttempts = d.Skip.MaxAttempts
	}
	if c.Skip.ProbeDelayMS == 0 {
		c.Skip.ProbeDelayMS = d.Skip.ProbeDelayMS
	}

	// Volume
	if c.Volume.Step == 0 {
		c.Volume.Step = d.Volume.Step
	}

	// Artwork
	if c.Artwork.Enabled == nil {
		c.Artwork.Enabled = d.Artwork.Enabled
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
