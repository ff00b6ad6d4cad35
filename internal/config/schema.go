package config

// Config is the root configuration structure.
type Config struct {
	Player   PlayerConfig      `koanf:"player"`
	Alerts   AlertsConfig      `koanf:"alerts"`
	Track    TrackConfig       `koanf:"track"`
	Skip     SkipConfig        `koanf:"skip"`
	Volume   VolumeConfig      `koanf:"volume"`
	Artwork  ArtworkConfig     `koanf:"artwork"`
	Socket   SocketConfig      `koanf:"socket"`
	Bindings map[string]string `koanf:"bindings"`
	Log      LogConfig         `koanf:"log"`
}

// PlayerConfig selects and names the controlled media player.
type PlayerConfig struct {
	Backend string `koanf:"backend"` // "auto", "mpris", or "applescript"
	Name    string `koanf:"name"`    // application name, e.g. "Spotify"
}

// AlertsConfig holds notification settings.
type AlertsConfig struct {
	DurationSeconds int    `koanf:"duration_seconds"`
	Backend         string `koanf:"backend"` // "auto", "dbus", "osascript", or "none"
}

// TrackConfig holds track display settings.
type TrackConfig struct {
	Format string `koanf:"format"` // template with {name}, {artist}, {album}
}

// SkipConfig holds album-skip settings.
type SkipConfig struct {
	MaxAttempts  int `koanf:"max_attempts"`
	ProbeDelayMS int `koanf:"probe_delay_ms"`
}

// VolumeConfig holds volume adjustment settings.
type VolumeConfig struct {
	Step int `koanf:"step"` // percent change per volumeUp/volumeDown
}

// ArtworkConfig holds album artwork thumbnail settings.
type ArtworkConfig struct {
	Enabled  *bool  `koanf:"enabled"`   // default: true
	CacheDir string `koanf:"cache_dir"` // empty means the XDG cache dir
}

// SocketConfig holds trigger socket settings.
type SocketConfig struct {
	Path string `koanf:"path"` // empty means the XDG runtime dir
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"`
}
