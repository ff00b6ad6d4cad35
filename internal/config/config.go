// Package config loads and validates the keytune configuration and holds
// the runtime-tunable settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads configuration from standard locations with environment
// overrides. Search order: $XDG_CONFIG_HOME/keytune/config.toml, then
// ./config.toml (last wins).
func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	return finish(k)
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return finish(k)
}

func finish(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

func configPaths() []string {
	paths := []string{}
	if p, err := xdg.SearchConfigFile(filepath.Join("keytune", "config.toml")); err == nil {
		paths = append(paths, p)
	}
	paths = append(paths, "config.toml")
	return paths
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Player
	if v := os.Getenv("KEYTUNE_PLAYER_BACKEND"); v != "" {
		cfg.Player.Backend = v
	}
	if v := os.Getenv("KEYTUNE_PLAYER_NAME"); v != "" {
		cfg.Player.Name = v
	}

	// Alerts
	if v := os.Getenv("KEYTUNE_ALERT_DURATION"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Alerts.DurationSeconds = i
		}
	}

	// Track
	if v := os.Getenv("KEYTUNE_TRACK_FORMAT"); v != "" {
		cfg.Track.Format = v
	}

	// Skip
	if v := os.Getenv("KEYTUNE_SKIP_MAX_ATTEMPTS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Skip.MaxAttempts = i
		}
	}
	if v := os.Getenv("KEYTUNE_SKIP_PROBE_DELAY_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Skip.ProbeDelayMS = i
		}
	}

	// Socket
	if v := os.Getenv("KEYTUNE_SOCKET_PATH"); v != "" {
		cfg.Socket.Path = v
	}

	// Log
	if v := os.Getenv("KEYTUNE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// ResolvePath returns the trigger socket path, falling back to the XDG
// runtime dir and then the system temp dir.
func (c *SocketConfig) ResolvePath() string {
	if c.Path != "" {
		return c.Path
	}
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, "keytune.sock")
	}
	return filepath.Join(os.TempDir(), "keytune.sock")
}

// ResolveCacheDir returns the artwork cache directory, falling back to
// the XDG cache dir.
func (c *ArtworkConfig) ResolveCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return filepath.Join(xdg.CacheHome, "keytune")
}
