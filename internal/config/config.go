// Package config loads laneweave configuration from a TOML file.
//
// Every field has a working default, so a missing config file is not an
// error: the zero-config path runs the server on localhost with the
// in-memory store and no cache backend.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/laneweave/laneweave/pkg/diagram"
	"github.com/laneweave/laneweave/pkg/errors"
)

// Config is the root configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Remote RemoteConfig `toml:"remote"`
	Store  StoreConfig  `toml:"store"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Listen   string `toml:"listen"`    // host:port
	MaxBytes int    `toml:"max_bytes"` // diagram text ceiling enforced at the boundary
}

// CacheConfig selects the remote-response cache backend.
type CacheConfig struct {
	Backend string        `toml:"backend"` // "file", "redis", or "none"
	Dir     string        `toml:"dir"`     // file backend; empty means ~/.cache/laneweave
	TTL     duration      `toml:"ttl"`
	Redis   RedisSettings `toml:"redis"`
}

// RedisSettings configures the redis cache backend.
type RedisSettings struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RemoteConfig points at the external validation and share services.
type RemoteConfig struct {
	ValidateURL string   `toml:"validate_url"`
	ShareURL    string   `toml:"share_url"`
	Timeout     duration `toml:"timeout"`
}

// StoreConfig selects the diagram persistence backend.
type StoreConfig struct {
	Backend    string `toml:"backend"` // "memory" or "mongo"
	URI        string `toml:"uri"`     // mongo connection string
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// duration unmarshals TOML strings like "30s" or "24h".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// Duration converts to the standard type.
func (d duration) Duration() time.Duration { return time.Duration(d) }

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:   "127.0.0.1:8080",
			MaxBytes: diagram.MaxDiagramBytes,
		},
		Cache: CacheConfig{
			Backend: "file",
			TTL:     duration(24 * time.Hour),
		},
		Remote: RemoteConfig{
			Timeout: duration(10 * time.Second),
		},
		Store: StoreConfig{
			Backend: "memory",
		},
	}
}

// DefaultPath returns the conventional config file location,
// ~/.config/laneweave/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "laneweave", "config.toml"), nil
}

// Load reads the config file at path, layering it over the defaults. An
// empty path tries [DefaultPath]; a missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reading config %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config %s", path)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case "memory", "mongo":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Backend == "mongo" && c.Store.URI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store.uri is required for the mongo backend")
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis.addr is required for the redis backend")
	}
	if c.Server.MaxBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_bytes must be positive")
	}
	return nil
}
