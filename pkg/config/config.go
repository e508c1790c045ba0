// Package config loads the CDM Lens server configuration from TOML.
//
// Configuration resolves in three layers: built-in defaults, the TOML file,
// then command-line flags applied by the caller. A missing file is not an
// error; the defaults describe a local single-instance setup.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cdmlens/cdmlens/pkg/layout"
)

// Config is the full server configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Mongo  MongoConfig  `toml:"mongo"`
	Redis  RedisConfig  `toml:"redis"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	DefaultMode string   `toml:"default_mode"`
	ReadTimeout duration `toml:"read_timeout"`
}

// MongoConfig configures catalog storage. An empty URI selects the
// in-memory store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// RedisConfig configures the shared cache. An empty Addr selects the
// file cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// CacheConfig configures the local file cache fallback.
type CacheConfig struct {
	Dir string   `toml:"dir"`
	TTL duration `toml:"ttl"`
}

// duration wraps time.Duration for TOML decoding of strings like "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration for a local setup.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			DefaultMode: string(layout.ModeDefault),
			ReadTimeout: duration{10 * time.Second},
		},
		Mongo: MongoConfig{
			Database: "cdmlens",
		},
		Cache: CacheConfig{
			TTL: duration{24 * time.Hour},
		},
	}
}

// Load reads a TOML file over the defaults. An empty path or a missing
// file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if !layout.ValidModes[layout.Mode(c.Server.DefaultMode)] {
		return fmt.Errorf("server.default_mode %q is not a valid mode", c.Server.DefaultMode)
	}
	if c.Mongo.URI != "" && c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database required when mongo.uri is set")
	}
	return nil
}
