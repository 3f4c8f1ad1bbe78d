// Package config loads the optional TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/spanners/config.toml (or
// ~/.config/spanners/config.toml) unless --config names another one. A
// missing default file is not an error; every field has a default.
//
//	[cache]
//	backend = "badger"        # file | redis | badger | none
//	ttl = "720h"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
//	database = "spanners"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/damien-gal/degree-three-spanners-square-lattice/pkg/errors"
)

// AppName names the configuration, cache and data directories.
const AppName = "spanners"

// Cache backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendBadger = "badger"
	BackendNone   = "none"
)

// Config is the whole configuration file.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Viewer ViewerConfig `toml:"viewer"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir"` // file and badger backends
	TTL     Duration `toml:"ttl"`
	Prefix  string   `toml:"prefix"` // prepended to every key

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// StoreConfig selects the run report store. With an empty MongoURI,
// reports are written as files under Dir.
type StoreConfig struct {
	Dir        string `toml:"dir"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ViewerConfig tunes the interactive viewer.
type ViewerConfig struct {
	// Delay between frames when auto-advancing.
	Delay Duration `toml:"delay"`
	// Start in auto-advance mode.
	Auto bool `toml:"auto"`
	// Hide forbidden edges.
	HideForbidden bool `toml:"hide_forbidden"`
}

// ServerConfig configures "spanners serve".
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ProveTimeout Duration `toml:"prove_timeout"`
}

// Duration is a time.Duration written as a string such as "1h30m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{30 * 24 * time.Hour},
		},
		Store: StoreConfig{
			Database:   AppName,
			Collection: "runs",
		},
		Viewer: ViewerConfig{
			Delay: Duration{300 * time.Millisecond},
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ProveTimeout: Duration{10 * time.Minute},
		},
	}
}

// Load reads the configuration. An empty path means the default
// location, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		dir, err := Dir()
		if err != nil {
			return cfg, cfg.fill()
		}
		path = filepath.Join(dir, "config.toml")
	}

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case os.IsNotExist(err) && !explicit:
		return cfg, cfg.fill()
	case os.IsNotExist(err):
		return nil, errors.New(errors.ErrCodeFileNotFound, "config file %s not found", path)
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, cfg.fill()
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendBadger, BackendNone:
	case BackendRedis:
		if err := errors.ValidateAddr(c.Cache.RedisAddr); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "cache.redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Server.Addr != "" {
		if err := errors.ValidateAddr(c.Server.Addr); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "server.addr")
		}
	}
	if c.Cache.TTL.Duration < 0 || c.Viewer.Delay.Duration < 0 || c.Server.ProveTimeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "durations must not be negative")
	}
	return nil
}

// fill resolves empty directories to their XDG defaults.
func (c *Config) fill() error {
	if c.Cache.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return err
		}
		c.Cache.Dir = dir
		if c.Cache.Backend == BackendBadger {
			c.Cache.Dir = filepath.Join(dir, "badger")
		}
	}
	if c.Store.Dir == "" {
		dir, err := DataDir()
		if err != nil {
			return err
		}
		c.Store.Dir = filepath.Join(dir, "runs")
	}
	return nil
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	return xdg("XDG_CONFIG_HOME", ".config")
}

// CacheDir returns the cache directory.
func CacheDir() (string, error) {
	return xdg("XDG_CACHE_HOME", ".cache")
}

// DataDir returns the data directory holding run reports.
func DataDir() (string, error) {
	return xdg("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdg(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, fallback, AppName), nil
}
