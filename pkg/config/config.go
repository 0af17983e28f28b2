// Package config loads uccalint's TOML configuration file.
//
// A missing file is not an error: [Load] returns [Default]. Values present in
// the file override the defaults field by field; command-line flags override
// the file.
//
//	[validation]
//	linkage = true
//	multigraph = false
//	max_diagnostics = 0
//
//	[cache]
//	backend = "file"        # file, redis or none
//	dir = ""                # defaults to $XDG_CACHE_HOME/uccalint
//	redis_url = "redis://localhost:6379/0"
//	prefix = ""
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//
//	[store]
//	mongo_uri = ""          # empty disables report persistence
//	database = "uccalint"
package config

import (
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/uccalint/pkg/errors"
	"github.com/matzehuels/uccalint/pkg/validation"
)

const appName = "uccalint"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root of the configuration file.
type Config struct {
	Validation Validation `toml:"validation"`
	Cache      Cache      `toml:"cache"`
	Server     Server     `toml:"server"`
	Store      Store      `toml:"store"`
}

// Validation holds default rule options.
type Validation struct {
	Linkage        bool `toml:"linkage"`
	Multigraph     bool `toml:"multigraph"`
	MaxDiagnostics int  `toml:"max_diagnostics"`
}

// Options converts the section to validator options.
func (v Validation) Options() validation.Options {
	return validation.Options{Linkage: v.Linkage, Multigraph: v.Multigraph}
}

// Cache selects and configures the report cache.
type Cache struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	Prefix   string        `toml:"prefix"`
	TTL      time.Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Store configures report persistence.
type Store struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Validation: Validation{Linkage: validation.DefaultOptions().Linkage},
		Cache: Cache{
			Backend:  BackendFile,
			RedisURL: "redis://localhost:6379/0",
			TTL:      7 * 24 * time.Hour,
		},
		Server: Server{Addr: ":8080"},
		Store:  Store{Database: "uccalint"},
	}
}

// Load reads the file at path on top of [Default]. An empty path uses
// [DefaultPath]; a missing file yields the defaults.
func Load(path string) (Config, error) {
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
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg and validates the result. Keys missing from
// data keep their current values.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	if !slices.Contains([]string{BackendFile, BackendRedis, BackendNone}, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidInput, "cache backend %q: want file, redis or none", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if c.Validation.MaxDiagnostics < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_diagnostics must not be negative")
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/uccalint/config.toml, falling back to
// ~/.config/uccalint/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the configured cache directory or the XDG default
// ($XDG_CACHE_HOME/uccalint, falling back to ~/.cache/uccalint).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
