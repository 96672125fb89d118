// Package config loads dashgrid settings from TOML or YAML files.
//
// A config file can extend or override the built-in widget profile and
// preset tables and configure the cache and HTTP server:
//
//	[profiles.RevenueChart]
//	category = "chart"
//	min_cols = 6
//	min_rows = 6
//
//	[presets]
//	hero = [1, 3]
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "12h"
//
// The mongo backend takes mongo_uri and an optional mongo_db instead of
// redis_url.
//
//	[server]
//	addr = ":8080"
//
// The format is chosen by file extension: .toml, .yaml or .yml.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/generate"
	"github.com/matzehuels/dashgrid/pkg/widget"
)

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Defaults.
const (
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

// Config is the complete dashgrid configuration.
type Config struct {
	Profiles widget.Profiles  `toml:"profiles" yaml:"profiles"`
	Presets  generate.Presets `toml:"presets" yaml:"presets"`

	// ReplaceProfiles discards the built-in profiles instead of merging
	// the file's profiles into them.
	ReplaceProfiles bool `toml:"replace_profiles" yaml:"replace_profiles"`

	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend  string        `toml:"backend" yaml:"backend"`
	Dir      string        `toml:"dir" yaml:"dir"`
	RedisURL string        `toml:"redis_url" yaml:"redis_url"`
	MongoURI string        `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDB  string        `toml:"mongo_db" yaml:"mongo_db"`
	Prefix   string        `toml:"prefix" yaml:"prefix"`
	TTL      time.Duration `toml:"ttl" yaml:"ttl"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout"`
}

// Default returns the built-in configuration. The file cache directory is
// left empty for the caller to fill in.
func Default() Config {
	return Config{
		Profiles: widget.DefaultProfiles(),
		Presets:  generate.DefaultPresets(),
		Cache:    CacheConfig{Backend: BackendFile},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
		},
	}
}

// Load reads the file at path and merges it over [Default].
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	format, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data, format)
}

// FormatOf returns "toml" or "yaml" for path's extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml", nil
	case ".yaml", ".yml":
		return "yaml", nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", filepath.Ext(path))
}

// Parse decodes data in the given format, merges it over [Default] and
// validates the result.
func Parse(data []byte, format string) (Config, error) {
	var file Config
	switch format {
	case "toml":
		md, err := toml.Decode(string(data), &file)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}

	cfg := Default()
	cfg.merge(file)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(file Config) {
	if file.ReplaceProfiles {
		c.Profiles = widget.Profiles{}
	}
	for name, p := range file.Profiles {
		c.Profiles[name] = p
	}
	for name, pattern := range file.Presets {
		c.Presets[name] = pattern
	}

	if file.Cache.Backend != "" {
		c.Cache.Backend = file.Cache.Backend
	}
	if file.Cache.Dir != "" {
		c.Cache.Dir = file.Cache.Dir
	}
	if file.Cache.RedisURL != "" {
		c.Cache.RedisURL = file.Cache.RedisURL
	}
	if file.Cache.MongoURI != "" {
		c.Cache.MongoURI = file.Cache.MongoURI
	}
	if file.Cache.MongoDB != "" {
		c.Cache.MongoDB = file.Cache.MongoDB
	}
	if file.Cache.Prefix != "" {
		c.Cache.Prefix = file.Cache.Prefix
	}
	if file.Cache.TTL != 0 {
		c.Cache.TTL = file.Cache.TTL
	}

	if file.Server.Addr != "" {
		c.Server.Addr = file.Server.Addr
	}
	if file.Server.ReadTimeout != 0 {
		c.Server.ReadTimeout = file.Server.ReadTimeout
	}
	if file.Server.WriteTimeout != 0 {
		c.Server.WriteTimeout = file.Server.WriteTimeout
	}
}

// Validate checks the tables and settings.
func (c Config) Validate() error {
	if err := c.Profiles.Validate(); err != nil {
		return err
	}
	if len(c.Profiles.AvailableNames()) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no profile is available for random selection")
	}
	if err := c.Presets.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "presets")
	}

	switch c.Cache.Backend {
	case BackendNone, BackendMemory, BackendFile:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis needs redis_url")
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend mongo needs mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend %q (must be one of: none, memory, file, redis, mongo)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server addr must not be empty")
	}
	return nil
}

// WriteTOML encodes the configuration as TOML.
func (c Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
