// Package config loads runtime settings from ROSTER_ prefixed environment
// variables. Command line flags are applied on top by the CLI.
package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/poke-roster/internal/errors"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "ROSTER_"

// Storage selects the persistent cache backend
type Storage string

// Storage backends
const (
	StorageBolt   Storage = "bolt"
	StorageRedis  Storage = "redis"
	StorageSQLite Storage = "sqlite"
	StorageNone   Storage = "none"
)

// Config is the full runtime configuration
type Config struct {
	APIBaseURL  string        `env:"API_BASE_URL" envDefault:"https://pokeapi.co/api/v2"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`

	Storage Storage `env:"STORAGE" envDefault:"bolt"`
	// BoltPath and SQLitePath default to files under the user cache directory
	BoltPath   string        `env:"BOLT_PATH"`
	SQLitePath string        `env:"SQLITE_PATH"`
	RedisAddr  string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	CacheTTL   time.Duration `env:"CACHE_TTL" envDefault:"0s"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Load parses the process environment. The result is not validated so
// command line overrides can be applied first; call Validate afterwards.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given variables instead of the process environment
// when environment is non-nil
func LoadFrom(environment map[string]string) (*Config, error) {
	cfg := &Config{}

	opts := env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	cfg.applyPathDefaults()

	return cfg, nil
}

func (c *Config) applyPathDefaults() {
	dir := DataDir()
	if c.BoltPath == "" {
		c.BoltPath = filepath.Join(dir, "cache.db")
	}
	if c.SQLitePath == "" {
		c.SQLitePath = filepath.Join(dir, "cache.sqlite")
	}
}

// DataDir is where local cache files live by default
func DataDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "poke-roster")
	}
	return ".poke-roster"
}

// Validate checks every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("APIBaseURL", c.APIBaseURL, vb)
	if c.HTTPTimeout <= 0 {
		vb.Field("HTTPTimeout", "must be positive")
	}
	if c.CacheTTL < 0 {
		vb.Field("CacheTTL", "must not be negative")
	}

	errors.ValidateEnum("Storage", string(c.Storage), []string{
		string(StorageBolt), string(StorageRedis), string(StorageSQLite), string(StorageNone),
	}, vb)

	switch c.Storage {
	case StorageBolt:
		errors.ValidateRequired("BoltPath", c.BoltPath, vb)
	case StorageSQLite:
		errors.ValidateRequired("SQLitePath", c.SQLitePath, vb)
	case StorageRedis:
		errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	}

	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Fieldf("LogLevel", "unknown level %q", c.LogLevel)
	}

	return vb.Build()
}

// SlogLevel returns the configured log level, warn when unrecognised
func (c *Config) SlogLevel() slog.Level {
	level, ok := parseLevel(c.LogLevel)
	if !ok {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, false
	}
	return level, true
}
