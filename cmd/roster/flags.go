package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/poke-roster/internal/config"
)

var (
	cfg *config.Config

	apiBaseURL  string
	httpTimeout time.Duration
	storage     string
	boltPath    string
	sqlitePath  string
	redisAddr   string
	cacheTTL    time.Duration
	logLevel    string
	noColor     bool
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiBaseURL, "api-base-url", "", "PokeAPI base URL (env ROSTER_API_BASE_URL)")
	flags.DurationVar(&httpTimeout, "http-timeout", 0, "Upstream request timeout (env ROSTER_HTTP_TIMEOUT)")
	flags.StringVar(&storage, "storage", "", "Persistent cache: bolt, redis, sqlite or none (env ROSTER_STORAGE)")
	flags.StringVar(&boltPath, "bolt-path", "", "bbolt cache file (env ROSTER_BOLT_PATH)")
	flags.StringVar(&sqlitePath, "sqlite-path", "", "SQLite cache file (env ROSTER_SQLITE_PATH)")
	flags.StringVar(&redisAddr, "redis-addr", "", "Redis address (env ROSTER_REDIS_ADDR)")
	flags.DurationVar(&cacheTTL, "cache-ttl", 0, "Persistent cache entry lifetime, 0 keeps forever (env ROSTER_CACHE_TTL)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env ROSTER_LOG_LEVEL)")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadConfig reads the environment, applies explicitly set flags and
// installs the default logger
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-base-url") {
		loaded.APIBaseURL = apiBaseURL
	}
	if flags.Changed("http-timeout") {
		loaded.HTTPTimeout = httpTimeout
	}
	if flags.Changed("storage") {
		loaded.Storage = config.Storage(storage)
	}
	if flags.Changed("bolt-path") {
		loaded.BoltPath = boltPath
	}
	if flags.Changed("sqlite-path") {
		loaded.SQLitePath = sqlitePath
	}
	if flags.Changed("redis-addr") {
		loaded.RedisAddr = redisAddr
	}
	if flags.Changed("cache-ttl") {
		loaded.CacheTTL = cacheTTL
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}

	if err := loaded.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: loaded.SlogLevel(),
	})))

	cfg = loaded
	return nil
}
