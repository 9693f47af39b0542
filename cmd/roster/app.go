package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/KirkDiggler/poke-roster/internal/clients/pokeapi"
	"github.com/KirkDiggler/poke-roster/internal/config"
	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/lookup"
	"github.com/KirkDiggler/poke-roster/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/poke-roster/internal/redis"
	"github.com/KirkDiggler/poke-roster/internal/render"
	creaturecache "github.com/KirkDiggler/poke-roster/internal/repositories/creature_cache"
)

const redisPingTimeout = 2 * time.Second

// app holds the wired dependencies shared by every command
type app struct {
	lookup lookup.Service
	repo   creaturecache.Repository
}

func newApp(ctx context.Context, cfg *config.Config, client pokeapi.Client) (*app, error) {
	if client == nil {
		var err error
		client, err = pokeapi.New(&pokeapi.Config{
			BaseURL:     cfg.APIBaseURL,
			HTTPTimeout: cfg.HTTPTimeout,
		})
		if err != nil {
			return nil, err
		}
	}

	// the persistent tier is optional; a store that cannot be opened only
	// costs us the cross-run cache
	repo, err := newRepository(ctx, cfg)
	if err != nil {
		slog.Warn("Persistent cache unavailable, caching in memory only",
			"storage", cfg.Storage, "error", err)
		repo = nil
	}

	svc, err := lookup.NewOrchestrator(&lookup.Config{
		Client:     client,
		Repository: repo,
		Logger:     slog.Default().With("component", "lookup"),
	})
	if err != nil {
		if repo != nil {
			_ = repo.Close()
		}
		return nil, err
	}

	return &app{lookup: svc, repo: repo}, nil
}

// Close releases the persistent store
func (a *app) Close() {
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(); err != nil {
		slog.Debug("Failed to close persistent cache", "error", err)
	}
}

// newRepository opens the configured persistent tier, nil for StorageNone
func newRepository(ctx context.Context, cfg *config.Config) (creaturecache.Repository, error) {
	switch cfg.Storage {
	case config.StorageNone:
		return nil, nil

	case config.StorageBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.BoltPath), 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create cache directory")
		}
		return creaturecache.NewBoltRepository(&creaturecache.BoltConfig{
			Path:  cfg.BoltPath,
			TTL:   cfg.CacheTTL,
			Clock: clock.New(),
		})

	case config.StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create cache directory")
		}
		return creaturecache.NewSQLiteRepository(&creaturecache.SQLiteConfig{
			Path:  cfg.SQLitePath,
			TTL:   cfg.CacheTTL,
			Clock: clock.New(),
		})

	case config.StorageRedis:
		client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
			MaxRetries:  1,
			DialTimeout: redisPingTimeout,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create redis client")
		}

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := redisclient.Ping(pingCtx, client); err != nil {
			_ = client.Close()
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is not reachable")
		}

		return creaturecache.NewRedisRepository(&creaturecache.RedisConfig{
			Client: client,
			TTL:    cfg.CacheTTL,
		})

	default:
		return nil, errors.InvalidArgumentf("unknown storage %q", cfg.Storage)
	}
}

// newRenderer colors output only when writing to a terminal
func newRenderer(w io.Writer, disableColor bool) (*render.Renderer, error) {
	color := false
	if f, ok := w.(*os.File); ok && !disableColor {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return render.NewRenderer(&render.Config{Writer: w, Color: color})
}
