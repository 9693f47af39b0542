package creaturecache

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/pkg/clock"
)

const (
	sqliteSchema = `CREATE TABLE IF NOT EXISTS creature_cache (
	cache_key  TEXT PRIMARY KEY,
	data       BLOB NOT NULL,
	expires_at INTEGER NOT NULL DEFAULT 0
)`

	sqliteSelect = `SELECT data, expires_at FROM creature_cache WHERE cache_key = ?`

	sqliteUpsert = `INSERT INTO creature_cache (cache_key, data, expires_at) VALUES (?, ?, ?)
ON CONFLICT(cache_key) DO UPDATE SET data = excluded.data, expires_at = excluded.expires_at`
)

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	// Path to the database file, created if missing
	Path string
	// TTL applied to every entry, 0 keeps entries forever
	TTL   time.Duration
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", c.Path, vb)
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	return vb.Build()
}

type sqliteRepository struct {
	db    *sql.DB
	ttl   time.Duration
	clock clock.Clock
}

// NewSQLiteRepository opens (or creates) a SQLite backed creature cache
func NewSQLiteRepository(cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database %s", cfg.Path)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create creature_cache table")
	}

	return &sqliteRepository{
		db:    db,
		ttl:   cfg.TTL,
		clock: cfg.Clock,
	}, nil
}

// Ensure sqliteRepository implements Repository
var _ Repository = (*sqliteRepository)(nil)

func (r *sqliteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	var data []byte
	var expiresAt int64
	err := r.db.QueryRowContext(ctx, sqliteSelect, storageKey(input.Key)).Scan(&data, &expiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf(errNotFound, input.Key)
		}
		return nil, errors.Wrapf(err, "failed to get cached record")
	}

	if expiresAt > 0 && r.clock.Now().Unix() >= expiresAt {
		return nil, errors.NotFoundf(errNotFound, input.Key)
	}

	return &GetOutput{Data: data}, nil
}

func (r *sqliteRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument(errDataEmpty)
	}

	var expiresAt int64
	if r.ttl > 0 {
		expiresAt = r.clock.Now().Add(r.ttl).Unix()
	}

	if _, err := r.db.ExecContext(ctx, sqliteUpsert, storageKey(input.Key), input.Data, expiresAt); err != nil {
		return nil, errors.Wrapf(err, "failed to store cached record")
	}

	return &PutOutput{}, nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}
