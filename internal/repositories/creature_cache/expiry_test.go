package creaturecache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/pkg/clock"
	creaturecache "github.com/KirkDiggler/poke-roster/internal/repositories/creature_cache"
)

func TestFileBackedExpiry(t *testing.T) {
	factories := map[string]repositoryFactory{
		"bolt":   newBolt,
		"sqlite": newSQLite,
	}

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			clk := clock.NewManual(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
			repo := factory(t, clk, time.Hour)
			defer func() { _ = repo.Close() }()

			_, err := repo.Put(ctx, creaturecache.PutInput{Key: "pikachu", Data: []byte(`{"id":25}`)})
			require.NoError(t, err)

			clk.Advance(59 * time.Minute)
			_, err = repo.Get(ctx, creaturecache.GetInput{Key: "pikachu"})
			require.NoError(t, err)

			clk.Advance(time.Minute)
			_, err = repo.Get(ctx, creaturecache.GetInput{Key: "pikachu"})
			assert.True(t, errors.IsNotFound(err))
		})
	}
}

func TestConfigValidation(t *testing.T) {
	_, err := creaturecache.NewBoltRepository(&creaturecache.BoltConfig{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = creaturecache.NewSQLiteRepository(&creaturecache.SQLiteConfig{Path: "x.db"})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = creaturecache.NewRedisRepository(&creaturecache.RedisConfig{})
	assert.True(t, errors.IsInvalidArgument(err))
}
