package creaturecache

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/poke-roster/internal/errors"
	redisclient "github.com/KirkDiggler/poke-roster/internal/redis"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// TTL applied to every entry, 0 keeps entries until evicted externally
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed creature cache
func NewRedisRepository(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	result, err := r.client.Get(ctx, storageKey(input.Key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf(errNotFound, input.Key)
		}
		return nil, errors.Wrapf(err, "failed to get cached record")
	}

	return &GetOutput{Data: result}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if len(input.Data) == 0 {
		return nil, errors.InvalidArgument(errDataEmpty)
	}

	if err := r.client.Set(ctx, storageKey(input.Key), input.Data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to store cached record")
	}

	return &PutOutput{}, nil
}

func (r *redisRepository) Close() error {
	return r.client.Close()
}
