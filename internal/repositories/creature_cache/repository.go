// Package creaturecache defines the persistent tier of the creature cache
package creaturecache

//go:generate mockgen -destination=mock/mock_repository.go -package=creaturecachemock github.com/KirkDiggler/poke-roster/internal/repositories/creature_cache Repository

import (
	"context"
)

const (
	// KeyPrefix namespaces every stored record
	KeyPrefix = "pokeCache_v1_"

	// Error messages
	errKeyEmpty  = "key cannot be empty"
	errDataEmpty = "data cannot be empty"
	errNotFound  = "no cached record for key %s"
)

// Repository stores raw creature records keyed by normalized lookup key.
// Implementations apply KeyPrefix themselves; callers pass bare keys.
type Repository interface {
	// Get retrieves the record stored for a key
	// Returns errors.InvalidArgument for empty keys
	// Returns errors.NotFound if nothing is stored or the entry expired
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores or replaces the record for a key
	// Returns errors.InvalidArgument for empty keys or data
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Close releases the underlying store
	Close() error
}

// GetInput defines the input for reading a record
type GetInput struct {
	Key string
}

// GetOutput defines the output for reading a record
type GetOutput struct {
	Data []byte
}

// PutInput defines the input for storing a record
type PutInput struct {
	Key  string
	Data []byte
}

// PutOutput defines the output for storing a record
type PutOutput struct{}

func storageKey(key string) string {
	return KeyPrefix + key
}
