// Package lookup implements the two-tier creature cache in front of the
// upstream lookup service.
package lookup

//go:generate mockgen -destination=mock/mock_service.go -package=lookupmock github.com/KirkDiggler/poke-roster/internal/orchestrators/lookup Service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/poke-roster/internal/clients/pokeapi"
	"github.com/KirkDiggler/poke-roster/internal/entities/pokemon"
	"github.com/KirkDiggler/poke-roster/internal/errors"
	creaturecache "github.com/KirkDiggler/poke-roster/internal/repositories/creature_cache"
)

// EmptyKeyMessage is returned when the input normalizes to nothing
const EmptyKeyMessage = "Please enter a Pokémon name or ID."

// Service resolves creature records by name or id
type Service interface {
	// Resolve normalizes the key and returns the record from memory, the
	// persistent store or the upstream service, in that order.
	// Returns errors.InvalidArgument for blank keys
	// Returns errors.NotFound when the upstream service has no match
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}

// Config holds the dependencies for the lookup orchestrator
type Config struct {
	Client pokeapi.Client
	// Repository is the persistent tier; nil keeps the cache in memory only
	Repository creaturecache.Repository
	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

type orchestrator struct {
	client pokeapi.Client
	repo   creaturecache.Repository
	logger *slog.Logger

	mu     sync.RWMutex
	memory map[string]*pokemon.Record

	// concurrent resolves of one key share a single load
	group singleflight.Group
}

// NewOrchestrator creates a new lookup orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &orchestrator{
		client: cfg.Client,
		repo:   cfg.Repository,
		logger: logger,
		memory: make(map[string]*pokemon.Record),
	}, nil
}

type loadResult struct {
	record *pokemon.Record
	source Source
}

func (o *orchestrator) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	key := pokemon.NormalizeKey(input.Key)
	if key == "" {
		return nil, errors.InvalidArgument(EmptyKeyMessage)
	}

	if record, ok := o.fromMemory(key); ok {
		return &ResolveOutput{Key: key, Record: record, Source: SourceMemory}, nil
	}

	v, err, shared := o.group.Do(key, func() (interface{}, error) {
		return o.load(ctx, key)
	})
	if err != nil && shared && ctx.Err() == nil && isContextError(err) {
		// the caller that started the shared load went away; ours has not
		v, err, shared = o.group.Do(key, func() (interface{}, error) {
			return o.load(ctx, key)
		})
	}
	if err != nil {
		return nil, err
	}

	result := v.(*loadResult)
	if shared {
		o.logger.Debug("Shared in-flight lookup", "key", key, "source", result.source)
	}

	return &ResolveOutput{Key: key, Record: result.record, Source: result.source}, nil
}

// load runs once per key at a time under the singleflight group
func (o *orchestrator) load(ctx context.Context, key string) (*loadResult, error) {
	// a load that finished while we waited for the group may have filled memory
	if record, ok := o.fromMemory(key); ok {
		return &loadResult{record: record, source: SourceMemory}, nil
	}

	if record, ok := o.readPersistent(ctx, key); ok {
		o.storeMemory(key, record)
		return &loadResult{record: record, source: SourcePersistent}, nil
	}

	record, err := o.client.GetPokemon(ctx, key)
	if err != nil {
		return nil, err
	}

	o.storeMemory(key, record)
	o.writePersistent(ctx, key, record)
	o.logger.Info("Fetched pokemon from upstream", "key", key, "name", record.Name(), "id", record.ID())

	return &loadResult{record: record, source: SourceNetwork}, nil
}

func (o *orchestrator) fromMemory(key string) (*pokemon.Record, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	record, ok := o.memory[key]
	return record, ok
}

func (o *orchestrator) storeMemory(key string, record *pokemon.Record) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.memory[key] = record
}

// readPersistent is best-effort: every failure is logged and reported as a miss
func (o *orchestrator) readPersistent(ctx context.Context, key string) (*pokemon.Record, bool) {
	if o.repo == nil {
		return nil, false
	}

	output, err := o.repo.Get(ctx, creaturecache.GetInput{Key: key})
	if err != nil {
		if !errors.IsNotFound(err) {
			o.logger.Debug("Persistent cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	record, err := pokemon.NewRecord(output.Data)
	if err != nil {
		o.logger.Debug("Ignoring corrupt persistent cache entry", "key", key, "error", err)
		return nil, false
	}

	return record, true
}

// writePersistent is best-effort: failures are logged and otherwise ignored
func (o *orchestrator) writePersistent(ctx context.Context, key string, record *pokemon.Record) {
	if o.repo == nil {
		return
	}

	if _, err := o.repo.Put(ctx, creaturecache.PutInput{Key: key, Data: record.Raw()}); err != nil {
		o.logger.Debug("Persistent cache write failed", "key", key, "error", err)
	}
}

func isContextError(err error) bool {
	code := errors.GetCode(err)
	return code == errors.CodeCanceled || code == errors.CodeDeadlineExceeded
}
