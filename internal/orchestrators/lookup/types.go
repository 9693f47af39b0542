package lookup

import (
	"github.com/KirkDiggler/poke-roster/internal/entities/pokemon"
)

// Source reports which tier satisfied a resolve
type Source string

const (
	// SourceMemory means the in-process map already held the record
	SourceMemory Source = "memory"
	// SourcePersistent means the record came from the persistent store
	SourcePersistent Source = "persistent"
	// SourceNetwork means the upstream service was called
	SourceNetwork Source = "network"
)

// ResolveInput defines the request for resolving a creature
type ResolveInput struct {
	// Key is the raw user input, a name or numeric id
	Key string
}

// ResolveOutput defines the response for resolving a creature
type ResolveOutput struct {
	// Key is the normalized form of the input
	Key    string
	Record *pokemon.Record
	Source Source
}
