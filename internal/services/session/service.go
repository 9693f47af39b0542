// Package session owns the state of one interactive roster building session:
// the loaded creature, the roster and whether an add is currently allowed.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/poke-roster/internal/entities/pokemon"
	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/lookup"
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/team"
	"github.com/KirkDiggler/poke-roster/internal/pkg/idgen"
)

// Status messages
const (
	MsgLoading    = "Loading Pokémon data..."
	MsgCleared    = "Team cleared."
	MsgFallback   = "Something went wrong."
	MsgNoneLoaded = "Load a Pokémon before adding it to the team."
	MsgReload     = "Load the Pokémon again before adding another team member."
)

// Config holds the dependencies for a session
type Config struct {
	Lookup lookup.Service
	// Roster defaults to an empty roster
	Roster *team.Roster
	// IDGenerator defaults to prefixed UUIDs
	IDGenerator idgen.Generator
	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Lookup == nil {
		vb.RequiredField("Lookup")
	}

	return vb.Build()
}

// Session is safe for concurrent use. Overlapping loads are allowed; only
// the most recent one may change state.
type Session struct {
	id     string
	lookup lookup.Service
	roster *team.Roster
	logger *slog.Logger

	mu         sync.Mutex
	current    *pokemon.Record
	canAdd     bool
	generation uint64
	cancelLoad context.CancelFunc
	status     Status
}

// NewSession creates a session with an empty roster and nothing loaded
func NewSession(cfg *Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roster := cfg.Roster
	if roster == nil {
		roster = team.NewRoster()
	}

	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID("session")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	id := gen.Generate()

	return &Session{
		id:     id,
		lookup: cfg.Lookup,
		roster: roster,
		logger: logger.With("session_id", id),
	}, nil
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Load resolves key and makes it the current creature.
// A blank key is rejected without touching the current creature. Otherwise
// the current creature is cleared and add disabled until the lookup
// succeeds. Starting a load cancels any load still in flight; a load that
// has been superseded returns errors.Canceled and changes nothing.
func (s *Session) Load(ctx context.Context, key string) (Status, error) {
	if pokemon.NormalizeKey(key) == "" {
		err := errors.InvalidArgument(lookup.EmptyKeyMessage)
		return s.fail(err), err
	}

	loadCtx, gen := s.beginLoad(ctx)

	output, err := s.lookup.Resolve(loadCtx, &lookup.ResolveInput{Key: key})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug("Discarding superseded load", "key", key, "generation", gen)
		return Status{}, errors.Canceled("load superseded by a newer one").WithMeta("key", key)
	}
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}

	if err != nil {
		if ctx.Err() != nil {
			s.status = Status{}
			return Status{}, err
		}
		s.logger.Debug("Load failed", "key", key, "error", err)
		s.status = ErrorStatus(err)
		return s.status, err
	}

	s.current = output.Record
	s.canAdd = true

	name := pokemon.DisplayName(output.Record.Name())
	s.logger.Info("Loaded pokemon", "key", output.Key, "source", output.Source)
	s.status = Status{Message: fmt.Sprintf("Loaded %s. Pick 4 moves and click \"Add to Team\".", name)}

	return s.status, nil
}

func (s *Session) beginLoad(ctx context.Context) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelLoad != nil {
		s.cancelLoad()
	}

	loadCtx, cancel := context.WithCancel(ctx)
	s.generation++
	s.cancelLoad = cancel
	s.current = nil
	s.canAdd = false
	s.status = Status{Message: MsgLoading}

	return loadCtx, s.generation
}

// Add validates the selected moves and appends the current creature to
// the roster. A capacity or validation failure disables add until the next
// successful Load.
func (s *Session) Add(selected []string) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		err := errors.FailedPrecondition(MsgNoneLoaded)
		s.status = ErrorStatus(err)
		return s.status, err
	}
	if !s.canAdd {
		err := errors.FailedPrecondition(MsgReload)
		s.status = ErrorStatus(err)
		return s.status, err
	}

	member, err := s.roster.AddMember(s.current, selected)
	if err != nil {
		// a rejected add stays disabled until the next successful load
		s.canAdd = false
		s.status = ErrorStatus(err)
		return s.status, err
	}

	s.logger.Info("Added team member", "name", member.Name, "size", s.roster.Len())
	s.status = Status{Message: fmt.Sprintf("%s added to your team!", member.Name)}

	return s.status, nil
}

// Remove drops the member at the zero-based index
func (s *Session) Remove(index int) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, err := s.roster.RemoveMember(index)
	if err != nil {
		s.status = ErrorStatus(err)
		return s.status, err
	}

	s.status = Status{Message: fmt.Sprintf("Removed %s from your team.", member.Name)}
	return s.status, nil
}

// Clear empties the roster
func (s *Session) Clear() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster.Clear()
	s.status = Status{Message: MsgCleared}
	return s.status
}

// View returns a snapshot of the session
func (s *Session) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := &View{
		Members: s.roster.Members(),
		CanAdd:  s.canAdd,
		Status:  s.status,
	}

	if s.current != nil {
		view.Current = NewCreature(s.current)
	}

	return view
}

// NewCreature extracts the selectable view of a record
func NewCreature(record *pokemon.Record) *Creature {
	if record == nil {
		return nil
	}

	return &Creature{
		ID:        record.ID(),
		Name:      pokemon.DisplayName(record.Name()),
		SpriteURL: pokemon.SelectSprite(record),
		CryURL:    pokemon.SelectCry(record),
		Moves:     pokemon.SelectMoveNames(record),
	}
}

// Close cancels any load still in flight. Its result is discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.cancelLoad != nil {
		s.cancelLoad()
		s.cancelLoad = nil
	}
}

func (s *Session) fail(err error) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = ErrorStatus(err)
	return s.status
}

// ErrorStatus turns an error into the status shown to the user. Errors without
// a user facing code get a generic message.
func ErrorStatus(err error) Status {
	if errors.GetCode(err).UserFacing() {
		return Status{Message: errors.GetMessage(err), IsError: true}
	}
	return Status{Message: MsgFallback, IsError: true}
}
