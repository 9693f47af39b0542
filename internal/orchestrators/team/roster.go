// Package team validates move selections and maintains the bounded roster
package team

import (
	"sync"

	"github.com/KirkDiggler/poke-roster/internal/entities/pokemon"
	"github.com/KirkDiggler/poke-roster/internal/errors"
)

const (
	// Capacity is the maximum number of roster members
	Capacity = 6

	// MovesPerMember is the exact number of distinct moves a member needs
	MovesPerMember = 4
)

// User facing validation messages
const (
	MsgRosterFull         = "Team is full (6). Remove one or clear the team."
	MsgSelectionCount     = "Please select exactly 4 moves (one in each dropdown)."
	MsgDuplicateSelection = "No duplicates — choose 4 different moves."
	MsgNoRecord           = "Load a Pokémon before adding it to the team."
)

// Roster is the ordered, capacity bounded list of members.
// The zero value is an empty roster ready for use.
type Roster struct {
	mu      sync.RWMutex
	members []*Member
}

// NewRoster returns an empty roster
func NewRoster() *Roster {
	return &Roster{}
}

// AddMember validates the selections against the roster and, when they
// pass, appends a member built from record. A failed add leaves the roster
// untouched. A blank selection counts as an unset choice.
func (r *Roster) AddMember(record *pokemon.Record, selected []string) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.members) >= Capacity {
		return nil, errors.RosterFull(MsgRosterFull).WithMeta("size", len(r.members))
	}

	if err := ValidateSelection(selected); err != nil {
		return nil, err
	}

	if record == nil {
		return nil, errors.FailedPrecondition(MsgNoRecord)
	}

	member := &Member{
		ID:        record.ID(),
		Name:      pokemon.DisplayName(record.Name()),
		SpriteURL: pokemon.SelectSprite(record),
		CryURL:    pokemon.SelectCry(record),
		Moves:     append([]string(nil), selected...),
	}
	r.members = append(r.members, member)

	return member, nil
}

// ValidateSelection checks that moves holds exactly MovesPerMember
// non-blank, pairwise distinct entries.
func ValidateSelection(moves []string) error {
	if len(moves) != MovesPerMember {
		return errors.SelectionCount(MsgSelectionCount).WithMeta("count", len(moves))
	}
	for i, m := range moves {
		if m == "" {
			return errors.SelectionCount(MsgSelectionCount).WithMeta("blank", i)
		}
	}

	seen := make(map[string]struct{}, len(moves))
	for _, m := range moves {
		if _, ok := seen[m]; ok {
			return errors.DuplicateSelection(MsgDuplicateSelection).WithMeta("move", m)
		}
		seen[m] = struct{}{}
	}
	return nil
}

// RemoveMember removes the member at the zero-based index
func (r *Roster) RemoveMember(index int) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.members) {
		return nil, errors.OutOfRangef("no team member at position %d", index+1)
	}

	removed := r.members[index]
	r.members = append(r.members[:index], r.members[index+1:]...)
	return removed, nil
}

// Clear empties the roster
func (r *Roster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.members = nil
}

// Members returns a snapshot of the roster in order
func (r *Roster) Members() []*Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cp := make([]*Member, len(r.members))
	copy(cp, r.members)
	return cp
}

// Len returns the number of members
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members)
}

// Full reports whether another member would exceed Capacity
func (r *Roster) Full() bool {
	return r.Len() >= Capacity
}

