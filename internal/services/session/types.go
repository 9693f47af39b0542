package session

import (
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/team"
)

// Status is the one-line outcome of the last operation
type Status struct {
	Message string
	IsError bool
}

// Creature is the loaded record reduced to what the user picks from
type Creature struct {
	ID        int
	Name      string
	SpriteURL string
	CryURL    string
	// Moves are the selectable move names, sorted
	Moves []string
}

// View is a point-in-time snapshot of the session for rendering
type View struct {
	// Current is nil while no record is loaded
	Current *Creature
	Members []*team.Member
	CanAdd  bool
	Status  Status
}
