// Package render writes session state as plain text
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/team"
	"github.com/KirkDiggler/poke-roster/internal/services/session"
)

// Placeholder texts
const (
	MsgNoCry        = "No cry audio found for this Pokémon."
	MsgNoMemberCry  = "No cry audio available for this Pokémon."
	MsgEmptyRoster  = "No team members yet. Load a Pokémon, pick moves, click Add to Team."
	MsgNothingShown = "Nothing loaded. Enter a Pokémon name or ID."
)

// Config configures a Renderer
type Config struct {
	Writer io.Writer
	// Color enables ANSI highlighting
	Color bool
}

// Validate ensures the writer is set
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Writer == nil {
		vb.RequiredField("Writer")
	}

	return vb.Build()
}

// Renderer writes creatures, rosters and status lines to a writer
type Renderer struct {
	color bool

	w   io.Writer
	err error
}

// NewRenderer creates a renderer for the configured writer
func NewRenderer(cfg *Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Renderer{w: cfg.Writer, color: cfg.Color}, nil
}

// View writes the loaded creature, the roster and the status line
func (r *Renderer) View(view *session.View) error {
	if view == nil {
		return nil
	}

	if err := r.Creature(view.Current); err != nil {
		return err
	}
	r.println("")
	if err := r.flush(); err != nil {
		return err
	}
	if err := r.Roster(view.Members); err != nil {
		return err
	}
	if view.Status.Message == "" {
		return nil
	}
	r.println("")
	if err := r.flush(); err != nil {
		return err
	}
	return r.Status(view.Status)
}

// Creature writes the loaded creature with its numbered move list
func (r *Renderer) Creature(c *session.Creature) error {
	r.err = nil

	if c == nil {
		r.println(r.paint(darkGray, MsgNothingShown))
		return r.flush()
	}

	r.printf("%s %s\n", r.paint(boldCyan, c.Name), r.paint(darkGray, fmt.Sprintf("#%d", c.ID)))
	r.printf("  Sprite: %s\n", orNone(c.SpriteURL))
	if c.CryURL != "" {
		r.printf("  Cry:    %s\n", c.CryURL)
	} else {
		r.printf("  %s\n", r.paint(darkGray, MsgNoCry))
	}

	r.printf("  Moves (%d):\n", len(c.Moves))
	width := len(fmt.Sprint(len(c.Moves)))
	for i, move := range c.Moves {
		r.printf("    %*d. %s\n", width, i+1, move)
	}

	return r.flush()
}

// Roster writes one card per member, numbered from 1
func (r *Renderer) Roster(members []*team.Member) error {
	r.err = nil

	r.printf("Team (%d/%d)\n", len(members), team.Capacity)
	if len(members) == 0 {
		r.printf("  %s\n", r.paint(darkGray, MsgEmptyRoster))
		return r.flush()
	}

	for i, m := range members {
		r.printf("  %d. %s\n", i+1, r.paint(boldCyan, m.Name))
		r.printf("     ID: %d\n", m.ID)
		r.printf("     Sprite: %s\n", orNone(m.SpriteURL))
		r.printf("     Moves: %s\n", strings.Join(m.Moves, ", "))
		if m.HasCry() {
			r.printf("     Cry: %s\n", m.CryURL)
		} else {
			r.printf("     %s\n", r.paint(darkGray, MsgNoMemberCry))
		}
	}

	return r.flush()
}

// Status writes a single status line marked as error or info
func (r *Renderer) Status(status session.Status) error {
	r.err = nil

	if status.IsError {
		r.printf("%s %s\n", r.paint(red, "[error]"), status.Message)
	} else {
		r.printf("%s %s\n", r.paint(green, "[ok]"), status.Message)
	}

	return r.flush()
}

// printf records the first write error and skips the rest
func (r *Renderer) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

func (r *Renderer) println(s string) {
	r.printf("%s\n", s)
}

func (r *Renderer) flush() error {
	if r.err != nil {
		return errors.Wrap(r.err, "failed to write output")
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
