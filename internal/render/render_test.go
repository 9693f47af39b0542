package render_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/team"
	"github.com/KirkDiggler/poke-roster/internal/render"
	"github.com/KirkDiggler/poke-roster/internal/services/session"
)

type RenderTestSuite struct {
	suite.Suite
	buf      *bytes.Buffer
	renderer *render.Renderer
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func (s *RenderTestSuite) SetupTest() {
	s.buf = &bytes.Buffer{}
	renderer, err := render.NewRenderer(&render.Config{Writer: s.buf})
	s.Require().NoError(err)
	s.renderer = renderer
}

func (s *RenderTestSuite) TestCreature() {
	err := s.renderer.Creature(&session.Creature{
		ID:        25,
		Name:      "Pikachu",
		SpriteURL: "https://example.test/artwork/25.png",
		CryURL:    "https://example.test/cries/latest/25.ogg",
		Moves:     []string{"growl", "quick-attack"},
	})
	s.Require().NoError(err)

	s.Equal("Pikachu #25\n"+
		"  Sprite: https://example.test/artwork/25.png\n"+
		"  Cry:    https://example.test/cries/latest/25.ogg\n"+
		"  Moves (2):\n"+
		"    1. growl\n"+
		"    2. quick-attack\n", s.buf.String())
}

func (s *RenderTestSuite) TestCreatureWithoutCryOrSprite() {
	err := s.renderer.Creature(&session.Creature{ID: 1, Name: "Bulbasaur"})
	s.Require().NoError(err)

	s.Contains(s.buf.String(), "Sprite: (none)")
	s.Contains(s.buf.String(), render.MsgNoCry)
	s.Contains(s.buf.String(), "Moves (0):")
}

func (s *RenderTestSuite) TestNoCreature() {
	s.Require().NoError(s.renderer.Creature(nil))
	s.Equal(render.MsgNothingShown+"\n", s.buf.String())
}

func (s *RenderTestSuite) TestEmptyRoster() {
	s.Require().NoError(s.renderer.Roster(nil))
	s.Equal("Team (0/6)\n  "+render.MsgEmptyRoster+"\n", s.buf.String())
}

func (s *RenderTestSuite) TestRoster() {
	err := s.renderer.Roster([]*team.Member{
		{
			ID:        25,
			Name:      "Pikachu",
			SpriteURL: "https://example.test/artwork/25.png",
			CryURL:    "https://example.test/cries/latest/25.ogg",
			Moves:     []string{"growl", "quick-attack", "tail-whip", "thunderbolt"},
		},
		{
			ID:    1,
			Name:  "Bulbasaur",
			Moves: []string{"growl", "razor-leaf", "tackle", "vine-whip"},
		},
	})
	s.Require().NoError(err)

	out := s.buf.String()
	s.Contains(out, "Team (2/6)\n")
	s.Contains(out, "  1. Pikachu\n     ID: 25\n")
	s.Contains(out, "     Moves: growl, quick-attack, tail-whip, thunderbolt\n")
	s.Contains(out, "     Cry: https://example.test/cries/latest/25.ogg\n")
	s.Contains(out, "  2. Bulbasaur\n     ID: 1\n")
	s.Contains(out, "     "+render.MsgNoMemberCry+"\n")
}

func (s *RenderTestSuite) TestStatus() {
	s.Require().NoError(s.renderer.Status(session.Status{Message: "Team cleared."}))
	s.Require().NoError(s.renderer.Status(session.Status{Message: team.MsgRosterFull, IsError: true}))

	s.Equal("[ok] Team cleared.\n[error] "+team.MsgRosterFull+"\n", s.buf.String())
}

func (s *RenderTestSuite) TestView() {
	err := s.renderer.View(&session.View{
		Status: session.Status{Message: session.MsgCleared},
	})
	s.Require().NoError(err)

	s.Equal(render.MsgNothingShown+"\n\n"+
		"Team (0/6)\n  "+render.MsgEmptyRoster+"\n\n"+
		"[ok] Team cleared.\n", s.buf.String())
}

func TestColorOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	renderer, err := render.NewRenderer(&render.Config{Writer: buf, Color: true})
	require.NoError(t, err)

	require.NoError(t, renderer.Status(session.Status{Message: "nope", IsError: true}))
	assert.Equal(t, "\033[31m[error]\033[0m nope\n", buf.String())
}

func TestNewRendererRequiresWriter(t *testing.T) {
	_, err := render.NewRenderer(&render.Config{})
	assert.True(t, errors.IsInvalidArgument(err))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestWriteFailure(t *testing.T) {
	renderer, err := render.NewRenderer(&render.Config{Writer: failingWriter{}})
	require.NoError(t, err)

	err = renderer.Roster(nil)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
	assert.True(t, errors.IsInternal(err))
}
