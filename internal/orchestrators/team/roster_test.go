package team_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/poke-roster/internal/entities/pokemon"
	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/team"
	"github.com/KirkDiggler/poke-roster/internal/testutils"
)

type RosterTestSuite struct {
	suite.Suite
	roster    *team.Roster
	pikachu   *pokemon.Record
	bulbasaur *pokemon.Record
	moves     []string
}

func TestRosterSuite(t *testing.T) {
	suite.Run(t, new(RosterTestSuite))
}

func (s *RosterTestSuite) SetupTest() {
	s.roster = team.NewRoster()
	s.pikachu = testutils.CreateTestRecord(s.T(), testutils.PikachuJSON)
	s.bulbasaur = testutils.CreateTestRecord(s.T(), testutils.BulbasaurJSON)
	s.moves = []string{"growl", "quick-attack", "tail-whip", "thunderbolt"}
}

func (s *RosterTestSuite) fill(n int) {
	for i := 0; i < n; i++ {
		_, err := s.roster.AddMember(s.pikachu, s.moves)
		s.Require().NoError(err)
	}
}

func (s *RosterTestSuite) TestAddMemberBuildsMember() {
	member, err := s.roster.AddMember(s.pikachu, s.moves)
	s.Require().NoError(err)

	s.Equal(25, member.ID)
	s.Equal("Pikachu", member.Name)
	s.Equal("https://example.test/artwork/25.png", member.SpriteURL)
	s.Equal("https://example.test/cries/latest/25.ogg", member.CryURL)
	s.True(member.HasCry())
	s.Equal(s.moves, member.Moves)
	s.Equal(1, s.roster.Len())
}

func (s *RosterTestSuite) TestAddMemberFallsBackForSpriteAndCry() {
	member, err := s.roster.AddMember(s.bulbasaur, []string{"tackle", "growl", "vine-whip", "razor-leaf"})
	s.Require().NoError(err)

	s.Equal("Bulbasaur", member.Name)
	s.Equal("https://example.test/sprites/1.png", member.SpriteURL)
	s.Equal("https://example.test/cries/legacy/1.ogg", member.CryURL)
}

func (s *RosterTestSuite) TestAddMemberCopiesSelection() {
	selected := []string{"growl", "quick-attack", "tail-whip", "thunderbolt"}
	member, err := s.roster.AddMember(s.pikachu, selected)
	s.Require().NoError(err)

	selected[0] = "splash"
	s.Equal("growl", member.Moves[0])
}

func (s *RosterTestSuite) TestAddMemberWrongCount() {
	testCases := []struct {
		name     string
		selected []string
	}{
		{name: "none", selected: nil},
		{name: "three", selected: []string{"growl", "tail-whip", "thunderbolt"}},
		{name: "five", selected: []string{"growl", "tail-whip", "thunderbolt", "quick-attack", "thunder-shock"}},
		{name: "blank slot", selected: []string{"growl", "", "thunderbolt", "quick-attack"}},
		{name: "four plus blank", selected: []string{"growl", "quick-attack", "tail-whip", "thunderbolt", ""}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			member, err := s.roster.AddMember(s.pikachu, tc.selected)
			s.Nil(member)
			s.True(errors.IsSelectionCount(err))
			s.Equal(team.MsgSelectionCount, errors.GetMessage(err))
			s.Equal(0, s.roster.Len())
		})
	}
}

func (s *RosterTestSuite) TestAddMemberDuplicates() {
	member, err := s.roster.AddMember(s.pikachu, []string{"tackle", "tackle", "growl", "roar"})
	s.Nil(member)
	s.True(errors.IsDuplicateSelection(err))
	s.Equal(team.MsgDuplicateSelection, errors.GetMessage(err))
	s.Equal(0, s.roster.Len())
}

func (s *RosterTestSuite) TestAddMemberFillsToCapacity() {
	s.fill(team.Capacity - 1)
	s.False(s.roster.Full())

	_, err := s.roster.AddMember(s.pikachu, s.moves)
	s.Require().NoError(err)
	s.Equal(team.Capacity, s.roster.Len())
	s.True(s.roster.Full())

	_, err = s.roster.AddMember(s.pikachu, s.moves)
	s.True(errors.IsRosterFull(err))
	s.Equal(team.MsgRosterFull, errors.GetMessage(err))
}

func (s *RosterTestSuite) TestAddMemberFullIgnoresSelection() {
	s.fill(team.Capacity)

	_, err := s.roster.AddMember(s.pikachu, []string{"tackle", "tackle"})
	s.True(errors.IsRosterFull(err))
	s.Equal(team.Capacity, s.roster.Len())
}

func (s *RosterTestSuite) TestAddMemberWithoutRecord() {
	_, err := s.roster.AddMember(nil, s.moves)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(0, s.roster.Len())
}

func (s *RosterTestSuite) TestRemoveMember() {
	_, err := s.roster.AddMember(s.pikachu, s.moves)
	s.Require().NoError(err)
	_, err = s.roster.AddMember(s.bulbasaur, []string{"tackle", "growl", "vine-whip", "razor-leaf"})
	s.Require().NoError(err)

	removed, err := s.roster.RemoveMember(0)
	s.Require().NoError(err)
	s.Equal("Pikachu", removed.Name)

	members := s.roster.Members()
	s.Require().Len(members, 1)
	s.Equal("Bulbasaur", members[0].Name)
}

func (s *RosterTestSuite) TestRemoveMemberOutOfRange() {
	s.fill(2)

	for _, index := range []int{-1, 2, 10} {
		_, err := s.roster.RemoveMember(index)
		s.True(errors.IsOutOfRange(err), "index %d", index)
	}
	s.Equal(2, s.roster.Len())
}

func (s *RosterTestSuite) TestClear() {
	s.fill(3)

	s.roster.Clear()
	s.Equal(0, s.roster.Len())
	s.Empty(s.roster.Members())

	s.roster.Clear()
	s.Equal(0, s.roster.Len())
}

func (s *RosterTestSuite) TestMembersReturnsSnapshot() {
	s.fill(2)

	members := s.roster.Members()
	members[0] = nil

	s.NotNil(s.roster.Members()[0])
}

func TestValidateSelection(t *testing.T) {
	assert.NoError(t, team.ValidateSelection([]string{"a", "b", "c", "d"}))
	assert.True(t, errors.IsSelectionCount(team.ValidateSelection([]string{"a", "b", "c"})))
	assert.True(t, errors.IsDuplicateSelection(team.ValidateSelection([]string{"a", "b", "a", "d"})))
	assert.True(t, errors.IsSelectionCount(team.ValidateSelection([]string{"a", "b", "c", ""})))
	assert.True(t, errors.IsSelectionCount(team.ValidateSelection([]string{"a", "b", "c", "d", ""})))
}
