package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/poke-roster/internal/entities/pokemon"
	"github.com/KirkDiggler/poke-roster/internal/errors"
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/lookup"
	lookupmock "github.com/KirkDiggler/poke-roster/internal/orchestrators/lookup/mock"
	"github.com/KirkDiggler/poke-roster/internal/orchestrators/team"
	"github.com/KirkDiggler/poke-roster/internal/pkg/idgen"
	"github.com/KirkDiggler/poke-roster/internal/services/session"
	"github.com/KirkDiggler/poke-roster/internal/testutils"
)

type SessionTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockLookup *lookupmock.MockService
	session    *session.Session
	ctx        context.Context
	pikachu    *pokemon.Record
	bulbasaur  *pokemon.Record
	moves      []string
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockLookup = lookupmock.NewMockService(s.ctrl)
	s.ctx = context.Background()
	s.pikachu = testutils.CreateTestRecord(s.T(), testutils.PikachuJSON)
	s.bulbasaur = testutils.CreateTestRecord(s.T(), testutils.BulbasaurJSON)
	s.moves = []string{"growl", "quick-attack", "tail-whip", "thunderbolt"}

	sess, err := session.NewSession(&session.Config{
		Lookup:      s.mockLookup,
		IDGenerator: idgen.NewSequential("session"),
	})
	s.Require().NoError(err)
	s.session = sess
}

func (s *SessionTestSuite) TearDownTest() {
	s.session.Close()
	s.ctrl.Finish()
}

func (s *SessionTestSuite) expectResolve(key string, record *pokemon.Record) {
	s.mockLookup.EXPECT().
		Resolve(gomock.Any(), &lookup.ResolveInput{Key: key}).
		Return(&lookup.ResolveOutput{Key: pokemon.NormalizeKey(key), Record: record, Source: lookup.SourceNetwork}, nil)
}

func (s *SessionTestSuite) loadPikachu() {
	s.expectResolve("pikachu", s.pikachu)
	_, err := s.session.Load(s.ctx, "pikachu")
	s.Require().NoError(err)
}

func (s *SessionTestSuite) TestNewSessionRequiresLookup() {
	_, err := session.NewSession(&session.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *SessionTestSuite) TestSessionID() {
	s.Equal("session_1", s.session.ID())
}

func (s *SessionTestSuite) TestInitialView() {
	view := s.session.View()
	s.Nil(view.Current)
	s.Empty(view.Members)
	s.False(view.CanAdd)
	s.Empty(view.Status.Message)
}

func (s *SessionTestSuite) TestLoadSuccess() {
	s.expectResolve("Pikachu ", s.pikachu)

	status, err := s.session.Load(s.ctx, "Pikachu ")
	s.Require().NoError(err)
	s.False(status.IsError)
	s.Equal(`Loaded Pikachu. Pick 4 moves and click "Add to Team".`, status.Message)

	view := s.session.View()
	s.True(view.CanAdd)
	s.Require().NotNil(view.Current)
	s.Equal(25, view.Current.ID)
	s.Equal("Pikachu", view.Current.Name)
	s.Equal("https://example.test/artwork/25.png", view.Current.SpriteURL)
	s.Equal("https://example.test/cries/latest/25.ogg", view.Current.CryURL)
	s.Equal([]string{"growl", "quick-attack", "tail-whip", "thunder-shock", "thunderbolt"}, view.Current.Moves)
	s.Equal(status, view.Status)
}

func (s *SessionTestSuite) TestLoadBlankKeyKeepsCurrent() {
	s.loadPikachu()

	status, err := s.session.Load(s.ctx, "   ")
	s.True(errors.IsInvalidArgument(err))
	s.True(status.IsError)
	s.Equal(lookup.EmptyKeyMessage, status.Message)

	view := s.session.View()
	s.True(view.CanAdd)
	s.NotNil(view.Current)
}

func (s *SessionTestSuite) TestLoadNotFoundClearsCurrent() {
	s.loadPikachu()

	notFound := errors.NotFound("Pokemon not found. Try a name like 'pikachu' or an ID like '25'.")
	s.mockLookup.EXPECT().
		Resolve(gomock.Any(), &lookup.ResolveInput{Key: "missingno"}).
		Return(nil, notFound)

	status, err := s.session.Load(s.ctx, "missingno")
	s.True(errors.IsNotFound(err))
	s.True(status.IsError)
	s.Equal(notFound.Message, status.Message)

	view := s.session.View()
	s.Nil(view.Current)
	s.False(view.CanAdd)

	_, err = s.session.Add(s.moves)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *SessionTestSuite) TestLoadInternalFailureUsesFallback() {
	s.mockLookup.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("invalid upstream body"))

	status, err := s.session.Load(s.ctx, "pikachu")
	s.True(errors.IsInternal(err))
	s.Equal(session.Status{Message: session.MsgFallback, IsError: true}, status)
}

func (s *SessionTestSuite) TestAddBeforeLoad() {
	status, err := s.session.Add(s.moves)
	s.True(errors.IsFailedPrecondition(err))
	s.True(status.IsError)
	s.Equal(session.MsgNoneLoaded, status.Message)
	s.Empty(s.session.View().Members)
}

func (s *SessionTestSuite) TestAddSuccess() {
	s.loadPikachu()

	status, err := s.session.Add(s.moves)
	s.Require().NoError(err)
	s.Equal(session.Status{Message: "Pikachu added to your team!"}, status)

	view := s.session.View()
	s.Require().Len(view.Members, 1)
	s.Equal("Pikachu", view.Members[0].Name)
	s.True(view.CanAdd)
}

func (s *SessionTestSuite) TestAddValidationFailureDisablesAddUntilLoad() {
	s.loadPikachu()

	status, err := s.session.Add([]string{"growl", "growl", "tail-whip", "thunderbolt"})
	s.True(errors.IsDuplicateSelection(err))
	s.Equal(session.Status{Message: team.MsgDuplicateSelection, IsError: true}, status)
	s.False(s.session.View().CanAdd)
	s.NotNil(s.session.View().Current)

	status, err = s.session.Add(s.moves)
	s.True(errors.IsFailedPrecondition(err))
	s.Equal(session.Status{Message: session.MsgReload, IsError: true}, status)
	s.Empty(s.session.View().Members)

	s.loadPikachu()
	_, err = s.session.Add(s.moves)
	s.Require().NoError(err)
	s.Len(s.session.View().Members, 1)
}

func (s *SessionTestSuite) TestAddSelectionCountFailureDisablesAdd() {
	s.loadPikachu()

	status, err := s.session.Add([]string{"growl", "quick-attack", "tail-whip", "thunderbolt", ""})
	s.True(errors.IsSelectionCount(err))
	s.Equal(team.MsgSelectionCount, status.Message)

	_, err = s.session.Add(s.moves)
	s.True(errors.IsFailedPrecondition(err))
	s.Empty(s.session.View().Members)
}

func (s *SessionTestSuite) TestAddOnFullRoster() {
	s.loadPikachu()
	for i := 0; i < team.Capacity; i++ {
		_, err := s.session.Add(s.moves)
		s.Require().NoError(err)
	}

	status, err := s.session.Add(s.moves)
	s.True(errors.IsRosterFull(err))
	s.Equal(session.Status{Message: team.MsgRosterFull, IsError: true}, status)
	s.Len(s.session.View().Members, team.Capacity)
	s.False(s.session.View().CanAdd)

	_, err = s.session.Remove(0)
	s.Require().NoError(err)
	_, err = s.session.Add(s.moves)
	s.True(errors.IsFailedPrecondition(err))
	s.Len(s.session.View().Members, team.Capacity-1)
}

func (s *SessionTestSuite) TestRemove() {
	s.loadPikachu()
	_, err := s.session.Add(s.moves)
	s.Require().NoError(err)

	status, err := s.session.Remove(0)
	s.Require().NoError(err)
	s.Equal("Removed Pikachu from your team.", status.Message)
	s.Empty(s.session.View().Members)

	status, err = s.session.Remove(0)
	s.True(errors.IsOutOfRange(err))
	s.True(status.IsError)
}

func (s *SessionTestSuite) TestClear() {
	s.loadPikachu()
	_, err := s.session.Add(s.moves)
	s.Require().NoError(err)

	status := s.session.Clear()
	s.Equal(session.Status{Message: session.MsgCleared}, status)
	s.Empty(s.session.View().Members)
	s.NotNil(s.session.View().Current)
}

func (s *SessionTestSuite) TestSupersededLoadIsDiscarded() {
	started := make(chan struct{})
	s.mockLookup.EXPECT().
		Resolve(gomock.Any(), &lookup.ResolveInput{Key: "pikachu"}).
		DoAndReturn(func(ctx context.Context, _ *lookup.ResolveInput) (*lookup.ResolveOutput, error) {
			close(started)
			<-ctx.Done()
			// a late answer must still be ignored
			return &lookup.ResolveOutput{Key: "pikachu", Record: s.pikachu, Source: lookup.SourceNetwork}, nil
		})
	s.expectResolve("bulbasaur", s.bulbasaur)

	type result struct {
		status session.Status
		err    error
	}
	done := make(chan result, 1)
	go func() {
		status, err := s.session.Load(s.ctx, "pikachu")
		done <- result{status: status, err: err}
	}()

	<-started
	status, err := s.session.Load(s.ctx, "bulbasaur")
	s.Require().NoError(err)
	s.Equal(`Loaded Bulbasaur. Pick 4 moves and click "Add to Team".`, status.Message)

	stale := <-done
	s.True(errors.IsCanceled(stale.err))
	s.Empty(stale.status.Message)

	view := s.session.View()
	s.Require().NotNil(view.Current)
	s.Equal("Bulbasaur", view.Current.Name)
	s.Equal(status, view.Status)
}

func (s *SessionTestSuite) TestLoadCanceledByCaller() {
	ctx, cancel := context.WithCancel(s.ctx)
	s.mockLookup.EXPECT().
		Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *lookup.ResolveInput) (*lookup.ResolveOutput, error) {
			cancel()
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "lookup canceled")
		})

	status, err := s.session.Load(ctx, "pikachu")
	s.True(errors.IsCanceled(err))
	s.Empty(status.Message)
	s.False(s.session.View().CanAdd)
}

func (s *SessionTestSuite) TestNewCreature() {
	s.Nil(session.NewCreature(nil))

	creature := session.NewCreature(s.bulbasaur)
	s.Equal(&session.Creature{
		ID:        1,
		Name:      "Bulbasaur",
		SpriteURL: "https://example.test/sprites/1.png",
		CryURL:    "https://example.test/cries/legacy/1.ogg",
		Moves:     []string{"growl", "razor-leaf", "tackle", "vine-whip"},
	}, creature)
}

func (s *SessionTestSuite) TestCloseDuringLoadDiscardsResult() {
	s.mockLookup.EXPECT().
		Resolve(gomock.Any(), &lookup.ResolveInput{Key: "pikachu"}).
		DoAndReturn(func(_ context.Context, _ *lookup.ResolveInput) (*lookup.ResolveOutput, error) {
			s.session.Close()
			return &lookup.ResolveOutput{Key: "pikachu", Record: s.pikachu, Source: lookup.SourceNetwork}, nil
		})

	var (
		status session.Status
		err    error
	)
	s.NotPanics(func() {
		status, err = s.session.Load(s.ctx, "pikachu")
	})
	s.True(errors.IsCanceled(err))
	s.Empty(status.Message)

	view := s.session.View()
	s.Nil(view.Current)
	s.False(view.CanAdd)
}
