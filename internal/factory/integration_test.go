package factory

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/NotJanLive/trivia-pulse-points/internal/checkpoint"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
	"github.com/NotJanLive/trivia-pulse-points/internal/storage/memory"
)

type IntegrationSuite struct {
	suite.Suite
	app    *TestApp
	ctx    context.Context
	cancel context.CancelFunc
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.app.Start(s.ctx)
}

func (s *IntegrationSuite) TearDownTest() {
	s.cancel()
	s.Require().NoError(s.app.Close())
}

var moderator = model.Identity{Username: "host", IsAdmin: true}

func contestant(name string) model.Identity {
	return model.Identity{Username: name}
}

// Test: A full question cycle from join to scoring
func (s *IntegrationSuite) TestQuestionCycle() {
	s.app.MockIDs.Queue("p-alex", "p-sam")

	// Step 1: Two contestants join
	alex, err := s.app.Controller.Join(contestant("Alex"))
	s.Require().NoError(err)
	sam, err := s.app.Controller.Join(contestant("Sam"))
	s.Require().NoError(err)
	s.Equal(model.PlayerID("p-alex"), alex.ID)
	s.Equal(model.PlayerID("p-sam"), sam.ID)

	// Step 2: Sam buzzes first and locks the round
	s.app.MockClock.Advance(time.Second)
	result, err := s.app.Controller.PressBuzzer(contestant("Sam"))
	s.Require().NoError(err)
	s.True(result.Accepted)
	s.Equal(model.RoundStateLocked, result.Round.State)
	s.Equal("Sam", result.Round.LockedBy.Name)

	// Step 3: Alex is too late
	result, err = s.app.Controller.PressBuzzer(contestant("Alex"))
	s.Require().NoError(err)
	s.False(result.Accepted)

	// Step 4: Moderator awards Sam and reopens the round
	updated, err := s.app.Controller.AwardPoints(moderator, sam.ID, 10)
	s.Require().NoError(err)
	s.Equal(10, updated.Score)
	s.Require().NoError(s.app.Controller.ResetRound(moderator))
	s.True(s.app.Controller.Round().IsOpen())

	// Step 5: Standings reflect the score
	snap := s.app.Controller.Snapshot()
	s.Equal(2, snap.PlayerCount)
	s.Equal(10, snap.HighScore)
	s.Equal("Sam", snap.Leader.Player.Name)
	s.Require().Len(snap.Standings, 2)
	s.Equal(model.BadgeLeader, snap.Standings[0].Badge)
	s.Equal("Alex", snap.Standings[1].Player.Name)

	// Every sink saw the same ordered event stream
	types := make([]model.EventType, 0)
	for _, e := range s.app.Recorder.Events() {
		types = append(types, e.Type)
	}
	s.Equal([]model.EventType{
		model.EventPlayerJoined,
		model.EventPlayerJoined,
		model.EventBuzzAccepted,
		model.EventScoreChanged,
		model.EventRoundReset,
	}, types)
}

func (s *IntegrationSuite) TestLoginResolvesModerator() {
	session, err := s.app.AuthService.Login(s.ctx, "host", TestAdminSecret)
	s.Require().NoError(err)
	s.True(session.Identity.IsAdmin)

	session, err = s.app.AuthService.Login(s.ctx, "Alex", "anything")
	s.Require().NoError(err)
	s.False(session.Identity.IsAdmin)

	_, err = s.app.AuthService.Login(s.ctx, "Alex", "")
	s.Require().ErrorIs(err, auth.ErrInvalidCredentials)
}

func (s *IntegrationSuite) TestMetricsTrackJoins() {
	_, err := s.app.Controller.Join(contestant("Alex"))
	s.Require().NoError(err)
	_, err = s.app.Controller.Join(contestant("Alex"))
	s.Require().NoError(err)

	s.Equal(1, s.app.Roster.Len())
	s.Len(s.app.Recorder.OfType(model.EventPlayerJoined), 1)
	s.Equal(float64(1), testutil.ToFloat64(s.app.Metrics.Players))
}

func (s *IntegrationSuite) TestCheckpointSurvivesRestart() {
	_, err := s.app.Controller.Join(contestant("Alex"))
	s.Require().NoError(err)
	player, err := s.app.Controller.Join(contestant("Sam"))
	s.Require().NoError(err)
	_, err = s.app.Controller.SetScore(moderator, player.ID, 42)
	s.Require().NoError(err)

	// Close flushes the queue; a second Close from TearDownTest is a no-op
	s.Require().NoError(s.app.Close())

	restarted, err := newWithDependencies(s.app.Storage, s.app.MockClock, s.app.MockIDs,
		auth.Config{AdminSecret: TestAdminSecret, BcryptCost: 4}, 0,
		slog.New(slog.NewJSONHandler(io.Discard, nil)))
	s.Require().NoError(err)

	count, err := checkpoint.Restore(s.ctx, restarted.Storage, restarted.Roster)
	s.Require().NoError(err)
	s.Equal(2, count)

	snap := restarted.Controller.Snapshot()
	s.Equal("Sam", snap.Leader.Player.Name)
	s.Equal(42, snap.HighScore)
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(context.Background(), Config{StorageType: "sqlite"})
	if err == nil {
		t.Fatal("expected error for unknown storage type")
	}
}

func TestNewRequiresRedisConfig(t *testing.T) {
	_, err := New(context.Background(), Config{StorageType: StorageTypeRedis})
	if err == nil {
		t.Fatal("expected error without redis config")
	}
}

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(context.Background(), Config{
		AuthConfig: auth.Config{BcryptCost: 4},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := app.Storage.(*memory.Storage); !ok {
		t.Fatalf("expected memory storage, got %T", app.Storage)
	}
}
