package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/mocks"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/roster"
	"github.com/NotJanLive/trivia-pulse-points/internal/testutil"
)

type LedgerSuite struct {
	suite.Suite
	clock    *mocks.MockClock
	notifier *mocks.RecordingNotifier
	roster   *roster.Roster
	ledger   *Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.notifier = mocks.NewRecordingNotifier()
	s.roster = roster.New(s.clock, mocks.NewMockIDGenerator())
	s.ledger = New(s.roster, s.notifier, s.clock, testutil.NopLogger())
}

func (s *LedgerSuite) addPlayer(name string, score int) model.Player {
	p, _ := s.roster.AddPlayer(name)
	p, err := s.roster.SetScore(p.ID, score)
	s.Require().NoError(err)
	return p
}

// Adjust tests

func (s *LedgerSuite) TestAdjustAddsDelta() {
	p := s.addPlayer("Alex", 10)

	updated, err := s.ledger.Adjust(p.ID, 25)
	s.Require().NoError(err)
	s.Equal(35, updated.Score)
}

func (s *LedgerSuite) TestAdjustClampsAtZero() {
	p := s.addPlayer("Alex", 3)

	updated, err := s.ledger.Adjust(p.ID, -10)
	s.Require().NoError(err)
	s.Equal(0, updated.Score)

	stored, _ := s.roster.Get(p.ID)
	s.Equal(0, stored.Score)
}

func (s *LedgerSuite) TestAdjustEmitsScoreChanged() {
	p := s.addPlayer("Alex", 0)

	_, err := s.ledger.Adjust(p.ID, 5)
	s.Require().NoError(err)

	events := s.notifier.OfType(model.EventScoreChanged)
	s.Require().Len(events, 1)
	s.Equal(p.ID, events[0].PlayerID)
	s.Equal("Alex", events[0].PlayerName)
	s.Equal(5, events[0].Score)
	s.Equal(s.clock.Now(), events[0].Timestamp)
	s.Require().NotNil(events[0].Player)
	s.Equal(5, events[0].Player.Score)
}

func (s *LedgerSuite) TestAdjustUnknownPlayer() {
	other := s.addPlayer("Sam", 7)

	_, err := s.ledger.Adjust("missing", 5)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	// Other players are untouched and nothing is emitted
	stored, _ := s.roster.Get(other.ID)
	s.Equal(7, stored.Score)
	s.Empty(s.notifier.Events())
}

// SetAbsolute tests

func (s *LedgerSuite) TestSetAbsolute() {
	p := s.addPlayer("Alex", 10)

	updated, err := s.ledger.SetAbsolute(p.ID, 42)
	s.Require().NoError(err)
	s.Equal(42, updated.Score)
}

func (s *LedgerSuite) TestSetAbsoluteNegativeBecomesZero() {
	p := s.addPlayer("Alex", 10)

	updated, err := s.ledger.SetAbsolute(p.ID, -5)
	s.Require().NoError(err)
	s.Equal(0, updated.Score)
}

func (s *LedgerSuite) TestSetAbsoluteUnknownPlayer() {
	_, err := s.ledger.SetAbsolute("missing", 5)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *LedgerSuite) TestScoresNeverNegativeAcrossSequence() {
	p := s.addPlayer("Alex", 0)
	deltas := []int{5, -10, 25, -100, 10, -5}

	for _, d := range deltas {
		updated, err := s.ledger.Adjust(p.ID, d)
		s.Require().NoError(err)
		s.GreaterOrEqual(updated.Score, 0)
	}
	updated, _ := s.ledger.SetAbsolute(p.ID, -1)
	s.GreaterOrEqual(updated.Score, 0)
}

// ParseScoreInput tests

func TestParseScoreInput(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		err      error
	}{
		{"plain number", "15", 15, nil},
		{"padded", "  20 ", 20, nil},
		{"explicit plus", "+7", 7, nil},
		{"negative coerced", "-5", 0, nil},
		{"non numeric coerced", "abc", 0, nil},
		{"trailing garbage", "12abc", 12, nil},
		{"decimal truncated", "3.9", 3, nil},
		{"sign only", "-", 0, nil},
		{"huge negative", "-99999999999999999999999", 0, nil},
		{"empty rejected", "", 0, model.ErrInvalidScoreInput},
		{"blank rejected", "   ", 0, model.ErrInvalidScoreInput},
		{"huge positive rejected", "99999999999999999999999", 0, model.ErrInvalidScoreInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := ParseScoreInput(tt.raw)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func (s *LedgerSuite) TestConcurrentAdjustmentsAreNotLost() {
	p := s.addPlayer("Alex", 0)

	done := make(chan struct{})
	for i := 0; i < 100; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_, _ = s.ledger.Adjust(p.ID, 1)
		}()
	}
	for i := 0; i < 100; i++ {
		<-done
	}

	stored, _ := s.roster.Get(p.ID)
	s.Equal(100, stored.Score)
}
