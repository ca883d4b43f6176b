package round

import (
	"log/slog"
	"sync"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/clock"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/roster"
)

// Arbiter decides which player holds the floor for the current round.
// The open to locked transition happens under mu, so of any number of
// concurrent buzzes exactly one is accepted.
type Arbiter struct {
	mu    sync.Mutex
	round model.Round

	roster *roster.Roster
	clock  clock.Clock
	logger *slog.Logger
}

// New creates an Arbiter with an open round
func New(roster *roster.Roster, clock clock.Clock, logger *slog.Logger) *Arbiter {
	return &Arbiter{
		round:  model.NewRound(),
		roster: roster,
		clock:  clock,
		logger: logger.With(slog.String("component", "round")),
	}
}

// Buzz attempts to lock the round for the acting identity. Moderators and
// buzzes against a locked round are rejected without error.
func (a *Arbiter) Buzz(actor model.Identity) (model.BuzzResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if actor.IsAdmin || !a.round.IsOpen() {
		return model.BuzzResult{Accepted: false, Round: a.round.Clone()}, nil
	}

	player, ok := a.roster.FindByName(actor.Username)
	if !ok {
		return model.BuzzResult{}, model.ErrPlayerNotFound
	}

	now := a.clock.Now()
	if _, err := a.roster.MarkBuzz(player.ID, now); err != nil {
		return model.BuzzResult{}, err
	}

	a.round = model.Round{
		State:         model.RoundStateLocked,
		LockedBy:      &model.RoundHolder{PlayerID: player.ID, Name: player.Name},
		BuzzTimestamp: &now,
	}

	a.logger.Info("buzz accepted",
		slog.String("player_id", string(player.ID)),
		slog.String("player_name", player.Name),
	)

	return model.BuzzResult{Accepted: true, Round: a.round.Clone()}, nil
}

// Reset reopens the round, clearing any holder. Resetting an open round is a no-op.
func (a *Arbiter) Reset() model.Round {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.round.IsOpen() {
		a.logger.Info("round reset")
	}
	a.round = model.NewRound()
	return a.round.Clone()
}

// IsAcceptingBuzz returns true while the round is open
func (a *Arbiter) IsAcceptingBuzz() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.round.IsOpen()
}

// State returns a copy of the current round
func (a *Arbiter) State() model.Round {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.round.Clone()
}

// Interface for dependency injection
type ArbiterInterface interface {
	Buzz(actor model.Identity) (model.BuzzResult, error)
	Reset() model.Round
	IsAcceptingBuzz() bool
	State() model.Round
}

var _ ArbiterInterface = (*Arbiter)(nil)
