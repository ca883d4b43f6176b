package session

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/clock"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/notify"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/ranking"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/roster"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/round"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/scoring"
)

// Controller is the single entry point for user intents against the
// session. Intents are serialized; notifications are sent once the
// corresponding mutation has been applied.
type Controller struct {
	mu sync.Mutex

	roster   *roster.Roster
	ledger   *scoring.Ledger
	ranking  *ranking.Engine
	arbiter  *round.Arbiter
	notifier notify.Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new session Controller
func New(
	roster *roster.Roster,
	ledger *scoring.Ledger,
	ranking *ranking.Engine,
	arbiter *round.Arbiter,
	notifier notify.Notifier,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Controller{
		roster:   roster,
		ledger:   ledger,
		ranking:  ranking,
		arbiter:  arbiter,
		notifier: notifier,
		clock:    clock,
		logger:   logger.With(slog.String("component", "session")),
	}
}

// Join registers the identity as a contestant. Joining again returns the
// existing record.
func (c *Controller) Join(identity model.Identity) (model.Player, error) {
	if strings.TrimSpace(identity.Username) == "" {
		return model.Player{}, model.ErrEmptyIdentity
	}
	if identity.IsAdmin {
		return model.Player{}, model.ErrModeratorCannotJoin
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.join(identity.Username), nil
}

func (c *Controller) join(username string) model.Player {
	player, created := c.roster.AddPlayer(username)
	if !created {
		return player
	}

	c.logger.Info("player joined",
		slog.String("player_id", string(player.ID)),
		slog.String("player_name", player.Name),
	)
	c.notifier.Notify(model.Event{
		Type:       model.EventPlayerJoined,
		Timestamp:  player.JoinedAt,
		PlayerID:   player.ID,
		PlayerName: player.Name,
		Player:     &player,
	})
	return player
}

// PressBuzzer attempts to claim the current round for the identity. A
// contestant who has not joined yet is added to the roster first.
func (c *Controller) PressBuzzer(identity model.Identity) (model.BuzzResult, error) {
	if strings.TrimSpace(identity.Username) == "" {
		return model.BuzzResult{}, model.ErrEmptyIdentity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if identity.IsAdmin || !c.arbiter.IsAcceptingBuzz() {
		return model.BuzzResult{Accepted: false, Round: c.arbiter.State()}, nil
	}

	if _, ok := c.roster.FindByName(identity.Username); !ok {
		c.join(identity.Username)
	}

	result, err := c.arbiter.Buzz(identity)
	if err != nil {
		return model.BuzzResult{}, err
	}
	if !result.Accepted {
		return result, nil
	}

	holder := result.Round.LockedBy
	player, err := c.roster.Get(holder.PlayerID)
	if err != nil {
		return model.BuzzResult{}, err
	}
	c.notifier.Notify(model.Event{
		Type:       model.EventBuzzAccepted,
		Timestamp:  *result.Round.BuzzTimestamp,
		PlayerID:   holder.PlayerID,
		PlayerName: holder.Name,
		Score:      player.Score,
		Player:     &player,
	})

	return result, nil
}

// ResetRound reopens buzzing. Only moderators may reset.
func (c *Controller) ResetRound(actor model.Identity) error {
	if !actor.IsAdmin {
		return model.ErrNotModerator
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.arbiter.Reset()
	c.notifier.Notify(model.Event{
		Type:      model.EventRoundReset,
		Timestamp: c.clock.Now(),
	})
	return nil
}

// AwardPoints applies a relative score change. Only moderators may award.
func (c *Controller) AwardPoints(actor model.Identity, id model.PlayerID, delta int) (model.Player, error) {
	if !actor.IsAdmin {
		return model.Player{}, model.ErrNotModerator
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ledger.Adjust(id, delta)
}

// SetScore replaces a player's score. Only moderators may set scores.
func (c *Controller) SetScore(actor model.Identity, id model.PlayerID, value int) (model.Player, error) {
	if !actor.IsAdmin {
		return model.Player{}, model.ErrNotModerator
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ledger.SetAbsolute(id, value)
}

// Round returns the current round state
func (c *Controller) Round() model.Round {
	return c.arbiter.State()
}

// Snapshot returns a consistent read-only view of the session
func (c *Controller) Snapshot() model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	players := c.roster.All()
	standings := c.ranking.Rank(players)

	return model.Snapshot{
		Round:       c.arbiter.State(),
		Standings:   standings,
		Leader:      c.ranking.Leader(standings),
		HighScore:   c.ranking.HighScore(players),
		PlayerCount: len(players),
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	Join(identity model.Identity) (model.Player, error)
	PressBuzzer(identity model.Identity) (model.BuzzResult, error)
	ResetRound(actor model.Identity) error
	AwardPoints(actor model.Identity, id model.PlayerID, delta int) (model.Player, error)
	SetScore(actor model.Identity, id model.PlayerID, value int) (model.Player, error)
	Round() model.Round
	Snapshot() model.Snapshot
}

var _ ControllerInterface = (*Controller)(nil)
