package scoring

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/clock"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/notify"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/roster"
)

// MinScore is the floor applied to every score mutation
const MinScore = 0

// QuickAdjustments are the one-tap score changes offered to moderators
var QuickAdjustments = []int{-10, -5, 5, 10, 25}

// Ledger enforces score-mutation rules on roster players
type Ledger struct {
	mu sync.Mutex // serialises read-modify-write on scores

	roster   *roster.Roster
	notifier notify.Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

// New creates a new Ledger
func New(roster *roster.Roster, notifier notify.Notifier, clock clock.Clock, logger *slog.Logger) *Ledger {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Ledger{
		roster:   roster,
		notifier: notifier,
		clock:    clock,
		logger:   logger,
	}
}

// Adjust adds delta to a player's score, clamping the result at zero
func (l *Ledger) Adjust(id model.PlayerID, delta int) (model.Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	player, err := l.roster.Get(id)
	if err != nil {
		return model.Player{}, err
	}
	return l.apply(player, clamp(player.Score+delta))
}

// SetAbsolute replaces a player's score; negative values become zero
func (l *Ledger) SetAbsolute(id model.PlayerID, value int) (model.Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	player, err := l.roster.Get(id)
	if err != nil {
		return model.Player{}, err
	}
	return l.apply(player, clamp(value))
}

func (l *Ledger) apply(player model.Player, score int) (model.Player, error) {
	updated, err := l.roster.SetScore(player.ID, score)
	if err != nil {
		return model.Player{}, err
	}

	l.logger.Info("score changed",
		slog.String("player_id", string(updated.ID)),
		slog.Int("old_score", player.Score),
		slog.Int("new_score", updated.Score),
	)

	l.notifier.Notify(model.Event{
		Type:       model.EventScoreChanged,
		Timestamp:  l.clock.Now(),
		PlayerID:   updated.ID,
		PlayerName: updated.Name,
		Score:      updated.Score,
		Player:     &updated,
	})

	return updated, nil
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	return score
}

// ParseScoreInput coerces raw moderator input into a score.
// Blank input is rejected; otherwise the leading integer is used, input
// without digits becomes 0, and negative values become 0.
func ParseScoreInput(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, model.ErrInvalidScoreInput
	}

	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, nil
	}

	value, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of int range
		if s[0] == '-' {
			return 0, nil
		}
		return 0, model.ErrInvalidScoreInput
	}
	return clamp(value), nil
}

// Interface for dependency injection
type LedgerInterface interface {
	Adjust(id model.PlayerID, delta int) (model.Player, error)
	SetAbsolute(id model.PlayerID, value int) (model.Player, error)
}

var _ LedgerInterface = (*Ledger)(nil)
