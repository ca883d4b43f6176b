package ranking

import (
	"sort"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
)

const (
	// ProgressFloorScore is the minimum denominator for progress bars, so a
	// single low scorer does not read as a full bar
	ProgressFloorScore = 100
	// MinProgressFraction keeps zero-score players visible
	MinProgressFraction = 0.02
)

// Engine derives standings from roster players. It holds no state; results
// are recomputed on every call and never written back to players.
type Engine struct{}

// New creates a new ranking Engine
func New() *Engine {
	return &Engine{}
}

// Rank orders players by score descending. Ties keep the input (roster
// insertion) order.
func (e *Engine) Rank(players []model.Player) []model.Standing {
	if len(players) == 0 {
		return []model.Standing{}
	}

	sorted := make([]model.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	denom := progressDenominator(players)
	standings := make([]model.Standing, len(sorted))
	for i, p := range sorted {
		standings[i] = model.Standing{
			Rank:     i + 1,
			Player:   p.Clone(),
			Badge:    model.BadgeForIndex(i),
			Progress: fraction(p.Score, denom),
		}
	}
	return standings
}

// ProgressFraction normalises a player's score against the top score
func (e *Engine) ProgressFraction(player model.Player, players []model.Player) float64 {
	return fraction(player.Score, progressDenominator(players))
}

// HighScore returns the best score on the roster, or 0 when empty
func (e *Engine) HighScore(players []model.Player) int {
	high := 0
	for _, p := range players {
		if p.Score > high {
			high = p.Score
		}
	}
	return high
}

// Leader returns the first standing, or the NoPlayersYet sentinel
func (e *Engine) Leader(standings []model.Standing) model.Standing {
	if len(standings) == 0 {
		return model.NoPlayersYet
	}
	return standings[0]
}

func progressDenominator(players []model.Player) int {
	high := 0
	for _, p := range players {
		if p.Score > high {
			high = p.Score
		}
	}
	if high < ProgressFloorScore {
		return ProgressFloorScore
	}
	return high
}

func fraction(score, denom int) float64 {
	f := float64(score) / float64(denom)
	if f < MinProgressFraction {
		return MinProgressFraction
	}
	return f
}
