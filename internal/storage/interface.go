package storage

import (
	"context"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
)

// Storage defines the interface for roster persistence. The live session
// state is held in memory; storage receives checkpoints of player records
// and is read back once at startup.
type Storage interface {
	SavePlayer(ctx context.Context, player *model.Player) error
	// ListPlayers returns all stored players ordered by roster Seq
	ListPlayers(ctx context.Context) ([]*model.Player, error)
}
