package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := player.Clone()
	s.players[player.ID] = &stored
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		c := p.Clone()
		players = append(players, &c)
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Seq < players[j].Seq
	})
	return players, nil
}
