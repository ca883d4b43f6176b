package roster

import (
	"sort"
	"sync"
	"time"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/clock"
	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/idgen"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
)

// Roster holds the canonical set of players for the session.
// Players are never removed; records returned to callers are copies.
type Roster struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	byName  map[string]model.PlayerID
	order   []model.PlayerID

	clock clock.Clock
	ids   idgen.Generator
}

// New creates an empty roster
func New(clock clock.Clock, ids idgen.Generator) *Roster {
	return &Roster{
		players: make(map[model.PlayerID]*model.Player),
		byName:  make(map[string]model.PlayerID),
		clock:   clock,
		ids:     ids,
	}
}

// AddPlayer returns the player registered under name, creating it with a
// zero score if this identity has not been seen before. The second return
// value reports whether a new record was created.
func (r *Roster) AddPlayer(name string) (model.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byName[name]; ok {
		return r.players[id].Clone(), false
	}

	player := &model.Player{
		ID:       model.PlayerID(r.ids.NewID()),
		Name:     name,
		Seq:      len(r.order),
		JoinedAt: r.clock.Now(),
	}
	r.insert(player)

	return player.Clone(), true
}

// Get looks up a player by ID
func (r *Roster) Get(id model.PlayerID) (model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.players[id]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

// FindByName looks up a player by identity
func (r *Roster) FindByName(name string) (model.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byName[name]
	if !ok {
		return model.Player{}, false
	}
	return r.players[id].Clone(), true
}

// All returns every player in insertion order
func (r *Roster) All() []model.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Player, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.players[id].Clone())
	}
	return result
}

// Len returns the number of players
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// SetScore overwrites a player's score. Callers enforce the floor.
func (r *Roster) SetScore(id model.PlayerID, score int) (model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[id]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}
	player.Score = score
	return player.Clone(), nil
}

// MarkBuzz records the instant of a player's accepted buzz
func (r *Roster) MarkBuzz(id model.PlayerID, at time.Time) (model.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[id]
	if !ok {
		return model.Player{}, model.ErrPlayerNotFound
	}
	player.LastBuzzTime = &at
	return player.Clone(), nil
}

// Restore replaces the roster with previously checkpointed players, ordered
// by Seq. Restored names are not deduplicated; the first occurrence wins the
// identity lookup.
func (r *Roster) Restore(players []model.Player) {
	sorted := make([]model.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Seq < sorted[j].Seq
	})

	r.mu.Lock()
	defer r.mu.Unlock()

	r.players = make(map[model.PlayerID]*model.Player, len(sorted))
	r.byName = make(map[string]model.PlayerID, len(sorted))
	r.order = make([]model.PlayerID, 0, len(sorted))

	for _, p := range sorted {
		if _, dup := r.players[p.ID]; dup {
			continue
		}
		player := p.Clone()
		if player.Score < 0 {
			player.Score = 0
		}
		player.Seq = len(r.order)
		r.insert(&player)
	}
}

// insert adds a player; caller holds the write lock
func (r *Roster) insert(player *model.Player) {
	r.players[player.ID] = player
	r.order = append(r.order, player.ID)
	if _, taken := r.byName[player.Name]; !taken {
		r.byName[player.Name] = player.ID
	}
}
