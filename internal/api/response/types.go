package response

import (
	"time"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
)

// Identity represents the acting user in API responses
type Identity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// IdentityFromModel converts a model.Identity
func IdentityFromModel(i model.Identity) Identity {
	return Identity{
		Username: i.Username,
		IsAdmin:  i.IsAdmin,
	}
}

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	Identity     Identity  `json:"identity"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Identity:     IdentityFromModel(s.Identity),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// Player represents a contestant in API responses
type Player struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Score        int        `json:"score"`
	LastBuzzTime *time.Time `json:"last_buzz_time"`
	JoinedAt     time.Time  `json:"joined_at"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:           string(p.ID),
		Name:         p.Name,
		Score:        p.Score,
		LastBuzzTime: p.LastBuzzTime,
		JoinedAt:     p.JoinedAt,
	}
}

// RoundHolder identifies who locked the round
type RoundHolder struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// Round represents the current round state
type Round struct {
	State         string       `json:"state"`
	LockedBy      *RoundHolder `json:"locked_by"`
	BuzzTimestamp *time.Time   `json:"buzz_timestamp"`
}

// RoundFromModel converts model.Round
func RoundFromModel(r model.Round) Round {
	var holder *RoundHolder
	if r.LockedBy != nil {
		holder = &RoundHolder{
			PlayerID: string(r.LockedBy.PlayerID),
			Name:     r.LockedBy.Name,
		}
	}
	return Round{
		State:         string(r.State),
		LockedBy:      holder,
		BuzzTimestamp: r.BuzzTimestamp,
	}
}

// BuzzResult is the response after pressing the buzzer
type BuzzResult struct {
	Accepted bool  `json:"accepted"`
	Round    Round `json:"round"`
}

// BuzzResultFromModel converts model.BuzzResult
func BuzzResultFromModel(b model.BuzzResult) BuzzResult {
	return BuzzResult{
		Accepted: b.Accepted,
		Round:    RoundFromModel(b.Round),
	}
}

// Standing represents one leaderboard row
type Standing struct {
	Rank     int     `json:"rank"`
	Player   Player  `json:"player"`
	Badge    string  `json:"badge"`
	Progress float64 `json:"progress"`
}

// StandingFromModel converts model.Standing
func StandingFromModel(s model.Standing) Standing {
	return Standing{
		Rank:     s.Rank,
		Player:   PlayerFromModel(s.Player),
		Badge:    string(s.Badge),
		Progress: s.Progress,
	}
}

// Snapshot represents the full session view
type Snapshot struct {
	Round       Round      `json:"round"`
	Standings   []Standing `json:"standings"`
	Leader      Standing   `json:"leader"`
	HighScore   int        `json:"high_score"`
	PlayerCount int        `json:"player_count"`
}

// SnapshotFromModel converts model.Snapshot
func SnapshotFromModel(s model.Snapshot) Snapshot {
	standings := make([]Standing, len(s.Standings))
	for i, st := range s.Standings {
		standings[i] = StandingFromModel(st)
	}
	return Snapshot{
		Round:       RoundFromModel(s.Round),
		Standings:   standings,
		Leader:      StandingFromModel(s.Leader),
		HighScore:   s.HighScore,
		PlayerCount: s.PlayerCount,
	}
}

// Presets lists the quick score adjustments
type Presets struct {
	Adjustments []int `json:"adjustments"`
}

// Event is the JSON payload of a notification on the event stream
type Event struct {
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	PlayerID   string    `json:"player_id,omitempty"`
	PlayerName string    `json:"player_name,omitempty"`
	Score      *int      `json:"score,omitempty"`
	Message    string    `json:"message"`
}

// EventFromModel converts model.Event
func EventFromModel(e model.Event) Event {
	var score *int
	if e.Type == model.EventScoreChanged {
		s := e.Score
		score = &s
	}
	return Event{
		Type:       string(e.Type),
		Timestamp:  e.Timestamp,
		PlayerID:   string(e.PlayerID),
		PlayerName: e.PlayerName,
		Score:      score,
		Message:    e.Message(),
	}
}

// Health is the liveness response
type Health struct {
	Status string `json:"status"`
}
