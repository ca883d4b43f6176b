package model

import (
	"strconv"
	"time"
)

// EventType identifies the type of event
type EventType string

const (
	EventPlayerJoined EventType = "player_joined"
	EventBuzzAccepted EventType = "buzz_accepted"
	EventRoundReset   EventType = "round_reset"
	EventScoreChanged EventType = "score_changed"
)

// Event is emitted to notification sinks after a state change has been applied
type Event struct {
	Type       EventType
	Timestamp  time.Time
	PlayerID   PlayerID // Empty for round_reset
	PlayerName string
	Score      int     // New score for score_changed
	Player     *Player // Copy of the affected record, nil for round_reset
}

// Message returns a short human-readable description of the event
func (e Event) Message() string {
	switch e.Type {
	case EventPlayerJoined:
		return e.PlayerName + " joined the game"
	case EventBuzzAccepted:
		return e.PlayerName + " buzzed first!"
	case EventRoundReset:
		return "Buzzers reset, next round is open"
	case EventScoreChanged:
		return e.PlayerName + " now has " + strconv.Itoa(e.Score) + " points"
	default:
		return string(e.Type)
	}
}
