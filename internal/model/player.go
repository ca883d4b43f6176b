package model

import "time"

// PlayerID uniquely identifies a player for the lifetime of the session
type PlayerID string

// Player represents a contestant on the roster
type Player struct {
	ID           PlayerID
	Name         string     // Display identity, also the join key for the acting identity
	Score        int        // Never negative
	LastBuzzTime *time.Time // nil until the player's first accepted buzz
	Seq          int        // Roster insertion index
	JoinedAt     time.Time
}

// HasBuzzed returns true if the player has had a buzz accepted at least once
func (p *Player) HasBuzzed() bool {
	return p.LastBuzzTime != nil
}

// Clone returns a deep copy of the player
func (p Player) Clone() Player {
	if p.LastBuzzTime != nil {
		t := *p.LastBuzzTime
		p.LastBuzzTime = &t
	}
	return p
}

// Identity is the acting user as reported by authentication
type Identity struct {
	Username string
	IsAdmin  bool // Moderators cannot buzz and may reset rounds and change scores
}
