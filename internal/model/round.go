package model

import "time"

// RoundState represents the current phase of a round
type RoundState string

const (
	RoundStateOpen   RoundState = "open"   // Accepting buzzes
	RoundStateLocked RoundState = "locked" // A player holds the floor
)

// RoundHolder identifies the player who locked the round
type RoundHolder struct {
	PlayerID PlayerID
	Name     string
}

// Round is the state of the current question cycle.
// LockedBy and BuzzTimestamp are set iff State is locked.
type Round struct {
	State         RoundState
	LockedBy      *RoundHolder
	BuzzTimestamp *time.Time
}

// NewRound returns a round in the open state
func NewRound() Round {
	return Round{State: RoundStateOpen}
}

// IsOpen returns true if the round is accepting buzzes
func (r Round) IsOpen() bool {
	return r.State == RoundStateOpen
}

// Clone returns a deep copy of the round
func (r Round) Clone() Round {
	if r.LockedBy != nil {
		h := *r.LockedBy
		r.LockedBy = &h
	}
	if r.BuzzTimestamp != nil {
		t := *r.BuzzTimestamp
		r.BuzzTimestamp = &t
	}
	return r
}

// BuzzResult reports the outcome of a buzz attempt
type BuzzResult struct {
	Accepted bool
	Round    Round
}
