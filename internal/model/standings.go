package model

// BadgeClass is a presentation hint derived from rank position
type BadgeClass string

const (
	BadgeLeader   BadgeClass = "leader"
	BadgeSecond   BadgeClass = "second"
	BadgeThird    BadgeClass = "third"
	BadgeStandard BadgeClass = "standard"
)

// BadgeForIndex returns the badge for a 0-indexed standings position
func BadgeForIndex(idx int) BadgeClass {
	switch idx {
	case 0:
		return BadgeLeader
	case 1:
		return BadgeSecond
	case 2:
		return BadgeThird
	default:
		return BadgeStandard
	}
}

// Standing is one row of the ranked leaderboard
type Standing struct {
	Rank     int // 1-indexed; 0 only for the NoPlayersYet sentinel
	Player   Player
	Badge    BadgeClass
	Progress float64 // Fraction of the progress bar, in [0.02, 1.0]
}

// NoPlayersYet is reported as the leader while the roster is empty
var NoPlayersYet = Standing{
	Rank:   0,
	Player: Player{Name: "No players yet"},
	Badge:  BadgeStandard,
}

// IsSentinel returns true if this standing is the empty-roster placeholder
func (s Standing) IsSentinel() bool {
	return s.Rank == 0 && s.Player.ID == ""
}

// Snapshot is a read-only view of the session for presentation
type Snapshot struct {
	Round       Round
	Standings   []Standing
	Leader      Standing
	HighScore   int
	PlayerCount int
}
