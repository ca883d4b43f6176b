package model

import "errors"

// Common errors used across the application
var (
	// Roster errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrEmptyIdentity       = errors.New("identity has no username")
	ErrModeratorCannotJoin = errors.New("moderators cannot join as contestants")

	// Scoring errors
	ErrInvalidScoreInput = errors.New("invalid score input")

	// Session errors
	ErrNotModerator = errors.New("action requires a moderator")
)
