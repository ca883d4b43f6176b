package redis

import "github.com/NotJanLive/trivia-pulse-points/internal/model"

// Keys are namespaced so the roster can share a Redis database
const (
	namespace      = "quizbuzz"
	playerKeyStem  = namespace + ":player:"
	rosterIndexKey = namespace + ":roster"
)

// playerKey is the string key holding one JSON-encoded player record
func playerKey(id model.PlayerID) string {
	return playerKeyStem + string(id)
}
