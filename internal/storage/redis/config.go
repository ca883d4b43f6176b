package redis

import "time"

// Config holds connection settings for the roster checkpoint store
type Config struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration

	// PlayerTTL expires checkpointed roster data. Zero keeps it forever.
	PlayerTTL time.Duration
}

// DefaultConfig returns a Config pointing at a local Redis
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379/0",
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		PlayerTTL:    24 * time.Hour,
	}
}
