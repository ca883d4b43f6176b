package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New connects to Redis and checks the connection before returning
func New(ctx context.Context, cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().DialTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Record and roster index move together
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.cfg.PlayerTTL)
	pipe.ZAdd(ctx, rosterIndexKey, redis.Z{Score: float64(player.Seq), Member: key})
	if s.cfg.PlayerTTL > 0 {
		pipe.Expire(ctx, rosterIndexKey, s.cfg.PlayerTTL)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	keys, err := s.client.ZRange(ctx, rosterIndexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Player may have expired
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // Skip invalid data
		}
		players = append(players, &player)
	}

	return players, nil
}
