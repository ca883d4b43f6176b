package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/NotJanLive/trivia-pulse-points/internal/checkpoint"
	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/clock"
	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/idgen"
	"github.com/NotJanLive/trivia-pulse-points/internal/metrics"
	"github.com/NotJanLive/trivia-pulse-points/internal/notify"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/ranking"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/roster"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/round"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/scoring"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/session"
	"github.com/NotJanLive/trivia-pulse-points/internal/sse"
	"github.com/NotJanLive/trivia-pulse-points/internal/storage"
	"github.com/NotJanLive/trivia-pulse-points/internal/storage/memory"
	redisstorage "github.com/NotJanLive/trivia-pulse-points/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// sessionSweepInterval is how often expired login sessions are purged
const sessionSweepInterval = 10 * time.Minute

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock
	IDs   idgen.Generator

	// Session core
	Roster     *roster.Roster
	Ledger     *scoring.Ledger
	Ranking    *ranking.Engine
	Arbiter    *round.Arbiter
	Controller *session.Controller

	// Services
	AuthService *auth.Service

	// Notification sinks
	Notifier    *notify.Multi
	Hub         *sse.Hub
	Broadcaster *sse.Broadcaster
	Metrics     *metrics.Metrics
	Checkpoint  *checkpoint.Writer

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// CheckpointBuffer bounds pending roster checkpoints (optional)
	CheckpointBuffer int
}

// New creates a new application with all dependencies wired and the
// roster restored from storage
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(ctx, *cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	app, err := newWithDependencies(store, clock.New(), idgen.New(), cfg.AuthConfig, cfg.CheckpointBuffer, logger)
	if err != nil {
		return nil, err
	}

	restored, err := checkpoint.Restore(ctx, store, app.Roster)
	if err != nil {
		return nil, err
	}
	app.Metrics.SetPlayers(restored)
	if restored > 0 {
		logger.Info("roster restored", slog.Int("players", restored))
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	ids idgen.Generator,
	authCfg auth.Config,
	checkpointBuffer int,
	logger *slog.Logger,
) (*App, error) {
	authService, err := auth.New(clk, authCfg)
	if err != nil {
		return nil, err
	}

	hub := sse.NewHub(logger)
	broadcaster := sse.NewBroadcaster(hub, logger)
	m := metrics.New()
	writer := checkpoint.NewWriter(store, checkpointBuffer, logger)
	notifier := notify.NewMulti(logger,
		notify.NewLog(logger),
		broadcaster,
		m,
		writer,
	)

	r := roster.New(clk, ids)
	ledger := scoring.New(r, notifier, clk, logger)
	engine := ranking.New()
	arbiter := round.New(r, clk, logger)
	controller := session.New(r, ledger, engine, arbiter, notifier, clk, logger)

	return &App{
		Storage:     store,
		Clock:       clk,
		IDs:         ids,
		Roster:      r,
		Ledger:      ledger,
		Ranking:     engine,
		Arbiter:     arbiter,
		Controller:  controller,
		AuthService: authService,
		Notifier:    notifier,
		Hub:         hub,
		Broadcaster: broadcaster,
		Metrics:     m,
		Checkpoint:  writer,
		logger:      logger,
	}, nil
}

// Start launches the background loops: the SSE hub, the checkpoint
// writer, and the expired-session sweep. They stop when ctx is cancelled
// or Close is called.
func (a *App) Start(ctx context.Context) {
	go a.Hub.Run()
	go a.Checkpoint.Run(ctx)
	go a.sweepSessions(ctx)
}

func (a *App) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.AuthService.CleanExpiredSessions()
		case <-ctx.Done():
			return
		}
	}
}

// Close stops the hub, flushes pending checkpoints, and releases storage.
// It must only be called after Start.
func (a *App) Close() error {
	a.Hub.Close()
	a.Checkpoint.Close()

	if closer, ok := a.Storage.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("close storage: %w", err)
		}
	}
	return nil
}
