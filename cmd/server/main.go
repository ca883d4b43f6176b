package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/NotJanLive/trivia-pulse-points/internal/api"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/middleware"
	"github.com/NotJanLive/trivia-pulse-points/internal/config"
	"github.com/NotJanLive/trivia-pulse-points/internal/factory"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
	redisstorage "github.com/NotJanLive/trivia-pulse-points/internal/storage/redis"
)

func main() {
	// Bootstrap logger until the configured level is known
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Error("failed to load .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	// Build factory config
	factoryCfg := factory.Config{
		AuthConfig: auth.Config{
			SessionDuration: cfg.SessionTTL,
			AdminSecret:     cfg.AdminSecret,
			AdminSecretHash: cfg.AdminSecretHash,
		},
		Logger:           logger,
		StorageType:      cfg.StorageType,
		CheckpointBuffer: cfg.CheckpointBuffer,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.PlayerTTL = cfg.PlayerTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create application factory
	app, err := factory.New(ctx, factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	app.Start(ctx)

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		Controller:   app.Controller,
		Hub:          app.Hub,
		Metrics:      app.Metrics,
		LoginLimiter: middleware.NewIPRateLimiter(cfg.LoginRate, cfg.LoginBurst),
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType))

	exitCode := 0
	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		exitCode = 1
	}

	if err := app.Close(); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		exitCode = 1
	}

	logger.Info("server stopped")
	stop()
	os.Exit(exitCode)
}
