package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration read from QUIZBUZZ_* environment variables
type Config struct {
	Host     string `env:"QUIZBUZZ_HOST"`
	Port     int    `env:"QUIZBUZZ_PORT"      envDefault:"8080"`
	LogLevel string `env:"QUIZBUZZ_LOG_LEVEL" envDefault:"info"`

	StorageType string        `env:"QUIZBUZZ_STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string        `env:"QUIZBUZZ_REDIS_URL"`
	PlayerTTL   time.Duration `env:"QUIZBUZZ_PLAYER_TTL"   envDefault:"24h"`

	AdminSecret     string        `env:"QUIZBUZZ_ADMIN_SECRET"      envDefault:"admin123"`
	AdminSecretHash string        `env:"QUIZBUZZ_ADMIN_SECRET_HASH"`
	SessionTTL      time.Duration `env:"QUIZBUZZ_SESSION_TTL"       envDefault:"24h"`

	LoginRate  float64 `env:"QUIZBUZZ_LOGIN_RATE"  envDefault:"1"`
	LoginBurst int     `env:"QUIZBUZZ_LOGIN_BURST" envDefault:"5"`

	CheckpointBuffer int `env:"QUIZBUZZ_CHECKPOINT_BUFFER" envDefault:"256"`
}

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Load reads configuration from the process environment
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given variables instead of the
// process environment
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field combinations env tags cannot express
func (c Config) Validate() error {
	switch c.StorageType {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return errors.New("QUIZBUZZ_REDIS_URL is required when QUIZBUZZ_STORAGE_TYPE is redis")
		}
	default:
		return fmt.Errorf("invalid QUIZBUZZ_STORAGE_TYPE %q: must be memory or redis", c.StorageType)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid QUIZBUZZ_PORT %d", c.Port)
	}
	if c.LoginRate <= 0 || c.LoginBurst <= 0 {
		return errors.New("QUIZBUZZ_LOGIN_RATE and QUIZBUZZ_LOGIN_BURST must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured slog level
func (c Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel maps debug, info, warn and error onto slog levels
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid QUIZBUZZ_LOG_LEVEL %q", s)
	}
	return level, nil
}
