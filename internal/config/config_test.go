package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, "admin123", cfg.AdminSecret)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 24*time.Hour, cfg.PlayerTTL)
	assert.InDelta(t, 1.0, cfg.LoginRate, 0.0001)
	assert.Equal(t, 5, cfg.LoginBurst)
	assert.Equal(t, 256, cfg.CheckpointBuffer)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"QUIZBUZZ_HOST":         "127.0.0.1",
		"QUIZBUZZ_PORT":         "9000",
		"QUIZBUZZ_LOG_LEVEL":    "debug",
		"QUIZBUZZ_STORAGE_TYPE": "redis",
		"QUIZBUZZ_REDIS_URL":    "redis://localhost:6379/0",
		"QUIZBUZZ_SESSION_TTL":  "2h",
		"QUIZBUZZ_LOGIN_BURST":  "10",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "redis", cfg.StorageType)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.LoginBurst)
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
	}{
		{"redis without url", map[string]string{"QUIZBUZZ_STORAGE_TYPE": "redis"}},
		{"unknown storage", map[string]string{"QUIZBUZZ_STORAGE_TYPE": "sqlite"}},
		{"bad port", map[string]string{"QUIZBUZZ_PORT": "70000"}},
		{"non-numeric port", map[string]string{"QUIZBUZZ_PORT": "http"}},
		{"bad duration", map[string]string{"QUIZBUZZ_SESSION_TTL": "forever"}},
		{"zero burst", map[string]string{"QUIZBUZZ_LOGIN_BURST": "0"}},
		{"bad level", map[string]string{"QUIZBUZZ_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.environ)
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{" error ", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUIZBUZZ_TEST_A=from-file\nQUIZBUZZ_TEST_B=from-file\n"), 0o600))

	t.Setenv("QUIZBUZZ_TEST_A", "from-env")
	t.Setenv("QUIZBUZZ_TEST_B", "")
	os.Unsetenv("QUIZBUZZ_TEST_B")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("QUIZBUZZ_TEST_B") })

	assert.Equal(t, "from-env", os.Getenv("QUIZBUZZ_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("QUIZBUZZ_TEST_B"))
}
