package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI settings. Flags override the BUZZCTL_* environment.
type Config struct {
	ServerURL string `env:"BUZZCTL_SERVER" envDefault:"http://localhost:8080"`
	Token     string `env:"BUZZCTL_TOKEN"`
	TokenFile string `env:"BUZZCTL_TOKEN_FILE"`
	Output    string `env:"BUZZCTL_OUTPUT" envDefault:"text"`
	Verbose   bool   `env:"BUZZCTL_VERBOSE"`
}

// LoadConfig reads the CLI environment
func LoadConfig() (*Config, error) {
	return loadConfig(nil)
}

func loadConfig(environment map[string]string) (*Config, error) {
	c := &Config{}
	opts := env.Options{}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return nil, fmt.Errorf("parse cli env: %w", err)
	}
	if c.TokenFile == "" {
		c.TokenFile = defaultTokenFile()
	}
	return c, nil
}

// LoadToken reads the token file unless a token was given explicitly
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read token file: %w", err)
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken remembers token for later invocations
func (c *Config) SaveToken(token string) error {
	c.Token = token

	if err := os.MkdirAll(filepath.Dir(c.TokenFile), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return os.WriteFile(c.TokenFile, []byte(token+"\n"), 0o600)
}

// ClearToken forgets the token and removes the token file
func (c *Config) ClearToken() error {
	c.Token = ""
	if err := os.Remove(c.TokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".buzzctl", "token")
	}
	return filepath.Join(home, ".buzzctl", "token")
}
