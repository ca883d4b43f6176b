package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/clock"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// DefaultAdminSecret is the moderator secret used when none is configured
const DefaultAdminSecret = "admin123"

// Session represents an authenticated session
type Session struct {
	Token     string
	Identity  model.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles authentication and session management
type Service struct {
	clock clock.Clock

	adminHash []byte

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// AdminSecret is hashed at startup. Ignored when AdminSecretHash is set.
	AdminSecret string
	// AdminSecretHash is a precomputed bcrypt hash of the moderator secret
	AdminSecretHash string
	BcryptCost      int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
		AdminSecret:     DefaultAdminSecret,
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// New creates a new AuthService
func New(clock clock.Clock, cfg Config) (*Service, error) {
	defaults := DefaultConfig()
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	if cfg.AdminSecret == "" {
		cfg.AdminSecret = defaults.AdminSecret
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaults.BcryptCost
	}

	hash := []byte(cfg.AdminSecretHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminSecret), cfg.BcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin secret: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin secret hash: %w", err)
	}

	return &Service{
		clock:           clock,
		adminHash:       hash,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}, nil
}

// Authenticate resolves credentials to an identity. Any non-empty secret
// signs in a contestant; the moderator secret grants admin.
func (s *Service) Authenticate(ctx context.Context, username, secret string) (model.Identity, error) {
	username = strings.TrimSpace(username)
	secret = strings.TrimSpace(secret)
	if username == "" || secret == "" {
		return model.Identity{}, ErrInvalidCredentials
	}

	isAdmin := bcrypt.CompareHashAndPassword(s.adminHash, []byte(secret)) == nil

	return model.Identity{Username: username, IsAdmin: isAdmin}, nil
}

// Login authenticates and creates a session
func (s *Service) Login(ctx context.Context, username, secret string) (*Session, error) {
	identity, err := s.Authenticate(ctx, username, secret)
	if err != nil {
		return nil, err
	}
	return s.createSession(identity), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// SessionCount returns the number of live sessions, expired ones included
func (s *Service) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Service) createSession(identity model.Identity) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     s.generateToken(),
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

func (s *Service) generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}
