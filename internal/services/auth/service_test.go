package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/mocks"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.BcryptCost = bcrypt.MinCost

	var err error
	s.service, err = New(s.clock, cfg)
	s.Require().NoError(err)
	s.ctx = context.Background()
}

// Authenticate tests

func (s *ServiceSuite) TestAuthenticateContestant() {
	identity, err := s.service.Authenticate(s.ctx, "Alex", "hunter2")
	s.Require().NoError(err)

	s.Equal("Alex", identity.Username)
	s.False(identity.IsAdmin)
}

func (s *ServiceSuite) TestAuthenticateModerator() {
	identity, err := s.service.Authenticate(s.ctx, "host", DefaultAdminSecret)
	s.Require().NoError(err)

	s.Equal("host", identity.Username)
	s.True(identity.IsAdmin)
}

func (s *ServiceSuite) TestAuthenticateTrimsInput() {
	identity, err := s.service.Authenticate(s.ctx, "  Alex ", "  "+DefaultAdminSecret+" ")
	s.Require().NoError(err)

	s.Equal("Alex", identity.Username)
	s.True(identity.IsAdmin)
}

func (s *ServiceSuite) TestAuthenticateRejectsBlankFields() {
	tests := []struct {
		name     string
		username string
		secret   string
	}{
		{"empty username", "", "secret"},
		{"whitespace username", "   ", "secret"},
		{"empty secret", "Alex", ""},
		{"whitespace secret", "Alex", "\t"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.Authenticate(s.ctx, tt.username, tt.secret)
			s.ErrorIs(err, ErrInvalidCredentials)
		})
	}
}

func (s *ServiceSuite) TestCustomAdminSecret() {
	service, err := New(s.clock, Config{AdminSecret: "letmein", BcryptCost: bcrypt.MinCost})
	s.Require().NoError(err)

	identity, _ := service.Authenticate(s.ctx, "host", "letmein")
	s.True(identity.IsAdmin)

	identity, _ = service.Authenticate(s.ctx, "host", DefaultAdminSecret)
	s.False(identity.IsAdmin)
}

func (s *ServiceSuite) TestPrecomputedAdminHash() {
	hash, err := bcrypt.GenerateFromPassword([]byte("quizmaster"), bcrypt.MinCost)
	s.Require().NoError(err)

	service, err := New(s.clock, Config{AdminSecretHash: string(hash)})
	s.Require().NoError(err)

	identity, _ := service.Authenticate(s.ctx, "host", "quizmaster")
	s.True(identity.IsAdmin)
}

func (s *ServiceSuite) TestInvalidAdminHashFails() {
	_, err := New(s.clock, Config{AdminSecretHash: "not-a-hash"})
	s.Error(err)
}

// Session tests

func (s *ServiceSuite) TestLoginCreatesValidSession() {
	session, err := s.service.Login(s.ctx, "Alex", "pw")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alex", session.Identity.Username)
	s.Equal(s.clock.Now().Add(24*time.Hour), session.ExpiresAt)

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Identity, validated.Identity)
}

func (s *ServiceSuite) TestLoginRejectsBlankCredentials() {
	_, err := s.service.Login(s.ctx, "", "pw")
	s.ErrorIs(err, ErrInvalidCredentials)
	s.Equal(0, s.service.SessionCount())
}

func (s *ServiceSuite) TestTokensAreUnique() {
	a, _ := s.service.Login(s.ctx, "Alex", "pw")
	b, _ := s.service.Login(s.ctx, "Alex", "pw")

	s.NotEqual(a.Token, b.Token)
}

func (s *ServiceSuite) TestValidateUnknownToken() {
	_, err := s.service.ValidateSession("sess_nope")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestSessionExpires() {
	session, _ := s.service.Login(s.ctx, "Alex", "pw")

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
	s.Equal(0, s.service.SessionCount())
}

func (s *ServiceSuite) TestInvalidateSession() {
	session, _ := s.service.Login(s.ctx, "Alex", "pw")

	s.service.InvalidateSession(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	_, _ = s.service.Login(s.ctx, "Alex", "pw")
	s.clock.Advance(12 * time.Hour)
	fresh, _ := s.service.Login(s.ctx, "Sam", "pw")
	s.clock.Advance(13 * time.Hour)

	s.service.CleanExpiredSessions()

	s.Equal(1, s.service.SessionCount())
	_, err := s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}
