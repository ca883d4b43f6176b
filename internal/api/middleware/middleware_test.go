package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/mocks"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
	"github.com/NotJanLive/trivia-pulse-points/internal/testutil"
)

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	cfg := auth.DefaultConfig()
	cfg.BcryptCost = bcrypt.MinCost
	svc, err := auth.New(mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)), cfg)
	require.NoError(t, err)
	return svc
}

func identityEcho(t *testing.T, got *model.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = MustGetIdentity(r.Context())
		require.NotNil(t, GetSession(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthAcceptsTokenSources(t *testing.T) {
	svc := newAuthService(t)
	session, err := svc.Login(context.Background(), "Alex", "pw")
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+session.Token) }},
		{"query", func(r *http.Request) { r.URL.RawQuery = "token=" + session.Token }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.Identity
			handler := Auth(svc)(identityEcho(t, &got))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "Alex", got.Username)
		})
	}
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	svc := newAuthService(t)
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sess_bogus")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRateLimitPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	limiter := NewIPRateLimiter(0.0001, 1)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	limited := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			limited++
		}
	}

	assert.Equal(t, 19, limited)
}

func TestAuthIgnoresSessionCookie(t *testing.T) {
	svc := newAuthService(t)
	session, err := svc.Login(context.Background(), "Alex", "pw")
	require.NoError(t, err)

	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: session.Token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecoveryWritesJSON(t *testing.T) {
	handler := Recovery(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INTERNAL_ERROR"`)
}
