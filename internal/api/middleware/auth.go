package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/apierr"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
)

type sessionKey struct{}

// Auth rejects requests without a live session and stores the session on
// the request context
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken finds the session token in the Authorization header, or
// failing that the token query parameter. The query form exists for
// EventSource and WebSocket clients, which cannot set headers. Cookies are
// not read.
func ExtractToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return token
	}
	return r.URL.Query().Get("token")
}

// GetSession returns the session Auth attached, or nil
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionKey{}).(*auth.Session)
	return session
}

// GetIdentity returns the identity of the session Auth attached
func GetIdentity(ctx context.Context) (model.Identity, bool) {
	session := GetSession(ctx)
	if session == nil {
		return model.Identity{}, false
	}
	return session.Identity, true
}

// MustGetIdentity is GetIdentity for handlers mounted behind Auth
func MustGetIdentity(ctx context.Context) model.Identity {
	identity, ok := GetIdentity(ctx)
	if !ok {
		panic("middleware: no session in context; is Auth mounted?")
	}
	return identity
}
