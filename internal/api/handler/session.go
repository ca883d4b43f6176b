package handler

import (
	"encoding/json"
	"net/http"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/apierr"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/middleware"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/request"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
)

// SessionHandler handles login and identity endpoints
type SessionHandler struct {
	authService *auth.Service
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *auth.Service) *SessionHandler {
	return &SessionHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Secret)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/session/logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := middleware.GetSession(r.Context()); session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// Me handles GET /api/v1/session/me
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())
	response.JSON(w, http.StatusOK, response.IdentityFromModel(identity))
}
