package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/apierr"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/middleware"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/request"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/scoring"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/session"
)

// PlayerHandler handles roster and score endpoints
type PlayerHandler struct {
	controller session.ControllerInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(controller session.ControllerInterface) *PlayerHandler {
	return &PlayerHandler{
		controller: controller,
	}
}

// Join handles POST /api/v1/players/join
func (h *PlayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	player, err := h.controller.Join(identity)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// AdjustScore handles POST /api/v1/players/{id}/score/adjust
func (h *PlayerHandler) AdjustScore(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())
	playerID := model.PlayerID(mux.Vars(r)["id"])

	var req request.AdjustScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Delta == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("delta is required"))
		return
	}

	player, err := h.controller.AwardPoints(identity, playerID, *req.Delta)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// SetScore handles PUT /api/v1/players/{id}/score
func (h *PlayerHandler) SetScore(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())
	playerID := model.PlayerID(mux.Vars(r)["id"])

	var req request.SetScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	value, err := scoring.ParseScoreInput(req.Value)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	player, err := h.controller.SetScore(identity, playerID, value)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
