package handler

import (
	"net/http"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/apierr"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/middleware"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/scoring"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/session"
)

// RoundHandler handles buzzer and round endpoints
type RoundHandler struct {
	controller session.ControllerInterface
}

// NewRoundHandler creates a new round handler
func NewRoundHandler(controller session.ControllerInterface) *RoundHandler {
	return &RoundHandler{
		controller: controller,
	}
}

// Buzz handles POST /api/v1/round/buzz
func (h *RoundHandler) Buzz(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	result, err := h.controller.PressBuzzer(identity)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.BuzzResultFromModel(result))
}

// Reset handles POST /api/v1/round/reset
func (h *RoundHandler) Reset(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	if err := h.controller.ResetRound(identity); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundFromModel(h.controller.Round()))
}

// Get handles GET /api/v1/round
func (h *RoundHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.RoundFromModel(h.controller.Round()))
}

// Snapshot handles GET /api/v1/snapshot
func (h *RoundHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SnapshotFromModel(h.controller.Snapshot()))
}

// Presets handles GET /api/v1/scoring/presets
func (h *RoundHandler) Presets(w http.ResponseWriter, r *http.Request) {
	adjustments := make([]int, len(scoring.QuickAdjustments))
	copy(adjustments, scoring.QuickAdjustments)
	response.JSON(w, http.StatusOK, response.Presets{Adjustments: adjustments})
}
