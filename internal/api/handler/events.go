package handler

import (
	"net/http"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/middleware"
	"github.com/NotJanLive/trivia-pulse-points/internal/sse"
)

// EventsHandler streams session notifications over SSE
type EventsHandler struct {
	hub *sse.Hub
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *sse.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())
	sse.ServeSSE(w, r, h.hub, identity.Username)
}
