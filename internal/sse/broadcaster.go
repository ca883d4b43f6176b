package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/notify"
)

// Broadcaster publishes session events to SSE clients as JSON
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// Ensure Broadcaster is a Notifier
var _ notify.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Notify broadcasts the event under its type name
func (b *Broadcaster) Notify(event model.Event) {
	data, err := json.Marshal(response.EventFromModel(event))
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(string(event.Type), string(data))
}
