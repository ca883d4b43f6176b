package sse

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	keepalivePeriod = 30 * time.Second

	// Per-client queue; a client that falls this far behind misses events
	sendBufferSize = 256
)

var (
	connectedMessage = []byte("event: connected\ndata: {\"status\":\"connected\"}\n\n")
	keepaliveMessage = []byte(": keepalive\n\n")
)

// Client is one open event stream
type Client struct {
	hub         *Hub
	username    string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a Client for username. It receives nothing until
// registered with hub.
func NewClient(hub *Hub, username string) *Client {
	return &Client{
		hub:         hub,
		username:    username,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE streams hub broadcasts to the caller until the request ends or
// the hub shuts down
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, username string) {
	client := NewClient(hub, username)
	if !hub.Register(client) {
		http.Error(w, "Event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer hub.Unregister(client)

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	client.pump(w, r)
}

func (c *Client) pump(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	write := func(b []byte) bool {
		if _, err := w.Write(b); err != nil {
			return false
		}
		return rc.Flush() == nil
	}

	if !write(connectedMessage) {
		c.hub.logger.Warn("sse stream not flushable", slog.String("username", c.username))
		return
	}

	keepalive := time.NewTicker(keepalivePeriod)
	defer keepalive.Stop()

	for {
		select {
		case message, ok := <-c.send:
			if !ok || !write(message) {
				return
			}
		case <-keepalive.C:
			if !write(keepaliveMessage) {
				return
			}
		case <-r.Context().Done():
			return
		}
	}
}
