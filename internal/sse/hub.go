package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"
)

const hubBufferSize = 256

// Hub fans broadcast messages out to every registered Client. Client
// bookkeeping happens only on the Run goroutine.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a Hub. Call Run to start delivering.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		logger:     logger.With(slog.String("component", "sse")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, hubBufferSize),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Close
func (h *Hub) Run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.add(client)
		case client := <-h.unregister:
			h.remove(client)
		case message := <-h.broadcast:
			h.fanOut(message)
		case <-h.done:
			h.disconnectAll()
			return
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("sse client registered",
		slog.String("username", client.username),
		slog.Int("total_clients", total))
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.logger.Info("sse client unregistered",
			slog.String("username", client.username),
			slog.Duration("connection_duration", time.Since(client.connectedAt)),
			slog.Int("total_clients", total))
	}
}

// fanOut never blocks on a slow client; its copy of the message is dropped
func (h *Hub) fanOut(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var slow []string
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			slow = append(slow, client.username)
		}
	}
	if len(slow) > 0 {
		h.logger.Warn("sse message dropped - client buffer full",
			slog.Any("usernames", slow),
			slog.Int("delivered", len(h.clients)-len(slow)))
	}
}

func (h *Hub) disconnectAll() {
	h.mu.Lock()
	total := len(h.clients)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()
	h.logger.Info("sse hub stopped", slog.Int("disconnected_clients", total))
}

// Register adds a client to the hub. It returns false if the hub is closed.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// BroadcastEvent sends an SSE event with a name and data
func (h *Hub) BroadcastEvent(eventName, data string) {
	h.Broadcast(formatSSEMessage(eventName, data))
}

// Close shuts down the hub
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage encodes one event frame; every data line gets its own
// "data: " field
func formatSSEMessage(eventName, data string) []byte {
	var b strings.Builder
	b.WriteString("event: ")
	b.WriteString(eventName)
	b.WriteString("\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines drops CRs and a single trailing newline before splitting
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
