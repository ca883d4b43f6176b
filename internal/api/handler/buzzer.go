package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/apierr"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/middleware"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/session"
)

const (
	// Time allowed to write a frame to the peer
	wsWriteWait = 10 * time.Second
	// Time allowed between frames from the peer
	wsPongWait = 60 * time.Second
	// Ping interval, must be shorter than wsPongWait
	wsPingPeriod = (wsPongWait * 9) / 10
	// Largest frame a buzzer may send
	wsMaxFrameSize = 512
)

// Frame types exchanged with buzzer devices
const (
	FrameBuzz       = "buzz"
	FramePing       = "ping"
	FramePong       = "pong"
	FrameBuzzResult = "buzz_result"
	FrameError      = "error"
)

// BuzzerFrame is a message on the buzzer websocket
type BuzzerFrame struct {
	Type     string          `json:"type"`
	Accepted *bool           `json:"accepted,omitempty"`
	Round    *response.Round `json:"round,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// ConnGauge tracks open connections
type ConnGauge interface {
	Inc()
	Dec()
}

// BuzzerHandler accepts buzzes from websocket-connected devices. Every
// buzz frame is an independent PressBuzzer intent.
type BuzzerHandler struct {
	controller session.ControllerInterface
	upgrader   websocket.Upgrader
	sockets    ConnGauge
	logger     *slog.Logger
}

// NewBuzzerHandler creates a new buzzer handler. sockets may be nil.
func NewBuzzerHandler(controller session.ControllerInterface, sockets ConnGauge, logger *slog.Logger) *BuzzerHandler {
	return &BuzzerHandler{
		controller: controller,
		// The default origin check rejects browsers on other hosts; native
		// buzzer devices send no Origin header and are let through.
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sockets: sockets,
		logger:  logger.With(slog.String("component", "buzzer-ws")),
	}
}

// ServeWS handles GET /api/v1/buzzer/ws
func (h *BuzzerHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	identity := middleware.MustGetIdentity(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	if h.sockets != nil {
		h.sockets.Inc()
		defer h.sockets.Dec()
	}
	h.logger.Info("buzzer connected",
		slog.String("username", identity.Username),
		slog.String("remote", r.RemoteAddr))

	c := &buzzerConn{conn: conn, done: make(chan struct{})}
	defer c.close()
	go c.pingLoop()

	h.readLoop(c, identity)

	h.logger.Info("buzzer disconnected", slog.String("username", identity.Username))
}

func (h *BuzzerHandler) readLoop(c *buzzerConn, identity model.Identity) {
	c.conn.SetReadLimit(wsMaxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("buzzer read failed", slog.String("error", err.Error()))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(wsPongWait))

		var frame BuzzerFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.send(BuzzerFrame{Type: FrameError, Message: "invalid frame"})
			continue
		}

		if err := c.send(h.handleFrame(frame, identity)); err != nil {
			return
		}
	}
}

func (h *BuzzerHandler) handleFrame(frame BuzzerFrame, identity model.Identity) BuzzerFrame {
	switch frame.Type {
	case FramePing:
		return BuzzerFrame{Type: FramePong}
	case FrameBuzz:
		result, err := h.controller.PressBuzzer(identity)
		if err != nil {
			return BuzzerFrame{Type: FrameError, Message: apierr.Describe(err).Message}
		}
		accepted := result.Accepted
		round := response.RoundFromModel(result.Round)
		return BuzzerFrame{Type: FrameBuzzResult, Accepted: &accepted, Round: &round}
	default:
		return BuzzerFrame{Type: FrameError, Message: "unknown frame type: " + frame.Type}
	}
}

// buzzerConn serialises writes to a websocket connection
type buzzerConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
	done chan struct{}
	once sync.Once
}

var errConnClosed = errors.New("connection closed")

func (c *buzzerConn) send(frame BuzzerFrame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
		return errConnClosed
	default:
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.conn.WriteJSON(frame)
}

func (c *buzzerConn) pingLoop() {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait))
			c.mu.Unlock()
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *buzzerConn) close() {
	c.once.Do(func() {
		close(c.done)
		c.mu.Lock()
		_ = c.conn.Close()
		c.mu.Unlock()
	})
}
