package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/NotJanLive/trivia-pulse-points/internal/api/handler"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/middleware"
	"github.com/NotJanLive/trivia-pulse-points/internal/api/response"
	"github.com/NotJanLive/trivia-pulse-points/internal/metrics"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/auth"
	"github.com/NotJanLive/trivia-pulse-points/internal/services/session"
	"github.com/NotJanLive/trivia-pulse-points/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	Controller   session.ControllerInterface
	Hub          *sse.Hub
	Metrics      *metrics.Metrics         // optional
	LoginLimiter *middleware.IPRateLimiter // optional
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.AuthService)
	playerHandler := handler.NewPlayerHandler(cfg.Controller)
	roundHandler := handler.NewRoundHandler(cfg.Controller)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	var sockets handler.ConnGauge
	if cfg.Metrics != nil {
		sockets = cfg.Metrics.BuzzerSockets
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}
	buzzerHandler := handler.NewBuzzerHandler(cfg.Controller, sockets, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	if cfg.Metrics != nil {
		api.Use(cfg.Metrics.Middleware)
	}

	// Login is the only unauthenticated write
	login := http.Handler(http.HandlerFunc(sessionHandler.Login))
	if cfg.LoginLimiter != nil {
		login = middleware.RateLimit(cfg.LoginLimiter)(login)
	}
	api.Handle("/session/login", login).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Everything else requires a session
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/session/logout", sessionHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/session/me", sessionHandler.Me).Methods(http.MethodGet)

	protected.HandleFunc("/players/join", playerHandler.Join).Methods(http.MethodPost)
	protected.HandleFunc("/players/{id}/score/adjust", playerHandler.AdjustScore).Methods(http.MethodPost)
	protected.HandleFunc("/players/{id}/score", playerHandler.SetScore).Methods(http.MethodPut)

	protected.HandleFunc("/round", roundHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/round/buzz", roundHandler.Buzz).Methods(http.MethodPost)
	protected.HandleFunc("/round/reset", roundHandler.Reset).Methods(http.MethodPost)
	protected.HandleFunc("/snapshot", roundHandler.Snapshot).Methods(http.MethodGet)
	protected.HandleFunc("/scoring/presets", roundHandler.Presets).Methods(http.MethodGet)

	protected.HandleFunc("/events", eventsHandler.Stream).Methods(http.MethodGet)
	protected.HandleFunc("/buzzer/ws", buzzerHandler.ServeWS).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
