package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NotJanLive/trivia-pulse-points/internal/middleware"
	"github.com/NotJanLive/trivia-pulse-points/internal/model"
	"github.com/NotJanLive/trivia-pulse-points/internal/notify"
)

// Namespace prefixes every metric name
const Namespace = "quizbuzz"

// Metrics holds the service's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	Events           *prometheus.CounterVec
	Players          prometheus.Gauge
	LastScore        prometheus.Gauge
	BuzzerSockets    prometheus.Gauge
	RequestsTotal    *prometheus.CounterVec
	RequestDurations *prometheus.HistogramVec
}

// Ensure Metrics is a Notifier
var _ notify.Notifier = (*Metrics)(nil)

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "events_total",
			Help:      "Session events by type",
		}, []string{"type"}),
		Players: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "players",
			Help:      "Number of contestants on the roster",
		}),
		LastScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "last_score",
			Help:      "Most recently set contestant score",
		}),
		BuzzerSockets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "buzzer_sockets",
			Help:      "Open buzzer websocket connections",
		}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		RequestDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"route", "method"}),
	}

	m.registry.MustRegister(
		m.Events,
		m.Players,
		m.LastScore,
		m.BuzzerSockets,
		m.RequestsTotal,
		m.RequestDurations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetPlayers initialises the roster gauge, e.g. after a restore
func (m *Metrics) SetPlayers(count int) {
	m.Players.Set(float64(count))
}

// Notify records a session event
func (m *Metrics) Notify(event model.Event) {
	m.Events.WithLabelValues(string(event.Type)).Inc()

	switch event.Type {
	case model.EventPlayerJoined:
		m.Players.Inc()
	case model.EventScoreChanged:
		m.LastScore.Set(float64(event.Score))
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := middleware.NewResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		route := routeTemplate(r)
		m.RequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(wrapped.Status())).Inc()
		m.RequestDurations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return tmpl
		}
	}
	return "unmatched"
}
