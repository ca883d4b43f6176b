package notify

import (
	"log/slog"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
)

// Notifier is a fire-and-forget sink for session events.
// Implementations must not block: the state change has already been applied
// by the time Notify is called and cannot be rolled back.
type Notifier interface {
	Notify(event model.Event)
}

// NotifierFunc adapts a plain function to the Notifier interface
type NotifierFunc func(event model.Event)

// Notify calls f(event)
func (f NotifierFunc) Notify(event model.Event) {
	f(event)
}

// Nop discards all events
type Nop struct{}

// Notify does nothing
func (Nop) Notify(model.Event) {}

// Multi fans an event out to several sinks. A panicking sink is logged and
// skipped so it cannot affect the others or the caller.
type Multi struct {
	sinks  []Notifier
	logger *slog.Logger
}

// NewMulti creates a fan-out notifier over the given sinks, ignoring nils
func NewMulti(logger *slog.Logger, sinks ...Notifier) *Multi {
	m := &Multi{logger: logger.With(slog.String("component", "notify"))}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Add registers another sink
func (m *Multi) Add(sink Notifier) {
	if sink != nil {
		m.sinks = append(m.sinks, sink)
	}
}

// Notify delivers the event to every sink
func (m *Multi) Notify(event model.Event) {
	for _, sink := range m.sinks {
		m.deliver(sink, event)
	}
}

func (m *Multi) deliver(sink Notifier, event model.Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("notification sink panicked",
				slog.String("event", string(event.Type)),
				slog.Any("error", r))
		}
	}()
	sink.Notify(event)
}

// Log writes each event to a structured logger
type Log struct {
	logger *slog.Logger
}

// NewLog creates a logging notifier
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger.With(slog.String("component", "events"))}
}

// Notify logs the event
func (l *Log) Notify(event model.Event) {
	l.logger.Info(event.Message(),
		slog.String("event", string(event.Type)),
		slog.String("player_id", string(event.PlayerID)),
		slog.String("player_name", event.PlayerName),
		slog.Int("score", event.Score),
		slog.Time("timestamp", event.Timestamp),
	)
}
