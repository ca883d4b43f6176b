package mocks

import (
	"sync"

	"github.com/NotJanLive/trivia-pulse-points/internal/model"
)

// RecordingNotifier captures events for assertions in tests
type RecordingNotifier struct {
	mu     sync.Mutex
	events []model.Event
}

// NewRecordingNotifier creates an empty RecordingNotifier
func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

// Notify records the event
func (n *RecordingNotifier) Notify(event model.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

// Events returns a copy of all recorded events
func (n *RecordingNotifier) Events() []model.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := make([]model.Event, len(n.events))
	copy(result, n.events)
	return result
}

// OfType returns recorded events with the given type
func (n *RecordingNotifier) OfType(t model.EventType) []model.Event {
	var result []model.Event
	for _, e := range n.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Reset clears recorded events
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = nil
}
