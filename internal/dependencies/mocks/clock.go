package mocks

import (
	"sync"
	"time"

	"github.com/NotJanLive/trivia-pulse-points/internal/dependencies/clock"
)

// MockClock is a manually driven Clock. It only moves when told to, so
// buzz timestamps and session expiry are deterministic in tests.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock frozen at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new instant
func (c *MockClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set jumps the clock to t
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
