package clock

import "time"

// Clock provides the current instant and can be mocked for testing.
// Buzz timestamps and join times are always taken from a Clock.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the wall clock, normalised to UTC
type SystemClock struct{}

// New creates a new SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time in UTC
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC()
}
