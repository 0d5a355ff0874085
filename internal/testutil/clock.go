package testutil

import (
	"sync"
	"time"
)

// ReferenceTime is the default instant for test clocks:
// Wednesday 2024-01-10 09:45 UTC, in the middle of a teaching day.
func ReferenceTime() time.Time {
	return time.Date(2024, time.January, 10, 9, 45, 0, 0, time.UTC)
}

// At builds a UTC time on the reference day.
func At(hour, minute int) time.Time {
	r := ReferenceTime()
	return time.Date(r.Year(), r.Month(), r.Day(), hour, minute, 0, 0, time.UTC)
}

// Clock provides a controllable time source for tests.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock returns a clock set to start, or ReferenceTime when start is zero.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

// Now returns the current instant tracked by the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance moves the clock forward by d and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
	return c.current
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}
