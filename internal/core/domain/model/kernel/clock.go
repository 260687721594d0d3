package kernel

import (
	"sync"
	"time"
)

// Clock supplies the current time to everything that stamps lifecycle events.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock returns a settable instant. Jobs replaying a day and tests use it
// to make timestamps deterministic.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// StartOfDay strips the time of day, keeping the location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsAfterDay reports whether a falls on a later calendar day than b.
func IsAfterDay(a, b time.Time) bool {
	return StartOfDay(a).After(StartOfDay(b.In(a.Location())))
}
