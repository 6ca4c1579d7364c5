// Package clock lets time-dependent code read the wall clock through an
// interface so tests can pin it.
package clock

import (
	"sync"
	"time"
)

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// NewRealClock creates a system clock
func NewRealClock() RealClock {
	return RealClock{}
}

// Now returns time.Now()
func (RealClock) Now() time.Time {
	return time.Now()
}

// zoned reports the wrapped clock's time in a fixed location
type zoned struct {
	base Clock
	loc  *time.Location
}

// InLocation wraps c so Now is expressed in loc, which decides the local
// hour, season and weekday. A nil loc returns c unchanged.
func InLocation(c Clock, loc *time.Location) Clock {
	if loc == nil {
		return c
	}
	return zoned{base: c, loc: loc}
}

func (z zoned) Now() time.Time {
	return z.base.Now().In(z.loc)
}

// MockClock is a settable Clock for tests
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a MockClock pinned at start
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Set pins the clock at t
func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}
