// Package clock supplies the millisecond time source emitters use to derive
// per-frame deltas.
package clock

import (
	"sync"
	"time"
)

// Clock returns a non-decreasing timestamp in milliseconds.
type Clock interface {
	Now() float64
}

// SystemClock reads the process monotonic clock and reports it as
// milliseconds since the Unix epoch.
//
// The epoch offset is captured once from the wall clock at construction; every
// later reading adds the monotonic elapsed time to it, so wall-clock
// adjustments (NTP, manual changes) never make the value go backwards.
// time.Now falls back to wall time on platforms without a monotonic source.
type SystemClock struct {
	start   time.Time
	epochMs float64
}

// NewSystemClock creates a SystemClock anchored at the current time.
func NewSystemClock() *SystemClock {
	start := time.Now()
	return &SystemClock{
		start:   start,
		epochMs: float64(start.UnixNano()) / float64(time.Millisecond),
	}
}

// Now returns the current time in milliseconds.
func (c *SystemClock) Now() float64 {
	return c.epochMs + float64(time.Since(c.start))/float64(time.Millisecond)
}

// ManualClock is a controllable Clock for tests and fixed-step hosts.
type ManualClock struct {
	mu  sync.RWMutex
	now float64
}

// NewManualClock creates a ManualClock starting at startMs.
func NewManualClock(startMs float64) *ManualClock {
	return &ManualClock{now: startMs}
}

// Now returns the current manual time in milliseconds.
func (c *ManualClock) Now() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Set moves the clock to ms. Values earlier than the current time are ignored.
func (c *ManualClock) Set(ms float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms > c.now {
		c.now = ms
	}
}

// Advance moves the clock forward by ms. Negative steps are ignored.
func (c *ManualClock) Advance(ms float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ms > 0 {
		c.now += ms
	}
}
