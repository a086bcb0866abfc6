package engine

import "time"

// Clock supplies the timestamps recorded in the keystroke log.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the monotonic wall clock.
var SystemClock Clock = systemClock{}

// ManualClock is a Clock moved explicitly by its owner. It makes replays
// of a keystroke timeline reproducible.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a ManualClock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) { c.now = t }
