// Package frameloop decides, per host display tick, whether the overlay
// repaints. The host calls OnTick at roughly display-refresh cadence; the
// scheduler only gates repaint requests, it never drives drawing itself.
package frameloop

import "time"

// Clock abstracts time so scheduling is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock provides the real monotonic time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a test clock advanced by hand.
type ManualClock struct {
	t time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{t: start}
}

func (c *ManualClock) Now() time.Time { return c.t }

func (c *ManualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
