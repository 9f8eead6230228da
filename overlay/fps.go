package overlay

import "time"

// fpsCounter keeps a one-second sliding window: frames accumulate until a
// second has elapsed, then the count becomes the displayed value and the
// window resets.
type fpsCounter struct {
	frames int
	since  time.Time
	value  int
}

func (c *fpsCounter) frame(now time.Time) int {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	if now.Sub(c.since) >= time.Second {
		c.value = c.frames
		c.frames = 0
		c.since = now
	}
	return c.value
}
