package timing

import "time"

// FPSCounter counts frames and reports the rate once per window.
type FPSCounter struct {
	window time.Duration
	start  time.Time
	frames int
}

func NewFPSCounter(window time.Duration) *FPSCounter {
	return &FPSCounter{window: window}
}

// Frame records one frame at now. When a full window has elapsed it returns
// the average rate over it and true, and starts a new window.
func (c *FPSCounter) Frame(now time.Time) (float64, bool) {
	if c.start.IsZero() {
		c.start = now
	}
	c.frames++
	elapsed := now.Sub(c.start)
	if elapsed < c.window {
		return 0, false
	}
	fps := float64(c.frames) / elapsed.Seconds()
	c.frames = 0
	c.start = now
	return fps, true
}
