package frame

import "time"

// Clock turns monotonic timestamps into scene time and frame deltas.
// Deltas are clamped to MaxDelta so a stall does not push particles or the
// camera through the ground in one step.
type Clock struct {
	start    time.Time
	last     time.Time
	maxDelta float32
	elapsed  float32
}

// NewClock starts a clock at now.
func NewClock(now time.Time, maxDelta float32) *Clock {
	return &Clock{start: now, last: now, maxDelta: maxDelta}
}

// Tick returns the accumulated scene time and the clamped delta since the
// previous tick. Scene time advances by the clamped delta, so it lags wall
// time after a stall.
func (c *Clock) Tick(now time.Time) (t, dt float32) {
	dt = float32(now.Sub(c.last).Seconds())
	c.last = now
	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	c.elapsed += dt
	return c.elapsed, dt
}

// Elapsed returns the scene time of the last tick.
func (c *Clock) Elapsed() float32 { return c.elapsed }

// WallTime returns the unclamped time since the clock started.
func (c *Clock) WallTime(now time.Time) time.Duration { return now.Sub(c.start) }
