package driver

import "time"

// Clock tracks elapsed show time. When frozen it always reports the same
// instant, which makes a single frame reproducible.
type Clock struct {
	elapsed time.Duration
	frozen  *float32
}

func NewClock() *Clock { return &Clock{} }

// Freeze pins Now to t seconds.
func (c *Clock) Freeze(t float32) { c.frozen = &t }

func (c *Clock) Frozen() bool { return c.frozen != nil }

func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.elapsed += dt
	}
}

// Now returns the show time in seconds.
func (c *Clock) Now() float32 {
	if c.frozen != nil {
		return *c.frozen
	}
	return float32(c.elapsed.Seconds())
}
