package entity

// Countdown is a tick-driven timer. It never sleeps: callers advance it with
// Tick, so a frozen clock freezes it too.
type Countdown struct {
	remaining float64
}

// Start sets the remaining time
func (c *Countdown) Start(d float64) {
	c.remaining = d
}

// Stop clears the timer without firing
func (c *Countdown) Stop() {
	c.remaining = 0
}

// Active reports whether time remains
func (c *Countdown) Active() bool {
	return c.remaining > 0
}

// Remaining returns the time left, never negative
func (c *Countdown) Remaining() float64 {
	return c.remaining
}

// Tick advances by dt and reports whether the timer expired on this call
func (c *Countdown) Tick(dt float64) bool {
	if c.remaining <= 0 {
		return false
	}
	c.remaining -= dt
	if c.remaining <= 0 {
		c.remaining = 0
		return true
	}
	return false
}
