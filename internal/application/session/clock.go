package session

import "math"

// Clock turns variable frame times into a whole number of fixed steps
type Clock struct {
	step     float64
	maxSteps int
	scale    float64
	resume   float64
	acc      float64
}

// NewClock creates a clock running at scale 1. maxSteps bounds the catch-up
// per Advance; a non-positive value means 1.
func NewClock(step float64, maxSteps int) *Clock {
	if maxSteps <= 0 {
		maxSteps = 1
	}
	return &Clock{step: step, maxSteps: maxSteps, scale: 1, resume: 1}
}

// Step returns the fixed step in seconds
func (c *Clock) Step() float64 {
	return c.step
}

// Scale returns the current time scale
func (c *Clock) Scale() float64 {
	return c.scale
}

// SetScale sets the time scale. Negative values are treated as 0.
func (c *Clock) SetScale(s float64) {
	c.scale = max(0, s)
	if c.scale > 0 {
		c.resume = c.scale
	}
}

// Paused reports whether time is stopped
func (c *Clock) Paused() bool {
	return c.scale == 0
}

// Pause stops time, remembering the scale to resume at
func (c *Clock) Pause() {
	if c.scale > 0 {
		c.resume = c.scale
	}
	c.scale = 0
}

// Resume restores the scale that was active before Pause
func (c *Clock) Resume() {
	c.scale = c.resume
}

// Advance adds frameDt of scaled time and returns how many fixed steps are
// due. Backlog beyond maxSteps is dropped.
func (c *Clock) Advance(frameDt float64) int {
	if frameDt <= 0 || c.scale == 0 || c.step <= 0 {
		return 0
	}
	c.acc += frameDt * c.scale

	n := 0
	for c.acc >= c.step && n < c.maxSteps {
		c.acc -= c.step
		n++
	}
	if c.acc >= c.step {
		c.acc = math.Mod(c.acc, c.step)
	}
	return n
}

// Reset drops any accumulated time
func (c *Clock) Reset() {
	c.acc = 0
}
