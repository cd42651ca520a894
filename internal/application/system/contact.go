package system

import "github.com/younwookim/actorsim/internal/domain/entity"

// ContactGate limits damage from one source to once per interval while
// contact persists. The first touch always passes.
type ContactGate struct {
	interval float64
	cooldown entity.Countdown
}

// NewContactGate creates a gate with the given repeat interval in seconds
func NewContactGate(interval float64) *ContactGate {
	return &ContactGate{interval: interval}
}

// Touch reports whether damage may be applied now and restarts the interval
func (g *ContactGate) Touch() bool {
	if g.cooldown.Active() {
		return false
	}
	g.cooldown.Start(g.interval)
	return true
}

// Tick advances the interval
func (g *ContactGate) Tick(dt float64) {
	g.cooldown.Tick(dt)
}
