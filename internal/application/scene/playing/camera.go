package playing

import (
	"math"

	"github.com/younwookim/actorsim/internal/application/session"
)

// camera maps Y-up world units onto the Y-down screen
type camera struct {
	x, y   float64 // world position of the bottom-left screen corner
	ppu    float64
	screen session.Point
}

func newCamera(screenW, screenH int, ppu float64) *camera {
	if ppu <= 0 {
		ppu = 1
	}
	return &camera{ppu: ppu, screen: session.Point{X: float64(screenW), Y: float64(screenH)}}
}

// follow centers on focus, clamped to a stage of the given size
func (c *camera) follow(focus session.Point, stageW, stageH float64) {
	viewW := c.screen.X / c.ppu
	viewH := c.screen.Y / c.ppu
	c.x = clamp(focus.X-viewW/2, 0, stageW-viewW)
	c.y = clamp(focus.Y-viewH/2, 0, stageH-viewH)
}

// rect converts a center/size box into screen x, y, w, h
func (c *camera) rect(cx, cy, w, h float64) (float64, float64, float64, float64) {
	left := (cx - w/2 - c.x) * c.ppu
	top := c.screen.Y - (cy+h/2-c.y)*c.ppu
	return left, top, w * c.ppu, h * c.ppu
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
