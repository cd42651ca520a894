// Package game adapts a Scene stack to ebiten.Game and lets other goroutines
// swap the running scene.
package game

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/actorsim/internal/application/scene"
)

// layouter is implemented by scenes that pick their own logical screen size
type layouter interface {
	Layout(outsideWidth, outsideHeight int) (int, int)
}

// Game implements ebiten.Game over the current scene
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	dt      float64

	mu      sync.Mutex
	pending scene.Scene
}

// New creates a Game showing initial. The fallback screen size is used when
// the scene has no Layout of its own. initial.OnEnter runs immediately.
func New(initial scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		current: initial,
		screenW: screenW,
		screenH: screenH,
		dt:      1 / float64(ebiten.TPS()),
	}
	g.current.OnEnter()
	return g
}

// Current returns the running scene
func (g *Game) Current() scene.Scene {
	return g.current
}

// Replace queues next to take over on the following Update. Safe from any
// goroutine; only the last queued scene is entered.
func (g *Game) Replace(next scene.Scene) {
	g.mu.Lock()
	g.pending = next
	g.mu.Unlock()
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()
	if pending != nil {
		g.switchTo(pending)
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}
	if next != nil {
		g.switchTo(next)
	}
	return nil
}

func (g *Game) switchTo(next scene.Scene) {
	g.current.OnExit()
	g.current = next
	g.current.OnEnter()
}

// Close exits the current scene. Call once the loop has ended.
func (g *Game) Close() {
	g.current.OnExit()
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if l, ok := g.current.(layouter); ok {
		return l.Layout(outsideWidth, outsideHeight)
	}
	return g.screenW, g.screenH
}

// SetDT overrides the per-Update step, which defaults to one tick at the
// current TPS
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}
