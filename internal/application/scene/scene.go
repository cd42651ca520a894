// Package scene defines the Scene interface for viewer screens.
//
// The game loop delegates Update and Draw to the current scene. A scene
// hands over to another by returning it from Update.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the viewer
type Scene interface {
	// Update advances the scene by dt seconds of wall time.
	// Returns the next scene to switch to, or nil to stay.
	// A non-nil error terminates the loop.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced. Save state here.
	OnExit()
}
