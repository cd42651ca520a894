package playing

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/actorsim/internal/application/system"
)

var itemKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5}

// readKeyboard samples the keyboard. Must be called from ebiten's Update.
func readKeyboard() system.InputFrame {
	var f system.InputFrame
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		f.MoveX--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		f.MoveX++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		f.MoveY++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		f.MoveY--
	}
	f.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	f.JumpReleased = inpututil.IsKeyJustReleased(ebiten.KeySpace)
	f.Glide = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	f.Attack = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	f.Heal = ebiten.IsKeyPressed(ebiten.KeyH)
	for i, key := range itemKeys {
		if inpututil.IsKeyJustPressed(key) {
			f.UseItem = i + 1
		}
	}
	return f
}
