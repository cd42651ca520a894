package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/actorsim/internal/application/system"
	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

const testDT = 0.02

var actorSize = entity.Vec2{X: 0.8, Y: 1.4}

func createTestStage() *entity.Stage {
	layers := []string{"ground", "wall"}
	return &entity.Stage{
		Width:  20,
		Height: 10,
		Solids: []entity.Solid{
			{Rect: entity.RectFromMinMax(entity.Vec2{X: 0, Y: 0}, entity.Vec2{X: 20, Y: 1}), Layers: layers},
			{Rect: entity.RectFromMinMax(entity.Vec2{X: 8, Y: 1}, entity.Vec2{X: 9, Y: 6}), Layers: layers},
			{Rect: entity.RectFromMinMax(entity.Vec2{X: 12, Y: 3}, entity.Vec2{X: 14, Y: 3.5}), Layers: []string{"ground"}},
		},
	}
}

func newTestWorld() *World {
	return NewWorld(&config.SimulationConfig{Gravity: -30}, createTestStage())
}

func steps(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(testDT)
	}
}

func TestWorld_ImplementsWorld(t *testing.T) {
	var w system.World = newTestWorld()
	assert.NotNil(t, w)
}

func TestWorld_FallsAndLands(t *testing.T) {
	w := newTestWorld()
	body := w.AddBody(1, entity.Vec2{X: 3, Y: 5}, actorSize, 1)

	// positions integrate before velocities, so the fall shows one step late
	w.Step(testDT)
	assert.Equal(t, 5.0, body.Position().Y)
	assert.InDelta(t, -30*testDT, body.Velocity().Y, 1e-9)
	w.Step(testDT)
	assert.InDelta(t, 5-30*testDT*testDT, body.Position().Y, 1e-9)

	steps(w, 150)
	assert.InDelta(t, 1.7, body.Position().Y, 0.05)
	assert.InDelta(t, 0, body.Velocity().Y, 0.5)
	assert.InDelta(t, 3, body.Position().X, 1e-6, "no drift or spin on landing")

	// the player's ground sensor sees the floor it rests on
	assert.True(t, w.OverlapCircle(body.Position().Add(entity.Vec2{Y: -0.7}), 0.15, "ground"))
}

func TestWorld_StopsAtWall(t *testing.T) {
	w := newTestWorld()
	body := w.AddBody(1, entity.Vec2{X: 5, Y: 1.75}, actorSize, 1)

	// pushed the way MovementController drives a body
	for i := 0; i < 80; i++ {
		body.ApplyForce(entity.Vec2{X: 10})
		w.Step(testDT)
	}
	steps(w, 30)
	assert.InDelta(t, 7.6, body.Position().X, 0.05)
	assert.InDelta(t, 0, body.Velocity().X, 0.1)
	assert.True(t, w.Raycast(body.Position(), entity.Vec2{X: 1}, 0.55, "wall"))
	assert.False(t, w.Raycast(body.Position(), entity.Vec2{X: -1}, 0.55, "wall"))
}

func TestWorld_Sensors(t *testing.T) {
	w := newTestWorld()

	tests := []struct {
		name   string
		hit    bool
		center entity.Vec2
		layer  string
	}{
		{"touching the floor", true, entity.Vec2{X: 3, Y: 1.1}, "ground"},
		{"in the air", false, entity.Vec2{X: 3, Y: 2}, "ground"},
		{"ledge only on ground layer", true, entity.Vec2{X: 13, Y: 3.6}, "ground"},
		{"ledge is not a wall", false, entity.Vec2{X: 13, Y: 3.6}, "wall"},
		{"unknown layer", false, entity.Vec2{X: 3, Y: 1.1}, "water"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hit, w.OverlapCircle(tt.center, 0.15, tt.layer))
		})
	}

	assert.False(t, w.Raycast(entity.Vec2{X: 3, Y: 3}, entity.Vec2{}, 5, "ground"), "zero direction")
	assert.False(t, w.Raycast(entity.Vec2{X: 3, Y: 3}, entity.Vec2{Y: -1}, 0, "ground"), "zero distance")
	assert.True(t, w.Raycast(entity.Vec2{X: 3, Y: 3}, entity.Vec2{Y: -1}, 2.5, "ground"))
}

func TestWorld_ActorsIgnoreEachOther(t *testing.T) {
	w := newTestWorld()
	a := w.AddBody(1, entity.Vec2{X: 3, Y: 1.7}, actorSize, 1)
	b := w.AddBody(2, entity.Vec2{X: 3.2, Y: 1.7}, actorSize, 1)

	steps(w, 10)
	assert.InDelta(t, 3, a.Position().X, 1e-6)
	assert.InDelta(t, 3.2, b.Position().X, 1e-6)

	// actors are not sensor targets either
	assert.False(t, w.OverlapCircle(entity.Vec2{X: 3, Y: 2.5}, 0.1, "ground"))
}

func TestWorld_ForcesAreConsumedOnStep(t *testing.T) {
	w := NewWorld(&config.SimulationConfig{}, &entity.Stage{})
	body := w.AddBody(1, entity.Vec2{}, actorSize, 2)

	body.ApplyForce(entity.Vec2{X: 4})
	body.ApplyForce(entity.Vec2{X: 6})
	w.Step(0.5)
	assert.InDelta(t, 2.5, body.Velocity().X, 1e-9)
	assert.Zero(t, body.Position().X, "moves with the velocity it had before the step")

	w.Step(0.5)
	assert.InDelta(t, 2.5, body.Velocity().X, 1e-9, "forces are cleared by the step")
	assert.InDelta(t, 1.25, body.Position().X, 1e-9)

	body.ApplyImpulse(entity.Vec2{Y: 4})
	assert.InDelta(t, 2, body.Velocity().Y, 1e-9)
	assert.Equal(t, 2.0, body.Mass())
}

func TestWorld_AddRemove(t *testing.T) {
	w := newTestWorld()
	first := w.AddBody(1, entity.Vec2{X: 3, Y: 5}, actorSize, 1)
	second := w.AddBody(1, entity.Vec2{X: 4, Y: 5}, actorSize, 0)
	require.NotSame(t, first, second)
	assert.Equal(t, 1.0, second.Mass(), "non-positive mass falls back to 1")

	w.Step(testDT)
	assert.Equal(t, 5.0, first.Position().Y, "replaced body is no longer stepped")
	assert.Less(t, second.Velocity().Y, 0.0)

	w.RemoveBody(1)
	w.RemoveBody(1)
	y, vy := second.Position().Y, second.Velocity().Y
	w.Step(testDT)
	assert.Equal(t, y, second.Position().Y)
	assert.Equal(t, vy, second.Velocity().Y)
}

func TestWorld_Teleport(t *testing.T) {
	w := newTestWorld()
	body := w.AddBody(1, entity.Vec2{X: 3, Y: 1.7}, actorSize, 1)
	body.SetPosition(entity.Vec2{X: 15, Y: 4})
	body.SetVelocity(entity.Vec2{})
	assert.Equal(t, entity.Vec2{X: 15, Y: 4}, body.Position())

	steps(w, 100)
	assert.InDelta(t, 15, body.Position().X, 1e-6)
	assert.InDelta(t, 1.7, body.Position().Y, 0.05)
}
