package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinematicBody_Impulse(t *testing.T) {
	b := NewKinematicBody(Vec2{}, 2)
	b.ApplyImpulse(Vec2{X: 4, Y: 2})
	assert.Equal(t, Vec2{X: 2, Y: 1}, b.Velocity())
}

func TestKinematicBody_Integrate(t *testing.T) {
	b := NewKinematicBody(Vec2{X: 1, Y: 1}, 1)
	b.ApplyForce(Vec2{X: 10})
	assert.Equal(t, Vec2{X: 10}, b.PendingForce())

	b.Integrate(0.5, Vec2{Y: -2})

	assert.Equal(t, Vec2{X: 5, Y: -1}, b.Velocity())
	assert.Equal(t, Vec2{X: 3.5, Y: 0.5}, b.Position())
	assert.Equal(t, Vec2{}, b.PendingForce(), "force cleared after step")
}

func TestKinematicBody_DefaultMass(t *testing.T) {
	assert.Equal(t, 1.0, NewKinematicBody(Vec2{}, 0).Mass())
}

func TestCountdown(t *testing.T) {
	var c Countdown
	assert.False(t, c.Tick(1), "idle timer never fires")

	c.Start(0.3)
	assert.True(t, c.Active())
	assert.False(t, c.Tick(0.1))
	assert.False(t, c.Tick(0))
	assert.InDelta(t, 0.2, c.Remaining(), 1e-9)
	assert.False(t, c.Tick(0.1))
	assert.True(t, c.Tick(0.15))
	assert.False(t, c.Active())
	assert.Equal(t, 0.0, c.Remaining())
	assert.False(t, c.Tick(0.1), "fires once")
}

func TestFeed_OrderAndUnsubscribe(t *testing.T) {
	var f Feed[int]
	var got []string

	unsubA := f.Subscribe(func(v int) { got = append(got, "a") })
	f.Subscribe(func(v int) { got = append(got, "b") })
	f.Emit(1)
	assert.Equal(t, []string{"a", "b"}, got)

	unsubA()
	unsubA()
	got = nil
	f.Emit(2)
	assert.Equal(t, []string{"b"}, got)
	assert.Equal(t, 1, f.Len())
}
