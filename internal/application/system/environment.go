package system

import "github.com/younwookim/actorsim/internal/domain/entity"

// Environment answers the geometric sensor queries controllers need
type Environment interface {
	OverlapCircle(center entity.Vec2, radius float64, layer string) bool
	Raycast(origin, dir entity.Vec2, distance float64, layer string) bool
}

// World is a physics backend: it owns bodies, steps them and answers sensors
type World interface {
	Environment
	AddBody(id entity.EntityID, pos, size entity.Vec2, mass float64) entity.PhysicsBody
	RemoveBody(id entity.EntityID)
	Step(dt float64)
}

// Animator receives animation signals. Implementations must not feed back
// into simulation state.
type Animator interface {
	SetTrigger(name string)
	SetBool(name string, v bool)
	SetFloat(name string, v float64)
}

// NopAnimator discards every signal
type NopAnimator struct{}

func (NopAnimator) SetTrigger(string)        {}
func (NopAnimator) SetBool(string, bool)     {}
func (NopAnimator) SetFloat(string, float64) {}

// Damageable is anything an attack or hazard can hurt
type Damageable interface {
	TakeDamage(amount int, source entity.Vec2)
}

// Target is a weak reference to something an enemy can track
type Target interface {
	Position() entity.Vec2
}

// Facer reports the horizontal facing, +1 right or -1 left
type Facer interface {
	Facing() float64
}

func orNopAnimator(a Animator) Animator {
	if a == nil {
		return NopAnimator{}
	}
	return a
}
