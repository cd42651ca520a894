package entity

// PhysicsBody is the rigid body an actor drives. It is owned by the physics
// backend; controllers only read and nudge it.
type PhysicsBody interface {
	Position() Vec2
	SetPosition(p Vec2)
	Velocity() Vec2
	SetVelocity(v Vec2)
	// ApplyImpulse changes velocity immediately by impulse/mass.
	ApplyImpulse(impulse Vec2)
	// ApplyForce accumulates a force consumed by the next integration step.
	ApplyForce(force Vec2)
	Mass() float64
}

// KinematicBody is an in-memory PhysicsBody with explicit Euler integration.
// It backs enemies in headless runs and every controller test.
type KinematicBody struct {
	Pos   Vec2
	Vel   Vec2
	M     float64
	force Vec2
}

// NewKinematicBody creates a body at pos. Non-positive mass is treated as 1.
func NewKinematicBody(pos Vec2, mass float64) *KinematicBody {
	if mass <= 0 {
		mass = 1
	}
	return &KinematicBody{Pos: pos, M: mass}
}

// Position returns the centre of the body
func (b *KinematicBody) Position() Vec2 { return b.Pos }

// SetPosition teleports the body
func (b *KinematicBody) SetPosition(p Vec2) { b.Pos = p }

// Velocity returns the linear velocity
func (b *KinematicBody) Velocity() Vec2 { return b.Vel }

// SetVelocity overwrites the linear velocity
func (b *KinematicBody) SetVelocity(v Vec2) { b.Vel = v }

// Mass returns the body mass
func (b *KinematicBody) Mass() float64 { return b.M }

// ApplyImpulse adds impulse/mass to the velocity
func (b *KinematicBody) ApplyImpulse(impulse Vec2) {
	b.Vel = b.Vel.Add(impulse.Scale(1 / b.M))
}

// ApplyForce accumulates force until the next Integrate
func (b *KinematicBody) ApplyForce(force Vec2) {
	b.force = b.force.Add(force)
}

// PendingForce returns the force accumulated since the last Integrate
func (b *KinematicBody) PendingForce() Vec2 {
	return b.force
}

// Accelerate applies gravity and the accumulated force to the velocity,
// then clears the force
func (b *KinematicBody) Accelerate(dt float64, gravity Vec2) {
	accel := b.force.Scale(1 / b.M).Add(gravity)
	b.Vel = b.Vel.Add(accel.Scale(dt))
	b.force = Vec2{}
}

// Integrate advances the body by dt under gravity (semi-implicit Euler)
func (b *KinematicBody) Integrate(dt float64, gravity Vec2) {
	b.Accelerate(dt, gravity)
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))
}
