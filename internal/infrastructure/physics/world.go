// Package physics provides a chipmunk2d backed World. Solids become static
// boxes tagged with their layers; actors are rotation-locked dynamic boxes
// that collide with solids but not with each other.
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeSolid
)

const (
	solidCategory uint = 1 << iota
	actorCategory
	firstLayerBit
)

// slop is the allowed penetration. The space default is tuned for pixels.
const slop = 0.01

// World implements system.World on a cp.Space
type World struct {
	space  *cp.Space
	layers map[string]uint
	solids uint
	bodies map[entity.EntityID]*Body
}

// NewWorld builds a space holding the stage solids
func NewWorld(cfg *config.SimulationConfig, stage *entity.Stage) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	space.SetCollisionSlop(slop)

	w := &World{
		space:  space,
		layers: make(map[string]uint),
		solids: solidCategory,
		bodies: make(map[entity.EntityID]*Body),
	}

	for _, s := range stage.Solids {
		categories := solidCategory
		for _, name := range s.Layers {
			categories |= w.layerBit(name)
		}
		lo, hi := s.Rect.Min(), s.Rect.Max()
		shape := cp.NewBox2(space.StaticBody, cp.BB{L: lo.X, B: lo.Y, R: hi.X, T: hi.Y}, 0)
		shape.SetFriction(0)
		shape.SetElasticity(0)
		shape.SetCollisionType(collisionTypeSolid)
		shape.SetFilter(cp.NewShapeFilter(0, categories, cp.ALL_CATEGORIES))
		space.AddShape(shape)
	}
	return w
}

// layerBit assigns each layer name its own category bit
func (w *World) layerBit(name string) uint {
	if bit, ok := w.layers[name]; ok {
		return bit
	}
	bit := firstLayerBit << uint(len(w.layers))
	w.layers[name] = bit
	w.solids |= bit
	return bit
}

// AddBody creates an actor box. Re-adding an id replaces it.
func (w *World) AddBody(id entity.EntityID, pos, size entity.Vec2, mass float64) entity.PhysicsBody {
	w.RemoveBody(id)
	if mass <= 0 {
		mass = 1
	}

	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(vec(pos))
	shape := cp.NewBox(body, size.X, size.Y, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeActor)
	shape.SetFilter(cp.NewShapeFilter(0, actorCategory, w.solids))

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{body: body, shape: shape}
	w.bodies[id] = b
	return b
}

// RemoveBody drops an actor
func (w *World) RemoveBody(id entity.EntityID) {
	b, ok := w.bodies[id]
	if !ok {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.bodies, id)
}

// Step advances the space
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// OverlapCircle reports whether a solid on layer lies within radius of center
func (w *World) OverlapCircle(center entity.Vec2, radius float64, layer string) bool {
	bit, ok := w.layers[layer]
	if !ok {
		return false
	}
	filter := cp.NewShapeFilter(0, cp.ALL_CATEGORIES, bit)
	return w.space.PointQueryNearest(vec(center), radius, filter).Shape != nil
}

// Raycast reports whether a solid on layer crosses the segment from origin
// along dir for distance
func (w *World) Raycast(origin, dir entity.Vec2, distance float64, layer string) bool {
	bit, ok := w.layers[layer]
	d := dir.Normalized()
	if !ok || distance <= 0 || d.LenSq() == 0 {
		return false
	}
	filter := cp.NewShapeFilter(0, cp.ALL_CATEGORIES, bit)
	end := origin.Add(d.Scale(distance))
	return w.space.SegmentQueryFirst(vec(origin), vec(end), 0, filter).Shape != nil
}

// Body adapts a cp.Body to entity.PhysicsBody
type Body struct {
	body  *cp.Body
	shape *cp.Shape
}

// Position returns the centre of the box
func (b *Body) Position() entity.Vec2 { return fromVec(b.body.Position()) }

// SetPosition teleports the box
func (b *Body) SetPosition(p entity.Vec2) { b.body.SetPosition(vec(p)) }

// Velocity returns the linear velocity
func (b *Body) Velocity() entity.Vec2 { return fromVec(b.body.Velocity()) }

// SetVelocity overwrites the linear velocity
func (b *Body) SetVelocity(v entity.Vec2) { b.body.SetVelocityVector(vec(v)) }

// Mass returns the body mass
func (b *Body) Mass() float64 { return b.body.Mass() }

// ApplyImpulse changes the velocity by impulse/mass
func (b *Body) ApplyImpulse(impulse entity.Vec2) {
	b.body.ApplyImpulseAtLocalPoint(vec(impulse), cp.Vector{})
}

// ApplyForce accumulates a force the space clears after the next step
func (b *Body) ApplyForce(force entity.Vec2) {
	b.body.SetForce(b.body.Force().Add(vec(force)))
}

func vec(v entity.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVec(v cp.Vector) entity.Vec2 {
	return entity.Vec2{X: v.X, Y: v.Y}
}
