package system

import (
	"math"

	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// Contacts are the solid faces a body touched during the last step
type Contacts struct {
	OnGround    bool
	OnCeiling   bool
	OnWallLeft  bool
	OnWallRight bool
}

// skin shrinks overlap tests so bodies resting flush against a solid are
// not treated as penetrating it
const skin = 1e-6

type kinematic struct {
	*entity.KinematicBody
	size     entity.Vec2
	contacts Contacts
}

// PhysicsSystem is the built-in World: kinematic bodies resolved axis by
// axis against the stage solids. Deterministic and allocation-free per step.
type PhysicsSystem struct {
	stage   *entity.Stage
	gravity entity.Vec2
	bodies  map[entity.EntityID]*kinematic
	order   []entity.EntityID
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.SimulationConfig, stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{
		stage:   stage,
		gravity: entity.Vec2{Y: cfg.Gravity},
		bodies:  make(map[entity.EntityID]*kinematic),
	}
}

// AddBody creates a box body. Re-adding an id replaces it.
func (s *PhysicsSystem) AddBody(id entity.EntityID, pos, size entity.Vec2, mass float64) entity.PhysicsBody {
	if _, ok := s.bodies[id]; !ok {
		s.order = append(s.order, id)
	}
	k := &kinematic{KinematicBody: entity.NewKinematicBody(pos, mass), size: size}
	s.bodies[id] = k
	return k.KinematicBody
}

// RemoveBody drops a body
func (s *PhysicsSystem) RemoveBody(id entity.EntityID) {
	if _, ok := s.bodies[id]; !ok {
		return
	}
	delete(s.bodies, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Contacts returns the contact flags of a body from the last step
func (s *PhysicsSystem) Contacts(id entity.EntityID) Contacts {
	if k, ok := s.bodies[id]; ok {
		return k.contacts
	}
	return Contacts{}
}

// Step advances every body in insertion order
func (s *PhysicsSystem) Step(dt float64) {
	if dt <= 0 {
		return
	}
	for _, id := range s.order {
		k := s.bodies[id]
		k.contacts = Contacts{}
		k.Accelerate(dt, s.gravity)
		s.move(k, k.Vel.X*dt, true)
		s.move(k, k.Vel.Y*dt, false)
	}
}

// OverlapCircle implements Environment
func (s *PhysicsSystem) OverlapCircle(center entity.Vec2, radius float64, layer string) bool {
	return s.stage.OverlapCircle(center, radius, layer)
}

// Raycast implements Environment
func (s *PhysicsSystem) Raycast(origin, dir entity.Vec2, distance float64, layer string) bool {
	return s.stage.Raycast(origin, dir, distance, layer)
}

// move sweeps one axis in substeps no longer than half the body's smallest
// side, stopping flush against the first solid hit
func (s *PhysicsSystem) move(k *kinematic, delta float64, horizontal bool) {
	if delta == 0 {
		return
	}
	step := math.Min(k.size.X, k.size.Y) / 2
	if step <= 0 {
		step = math.Abs(delta)
	}
	n := int(math.Ceil(math.Abs(delta) / step))
	inc := delta / float64(n)

	for i := 0; i < n; i++ {
		next := k.Pos
		if horizontal {
			next.X += inc
		} else {
			next.Y += inc
		}

		hit, ok := s.firstSolid(entity.Rect{Center: next, Size: k.size.Sub(entity.Vec2{X: 2 * skin, Y: 2 * skin})})
		if !ok {
			k.Pos = next
			continue
		}

		lo, hi := hit.Min(), hit.Max()
		switch {
		case horizontal && inc > 0:
			k.Pos.X = lo.X - k.size.X/2
			k.contacts.OnWallRight = true
		case horizontal:
			k.Pos.X = hi.X + k.size.X/2
			k.contacts.OnWallLeft = true
		case inc > 0:
			k.Pos.Y = lo.Y - k.size.Y/2
			k.contacts.OnCeiling = true
		default:
			k.Pos.Y = hi.Y + k.size.Y/2
			k.contacts.OnGround = true
		}
		if horizontal {
			k.Vel.X = 0
		} else {
			k.Vel.Y = 0
		}
		return
	}
}

func (s *PhysicsSystem) firstSolid(r entity.Rect) (entity.Rect, bool) {
	for _, sol := range s.stage.Solids {
		if sol.Rect.Overlaps(r) {
			return sol.Rect, true
		}
	}
	return entity.Rect{}, false
}
