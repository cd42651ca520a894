package session

import (
	"fmt"

	"github.com/younwookim/actorsim/internal/application/system"
	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

const enemyBaseID entity.EntityID = 1000

// Enemy is one spawned archetype with its controllers
type Enemy struct {
	ID   entity.EntityID
	Type string
	Size entity.Vec2
	Body entity.PhysicsBody

	cfg   config.EnemyConfig
	Stats entity.Stats

	Health *system.HealthController
	Mover  *system.EnemyMover
	Lunge  *system.LungeAttack
	AI     *system.EnemyAI

	contact       *system.ContactGate
	contactDamage int
	defeated      bool
}

// TakeDamage implements system.Damageable
func (e *Enemy) TakeDamage(amount int, source entity.Vec2) {
	if e.defeated {
		return
	}
	e.Health.TakeDamage(amount, source)
}

// Hurtbox returns the enemy body area
func (e *Enemy) Hurtbox() entity.Rect {
	return entity.Rect{Center: e.Body.Position(), Size: e.Size}
}

// Defeated reports whether the enemy died
func (e *Enemy) Defeated() bool {
	return e.defeated
}

func (s *Session) spawnEnemy(index int, spawn entity.EnemySpawn, target system.Target) (*Enemy, error) {
	cfg, ok := s.tuning.Enemies[spawn.Type]
	if !ok {
		return nil, fmt.Errorf("no tuning for enemy %q", spawn.Type)
	}

	e := &Enemy{
		ID:   enemyBaseID + entity.EntityID(index),
		Type: spawn.Type,
		Size: cfg.Size.ToVec2(),
		cfg:  cfg,
		Stats: entity.Stats{
			MaxHealth:      cfg.MaxHealth,
			KnockbackForce: cfg.KnockbackForce,
		},
		contact:       system.NewContactGate(s.tuning.ContactDamage.Interval),
		contactDamage: cfg.ContactDamage,
	}
	if e.contactDamage == 0 {
		e.contactDamage = s.tuning.ContactDamage.Damage
	}
	e.Body = s.world.AddBody(e.ID, spawn.Position, e.Size, cfg.Mass)

	var err error
	defer func() {
		if err != nil {
			s.world.RemoveBody(e.ID)
		}
	}()

	if e.Health, err = system.NewHealthController(&e.cfg.Health, e.Body, &e.Stats, system.DieOnDeath); err != nil {
		return nil, fmt.Errorf("enemy %s health: %w", spawn.Type, err)
	}
	if e.Mover, err = system.NewEnemyMover(&e.cfg.Movement, e.Body, s.world, spawn.FacingRight); err != nil {
		return nil, fmt.Errorf("enemy %s movement: %w", spawn.Type, err)
	}
	if e.Lunge, err = system.NewLungeAttack(&e.cfg.Lunge, e.Body); err != nil {
		return nil, fmt.Errorf("enemy %s lunge: %w", spawn.Type, err)
	}
	if e.AI, err = system.NewEnemyAI(&e.cfg.AI, e.Body, e.Mover, e.Lunge, s.policies[spawn.Type], e.Health); err != nil {
		return nil, fmt.Errorf("enemy %s ai: %w", spawn.Type, err)
	}
	e.AI.SetTarget(target)

	e.Health.Died.Subscribe(func(at entity.Vec2) {
		e.defeated = true
		e.AI.SetTarget(nil)
		s.world.RemoveBody(e.ID)
		s.stats.EnemiesDefeated++
		s.logger.Printf("%s defeated at (%.2f, %.2f)", e.Type, at.X, at.Y)
	})
	return e, nil
}

func (e *Enemy) tickControllers(dt float64) {
	if e.defeated {
		return
	}
	// a lunge the AI starts this tick keeps its whole charge time
	e.Lunge.Tick(dt)
	e.AI.Tick(dt)
	e.Mover.Tick(dt)
}

func (e *Enemy) tickTimers(dt float64) {
	if e.defeated {
		return
	}
	e.Health.Tick(dt)
	e.contact.Tick(dt)
}
