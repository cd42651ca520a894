package session

import (
	"fmt"

	"github.com/younwookim/actorsim/internal/application/system"
	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

const playerID entity.EntityID = 1

// Player groups the controllers acting on the player body. Movement, Combat
// and Healing are nil when their tuning was rejected.
type Player struct {
	ID   entity.EntityID
	Body entity.PhysicsBody
	Size entity.Vec2

	Stats     entity.Stats
	Abilities entity.Abilities
	Unlocked  entity.UnlockedAbilities

	Movement    *system.MovementController
	Combat      *system.CombatController
	Health      *system.HealthController
	Effects     *system.StatusEffectController
	Healing     *system.HealingController
	Inventory   *system.Inventory
	Items       *system.ItemUser
	Checkpoints *system.CheckpointService
}

// Position implements system.Target
func (p *Player) Position() entity.Vec2 {
	return p.Body.Position()
}

// Hurtbox returns the area enemies and zones hit
func (p *Player) Hurtbox() entity.Rect {
	return entity.Rect{Center: p.Body.Position(), Size: p.Size}
}

// Vulnerable is false while the hurtbox is switched off by an attack
func (p *Player) Vulnerable() bool {
	return p.Combat == nil || p.Combat.HurtboxEnabled()
}

// Facing returns +1 or -1
func (p *Player) Facing() float64 {
	if p.Movement == nil {
		return 1
	}
	return p.Movement.Facing()
}

// Unlock grants a persisted ability by its item-table name
func (p *Player) Unlock(name string) error {
	switch name {
	case "DoubleJump":
		p.Unlocked.DoubleJump = true
	case "SlowFall":
		p.Unlocked.SlowFall = true
	case "WallClimb":
		p.Unlocked.WallClimb = true
	default:
		return fmt.Errorf("unknown ability %q", name)
	}
	p.Abilities = p.Unlocked.Apply()
	return nil
}

func (s *Session) spawnPlayer(snap entity.SaveSnapshot, resumed bool) (*Player, error) {
	cfg := &s.tuning.Player
	p := &Player{
		ID:       playerID,
		Size:     cfg.Size.ToVec2(),
		Stats:    cfg.Stats.ToStats(),
		Unlocked: cfg.Abilities.ToUnlocked(),
	}
	pos := s.stage.Spawn
	if resumed {
		p.Unlocked = snap.Abilities
		if snap.MaxHealth > 0 {
			p.Stats.MaxHealth = snap.MaxHealth
		}
		if snap.CheckpointPosition != (entity.Vec3{}) {
			pos = snap.CheckpointPosition.XY()
		}
	}
	p.Abilities = p.Unlocked.Apply()
	p.Body = s.world.AddBody(p.ID, pos, p.Size, cfg.Mass)

	var err error
	p.Health, err = system.NewHealthController(&cfg.Health, p.Body, &p.Stats, system.RespawnOnDeath)
	if err != nil {
		return nil, fmt.Errorf("player health: %w", err)
	}
	p.Movement, err = system.NewMovementController(&cfg.Movement, p.Body, s.world, &p.Stats, &p.Abilities, s.animator)
	if err != nil {
		s.logger.Printf("player movement disabled: %v", err)
		p.Movement = nil
	}
	if p.Movement != nil {
		p.Combat, err = system.NewCombatController(&cfg.Combat, p.Body, &p.Stats, p.Movement, s.animator)
		if err != nil {
			s.logger.Printf("player combat disabled: %v", err)
			p.Combat = nil
		}
	}
	p.Effects = system.NewStatusEffectController(&p.Stats, s.logger)

	var locker system.Locker
	if p.Movement != nil {
		locker = p.Movement
	}
	p.Healing, err = system.NewHealingController(&cfg.Healing, p.Health, &p.Stats, locker, s.animator)
	if err != nil {
		s.logger.Printf("player healing disabled: %v", err)
		p.Healing = nil
	}

	var carried []int
	if resumed {
		carried = snap.Inventory
	}
	p.Inventory = system.NewInventory(carried)
	p.Items = system.NewItemUser(s.catalog, p.Inventory, p.Health, p.Effects)

	p.Checkpoints = system.NewCheckpointService(s.store, p.Body, s.saveSnapshot)
	p.Checkpoints.SetRespawnPoint(pos)
	p.Checkpoints.SetErrorCheckpoint(pos)
	p.Checkpoints.OnRespawn(func() {
		if p.Movement != nil {
			p.Movement.Reset()
		}
		if p.Combat != nil {
			p.Combat.Cancel()
		}
		if p.Healing != nil {
			p.Healing.Stop()
		}
	})
	p.Health.SetRespawner(p.Checkpoints)
	p.Health.SetErrorCheckpoint(p.Checkpoints)

	if resumed && snap.CurrentHealth != nil {
		p.Health.Restore(*snap.CurrentHealth)
	}

	p.Health.Damaged.Subscribe(func(int) { s.stats.HitsTaken++ })
	p.Health.Died.Subscribe(func(at entity.Vec2) {
		s.stats.Deaths++
		s.logger.Printf("player died at (%.2f, %.2f), respawning at (%.2f, %.2f)",
			at.X, at.Y, p.Checkpoints.RespawnPoint().X, p.Checkpoints.RespawnPoint().Y)
	})
	p.Items.Used.Subscribe(func(bp entity.ItemBlueprint) {
		s.logger.Printf("used %s", bp.Name)
	})
	return p, nil
}

// applyInput feeds one tick of intent into the player controllers
func (p *Player) applyInput(in system.InputFrame) error {
	if p.Movement != nil {
		p.Movement.SetAxis(in.MoveX)
		p.Movement.SetGlide(in.Glide)
		if in.JumpPressed {
			p.Movement.PressJump()
		}
		if in.JumpReleased {
			p.Movement.ReleaseJump()
		}
	}

	healing := false
	if p.Healing != nil {
		switch {
		case in.Heal && !p.Healing.Healing():
			p.Healing.Start()
		case !in.Heal && p.Healing.Healing():
			p.Healing.Stop()
		}
		healing = p.Healing.Healing()
	}

	if p.Combat != nil {
		p.Combat.Aim(entity.Vec2{X: in.MoveX, Y: in.MoveY})
		if in.Attack && !healing {
			p.Combat.RequestAttack()
		}
	}

	if in.UseItem > 0 {
		if err := p.Items.Use(in.UseItem - 1); err != nil {
			return fmt.Errorf("item slot %d: %w", in.UseItem, err)
		}
	}
	return nil
}

func (p *Player) tickControllers(dt float64) {
	if p.Movement != nil {
		p.Movement.Tick(dt)
	}
	if p.Combat != nil {
		p.Combat.Tick(dt)
	}
	if p.Healing != nil {
		p.Healing.Tick(dt)
	}
}

func (p *Player) tickTimers(dt float64) {
	p.Health.Tick(dt)
	p.Effects.Tick(dt)
}

// standPoint is where an actor of the given size stands inside zone
func standPoint(zone entity.Rect, size entity.Vec2) entity.Vec2 {
	return entity.Vec2{X: zone.Center.X, Y: zone.Min().Y + size.Y/2}
}

var _ system.Target = (*Player)(nil)
var _ system.Facer = (*Player)(nil)

func playerConfigured(cfg *config.TuningConfig) bool {
	return cfg.Player.Mass > 0 && cfg.Player.Size.Width > 0 && cfg.Player.Size.Height > 0
}
