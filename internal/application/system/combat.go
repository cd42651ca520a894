package system

import (
	"fmt"
	"math"

	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// AttackResult is emitted when an attack window closes
type AttackResult struct {
	Direction entity.Direction
	EnemyHit  bool
	Pogo      bool
}

// CombatController runs the attack window: Idle -> Attacking -> Idle
type CombatController struct {
	cfg      *config.CombatConfig
	body     entity.PhysicsBody
	stats    *entity.Stats
	facer    Facer
	animator Animator

	lastInput entity.Vec2
	requested bool

	attacking bool
	direction entity.Direction
	window    entity.Countdown
	enemyHit  bool
	hit       map[Damageable]bool
	swings    int

	Swings   entity.Feed[entity.Direction]
	Finished entity.Feed[AttackResult]
}

// NewCombatController creates a new combat controller
func NewCombatController(cfg *config.CombatConfig, body entity.PhysicsBody, stats *entity.Stats, facer Facer, animator Animator) (*CombatController, error) {
	switch {
	case cfg == nil || body == nil || stats == nil || facer == nil:
		return nil, fmt.Errorf("%w: combat needs config, body, stats and a facing source", ErrInvalidConfig)
	case cfg.HitboxSize.Width <= 0 || cfg.HitboxSize.Height <= 0:
		return nil, fmt.Errorf("%w: no attack hitbox configured", ErrInvalidConfig)
	case cfg.AttackDuration <= 0:
		return nil, fmt.Errorf("%w: attack duration must be positive", ErrInvalidConfig)
	}
	return &CombatController{
		cfg:      cfg,
		body:     body,
		stats:    stats,
		facer:    facer,
		animator: orNopAnimator(animator),
		hit:      make(map[Damageable]bool),
	}, nil
}

// Aim records the movement input; small inputs keep the previous aim
func (c *CombatController) Aim(input entity.Vec2) {
	if input.LenSq() > c.cfg.AimThreshold {
		c.lastInput = input
	}
}

// RequestAttack latches an attack for the next tick.
// It returns false while an attack is running or already queued.
func (c *CombatController) RequestAttack() bool {
	if c.attacking || c.requested {
		return false
	}
	c.requested = true
	return true
}

// Attacking reports whether the window is open
func (c *CombatController) Attacking() bool {
	return c.attacking
}

// Direction returns the direction of the current or last attack
func (c *CombatController) Direction() entity.Direction {
	return c.direction
}

// EnemyHit reports whether the current swing has landed
func (c *CombatController) EnemyHit() bool {
	return c.enemyHit
}

// SwingCount returns the number of attacks started
func (c *CombatController) SwingCount() int {
	return c.swings
}

// HurtboxEnabled is false while swinging
func (c *CombatController) HurtboxEnabled() bool {
	return !c.attacking
}

// Hitbox returns the attack area while the window is open
func (c *CombatController) Hitbox() (entity.Rect, bool) {
	if !c.attacking {
		return entity.Rect{}, false
	}
	center := c.body.Position().Add(c.direction.Vector().Scale(c.cfg.HitboxOffset))
	return entity.Rect{Center: center, Size: c.cfg.HitboxSize.ToVec2()}, true
}

// OnOverlapBegin damages target once per swing
func (c *CombatController) OnOverlapBegin(target Damageable) {
	if !c.attacking || target == nil || c.hit[target] {
		return
	}
	c.hit[target] = true
	c.enemyHit = true
	target.TakeDamage(c.stats.AttackDamage, c.body.Position())
}

// Tick advances the window and starts a latched attack
func (c *CombatController) Tick(dt float64) {
	if c.attacking && c.window.Tick(dt) {
		c.finish()
	}
	if c.requested && !c.attacking {
		c.start()
	}
	c.requested = false
}

// Cancel drops a queued request. A running window is never cut short.
func (c *CombatController) Cancel() {
	c.requested = false
}

func (c *CombatController) start() {
	c.direction = c.resolveDirection()
	c.attacking = true
	c.enemyHit = false
	clear(c.hit)
	c.window.Start(c.cfg.AttackDuration)
	c.swings++

	switch c.direction {
	case entity.DirUp:
		c.animator.SetTrigger("AttackUp")
	case entity.DirDown:
		c.animator.SetTrigger("AttackDown")
	default:
		c.animator.SetTrigger("Attack")
	}
	c.Swings.Emit(c.direction)
}

func (c *CombatController) resolveDirection() entity.Direction {
	in := c.lastInput
	if in.LenSq() == 0 {
		if c.facer.Facing() < 0 {
			return entity.DirLeft
		}
		return entity.DirRight
	}
	if math.Abs(in.X) > math.Abs(in.Y) {
		if in.X < 0 {
			return entity.DirLeft
		}
		return entity.DirRight
	}
	if in.Y < 0 {
		return entity.DirDown
	}
	return entity.DirUp
}

func (c *CombatController) finish() {
	res := AttackResult{Direction: c.direction, EnemyHit: c.enemyHit}
	if c.direction == entity.DirDown && c.enemyHit {
		v := c.body.Velocity()
		c.body.SetVelocity(entity.Vec2{X: v.X})
		c.body.ApplyImpulse(entity.Vec2{Y: c.stats.PogoForce})
		res.Pogo = true
	}
	c.attacking = false
	clear(c.hit)
	c.Finished.Emit(res)
}
