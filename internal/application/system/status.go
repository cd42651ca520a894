package system

import (
	"io"
	"log"

	"github.com/younwookim/actorsim/internal/domain/entity"
)

// StatusEffectController overlays one timed multiplier on the stats.
// Baselines are captured once at construction, so repeated effects never
// compound.
type StatusEffectController struct {
	stats    *entity.Stats
	baseline entity.Stats
	active   *entity.StatusEffect
	timer    entity.Countdown
	logger   *log.Logger

	Applied entity.Feed[entity.StatusEffect]
	Expired entity.Feed[entity.StatusEffect]
}

// NewStatusEffectController snapshots stats as the baseline
func NewStatusEffectController(stats *entity.Stats, logger *log.Logger) *StatusEffectController {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &StatusEffectController{
		stats:    stats,
		baseline: *stats,
		logger:   logger,
	}
}

// Baseline returns the stats captured at construction
func (c *StatusEffectController) Baseline() entity.Stats {
	return c.baseline
}

// Active returns the running effect, if any
func (c *StatusEffectController) Active() (entity.StatusEffect, bool) {
	if c.active == nil {
		return entity.StatusEffect{}, false
	}
	return *c.active, true
}

// Remaining returns the time left on the running effect
func (c *StatusEffectController) Remaining() float64 {
	return c.timer.Remaining()
}

// Apply reverts any running effect, then applies e
func (c *StatusEffectController) Apply(e entity.StatusEffect) {
	if c.active != nil {
		c.revert()
	}

	b := c.baseline
	switch e.Kind {
	case entity.StatusSpeedBoost:
		c.stats.MoveForce = b.MoveForce * e.Multiplier
	case entity.StatusJumpBoost:
		c.stats.JumpForce = b.JumpForce * e.Multiplier
	case entity.StatusDamageUp:
		c.stats.AttackDamage = int(float64(b.AttackDamage) * e.Multiplier)
	case entity.StatusHealthIncrease:
		c.stats.MaxHealth = int(float64(b.MaxHealth) * e.Multiplier)
	case entity.StatusFeatherFall:
		c.stats.SlowFallMultiplier = b.SlowFallMultiplier * e.Multiplier
	case entity.StatusKnockbackResist:
		c.stats.KnockbackForce = b.KnockbackForce * e.Multiplier
	case entity.StatusPogoPower:
		c.stats.PogoForce = b.PogoForce * e.Multiplier
	case entity.StatusHealingSpeed:
		c.stats.HealRate = b.HealRate * e.Multiplier
	default:
		c.logger.Printf("status effect %v is not defined", e.Kind)
	}

	effect := e
	c.active = &effect
	c.timer.Start(e.Duration)
	c.logger.Printf("status effect %s x%.2f for %.1fs", e.Kind, e.Multiplier, e.Duration)
	c.Applied.Emit(effect)
}

// Tick expires the running effect once its duration has elapsed
func (c *StatusEffectController) Tick(dt float64) {
	if c.active == nil || dt <= 0 {
		return
	}
	if c.timer.Tick(dt) || !c.timer.Active() {
		c.expire()
	}
}

// Revert ends the running effect immediately
func (c *StatusEffectController) Revert() {
	if c.active == nil {
		return
	}
	c.timer.Stop()
	c.expire()
}

func (c *StatusEffectController) expire() {
	effect := *c.active
	c.revert()
	c.logger.Printf("status effect %s ended", effect.Kind)
	c.Expired.Emit(effect)
}

func (c *StatusEffectController) revert() {
	*c.stats = c.baseline
	c.active = nil
}
