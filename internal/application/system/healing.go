package system

import (
	"fmt"
	"math"

	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// Locker freezes player movement while another action runs
type Locker interface {
	SetLocked(locked bool)
}

// HealingController heals while the button is held, up to a fraction of
// max health, at a rate that grows the longer it is held
type HealingController struct {
	cfg      *config.HealingConfig
	health   *HealthController
	stats    *entity.Stats
	locker   Locker
	animator Animator

	healing  bool
	holdTime float64
	rate     float64
	buffer   float64
}

// NewHealingController creates a new healing controller
func NewHealingController(cfg *config.HealingConfig, health *HealthController, stats *entity.Stats, locker Locker, animator Animator) (*HealingController, error) {
	if cfg == nil || health == nil || stats == nil {
		return nil, fmt.Errorf("%w: healing needs config, health and stats", ErrInvalidConfig)
	}
	return &HealingController{
		cfg:      cfg,
		health:   health,
		stats:    stats,
		locker:   locker,
		animator: orNopAnimator(animator),
	}, nil
}

// Cap returns the health healing stops at
func (c *HealingController) Cap() float64 {
	return float64(c.health.Max()) * c.cfg.CapFraction
}

// Healing reports whether the channel is active
func (c *HealingController) Healing() bool {
	return c.healing
}

// Rate returns the current heal rate in health per second
func (c *HealingController) Rate() float64 {
	return c.rate
}

// Start begins channeling. Rejected when health is already at the cap.
func (c *HealingController) Start() bool {
	if c.healing || float64(c.health.Current()) >= c.Cap() {
		return false
	}
	c.healing = true
	c.holdTime = 0
	c.buffer = 0
	c.rate = c.stats.HealRate
	c.lock(true)
	return true
}

// Stop ends channeling
func (c *HealingController) Stop() {
	if !c.healing {
		return
	}
	c.healing = false
	c.lock(false)
}

// Tick heals whole points as the fractional buffer fills
func (c *HealingController) Tick(dt float64) {
	if !c.healing || dt <= 0 {
		return
	}
	healCap := c.Cap()
	if float64(c.health.Current()) >= healCap {
		c.Stop()
		return
	}

	c.holdTime += dt
	c.rate = c.stats.HealRate + c.holdTime*c.cfg.Acceleration
	c.buffer += c.rate * dt

	if c.buffer >= 1 {
		whole := math.Floor(c.buffer)
		amount := int(whole)
		if float64(c.health.Current()+amount) > healCap {
			amount = int(math.Floor(healCap - float64(c.health.Current())))
		}
		if amount > 0 {
			c.health.Heal(amount)
		}
		c.buffer -= whole
	}
}

func (c *HealingController) lock(locked bool) {
	if c.locker != nil {
		c.locker.SetLocked(locked)
	}
	c.animator.SetBool("IsHealing", locked)
}
