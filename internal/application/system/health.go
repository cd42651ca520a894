package system

import (
	"fmt"
	"math"

	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// DeathPolicy decides what reaching zero health means
type DeathPolicy int

const (
	// RespawnOnDeath sends the actor back to its checkpoint at full health
	RespawnOnDeath DeathPolicy = iota
	// DieOnDeath latches the actor dead
	DieOnDeath
)

// Respawner moves an actor back to its respawn point
type Respawner interface {
	Respawn()
}

// ErrorCheckpoint provides the hazard recovery point
type ErrorCheckpoint interface {
	ErrorRespawnPosition() entity.Vec2
}

// HealthController owns damage, healing, knockback and invulnerability
type HealthController struct {
	cfg    *config.HealthConfig
	body   entity.PhysicsBody
	stats  *entity.Stats
	policy DeathPolicy

	respawner       Respawner
	errorCheckpoint ErrorCheckpoint

	current      int
	invuln       entity.Countdown
	flashElapsed float64
	dead         bool

	hazardPending bool
	hazardAmount  int
	hazardTimer   entity.Countdown

	PercentChanged entity.Feed[float64]
	Damaged        entity.Feed[int]
	Died           entity.Feed[entity.Vec2]
}

// NewHealthController creates a health controller at full health
func NewHealthController(cfg *config.HealthConfig, body entity.PhysicsBody, stats *entity.Stats, policy DeathPolicy) (*HealthController, error) {
	if cfg == nil || body == nil || stats == nil {
		return nil, fmt.Errorf("%w: health needs config, body and stats", ErrInvalidConfig)
	}
	if stats.MaxHealth <= 0 {
		return nil, fmt.Errorf("%w: max health must be positive", ErrInvalidConfig)
	}
	return &HealthController{
		cfg:     cfg,
		body:    body,
		stats:   stats,
		policy:  policy,
		current: stats.MaxHealth,
	}, nil
}

// SetRespawner wires the respawn collaborator used by RespawnOnDeath
func (h *HealthController) SetRespawner(r Respawner) {
	h.respawner = r
}

// SetErrorCheckpoint wires the hazard recovery point
func (h *HealthController) SetErrorCheckpoint(e ErrorCheckpoint) {
	h.errorCheckpoint = e
}

// Current returns the current health
func (h *HealthController) Current() int {
	return h.current
}

// Max returns the live max health
func (h *HealthController) Max() int {
	return h.stats.MaxHealth
}

// Health returns current and max together
func (h *HealthController) Health() entity.Health {
	return entity.Health{Current: h.current, Max: h.stats.MaxHealth}
}

// Percent returns current/max
func (h *HealthController) Percent() float64 {
	return h.Health().Percent()
}

// Invulnerable reports whether damage is currently ignored
func (h *HealthController) Invulnerable() bool {
	return h.invuln.Active()
}

// Dead reports whether a DieOnDeath actor has died
func (h *HealthController) Dead() bool {
	return h.dead
}

// HazardPending reports whether hazard damage is waiting to be applied
func (h *HealthController) HazardPending() bool {
	return h.hazardPending
}

// Tinted reports the damage flash phase. The tint flips every FlashInterval
// and the last flip is clipped by the end of invulnerability.
func (h *HealthController) Tinted() bool {
	if !h.invuln.Active() {
		return false
	}
	if h.cfg.FlashInterval <= 0 {
		return true
	}
	return int(math.Floor(h.flashElapsed/h.cfg.FlashInterval))%2 == 0
}

// TakeDamage applies a hit from source. Ignored while invulnerable or dead.
func (h *HealthController) TakeDamage(amount int, source entity.Vec2) {
	if amount <= 0 || h.dead || h.invuln.Active() {
		return
	}

	fatal := h.current-amount <= 0
	if !fatal {
		h.knockback(source)
	}

	h.SetHealth(h.current - amount)
	h.Damaged.Emit(amount)

	if h.current <= 0 {
		h.die()
		return
	}
	h.startInvulnerability()
}

// TakeHazardDamage defers amount by HazardDelay, then teleports the actor to
// the error checkpoint and applies it without knockback
func (h *HealthController) TakeHazardDamage(amount int) {
	if amount <= 0 || h.dead || h.hazardPending {
		return
	}
	h.hazardPending = true
	h.hazardAmount = amount
	if h.cfg.HazardDelay <= 0 {
		h.resolveHazard()
		return
	}
	h.hazardTimer.Start(h.cfg.HazardDelay)
}

// Heal raises health, capped at max. Non-positive amounts are ignored.
func (h *HealthController) Heal(amount int) {
	if amount <= 0 || h.dead {
		return
	}
	h.SetHealth(h.current + amount)
}

// SetHealth clamps to [0,max] and notifies only when the value changes
func (h *HealthController) SetHealth(v int) {
	clamped := max(0, min(v, h.stats.MaxHealth))
	if clamped == h.current {
		return
	}
	h.current = clamped
	h.PercentChanged.Emit(h.Percent())
}

// Restore sets health after a load without treating it as damage
func (h *HealthController) Restore(v int) {
	h.dead = false
	h.hazardPending = false
	h.hazardTimer.Stop()
	h.invuln.Stop()
	h.SetHealth(v)
}

// Tick advances the hazard delay and invulnerability, and re-clamps to a
// max that shrank since the last tick
func (h *HealthController) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	if h.hazardPending && h.hazardTimer.Tick(dt) {
		h.resolveHazard()
	}
	if h.invuln.Active() {
		h.flashElapsed += dt
		h.invuln.Tick(dt)
	}
	if h.current > h.stats.MaxHealth {
		h.SetHealth(h.stats.MaxHealth)
	}
}

func (h *HealthController) knockback(source entity.Vec2) {
	dir := -1.0
	if h.body.Position().X-source.X > 0 {
		dir = 1
	}
	h.body.SetVelocity(entity.Vec2{})
	h.body.ApplyImpulse(entity.Vec2{X: dir * h.stats.KnockbackForce, Y: h.cfg.KnockUpForce})
}

func (h *HealthController) startInvulnerability() {
	if h.cfg.InvulnerabilityTime <= 0 {
		return
	}
	h.flashElapsed = 0
	h.invuln.Start(h.cfg.InvulnerabilityTime)
}

func (h *HealthController) resolveHazard() {
	h.hazardPending = false
	amount := h.hazardAmount
	h.hazardAmount = 0

	if h.errorCheckpoint != nil {
		h.body.SetPosition(h.errorCheckpoint.ErrorRespawnPosition())
	}
	h.body.SetVelocity(entity.Vec2{})

	h.SetHealth(h.current - amount)
	h.Damaged.Emit(amount)
	if h.current <= 0 {
		h.die()
		return
	}
	h.startInvulnerability()
}

func (h *HealthController) die() {
	at := h.body.Position()
	switch h.policy {
	case RespawnOnDeath:
		if h.respawner != nil {
			h.respawner.Respawn()
		}
		h.invuln.Stop()
		h.SetHealth(h.stats.MaxHealth)
		h.Died.Emit(at)
	case DieOnDeath:
		if h.dead {
			return
		}
		h.dead = true
		h.invuln.Stop()
		h.hazardPending = false
		h.body.SetVelocity(entity.Vec2{})
		h.Died.Emit(at)
	}
}
