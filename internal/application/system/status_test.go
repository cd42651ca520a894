package system

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/actorsim/internal/domain/entity"
)

func TestStatusEffect_AppliesOneStat(t *testing.T) {
	tests := []struct {
		kind  entity.StatusKind
		check func(t *testing.T, s entity.Stats)
	}{
		{entity.StatusSpeedBoost, func(t *testing.T, s entity.Stats) { assert.InDelta(t, 120, s.MoveForce, 1e-9) }},
		{entity.StatusJumpBoost, func(t *testing.T, s entity.Stats) { assert.InDelta(t, 26, s.JumpForce, 1e-9) }},
		{entity.StatusDamageUp, func(t *testing.T, s entity.Stats) { assert.Equal(t, 2, s.AttackDamage) }},
		{entity.StatusHealthIncrease, func(t *testing.T, s entity.Stats) { assert.Equal(t, 200, s.MaxHealth) }},
		{entity.StatusFeatherFall, func(t *testing.T, s entity.Stats) { assert.InDelta(t, 16, s.SlowFallMultiplier, 1e-9) }},
		{entity.StatusKnockbackResist, func(t *testing.T, s entity.Stats) { assert.InDelta(t, 16, s.KnockbackForce, 1e-9) }},
		{entity.StatusPogoPower, func(t *testing.T, s entity.Stats) { assert.InDelta(t, 22, s.PogoForce, 1e-9) }},
		{entity.StatusHealingSpeed, func(t *testing.T, s entity.Stats) { assert.InDelta(t, 20, s.HealRate, 1e-9) }},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			stats := createTestStats()
			c := NewStatusEffectController(&stats, nil)
			c.Apply(entity.StatusEffect{Kind: tt.kind, Multiplier: 2, Duration: 1})
			tt.check(t, stats)

			changed := 0
			base := c.Baseline()
			if stats.MoveForce != base.MoveForce {
				changed++
			}
			if stats.JumpForce != base.JumpForce {
				changed++
			}
			if stats.AttackDamage != base.AttackDamage {
				changed++
			}
			if stats.MaxHealth != base.MaxHealth {
				changed++
			}
			if stats.SlowFallMultiplier != base.SlowFallMultiplier {
				changed++
			}
			if stats.KnockbackForce != base.KnockbackForce {
				changed++
			}
			if stats.PogoForce != base.PogoForce {
				changed++
			}
			if stats.HealRate != base.HealRate {
				changed++
			}
			assert.Equal(t, 1, changed)
		})
	}
}

func TestStatusEffect_ExpiryRestoresBaseline(t *testing.T) {
	stats := createTestStats()
	baseline := stats
	c := NewStatusEffectController(&stats, nil)

	var expired []entity.StatusEffect
	c.Expired.Subscribe(func(e entity.StatusEffect) { expired = append(expired, e) })

	effect := entity.StatusEffect{Kind: entity.StatusSpeedBoost, Multiplier: 1.5, Duration: 0.5}
	c.Apply(effect)
	active, ok := c.Active()
	require.True(t, ok)
	assert.Equal(t, effect, active)

	ticks(20, c.Tick)
	assert.NotEqual(t, baseline, stats)

	ticks(6, c.Tick)
	assert.Equal(t, baseline, stats)
	_, ok = c.Active()
	assert.False(t, ok)
	assert.Equal(t, []entity.StatusEffect{effect}, expired)
}

func TestStatusEffect_NoCompounding(t *testing.T) {
	stats := createTestStats()
	c := NewStatusEffectController(&stats, nil)

	boost := entity.StatusEffect{Kind: entity.StatusJumpBoost, Multiplier: 1.5, Duration: 5}
	c.Apply(boost)
	c.Apply(boost)
	c.Apply(boost)
	assert.InDelta(t, 13*1.5, stats.JumpForce, 1e-9)

	ticks(10, c.Tick)
	c.Apply(boost)
	assert.InDelta(t, 5, c.Remaining(), 1e-9, "reapplying restarts the duration")
}

func TestStatusEffect_NewEffectReplacesOld(t *testing.T) {
	stats := createTestStats()
	c := NewStatusEffectController(&stats, nil)

	c.Apply(entity.StatusEffect{Kind: entity.StatusSpeedBoost, Multiplier: 2, Duration: 5})
	c.Apply(entity.StatusEffect{Kind: entity.StatusDamageUp, Multiplier: 3, Duration: 5})

	assert.InDelta(t, 60, stats.MoveForce, 1e-9)
	assert.Equal(t, 3, stats.AttackDamage)
}

func TestStatusEffect_ZeroDurationExpiresNextTick(t *testing.T) {
	stats := createTestStats()
	c := NewStatusEffectController(&stats, nil)

	c.Apply(entity.StatusEffect{Kind: entity.StatusPogoPower, Multiplier: 2, Duration: 0})
	assert.InDelta(t, 22, stats.PogoForce, 1e-9)

	c.Tick(testDT)
	assert.InDelta(t, 11, stats.PogoForce, 1e-9)
}

func TestStatusEffect_RevertAndLogging(t *testing.T) {
	var buf bytes.Buffer
	stats := createTestStats()
	c := NewStatusEffectController(&stats, log.New(&buf, "", 0))

	c.Revert()
	assert.Empty(t, buf.String())

	c.Apply(entity.StatusEffect{Kind: entity.StatusHealingSpeed, Multiplier: 2, Duration: 3})
	c.Revert()

	assert.InDelta(t, 10, stats.HealRate, 1e-9)
	assert.Contains(t, buf.String(), "HealingSpeed")
	assert.Contains(t, buf.String(), "ended")
}
