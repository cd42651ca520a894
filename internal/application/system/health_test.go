package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/actorsim/internal/domain/entity"
)

type respawnCounter struct {
	body  entity.PhysicsBody
	point entity.Vec2
	count int
}

func (r *respawnCounter) Respawn() {
	r.count++
	r.body.SetPosition(r.point)
}

type errorPoint entity.Vec2

func (p errorPoint) ErrorRespawnPosition() entity.Vec2 { return entity.Vec2(p) }

func newTestHealth(t *testing.T, policy DeathPolicy) (*HealthController, *recordingBody, *entity.Stats) {
	t.Helper()
	stats := createTestStats()
	body := newRecordingBody(0, 0, 1)
	h, err := NewHealthController(createTestHealthConfig(), body, &stats, policy)
	require.NoError(t, err)
	return h, body, &stats
}

func TestNewHealthController_StartsFull(t *testing.T) {
	h, _, _ := newTestHealth(t, RespawnOnDeath)
	assert.Equal(t, 100, h.Current())
	assert.Equal(t, 1.0, h.Percent())

	stats := createTestStats()
	stats.MaxHealth = 0
	_, err := NewHealthController(createTestHealthConfig(), newRecordingBody(0, 0, 1), &stats, DieOnDeath)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestHealth_DamageWithKnockback(t *testing.T) {
	stats := createTestStats()
	stats.KnockbackForce = 100
	cfg := createTestHealthConfig()
	cfg.KnockUpForce = 50
	body := newRecordingBody(0, 0, 1)
	body.Vel = entity.Vec2{X: -3, Y: 7}
	h, err := NewHealthController(cfg, body, &stats, RespawnOnDeath)
	require.NoError(t, err)

	var percents []float64
	h.PercentChanged.Subscribe(func(p float64) { percents = append(percents, p) })

	h.TakeDamage(30, entity.Vec2{X: -5})

	assert.Equal(t, 70, h.Current())
	require.Len(t, body.impulses, 1)
	assert.Equal(t, entity.Vec2{X: 100, Y: 50}, body.impulses[0])
	assert.Equal(t, entity.Vec2{X: 100, Y: 50}, body.Vel, "velocity is zeroed before knockback")
	assert.Equal(t, []float64{0.7}, percents)
	assert.True(t, h.Invulnerable())
}

func TestHealth_KnockbackDirection(t *testing.T) {
	tests := []struct {
		name    string
		sourceX float64
		expectX float64
	}{
		{"source on the left pushes right", -1, 8},
		{"source on the right pushes left", 1, -8},
		{"same x pushes left", 0, -8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, body, _ := newTestHealth(t, RespawnOnDeath)
			h.TakeDamage(10, entity.Vec2{X: tt.sourceX})
			require.Len(t, body.impulses, 1)
			assert.Equal(t, tt.expectX, body.impulses[0].X)
			assert.Equal(t, 6.0, body.impulses[0].Y)
		})
	}
}

func TestHealth_InvulnerabilityWindow(t *testing.T) {
	h, _, _ := newTestHealth(t, RespawnOnDeath)

	h.TakeDamage(10, entity.Vec2{})
	h.TakeDamage(10, entity.Vec2{})
	assert.Equal(t, 90, h.Current(), "second hit lands inside the window")

	ticks(25, h.Tick)
	assert.True(t, h.Invulnerable())

	ticks(26, h.Tick)
	assert.False(t, h.Invulnerable())
	assert.False(t, h.Tinted())

	h.TakeDamage(10, entity.Vec2{})
	assert.Equal(t, 80, h.Current())
}

func TestHealth_Flash(t *testing.T) {
	h, _, _ := newTestHealth(t, RespawnOnDeath)
	h.TakeDamage(10, entity.Vec2{})
	assert.True(t, h.Tinted())

	ticks(6, h.Tick)
	assert.False(t, h.Tinted(), "second flash interval is untinted")

	ticks(5, h.Tick)
	assert.True(t, h.Tinted())
}

func TestHealth_IgnoresNonPositive(t *testing.T) {
	h, body, _ := newTestHealth(t, RespawnOnDeath)
	h.TakeDamage(0, entity.Vec2{})
	h.TakeDamage(-5, entity.Vec2{})
	assert.Equal(t, 100, h.Current())
	assert.Empty(t, body.impulses)
	assert.False(t, h.Invulnerable())

	h.SetHealth(50)
	h.Heal(0)
	h.Heal(-10)
	assert.Equal(t, 50, h.Current())
}

func TestHealth_HealClampsAndNotifiesOnChange(t *testing.T) {
	h, _, _ := newTestHealth(t, RespawnOnDeath)
	var count int
	h.PercentChanged.Subscribe(func(float64) { count++ })

	h.Heal(10)
	assert.Zero(t, count, "already full")

	h.SetHealth(95)
	h.Heal(10)
	assert.Equal(t, 100, h.Current())
	assert.Equal(t, 2, count)

	h.SetHealth(-20)
	assert.Zero(t, h.Current())
}

func TestHealth_RespawnOnDeath(t *testing.T) {
	h, body, _ := newTestHealth(t, RespawnOnDeath)
	r := &respawnCounter{body: body, point: entity.Vec2{X: 4, Y: 2}}
	h.SetRespawner(r)
	body.Pos = entity.Vec2{X: 10}

	var diedAt []entity.Vec2
	h.Died.Subscribe(func(p entity.Vec2) { diedAt = append(diedAt, p) })

	h.TakeDamage(100, entity.Vec2{X: 11})

	assert.Equal(t, 1, r.count)
	assert.Equal(t, 100, h.Current())
	assert.Equal(t, entity.Vec2{X: 4, Y: 2}, body.Pos)
	assert.Equal(t, []entity.Vec2{{X: 10}}, diedAt)
	assert.Empty(t, body.impulses, "fatal hits skip knockback")
	assert.False(t, h.Dead())
	assert.False(t, h.Invulnerable())
}

func TestHealth_DieOnDeath(t *testing.T) {
	h, body, _ := newTestHealth(t, DieOnDeath)
	body.Vel = entity.Vec2{X: 3, Y: 3}
	var died int
	h.Died.Subscribe(func(entity.Vec2) { died++ })

	h.TakeDamage(150, entity.Vec2{})
	assert.True(t, h.Dead())
	assert.Zero(t, h.Current())
	assert.Equal(t, entity.Vec2{}, body.Vel)

	h.TakeDamage(10, entity.Vec2{})
	h.Heal(50)
	assert.Equal(t, 1, died)
	assert.Zero(t, h.Current())
}

func TestHealth_HazardDamage(t *testing.T) {
	h, body, _ := newTestHealth(t, RespawnOnDeath)
	h.SetErrorCheckpoint(errorPoint{X: 19.5, Y: 3})
	body.Pos = entity.Vec2{X: 23, Y: 1}
	body.Vel = entity.Vec2{Y: -9}

	h.TakeDamage(10, entity.Vec2{})
	require.True(t, h.Invulnerable())
	impulses := len(body.impulses)

	h.TakeHazardDamage(20)
	assert.True(t, h.HazardPending())
	assert.Equal(t, 90, h.Current(), "hazard damage waits for the delay")

	h.TakeHazardDamage(20)
	ticks(14, h.Tick)
	assert.True(t, h.HazardPending())

	ticks(2, h.Tick)
	assert.False(t, h.HazardPending())
	assert.Equal(t, 70, h.Current(), "hazards bypass invulnerability and stack once")
	assert.Equal(t, entity.Vec2{X: 19.5, Y: 3}, body.Pos)
	assert.Equal(t, entity.Vec2{}, body.Vel)
	assert.Len(t, body.impulses, impulses, "no knockback from hazards")
}

func TestHealth_HazardWithoutDelayIsImmediate(t *testing.T) {
	stats := createTestStats()
	cfg := createTestHealthConfig()
	cfg.HazardDelay = 0
	h, err := NewHealthController(cfg, newRecordingBody(0, 0, 1), &stats, RespawnOnDeath)
	require.NoError(t, err)

	h.TakeHazardDamage(25)
	assert.Equal(t, 75, h.Current())
	assert.False(t, h.HazardPending())
}

func TestHealth_TickClampsToShrunkMax(t *testing.T) {
	h, _, stats := newTestHealth(t, RespawnOnDeath)
	stats.MaxHealth = 60
	h.Tick(testDT)
	assert.Equal(t, 60, h.Current())
	assert.Equal(t, 1.0, h.Percent())
}

func TestHealth_Restore(t *testing.T) {
	h, _, _ := newTestHealth(t, DieOnDeath)
	h.TakeDamage(10, entity.Vec2{})
	h.TakeHazardDamage(5)

	h.Restore(40)
	assert.Equal(t, 40, h.Current())
	assert.False(t, h.Invulnerable())
	assert.False(t, h.HazardPending())
	assert.False(t, h.Dead())
}
