package system

import (
	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

const testDT = 0.02

// recordingBody is a KinematicBody that remembers every impulse
type recordingBody struct {
	*entity.KinematicBody
	impulses []entity.Vec2
}

func newRecordingBody(x, y, mass float64) *recordingBody {
	return &recordingBody{KinematicBody: entity.NewKinematicBody(entity.Vec2{X: x, Y: y}, mass)}
}

func (b *recordingBody) ApplyImpulse(impulse entity.Vec2) {
	b.impulses = append(b.impulses, impulse)
	b.KinematicBody.ApplyImpulse(impulse)
}

func (b *recordingBody) lastImpulse() entity.Vec2 {
	if len(b.impulses) == 0 {
		return entity.Vec2{}
	}
	return b.impulses[len(b.impulses)-1]
}

// fakeEnv answers sensors from fixed flags
type fakeEnv struct {
	ground bool
	wall   bool
}

func (e *fakeEnv) OverlapCircle(entity.Vec2, float64, string) bool { return e.ground }

func (e *fakeEnv) Raycast(entity.Vec2, entity.Vec2, float64, string) bool { return e.wall }

// recordingAnimator keeps the latest value of every parameter
type recordingAnimator struct {
	triggers []string
	bools    map[string]bool
	floats   map[string]float64
}

func newRecordingAnimator() *recordingAnimator {
	return &recordingAnimator{bools: map[string]bool{}, floats: map[string]float64{}}
}

func (a *recordingAnimator) SetTrigger(name string)          { a.triggers = append(a.triggers, name) }
func (a *recordingAnimator) SetBool(name string, v bool)     { a.bools[name] = v }
func (a *recordingAnimator) SetFloat(name string, v float64) { a.floats[name] = v }

type fixedFacer float64

func (f fixedFacer) Facing() float64 { return float64(f) }

type point entity.Vec2

func (p point) Position() entity.Vec2 { return entity.Vec2(p) }

// damageRecorder counts hits
type damageRecorder struct {
	hits    int
	total   int
	sources []entity.Vec2
}

func (d *damageRecorder) TakeDamage(amount int, source entity.Vec2) {
	d.hits++
	d.total += amount
	d.sources = append(d.sources, source)
}

// memoryStore is an in-package SaveStore
type memoryStore struct {
	snap  entity.SaveSnapshot
	saved bool
	saves int
	err   error
}

func (m *memoryStore) Load() (entity.SaveSnapshot, bool, error) { return m.snap, m.saved, nil }

func (m *memoryStore) Save(s entity.SaveSnapshot) error {
	if m.err != nil {
		return m.err
	}
	m.snap, m.saved = s, true
	m.saves++
	return nil
}

func (m *memoryStore) Reset() error {
	m.snap, m.saved = entity.SaveSnapshot{}, false
	return nil
}

func createTestStats() entity.Stats {
	return entity.Stats{
		MoveForce:          60,
		JumpForce:          13,
		SlowFallMultiplier: 8,
		AttackDamage:       1,
		PogoForce:          11,
		MaxHealth:          100,
		KnockbackForce:     8,
		HealRate:           10,
	}
}

func createTestMovementConfig() *config.MovementConfig {
	return &config.MovementConfig{
		MaxSpeed:               8,
		Damping:                6,
		CoyoteTime:             0.25,
		JumpBuffer:             0.2,
		VariableJumpMultiplier: 0.5,
		WallJumpHorizontal:     9,
		WallJumpVertical:       12,
		WallSlideSpeed:         3,
		GroundCheck:            config.SensorConfig{Offset: config.Vec{Y: -0.7}, Radius: 0.15, Layer: "ground"},
		WallCheck:              config.SensorConfig{Distance: 0.55, Layer: "wall"},
	}
}

func createTestHealthConfig() *config.HealthConfig {
	return &config.HealthConfig{
		KnockUpForce:        6,
		InvulnerabilityTime: 1.0,
		FlashInterval:       0.1,
		HazardDelay:         0.3,
	}
}

func createTestCombatConfig() *config.CombatConfig {
	return &config.CombatConfig{
		AttackDuration: 0.2,
		HitboxSize:     config.Size{Width: 1.2, Height: 1.0},
		HitboxOffset:   0.9,
		AimThreshold:   0.1,
	}
}

func createTestEnemyConfig() config.EnemyConfig {
	return config.EnemyConfig{
		Mass:           1,
		Size:           config.Size{Width: 1, Height: 0.8},
		MaxHealth:      3,
		ContactDamage:  10,
		KnockbackForce: 5,
		Health:         config.HealthConfig{KnockUpForce: 3, InvulnerabilityTime: 0.3},
		Movement: config.EnemyMoveConfig{
			Speed:         20,
			Damping:       5,
			JumpForce:     6,
			GroundCheck:   config.SensorConfig{Offset: config.Vec{Y: -0.4}, Radius: 0.1, Layer: "ground"},
			ObstacleCheck: config.SensorConfig{Offset: config.Vec{X: 0.5}, Distance: 0.3, Layer: "wall"},
		},
		AI: config.AIConfig{
			DetectionRange:  6,
			AttackRange:     2,
			PatrolDistance:  3,
			ChaseMultiplier: 1.5,
		},
		Lunge: config.LungeConfig{
			ChargeSpeed: 2,
			ChargeTime:  0.5,
			PauseTime:   0.2,
			LungeForce:  10,
			LungeTime:   0.3,
			RecoilForce: 4,
			Cooldown:    1,
		},
	}
}

// ticks runs fn n times
func ticks(n int, fn func(dt float64)) {
	for i := 0; i < n; i++ {
		fn(testDT)
	}
}
