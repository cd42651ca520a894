package config

import "github.com/younwookim/actorsim/internal/domain/entity"

// TuningConfig is the root config for tuning.json
type TuningConfig struct {
	Simulation    SimulationConfig       `json:"simulation"`
	Player        PlayerConfig           `json:"player"`
	Enemies       map[string]EnemyConfig `json:"enemies"`
	ContactDamage ContactDamageConfig    `json:"contactDamage"`
}

type SimulationConfig struct {
	FixedStep         float64       `json:"fixedStep"`         // seconds per fixed tick
	MaxStepsPerUpdate int           `json:"maxStepsPerUpdate"` // accumulator catch-up bound
	Gravity           float64       `json:"gravity"`           // units/s^2, negative is down
	Display           DisplayConfig `json:"display"`
}

type DisplayConfig struct {
	ScreenWidth   int     `json:"screenWidth"`
	ScreenHeight  int     `json:"screenHeight"`
	PixelsPerUnit float64 `json:"pixelsPerUnit"`
	Framerate     int     `json:"framerate"`
}

// Vec is a JSON 2D vector
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ToVec2 converts to the domain vector
func (v Vec) ToVec2() entity.Vec2 {
	return entity.Vec2{X: v.X, Y: v.Y}
}

// Size is a JSON width/height pair
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToVec2 converts to the domain vector
func (s Size) ToVec2() entity.Vec2 {
	return entity.Vec2{X: s.Width, Y: s.Height}
}

type PlayerConfig struct {
	Mass      float64         `json:"mass"`
	Size      Size            `json:"size"`
	Stats     StatsConfig     `json:"stats"`
	Abilities AbilitiesConfig `json:"abilities"`
	Movement  MovementConfig  `json:"movement"`
	Combat    CombatConfig    `json:"combat"`
	Health    HealthConfig    `json:"health"`
	Healing   HealingConfig   `json:"healing"`
}

type StatsConfig struct {
	MoveForce          float64 `json:"moveForce"`
	JumpForce          float64 `json:"jumpForce"`
	SlowFallMultiplier float64 `json:"slowFallMultiplier"`
	AttackDamage       int     `json:"attackDamage"`
	PogoForce          float64 `json:"pogoForce"`
	MaxHealth          int     `json:"maxHealth"`
	KnockbackForce     float64 `json:"knockbackForce"`
	HealRate           float64 `json:"healRate"`
}

// ToStats converts to the domain stats
func (s StatsConfig) ToStats() entity.Stats {
	return entity.Stats{
		MoveForce:          s.MoveForce,
		JumpForce:          s.JumpForce,
		SlowFallMultiplier: s.SlowFallMultiplier,
		AttackDamage:       s.AttackDamage,
		PogoForce:          s.PogoForce,
		MaxHealth:          s.MaxHealth,
		KnockbackForce:     s.KnockbackForce,
		HealRate:           s.HealRate,
	}
}

// AbilitiesConfig are the abilities a new game starts with
type AbilitiesConfig struct {
	DoubleJump bool `json:"doubleJump"`
	SlowFall   bool `json:"slowFall"`
	WallClimb  bool `json:"wallClimb"`
}

// ToUnlocked converts to the persisted ability flags
func (a AbilitiesConfig) ToUnlocked() entity.UnlockedAbilities {
	return entity.UnlockedAbilities{DoubleJump: a.DoubleJump, SlowFall: a.SlowFall, WallClimb: a.WallClimb}
}

type MovementConfig struct {
	MaxSpeed               float64      `json:"maxSpeed"`
	Damping                float64      `json:"damping"` // horizontal linear damping, 1/s
	CoyoteTime             float64      `json:"coyoteTime"`
	JumpBuffer             float64      `json:"jumpBuffer"`
	VariableJumpMultiplier float64      `json:"variableJumpMultiplier"`
	WallJumpHorizontal     float64      `json:"wallJumpHorizontal"`
	WallJumpVertical       float64      `json:"wallJumpVertical"`
	WallSlideSpeed         float64      `json:"wallSlideSpeed"`
	GroundCheck            SensorConfig `json:"groundCheck"`
	WallCheck              SensorConfig `json:"wallCheck"`
}

// SensorConfig is an overlap circle (Radius) or a ray (Distance) anchored at
// Offset from the body center
type SensorConfig struct {
	Offset   Vec     `json:"offset"`
	Radius   float64 `json:"radius,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Layer    string  `json:"layer"`
}

type CombatConfig struct {
	AttackDuration float64 `json:"attackDuration"`
	HitboxSize     Size    `json:"hitboxSize"`
	HitboxOffset   float64 `json:"hitboxOffset"`
	AimThreshold   float64 `json:"aimThreshold"` // squared magnitude
}

type HealthConfig struct {
	KnockUpForce        float64 `json:"knockUpForce"`
	InvulnerabilityTime float64 `json:"invulnerabilityTime"`
	FlashInterval       float64 `json:"flashInterval"`
	HazardDelay         float64 `json:"hazardDelay"`
}

type HealingConfig struct {
	CapFraction  float64 `json:"capFraction"`
	Acceleration float64 `json:"acceleration"`
}

type ContactDamageConfig struct {
	Damage   int     `json:"damage"`
	Interval float64 `json:"interval"`
}
