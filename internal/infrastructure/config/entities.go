package config

// EnemyConfig describes one enemy archetype in tuning.json
type EnemyConfig struct {
	Mass           float64         `json:"mass"`
	Size           Size            `json:"size"`
	MaxHealth      int             `json:"maxHealth"`
	ContactDamage  int             `json:"contactDamage"`
	KnockbackForce float64         `json:"knockbackForce"`
	Health         HealthConfig    `json:"health"`
	Movement       EnemyMoveConfig `json:"movement"`
	AI             AIConfig        `json:"ai"`
	Lunge          LungeConfig     `json:"lunge"`
}

type EnemyMoveConfig struct {
	Speed         float64      `json:"speed"`
	Damping       float64      `json:"damping"`
	JumpForce     float64      `json:"jumpForce"`
	GroundCheck   SensorConfig `json:"groundCheck"`
	ObstacleCheck SensorConfig `json:"obstacleCheck"`
}

type AIConfig struct {
	DetectionRange  float64 `json:"detectionRange"`
	AttackRange     float64 `json:"attackRange"`
	PatrolDistance  float64 `json:"patrolDistance"`
	ChaseMultiplier float64 `json:"chaseMultiplier"`
	// Script names a tengo policy under scripts/. Empty uses the built-in table.
	Script string `json:"script,omitempty"`
}

type LungeConfig struct {
	ChargeSpeed float64 `json:"chargeSpeed"`
	ChargeTime  float64 `json:"chargeTime"`
	PauseTime   float64 `json:"pauseTime"`
	LungeForce  float64 `json:"lungeForce"`
	LungeTime   float64 `json:"lungeTime"`
	RecoilForce float64 `json:"recoilForce"`
	Cooldown    float64 `json:"cooldown"`
}
