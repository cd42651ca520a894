package entity

// UnlockedAbilities are the ability flags that persist across sessions
type UnlockedAbilities struct {
	DoubleJump bool `yaml:"double_jump"`
	SlowFall   bool `yaml:"slow_fall"`
	WallClimb  bool `yaml:"wall_climb"`
}

// Apply turns the persisted flags into runtime abilities.
// Jump is always available; wall climb covers both cling and wall jump.
func (u UnlockedAbilities) Apply() Abilities {
	return Abilities{
		Jump:       true,
		DoubleJump: u.DoubleJump,
		WallJump:   u.WallClimb,
		WallCling:  u.WallClimb,
		Glide:      u.SlowFall,
	}
}

// SaveSnapshot is the persisted player state written at checkpoints
type SaveSnapshot struct {
	CheckpointPosition Vec3              `yaml:"checkpoint_position"`
	MaxHealth          int               `yaml:"max_health"`
	CurrentHealth      *int              `yaml:"current_health,omitempty"`
	Abilities          UnlockedAbilities `yaml:"abilities"`
	Inventory          []int             `yaml:"inventory"`
	LastScene          int               `yaml:"last_scene"`

	CurrentLevel    int `yaml:"current_level"`
	CurrentSubLevel int `yaml:"current_sub_level"`

	PlayTime        float64 `yaml:"play_time"`
	EnemiesDefeated int     `yaml:"enemies_defeated"`
	HitsTaken       int     `yaml:"hits_taken"`
	Deaths          int     `yaml:"deaths"`
	CollectedItems  int     `yaml:"collected_items"`
}

// NewSaveSnapshot returns the new-game defaults
func NewSaveSnapshot() SaveSnapshot {
	return SaveSnapshot{
		MaxHealth:       100,
		Inventory:       []int{},
		CurrentLevel:    1,
		CurrentSubLevel: 1,
	}
}
