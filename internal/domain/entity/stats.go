package entity

// Stats holds the tunable numbers controllers read every tick.
// Status effects rewrite these in place.
type Stats struct {
	MoveForce          float64
	JumpForce          float64
	SlowFallMultiplier float64
	AttackDamage       int
	PogoForce          float64
	MaxHealth          int
	KnockbackForce     float64
	HealRate           float64
}

// Abilities toggles optional movement features
type Abilities struct {
	Jump       bool
	DoubleJump bool
	WallJump   bool
	WallCling  bool
	Glide      bool
}

// AllAbilities returns every ability enabled
func AllAbilities() Abilities {
	return Abilities{Jump: true, DoubleJump: true, WallJump: true, WallCling: true, Glide: true}
}

// Health is a current/max pair
type Health struct {
	Current int
	Max     int
}

// Percent returns Current/Max in [0,1], or 0 when Max is not positive
func (h Health) Percent() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
