package entity

// ItemBlueprint is one row of the item table
type ItemBlueprint struct {
	ID             int
	Name           string
	SpriteSheet    string
	SpriteName     string
	HealAmount     int
	AbilityGranted string

	// Effect is nil for items that only heal
	Effect *StatusEffect
}

// IsBooster reports whether using the item applies a status effect
func (b ItemBlueprint) IsBooster() bool {
	return b.Effect != nil
}
