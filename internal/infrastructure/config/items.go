package config

import (
	"fmt"

	"github.com/younwookim/actorsim/internal/domain/entity"
)

// ItemsConfig is the root config for items.json
type ItemsConfig struct {
	Items []ItemConfig `json:"items"`
}

// ItemConfig is one row of the item table
type ItemConfig struct {
	ID               int     `json:"id"`
	ItemName         string  `json:"itemName"`
	SpriteSheetPath  string  `json:"spriteSheetPath"`
	SpriteName       string  `json:"spriteName"`
	HealthToRestore  int     `json:"healthToRestore"`
	AbilityGranted   string  `json:"abilityGranted"`
	IsAbilityBooster bool    `json:"isAbilityBooster"`
	BoostMultiplier  float64 `json:"boostMultiplier"`
	BoostDuration    float64 `json:"boostDuration"`
	Change           string  `json:"change"`
}

// Blueprint converts a row into a domain blueprint
func (c ItemConfig) Blueprint() (entity.ItemBlueprint, error) {
	bp := entity.ItemBlueprint{
		ID:             c.ID,
		Name:           c.ItemName,
		SpriteSheet:    c.SpriteSheetPath,
		SpriteName:     c.SpriteName,
		HealAmount:     c.HealthToRestore,
		AbilityGranted: c.AbilityGranted,
	}
	if !c.IsAbilityBooster {
		return bp, nil
	}

	kind, err := entity.ParseStatusKind(c.Change)
	if err != nil {
		return entity.ItemBlueprint{}, fmt.Errorf("item %d: %w", c.ID, err)
	}
	bp.Effect = &entity.StatusEffect{
		Kind:       kind,
		Multiplier: c.BoostMultiplier,
		Duration:   c.BoostDuration,
	}
	return bp, nil
}

// Blueprints converts every row, rejecting duplicate ids
func (c *ItemsConfig) Blueprints() (map[int]entity.ItemBlueprint, error) {
	out := make(map[int]entity.ItemBlueprint, len(c.Items))
	for _, row := range c.Items {
		if _, dup := out[row.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateItem, row.ID)
		}
		bp, err := row.Blueprint()
		if err != nil {
			return nil, err
		}
		out[row.ID] = bp
	}
	return out, nil
}
