package system

import (
	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity.
// Grid rows run top to bottom; runs of the same character in a row merge
// into one collider or zone.
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	ts := cfg.Size.TileSize
	rows := len(cfg.Layers.Collision)

	stage := &entity.Stage{
		Name:     cfg.Name,
		Scene:    cfg.Scene,
		Width:    float64(cfg.Size.Columns) * ts,
		Height:   float64(rows) * ts,
		TileSize: ts,
		Spawn:    cfg.PlayerSpawn.ToVec2(),
	}

	var zoneID entity.EntityID
	for r, row := range cfg.Layers.Collision {
		y0 := float64(rows-1-r) * ts
		cells := []rune(row)
		if len(cells) > cfg.Size.Columns {
			cells = cells[:cfg.Size.Columns]
		}

		for x := 0; x < len(cells); {
			ch := cells[x]
			end := x + 1
			for end < len(cells) && cells[end] == ch {
				end++
			}
			mapping, ok := cfg.TileMapping[string(ch)]
			if ok {
				tile := toTile(mapping)
				rect := entity.RectFromMinMax(
					entity.Vec2{X: float64(x) * ts, Y: y0},
					entity.Vec2{X: float64(end) * ts, Y: y0 + ts},
				)
				if tile.Solid {
					stage.Solids = append(stage.Solids, entity.Solid{Rect: rect, Layers: tile.Layers})
				}
				if kind, isZone := zoneKind(tile.Type); isZone {
					zoneID++
					stage.Zones = append(stage.Zones, entity.Zone{
						ID:       zoneID,
						Kind:     kind,
						Rect:     rect,
						Damage:   tile.Damage,
						Interval: tile.Interval,
					})
				}
			}
			x = end
		}
	}

	for _, e := range cfg.Enemies {
		stage.Enemies = append(stage.Enemies, entity.EnemySpawn{
			Type:        e.Type,
			Position:    entity.Vec2{X: e.X, Y: e.Y},
			FacingRight: e.FacingRight,
		})
	}
	for i, it := range cfg.Items {
		stage.Items = append(stage.Items, entity.ItemSpawn{
			ID:       entity.EntityID(i + 1),
			ItemID:   it.ItemID,
			Position: entity.Vec2{X: it.X, Y: it.Y},
			Size:     entity.Vec2{X: ts / 2, Y: ts / 2},
		})
	}
	return stage
}

func toTile(m config.TileMappingConfig) entity.Tile {
	var tileType entity.TileType
	switch m.Type {
	case "ground":
		tileType = entity.TileGround
	case "wall":
		tileType = entity.TileWall
	case "damage":
		tileType = entity.TileDamage
	case "hazard":
		tileType = entity.TileHazard
	case "checkpoint":
		tileType = entity.TileCheckpoint
	case "errorCheckpoint":
		tileType = entity.TileErrorCheckpoint
	default:
		tileType = entity.TileEmpty
	}
	return entity.Tile{
		Type:     tileType,
		Solid:    m.Solid,
		Layers:   m.Layers,
		Damage:   m.Damage,
		Interval: m.Interval,
	}
}

func zoneKind(t entity.TileType) (entity.ZoneKind, bool) {
	switch t {
	case entity.TileDamage:
		return entity.ZoneDamage, true
	case entity.TileHazard:
		return entity.ZoneHazard, true
	case entity.TileCheckpoint:
		return entity.ZoneCheckpoint, true
	case entity.TileErrorCheckpoint:
		return entity.ZoneErrorCheckpoint, true
	default:
		return 0, false
	}
}
