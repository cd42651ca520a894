package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

func TestLoadStage(t *testing.T) {
	t.Run("merges runs and flips rows", func(t *testing.T) {
		cfg := &config.StageConfig{
			Name:        "test",
			Scene:       2,
			Size:        config.StageSizeConfig{Columns: 4, TileSize: 1},
			PlayerSpawn: config.Vec{X: 0.5, Y: 1.7},
			Layers: config.LayersConfig{
				Collision: []string{
					"....",
					"..C.",
					"##^^",
				},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "ground", Solid: true, Layers: []string{"ground", "wall"}},
				"^": {Type: "hazard", Damage: 20},
				"C": {Type: "checkpoint"},
			},
		}

		stage := LoadStage(cfg)

		assert.Equal(t, "test", stage.Name)
		assert.Equal(t, 2, stage.Scene)
		assert.Equal(t, 4.0, stage.Width)
		assert.Equal(t, 3.0, stage.Height)
		assert.Equal(t, entity.Vec2{X: 0.5, Y: 1.7}, stage.Spawn)

		require.Len(t, stage.Solids, 1)
		assert.Equal(t, entity.Vec2{X: 0, Y: 0}, stage.Solids[0].Rect.Min())
		assert.Equal(t, entity.Vec2{X: 2, Y: 1}, stage.Solids[0].Rect.Max())
		assert.Equal(t, []string{"ground", "wall"}, stage.Solids[0].Layers)

		require.Len(t, stage.Zones, 2)
		cp := stage.Zones[0]
		assert.Equal(t, entity.ZoneCheckpoint, cp.Kind)
		assert.Equal(t, entity.EntityID(1), cp.ID)
		assert.Equal(t, entity.Vec2{X: 2, Y: 1}, cp.Rect.Min())
		assert.Equal(t, entity.Vec2{X: 3, Y: 2}, cp.Rect.Max())

		hazard := stage.Zones[1]
		assert.Equal(t, entity.ZoneHazard, hazard.Kind)
		assert.Equal(t, entity.EntityID(2), hazard.ID)
		assert.Equal(t, 20, hazard.Damage)
		assert.Equal(t, entity.Vec2{X: 2, Y: 0}, hazard.Rect.Min())
		assert.Equal(t, entity.Vec2{X: 4, Y: 1}, hazard.Rect.Max())
	})

	t.Run("ignores columns past the stage width", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{Columns: 2, TileSize: 2},
			Layers: config.LayersConfig{
				Collision: []string{"####"},
			},
			TileMapping: map[string]config.TileMappingConfig{
				"#": {Type: "wall", Solid: true},
			},
		}

		stage := LoadStage(cfg)
		require.Len(t, stage.Solids, 1)
		assert.Equal(t, entity.Vec2{X: 4, Y: 2}, stage.Solids[0].Rect.Max())
	})

	t.Run("spawns", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{Columns: 1, TileSize: 1},
			Enemies: []config.EnemySpawnConfig{
				{Type: "beetle", X: 3, Y: 1.4, FacingRight: true},
			},
			Items: []config.ItemSpawnConfig{
				{ItemID: 4, X: 2, Y: 5},
				{ItemID: 1, X: 6, Y: 5},
			},
		}

		stage := LoadStage(cfg)
		require.Len(t, stage.Enemies, 1)
		assert.Equal(t, entity.EnemySpawn{Type: "beetle", Position: entity.Vec2{X: 3, Y: 1.4}, FacingRight: true}, stage.Enemies[0])

		require.Len(t, stage.Items, 2)
		assert.Equal(t, entity.EntityID(2), stage.Items[1].ID)
		assert.Equal(t, 1, stage.Items[1].ItemID)
		assert.Equal(t, entity.Vec2{X: 0.5, Y: 0.5}, stage.Items[0].Size)
	})
}

func TestLoadStage_Demo(t *testing.T) {
	loader := config.NewLoader("../../../cmd/game/configs")
	cfg, err := loader.LoadStage("demo")
	require.NoError(t, err)

	stage := LoadStage(cfg)
	assert.Equal(t, 40.0, stage.Width)
	assert.Equal(t, 14.0, stage.Height)
	assert.Len(t, stage.Enemies, 2)
	assert.Len(t, stage.Items, 2)

	kinds := map[entity.ZoneKind]int{}
	for _, z := range stage.Zones {
		kinds[z.Kind]++
	}
	assert.Equal(t, 1, kinds[entity.ZoneCheckpoint])
	assert.Equal(t, 1, kinds[entity.ZoneErrorCheckpoint])
	assert.Equal(t, 1, kinds[entity.ZoneHazard])
	assert.Equal(t, 1, kinds[entity.ZoneDamage])

	// the spawn point stands on the floor
	ps := NewPhysicsSystem(&config.SimulationConfig{Gravity: -30}, stage)
	body := ps.AddBody(1, stage.Spawn, playerSize, 1)
	for i := 0; i < 50; i++ {
		ps.Step(testDT)
	}
	assert.InDelta(t, 2.7, body.Position().Y, 1e-9)
	assert.InDelta(t, 2.5, body.Position().X, 1e-9)
}
