package config

// StageConfig is the root config for stage JSON files.
// Layers.Collision rows are listed top to bottom, one character per tile.
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Scene       int                          `json:"scene"`
	Size        StageSizeConfig              `json:"size"`
	PlayerSpawn Vec                          `json:"playerSpawn"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
	Enemies     []EnemySpawnConfig           `json:"enemies"`
	Items       []ItemSpawnConfig            `json:"items"`
}

type StageSizeConfig struct {
	Columns  int     `json:"columns"`
	TileSize float64 `json:"tileSize"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

// TileMappingConfig maps a grid character to a tile.
// Type is one of ground, wall, damage, hazard, checkpoint, errorCheckpoint.
type TileMappingConfig struct {
	Type     string   `json:"type"`
	Solid    bool     `json:"solid"`
	Layers   []string `json:"layers,omitempty"`
	Damage   int      `json:"damage,omitempty"`
	Interval float64  `json:"interval,omitempty"`
}

type EnemySpawnConfig struct {
	Type        string  `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	FacingRight bool    `json:"facingRight"`
}

type ItemSpawnConfig struct {
	ItemID int     `json:"itemId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}
