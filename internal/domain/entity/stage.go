package entity

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileGround
	TileWall
	TileDamage
	TileHazard
	TileCheckpoint
	TileErrorCheckpoint
)

// Tile represents a single tile in the stage
type Tile struct {
	Type     TileType
	Solid    bool
	Layers   []string
	Damage   int
	Interval float64
}

// Solid is a static collider tagged with the sensor layers it belongs to
type Solid struct {
	Rect   Rect
	Layers []string
}

// InLayer reports whether the solid belongs to layer
func (s Solid) InLayer(layer string) bool {
	for _, l := range s.Layers {
		if l == layer {
			return true
		}
	}
	return false
}

// ZoneKind classifies non-solid trigger areas
type ZoneKind int

const (
	ZoneCheckpoint ZoneKind = iota
	ZoneErrorCheckpoint
	ZoneDamage
	ZoneHazard
)

// String returns the zone kind name
func (k ZoneKind) String() string {
	switch k {
	case ZoneCheckpoint:
		return "checkpoint"
	case ZoneErrorCheckpoint:
		return "errorCheckpoint"
	case ZoneDamage:
		return "damage"
	case ZoneHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// Zone is a trigger area. Damage and Interval only apply to damage/hazard zones.
type Zone struct {
	ID       EntityID
	Kind     ZoneKind
	Rect     Rect
	Damage   int
	Interval float64
}

// EnemySpawn places an enemy archetype
type EnemySpawn struct {
	Type        string
	Position    Vec2
	FacingRight bool
}

// ItemSpawn places a collectible world item
type ItemSpawn struct {
	ID       EntityID
	ItemID   int
	Position Vec2
	Size     Vec2
}

// Stage is the static level: colliders, triggers and spawns, in world units
type Stage struct {
	Name     string
	Scene    int
	Width    float64
	Height   float64
	TileSize float64
	Spawn    Vec2
	Solids   []Solid
	Zones    []Zone
	Enemies  []EnemySpawn
	Items    []ItemSpawn
}

// SolidsIn returns the solids tagged with layer. An empty layer matches all.
func (s *Stage) SolidsIn(layer string) []Solid {
	if layer == "" {
		return s.Solids
	}
	var out []Solid
	for _, sol := range s.Solids {
		if sol.InLayer(layer) {
			out = append(out, sol)
		}
	}
	return out
}

// OverlapCircle reports whether any solid in layer touches the circle
func (s *Stage) OverlapCircle(center Vec2, radius float64, layer string) bool {
	for _, sol := range s.Solids {
		if (layer == "" || sol.InLayer(layer)) && sol.Rect.IntersectsCircle(center, radius) {
			return true
		}
	}
	return false
}

// Raycast reports whether the segment hits any solid in layer
func (s *Stage) Raycast(origin, dir Vec2, distance float64, layer string) bool {
	for _, sol := range s.Solids {
		if (layer == "" || sol.InLayer(layer)) && sol.Rect.IntersectsSegment(origin, dir, distance) {
			return true
		}
	}
	return false
}

// OverlapsSolid reports whether r intersects any solid regardless of layer
func (s *Stage) OverlapsSolid(r Rect) bool {
	for _, sol := range s.Solids {
		if sol.Rect.Overlaps(r) {
			return true
		}
	}
	return false
}
