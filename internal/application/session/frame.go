package session

import "github.com/younwookim/actorsim/internal/domain/entity"

// Point is a JSON world position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPoint(v entity.Vec2) Point {
	return Point{X: v.X, Y: v.Y}
}

// Box is a JSON rect given by center and size
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func toBox(r entity.Rect) Box {
	return Box{X: r.Center.X, Y: r.Center.Y, W: r.Size.X, H: r.Size.Y}
}

// Statistics are the play counters written into the save
type Statistics struct {
	PlayTime        float64 `json:"playTime"`
	EnemiesDefeated int     `json:"enemiesDefeated"`
	HitsTaken       int     `json:"hitsTaken"`
	Deaths          int     `json:"deaths"`
	CollectedItems  int     `json:"collectedItems"`
}

// Frame is the observable state after a tick
type Frame struct {
	Tick    uint64       `json:"tick"`
	Paused  bool         `json:"paused"`
	Player  PlayerFrame  `json:"player"`
	Enemies []EnemyFrame `json:"enemies"`
	Items   []ItemFrame  `json:"items"`
	Stats   Statistics   `json:"stats"`
}

type PlayerFrame struct {
	Position     Point   `json:"position"`
	Velocity     Point   `json:"velocity"`
	Size         Point   `json:"size"`
	Facing       float64 `json:"facing"`
	Health       int     `json:"health"`
	MaxHealth    int     `json:"maxHealth"`
	Grounded     bool    `json:"grounded"`
	WallClinging bool    `json:"wallClinging"`
	Gliding      bool    `json:"gliding"`
	Attacking    bool    `json:"attacking"`
	AttackDir    string  `json:"attackDir,omitempty"`
	Hitbox       *Box    `json:"hitbox,omitempty"`
	Invulnerable bool    `json:"invulnerable"`
	Tinted       bool    `json:"tinted"`
	Healing      bool    `json:"healing"`
	Effect       string  `json:"effect,omitempty"`
	EffectLeft   float64 `json:"effectLeft,omitempty"`
	Inventory    []int   `json:"inventory"`
}

type EnemyFrame struct {
	ID        uint32 `json:"id"`
	Type      string `json:"type"`
	Position  Point  `json:"position"`
	Size      Point  `json:"size"`
	Health    int    `json:"health"`
	MaxHealth int    `json:"maxHealth"`
	Mode      string `json:"mode"`
	Phase     string `json:"phase"`
	Tinted    bool   `json:"tinted"`
}

type ItemFrame struct {
	ID       uint32 `json:"id"`
	ItemID   int    `json:"itemId"`
	Position Point  `json:"position"`
}

// Snapshot captures the current state. Defeated enemies and collected items
// are left out.
func (s *Session) Snapshot() Frame {
	f := Frame{
		Tick:    s.ticks,
		Paused:  s.clock.Paused(),
		Stats:   s.stats,
		Enemies: []EnemyFrame{},
		Items:   []ItemFrame{},
	}
	if p := s.player; p != nil {
		f.Player = PlayerFrame{
			Position:     toPoint(p.Body.Position()),
			Velocity:     toPoint(p.Body.Velocity()),
			Size:         toPoint(p.Size),
			Facing:       p.Facing(),
			Health:       p.Health.Current(),
			MaxHealth:    p.Health.Max(),
			Invulnerable: p.Health.Invulnerable(),
			Tinted:       p.Health.Tinted(),
			Inventory:    p.Inventory.IDs(),
		}
		if p.Movement != nil {
			st := p.Movement.State()
			f.Player.Grounded = st.Grounded
			f.Player.WallClinging = st.WallClinging
			f.Player.Gliding = st.Gliding
		}
		if p.Combat != nil && p.Combat.Attacking() {
			f.Player.Attacking = true
			f.Player.AttackDir = p.Combat.Direction().String()
			if r, ok := p.Combat.Hitbox(); ok {
				b := toBox(r)
				f.Player.Hitbox = &b
			}
		}
		if p.Healing != nil {
			f.Player.Healing = p.Healing.Healing()
		}
		if e, ok := p.Effects.Active(); ok {
			f.Player.Effect = e.Kind.String()
			f.Player.EffectLeft = p.Effects.Remaining()
		}
	}

	for _, e := range s.enemies {
		if e.defeated {
			continue
		}
		f.Enemies = append(f.Enemies, EnemyFrame{
			ID:        uint32(e.ID),
			Type:      e.Type,
			Position:  toPoint(e.Body.Position()),
			Size:      toPoint(e.Size),
			Health:    e.Health.Current(),
			MaxHealth: e.Health.Max(),
			Mode:      e.AI.Mode().String(),
			Phase:     e.Lunge.Phase().String(),
			Tinted:    e.Health.Tinted(),
		})
	}
	for _, it := range s.items {
		if it.collected {
			continue
		}
		f.Items = append(f.Items, ItemFrame{
			ID:       uint32(it.spawn.ID),
			ItemID:   it.spawn.ItemID,
			Position: toPoint(it.spawn.Position),
		})
	}
	return f
}
