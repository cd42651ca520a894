package session

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/younwookim/actorsim/internal/application/system"
	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
	"github.com/younwookim/actorsim/internal/infrastructure/persistence"
)

var (
	// ErrInvalidDeps is returned by New when a required dependency is missing
	ErrInvalidDeps = errors.New("invalid session dependencies")
	// ErrNotStarted is returned by operations that need a running game
	ErrNotStarted = errors.New("session not started")
)

// Deps are the collaborators a Session is built from. World, Store, Catalog
// and Logger have defaults; Policies maps enemy types to a transition policy.
type Deps struct {
	Tuning   *config.TuningConfig
	Stage    *entity.Stage
	Catalog  *system.ItemCatalog
	World    system.World
	Store    system.SaveStore
	Policies map[string]system.TransitionPolicy
	Animator system.Animator
	Logger   *log.Logger
}

type zoneState struct {
	zone   entity.Zone
	gate   *system.ContactGate
	inside bool
}

type itemState struct {
	spawn     entity.ItemSpawn
	collected bool
}

// Session runs one stage at a fixed step: the player, its enemies and the
// stage triggers
type Session struct {
	tuning   *config.TuningConfig
	stage    *entity.Stage
	catalog  *system.ItemCatalog
	world    system.World
	store    system.SaveStore
	policies map[string]system.TransitionPolicy
	animator system.Animator
	logger   *log.Logger

	clock   *Clock
	input   system.InputFrame
	ticks   uint64
	started bool

	level    int
	subLevel int
	stats    Statistics

	player  *Player
	enemies []*Enemy
	zones   []*zoneState
	items   []*itemState

	Ticked        entity.Feed[uint64]
	InputConsumed entity.Feed[system.InputFrame]
}

// New wires a session. Call Start before Update.
func New(deps Deps) (*Session, error) {
	if deps.Tuning == nil || deps.Stage == nil {
		return nil, fmt.Errorf("%w: tuning and stage are required", ErrInvalidDeps)
	}
	if !playerConfigured(deps.Tuning) {
		return nil, fmt.Errorf("%w: player needs a mass and a size", ErrInvalidDeps)
	}
	if deps.Tuning.Simulation.FixedStep <= 0 {
		return nil, fmt.Errorf("%w: fixed step must be positive", ErrInvalidDeps)
	}

	s := &Session{
		tuning:   deps.Tuning,
		stage:    deps.Stage,
		catalog:  deps.Catalog,
		world:    deps.World,
		store:    deps.Store,
		policies: deps.Policies,
		animator: deps.Animator,
		logger:   deps.Logger,
		clock:    NewClock(deps.Tuning.Simulation.FixedStep, deps.Tuning.Simulation.MaxStepsPerUpdate),
	}
	if s.catalog == nil {
		s.catalog = system.NewItemCatalog(nil)
	}
	if s.world == nil {
		s.world = system.NewPhysicsSystem(&deps.Tuning.Simulation, deps.Stage)
	}
	if s.store == nil {
		s.store = persistence.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	return s, nil
}

// Start loads the save and spawns the stage. No save starts a new game.
func (s *Session) Start() error {
	snap, ok, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load save: %w", err)
	}
	if !ok {
		snap = entity.NewSaveSnapshot()
	}
	return s.begin(snap, ok)
}

// ResetSave deletes the save and restarts the stage as a new game
func (s *Session) ResetSave() error {
	if err := s.store.Reset(); err != nil {
		return err
	}
	return s.begin(entity.NewSaveSnapshot(), false)
}

func (s *Session) begin(snap entity.SaveSnapshot, resumed bool) error {
	s.despawn()

	s.level, s.subLevel = snap.CurrentLevel, snap.CurrentSubLevel
	s.stats = Statistics{}
	if resumed {
		s.stats = Statistics{
			PlayTime:        snap.PlayTime,
			EnemiesDefeated: snap.EnemiesDefeated,
			HitsTaken:       snap.HitsTaken,
			Deaths:          snap.Deaths,
			CollectedItems:  snap.CollectedItems,
		}
	}

	p, err := s.spawnPlayer(snap, resumed)
	if err != nil {
		s.world.RemoveBody(playerID)
		return err
	}
	s.player = p

	for i, spawn := range s.stage.Enemies {
		e, err := s.spawnEnemy(i, spawn, p)
		if err != nil {
			s.logger.Printf("enemy %d skipped: %v", i, err)
			continue
		}
		s.enemies = append(s.enemies, e)
	}

	for _, z := range s.stage.Zones {
		zs := &zoneState{zone: z}
		if z.Kind == entity.ZoneDamage {
			interval := z.Interval
			if interval <= 0 {
				interval = s.tuning.ContactDamage.Interval
			}
			zs.gate = system.NewContactGate(interval)
		}
		s.zones = append(s.zones, zs)
	}
	for _, it := range s.stage.Items {
		s.items = append(s.items, &itemState{spawn: it})
	}

	s.input = system.InputFrame{}
	s.ticks = 0
	s.clock.Reset()
	s.started = true

	mode := "new game"
	if resumed {
		mode = "continue"
	}
	s.logger.Printf("%s on %s at (%.2f, %.2f)", mode, s.stage.Name, p.Body.Position().X, p.Body.Position().Y)
	return nil
}

func (s *Session) despawn() {
	if s.player != nil {
		s.world.RemoveBody(s.player.ID)
	}
	for _, e := range s.enemies {
		s.world.RemoveBody(e.ID)
	}
	s.player = nil
	s.enemies = nil
	s.zones = nil
	s.items = nil
	s.started = false
}

// Submit latches a frame of input for the next tick
func (s *Session) Submit(in system.InputFrame) {
	s.input = s.input.Latch(in)
}

// Update advances by frameDt of wall time and returns the fixed ticks run
func (s *Session) Update(frameDt float64) int {
	if !s.started {
		return 0
	}
	n := s.clock.Advance(frameDt)
	for i := 0; i < n; i++ {
		s.tick(s.clock.Step())
	}
	return n
}

// Step runs exactly one fixed tick regardless of the time scale
func (s *Session) Step() error {
	if !s.started {
		return ErrNotStarted
	}
	s.tick(s.clock.Step())
	return nil
}

func (s *Session) tick(dt float64) {
	p := s.player

	in := s.input
	s.input = in.Held()
	s.InputConsumed.Emit(in)
	if err := p.applyInput(in); err != nil {
		s.logger.Printf("input rejected: %v", err)
	}

	p.tickControllers(dt)
	for _, e := range s.enemies {
		e.tickControllers(dt)
	}

	s.world.Step(dt)

	s.resolveAttacks()
	s.resolvePlayerContacts()
	s.resolveTriggers()

	p.tickTimers(dt)
	for _, e := range s.enemies {
		e.tickTimers(dt)
	}
	for _, z := range s.zones {
		if z.gate != nil {
			z.gate.Tick(dt)
		}
	}

	s.stats.PlayTime += dt
	s.ticks++
	s.Ticked.Emit(s.ticks)
}

func (s *Session) resolveAttacks() {
	p := s.player
	if p.Combat == nil {
		return
	}
	hitbox, ok := p.Combat.Hitbox()
	if !ok {
		return
	}
	for _, e := range s.enemies {
		if !e.defeated && hitbox.Overlaps(e.Hurtbox()) {
			p.Combat.OnOverlapBegin(e)
		}
	}
}

func (s *Session) resolvePlayerContacts() {
	p := s.player
	hurtbox := p.Hurtbox()
	vulnerable := p.Vulnerable()

	for _, e := range s.enemies {
		if e.defeated || !vulnerable || !hurtbox.Overlaps(e.Hurtbox()) {
			continue
		}
		if e.contact.Touch() {
			p.Health.TakeDamage(e.contactDamage, e.Body.Position())
		}
	}

	for _, z := range s.zones {
		switch z.zone.Kind {
		case entity.ZoneDamage:
			if vulnerable && hurtbox.Overlaps(z.zone.Rect) && z.gate.Touch() {
				p.Health.TakeDamage(z.zone.Damage, z.zone.Rect.Center)
			}
		case entity.ZoneHazard:
			if hurtbox.Overlaps(z.zone.Rect) {
				p.Health.TakeHazardDamage(z.zone.Damage)
			}
		}
	}
}

func (s *Session) resolveTriggers() {
	p := s.player
	hurtbox := p.Hurtbox()

	for _, z := range s.zones {
		if z.zone.Kind != entity.ZoneCheckpoint && z.zone.Kind != entity.ZoneErrorCheckpoint {
			continue
		}
		inside := hurtbox.Overlaps(z.zone.Rect)
		entered := inside && !z.inside
		z.inside = inside
		if !entered {
			continue
		}

		at := standPoint(z.zone.Rect, p.Size)
		if z.zone.Kind == entity.ZoneErrorCheckpoint {
			p.Checkpoints.SetErrorCheckpoint(at)
			continue
		}
		if err := p.Checkpoints.Touch(at, p.Health); err != nil {
			s.logger.Printf("checkpoint %d: %v", z.zone.ID, err)
			continue
		}
		s.logger.Printf("saved at checkpoint %d", z.zone.ID)
	}

	for _, it := range s.items {
		if it.collected || !hurtbox.Overlaps(entity.Rect{Center: it.spawn.Position, Size: it.spawn.Size}) {
			continue
		}
		it.collected = true
		s.stats.CollectedItems++
		s.collect(it.spawn.ItemID)
	}
}

// collect grants an ability item or stores a consumable
func (s *Session) collect(itemID int) {
	p := s.player
	bp, ok := s.catalog.Lookup(itemID)
	if !ok {
		s.logger.Printf("picked up unknown item %d", itemID)
		return
	}
	if bp.AbilityGranted != "" {
		if err := p.Unlock(bp.AbilityGranted); err != nil {
			s.logger.Printf("%s: %v", bp.Name, err)
			return
		}
		s.logger.Printf("unlocked %s", bp.AbilityGranted)
		return
	}
	p.Inventory.Add(itemID)
}

// saveSnapshot builds the record written at checkpoints. Max health is the
// unboosted value.
func (s *Session) saveSnapshot() entity.SaveSnapshot {
	p := s.player
	snap := entity.NewSaveSnapshot()
	snap.CheckpointPosition = p.Checkpoints.RespawnPoint().ToVec3()
	snap.MaxHealth = p.Effects.Baseline().MaxHealth
	hp := p.Health.Current()
	snap.CurrentHealth = &hp
	snap.Abilities = p.Unlocked
	snap.Inventory = p.Inventory.IDs()
	snap.LastScene = s.stage.Scene
	snap.CurrentLevel = s.level
	snap.CurrentSubLevel = s.subLevel
	snap.PlayTime = s.stats.PlayTime
	snap.EnemiesDefeated = s.stats.EnemiesDefeated
	snap.HitsTaken = s.stats.HitsTaken
	snap.Deaths = s.stats.Deaths
	snap.CollectedItems = s.stats.CollectedItems
	return snap
}

// Save writes the current state at the last respawn point
func (s *Session) Save() error {
	if !s.started {
		return ErrNotStarted
	}
	return s.store.Save(s.saveSnapshot())
}

// SetTimeScale scales simulated time. 0 pauses.
func (s *Session) SetTimeScale(scale float64) {
	s.clock.SetScale(scale)
}

// TimeScale returns the current time scale
func (s *Session) TimeScale() float64 {
	return s.clock.Scale()
}

// Pause freezes simulated time
func (s *Session) Pause() {
	s.clock.Pause()
}

// Resume restores the time scale active before Pause
func (s *Session) Resume() {
	s.clock.Resume()
}

// Paused reports whether simulated time is frozen
func (s *Session) Paused() bool {
	return s.clock.Paused()
}

// Started reports whether Start or ResetSave has run
func (s *Session) Started() bool {
	return s.started
}

// Ticks returns the fixed ticks run since the stage started
func (s *Session) Ticks() uint64 {
	return s.ticks
}

// Player returns the player, or nil before Start
func (s *Session) Player() *Player {
	return s.player
}

// Enemies returns the spawned enemies, defeated ones included
func (s *Session) Enemies() []*Enemy {
	return s.enemies
}

// Stage returns the stage being played
func (s *Session) Stage() *entity.Stage {
	return s.stage
}

// Statistics returns the play counters
func (s *Session) Statistics() Statistics {
	return s.stats
}
