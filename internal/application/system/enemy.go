package system

import (
	"fmt"
	"math"

	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// expired advances t and reports whether it is done, treating a timer that
// was started with a non-positive duration as already done
func expired(t *entity.Countdown, dt float64) bool {
	return t.Tick(dt) || !t.Active()
}

// EnemyMover drives an enemy body and hops over obstacles
type EnemyMover struct {
	cfg    *config.EnemyMoveConfig
	body   entity.PhysicsBody
	env    Environment
	facing float64

	grounded bool
	blocked  bool
	hops     int
}

// NewEnemyMover creates a new enemy mover
func NewEnemyMover(cfg *config.EnemyMoveConfig, body entity.PhysicsBody, env Environment, facingRight bool) (*EnemyMover, error) {
	switch {
	case cfg == nil || body == nil || env == nil:
		return nil, fmt.Errorf("%w: enemy mover needs config, body and environment", ErrInvalidConfig)
	case cfg.GroundCheck.Radius <= 0 || cfg.GroundCheck.Layer == "":
		return nil, fmt.Errorf("%w: enemy ground check needs a radius and a layer", ErrInvalidConfig)
	}
	facing := -1.0
	if facingRight {
		facing = 1
	}
	return &EnemyMover{cfg: cfg, body: body, env: env, facing: facing}, nil
}

// Move pushes along dir.X at Speed*multiplier and turns to face it
func (m *EnemyMover) Move(dir entity.Vec2, multiplier float64) {
	m.body.ApplyForce(entity.Vec2{X: dir.X * m.cfg.Speed * multiplier})
	if math.Abs(dir.X) > 0.01 {
		m.facing = entity.Sign(dir.X)
	}
}

// Stop kills horizontal velocity
func (m *EnemyMover) Stop() {
	v := m.body.Velocity()
	m.body.SetVelocity(entity.Vec2{Y: v.Y})
}

// Facing returns +1 or -1
func (m *EnemyMover) Facing() float64 {
	return m.facing
}

// Grounded reports the last ground sensor reading
func (m *EnemyMover) Grounded() bool {
	return m.grounded
}

// Hops returns how many obstacle hops have fired
func (m *EnemyMover) Hops() int {
	return m.hops
}

// Tick reads the sensors, hops when blocked on the ground, and applies damping
func (m *EnemyMover) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	pos := m.body.Position()
	gc := m.cfg.GroundCheck
	m.grounded = m.env.OverlapCircle(pos.Add(gc.Offset.ToVec2()), gc.Radius, gc.Layer)

	m.blocked = false
	if oc := m.cfg.ObstacleCheck; oc.Distance > 0 && oc.Layer != "" {
		origin := pos.Add(entity.Vec2{X: oc.Offset.X * m.facing, Y: oc.Offset.Y})
		m.blocked = m.env.Raycast(origin, entity.Vec2{X: m.facing}, oc.Distance, oc.Layer)
	}

	if m.grounded && m.blocked && m.cfg.JumpForce > 0 && m.body.Velocity().Y <= 0 {
		m.body.ApplyImpulse(entity.Vec2{Y: m.cfg.JumpForce})
		m.hops++
	}

	if m.cfg.Damping > 0 {
		v := m.body.Velocity()
		m.body.ApplyForce(entity.Vec2{X: -v.X * m.cfg.Damping * m.body.Mass()})
	}
}

// LungePhase is a step of the lunge attack
type LungePhase int

const (
	LungeReady LungePhase = iota
	LungeCharge
	LungePause
	LungeStrike
	LungeCooldown
)

// String returns the phase name
func (p LungePhase) String() string {
	switch p {
	case LungeReady:
		return "Ready"
	case LungeCharge:
		return "Charge"
	case LungePause:
		return "Pause"
	case LungeStrike:
		return "Strike"
	case LungeCooldown:
		return "Cooldown"
	default:
		return "Unknown"
	}
}

// LungeAttack is Charge -> Pause -> Strike -> Recoil -> Cooldown -> Ready.
// Once started it runs to completion.
type LungeAttack struct {
	cfg    *config.LungeConfig
	body   entity.PhysicsBody
	phase  LungePhase
	timer  entity.Countdown
	target Target
	charge float64
	dir    entity.Vec2

	Finished entity.Feed[struct{}]
	Phases   entity.Feed[LungePhase]
}

// NewLungeAttack creates a new lunge attack
func NewLungeAttack(cfg *config.LungeConfig, body entity.PhysicsBody) (*LungeAttack, error) {
	if cfg == nil || body == nil {
		return nil, fmt.Errorf("%w: lunge needs config and body", ErrInvalidConfig)
	}
	return &LungeAttack{cfg: cfg, body: body}, nil
}

// CanAttack reports whether the attack is off cooldown
func (l *LungeAttack) CanAttack() bool {
	return l.phase == LungeReady
}

// Phase returns the current phase
func (l *LungeAttack) Phase() LungePhase {
	return l.phase
}

// Perform starts the sequence against target. Returns false when not ready.
func (l *LungeAttack) Perform(target Target) bool {
	if l.phase != LungeReady || target == nil {
		return false
	}
	l.target = target

	l.charge = entity.Sign(l.body.Position().X - target.Position().X)
	if l.charge == 0 {
		l.charge = 1
	}
	l.body.SetVelocity(entity.Vec2{X: l.charge * l.cfg.ChargeSpeed})
	l.enter(LungeCharge, l.cfg.ChargeTime)
	return true
}

// Tick advances the current phase
func (l *LungeAttack) Tick(dt float64) {
	if l.phase == LungeReady || dt <= 0 {
		return
	}
	if !expired(&l.timer, dt) {
		return
	}

	switch l.phase {
	case LungeCharge:
		l.body.SetVelocity(entity.Vec2{})
		l.enter(LungePause, l.cfg.PauseTime)
	case LungePause:
		l.dir = entity.Vec2{X: -l.charge}
		if l.target != nil {
			if d := l.target.Position().Sub(l.body.Position()).Normalized(); d.LenSq() > 0 {
				l.dir = d
			}
		}
		l.body.ApplyImpulse(l.dir.Scale(l.cfg.LungeForce))
		l.enter(LungeStrike, l.cfg.LungeTime)
	case LungeStrike:
		l.body.SetVelocity(entity.Vec2{})
		l.body.ApplyImpulse(l.dir.Scale(-l.cfg.RecoilForce))
		l.target = nil
		l.enter(LungeCooldown, l.cfg.Cooldown)
		l.Finished.Emit(struct{}{})
	case LungeCooldown:
		l.phase = LungeReady
		l.Phases.Emit(LungeReady)
	}
}

func (l *LungeAttack) enter(p LungePhase, d float64) {
	l.phase = p
	l.timer.Start(d)
	l.Phases.Emit(p)
}

// AIMode is the high-level enemy state
type AIMode int

const (
	ModePatrol AIMode = iota
	ModeChase
	ModeAttacking
)

// String returns the mode name
func (m AIMode) String() string {
	switch m {
	case ModePatrol:
		return "patrol"
	case ModeChase:
		return "chase"
	case ModeAttacking:
		return "attack"
	default:
		return "unknown"
	}
}

// Perception is what a TransitionPolicy sees when choosing a mode
type Perception struct {
	Mode           AIMode
	HasTarget      bool
	Distance       float64
	DetectionRange float64
	AttackRange    float64
	CanAttack      bool
	HealthPercent  float64
}

// TransitionPolicy picks the next AI mode
type TransitionPolicy interface {
	Decide(p Perception) AIMode
}

// TablePolicy is the built-in transition table
type TablePolicy struct{}

// Decide picks Attacking inside attack range when ready, Chase inside
// detection range, Patrol otherwise
func (TablePolicy) Decide(p Perception) AIMode {
	if !p.HasTarget || p.Distance > p.DetectionRange {
		return ModePatrol
	}
	if p.Distance <= p.AttackRange && p.CanAttack {
		return ModeAttacking
	}
	return ModeChase
}

// EnemyAI runs Patrol/Chase/Attacking on top of a mover and a lunge attack
type EnemyAI struct {
	cfg    *config.AIConfig
	body   entity.PhysicsBody
	mover  *EnemyMover
	lunge  *LungeAttack
	policy TransitionPolicy
	health *HealthController

	target    Target
	anchor    entity.Vec2
	patrolDir float64
	mode      AIMode

	ModeChanged entity.Feed[AIMode]
}

// NewEnemyAI creates an AI anchored at the body's current position.
// A nil policy uses TablePolicy; health may be nil.
func NewEnemyAI(cfg *config.AIConfig, body entity.PhysicsBody, mover *EnemyMover, lunge *LungeAttack, policy TransitionPolicy, health *HealthController) (*EnemyAI, error) {
	if cfg == nil || body == nil || mover == nil || lunge == nil {
		return nil, fmt.Errorf("%w: enemy AI needs config, body, mover and lunge", ErrInvalidConfig)
	}
	if policy == nil {
		policy = TablePolicy{}
	}
	ai := &EnemyAI{
		cfg:       cfg,
		body:      body,
		mover:     mover,
		lunge:     lunge,
		policy:    policy,
		health:    health,
		anchor:    body.Position(),
		patrolDir: mover.Facing(),
	}
	lunge.Finished.Subscribe(func(struct{}) { ai.evaluate() })
	return ai, nil
}

// SetTarget sets or clears the tracked target
func (a *EnemyAI) SetTarget(t Target) {
	a.target = t
}

// Mode returns the current mode
func (a *EnemyAI) Mode() AIMode {
	return a.mode
}

// Anchor returns the patrol anchor
func (a *EnemyAI) Anchor() entity.Vec2 {
	return a.anchor
}

// Tick re-evaluates unless attacking, then acts on the mode
func (a *EnemyAI) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	if a.mode != ModeAttacking {
		a.evaluate()
	}

	switch a.mode {
	case ModePatrol:
		a.patrol()
	case ModeChase:
		a.chase()
	}
}

func (a *EnemyAI) perceive() Perception {
	p := Perception{
		Mode:           a.mode,
		DetectionRange: a.cfg.DetectionRange,
		AttackRange:    a.cfg.AttackRange,
		CanAttack:      a.lunge.CanAttack(),
		HealthPercent:  1,
	}
	if a.health != nil {
		p.HealthPercent = a.health.Percent()
	}
	if a.target != nil {
		p.HasTarget = true
		p.Distance = a.body.Position().Distance(a.target.Position())
	}
	return p
}

func (a *EnemyAI) evaluate() {
	next := a.policy.Decide(a.perceive())
	if next == ModeAttacking && (a.target == nil || !a.lunge.CanAttack()) {
		next = ModeChase
	}
	if next == ModeChase && a.target == nil {
		next = ModePatrol
	}
	a.setMode(next)
}

func (a *EnemyAI) setMode(next AIMode) {
	if next == a.mode {
		return
	}
	a.mode = next
	if next == ModeAttacking {
		a.mover.Stop()
		if !a.lunge.Perform(a.target) {
			a.mode = ModeChase
		}
	}
	a.ModeChanged.Emit(a.mode)
}

func (a *EnemyAI) patrol() {
	a.mover.Move(entity.Vec2{X: a.patrolDir}, 1)

	offset := a.body.Position().X - a.anchor.X
	if a.patrolDir > 0 && offset >= a.cfg.PatrolDistance {
		a.patrolDir = -1
	} else if a.patrolDir < 0 && offset <= -a.cfg.PatrolDistance {
		a.patrolDir = 1
	}
}

func (a *EnemyAI) chase() {
	if a.target == nil {
		return
	}
	dir := a.target.Position().Sub(a.body.Position()).Normalized()
	a.mover.Move(dir, a.cfg.ChaseMultiplier)
}
