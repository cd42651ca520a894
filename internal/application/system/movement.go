package system

import (
	"fmt"
	"math"

	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// MovementState is the sensor and timer state after the last tick
type MovementState struct {
	Grounded        bool
	TouchingWall    bool
	WallClinging    bool
	CanDoubleJump   bool
	Gliding         bool
	Falling         bool
	CoyoteTimer     float64
	JumpBufferTimer float64
	Facing          float64
}

// MovementController turns player intent into forces on the body
type MovementController struct {
	cfg       *config.MovementConfig
	body      entity.PhysicsBody
	env       Environment
	stats     *entity.Stats
	abilities *entity.Abilities
	animator  Animator

	axis   float64
	glide  bool
	locked bool
	// a press is always offered to the next tick, even with no buffer window
	jumpRequested bool

	state              MovementState
	wasGrounded        bool
	jumpedThisGrounded bool
}

// NewMovementController creates a new movement controller.
// The sensors must be usable or ErrInvalidConfig is returned.
func NewMovementController(cfg *config.MovementConfig, body entity.PhysicsBody, env Environment, stats *entity.Stats, abilities *entity.Abilities, animator Animator) (*MovementController, error) {
	switch {
	case cfg == nil || body == nil || env == nil || stats == nil || abilities == nil:
		return nil, fmt.Errorf("%w: movement needs config, body, environment, stats and abilities", ErrInvalidConfig)
	case cfg.GroundCheck.Radius <= 0 || cfg.GroundCheck.Layer == "":
		return nil, fmt.Errorf("%w: ground check needs a radius and a layer", ErrInvalidConfig)
	case cfg.WallCheck.Distance <= 0 || cfg.WallCheck.Layer == "":
		return nil, fmt.Errorf("%w: wall check needs a distance and a layer", ErrInvalidConfig)
	}
	return &MovementController{
		cfg:       cfg,
		body:      body,
		env:       env,
		stats:     stats,
		abilities: abilities,
		animator:  orNopAnimator(animator),
		state:     MovementState{Facing: 1},
	}, nil
}

// SetAxis sets the horizontal input, clamped to [-1,1]
func (m *MovementController) SetAxis(x float64) {
	m.axis = math.Max(-1, math.Min(1, x))
}

// SetGlide sets whether the glide button is held
func (m *MovementController) SetGlide(held bool) {
	m.glide = held
}

// PressJump buffers a jump request for the next ticks
func (m *MovementController) PressJump() {
	if !m.abilities.Jump || m.locked {
		return
	}
	m.jumpRequested = true
	m.state.JumpBufferTimer = m.cfg.JumpBuffer
}

// ReleaseJump cuts the ascent short
func (m *MovementController) ReleaseJump() {
	v := m.body.Velocity()
	if v.Y > 0 {
		m.body.SetVelocity(entity.Vec2{X: v.X, Y: v.Y * m.cfg.VariableJumpMultiplier})
	}
}

// SetLocked freezes drive and jumping, and clears any buffered jump
func (m *MovementController) SetLocked(locked bool) {
	m.locked = locked
	if locked {
		m.jumpRequested = false
		m.state.JumpBufferTimer = 0
		m.animator.SetFloat("Movement", 0)
		m.animator.SetBool("IsWallClinging", false)
		m.animator.SetBool("IsFalling", false)
		m.animator.SetBool("IsGliding", false)
	}
}

// Locked reports whether movement is frozen
func (m *MovementController) Locked() bool {
	return m.locked
}

// Facing returns +1 or -1
func (m *MovementController) Facing() float64 {
	return m.state.Facing
}

// State returns a copy of the current movement state
func (m *MovementController) State() MovementState {
	return m.state
}

// Reset clears transient state after a teleport
func (m *MovementController) Reset() {
	facing := m.state.Facing
	m.state = MovementState{Facing: facing}
	m.wasGrounded = false
	m.jumpedThisGrounded = false
	m.jumpRequested = false
}

// Tick runs one fixed step: sensors, drive, jump, wall slide, glide
func (m *MovementController) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	m.sense(dt)
	if !m.locked {
		m.drive()
		if m.abilities.Jump {
			m.handleJump()
		}
		if m.abilities.WallCling {
			m.handleWallCling()
		}
		if m.abilities.Glide {
			m.handleGlide()
		}
		m.animate()
	}
	m.damp()

	m.jumpRequested = false
	if m.state.JumpBufferTimer > 0 {
		m.state.JumpBufferTimer = math.Max(0, m.state.JumpBufferTimer-dt)
	}
}

func (m *MovementController) sense(dt float64) {
	pos := m.body.Position()

	grounded := m.env.OverlapCircle(pos.Add(m.cfg.GroundCheck.Offset.ToVec2()), m.cfg.GroundCheck.Radius, m.cfg.GroundCheck.Layer)
	if grounded && !m.wasGrounded {
		m.state.CanDoubleJump = m.abilities.DoubleJump
		m.jumpedThisGrounded = false
	}
	m.wasGrounded = grounded
	m.state.Grounded = grounded

	if grounded {
		m.state.CoyoteTimer = m.cfg.CoyoteTime
	} else if m.state.CoyoteTimer > 0 {
		m.state.CoyoteTimer = math.Max(0, m.state.CoyoteTimer-dt)
	}

	dir := entity.Sign(m.axis)
	if dir == 0 {
		dir = m.state.Facing
	}
	m.state.TouchingWall = m.env.Raycast(pos.Add(m.cfg.WallCheck.Offset.ToVec2()), entity.Vec2{X: dir}, m.cfg.WallCheck.Distance, m.cfg.WallCheck.Layer)
	m.state.WallClinging = m.abilities.WallCling && m.state.TouchingWall && !grounded && m.axis != 0
}

func (m *MovementController) drive() {
	v := m.body.Velocity()
	dir := entity.Sign(m.axis)
	if dir != 0 && (m.cfg.MaxSpeed <= 0 || v.X*dir < m.cfg.MaxSpeed) {
		m.body.ApplyForce(entity.Vec2{X: m.axis * m.stats.MoveForce})
	}

	if m.axis > 0 {
		m.state.Facing = 1
	} else if m.axis < 0 {
		m.state.Facing = -1
	}
}

// damp applies horizontal linear damping as a force so it composes with drive
func (m *MovementController) damp() {
	if m.cfg.Damping <= 0 {
		return
	}
	v := m.body.Velocity()
	m.body.ApplyForce(entity.Vec2{X: -v.X * m.cfg.Damping * m.body.Mass()})
}

func (m *MovementController) handleJump() {
	if !m.jumpRequested && m.state.JumpBufferTimer <= 0 {
		return
	}

	jumped := false
	switch {
	case m.state.CoyoteTimer > 0 && !m.jumpedThisGrounded:
		m.doJump(entity.Vec2{Y: m.stats.JumpForce})
		m.animator.SetTrigger("Jump")
		m.jumpedThisGrounded = true
		jumped = true
	case m.abilities.WallJump && m.state.WallClinging:
		wallDir := entity.Sign(m.axis)
		m.doJump(entity.Vec2{X: -wallDir * m.cfg.WallJumpHorizontal, Y: m.cfg.WallJumpVertical})
		m.animator.SetTrigger("WallJump")
		jumped = true
	case m.abilities.DoubleJump && m.state.CanDoubleJump:
		m.doJump(entity.Vec2{Y: m.stats.JumpForce})
		m.animator.SetTrigger("DoubleJump")
		m.state.CanDoubleJump = false
		jumped = true
	}

	if jumped {
		m.state.JumpBufferTimer = 0
	}
}

func (m *MovementController) doJump(impulse entity.Vec2) {
	v := m.body.Velocity()
	m.body.SetVelocity(entity.Vec2{X: v.X})
	m.body.ApplyImpulse(impulse)
}

func (m *MovementController) handleWallCling() {
	limit := -m.cfg.WallSlideSpeed
	v := m.body.Velocity()
	if m.state.WallClinging && v.Y < limit {
		m.body.ApplyImpulse(entity.Vec2{Y: (limit - v.Y) * m.body.Mass()})
	}
}

func (m *MovementController) handleGlide() {
	v := m.body.Velocity()
	m.state.Gliding = !m.state.Grounded && !m.state.WallClinging && v.Y < 0 && m.glide
	if m.state.Gliding {
		m.body.ApplyForce(entity.Vec2{Y: math.Abs(v.Y) * m.body.Mass() * m.stats.SlowFallMultiplier})
	}
}

func (m *MovementController) animate() {
	v := m.body.Velocity()
	m.state.Falling = !m.state.Grounded && !m.state.WallClinging && v.Y < 0
	m.animator.SetFloat("Movement", math.Abs(v.X))
	m.animator.SetBool("IsWallClinging", m.state.WallClinging)
	m.animator.SetBool("IsFalling", m.state.Falling)
	m.animator.SetBool("IsGliding", m.state.Gliding)
}
