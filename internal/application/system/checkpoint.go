package system

import (
	"fmt"

	"github.com/younwookim/actorsim/internal/domain/entity"
)

// SaveStore persists the snapshot. Load reports ok=false with a nil error
// when nothing has been saved yet.
type SaveStore interface {
	Load() (entity.SaveSnapshot, bool, error)
	Save(entity.SaveSnapshot) error
	Reset() error
}

// CheckpointService tracks the respawn point and the hazard recovery point
// and writes the snapshot when a checkpoint is touched
type CheckpointService struct {
	store    SaveStore
	body     entity.PhysicsBody
	snapshot func() entity.SaveSnapshot

	respawnPoint entity.Vec2
	errorPoint   entity.Vec2
	onRespawn    func()

	Saved     entity.Feed[entity.SaveSnapshot]
	Respawned entity.Feed[entity.Vec2]
}

// NewCheckpointService creates a service. snapshot builds the record to save.
func NewCheckpointService(store SaveStore, body entity.PhysicsBody, snapshot func() entity.SaveSnapshot) *CheckpointService {
	return &CheckpointService{store: store, body: body, snapshot: snapshot}
}

// OnRespawn registers a hook run after each teleport, for clearing
// movement state
func (c *CheckpointService) OnRespawn(fn func()) {
	c.onRespawn = fn
}

// SetRespawnPoint moves the respawn point without saving
func (c *CheckpointService) SetRespawnPoint(p entity.Vec2) {
	c.respawnPoint = p
}

// RespawnPoint returns the current respawn point
func (c *CheckpointService) RespawnPoint() entity.Vec2 {
	return c.respawnPoint
}

// SetErrorCheckpoint records the hazard recovery point
func (c *CheckpointService) SetErrorCheckpoint(p entity.Vec2) {
	c.errorPoint = p
}

// ErrorRespawnPosition returns the hazard recovery point
func (c *CheckpointService) ErrorRespawnPosition() entity.Vec2 {
	return c.errorPoint
}

// Touch saves at p, makes p the respawn point and heals to full.
// The respawn point moves even when saving fails.
func (c *CheckpointService) Touch(p entity.Vec2, health *HealthController) error {
	c.respawnPoint = p
	if health != nil {
		health.SetHealth(health.Max())
	}
	snap := c.snapshot()
	snap.CheckpointPosition = p.ToVec3()
	if err := c.store.Save(snap); err != nil {
		return fmt.Errorf("failed to save at checkpoint: %w", err)
	}
	c.Saved.Emit(snap)
	return nil
}

// Respawn teleports the body to the respawn point and stops it
func (c *CheckpointService) Respawn() {
	c.body.SetPosition(c.respawnPoint)
	c.body.SetVelocity(entity.Vec2{})
	if c.onRespawn != nil {
		c.onRespawn()
	}
	c.Respawned.Emit(c.respawnPoint)
}
