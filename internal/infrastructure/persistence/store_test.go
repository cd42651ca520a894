package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/actorsim/internal/domain/entity"
)

func createTestSnapshot() entity.SaveSnapshot {
	hp := 42
	snap := entity.NewSaveSnapshot()
	snap.CheckpointPosition = entity.Vec3{X: 20.5, Y: 3.5}
	snap.CurrentHealth = &hp
	snap.Abilities = entity.UnlockedAbilities{DoubleJump: true, WallClimb: true}
	snap.Inventory = []int{1, 4}
	snap.LastScene = 2
	snap.PlayTime = 12.5
	snap.EnemiesDefeated = 3
	snap.Deaths = 1
	return snap
}

func TestFileStore_AbsentIsNotAnError(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), DefaultFileName))

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, store.Reset(), "resetting a missing save is a no-op")
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot", DefaultFileName)
	store := NewFileStore(path)
	want := createTestSnapshot()

	require.NoError(t, store.Save(want))
	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_TextFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	store := NewFileStore(path)
	require.NoError(t, store.Save(createTestSnapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_health: 100")
	assert.Contains(t, string(data), "double_jump: true")
	assert.Contains(t, string(data), "current_health: 42")
}

func TestFileStore_MissingKeysKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("last_scene: 3\n"), 0o644))

	got, ok, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, got.LastScene)
	assert.Equal(t, 100, got.MaxHealth)
	assert.Equal(t, 1, got.CurrentLevel)
	assert.Nil(t, got.CurrentHealth)
	assert.Equal(t, []int{}, got.Inventory)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("max_health: [oops"), 0o644))

	_, ok, err := NewFileStore(path).Load()
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestFileStore_Reset(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, store.Save(createTestSnapshot()))
	require.NoError(t, store.Reset())

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	snap := createTestSnapshot()
	require.NoError(t, store.Save(snap))
	snap.Inventory[0] = 99
	*snap.CurrentHealth = 1

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{1, 4}, got.Inventory, "store keeps its own copy")
	assert.Equal(t, 42, *got.CurrentHealth)
	assert.Equal(t, 1, store.Saves())

	require.NoError(t, store.Reset())
	_, ok, _ = store.Load()
	assert.False(t, ok)
}
