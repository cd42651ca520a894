package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/younwookim/actorsim/internal/domain/entity"
)

// DefaultFileName is the save file written under the save directory
const DefaultFileName = "save.yaml"

// FileStore keeps the snapshot in a YAML file. Writes go to a temp file in
// the same directory and are renamed over the target.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the save file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file reports ok=false and no error.
func (s *FileStore) Load() (entity.SaveSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.SaveSnapshot{}, false, nil
	}
	if err != nil {
		return entity.SaveSnapshot{}, false, fmt.Errorf("failed to read save %s: %w", s.path, err)
	}

	snap := entity.NewSaveSnapshot()
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return entity.SaveSnapshot{}, false, fmt.Errorf("failed to parse save %s: %w", s.path, err)
	}
	if snap.Inventory == nil {
		snap.Inventory = []int{}
	}
	return snap, true, nil
}

// Save replaces the file contents with snap
func (s *FileStore) Save(snap entity.SaveSnapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".save-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace save: %w", err)
	}
	return nil
}

// Reset deletes the save file. Deleting a missing file is not an error.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

// MemoryStore keeps the snapshot in memory, for tests and headless runs
type MemoryStore struct {
	mu    sync.Mutex
	snap  entity.SaveSnapshot
	ok    bool
	saves int
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the last saved snapshot
func (s *MemoryStore) Load() (entity.SaveSnapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ok {
		return entity.SaveSnapshot{}, false, nil
	}
	return clone(s.snap), true, nil
}

// Save stores a copy of snap
func (s *MemoryStore) Save(snap entity.SaveSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = clone(snap)
	s.ok = true
	s.saves++
	return nil
}

// Reset forgets the snapshot
func (s *MemoryStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = entity.SaveSnapshot{}
	s.ok = false
	return nil
}

// Saves returns how many times Save was called
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func clone(snap entity.SaveSnapshot) entity.SaveSnapshot {
	out := snap
	out.Inventory = slices.Clone(snap.Inventory)
	if out.Inventory == nil {
		out.Inventory = []int{}
	}
	if snap.CurrentHealth != nil {
		v := *snap.CurrentHealth
		out.CurrentHealth = &v
	}
	return out
}
