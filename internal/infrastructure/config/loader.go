package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

var (
	// ErrInvalid marks a config that parsed but failed validation
	ErrInvalid = errors.New("invalid config")
	// ErrDuplicateItem is returned when two item rows share an id
	ErrDuplicateItem = errors.New("duplicate item id")
)

const (
	tuningFile = "tuning.json"
	itemsFile  = "items.json"
	stageDir   = "stages"
	scriptDir  = "scripts"
)

// GameConfig is the stage-independent part of the configuration
type GameConfig struct {
	Tuning *TuningConfig
	Items  *ItemsConfig
}

// Loader reads a config tree laid out as tuning.json, items.json,
// stages/<id>.json and scripts/<name>.tengo
type Loader struct {
	fsys fs.FS
	name string
}

// NewLoader reads from the directory dir
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir), name: dir}
}

// NewFSLoader reads from fsys. name only labels the tree in messages.
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{fsys: fsys, name: name}
}

// Name returns the label of the config tree
func (l *Loader) Name() string {
	return l.name
}

// decode unmarshals file into a new T and runs check on it
func decode[T any](fsys fs.FS, file string, check func(*T) error) (*T, error) {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	if err := check(v); err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return v, nil
}

// LoadTuning reads and validates tuning.json
func (l *Loader) LoadTuning() (*TuningConfig, error) {
	return decode(l.fsys, tuningFile, (*TuningConfig).Validate)
}

// LoadItems reads items.json and checks every row converts to a blueprint
func (l *Loader) LoadItems() (*ItemsConfig, error) {
	return decode(l.fsys, itemsFile, func(c *ItemsConfig) error {
		_, err := c.Blueprints()
		return err
	})
}

// LoadStage reads and validates stages/<id>.json
func (l *Loader) LoadStage(id string) (*StageConfig, error) {
	return decode(l.fsys, path.Join(stageDir, id+".json"), (*StageConfig).Validate)
}

// Stages lists the ids of every stage in the tree, sorted
func (l *Loader) Stages() ([]string, error) {
	matches, err := fs.Glob(l.fsys, stageDir+"/*.json")
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = strings.TrimSuffix(path.Base(m), ".json")
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadScript returns the source of scripts/<name>.tengo
func (l *Loader) LoadScript(name string) ([]byte, error) {
	file := path.Join(scriptDir, name+".tengo")
	src, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return src, nil
}

// LoadAll reads tuning.json and items.json
func (l *Loader) LoadAll() (*GameConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}
	items, err := l.LoadItems()
	if err != nil {
		return nil, err
	}
	return &GameConfig{Tuning: tuning, Items: items}, nil
}
