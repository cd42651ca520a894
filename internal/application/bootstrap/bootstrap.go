// Package bootstrap assembles a Session from a config directory
package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"

	"github.com/younwookim/actorsim/internal/application/session"
	"github.com/younwookim/actorsim/internal/application/system"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
	"github.com/younwookim/actorsim/internal/infrastructure/physics"
	"github.com/younwookim/actorsim/internal/infrastructure/script"
)

// Physics backends
const (
	Kinematic = "kinematic"
	Chipmunk  = "chipmunk"
)

// ErrUnknownBackend is returned for a physics name other than Kinematic or Chipmunk
var ErrUnknownBackend = errors.New("unknown physics backend")

// Options selects what to build
type Options struct {
	Loader  *config.Loader
	Stage   string
	Physics string // Kinematic when empty
	Store   system.SaveStore
	Logger  *log.Logger

	// Tune, when set, edits the loaded tuning before the session is built
	Tune func(*config.TuningConfig)
}

// Build loads tuning, items, the stage and AI scripts, then wires a session
func Build(opts Options) (*session.Session, *config.GameConfig, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	cfg, err := opts.Loader.LoadAll()
	if err != nil {
		return nil, nil, err
	}
	if opts.Tune != nil {
		opts.Tune(cfg.Tuning)
	}
	stageCfg, err := opts.Loader.LoadStage(opts.Stage)
	if errors.Is(err, fs.ErrNotExist) {
		if ids, lerr := opts.Loader.Stages(); lerr == nil && len(ids) > 0 {
			err = fmt.Errorf("%w (stages: %s)", err, strings.Join(ids, ", "))
		}
	}
	if err != nil {
		return nil, nil, err
	}
	stage := system.LoadStage(stageCfg)

	blueprints, err := cfg.Items.Blueprints()
	if err != nil {
		return nil, nil, err
	}
	policies, err := script.LoadPolicies(opts.Loader, cfg.Tuning.Enemies, logger)
	if err != nil {
		return nil, nil, err
	}

	var world system.World
	switch opts.Physics {
	case "", Kinematic:
		world = system.NewPhysicsSystem(&cfg.Tuning.Simulation, stage)
	case Chipmunk:
		world = physics.NewWorld(&cfg.Tuning.Simulation, stage)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Physics)
	}

	sess, err := session.New(session.Deps{
		Tuning:   cfg.Tuning,
		Stage:    stage,
		Catalog:  system.NewItemCatalog(blueprints),
		World:    world,
		Store:    opts.Store,
		Policies: policies,
		Logger:   logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return sess, cfg, nil
}
