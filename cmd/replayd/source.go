package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/younwookim/actorsim/internal/application/bootstrap"
	"github.com/younwookim/actorsim/internal/application/replay"
	"github.com/younwookim/actorsim/internal/application/session"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
	"github.com/younwookim/actorsim/internal/infrastructure/persistence"
	"github.com/younwookim/actorsim/internal/infrastructure/stream"
)

// replaySource replays one recording and yields a Frame per tick
type replaySource struct {
	sess     *session.Session
	replayer *replay.Replayer
}

func (s *replaySource) Next() (any, bool, error) {
	ok, err := s.replayer.Play(s.sess)
	if err != nil || !ok {
		return nil, false, err
	}
	return s.sess.Snapshot(), true, nil
}

// opener builds sessions for recordings stored as <dir>/<name>.json
type opener struct {
	dir     string
	loader  *config.Loader
	physics string
	logger  *log.Logger
}

func (o *opener) Open(name string) (stream.Source, error) {
	if name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: %q", stream.ErrUnknownSource, name)
	}
	data, err := replay.Load(filepath.Join(o.dir, name+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", stream.ErrUnknownSource, name)
		}
		return nil, err
	}

	sess, _, err := bootstrap.Build(bootstrap.Options{
		Loader:  o.loader,
		Stage:   data.Stage,
		Physics: o.physics,
		Store:   persistence.NewMemoryStore(),
		Logger:  o.logger,
		Tune: func(c *config.TuningConfig) {
			if data.FixedStep > 0 {
				c.Simulation.FixedStep = data.FixedStep
			}
		},
	})
	if err != nil {
		return nil, err
	}
	if err := sess.Start(); err != nil {
		return nil, err
	}
	o.logger.Printf("Opened replay %s: stage %s, %d frames", name, data.Stage, len(data.Frames))
	return &replaySource{sess: sess, replayer: replay.NewReplayer(*data)}, nil
}
