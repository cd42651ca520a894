package main

import (
	"fmt"
	"log"

	"github.com/younwookim/actorsim/internal/application/bootstrap"
	"github.com/younwookim/actorsim/internal/application/replay"
	"github.com/younwookim/actorsim/internal/application/session"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
	"github.com/younwookim/actorsim/internal/infrastructure/persistence"
)

// ReplayResult is what a headless run of a recording produced
type ReplayResult struct {
	Frames []session.Frame // one per played tick
	Final  session.Frame
}

// replayTuning runs the session at the tick length the recording was made with
func replayTuning(data *replay.Recording) func(*config.TuningConfig) {
	return func(c *config.TuningConfig) {
		if data.FixedStep > 0 {
			c.Simulation.FixedStep = data.FixedStep
		}
	}
}

// runHeadless plays data against a fresh session with an in-memory save
func runHeadless(loader *config.Loader, data *replay.Recording, physics string) (ReplayResult, error) {
	sess, _, err := bootstrap.Build(bootstrap.Options{
		Loader:  loader,
		Stage:   data.Stage,
		Physics: physics,
		Store:   persistence.NewMemoryStore(),
		Tune:    replayTuning(data),
	})
	if err != nil {
		return ReplayResult{}, err
	}
	if err := sess.Start(); err != nil {
		return ReplayResult{}, fmt.Errorf("failed to start session: %w", err)
	}

	replayer := replay.NewReplayer(*data)
	result := ReplayResult{Frames: make([]session.Frame, 0, replayer.Len())}
	for {
		ok, err := replayer.Play(sess)
		if err != nil {
			return result, err
		}
		if !ok {
			break
		}
		result.Frames = append(result.Frames, sess.Snapshot())
	}

	result.Final = sess.Snapshot()
	return result, nil
}

func logReplayResult(logger *log.Logger, r ReplayResult) {
	p, st := r.Final.Player, r.Final.Stats
	logger.Printf("Replayed %d ticks", r.Final.Tick)
	logger.Printf("Player at (%.3f, %.3f) health %d/%d", p.Position.X, p.Position.Y, p.Health, p.MaxHealth)
	logger.Printf("Enemies defeated %d, hits taken %d, deaths %d, items %d",
		st.EnemiesDefeated, st.HitsTaken, st.Deaths, st.CollectedItems)
}
