package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/actorsim/internal/application/bootstrap"
	"github.com/younwookim/actorsim/internal/application/game"
	"github.com/younwookim/actorsim/internal/application/replay"
	"github.com/younwookim/actorsim/internal/application/scene"
	"github.com/younwookim/actorsim/internal/application/scene/playing"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
	"github.com/younwookim/actorsim/internal/infrastructure/persistence"
)

type flags struct {
	configDir string
	stage     string
	save      string
	record    string
	replay    string
	physics   string
	watch     bool
	verify    bool
	scale     int
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configDir, "config", "", "Config directory (default: embedded configs)")
	flag.StringVar(&f.stage, "stage", "demo", "Stage to load from stages/")
	flag.StringVar(&f.save, "save", "save.yaml", "Save file path")
	flag.StringVar(&f.record, "record", "", "Record input to file (e.g., -record replay.json)")
	flag.StringVar(&f.replay, "replay", "", "Play back a recording instead of reading the keyboard")
	flag.StringVar(&f.physics, "physics", bootstrap.Kinematic, "Physics backend: kinematic or chipmunk")
	flag.BoolVar(&f.watch, "watch", false, "Rebuild the session when files under -config change")
	flag.BoolVar(&f.verify, "verify", false, "With -replay, run the recording headless and print the result")
	flag.IntVar(&f.scale, "scale", 2, "Window scale")
	flag.Parse()
	return f
}

func newLoader(dir string) *config.Loader {
	if dir != "" {
		return config.NewLoader(dir)
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	return config.NewFSLoader(fsys, "configs")
}

func main() {
	f := parseFlags()
	logger := log.Default()
	loader := newLoader(f.configDir)

	var data *replay.Recording
	if f.replay != "" {
		var err error
		data, err = replay.Load(f.replay)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		if data.Stage != "" {
			f.stage = data.Stage
		}
	}

	if f.verify {
		if data == nil {
			log.Fatal("-verify needs -replay")
		}
		result, err := runHeadless(loader, data, f.physics)
		if err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		logReplayResult(logger, result)
		return
	}

	build := func() (scene.Scene, int, int, error) {
		opts := bootstrap.Options{
			Loader:  loader,
			Stage:   f.stage,
			Physics: f.physics,
			Store:   persistence.NewFileStore(f.save),
			Logger:  logger,
		}
		scn := playing.Options{StageID: f.stage, RecordPath: f.record, Logger: logger}
		if data != nil {
			// replays never touch the real save
			opts.Store = persistence.NewMemoryStore()
			opts.Tune = replayTuning(data)
			scn.RecordPath = ""
			scn.Replay = replay.NewReplayer(*data)
		}
		sess, cfg, err := bootstrap.Build(opts)
		if err != nil {
			return nil, 0, 0, err
		}
		scn.Simulation = cfg.Tuning.Simulation
		d := cfg.Tuning.Simulation.Display
		return playing.New(sess, scn), d.ScreenWidth, d.ScreenHeight, nil
	}

	first, w, h, err := build()
	if err != nil {
		log.Fatalf("Failed to build session: %v", err)
	}
	g := game.New(first, w, h)
	defer g.Close()

	if f.watch {
		stop := watchConfig(f.configDir, logger, func() {
			next, _, _, err := build()
			if err != nil {
				logger.Printf("Config reload rejected: %v", err)
				return
			}
			logger.Printf("Config reloaded")
			g.Replace(next)
		})
		defer stop()
	}

	ebiten.SetWindowSize(w*f.scale, h*f.scale)
	ebiten.SetWindowTitle("actorsim - " + f.stage)
	if data != nil {
		ebiten.SetWindowTitle("actorsim - replay " + filepath.Base(f.replay))
	}
	ebiten.SetTPS(ebiten.DefaultTPS)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// watchConfig calls reload after every change under dir and its stages and
// scripts subdirectories. The returned func stops watching.
func watchConfig(dir string, logger *log.Logger, reload func()) func() {
	if dir == "" {
		logger.Printf("-watch needs -config; embedded configs cannot change")
		return func() {}
	}
	dirs := []string{dir}
	for _, sub := range []string{"stages", "scripts"} {
		p := filepath.Join(dir, sub)
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			dirs = append(dirs, p)
		}
	}
	w, err := config.NewWatcher(dirs...)
	if err != nil {
		logger.Printf("Config watch disabled: %v", err)
		return func() {}
	}

	go func() {
		for {
			select {
			case name, ok := <-w.Events:
				if !ok {
					return
				}
				logger.Printf("Config changed: %s", name)
				reload()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Printf("Config watch error: %v", err)
			}
		}
	}()
	return func() { _ = w.Close() }
}
