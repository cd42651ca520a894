package playing

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/actorsim/internal/application/replay"
	"github.com/younwookim/actorsim/internal/application/scene"
	"github.com/younwookim/actorsim/internal/application/session"
	"github.com/younwookim/actorsim/internal/application/state"
	"github.com/younwookim/actorsim/internal/application/system"
	"github.com/younwookim/actorsim/internal/domain/entity"
	"github.com/younwookim/actorsim/internal/infrastructure/config"
)

// Colors
var (
	colorWall       = color.RGBA{80, 80, 100, 255}
	colorCheckpoint = color.RGBA{80, 160, 220, 120}
	colorErrorPoint = color.RGBA{160, 120, 220, 120}
	colorDamage     = color.RGBA{220, 140, 40, 140}
	colorHazard     = color.RGBA{200, 50, 50, 160}
	colorPlayer     = color.RGBA{100, 200, 100, 255}
	colorHealing    = color.RGBA{150, 255, 180, 255}
	colorHitbox     = color.RGBA{255, 240, 120, 128}
	colorTint       = color.RGBA{255, 255, 255, 220}
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorEnemy      = color.RGBA{200, 100, 100, 255}
	colorLunge      = color.RGBA{240, 60, 60, 255}
	colorItem       = color.RGBA{255, 215, 0, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
)

const (
	itemSize     = 0.5
	minTimeScale = 0.125
	maxTimeScale = 4
)

// Options configure a Playing scene
type Options struct {
	Simulation config.SimulationConfig
	StageID    string           // stage file name written into recordings
	RecordPath string           // non-empty records live input to this file
	Replay     *replay.Replayer // non-nil plays a recording instead of the keyboard
	Logger     *log.Logger
}

// Playing drives a session from the keyboard or a replay and draws it
type Playing struct {
	sess        *session.Session
	state       state.ViewState
	resumeState state.ViewState
	cam         *camera
	screenW     int
	screenH     int
	frame       session.Frame
	logger      *log.Logger

	// Input recording
	recorder       *replay.Recorder
	recordFilename string

	// Replay playback
	replayer    *replay.Replayer
	replayClock *session.Clock
}

// New creates a Playing scene over sess. The session is started on the
// first Update if the caller has not started it.
func New(sess *session.Session, opts Options) *Playing {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	display := opts.Simulation.Display

	p := &Playing{
		sess:           sess,
		state:          state.StatePlaying,
		resumeState:    state.StatePlaying,
		cam:            newCamera(display.ScreenWidth, display.ScreenHeight, display.PixelsPerUnit),
		screenW:        display.ScreenWidth,
		screenH:        display.ScreenHeight,
		logger:         logger,
		recordFilename: opts.RecordPath,
	}

	if opts.Replay != nil {
		p.replayer = opts.Replay
		p.replayClock = session.NewClock(opts.Simulation.FixedStep, opts.Simulation.MaxStepsPerUpdate)
		p.state = state.StateReplaying
		p.resumeState = state.StateReplaying
	} else if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(opts.StageID, opts.Simulation.FixedStep)
		p.recorder.Attach(&sess.InputConsumed)
		logger.Printf("Recording enabled: %s", opts.RecordPath)
	}

	return p
}

// State returns what the scene is doing
func (p *Playing) State() state.ViewState {
	return p.state
}

// Frame returns the last observed session state
func (p *Playing) Frame() session.Frame {
	return p.frame
}

// Update proceeds the session (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if !p.sess.Started() {
		if err := p.sess.Start(); err != nil {
			return nil, fmt.Errorf("failed to start session: %w", err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		p.scaleTime(0.5)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		p.scaleTime(2)
	}
	// F5: save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		p.saveRecording()
	}
	// F9: wipe the save and start over
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) && p.replayer == nil {
		if err := p.sess.ResetSave(); err != nil {
			p.logger.Printf("Failed to reset save: %v", err)
		}
	}

	switch p.state {
	case state.StatePlaying:
		p.sess.Submit(readKeyboard())
		p.sess.Update(dt)
	case state.StateReplaying:
		if err := p.updateReplay(dt); err != nil {
			return nil, err
		}
	}

	p.frame = p.sess.Snapshot()
	return nil, nil // nil = stay on this scene
}

func (p *Playing) updateReplay(dt float64) error {
	n := p.replayClock.Advance(dt)
	for i := 0; i < n; i++ {
		ok, err := p.replayer.Play(p.sess)
		if err != nil {
			return err
		}
		if !ok {
			p.state = state.StateReplayFinished
			p.logger.Printf("Replay finished after %d frames", p.replayer.Len())
			return nil
		}
	}
	return nil
}

func (p *Playing) togglePause() {
	switch p.state {
	case state.StatePlaying, state.StateReplaying:
		p.resumeState = p.state
		p.state = state.StatePaused
		p.sess.Pause()
	case state.StatePaused:
		p.state = p.resumeState
		p.sess.Resume()
	}
}

func (p *Playing) scaleTime(factor float64) {
	scale := math.Max(minTimeScale, math.Min(p.sess.TimeScale()*factor, maxTimeScale))
	p.sess.SetTimeScale(scale)
	if p.replayClock != nil {
		p.replayClock.SetScale(scale)
	}
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.Active() {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.Filename(time.Now())
	}

	if err := p.recorder.WriteFile(filename); err != nil {
		p.logger.Printf("Failed to save recording: %v", err)
	} else {
		p.logger.Printf("Recording saved: %s (%d frames)", filename, p.recorder.Len())
	}
}

// Draw renders the session
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	stage := p.sess.Stage()
	p.cam.follow(p.frame.Player.Position, stage.Width, stage.Height)

	p.drawStage(screen, stage)
	p.drawItems(screen)
	p.drawEnemies(screen)
	p.drawPlayer(screen)

	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawPauseOverlay(screen)
	case state.StateReplayFinished:
		p.drawReplayOverlay(screen)
	}
}

func (p *Playing) fillRect(screen *ebiten.Image, r entity.Rect, c color.Color) {
	x, y, w, h := p.cam.rect(r.Center.X, r.Center.Y, r.Size.X, r.Size.Y)
	ebitenutil.DrawRect(screen, x, y, w, h, c)
}

func (p *Playing) drawStage(screen *ebiten.Image, stage *entity.Stage) {
	for _, s := range stage.Solids {
		p.fillRect(screen, s.Rect, colorWall)
	}
	for _, z := range stage.Zones {
		var c color.Color
		switch z.Kind {
		case entity.ZoneCheckpoint:
			c = colorCheckpoint
		case entity.ZoneErrorCheckpoint:
			c = colorErrorPoint
		case entity.ZoneDamage:
			c = colorDamage
		default:
			c = colorHazard
		}
		p.fillRect(screen, z.Rect, c)
	}
}

func (p *Playing) drawItems(screen *ebiten.Image) {
	for _, it := range p.frame.Items {
		x, y, w, h := p.cam.rect(it.Position.X, it.Position.Y, itemSize, itemSize)
		ebitenutil.DrawRect(screen, x, y, w, h, colorItem)
	}
}

func (p *Playing) drawEnemies(screen *ebiten.Image) {
	for _, e := range p.frame.Enemies {
		c := colorEnemy
		if e.Phase == system.LungeStrike.String() {
			c = colorLunge
		}
		if e.Tinted {
			c = colorTint
		}
		x, y, w, h := p.cam.rect(e.Position.X, e.Position.Y, e.Size.X, e.Size.Y)
		ebitenutil.DrawRect(screen, x, y, w, h, c)
		ebitenutil.DebugPrintAt(screen, e.Mode, int(x), int(y)-14)
	}
}

func (p *Playing) drawPlayer(screen *ebiten.Image) {
	pl := p.frame.Player
	c := colorPlayer
	if pl.Healing {
		c = colorHealing
	}
	if pl.Tinted {
		c = colorTint
	}
	x, y, w, h := p.cam.rect(pl.Position.X, pl.Position.Y, pl.Size.X, pl.Size.Y)
	ebitenutil.DrawRect(screen, x, y, w, h, c)

	// facing marker
	eye := x + w*0.7
	if pl.Facing < 0 {
		eye = x + w*0.3 - 2
	}
	ebitenutil.DrawRect(screen, eye, y+h*0.2, 2, 2, colorBG)

	if hb := pl.Hitbox; hb != nil {
		hx, hy, hw, hh := p.cam.rect(hb.X, hb.Y, hb.W, hb.H)
		ebitenutil.DrawRect(screen, hx, hy, hw, hh, colorHitbox)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	pl := p.frame.Player

	// Health bar
	barX := 10.0
	barY := float64(p.screenH - 20)
	barW := 100.0
	barH := 10.0

	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorHealthBG)

	healthRatio := 0.0
	if pl.MaxHealth > 0 {
		healthRatio = math.Max(0, float64(pl.Health)/float64(pl.MaxHealth))
	}
	ebitenutil.DrawRect(screen, barX, barY, barW*healthRatio, barH, colorHealthFG)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d/%d", pl.Health, pl.MaxHealth), int(barX+barW+6), int(barY)-3)

	status := fmt.Sprintf("Items: %v", pl.Inventory)
	if pl.Effect != "" {
		status += fmt.Sprintf("  %s %.1fs", pl.Effect, pl.EffectLeft)
	}
	ebitenutil.DebugPrintAt(screen, status, 10, p.screenH-35)

	st := p.frame.Stats
	info := fmt.Sprintf("%s  tick %d  x%.3g  time %.1fs  kills %d  hits %d  deaths %d",
		p.state, p.frame.Tick, p.sess.TimeScale(), st.PlayTime, st.EnemiesDefeated, st.HitsTaken, st.Deaths)
	if p.replayer != nil {
		info += fmt.Sprintf("  replay %d/%d", p.replayer.Pos(), p.replayer.Len())
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 16)

	// Controls
	debugText := "A/D: Move | W/S: Aim | Space: Jump | Shift: Glide | J: Attack | H: Heal | 1-5: Item | -/=: Speed | ESC: Pause"
	ebitenutil.DebugPrint(screen, debugText)
}

func (p *Playing) drawPauseOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

func (p *Playing) drawReplayOverlay(screen *ebiten.Image) {
	overlay := color.RGBA{0, 0, 60, 140}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)

	text := fmt.Sprintf("REPLAY FINISHED\n\n%d frames", p.replayer.Len())
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-30)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.frame = p.sess.Snapshot()
}

// OnExit saves the recording and stops observing the session
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.recorder != nil {
		p.recorder.Stop()
	}
}

// Layout returns the scene's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
