package replay

import (
	"time"

	"github.com/younwookim/actorsim/internal/application/system"
	"github.com/younwookim/actorsim/internal/domain/entity"
)

// Recorder collects the input a session consumes, one entry per tick
type Recorder struct {
	rec    Recording
	active bool
	detach func()
}

// NewRecorder starts a recording of stage at fixedStep
func NewRecorder(stage string, fixedStep float64) *Recorder {
	return &Recorder{
		rec: Recording{
			Version:   Version,
			Stage:     stage,
			FixedStep: fixedStep,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]Tick, 0, 3000),
		},
		active: true,
	}
}

// Attach records every value emitted on feed until Stop
func (r *Recorder) Attach(feed *entity.Feed[system.InputFrame]) {
	if r.detach != nil {
		r.detach()
	}
	r.detach = feed.Subscribe(r.Record)
}

// Record appends one tick of input
func (r *Recorder) Record(in system.InputFrame) {
	if !r.active {
		return
	}
	r.rec.Frames = append(r.rec.Frames, Tick{N: len(r.rec.Frames), InputFrame: in})
}

// Stop ends the recording and detaches from any feed
func (r *Recorder) Stop() {
	r.active = false
	if r.detach != nil {
		r.detach()
		r.detach = nil
	}
}

// Active is false after Stop
func (r *Recorder) Active() bool {
	return r.active
}

// Len returns the number of recorded ticks
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Recording returns what has been recorded so far
func (r *Recorder) Recording() Recording {
	return r.rec
}

// WriteFile saves the recording to path
func (r *Recorder) WriteFile(path string) error {
	return r.rec.WriteFile(path)
}
