package replay

import (
	"fmt"

	"github.com/younwookim/actorsim/internal/application/system"
)

// Driver is the part of a session a replay feeds
type Driver interface {
	Submit(system.InputFrame)
	Step() error
}

// Replayer walks a recording tick by tick
type Replayer struct {
	rec Recording
	pos int
}

// NewReplayer plays rec from its first tick
func NewReplayer(rec Recording) *Replayer {
	return &Replayer{rec: rec}
}

// Next returns the input of the next tick, or false at the end
func (r *Replayer) Next() (system.InputFrame, bool) {
	if r.Done() {
		return system.InputFrame{}, false
	}
	in := r.rec.Frames[r.pos].InputFrame
	r.pos++
	return in, true
}

// Play submits the next recorded input to d and runs one tick on it.
// It returns false once the recording is exhausted.
func (r *Replayer) Play(d Driver) (bool, error) {
	in, ok := r.Next()
	if !ok {
		return false, nil
	}
	d.Submit(in)
	if err := d.Step(); err != nil {
		return false, fmt.Errorf("replay tick %d: %w", r.pos-1, err)
	}
	return true, nil
}

// Done reports whether every tick has been played
func (r *Replayer) Done() bool { return r.pos >= len(r.rec.Frames) }

// Pos returns how many ticks have been played
func (r *Replayer) Pos() int { return r.pos }

// Len returns the number of recorded ticks
func (r *Replayer) Len() int { return len(r.rec.Frames) }

// Stage returns the stage the recording was made on
func (r *Replayer) Stage() string { return r.rec.Stage }

// FixedStep returns the tick length the recording was made with
func (r *Replayer) FixedStep() float64 { return r.rec.FixedStep }

// Rewind moves back to the first tick
func (r *Replayer) Rewind() {
	r.pos = 0
}
