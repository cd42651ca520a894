package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/actorsim/internal/application/system"
)

// Version is written into every recording
const Version = "2.0"

var (
	// ErrEmpty is returned when writing a recording without ticks
	ErrEmpty = errors.New("recording has no ticks")
	// ErrInvalid is returned for recordings that cannot be played back
	ErrInvalid = errors.New("invalid recording")
)

// Tick is the input consumed by one fixed tick
type Tick struct {
	N int `json:"f"`
	system.InputFrame
}

// Recording is everything needed to replay a run
type Recording struct {
	Version   string  `json:"version"`
	Stage     string  `json:"stage"`
	FixedStep float64 `json:"fixedStep"`
	StartTime string  `json:"startTime"`
	Frames    []Tick  `json:"frames"`
}

// Repeat returns a recording on stage that holds in for n ticks
func Repeat(stage string, n int, in system.InputFrame) Recording {
	rec := Recording{
		Version:   Version,
		Stage:     stage,
		FixedStep: 0.02,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]Tick, n),
	}
	for i := range rec.Frames {
		rec.Frames[i] = Tick{N: i, InputFrame: in}
	}
	return rec
}

// Validate checks the tick length and that ticks are numbered from zero
func (r *Recording) Validate() error {
	if r.FixedStep <= 0 {
		return fmt.Errorf("%w: fixed step %v", ErrInvalid, r.FixedStep)
	}
	for i, t := range r.Frames {
		if t.N != i {
			return fmt.Errorf("%w: tick %d numbered %d", ErrInvalid, i, t.N)
		}
	}
	return nil
}

// Encode writes r as indented JSON
func (r *Recording) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}
	return nil
}

// WriteFile encodes r into path
func (r *Recording) WriteFile(path string) (err error) {
	if len(r.Frames) == 0 {
		return ErrEmpty
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create recording: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return r.Encode(f)
}

// Decode reads and validates a recording
func Decode(rd io.Reader) (*Recording, error) {
	var r Recording
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode recording: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads a recording from path
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Filename names a recording started at t
func Filename(t time.Time) string {
	return "replay_" + t.Format("20060102_150405") + ".json"
}
