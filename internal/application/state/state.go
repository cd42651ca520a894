package state

// ViewState is what the viewer scene is currently doing
type ViewState int

const (
	StatePlaying ViewState = iota
	StatePaused
	StateReplaying
	StateReplayFinished
)

var viewStateNames = [...]string{
	StatePlaying:        "Playing",
	StatePaused:         "Paused",
	StateReplaying:      "Replaying",
	StateReplayFinished: "ReplayFinished",
}

// String returns the state name shown in the viewer
func (s ViewState) String() string {
	if s < 0 || int(s) >= len(viewStateNames) {
		return "Unknown"
	}
	return viewStateNames[s]
}

// Live reports whether the simulation advances in this state
func (s ViewState) Live() bool {
	return s == StatePlaying || s == StateReplaying
}
