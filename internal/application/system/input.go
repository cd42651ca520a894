package system

// InputFrame is the player intent for one fixed tick. Pressed/released flags
// are edges; Glide and Heal are held states.
type InputFrame struct {
	MoveX        float64 `json:"x,omitempty"`
	MoveY        float64 `json:"y,omitempty"`
	JumpPressed  bool    `json:"jp,omitempty"`
	JumpReleased bool    `json:"jr,omitempty"`
	Glide        bool    `json:"g,omitempty"`
	Attack       bool    `json:"a,omitempty"`
	Heal         bool    `json:"h,omitempty"`
	UseItem      int     `json:"u,omitempty"` // 1-based inventory slot, 0 for none
}

// Latch merges a newer frame into f. Axes and held states take the newer
// value; edges stay set until the frame is consumed.
func (f InputFrame) Latch(next InputFrame) InputFrame {
	out := next
	out.JumpPressed = f.JumpPressed || next.JumpPressed
	out.JumpReleased = f.JumpReleased || next.JumpReleased
	out.Attack = f.Attack || next.Attack
	if out.UseItem == 0 {
		out.UseItem = f.UseItem
	}
	return out
}

// Held drops the edges, keeping axes and held states
func (f InputFrame) Held() InputFrame {
	return InputFrame{MoveX: f.MoveX, MoveY: f.MoveY, Glide: f.Glide, Heal: f.Heal}
}
