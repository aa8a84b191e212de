// Package controls holds the keyboard-driven viewer state: which attractor
// is selected, scrub time, color, radius and rotation. It has no SDL or GL
// dependency; the viewer maps physical keys to Actions.
package controls

// Action is a symbolic input the viewer reacts to.
type Action int

const (
	MoveForward Action = iota
	MoveBackward
	MoveLeft
	MoveRight

	SelectFirst
	SelectSecond
	SelectBoth

	TimeBackward
	TimeForward
	StepDown
	StepUp

	RedUp
	GreenUp
	BlueUp
	AlphaUp
	RedDown
	GreenDown
	BlueDown
	AlphaDown

	RadiusUp
	RadiusDown

	RotateXUp
	RotateXDown
	RotateYUp
	RotateYDown
	RotateZUp
	RotateZDown

	Screenshot
	Quit

	ActionCount
)

var actionNames = [ActionCount]string{
	MoveForward:  "move_forward",
	MoveBackward: "move_backward",
	MoveLeft:     "move_left",
	MoveRight:    "move_right",
	SelectFirst:  "select_first",
	SelectSecond: "select_second",
	SelectBoth:   "select_both",
	TimeBackward: "time_backward",
	TimeForward:  "time_forward",
	StepDown:     "step_down",
	StepUp:       "step_up",
	RedUp:        "red_up",
	GreenUp:      "green_up",
	BlueUp:       "blue_up",
	AlphaUp:      "alpha_up",
	RedDown:      "red_down",
	GreenDown:    "green_down",
	BlueDown:     "blue_down",
	AlphaDown:    "alpha_down",
	RadiusUp:     "radius_up",
	RadiusDown:   "radius_down",
	RotateXUp:    "rotate_x_up",
	RotateXDown:  "rotate_x_down",
	RotateYUp:    "rotate_y_up",
	RotateYDown:  "rotate_y_down",
	RotateZUp:    "rotate_z_up",
	RotateZDown:  "rotate_z_down",
	Screenshot:   "screenshot",
	Quit:         "quit",
}

// String returns the config name of the action.
func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction resolves a config name such as "time_forward".
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return 0, false
}

// KeyState reports which actions are held down this frame.
type KeyState interface {
	Held(a Action) bool
}

// HeldSet is a KeyState backed by a set of actions.
type HeldSet map[Action]bool

// Held implements KeyState.
func (h HeldSet) Held(a Action) bool { return h[a] }
