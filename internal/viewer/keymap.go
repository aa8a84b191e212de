package viewer

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/attractor-viewer/internal/config"
	"github.com/Faultbox/attractor-viewer/internal/viewer/controls"
)

// Keymap binds every action to one physical key.
type Keymap [controls.ActionCount]sdl.Scancode

// DefaultKeymap returns the stock bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		controls.MoveForward:  sdl.SCANCODE_W,
		controls.MoveBackward: sdl.SCANCODE_S,
		controls.MoveLeft:     sdl.SCANCODE_A,
		controls.MoveRight:    sdl.SCANCODE_D,

		controls.SelectFirst:  sdl.SCANCODE_1,
		controls.SelectSecond: sdl.SCANCODE_2,
		controls.SelectBoth:   sdl.SCANCODE_3,

		controls.TimeBackward: sdl.SCANCODE_Q,
		controls.TimeForward:  sdl.SCANCODE_E,
		controls.StepDown:     sdl.SCANCODE_Z,
		controls.StepUp:       sdl.SCANCODE_X,

		controls.RedUp:     sdl.SCANCODE_F1,
		controls.GreenUp:   sdl.SCANCODE_F2,
		controls.BlueUp:    sdl.SCANCODE_F3,
		controls.AlphaUp:   sdl.SCANCODE_F4,
		controls.RedDown:   sdl.SCANCODE_F5,
		controls.GreenDown: sdl.SCANCODE_F6,
		controls.BlueDown:  sdl.SCANCODE_F7,
		controls.AlphaDown: sdl.SCANCODE_F8,

		controls.RadiusUp:   sdl.SCANCODE_F9,
		controls.RadiusDown: sdl.SCANCODE_F10,

		controls.RotateXUp:   sdl.SCANCODE_I,
		controls.RotateXDown: sdl.SCANCODE_K,
		controls.RotateYUp:   sdl.SCANCODE_J,
		controls.RotateYDown: sdl.SCANCODE_L,
		controls.RotateZUp:   sdl.SCANCODE_U,
		controls.RotateZDown: sdl.SCANCODE_O,

		controls.Screenshot: sdl.SCANCODE_F12,
		controls.Quit:       sdl.SCANCODE_ESCAPE,
	}
}

// NewKeymap applies overrides (action name -> SDL key name, e.g.
// "time_forward": "Right") on top of the defaults. Unknown action or key
// names are rejected with config.ErrInvalid.
func NewKeymap(overrides map[string]string) (Keymap, error) {
	km := DefaultKeymap()
	for action, key := range overrides {
		a, ok := controls.ParseAction(action)
		if !ok {
			return km, fmt.Errorf("%w: unknown action %q", config.ErrInvalid, action)
		}
		sc := sdl.GetScancodeFromName(key)
		if sc == sdl.SCANCODE_UNKNOWN {
			return km, fmt.Errorf("%w: unknown key %q for %s", config.ErrInvalid, key, action)
		}
		km[a] = sc
	}
	return km, nil
}

// Action returns the action bound to sc, if any.
func (km *Keymap) Action(sc sdl.Scancode) (controls.Action, bool) {
	for a, bound := range km {
		if bound == sc {
			return controls.Action(a), true
		}
	}
	return 0, false
}

// keyState adapts a polled key table to controls.KeyState.
type keyState struct {
	keymap  *Keymap
	pressed func(sdl.Scancode) bool
}

func (k keyState) Held(a controls.Action) bool {
	return k.pressed(k.keymap[a])
}
