package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/attractor-viewer/internal/config"
	"github.com/Faultbox/attractor-viewer/internal/logger"
)

// Filter selects which attractors the adjustment keys act on.
type Filter int

const (
	FilterFirst Filter = iota
	FilterSecond
	FilterBoth
)

func (f Filter) String() string {
	switch f {
	case FilterFirst:
		return "first"
	case FilterSecond:
		return "second"
	default:
		return "both"
	}
}

// covers reports whether attractor i (0 or 1) is selected.
func (f Filter) covers(i int) bool {
	return f == FilterBoth || int(f) == i
}

const twoPi = 2 * math.Pi

// Attractor is the adjustable state of one attractor.
type Attractor struct {
	Time     int        // visible segment count
	Color    mgl32.Vec4 // RGBA, each channel in [0, 1]
	Radius   float32
	Rotation mgl32.Vec3 // Euler angles in radians, each in [0, 2π)
}

// Changes reports what Apply modified, per attractor.
type Changes struct {
	Color    [2]bool
	Radius   [2]bool
	Rotation [2]bool
	Time     [2]bool
	Filter   bool
}

// Controls is the keyboard state machine for both attractors.
type Controls struct {
	settings config.ControlsConfig

	filter     Filter
	step       int
	attractors [2]Attractor
}

// New creates controls with both attractors at the start of their
// trajectories and the given initial colors.
func New(settings config.ControlsConfig, first, second mgl32.Vec4) *Controls {
	c := &Controls{
		settings: settings,
		filter:   FilterBoth,
		step:     clampInt(settings.TimeStep, settings.MinTimeStep, settings.MaxTimeStep),
	}
	radius := mgl32.Clamp(settings.Radius, settings.MinRadius, settings.MaxRadius)
	for i, col := range [2]mgl32.Vec4{first, second} {
		c.attractors[i] = Attractor{
			Time:   settings.MinTime,
			Color:  clampColor(col),
			Radius: radius,
		}
	}
	return c
}

// Filter returns the current selection.
func (c *Controls) Filter() Filter { return c.filter }

// Step returns the scrub step.
func (c *Controls) Step() int { return c.step }

// Attractor returns the state of attractor i (0 or 1).
func (c *Controls) Attractor(i int) Attractor { return c.attractors[i] }

// Apply updates the state from the keys held this frame. Every held key
// takes effect once per call, so holding a key repeats it every frame.
// Values are clamped or wrapped into range, never rejected.
func (c *Controls) Apply(keys KeyState) Changes {
	var ch Changes

	switch {
	case keys.Held(SelectFirst):
		ch.Filter = c.setFilter(FilterFirst)
	case keys.Held(SelectSecond):
		ch.Filter = c.setFilter(FilterSecond)
	case keys.Held(SelectBoth):
		ch.Filter = c.setFilter(FilterBoth)
	}

	s := c.settings
	if keys.Held(StepUp) {
		c.step = clampInt(c.step+1, s.MinTimeStep, s.MaxTimeStep)
	}
	if keys.Held(StepDown) {
		c.step = clampInt(c.step-1, s.MinTimeStep, s.MaxTimeStep)
	}

	var dt int
	if keys.Held(TimeForward) {
		dt += c.step
	}
	if keys.Held(TimeBackward) {
		dt -= c.step
	}

	var dc mgl32.Vec4
	for k, up := range [4]Action{RedUp, GreenUp, BlueUp, AlphaUp} {
		if keys.Held(up) {
			dc[k] += s.ColorDelta
		}
	}
	for k, down := range [4]Action{RedDown, GreenDown, BlueDown, AlphaDown} {
		if keys.Held(down) {
			dc[k] -= s.ColorDelta
		}
	}

	var dr float32
	if keys.Held(RadiusUp) {
		dr += s.RadiusDelta
	}
	if keys.Held(RadiusDown) {
		dr -= s.RadiusDelta
	}

	var drot mgl32.Vec3
	for axis, pair := range [3][2]Action{{RotateXUp, RotateXDown}, {RotateYUp, RotateYDown}, {RotateZUp, RotateZDown}} {
		if keys.Held(pair[0]) {
			drot[axis] += s.RotationDelta
		}
		if keys.Held(pair[1]) {
			drot[axis] -= s.RotationDelta
		}
	}

	for i := range c.attractors {
		if !c.filter.covers(i) {
			continue
		}
		a := &c.attractors[i]

		if dt != 0 {
			t := clampInt(a.Time+dt, s.MinTime, s.MaxTime)
			ch.Time[i] = t != a.Time
			a.Time = t
		}
		if dc != (mgl32.Vec4{}) {
			col := clampColor(a.Color.Add(dc))
			ch.Color[i] = col != a.Color
			a.Color = col
		}
		if dr != 0 {
			r := mgl32.Clamp(a.Radius+dr, s.MinRadius, s.MaxRadius)
			ch.Radius[i] = r != a.Radius
			a.Radius = r
		}
		if drot != (mgl32.Vec3{}) {
			a.Rotation = wrapAngles(a.Rotation.Add(drot))
			ch.Rotation[i] = true
		}
	}

	return ch
}

func (c *Controls) setFilter(f Filter) bool {
	if c.filter == f {
		return false
	}
	logger.Debug("attractor filter changed", zap.Stringer("filter", f))
	c.filter = f
	return true
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampColor(c mgl32.Vec4) mgl32.Vec4 {
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	return c
}

// wrapAngle maps an angle in radians into [0, 2π).
func wrapAngle(a float32) float32 {
	w := math.Mod(float64(a), twoPi)
	if w < 0 {
		w += twoPi
	}
	if float32(w) >= twoPi {
		return 0
	}
	return float32(w)
}

func wrapAngles(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{wrapAngle(v[0]), wrapAngle(v[1]), wrapAngle(v[2])}
}
