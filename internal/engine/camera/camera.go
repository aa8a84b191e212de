// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Movement is a keyboard movement direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Default fly camera settings.
const (
	DefaultYaw         = -90.0
	DefaultPitch       = 0.0
	DefaultSpeed       = 2.5
	DefaultSensitivity = 0.1
	DefaultZoom        = 45.0

	maxPitch = 89.0
)

// Zoom is the vertical field of view in degrees, kept within [MinZoom, MaxZoom].
const (
	MinZoom = 1.0
	MaxZoom = 45.0
)

// FlyCamera is a free-fly camera steered by yaw/pitch and moved along its own axes.
type FlyCamera struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	up       mgl32.Vec3
	right    mgl32.Vec3
	worldUp  mgl32.Vec3

	// Euler angles in degrees
	yaw   float32
	pitch float32

	// Options
	Speed       float32 // world units per second
	Sensitivity float32 // degrees per pixel
	zoom        float32 // vertical field of view, degrees

	// Last cursor sample; the first one only primes these.
	lastX, lastY float32
	firstMouse   bool
}

// NewFlyCamera creates a camera at position looking along yaw/pitch (degrees).
func NewFlyCamera(position mgl32.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		position:    position,
		front:       mgl32.Vec3{0, 0, -1},
		worldUp:     mgl32.Vec3{0, 1, 0},
		yaw:         yaw,
		pitch:       pitch,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		zoom:        DefaultZoom,
		firstMouse:  true,
	}
	c.updateVectors()
	return c
}

// ProcessKeyboard moves the camera along its front/right axes.
// dt is the elapsed frame time in seconds.
func (c *FlyCamera) ProcessKeyboard(dir Movement, dt float32) {
	velocity := c.Speed * dt
	switch dir {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by the cursor movement since the last
// sample. The first sample only records the cursor position.
func (c *FlyCamera) ProcessMouseMovement(x, y float32, constrainPitch bool) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}

	dx := (x - c.lastX) * c.Sensitivity
	dy := (c.lastY - y) * c.Sensitivity // screen y grows downwards
	c.lastX, c.lastY = x, y

	c.yaw += dx
	c.pitch += dy

	if constrainPitch {
		c.pitch = mgl32.Clamp(c.pitch, -maxPitch, maxPitch)
	}

	c.updateVectors()
}

// ProcessMouseScroll narrows or widens the field of view.
func (c *FlyCamera) ProcessMouseScroll(dy float32) {
	c.zoom = mgl32.Clamp(c.zoom-dy, MinZoom, MaxZoom)
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() mgl32.Vec3 { return c.position }

// Front returns the unit view direction.
func (c *FlyCamera) Front() mgl32.Vec3 { return c.front }

// Right returns the unit right direction.
func (c *FlyCamera) Right() mgl32.Vec3 { return c.right }

// Up returns the unit up direction of the view.
func (c *FlyCamera) Up() mgl32.Vec3 { return c.up }

// Yaw returns the yaw angle in degrees.
func (c *FlyCamera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch angle in degrees.
func (c *FlyCamera) Pitch() float32 { return c.pitch }

// Zoom returns the vertical field of view in degrees.
func (c *FlyCamera) Zoom() float32 { return c.zoom }

// SetZoom sets the vertical field of view in degrees, clamped to [1, 45].
func (c *FlyCamera) SetZoom(deg float32) {
	c.zoom = mgl32.Clamp(deg, MinZoom, MaxZoom)
}

// updateVectors rederives front/right/up from yaw and pitch.
func (c *FlyCamera) updateVectors() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))

	c.front = mgl32.Vec3{
		float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		float32(gomath.Sin(pitch)),
		float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.worldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
