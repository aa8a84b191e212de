package attractor

import "github.com/go-gl/mathgl/mgl32"

// Transform places a model in the world. The composed matrix is always
// translate * rotate * scale and is rebuilt by every setter.
type Transform struct {
	position mgl32.Vec3
	scale    mgl32.Vec3
	rotation mgl32.Quat
	matrix   mgl32.Mat4
}

// NewTransform returns the identity placement.
func NewTransform() Transform {
	t := Transform{
		scale:    mgl32.Vec3{1, 1, 1},
		rotation: mgl32.QuatIdent(),
	}
	t.update()
	return t
}

// EulerQuat builds a rotation from angles about X, Y and Z (radians).
// X is applied first, then Y, then Z.
func EulerQuat(angles mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(angles.X(), axisX)
	qy := mgl32.QuatRotate(angles.Y(), axisY)
	qz := mgl32.QuatRotate(angles.Z(), mgl32.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}

// MoveTo sets the position.
func (t *Transform) MoveTo(pos mgl32.Vec3) {
	t.position = pos
	t.update()
}

// MoveBy offsets the position.
func (t *Transform) MoveBy(delta mgl32.Vec3) {
	t.position = t.position.Add(delta)
	t.update()
}

// ScaleTo sets per-axis scale factors.
func (t *Transform) ScaleTo(factors mgl32.Vec3) {
	t.scale = factors
	t.update()
}

// ScaleBy multiplies the scale factors component-wise.
func (t *Transform) ScaleBy(factors mgl32.Vec3) {
	t.scale = mgl32.Vec3{
		t.scale.X() * factors.X(),
		t.scale.Y() * factors.Y(),
		t.scale.Z() * factors.Z(),
	}
	t.update()
}

// RotateTo replaces the rotation with the given Euler angles.
func (t *Transform) RotateTo(angles mgl32.Vec3) {
	t.rotation = EulerQuat(angles)
	t.update()
}

// RotateBy composes the current rotation with the given Euler angles as
// current * delta, so the delta is applied in the model's local frame.
//
// TODO: decide between local (current*delta) and world (delta*current)
// composition once the rotation controls use RotateBy; the viewer drives
// absolute angles through RotateTo for now.
func (t *Transform) RotateBy(angles mgl32.Vec3) {
	t.rotation = t.rotation.Mul(EulerQuat(angles))
	t.update()
}

// Position returns the current position.
func (t *Transform) Position() mgl32.Vec3 { return t.position }

// Scale returns the current scale factors.
func (t *Transform) Scale() mgl32.Vec3 { return t.scale }

// Rotation returns the current rotation.
func (t *Transform) Rotation() mgl32.Quat { return t.rotation }

// Matrix returns the composed model matrix.
func (t *Transform) Matrix() mgl32.Mat4 { return t.matrix }

func (t *Transform) update() {
	translate := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	rotate := t.rotation.Mat4()
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	t.matrix = translate.Mul4(rotate).Mul4(scale)
}
