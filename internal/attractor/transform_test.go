package attractor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertMat4InDelta(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}

func TestNewTransformIsIdentity(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, mgl32.Ident4(), tr.Matrix())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tr.Scale())
}

func TestTransformComposition(t *testing.T) {
	tr := NewTransform()
	tr.MoveTo(mgl32.Vec3{1, 2, 3})
	tr.ScaleTo(mgl32.Vec3{2, 3, 4})
	tr.RotateTo(mgl32.Vec3{0, 0, math.Pi / 2})

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DZ(math.Pi / 2)).
		Mul4(mgl32.Scale3D(2, 3, 4))
	assertMat4InDelta(t, want, tr.Matrix())

	// Scale first, then rotate, then translate.
	p := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-5)
	assert.InDelta(t, 4, p.Y(), 1e-5)
	assert.InDelta(t, 3, p.Z(), 1e-5)
}

func TestTransformRelativeSetters(t *testing.T) {
	tr := NewTransform()
	tr.MoveBy(mgl32.Vec3{1, 0, 0})
	tr.MoveBy(mgl32.Vec3{0, 2, 0})
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, tr.Position())

	tr.ScaleBy(mgl32.Vec3{2, 2, 2})
	tr.ScaleBy(mgl32.Vec3{1, 0.5, 3})
	assert.Equal(t, mgl32.Vec3{2, 1, 6}, tr.Scale())

	// Matrix follows every setter.
	assertMat4InDelta(t, mgl32.Translate3D(1, 2, 0).Mul4(mgl32.Scale3D(2, 1, 6)), tr.Matrix())
}

func TestEulerQuatOrder(t *testing.T) {
	angles := mgl32.Vec3{0.3, -0.7, 1.1}
	want := mgl32.HomogRotate3DZ(1.1).
		Mul4(mgl32.HomogRotate3DY(-0.7)).
		Mul4(mgl32.HomogRotate3DX(0.3))
	assertMat4InDelta(t, want, EulerQuat(angles).Mat4())
}

func TestRotateByAccumulatesSingleAxis(t *testing.T) {
	tr := NewTransform()
	tr.RotateBy(mgl32.Vec3{0, 0.4, 0})
	tr.RotateBy(mgl32.Vec3{0, 0.6, 0})

	assertMat4InDelta(t, mgl32.HomogRotate3DY(1.0), tr.Matrix())
}

func TestRotateByComposesOnTheRight(t *testing.T) {
	tr := NewTransform()
	tr.RotateTo(mgl32.Vec3{0.5, 0, 0})
	tr.RotateBy(mgl32.Vec3{0, 0, 0.5})

	want := mgl32.HomogRotate3DX(0.5).Mul4(mgl32.HomogRotate3DZ(0.5))
	assertMat4InDelta(t, want, tr.Matrix())
}
