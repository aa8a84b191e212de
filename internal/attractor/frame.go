package attractor

import "github.com/go-gl/mathgl/mgl32"

// degenerateSeed is the squared length below which tangent × X is considered
// too short to seed the frame, and the Y axis is used instead.
const degenerateSeed = 0.3

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
)

// RingFrame is the local frame a section is placed in. P1 and P2 span the
// plane of the ring; both are unit length and perpendicular to Tangent.
//
// Every frame is derived from its own tangent and a fixed world axis. Frames
// are not carried from one segment to the next, so the ring can twist where
// the trajectory turns sharply.
type RingFrame struct {
	Tangent mgl32.Vec3
	P1      mgl32.Vec3
	P2      mgl32.Vec3
}

// NewRingFrame derives a frame from a segment direction. The result is not ok
// when the direction is zero or parallel to both seed axes.
func NewRingFrame(tangent mgl32.Vec3) (RingFrame, bool) {
	p1 := tangent.Cross(axisX)
	if p1.Dot(p1) < degenerateSeed {
		p1 = tangent.Cross(axisY)
	}
	if p1.Dot(p1) == 0 {
		return RingFrame{}, false
	}
	p1 = p1.Normalize()

	p2 := tangent.Cross(p1)
	if p2.Dot(p2) == 0 {
		return RingFrame{}, false
	}

	return RingFrame{Tangent: tangent, P1: p1, P2: p2.Normalize()}, true
}

// Place writes the section, scaled by radius and centered on center, into dst.
// dst must have room for len(section) points.
func (f RingFrame) Place(dst []mgl32.Vec3, center mgl32.Vec3, section Section, radius float32) {
	for k, s := range section {
		dst[k] = center.
			Add(f.P1.Mul(radius * s.X())).
			Add(f.P2.Mul(radius * s.Y()))
	}
}

// fallbackFrame is used when the very first segment has no usable direction.
var fallbackFrame = RingFrame{
	Tangent: mgl32.Vec3{0, 0, 1},
	P1:      axisX,
	P2:      axisY,
}
