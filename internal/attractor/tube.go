package attractor

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/attractor-viewer/internal/engine/gpu"
	"github.com/Faultbox/attractor-viewer/internal/logger"
)

// DefaultRadius is the tube radius a new Tube starts with.
const DefaultRadius = 1.0

// Uniforms is the shader surface a Tube sets before drawing.
// *shader.Program satisfies it.
type Uniforms interface {
	Use()
	SetVec4(name string, v mgl32.Vec4)
	SetMat4(name string, m mgl32.Mat4)
}

// Option configures a Tube.
type Option func(*Tube)

// WithSplitMatrices uploads the model and MVP matrices as four vec4 column
// uniforms (model_0..3, trans_0..3) instead of one mat4 each. Some drivers
// mis-handle mat4 uniforms in this shader.
func WithSplitMatrices() Option {
	return func(t *Tube) { t.splitMatrices = true }
}

// WithLightColor sets the light color uniform. Defaults to opaque white.
func WithLightColor(c mgl32.Vec4) Option {
	return func(t *Tube) { t.lightColor = c }
}

// WithLightDirection sets the light_dir uniform, a unit vector towards the light.
func WithLightDirection(dir mgl32.Vec3) Option {
	return func(t *Tube) { t.lightDir = dir.Normalize() }
}

// Tube generates and draws tube geometry around a trajectory.
type Tube struct {
	trajectory Trajectory
	section    Section

	backend  gpu.Backend
	uniforms Uniforms

	radius        float32
	color         mgl32.Vec4
	lightColor    mgl32.Vec4
	lightDir      mgl32.Vec3
	splitMatrices bool

	transform Transform

	// ring holds the top ring of the last computed segment (ring 0 after a reset).
	ring  []mgl32.Vec3
	frame RingFrame

	cache segmentCache
	log   *zap.Logger
}

// NewTube creates a tube over trajectory with the given cross-section.
func NewTube(trajectory Trajectory, section Section, backend gpu.Backend, uniforms Uniforms, opts ...Option) (*Tube, error) {
	if len(trajectory) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTrajectoryTooShort, len(trajectory))
	}
	if len(section) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrSectionTooSmall, len(section))
	}

	t := &Tube{
		trajectory: trajectory,
		section:    section,
		backend:    backend,
		uniforms:   uniforms,
		radius:     DefaultRadius,
		color:      mgl32.Vec4{1, 1, 1, 1},
		lightColor: mgl32.Vec4{1, 1, 1, 1},
		lightDir:   mgl32.Vec3{0, 1, 0},
		transform:  NewTransform(),
		ring:       make([]mgl32.Vec3, len(section)),
		log:        logger.Named("tube"),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.configure()

	return t, nil
}

// configure computes ring 0 so that segment 0 has a previous ring to join.
func (t *Tube) configure() {
	t.frame = fallbackFrame
	if f, ok := NewRingFrame(t.trajectory[1].Sub(t.trajectory[0])); ok {
		t.frame = f
	}
	t.frame.Place(t.ring, t.trajectory[0], t.section, t.radius)
}

// Radius returns the tube radius.
func (t *Tube) Radius() float32 { return t.radius }

// SetRadius changes the tube radius. Negative values clamp to zero.
// Every cached segment is dropped and rebuilt the next time it is drawn.
func (t *Tube) SetRadius(r float32) {
	t.radius = max(0, r)
	n := t.ClearCache()
	t.log.Debug("radius changed",
		zap.Float32("radius", t.radius),
		zap.Int("dropped_segments", n),
	)
}

// Color returns the tube color.
func (t *Tube) Color() mgl32.Vec4 { return t.color }

// SetColor sets the tube color. Channels are clamped to [0, 1].
func (t *Tube) SetColor(c mgl32.Vec4) {
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	t.color = c
}

// Transform returns the tube's model transform for modification.
func (t *Tube) Transform() *Transform { return &t.transform }

// SegmentCount returns the number of segments the trajectory has.
func (t *Tube) SegmentCount() int { return t.trajectory.Segments() }

// Cached returns the number of segments currently cached.
func (t *Tube) Cached() int { return t.cache.len() }

// Segment returns cached segment i, if present.
func (t *Tube) Segment(i int) (*Segment, bool) { return t.cache.get(i) }

// VerticesPerSegment returns the strip length of one segment, 2N+2.
func (t *Tube) VerticesPerSegment() int { return 2*len(t.section) + 2 }

// Draw draws segments [from, from+count) with the given view-projection.
// Indices outside the trajectory are skipped. Segments not cached yet are
// computed in index order, including any gap below from.
func (t *Tube) Draw(viewProjection mgl32.Mat4, from, count int) {
	from = max(from, 0)
	end := min(from+count, t.SegmentCount())
	if end <= from {
		return
	}

	t.setUniforms(viewProjection)

	for i := from; i < end; i++ {
		t.backend.DrawStrip(t.ensure(i).Buffer)
	}
}

// DrawMasked is Draw restricted to segments whose mask entry is true.
// Indices past the end of mask are drawn. Skipped segments are still
// computed so the cache stays a contiguous prefix.
func (t *Tube) DrawMasked(viewProjection mgl32.Mat4, from, count int, mask []bool) {
	from = max(from, 0)
	end := min(from+count, t.SegmentCount())
	if end <= from {
		return
	}

	t.setUniforms(viewProjection)

	for i := from; i < end; i++ {
		s := t.ensure(i)
		if i < len(mask) && !mask[i] {
			continue
		}
		t.backend.DrawStrip(s.Buffer)
	}
}

// Prepare computes segments [0, n) without drawing them.
func (t *Tube) Prepare(n int) {
	if n = min(n, t.SegmentCount()); n > 0 {
		t.ensure(n - 1)
	}
}

// ClearCache releases every cached segment, resets the ring state to ring 0
// and returns how many segments were dropped.
func (t *Tube) ClearCache() int {
	n := t.cache.clear(t.backend.Delete)
	t.configure()
	return n
}

// Close releases all GPU resources held by the tube.
func (t *Tube) Close() {
	t.ClearCache()
}

// ensure returns segment i, computing it and any missing predecessors.
func (t *Tube) ensure(i int) *Segment {
	for n := t.cache.len(); n <= i; n++ {
		t.cache.add(t.computeSegment(n))
	}
	s, _ := t.cache.get(i)
	return s
}

// computeSegment joins the current ring to the ring at trajectory point i+1.
func (t *Tube) computeSegment(i int) Segment {
	top := t.trajectory[i+1]
	if f, ok := NewRingFrame(top.Sub(t.trajectory[i])); ok {
		t.frame = f
	}

	n := len(t.section)
	next := make([]mgl32.Vec3, n)
	t.frame.Place(next, top, t.section, t.radius)

	vertices := make([]mgl32.Vec3, 2*n+2)
	for k := 0; k < n; k++ {
		vertices[2*k] = t.ring[k]
		vertices[2*k+1] = next[k]
	}
	vertices[2*n] = vertices[0]
	vertices[2*n+1] = vertices[1]
	t.ring = next

	return Segment{
		Index:    i,
		Vertices: vertices,
		Buffer:   t.backend.Upload(vertices),
	}
}

func (t *Tube) setUniforms(viewProjection mgl32.Mat4) {
	model := t.transform.Matrix()
	mvp := viewProjection.Mul4(model)

	t.uniforms.Use()
	t.uniforms.SetVec4("color", t.color)
	t.uniforms.SetVec4("light_color", t.lightColor)
	t.uniforms.SetVec4("light_dir", t.lightDir.Vec4(0))

	if !t.splitMatrices {
		t.uniforms.SetMat4("model", model)
		t.uniforms.SetMat4("mvp", mvp)
		return
	}
	for c := 0; c < 4; c++ {
		t.uniforms.SetVec4(fmt.Sprintf("model_%d", c), model.Col(c))
		t.uniforms.SetVec4(fmt.Sprintf("trans_%d", c), mvp.Col(c))
	}
}
