package viewer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/attractor-viewer/internal/engine/gpu"
)

// Background is a full-screen gradient quad drawn behind everything else.
type Background struct {
	backend gpu.Backend
	buffer  gpu.Buffer
}

// backgroundQuad returns the two clip-space triangles covering the screen
// and their colors, top edge first.
func backgroundQuad(top, bottom mgl32.Vec4) ([]mgl32.Vec3, []mgl32.Vec4) {
	positions := []mgl32.Vec3{
		{-1, 1, 0}, {-1, -1, 0}, {1, -1, 0},
		{-1, 1, 0}, {1, -1, 0}, {1, 1, 0},
	}
	colors := []mgl32.Vec4{
		top, bottom, bottom,
		top, bottom, top,
	}
	return positions, colors
}

// NewBackground uploads the gradient quad.
func NewBackground(backend gpu.Backend, top, bottom mgl32.Vec4) *Background {
	positions, colors := backgroundQuad(top, bottom)
	return &Background{
		backend: backend,
		buffer:  backend.UploadColored(positions, colors),
	}
}

// Draw issues the quad's triangles. The caller binds the shader and
// disables depth writes.
func (b *Background) Draw() {
	b.backend.DrawTriangles(b.buffer)
}

// Close releases the quad's buffer.
func (b *Background) Close() {
	b.backend.Delete(&b.buffer)
}
