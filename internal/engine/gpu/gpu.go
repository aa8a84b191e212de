// Package gpu defines the vertex-buffer surface the renderers draw through.
// It holds no OpenGL state itself; internal/engine/renderer implements Backend.
package gpu

import "github.com/go-gl/mathgl/mgl32"

// Buffer is an uploaded vertex buffer. The zero value is an empty buffer.
type Buffer struct {
	VAO   uint32
	VBO   uint32
	Count int32 // number of vertices
}

// Valid reports whether the buffer holds an uploaded vertex array.
func (b Buffer) Valid() bool {
	return b.VAO != 0
}

// Backend uploads, draws and releases vertex buffers.
type Backend interface {
	// Upload stores positions at attribute 0.
	Upload(vertices []mgl32.Vec3) Buffer
	// UploadColored stores interleaved position (attribute 0) and RGBA color (attribute 1).
	UploadColored(positions []mgl32.Vec3, colors []mgl32.Vec4) Buffer
	DrawStrip(b Buffer)
	DrawTriangles(b Buffer)
	Delete(b *Buffer)
}
