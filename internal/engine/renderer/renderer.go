// Package renderer provides the OpenGL implementation of gpu.Backend.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/attractor-viewer/internal/engine/gpu"
	"github.com/Faultbox/attractor-viewer/internal/logger"
)

const (
	vec3Size = int32(unsafe.Sizeof(mgl32.Vec3{}))
	vec4Size = int32(unsafe.Sizeof(mgl32.Vec4{}))
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns global GL state and vertex buffers.
type Renderer struct {
	config Config
	live   int // buffers uploaded and not yet deleted
}

var _ gpu.Backend = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close logs buffers that were never released.
func (r *Renderer) Close() {
	logger.Info("closing renderer", zap.Int("leaked_buffers", r.live))
}

// Resize handles framebuffer resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}


// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetDepthWrite toggles depth testing and writing, used for full-screen backdrops.
func (r *Renderer) SetDepthWrite(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(enabled)
}

// ReadPixels returns the RGBA contents of the framebuffer, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}

// Upload creates a VAO/VBO pair with positions at attribute 0.
func (r *Renderer) Upload(vertices []mgl32.Vec3) gpu.Buffer {
	var b gpu.Buffer
	if len(vertices) == 0 {
		return b
	}

	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vec3Size), gl.Ptr(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vec3Size, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	b.Count = int32(len(vertices))
	r.live++
	return b
}

// UploadColored creates a VAO/VBO pair with interleaved position (attribute 0)
// and color (attribute 1). positions and colors must have equal length.
func (r *Renderer) UploadColored(positions []mgl32.Vec3, colors []mgl32.Vec4) gpu.Buffer {
	var b gpu.Buffer
	if len(positions) == 0 || len(positions) != len(colors) {
		return b
	}

	data := make([]float32, 0, len(positions)*7)
	for i, p := range positions {
		c := colors[i]
		data = append(data, p[0], p[1], p[2], c[0], c[1], c[2], c[3])
	}
	stride := vec3Size + vec4Size

	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(vec3Size)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	b.Count = int32(len(positions))
	r.live++
	return b
}

// DrawStrip draws the buffer as a triangle strip.
func (r *Renderer) DrawStrip(b gpu.Buffer) {
	r.draw(gl.TRIANGLE_STRIP, b)
}

// DrawTriangles draws the buffer as a triangle list.
func (r *Renderer) DrawTriangles(b gpu.Buffer) {
	r.draw(gl.TRIANGLES, b)
}

func (r *Renderer) draw(mode uint32, b gpu.Buffer) {
	if !b.Valid() {
		return
	}
	gl.BindVertexArray(b.VAO)
	gl.DrawArrays(mode, 0, b.Count)
	gl.BindVertexArray(0)
}

// Delete releases the buffer's GL objects and zeroes it.
func (r *Renderer) Delete(b *gpu.Buffer) {
	if !b.Valid() {
		return
	}
	gl.DeleteVertexArrays(1, &b.VAO)
	gl.DeleteBuffers(1, &b.VBO)
	*b = gpu.Buffer{}
	r.live--
}
