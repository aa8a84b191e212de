package attractor

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/attractor-viewer/internal/engine/gpu"
)

// recordingBackend hands out increasing buffer ids and records every call.
type recordingBackend struct {
	next     uint32
	uploads  int
	deleted  []uint32
	drawn    []uint32
	live     map[uint32]bool
	lastSize int
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{live: make(map[uint32]bool)}
}

func (b *recordingBackend) Upload(vertices []mgl32.Vec3) gpu.Buffer {
	b.next++
	b.uploads++
	b.live[b.next] = true
	b.lastSize = len(vertices)
	return gpu.Buffer{VAO: b.next, VBO: b.next, Count: int32(len(vertices))}
}

func (b *recordingBackend) UploadColored(positions []mgl32.Vec3, _ []mgl32.Vec4) gpu.Buffer {
	return b.Upload(positions)
}

func (b *recordingBackend) DrawStrip(buf gpu.Buffer) {
	b.drawn = append(b.drawn, buf.VAO)
}

func (b *recordingBackend) DrawTriangles(buf gpu.Buffer) {
	b.drawn = append(b.drawn, buf.VAO)
}

func (b *recordingBackend) Delete(buf *gpu.Buffer) {
	b.deleted = append(b.deleted, buf.VAO)
	delete(b.live, buf.VAO)
	*buf = gpu.Buffer{}
}

// recordingUniforms keeps the last value set for every uniform name.
type recordingUniforms struct {
	uses int
	vec4 map[string]mgl32.Vec4
	mat4 map[string]mgl32.Mat4
}

func newRecordingUniforms() *recordingUniforms {
	return &recordingUniforms{
		vec4: make(map[string]mgl32.Vec4),
		mat4: make(map[string]mgl32.Mat4),
	}
}

func (u *recordingUniforms) Use() { u.uses++ }

func (u *recordingUniforms) SetVec4(name string, v mgl32.Vec4) { u.vec4[name] = v }

func (u *recordingUniforms) SetMat4(name string, m mgl32.Mat4) { u.mat4[name] = m }
