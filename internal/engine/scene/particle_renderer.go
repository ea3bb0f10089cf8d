package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tidewater/internal/engine/particle"
	"github.com/Faultbox/tidewater/internal/engine/shader"
	"github.com/Faultbox/tidewater/internal/engine/texture"
)

// ParticleRenderer draws one emitter as instanced point sprites. Every alive
// particle is one instance of a single point.
type ParticleRenderer struct {
	program *shader.Program // shared, not owned
	emitter *particle.Emitter
	sprite  uint32 // owned

	vao       uint32
	vbo       uint32
	instances []float32
	count     int32
}

// NewParticleRenderer allocates an instance buffer for the emitter's full capacity.
func NewParticleRenderer(program *shader.Program, emitter *particle.Emitter, sprite uint32) *ParticleRenderer {
	pr := &ParticleRenderer{
		program:   program,
		emitter:   emitter,
		sprite:    sprite,
		instances: make([]float32, 0, emitter.Capacity()*particle.InstanceStride),
	}

	gl.GenVertexArrays(1, &pr.vao)
	gl.BindVertexArray(pr.vao)

	gl.GenBuffers(1, &pr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, cap(pr.instances)*floatSize, nil, gl.STREAM_DRAW)

	stride := int32(particle.InstanceStride * floatSize)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribDivisor(0, 1)
	// Color
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 3*floatSize)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribDivisor(1, 1)
	// Size
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 7*floatSize)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribDivisor(2, 1)

	gl.BindVertexArray(0)
	return pr
}

// Emitter returns the simulated pool.
func (pr *ParticleRenderer) Emitter() *particle.Emitter { return pr.emitter }

// Upload re-packs all alive particles and replaces the instance buffer contents.
func (pr *ParticleRenderer) Upload() {
	pr.instances = pr.emitter.Gather(pr.instances[:0])
	pr.count = int32(len(pr.instances) / particle.InstanceStride)

	gl.BindBuffer(gl.ARRAY_BUFFER, pr.vbo)
	// Orphan the old storage so the driver does not stall on the previous frame.
	gl.BufferData(gl.ARRAY_BUFFER, cap(pr.instances)*floatSize, nil, gl.STREAM_DRAW)
	if pr.count > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(pr.instances)*floatSize, gl.Ptr(pr.instances))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws the uploaded instances with depth writes disabled.
func (pr *ParticleRenderer) Render(view, projection mgl32.Mat4) {
	if pr.count == 0 {
		return
	}
	pr.program.Use()
	pr.program.SetMat4("view", view)
	pr.program.SetMat4("projection", projection)
	pr.program.SetInt("sprite", 0)
	texture.Bind(0, pr.sprite)

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.DepthMask(false)

	gl.BindVertexArray(pr.vao)
	gl.DrawArraysInstanced(gl.POINTS, 0, 1, pr.count)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.Disable(gl.PROGRAM_POINT_SIZE)
}

// Destroy releases GPU resources.
func (pr *ParticleRenderer) Destroy() {
	deleteMesh(&pr.vao, &pr.vbo)
	texture.Delete(&pr.sprite)
}
