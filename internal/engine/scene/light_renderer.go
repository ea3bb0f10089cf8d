package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tidewater/internal/engine/scene/shaders"
	"github.com/Faultbox/tidewater/internal/engine/shader"
)

// markerSize is the half-extent of the light marker cube.
const markerSize = 0.2

// LightRenderer draws a small cube at the light position.
type LightRenderer struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
}

// NewLightRenderer compiles the marker program and places it at position.
func NewLightRenderer(position, color mgl32.Vec3) (*LightRenderer, error) {
	program, err := shader.New("light", shaders.LightVertexShader, shaders.LightFragmentShader)
	if err != nil {
		return nil, err
	}
	lr := &LightRenderer{program: program}
	lr.vao, lr.vbo = uploadPositions(unitCube)

	program.Use()
	program.SetMat4("model", mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(mgl32.Scale3D(markerSize, markerSize, markerSize)))
	program.SetVec3("lightColor", color)
	return lr, nil
}

// Render draws the marker.
func (lr *LightRenderer) Render(view, projection mgl32.Mat4) {
	lr.program.Use()
	lr.program.SetMat4("view", view)
	lr.program.SetMat4("projection", projection)

	gl.BindVertexArray(lr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(unitCube)/3))
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (lr *LightRenderer) Destroy() {
	deleteMesh(&lr.vao, &lr.vbo)
	if lr.program != nil {
		lr.program.Destroy()
	}
}
