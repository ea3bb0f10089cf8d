package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tidewater/internal/engine/scene/shaders"
	"github.com/Faultbox/tidewater/internal/engine/shader"
	"github.com/Faultbox/tidewater/internal/engine/texture"
)

// SkyScale stretches the cubemap vertically so the sun stays round.
var SkyScale = mgl32.Vec3{1, 1, 1.4}

// skyFogDensity is how strongly weather tints the sky.
const skyFogDensity = 0.6

// unitCube is 36 positions of a cube spanning [-1,1], faces wound inward.
var unitCube = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
	-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
	1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
	-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
	-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
	-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// SkyRenderer draws the cubemap behind everything else.
type SkyRenderer struct {
	program *shader.Program
	vao     uint32
	vbo     uint32
	cubemap uint32
}

// NewSkyRenderer compiles the sky program and uploads the cube.
// The cubemap handle is owned by the renderer.
func NewSkyRenderer(cubemap uint32) (*SkyRenderer, error) {
	program, err := shader.New("sky", shaders.SkyVertexShader, shaders.SkyFragmentShader)
	if err != nil {
		return nil, err
	}
	sr := &SkyRenderer{program: program, cubemap: cubemap}
	sr.vao, sr.vbo = uploadPositions(unitCube)

	program.Use()
	program.SetInt("skybox", 0)
	program.SetVec3("skyScale", SkyScale)
	program.SetFloat("fogDensity", skyFogDensity)
	return sr, nil
}

// Cubemap returns the sky texture, also sampled by the water.
func (sr *SkyRenderer) Cubemap() uint32 { return sr.cubemap }

// Render draws the sky at the far plane. Depth func is LEQUAL for the draw.
func (sr *SkyRenderer) Render(view, projection mgl32.Mat4, weather bool, fogColor mgl32.Vec3) {
	gl.DepthFunc(gl.LEQUAL)
	sr.program.Use()
	sr.program.SetMat4("view", stripTranslation(view))
	sr.program.SetMat4("projection", projection)
	sr.program.SetBool("weather", weather)
	sr.program.SetVec3("fogColor", fogColor)

	texture.BindCubemap(0, sr.cubemap)
	gl.BindVertexArray(sr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(unitCube)/3))
	gl.BindVertexArray(0)
	gl.DepthFunc(gl.LESS)
}

// Destroy releases GPU resources.
func (sr *SkyRenderer) Destroy() {
	deleteMesh(&sr.vao, &sr.vbo)
	texture.Delete(&sr.cubemap)
	if sr.program != nil {
		sr.program.Destroy()
	}
}

// stripTranslation keeps only the rotation of a view matrix.
func stripTranslation(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}
