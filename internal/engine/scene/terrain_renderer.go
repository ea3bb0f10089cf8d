package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tidewater/internal/engine/scene/shaders"
	"github.com/Faultbox/tidewater/internal/engine/shader"
	"github.com/Faultbox/tidewater/internal/engine/terrain"
	"github.com/Faultbox/tidewater/internal/engine/texture"
)

// Terrain sampler units.
const (
	terrainUnitMain   = 0
	terrainUnitDetail = 1
	terrainUnitShadow = 2
)

// detailLevel is how many times the detail texture repeats across the map.
const detailLevel = 50

// clipAboveOffset places the reflection clip plane relative to the terrain offset.
const clipAboveOffset = 0.9

// TerrainTextures holds the terrain's sampler inputs.
type TerrainTextures struct {
	Main   uint32
	Detail uint32
	Shadow uint32 // depth map, not owned
}

// TerrainRenderer draws the static terrain mesh in all three passes.
type TerrainRenderer struct {
	program *shader.Program
	depth   *shader.Program // shadow caster program, not owned

	vao         uint32
	vbo         uint32
	vertexCount int32
	model       mgl32.Mat4
	clipPlane   float32
	bounds      terrain.Bounds

	textures TerrainTextures
}

// NewTerrainRenderer uploads the mesh once. The main and detail textures are
// owned by the renderer.
func NewTerrainRenderer(mesh *terrain.Mesh, tex TerrainTextures, depth *shader.Program) (*TerrainRenderer, error) {
	program, err := shader.New("terrain", shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, err
	}

	tr := &TerrainRenderer{
		program:     program,
		depth:       depth,
		vertexCount: int32(mesh.VertexCount()),
		model:       mesh.Model(),
		clipPlane:   mesh.Offset + clipAboveOffset,
		bounds:      mesh.Bounds,
		textures:    tex,
	}
	tr.upload(mesh.Vertices)

	program.Use()
	program.SetMat4("model", tr.model)
	program.SetInt("mainTexture", terrainUnitMain)
	program.SetInt("detailTexture", terrainUnitDetail)
	program.SetInt("shadowMap", terrainUnitShadow)
	program.SetFloat("detailLevel", detailLevel)
	program.SetFloat("clipPlane", tr.clipPlane)
	return tr, nil
}

func (tr *TerrainRenderer) upload(vertices []float32) {
	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	}

	stride := int32(terrain.FloatsPerVertex * floatSize)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// TexCoord
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*floatSize)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

// Bounds returns the world-space AABB of the mesh.
func (tr *TerrainRenderer) Bounds() terrain.Bounds { return tr.bounds }

// Render draws the lit terrain. clipBelow discards fragments under the water,
// used by the reflection pass.
func (tr *TerrainRenderer) Render(view, projection mgl32.Mat4, sh *Shading, clipBelow bool) {
	tr.program.Use()
	tr.program.SetMat4("view", view)
	tr.program.SetMat4("projection", projection)
	tr.program.SetBool("clipBelow", clipBelow)
	sh.apply(tr.program, terrainMaterial)

	texture.Bind(terrainUnitMain, tr.textures.Main)
	texture.Bind(terrainUnitDetail, tr.textures.Detail)
	texture.Bind(terrainUnitShadow, tr.textures.Shadow)

	tr.draw()
}

// RenderDepth draws the terrain into the bound shadow map.
func (tr *TerrainRenderer) RenderDepth(lightSpace mgl32.Mat4) {
	tr.depth.Use()
	tr.depth.SetMat4("lightSpaceMatrix", lightSpace)
	tr.depth.SetMat4("model", tr.model)
	tr.draw()
}

func (tr *TerrainRenderer) draw() {
	if tr.vertexCount == 0 {
		return
	}
	gl.BindVertexArray(tr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, tr.vertexCount)
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (tr *TerrainRenderer) Destroy() {
	deleteMesh(&tr.vao, &tr.vbo)
	texture.Delete(&tr.textures.Main)
	texture.Delete(&tr.textures.Detail)
	if tr.program != nil {
		tr.program.Destroy()
	}
}
