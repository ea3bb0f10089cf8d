package scene

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tidewater/internal/engine/scene/shaders"
	"github.com/Faultbox/tidewater/internal/engine/shader"
	"github.com/Faultbox/tidewater/internal/engine/texture"
	"github.com/Faultbox/tidewater/internal/engine/water"
)

// Water sampler units.
const (
	waterUnitTexture    = 0
	waterUnitShadow     = 1
	waterUnitReflection = 2
	waterUnitSky        = 3
)

// WaterOptions configures the water surface.
type WaterOptions struct {
	Level             float32
	HorizontalScale   float32
	TextureSpeed      float32 // texture scroll per second
	TerrainReflection float32
	SkyboxReflection  float32
}

// WaterTextures holds the water's sampler inputs.
type WaterTextures struct {
	Surface    uint32 // owned
	Shadow     uint32
	Reflection uint32
	Sky        uint32
}

// WaterRenderer streams the wave field into a dynamic buffer each frame.
type WaterRenderer struct {
	program *shader.Program
	field   *water.Field
	opts    WaterOptions

	vao uint32
	vbo uint32

	model    mgl32.Mat4
	textures WaterTextures
	offset   float32
}

// NewWaterRenderer allocates a buffer sized for the field; it is never resized.
func NewWaterRenderer(field *water.Field, opts WaterOptions, tex WaterTextures) (*WaterRenderer, error) {
	program, err := shader.New("water", shaders.WaterVertexShader, shaders.WaterFragmentShader)
	if err != nil {
		return nil, err
	}

	wr := &WaterRenderer{
		program:  program,
		field:    field,
		opts:     opts,
		textures: tex,
		model: mgl32.Translate3D(0, opts.Level, 0).
			Mul4(mgl32.Scale3D(opts.HorizontalScale, 1, opts.HorizontalScale)),
	}
	wr.allocate()

	program.Use()
	program.SetMat4("model", wr.model)
	program.SetMat3("normalMatrix", wr.model.Mat3().Inv().Transpose())
	program.SetFloat("texScale", 1)
	program.SetInt("waterTexture", waterUnitTexture)
	program.SetInt("shadowMap", waterUnitShadow)
	program.SetInt("reflectionTexture", waterUnitReflection)
	program.SetInt("skybox", waterUnitSky)
	program.SetFloat("terrainReflection", opts.TerrainReflection)
	program.SetFloat("skyboxReflection", opts.SkyboxReflection)
	program.SetVec3("skyScale", SkyScale)
	return wr, nil
}

func (wr *WaterRenderer) allocate() {
	gl.GenVertexArrays(1, &wr.vao)
	gl.BindVertexArray(wr.vao)

	gl.GenBuffers(1, &wr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, wr.vbo)
	size := len(wr.field.Vertices()) * floatSize
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)

	stride := int32(water.FloatsPerVertex * floatSize)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*floatSize)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*floatSize)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
}

// Update regenerates the field at time t with the live amplitude, uploads it
// and scrolls the surface texture.
func (wr *WaterRenderer) Update(t, dt, amplitude float32) {
	wr.field.SetAmplitude(amplitude)
	vertices := wr.field.Generate(t)

	gl.BindBuffer(gl.ARRAY_BUFFER, wr.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*floatSize, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	wr.offset += wr.opts.TextureSpeed * dt
}

// Offset returns the current texture scroll.
func (wr *WaterRenderer) Offset() float32 { return wr.offset }

// Render draws the water with the reflection of the given reflected view.
func (wr *WaterRenderer) Render(view, projection, reflectedView mgl32.Mat4, sh *Shading) {
	wr.program.Use()
	wr.program.SetMat4("view", view)
	wr.program.SetMat4("projection", projection)
	wr.program.SetMat4("reflected_view", reflectedView)
	wr.program.SetFloat("offset", wr.offset)
	sh.apply(wr.program, waterMaterial)

	texture.Bind(waterUnitTexture, wr.textures.Surface)
	texture.Bind(waterUnitShadow, wr.textures.Shadow)
	texture.Bind(waterUnitReflection, wr.textures.Reflection)
	texture.BindCubemap(waterUnitSky, wr.textures.Sky)

	gl.BindVertexArray(wr.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(wr.field.VertexCount()))
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (wr *WaterRenderer) Destroy() {
	deleteMesh(&wr.vao, &wr.vbo)
	texture.Delete(&wr.textures.Surface)
	if wr.program != nil {
		wr.program.Destroy()
	}
}
