package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tidewater/internal/engine/shader"
)

// Shading is the per-frame lighting and fog state shared by terrain and water.
type Shading struct {
	Lighting   bool
	LightPos   mgl32.Vec3
	LightColor mgl32.Vec3
	LightSpace mgl32.Mat4

	Weather   bool
	CameraPos mgl32.Vec3
	FogColor  mgl32.Vec3
	FogStart  float32
	FogEnd    float32
}

// Material is the Phong weight set of one surface.
type Material struct {
	Ambient  float32
	Diffuse  float32
	Specular float32
}

var (
	terrainMaterial = Material{Ambient: 0.2, Diffuse: 0.8}
	waterMaterial   = Material{Ambient: 0.2, Diffuse: 0.9, Specular: 0.5}
)

// apply uploads the shared uniforms. The program must be current.
func (s *Shading) apply(p *shader.Program, m Material) {
	p.SetBool("lighting", s.Lighting)
	p.SetVec3("lightPos", s.LightPos)
	p.SetVec3("lightColor", s.LightColor)
	p.SetMat4("lightSpaceMatrix", s.LightSpace)
	p.SetFloat("ambientStrength", m.Ambient)
	p.SetFloat("diffuseStrength", m.Diffuse)
	p.SetFloat("specularStrength", m.Specular)

	p.SetBool("weather", s.Weather)
	p.SetVec3("cameraPos", s.CameraPos)
	p.SetVec3("fogColor", s.FogColor)
	p.SetFloat("fogStart", s.FogStart)
	p.SetFloat("fogEnd", s.FogEnd)
}
