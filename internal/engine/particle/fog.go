package particle

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// FogOptions configures the ground fog emitter.
type FogOptions struct {
	Capacity    int
	Interval    float32
	Life        float32
	Radius      float32
	Ground      float32
	MaxDistance float32 // horizontal distance from the camera at which alpha reaches zero
	MinOpacity  float32
	Color       mgl32.Vec4
	Size        float32
}

// DefaultFogOptions returns the scene's fog settings for a given ground level.
func DefaultFogOptions(ground float32) FogOptions {
	return FogOptions{
		Capacity:    2000,
		Interval:    0.5,
		Life:        20,
		Radius:      20,
		Ground:      ground,
		MaxDistance: 40,
		MinOpacity:  0.01,
		Color:       mgl32.Vec4{0.8, 0.8, 0.85, 0.5},
		Size:        1000,
	}
}

type fog struct {
	opts FogOptions
}

// NewFog creates a fog emitter.
func NewFog(opts FogOptions, rng *rand.Rand) *Emitter {
	return NewEmitter(&fog{opts: opts}, Options{
		Capacity: opts.Capacity,
		Interval: opts.Interval,
		Rand:     rng,
	})
}

func (f *fog) Respawn(p *Particle, origin mgl32.Vec3, rng *rand.Rand) {
	x, z := diskPoint(origin, f.opts.Radius, rng)
	p.Position = mgl32.Vec3{x, f.opts.Ground + 1, z}
	p.Velocity = mgl32.Vec3{(rng.Float32() - 0.5) * 2, 0, (rng.Float32() - 0.5) * 2}
	p.Color = f.opts.Color
	p.Size = f.opts.Size
	p.Life = f.opts.Life
}

func (f *fog) Derive(p *Particle, origin mgl32.Vec3) {
	d := mgl32.Vec2{p.Position[0] - origin[0], p.Position[2] - origin[2]}.Len()
	p.Color[3] = f.opts.Color[3] * fade(d, f.opts.MaxDistance)
}

func (f *fog) Dead(p *Particle, _ mgl32.Vec3) bool {
	return p.Color[3] < f.opts.MinOpacity
}
