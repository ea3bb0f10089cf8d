package particle

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// SpiralOptions configures the spark spiral shown around the light marker.
type SpiralOptions struct {
	Capacity      int
	Interval      float32
	Life          float32
	RotationSpeed float32 // radians per second
	MaxDistance   float32
	MinOpacity    float32
	HueStep       float32
	Size          float32
}

// DefaultSpiralOptions returns the spark settings.
func DefaultSpiralOptions() SpiralOptions {
	return SpiralOptions{
		Capacity:      500,
		Interval:      0.08,
		Life:          4,
		RotationSpeed: 5,
		MaxDistance:   3,
		MinOpacity:    0.01,
		HueStep:       0.01,
		Size:          30,
	}
}

type spiral struct {
	opts  SpiralOptions
	angle float32
	hue   float32
}

// NewSpiral creates an emitter whose spawn direction rotates, tracing an
// Archimedean spiral with a slowly cycling hue.
func NewSpiral(opts SpiralOptions, rng *rand.Rand) *Emitter {
	return NewEmitter(&spiral{opts: opts}, Options{
		Capacity: opts.Capacity,
		Interval: opts.Interval,
		Rand:     rng,
	})
}

func (s *spiral) Tick(dt float32) {
	s.angle += s.opts.RotationSpeed * dt
}

func (s *spiral) Respawn(p *Particle, origin mgl32.Vec3, _ *rand.Rand) {
	p.Position = origin
	p.Velocity = mgl32.Vec3{float32(math.Cos(float64(s.angle))), float32(math.Sin(float64(s.angle))), 0}
	rgb := HSVToRGB(s.hue, 1, 1)
	p.Color = rgb.Vec4(1)
	p.Size = s.opts.Size
	p.Life = s.opts.Life

	s.hue += s.opts.HueStep
	if s.hue > 1 {
		s.hue--
	}
}

func (s *spiral) Derive(p *Particle, origin mgl32.Vec3) {
	p.Color[3] = fade(p.Position.Sub(origin).Len(), s.opts.MaxDistance)
}

func (s *spiral) Dead(p *Particle, _ mgl32.Vec3) bool {
	return p.Color[3] < s.opts.MinOpacity
}

// HSVToRGB converts a hue in [0,1] with saturation and value to RGB.
func HSVToRGB(h, s, v float32) mgl32.Vec3 {
	c := v * s
	m := v - c
	x := c * (1 - float32(math.Abs(math.Mod(float64(h*6), 2)-1)))

	var rgb mgl32.Vec3
	switch {
	case h < 1.0/6:
		rgb = mgl32.Vec3{c, x, 0}
	case h < 2.0/6:
		rgb = mgl32.Vec3{x, c, 0}
	case h < 3.0/6:
		rgb = mgl32.Vec3{0, c, x}
	case h < 4.0/6:
		rgb = mgl32.Vec3{0, x, c}
	case h < 5.0/6:
		rgb = mgl32.Vec3{x, 0, c}
	default:
		rgb = mgl32.Vec3{c, 0, x}
	}
	return rgb.Add(mgl32.Vec3{m, m, m})
}
