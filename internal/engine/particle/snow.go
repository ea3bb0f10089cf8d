package particle

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// SnowOptions configures the snowfall emitter.
type SnowOptions struct {
	Capacity    int
	Radius      float32
	SpawnHeight float32
	Ground      float32
	FallSpeed   float32
	// The interval shrinks from StartInterval to MinInterval by Ramp per second.
	StartInterval float32
	MinInterval   float32
	Ramp          float32
	MinSize       float32
	MaxSize       float32
	Color         mgl32.Vec4
}

// DefaultSnowOptions returns the scene's snow settings for a given ground level.
func DefaultSnowOptions(ground float32) SnowOptions {
	return SnowOptions{
		Capacity:      2000,
		Radius:        20,
		SpawnHeight:   10,
		Ground:        ground,
		FallSpeed:     2,
		StartInterval: 1,
		MinInterval:   0.05,
		Ramp:          0.03,
		MinSize:       10,
		MaxSize:       50,
		Color:         mgl32.Vec4{1, 1, 1, 0.9},
	}
}

type snow struct {
	opts     SnowOptions
	interval float32
}

// NewSnow creates a snow emitter whose spawn rate builds up over time.
func NewSnow(opts SnowOptions, rng *rand.Rand) *Emitter {
	return NewEmitter(&snow{opts: opts, interval: opts.StartInterval}, Options{
		Capacity: opts.Capacity,
		Interval: opts.StartInterval,
		Rand:     rng,
	})
}

func (s *snow) Tick(dt float32) {
	s.interval = max(s.opts.MinInterval, s.interval-s.opts.Ramp*dt)
}

func (s *snow) Interval() float32 { return s.interval }

func (s *snow) Respawn(p *Particle, origin mgl32.Vec3, rng *rand.Rand) {
	x, z := diskPoint(origin, s.opts.Radius, rng)
	y := s.opts.SpawnHeight + rng.Float32()*10
	p.Position = mgl32.Vec3{x, y, z}
	p.Velocity = mgl32.Vec3{0, -s.opts.FallSpeed, 0}
	p.Color = s.opts.Color
	p.Size = s.opts.MinSize + rng.Float32()*(s.opts.MaxSize-s.opts.MinSize)
	p.Life = infinite
}

func (s *snow) Derive(*Particle, mgl32.Vec3) {}

func (s *snow) Dead(p *Particle, _ mgl32.Vec3) bool {
	return p.Position[1] < s.opts.Ground
}
