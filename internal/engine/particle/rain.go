package particle

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// RainOptions configures the rain emitter.
type RainOptions struct {
	Capacity    int
	Radius      float32 // spawn disk around the camera
	SpawnHeight float32 // drops start in [SpawnHeight, SpawnHeight+10]
	Ground      float32 // drops die at Ground+1
	Speed       float32
	Wind        mgl32.Vec3
	Color       mgl32.Vec4
	Size        float32
}

// DefaultRainOptions returns the scene's rain settings for a given ground level.
func DefaultRainOptions(ground float32) RainOptions {
	return RainOptions{
		Capacity:    10000,
		Radius:      20,
		SpawnHeight: 10,
		Ground:      ground,
		Speed:       4,
		Wind:        mgl32.Vec3{1, -4, 0.3}.Normalize(),
		Color:       mgl32.Vec4{0.5, 0.6, 0.9, 1},
		Size:        40,
	}
}

type rain struct {
	opts RainOptions
}

// NewRain creates a rain emitter. Dead drops are refilled every update, so
// the whole pool stays in flight.
func NewRain(opts RainOptions, rng *rand.Rand) *Emitter {
	return NewEmitter(&rain{opts: opts}, Options{
		Capacity: opts.Capacity,
		Refill:   true,
		Rand:     rng,
	})
}

func (r *rain) Respawn(p *Particle, origin mgl32.Vec3, rng *rand.Rand) {
	x, z := diskPoint(origin, r.opts.Radius, rng)
	y := r.opts.SpawnHeight + rng.Float32()*10
	p.Position = mgl32.Vec3{x, y, z}
	p.Velocity = r.opts.Wind.Mul(r.opts.Speed)
	p.Color = r.opts.Color
	p.Size = r.opts.Size
	p.Life = infinite
}

func (r *rain) Derive(*Particle, mgl32.Vec3) {}

func (r *rain) Dead(p *Particle, _ mgl32.Vec3) bool {
	return p.Position[1] <= r.opts.Ground+1
}
