// Package particle implements fixed-pool particle emitters for weather and sparks.
package particle

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// InstanceStride is the number of floats per gathered instance:
// position(3) + color(4) + size(1).
const InstanceStride = 8

// Particle is one slot of an emitter pool.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Life     float32 // <= 0 means dead
	Color    mgl32.Vec4
	Size     float32
}

// Alive reports whether the slot holds a live particle.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// Behavior is the kind-specific part of an emitter.
type Behavior interface {
	// Respawn reinitializes a slot around the emitter origin.
	Respawn(p *Particle, origin mgl32.Vec3, rng *rand.Rand)
	// Derive recomputes per-frame attributes from the current state.
	Derive(p *Particle, origin mgl32.Vec3)
	// Dead is the kind's death predicate, checked after Derive.
	Dead(p *Particle, origin mgl32.Vec3) bool
}

// Ticker is implemented by behaviors with emitter-level state that advances
// with time, such as a rotating spawn direction.
type Ticker interface {
	Tick(dt float32)
}

// Pacer is implemented by behaviors whose spawn interval changes over time.
type Pacer interface {
	Interval() float32
}

// Options configures an Emitter.
type Options struct {
	Capacity int
	Interval float32 // seconds between spawns
	Refill   bool    // respawn dead slots immediately instead of on the timer
	Rand     *rand.Rand
}

// Emitter owns a fixed-capacity particle pool.
type Emitter struct {
	particles []Particle
	behavior  Behavior
	interval  float32
	timer     float32
	refill    bool
	rng       *rand.Rand
	origin    mgl32.Vec3
	spawned   int
}

// NewEmitter allocates the pool once. The pool never grows.
func NewEmitter(b Behavior, opts Options) *Emitter {
	if opts.Capacity < 1 {
		opts.Capacity = 1
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Emitter{
		particles: make([]Particle, opts.Capacity),
		behavior:  b,
		interval:  opts.Interval,
		refill:    opts.Refill,
		rng:       opts.Rand,
	}
}

// Capacity returns the pool size.
func (e *Emitter) Capacity() int { return len(e.particles) }

// Particles exposes the pool for inspection.
func (e *Emitter) Particles() []Particle { return e.particles }

// Spawned returns the number of spawns since creation.
func (e *Emitter) Spawned() int { return e.spawned }

// Interval returns the current spawn interval.
func (e *Emitter) Interval() float32 { return e.interval }

// Origin returns the point particles spawn around.
func (e *Emitter) Origin() mgl32.Vec3 { return e.origin }

// SetOrigin moves the spawn point.
func (e *Emitter) SetOrigin(o mgl32.Vec3) { e.origin = o }

// Alive counts live slots.
func (e *Emitter) Alive() int {
	n := 0
	for i := range e.particles {
		if e.particles[i].Alive() {
			n++
		}
	}
	return n
}

// Step runs one frame: TrySpawn then Update around origin.
func (e *Emitter) Step(dt float32, origin mgl32.Vec3) {
	e.origin = origin
	e.TrySpawn(dt)
	e.Update(dt)
}

// TrySpawn advances the spawn timer and spawns at most one particle when it
// reaches the interval. The timer then restarts from zero.
func (e *Emitter) TrySpawn(dt float32) bool {
	if t, ok := e.behavior.(Ticker); ok {
		t.Tick(dt)
	}
	if p, ok := e.behavior.(Pacer); ok {
		e.interval = p.Interval()
	}
	if e.refill {
		return false
	}

	e.timer += dt
	if e.timer < e.interval {
		return false
	}
	e.respawn(&e.particles[e.firstDead()])
	e.timer = 0
	return true
}

// Update ages and moves live particles and applies the death predicate.
func (e *Emitter) Update(dt float32) {
	for i := range e.particles {
		p := &e.particles[i]
		if p.Alive() {
			p.Life -= dt
			p.Position = p.Position.Add(p.Velocity.Mul(dt))
			e.behavior.Derive(p, e.origin)
			if e.behavior.Dead(p, e.origin) {
				p.Life = 0
			}
		}
		if e.refill && !p.Alive() {
			e.respawn(p)
		}
	}
}

// Gather appends the draw attributes of live particles to dst[:0].
func (e *Emitter) Gather(dst []float32) []float32 {
	dst = dst[:0]
	for i := range e.particles {
		p := &e.particles[i]
		if !p.Alive() {
			continue
		}
		dst = append(dst,
			p.Position[0], p.Position[1], p.Position[2],
			p.Color[0], p.Color[1], p.Color[2], p.Color[3],
			p.Size,
		)
	}
	return dst
}

// firstDead returns the lowest dead index, or 0 when the pool is full.
func (e *Emitter) firstDead() int {
	for i := range e.particles {
		if !e.particles[i].Alive() {
			return i
		}
	}
	return 0
}

func (e *Emitter) respawn(p *Particle) {
	e.behavior.Respawn(p, e.origin, e.rng)
	e.behavior.Derive(p, e.origin)
	e.spawned++
}

// diskPoint returns a point in a horizontal disk, biased toward the center.
func diskPoint(origin mgl32.Vec3, radius float32, rng *rand.Rand) (x, z float32) {
	angle := rng.Float64() * 2 * math.Pi
	r := float32(math.Sqrt(rng.Float64())) * radius
	return origin[0] + r*float32(math.Cos(angle)), origin[2] + r*float32(math.Sin(angle))
}

// fade is 1 at the origin and 0 at maxDistance.
func fade(dist, maxDistance float32) float32 {
	if maxDistance <= 0 {
		return 0
	}
	return mgl32.Clamp(1-dist/maxDistance, 0, 1)
}

var infinite = float32(math.Inf(1))
