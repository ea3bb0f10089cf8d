package particle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRainRefill(t *testing.T) {
	opts := DefaultRainOptions(-1)
	opts.Capacity = 200
	e := NewRain(opts, testRand())

	camera := mgl32.Vec3{3, 5, -2}
	e.Step(0.016, camera)
	if e.Alive() != opts.Capacity {
		t.Fatalf("alive = %d, want full pool %d", e.Alive(), opts.Capacity)
	}

	for _, p := range e.Particles() {
		dx, dz := p.Position[0]-camera[0], p.Position[2]-camera[2]
		// The first update may have moved drops by one velocity step.
		if math.Hypot(float64(dx), float64(dz)) > float64(opts.Radius)+1 {
			t.Fatalf("drop spawned outside the radius: %v", p.Position)
		}
		if p.Position[1] < opts.SpawnHeight-1 || p.Position[1] > opts.SpawnHeight+10 {
			t.Fatalf("drop height %f outside spawn band", p.Position[1])
		}
	}
}

func TestRainGroundDeathRespawns(t *testing.T) {
	opts := DefaultRainOptions(-1)
	opts.Capacity = 1
	e := NewRain(opts, testRand())
	e.Step(0, mgl32.Vec3{})

	p := &e.Particles()[0]
	p.Position[1] = opts.Ground + 0.5
	spawned := e.Spawned()
	e.Update(0)

	if e.Spawned() != spawned+1 {
		t.Error("drop below ground was not respawned")
	}
	if p.Position[1] < opts.SpawnHeight {
		t.Errorf("respawned drop at %f, want above %f", p.Position[1], opts.SpawnHeight)
	}
}

func TestFogDiesWithDistance(t *testing.T) {
	opts := DefaultFogOptions(-1)
	opts.Interval = 0
	e := NewFog(opts, testRand())
	e.Step(0, mgl32.Vec3{})

	p := &e.Particles()[0]
	if !p.Alive() {
		t.Fatal("fog particle did not spawn")
	}

	p.Position = mgl32.Vec3{opts.MaxDistance + 1, p.Position[1], 0}
	e.Update(0)
	if p.Color[3] > opts.MinOpacity {
		t.Errorf("alpha = %f beyond max distance", p.Color[3])
	}
	if p.Alive() {
		t.Error("fog particle beyond max distance still alive")
	}
}

func TestFogFadesTowardEdge(t *testing.T) {
	opts := DefaultFogOptions(0)
	f := &fog{opts: opts}
	p := &Particle{Position: mgl32.Vec3{opts.MaxDistance / 2, 1, 0}}
	f.Derive(p, mgl32.Vec3{0, 50, 0})

	want := opts.Color[3] * 0.5
	if math.Abs(float64(p.Color[3]-want)) > 1e-6 {
		t.Errorf("alpha = %f, want %f (height must not count)", p.Color[3], want)
	}
}

func TestFogExpires(t *testing.T) {
	opts := DefaultFogOptions(-1)
	opts.Interval = 0
	e := NewFog(opts, testRand())
	e.TrySpawn(0)
	e.Particles()[0].Velocity = mgl32.Vec3{}

	e.Update(opts.Life + 1)
	if e.Particles()[0].Alive() {
		t.Error("fog particle outlived its life")
	}
}

func TestSpiralDiesWithDistance(t *testing.T) {
	opts := DefaultSpiralOptions()
	opts.Interval = 0
	e := NewSpiral(opts, testRand())

	origin := mgl32.Vec3{-10, 6, -10}
	e.Step(0, origin)
	p := &e.Particles()[0]
	if !p.Alive() || p.Color[3] != 1 {
		t.Fatalf("fresh spark: alive %v alpha %f", p.Alive(), p.Color[3])
	}

	// Unit speed for 3.5s carries the spark past the 3 unit fade distance.
	e.Update(3.5)
	if p.Alive() {
		t.Errorf("spark at distance %f still alive", p.Position.Sub(origin).Len())
	}
}

func TestSpiralRotatesAndCyclesHue(t *testing.T) {
	opts := DefaultSpiralOptions()
	opts.Interval = 0
	e := NewSpiral(opts, testRand())

	e.TrySpawn(0)
	e.TrySpawn(0.1)
	ps := e.Particles()

	if ps[0].Velocity == ps[1].Velocity {
		t.Error("spawn direction did not rotate")
	}
	wantAngle := opts.RotationSpeed * 0.1
	got := float32(math.Atan2(float64(ps[1].Velocity[1]), float64(ps[1].Velocity[0])))
	if math.Abs(float64(got-wantAngle)) > 1e-5 {
		t.Errorf("angle = %f, want %f", got, wantAngle)
	}
	if ps[0].Color == ps[1].Color {
		t.Error("hue did not advance")
	}
}

func TestSnowIntervalRamp(t *testing.T) {
	opts := DefaultSnowOptions(-1)
	e := NewSnow(opts, testRand())

	for i := 0; i < 10; i++ {
		e.TrySpawn(1)
	}
	if math.Abs(float64(e.Interval()-0.7)) > 1e-5 {
		t.Errorf("interval after 10s = %f, want 0.7", e.Interval())
	}

	for i := 0; i < 100; i++ {
		e.TrySpawn(1)
	}
	if e.Interval() != opts.MinInterval {
		t.Errorf("interval = %f, want floor %f", e.Interval(), opts.MinInterval)
	}
}

func TestSnowFallsAndDies(t *testing.T) {
	opts := DefaultSnowOptions(-1)
	e := NewSnow(opts, testRand())
	e.Step(opts.StartInterval, mgl32.Vec3{})

	p := &e.Particles()[0]
	if !p.Alive() {
		t.Fatal("flake did not spawn")
	}
	if p.Size < opts.MinSize || p.Size > opts.MaxSize {
		t.Errorf("size %f outside [%f, %f]", p.Size, opts.MinSize, opts.MaxSize)
	}

	fall := (p.Position[1] - opts.Ground) / opts.FallSpeed
	e.Update(fall + 0.1)
	if p.Alive() {
		t.Errorf("flake below ground still alive at y=%f", p.Position[1])
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h    float32
		want mgl32.Vec3
	}{
		{0, mgl32.Vec3{1, 0, 0}},
		{1.0 / 3, mgl32.Vec3{0, 1, 0}},
		{2.0 / 3, mgl32.Vec3{0, 0, 1}},
	}
	for _, tt := range tests {
		got := HSVToRGB(tt.h, 1, 1)
		if !got.ApproxEqualThreshold(tt.want, 1e-5) {
			t.Errorf("HSVToRGB(%f) = %v, want %v", tt.h, got, tt.want)
		}
	}
}
