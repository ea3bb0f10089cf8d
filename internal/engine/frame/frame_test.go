package frame

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tidewater/internal/config"
)

func newSceneConfig(t *testing.T, mutate func(*config.Config)) *SceneConfig {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	return NewSceneConfig(cfg)
}

type fakeTarget struct {
	fbo uint32
	vp  Viewport
}

func (f fakeTarget) FBO() uint32        { return f.fbo }
func (f fakeTarget) Viewport() Viewport { return f.vp }

// recorder implements Device and Stages and logs every call in order.
type recorder struct {
	calls    []string
	viewport Viewport
	bound    uint32
	shadow   fakeTarget
	reflect  fakeTarget

	// viewport and target seen when each stage ran
	seen map[string]Viewport
}

func newRecorder(cfg *SceneConfig) *recorder {
	res := cfg.ShadowResolution()
	return &recorder{
		shadow:  fakeTarget{fbo: 7, vp: Viewport{W: res, H: res}},
		reflect: fakeTarget{fbo: 9, vp: cfg.ReflectionViewport()},
		seen:    make(map[string]Viewport),
	}
}

func (r *recorder) BindTarget(fbo uint32) {
	r.bound = fbo
	r.calls = append(r.calls, fmt.Sprintf("bind:%d", fbo))
}

func (r *recorder) SetViewport(v Viewport) {
	r.viewport = v
	r.calls = append(r.calls, fmt.Sprintf("viewport:%dx%d", v.W, v.H))
}

func (r *recorder) ShadowTarget() Target     { return r.shadow }
func (r *recorder) ReflectionTarget() Target { return r.reflect }

func (r *recorder) stage(name string) {
	r.seen[name] = r.viewport
	r.calls = append(r.calls, name)
}

func (r *recorder) Shadow(*Transforms)     { r.stage("shadow") }
func (r *recorder) Reflection(*Transforms) { r.stage("reflection") }
func (r *recorder) Main(*Transforms)       { r.stage("main") }
func (r *recorder) Weather(*Transforms)    { r.stage("weather") }
func (r *recorder) Present()               { r.stage("present") }

func (r *recorder) stages() []string {
	var out []string
	for _, c := range r.calls {
		switch c {
		case "shadow", "reflection", "main", "weather", "present":
			out = append(out, c)
		}
	}
	return out
}

var testCamera = View{Eye: mgl32.Vec3{-3, 3, -3}, Front: mgl32.Vec3{0.7, -0.17, 0.7}.Normalize(), Up: WorldUp}

func TestComposerStageOrder(t *testing.T) {
	tests := []struct {
		name    string
		weather bool
		want    []string
	}{
		{"weather off", false, []string{"shadow", "reflection", "main", "present"}},
		{"weather on", true, []string{"shadow", "reflection", "main", "weather", "present"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newSceneConfig(t, func(c *config.Config) { c.Weather.Enabled = tt.weather })
			rec := newRecorder(cfg)
			comp := NewComposer(cfg, rec, rec, ComposerOptions{})

			var states []State
			comp.OnState = func(s State) { states = append(states, s) }
			comp.Frame(testCamera, 45, 1, 0.016)

			if got := rec.stages(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("stages = %v, want %v", got, tt.want)
			}
			if states[0] != ComputeTransforms || states[len(states)-1] != Present {
				t.Errorf("states = %v", states)
			}
		})
	}
}

func TestComposerToggleWeatherBetweenFrames(t *testing.T) {
	cfg := newSceneConfig(t, nil)
	rec := newRecorder(cfg)
	comp := NewComposer(cfg, rec, rec, ComposerOptions{})

	comp.Frame(testCamera, 45, 0, 0)
	cfg.ToggleWeather()
	rec.calls = nil
	comp.Frame(testCamera, 45, 0, 0)

	want := []string{"shadow", "reflection", "main", "weather", "present"}
	if got := rec.stages(); !reflect.DeepEqual(got, want) {
		t.Errorf("stages = %v, want %v", got, want)
	}
}

func TestOffscreenViewports(t *testing.T) {
	cfg := newSceneConfig(t, nil)
	rec := newRecorder(cfg)
	comp := NewComposer(cfg, rec, rec, ComposerOptions{})

	comp.Frame(testCamera, 45, 0, 0)

	if got := rec.seen["shadow"]; got != (Viewport{W: 4096, H: 4096}) {
		t.Errorf("shadow viewport = %+v", got)
	}
	if got := rec.seen["reflection"]; got != (Viewport{W: 800, H: 600}) {
		t.Errorf("reflection viewport = %+v", got)
	}
	if got := rec.seen["main"]; got != cfg.Screen() {
		t.Errorf("main viewport = %+v, want screen %+v", got, cfg.Screen())
	}
	if rec.bound != DefaultTarget {
		t.Errorf("target left bound to %d", rec.bound)
	}
}

func TestViewportRestoredAfterFullscreen(t *testing.T) {
	cfg := newSceneConfig(t, nil)
	rec := newRecorder(cfg)
	comp := NewComposer(cfg, rec, rec, ComposerOptions{})

	cfg.SetFullscreen(true)
	cfg.SetScreen(1920, 1080)
	comp.Frame(testCamera, 45, 0, 0)

	live := Viewport{W: 1920, H: 1080}
	if got := rec.seen["reflection"]; got != (Viewport{W: 800, H: 600}) {
		t.Errorf("reflection must keep its fixed size, got %+v", got)
	}
	if got := rec.seen["main"]; got != live {
		t.Errorf("main viewport = %+v, want %+v", got, live)
	}
	if rec.viewport != live {
		t.Errorf("final viewport = %+v, want %+v", rec.viewport, live)
	}
}

func TestPassEndIdempotent(t *testing.T) {
	cfg := newSceneConfig(t, nil)
	rec := newRecorder(cfg)

	p := BeginPass(rec, cfg, rec.shadow)
	p.End()
	p.End()

	want := []string{"bind:7", "viewport:4096x4096", "bind:0", "viewport:800x600"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestReflect(t *testing.T) {
	v := View{Eye: mgl32.Vec3{2, 4, -6}, Front: mgl32.Vec3{0.3, -0.5, 0.8}, Up: mgl32.Vec3{0, 1, 0}}
	const level = -1

	r := Reflect(v, level)
	if r.Eye != (mgl32.Vec3{2, 2*level - 4, -6}) {
		t.Errorf("eye = %v", r.Eye)
	}
	if r.Front != (mgl32.Vec3{0.3, 0.5, 0.8}) {
		t.Errorf("front = %v", r.Front)
	}
	if r.Up != WorldUp {
		t.Errorf("up = %v", r.Up)
	}

	manual := mgl32.LookAt(2, -6, -6, 2+0.3, -6+0.5, -6+0.8, 0, 1, 0)
	if !r.Matrix().ApproxEqualThreshold(manual, 1e-5) {
		t.Errorf("view matrix = %v, want %v", r.Matrix(), manual)
	}
}

func TestReflectScenario(t *testing.T) {
	v := View{Eye: mgl32.Vec3{0, 5, 0}, Front: mgl32.Vec3{0, -1, 0}, Up: WorldUp}
	r := Reflect(v, -1)

	// 2·(−1) − 5
	if r.Eye != (mgl32.Vec3{0, -7, 0}) {
		t.Errorf("eye = %v, want (0,-7,0)", r.Eye)
	}
	if r.Front != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("front = %v, want (0,1,0)", r.Front)
	}
}

func TestComposerReflectedView(t *testing.T) {
	cfg := newSceneConfig(t, nil)
	rec := newRecorder(cfg)
	comp := NewComposer(cfg, rec, rec, ComposerOptions{})
	comp.Frame(testCamera, 45, 0, 0)

	want := Reflect(testCamera, cfg.WaterLevel()).Matrix()
	if comp.Transforms().ReflectedView != want {
		t.Error("reflected view not derived from the live camera")
	}
}

func TestLightSpaceComputedOnce(t *testing.T) {
	cfg := newSceneConfig(t, nil)
	rec := newRecorder(cfg)
	comp := NewComposer(cfg, rec, rec, ComposerOptions{})

	first := comp.LightSpace()
	comp.Frame(testCamera, 45, 0, 0)
	moved := testCamera
	moved.Eye = moved.Eye.Add(mgl32.Vec3{5, 1, 5})
	comp.Frame(moved, 30, 1, 0.5)

	if comp.Transforms().LightSpace != first {
		t.Error("light-space matrix changed between frames")
	}

	l := cfg.Light()
	manual := mgl32.Ortho(-50, 50, -50, 50, 1, 100).Mul4(
		mgl32.LookAt(-10, 6, -10, 0, 0, 0, 0, 1, 0))
	if !first.ApproxEqualThreshold(manual, 1e-5) {
		t.Errorf("light space = %v, want %v (light %+v)", first, manual, l)
	}
}

func TestFitLightSpaceContainsBounds(t *testing.T) {
	bounds := AABB{Min: mgl32.Vec3{-10, -2, -10}, Max: mgl32.Vec3{10, 3, 10}}
	m := FitLightSpace(mgl32.Vec3{-1, 0.6, -1}.Normalize(), bounds)

	for _, x := range []float32{bounds.Min[0], bounds.Max[0]} {
		for _, y := range []float32{bounds.Min[1], bounds.Max[1]} {
			for _, z := range []float32{bounds.Min[2], bounds.Max[2]} {
				p := m.Mul4x1(mgl32.Vec4{x, y, z, 1})
				ndc := p.Vec3().Mul(1 / p[3])
				for i, c := range ndc {
					if c < -1 || c > 1 {
						t.Errorf("corner (%v,%v,%v) axis %d outside light frustum: %f", x, y, z, i, c)
					}
				}
			}
		}
	}
}

func TestAmplitudeClamp(t *testing.T) {
	cfg := newSceneConfig(t, nil)

	if got := cfg.LowerAmplitude(); got != 0 {
		t.Errorf("amplitude below zero: %f", got)
	}
	for i := 0; i < 100; i++ {
		cfg.RaiseAmplitude()
	}
	if got := cfg.Amplitude(); got != 2 {
		t.Errorf("amplitude = %f, want max 2", got)
	}
}

func TestToggles(t *testing.T) {
	cfg := newSceneConfig(t, nil)

	if cfg.WeatherEnabled() || !cfg.ToggleWeather() || !cfg.WeatherEnabled() {
		t.Error("weather toggle")
	}
	if !cfg.LightingEnabled() || cfg.ToggleLighting() {
		t.Error("lighting toggle")
	}
	if cfg.MarkerVisible() || !cfg.ToggleMarker() {
		t.Error("marker toggle")
	}
}

func TestSetScreenClamps(t *testing.T) {
	cfg := newSceneConfig(t, nil)
	cfg.SetScreen(0, -5)
	if s := cfg.Screen(); s.W != 1 || s.H != 1 {
		t.Errorf("screen = %+v", s)
	}
}

func TestStateString(t *testing.T) {
	if ShadowPass.String() != "shadow" || State(42).String() != "unknown" {
		t.Error("state names")
	}
}
