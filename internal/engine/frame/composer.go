// Package frame sequences the render passes of one frame and the transforms
// that tie them together.
package frame

import (
	"github.com/go-gl/mathgl/mgl32"
)

// State names a step of the per-frame cycle.
type State int

const (
	ComputeTransforms State = iota
	ShadowPass
	ReflectionPass
	MainPass
	WeatherPass
	Present
)

var stateNames = [...]string{
	ComputeTransforms: "compute-transforms",
	ShadowPass:        "shadow",
	ReflectionPass:    "reflection",
	MainPass:          "main",
	WeatherPass:       "weather",
	Present:           "present",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Transforms are the matrices shared by all passes of a frame.
type Transforms struct {
	Camera        View
	View          mgl32.Mat4
	Projection    mgl32.Mat4
	ReflectedView mgl32.Mat4
	LightSpace    mgl32.Mat4
	Time          float32
	Delta         float32
}

// Stages draws the content of each pass. The composer owns target binding
// and viewport restore around the offscreen stages.
type Stages interface {
	ShadowTarget() Target
	ReflectionTarget() Target

	Shadow(t *Transforms)
	Reflection(t *Transforms)
	Main(t *Transforms)
	Weather(t *Transforms)
	Present()
}

// ComposerOptions configures the light frustum.
type ComposerOptions struct {
	// FitBounds, when set, sizes the light frustum to this box instead of the
	// light's fixed extent.
	FitBounds *AABB
}

// Composer runs ComputeTransforms → ShadowPass → ReflectionPass → MainPass →
// WeatherPass (when enabled) → Present once per frame.
type Composer struct {
	cfg        *SceneConfig
	dev        Device
	stages     Stages
	lightSpace mgl32.Mat4
	transforms Transforms

	// OnState, if set, is called as each state is entered.
	OnState func(State)
}

// NewComposer computes the light-space matrix once; the light never moves.
func NewComposer(cfg *SceneConfig, dev Device, stages Stages, opts ComposerOptions) *Composer {
	light := cfg.Light()
	lightSpace := light.LightSpace()
	if opts.FitBounds != nil {
		lightSpace = FitLightSpace(light.Direction(), *opts.FitBounds)
	}
	return &Composer{
		cfg:        cfg,
		dev:        dev,
		stages:     stages,
		lightSpace: lightSpace,
	}
}

// LightSpace returns the static light-space matrix.
func (c *Composer) LightSpace() mgl32.Mat4 { return c.lightSpace }

// Transforms returns the transforms of the last composed frame.
func (c *Composer) Transforms() *Transforms { return &c.transforms }

// Frame renders one frame from the given camera. fovy is in degrees.
func (c *Composer) Frame(cam View, fovy, time, dt float32) {
	c.enter(ComputeTransforms)
	t := c.computeTransforms(cam, fovy, time, dt)

	c.enter(ShadowPass)
	pass := BeginPass(c.dev, c.cfg, c.stages.ShadowTarget())
	c.stages.Shadow(t)
	pass.End()

	c.enter(ReflectionPass)
	pass = BeginPass(c.dev, c.cfg, c.stages.ReflectionTarget())
	c.stages.Reflection(t)
	pass.End()

	c.enter(MainPass)
	c.stages.Main(t)

	if c.cfg.WeatherEnabled() {
		c.enter(WeatherPass)
		c.stages.Weather(t)
	}

	c.enter(Present)
	c.stages.Present()
}

func (c *Composer) computeTransforms(cam View, fovy, time, dt float32) *Transforms {
	near, far := c.cfg.ClipPlanes()
	t := &c.transforms
	t.Camera = cam
	t.View = cam.Matrix()
	t.Projection = mgl32.Perspective(mgl32.DegToRad(fovy), c.cfg.Aspect(), near, far)
	t.ReflectedView = Reflect(cam, c.cfg.WaterLevel()).Matrix()
	t.LightSpace = c.lightSpace
	t.Time = time
	t.Delta = dt
	return t
}

func (c *Composer) enter(s State) {
	if c.OnState != nil {
		c.OnState(s)
	}
}
