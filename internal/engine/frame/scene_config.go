package frame

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/tidewater/internal/config"
)

// SceneConfig holds the tunables shared by every render component.
// It is created once and passed by pointer; all mutation goes through methods.
type SceneConfig struct {
	waterLevel float32

	amplitude     float32
	amplitudeStep float32
	maxAmplitude  float32

	weather  bool
	snow     bool
	lighting bool
	marker   bool

	screen     Viewport
	reflection Viewport
	shadowRes  int32
	fullscreen bool

	near float32
	far  float32

	light Light
}

// NewSceneConfig derives the runtime scene state from the loaded configuration.
// The reflection target keeps the configured window size for the whole run.
func NewSceneConfig(cfg *config.Config) *SceneConfig {
	g := cfg.Graphics
	l := cfg.Lighting
	return &SceneConfig{
		waterLevel:    cfg.Water.Level,
		amplitude:     mgl32.Clamp(cfg.Water.Amplitude, 0, cfg.Water.MaxAmplitude),
		amplitudeStep: cfg.Water.AmplitudeStep,
		maxAmplitude:  cfg.Water.MaxAmplitude,
		weather:       cfg.Weather.Enabled,
		snow:          cfg.Weather.Precipitation == "snow",
		lighting:      l.Enabled,
		marker:        l.ShowMarker,
		screen:        Viewport{W: int32(g.Width), H: int32(g.Height)},
		reflection:    Viewport{W: int32(g.Width), H: int32(g.Height)},
		shadowRes:     int32(cfg.Shadow.Resolution),
		fullscreen:    g.Fullscreen,
		near:          g.NearPlane,
		far:           g.FarPlane,
		light: Light{
			Position: l.Position,
			Target:   l.Target,
			Color:    l.Color,
			Extent:   cfg.Shadow.Extent,
			Near:     cfg.Shadow.Near,
			Far:      cfg.Shadow.Far,
		},
	}
}

// WaterLevel returns the height of the water plane.
func (c *SceneConfig) WaterLevel() float32 { return c.waterLevel }

// Amplitude returns the current wave amplitude.
func (c *SceneConfig) Amplitude() float32 { return c.amplitude }

// RaiseAmplitude increases the wave amplitude by one step, up to the maximum.
func (c *SceneConfig) RaiseAmplitude() float32 {
	return c.AdjustAmplitude(c.amplitudeStep)
}

// LowerAmplitude decreases the wave amplitude by one step, down to zero.
func (c *SceneConfig) LowerAmplitude() float32 {
	return c.AdjustAmplitude(-c.amplitudeStep)
}

// AdjustAmplitude adds delta to the amplitude, clamped to [0, max].
func (c *SceneConfig) AdjustAmplitude(delta float32) float32 {
	c.amplitude = mgl32.Clamp(c.amplitude+delta, 0, c.maxAmplitude)
	return c.amplitude
}

// WeatherEnabled reports whether the weather overlay is drawn.
func (c *SceneConfig) WeatherEnabled() bool { return c.weather }

// ToggleWeather flips the weather overlay and returns the new state.
func (c *SceneConfig) ToggleWeather() bool {
	c.weather = !c.weather
	return c.weather
}

// Snow reports whether precipitation is snow rather than rain.
func (c *SceneConfig) Snow() bool { return c.snow }

// LightingEnabled reports whether shadowed lighting is applied.
func (c *SceneConfig) LightingEnabled() bool { return c.lighting }

// ToggleLighting flips lighting and returns the new state.
func (c *SceneConfig) ToggleLighting() bool {
	c.lighting = !c.lighting
	return c.lighting
}

// MarkerVisible reports whether the light-source marker is drawn.
func (c *SceneConfig) MarkerVisible() bool { return c.marker }

// ToggleMarker flips the light marker and returns the new state.
func (c *SceneConfig) ToggleMarker() bool {
	c.marker = !c.marker
	return c.marker
}

// Screen returns the live viewport of the default target.
func (c *SceneConfig) Screen() Viewport { return c.screen }

// SetScreen records a new drawable size, e.g. after a fullscreen toggle.
func (c *SceneConfig) SetScreen(width, height int32) {
	c.screen = Viewport{W: max(width, 1), H: max(height, 1)}
}

// Aspect returns the live screen aspect ratio.
func (c *SceneConfig) Aspect() float32 {
	return float32(c.screen.W) / float32(c.screen.H)
}

// ReflectionViewport returns the fixed size of the reflection target.
func (c *SceneConfig) ReflectionViewport() Viewport { return c.reflection }

// ShadowResolution returns the side length of the square depth map.
func (c *SceneConfig) ShadowResolution() int32 { return c.shadowRes }

// Fullscreen reports the current display mode.
func (c *SceneConfig) Fullscreen() bool { return c.fullscreen }

// SetFullscreen records the display mode.
func (c *SceneConfig) SetFullscreen(on bool) { c.fullscreen = on }

// ClipPlanes returns the camera near and far distances.
func (c *SceneConfig) ClipPlanes() (near, far float32) { return c.near, c.far }

// Light returns the static directional light.
func (c *SceneConfig) Light() Light { return c.light }
