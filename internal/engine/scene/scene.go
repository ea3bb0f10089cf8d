// Package scene draws the terrain, water, sky and particle effects through
// the passes sequenced by the frame composer.
package scene

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/tidewater/internal/assets"
	"github.com/Faultbox/tidewater/internal/config"
	"github.com/Faultbox/tidewater/internal/engine/frame"
	"github.com/Faultbox/tidewater/internal/engine/framebuffer"
	"github.com/Faultbox/tidewater/internal/engine/particle"
	"github.com/Faultbox/tidewater/internal/engine/scene/shaders"
	"github.com/Faultbox/tidewater/internal/engine/shader"
	"github.com/Faultbox/tidewater/internal/engine/shadow"
	"github.com/Faultbox/tidewater/internal/engine/terrain"
	"github.com/Faultbox/tidewater/internal/engine/texture"
	"github.com/Faultbox/tidewater/internal/engine/water"
)

// Asset names under the data directory.
const (
	SkyboxDir      = "skybox"
	SkyboxExt      = "bmp"
	WaterTexture   = "water.bmp"
	TerrainTexture = "terrain.bmp"
	DetailTexture  = "detail.bmp"
	RainSprite     = "rain.png"
	SnowSprite     = "snow.png"
	FogSprite      = "fog.png"
	SparkSprite    = "spark.png"
)

var (
	clearColor = mgl32.Vec4{0.2, 0.3, 0.3, 1}
	fogColor   = mgl32.Vec3{0.8, 0.8, 0.85}
)

// Options carries the prepared simulation state and resources the scene draws.
type Options struct {
	Assets  *assets.Manager
	Terrain *terrain.Mesh
	Field   *water.Field
	Rand    *rand.Rand
	Logger  *zap.Logger

	// Present swaps the window buffers at the end of a frame.
	Present func()
}

// Scene owns every GL resource of the demo and implements frame.Stages.
type Scene struct {
	cfg     *frame.SceneConfig
	weather config.WeatherConfig
	log     *zap.Logger
	present func()

	shadowMap  *shadow.Map
	reflection *framebuffer.Framebuffer
	depth      *shader.Program
	particles  *shader.Program

	sky     *SkyRenderer
	terrain *TerrainRenderer
	water   *WaterRenderer
	marker  *LightRenderer

	fog    *ParticleRenderer
	precip *ParticleRenderer
	sparks *ParticleRenderer // nil when disabled

	shading Shading
}

// New creates all renderers. Missing textures are logged and replaced by a
// blank texture; shader or framebuffer failures are returned.
func New(cfg *frame.SceneConfig, app *config.Config, opts Options) (*Scene, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	s := &Scene{
		cfg:     cfg,
		weather: app.Weather,
		log:     opts.Logger,
		present: opts.Present,
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if err := s.init(app, opts); err != nil {
		s.Destroy()
		return nil, err
	}
	return s, nil
}

func (s *Scene) init(app *config.Config, opts Options) error {
	var err error

	s.shadowMap, err = shadow.NewMap(s.cfg.ShadowResolution())
	if err != nil {
		return fmt.Errorf("creating shadow map: %w", err)
	}

	rv := s.cfg.ReflectionViewport()
	s.reflection, err = framebuffer.New(rv.W, rv.H)
	if err != nil {
		return fmt.Errorf("creating reflection target: %w", err)
	}

	s.depth, err = shader.New("shadow", shaders.ShadowVertexShader, shaders.ShadowFragmentShader)
	if err != nil {
		return err
	}
	s.particles, err = shader.New("particle", shaders.ParticleVertexShader, shaders.ParticleFragmentShader)
	if err != nil {
		return err
	}

	cubemap, err := texture.LoadCubemap(opts.Assets, SkyboxDir, SkyboxExt)
	if err != nil {
		s.log.Warn("skybox incomplete, using blank faces", zap.String("dir", SkyboxDir), zap.Error(err))
	}
	s.sky, err = NewSkyRenderer(cubemap)
	if err != nil {
		return fmt.Errorf("creating sky renderer: %w", err)
	}

	s.terrain, err = NewTerrainRenderer(opts.Terrain, TerrainTextures{
		Main:   s.loadTexture(opts.Assets, TerrainTexture),
		Detail: s.loadTexture(opts.Assets, DetailTexture),
		Shadow: s.shadowMap.DepthTexture(),
	}, s.depth)
	if err != nil {
		return fmt.Errorf("creating terrain renderer: %w", err)
	}

	s.water, err = NewWaterRenderer(opts.Field, WaterOptions{
		Level:             s.cfg.WaterLevel(),
		HorizontalScale:   app.Water.HorizontalScale,
		TextureSpeed:      app.Water.TextureSpeed,
		TerrainReflection: app.Water.TerrainReflect,
		SkyboxReflection:  app.Water.SkyboxReflect,
	}, WaterTextures{
		Surface:    s.loadTexture(opts.Assets, WaterTexture),
		Shadow:     s.shadowMap.DepthTexture(),
		Reflection: s.reflection.ColorTexture(),
		Sky:        s.sky.Cubemap(),
	})
	if err != nil {
		return fmt.Errorf("creating water renderer: %w", err)
	}

	light := s.cfg.Light()
	s.marker, err = NewLightRenderer(light.Position, light.Color)
	if err != nil {
		return fmt.Errorf("creating light marker: %w", err)
	}

	s.initParticles(opts)
	return nil
}

func (s *Scene) initParticles(opts Options) {
	ground := s.cfg.WaterLevel()
	w := s.weather

	fog := particle.DefaultFogOptions(ground)
	fog.Capacity = w.FogParticles
	fog.Interval = w.FogInterval
	fog.Radius = w.Radius
	s.fog = NewParticleRenderer(s.particles, particle.NewFog(fog, opts.Rand),
		s.loadTexture(opts.Assets, FogSprite))

	if s.cfg.Snow() {
		snow := particle.DefaultSnowOptions(ground)
		snow.Capacity = w.SnowFlakes
		snow.Radius = w.Radius
		snow.SpawnHeight = w.SpawnHeight
		s.precip = NewParticleRenderer(s.particles, particle.NewSnow(snow, opts.Rand),
			s.loadTexture(opts.Assets, SnowSprite))
	} else {
		rain := particle.DefaultRainOptions(ground)
		rain.Capacity = w.RainDrops
		rain.Radius = w.Radius
		rain.SpawnHeight = w.SpawnHeight
		s.precip = NewParticleRenderer(s.particles, particle.NewRain(rain, opts.Rand),
			s.loadTexture(opts.Assets, RainSprite))
	}

	if w.Sparks {
		sparks := particle.DefaultSpiralOptions()
		sparks.Capacity = w.SparkCount
		s.sparks = NewParticleRenderer(s.particles, particle.NewSpiral(sparks, opts.Rand),
			s.loadTexture(opts.Assets, SparkSprite))
	}
}

// loadTexture never fails; a missing image yields the blank texture.
func (s *Scene) loadTexture(m *assets.Manager, name string) uint32 {
	id, err := texture.Load2D(m, name)
	if err != nil {
		s.log.Warn("texture unavailable, using blank", zap.String("path", name), zap.Error(err))
	}
	return id
}

// Bounds returns the terrain box used to fit the light frustum.
func (s *Scene) Bounds() frame.AABB {
	b := s.terrain.Bounds()
	return frame.AABB{Min: b.Min, Max: b.Max}
}

// Update advances the simulation by dt at absolute time t. Weather pools only
// run while weather is shown; sparks only while the marker is visible.
func (s *Scene) Update(t, dt float32, camPos mgl32.Vec3) {
	s.water.Update(t, dt, s.cfg.Amplitude())

	if s.cfg.WeatherEnabled() {
		s.fog.Emitter().Step(dt, camPos)
		s.precip.Emitter().Step(dt, camPos)
	}
	if s.sparks != nil && s.cfg.MarkerVisible() {
		s.sparks.Emitter().Step(dt, s.cfg.Light().Position)
	}
}

// Emitters returns the active particle pools, for diagnostics.
func (s *Scene) Emitters() map[string]*particle.Emitter {
	out := map[string]*particle.Emitter{
		"fog":           s.fog.Emitter(),
		"precipitation": s.precip.Emitter(),
	}
	if s.sparks != nil {
		out["sparks"] = s.sparks.Emitter()
	}
	return out
}

// ShadowTarget implements frame.Stages.
func (s *Scene) ShadowTarget() frame.Target { return s.shadowMap }

// ReflectionTarget implements frame.Stages.
func (s *Scene) ReflectionTarget() frame.Target { return s.reflection }

// Shadow draws the terrain depth from the light.
func (s *Scene) Shadow(t *frame.Transforms) {
	s.shadowMap.BeginDepth()
	s.terrain.RenderDepth(t.LightSpace)
	s.shadowMap.EndDepth()
}

// Reflection draws the terrain above the water from the mirrored camera.
// Alpha is cleared to zero so the water can tell where nothing was drawn.
func (s *Scene) Reflection(t *frame.Transforms) {
	s.reflection.Clear(clearColor[0], clearColor[1], clearColor[2], 0)
	s.updateShading(t)
	s.terrain.Render(t.ReflectedView, t.Projection, &s.shading, true)
}

// Main draws sky, terrain, water and the light marker to the window.
func (s *Scene) Main(t *frame.Transforms) {
	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	s.updateShading(t)
	s.sky.Render(t.View, t.Projection, s.shading.Weather, fogColor)
	s.terrain.Render(t.View, t.Projection, &s.shading, false)
	s.water.Render(t.View, t.Projection, t.ReflectedView, &s.shading)

	if s.cfg.MarkerVisible() {
		s.marker.Render(t.View, t.Projection)
		if s.sparks != nil {
			s.sparks.Upload()
			s.sparks.Render(t.View, t.Projection)
		}
	}
}

// Weather draws fog then precipitation over the finished scene.
func (s *Scene) Weather(t *frame.Transforms) {
	s.fog.Upload()
	s.fog.Render(t.View, t.Projection)
	s.precip.Upload()
	s.precip.Render(t.View, t.Projection)
}

// Present swaps buffers.
func (s *Scene) Present() {
	if s.present != nil {
		s.present()
	}
}

func (s *Scene) updateShading(t *frame.Transforms) {
	light := s.cfg.Light()
	s.shading = Shading{
		Lighting:   s.cfg.LightingEnabled(),
		LightPos:   light.Position,
		LightColor: light.Color,
		LightSpace: t.LightSpace,
		Weather:    s.cfg.WeatherEnabled(),
		CameraPos:  t.Camera.Eye,
		FogColor:   fogColor,
		FogStart:   s.weather.FogStart,
		FogEnd:     s.weather.FogEnd,
	}
}

// Destroy releases all GPU resources. Safe on a partially built scene.
func (s *Scene) Destroy() {
	for _, pr := range []*ParticleRenderer{s.fog, s.precip, s.sparks} {
		if pr != nil {
			pr.Destroy()
		}
	}
	if s.marker != nil {
		s.marker.Destroy()
	}
	if s.water != nil {
		s.water.Destroy()
	}
	if s.terrain != nil {
		s.terrain.Destroy()
	}
	if s.sky != nil {
		s.sky.Destroy()
	}
	if s.particles != nil {
		s.particles.Destroy()
	}
	if s.depth != nil {
		s.depth.Destroy()
	}
	if s.reflection != nil {
		s.reflection.Destroy()
	}
	if s.shadowMap != nil {
		s.shadowMap.Destroy()
	}
}

var _ frame.Stages = (*Scene)(nil)
