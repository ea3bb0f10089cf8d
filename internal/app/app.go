// Package app wires the window, simulation and renderer into the frame loop.
package app

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tidewater/internal/assets"
	"github.com/Faultbox/tidewater/internal/config"
	"github.com/Faultbox/tidewater/internal/engine/audio"
	"github.com/Faultbox/tidewater/internal/engine/camera"
	"github.com/Faultbox/tidewater/internal/engine/debug"
	"github.com/Faultbox/tidewater/internal/engine/frame"
	"github.com/Faultbox/tidewater/internal/engine/input"
	"github.com/Faultbox/tidewater/internal/engine/scene"
	"github.com/Faultbox/tidewater/internal/engine/terrain"
	"github.com/Faultbox/tidewater/internal/engine/water"
	"github.com/Faultbox/tidewater/internal/engine/window"
	"github.com/Faultbox/tidewater/internal/logger"
)

// Title is the window title.
const Title = "Tidewater"

// App is the running demo.
type App struct {
	cfg     *config.Config
	scene   *frame.SceneConfig
	log     *zap.Logger
	running bool

	window   *window.Window
	input    *input.Input
	camera   *camera.FlyCamera
	assets   *assets.Manager
	renderer *scene.Scene
	composer *frame.Composer
	audio    *audio.Manager
	clock    *frame.Clock

	screenshots *debug.Screenshots
	capture     bool // save the next frame before it is presented
}

// New opens the window and builds the scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		scene:  frame.NewSceneConfig(cfg),
		log:    logger.Named("app"),
		input:  input.New(),
		camera: camera.NewFlyCamera(),
		assets: assets.NewManager(cfg.Data.Dir),

		screenshots: debug.NewScreenshots(cfg.Data.ScreenshotDir, "tidewater"),
	}

	a.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("data", cfg.Data.Dir),
	)

	var err error
	a.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	w, h := a.window.DrawableSize()
	a.scene.SetScreen(w, h)
	a.scene.SetFullscreen(a.window.Fullscreen())

	seed := cfg.Data.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	a.renderer, err = scene.New(a.scene, cfg, scene.Options{
		Assets:  a.assets,
		Terrain: a.buildTerrain(seed),
		Field:   a.buildField(),
		Rand:    rng,
		Logger:  logger.Named("scene"),
		Present: a.present,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	var opts frame.ComposerOptions
	if cfg.Shadow.FitToTerrain {
		bounds := a.renderer.Bounds()
		opts.FitBounds = &bounds
	}
	a.composer = frame.NewComposer(a.scene, scene.GLDevice{}, a.renderer, opts)
	if cfg.Logging.Level == "debug" {
		a.composer.OnState = func(s frame.State) {
			logger.Sugar.Debugf("frame state %s", s)
		}
	}

	a.initAudio()

	a.log.Info("initialized successfully", zap.Int64("seed", seed))
	return a, nil
}

// buildTerrain loads the heightmap, or generates one when it is unavailable.
func (a *App) buildTerrain(seed int64) *terrain.Mesh {
	h, err := terrain.LoadHeightmap(a.assets, a.cfg.Data.Heightmap)
	if err != nil {
		a.log.Warn("heightmap unavailable, generating terrain",
			zap.String("path", a.cfg.Data.Heightmap),
			zap.Bool("missing", errors.Is(err, assets.ErrNotFound)),
			zap.Error(err),
		)
		h = terrain.Generate(terrain.ProceduralSize, seed)
	}
	return terrain.BuildMesh(h, terrain.DefaultScale(a.scene.WaterLevel()))
}

func (a *App) buildField() *water.Field {
	wc := a.cfg.Water
	displace, err := water.Lookup(wc.Displacement)
	if err != nil {
		a.log.Warn("unknown displacement, using gerstner", zap.String("name", wc.Displacement))
		displace = water.Gerstner
	}
	return water.NewField(water.FieldOptions{
		Grid:         wc.Grid,
		Displacement: displace,
		Params: water.Params{
			Amplitude:       a.scene.Amplitude(),
			Frequency:       water.FrequencyFromWavelength(wc.Wavelength),
			Speed:           wc.Speed,
			HorizontalScale: wc.HorizontalScale,
		},
	})
}

// initAudio is best effort: any failure leaves the demo silent.
func (a *App) initAudio() {
	ac := a.cfg.Audio
	if !ac.Enabled {
		return
	}
	m := audio.New()
	if err := m.Init(); err != nil {
		a.log.Warn("audio disabled", zap.Error(err))
		return
	}
	a.audio = m
	m.SetMasterVolume(ac.MasterVolume)

	data, err := a.assets.Load(ac.RainSound)
	if err != nil {
		a.log.Warn("rain sound unavailable", zap.String("path", ac.RainSound), zap.Error(err))
		return
	}
	if err := m.LoadAmbience(data, ac.RainSound); err != nil {
		a.log.Warn("rain sound unreadable", zap.String("path", ac.RainSound), zap.Error(err))
		return
	}
	a.syncAmbience()
}

// syncAmbience plays rain only while rain is falling.
func (a *App) syncAmbience() {
	if a.audio != nil {
		a.audio.SetAmbience(a.scene.WeatherEnabled() && !a.scene.Snow())
	}
}

// present swaps buffers, saving the back buffer first when a capture is pending.
func (a *App) present() {
	if a.capture {
		a.capture = false
		v := a.scene.Screen()
		path, err := a.screenshots.Save(scene.GLDevice{}.ReadPixels(v), int(v.W), int(v.H))
		if err != nil {
			a.log.Warn("screenshot failed", zap.Error(err))
		} else {
			a.log.Info("screenshot saved", zap.String("path", path))
		}
	}
	a.window.SwapBuffers()
}

// Run executes the frame loop until quit.
func (a *App) Run() error {
	a.running = true
	a.clock = frame.NewClock(time.Now(), a.cfg.Graphics.MaxFrameDelta)

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting frame loop")

	for a.running {
		// 1. Input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// 2. Simulation
		t, dt := a.clock.Tick(time.Now())
		a.updateCamera(dt)
		a.renderer.Update(t, dt, a.camera.Position)

		// 3. Render and present
		a.composer.Frame(frame.View{
			Eye:   a.camera.Position,
			Front: a.camera.Front(),
			Up:    a.camera.Up(),
		}, a.camera.Zoom, t, dt)

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Sugar.Debugf("fps %d, dt %.2fms", frameCount, dt*1000)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.scene.SetScreen(w, h)
		case input.EventKeyDown:
			a.handleKey(event.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		a.log.Debug("amplitude", zap.Float32("value", a.scene.RaiseAmplitude()))
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		a.log.Debug("amplitude", zap.Float32("value", a.scene.LowerAmplitude()))
	case sdl.SCANCODE_N:
		a.log.Info("weather", zap.Bool("enabled", a.scene.ToggleWeather()))
		a.syncAmbience()
	case sdl.SCANCODE_L:
		a.log.Info("lighting", zap.Bool("enabled", a.scene.ToggleLighting()))
	case sdl.SCANCODE_M:
		a.log.Info("light marker", zap.Bool("visible", a.scene.ToggleMarker()))
	case sdl.SCANCODE_F12:
		a.capture = true
	case sdl.SCANCODE_F:
		w, h, err := a.window.ToggleFullscreen()
		if err != nil {
			a.log.Warn("fullscreen toggle failed", zap.Error(err))
			return
		}
		a.scene.SetFullscreen(a.window.Fullscreen())
		a.scene.SetScreen(w, h)
	}
}

func (a *App) updateCamera(dt float32) {
	moves := []struct {
		key sdl.Scancode
		dir camera.Direction
	}{
		{sdl.SCANCODE_W, camera.Forward},
		{sdl.SCANCODE_S, camera.Backward},
		{sdl.SCANCODE_A, camera.Left},
		{sdl.SCANCODE_D, camera.Right},
	}
	for _, m := range moves {
		if a.input.IsKeyHeld(m.key) {
			a.camera.HandleMovement(m.dir)
		}
	}

	dx, dy := a.input.MouseDelta()
	if dx != 0 || dy != 0 {
		// Screen y grows downward; moving the mouse up looks up.
		a.camera.HandleMouse(dx, -dy)
	}
	if wheel := a.input.Wheel(); wheel != 0 {
		a.camera.HandleZoom(wheel)
	}
	a.camera.Update(dt)
}

// Close releases all resources.
func (a *App) Close() {
	a.log.Info("closing")

	if a.audio != nil {
		a.audio.Close()
	}
	if a.renderer != nil {
		a.renderer.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.assets != nil {
		hits, misses := a.assets.Stats()
		a.log.Debug("asset cache", zap.Int("hits", hits), zap.Int("misses", misses))
		a.assets.Close()
	}
}
