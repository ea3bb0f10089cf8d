// Package config handles scene configuration loading and management.
package config

// Config holds all application settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Shadow   ShadowConfig   `yaml:"shadow"`
	Water    WaterConfig    `yaml:"water"`
	Weather  WeatherConfig  `yaml:"weather"`
	Lighting LightingConfig `yaml:"lighting"`
	Audio    AudioConfig    `yaml:"audio"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
// Width and Height are the default window size; the reflection target is
// always allocated at this size.
type GraphicsConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	NearPlane     float32 `yaml:"near_plane"`
	FarPlane      float32 `yaml:"far_plane"`
	MaxFrameDelta float32 `yaml:"max_frame_delta"` // seconds
}

// ShadowConfig holds shadow map settings.
type ShadowConfig struct {
	Resolution   int     `yaml:"resolution"`
	Extent       float32 `yaml:"extent"` // half-size of the orthographic light frustum
	Near         float32 `yaml:"near"`
	Far          float32 `yaml:"far"`
	FitToTerrain bool    `yaml:"fit_to_terrain"`
}

// WaterConfig holds wave field settings.
type WaterConfig struct {
	Level           float32 `yaml:"level"`
	Grid            int     `yaml:"grid"`
	HorizontalScale float32 `yaml:"horizontal_scale"`
	Displacement    string  `yaml:"displacement"` // "gerstner" or "sinusoid"
	Amplitude       float32 `yaml:"amplitude"`
	AmplitudeStep   float32 `yaml:"amplitude_step"`
	MaxAmplitude    float32 `yaml:"max_amplitude"`
	Wavelength      float32 `yaml:"wavelength"`
	Speed           float32 `yaml:"speed"`
	TextureSpeed    float32 `yaml:"texture_speed"`
	TerrainReflect  float32 `yaml:"terrain_reflection"`
	SkyboxReflect   float32 `yaml:"skybox_reflection"`
}

// WeatherConfig holds weather emitter settings.
type WeatherConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Precipitation string  `yaml:"precipitation"` // "rain" or "snow"
	RainDrops     int     `yaml:"rain_drops"`
	SnowFlakes    int     `yaml:"snow_flakes"`
	FogParticles  int     `yaml:"fog_particles"`
	Radius        float32 `yaml:"radius"`
	SpawnHeight   float32 `yaml:"spawn_height"`
	FogInterval   float32 `yaml:"fog_interval"`
	FogStart      float32 `yaml:"fog_start"`
	FogEnd        float32 `yaml:"fog_end"`
	Sparks        bool    `yaml:"sparks"`
	SparkCount    int     `yaml:"spark_count"`
}

// LightingConfig holds light source settings.
type LightingConfig struct {
	Enabled    bool       `yaml:"enabled"`
	ShowMarker bool       `yaml:"show_marker"`
	Position   [3]float32 `yaml:"position"`
	Target     [3]float32 `yaml:"target"`
	Color      [3]float32 `yaml:"color"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MasterVolume float64 `yaml:"master_volume"`
	RainSound    string  `yaml:"rain_sound"`
}

// DataConfig holds asset locations.
type DataConfig struct {
	Dir       string `yaml:"dir"`
	Heightmap string `yaml:"heightmap"`
	Seed      int64  `yaml:"seed"` // procedural terrain and particle seed, 0 = time based

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         800,
			Height:        600,
			Fullscreen:    false,
			VSync:         true,
			NearPlane:     0.1,
			FarPlane:      100.0,
			MaxFrameDelta: 0.25,
		},
		Shadow: ShadowConfig{
			Resolution: 4096,
			Extent:     50.0,
			Near:       1.0,
			Far:        100.0,
		},
		Water: WaterConfig{
			Level:           -1.0,
			Grid:            100,
			HorizontalScale: 200.0,
			Displacement:    "gerstner",
			Amplitude:       0.0,
			AmplitudeStep:   0.1,
			MaxAmplitude:    2.0,
			Wavelength:      20.0,
			Speed:           1.0,
			TextureSpeed:    0.1,
			TerrainReflect:  0.9,
			SkyboxReflect:   0.3,
		},
		Weather: WeatherConfig{
			Enabled:       false,
			Precipitation: "rain",
			RainDrops:     10000,
			SnowFlakes:    2000,
			FogParticles:  2000,
			Radius:        20.0,
			SpawnHeight:   10.0,
			FogInterval:   0.5,
			FogStart:      20.0,
			FogEnd:        60.0,
			Sparks:        true,
			SparkCount:    500,
		},
		Lighting: LightingConfig{
			Enabled:    true,
			ShowMarker: false,
			Position:   [3]float32{-10, 6, -10},
			Target:     [3]float32{0, 0, 0},
			Color:      [3]float32{1, 1, 1},
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: 0.8,
			RainSound:    "rain.wav",
		},
		Data: DataConfig{
			Dir:       "data",
			Heightmap: "heightmap.bmp",

			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate clamps values that would break the renderer back to usable ones.
func (c *Config) Validate() {
	d := Default()
	if c.Graphics.Width < 1 {
		c.Graphics.Width = d.Graphics.Width
	}
	if c.Graphics.Height < 1 {
		c.Graphics.Height = d.Graphics.Height
	}
	if c.Graphics.NearPlane <= 0 {
		c.Graphics.NearPlane = d.Graphics.NearPlane
	}
	if c.Graphics.FarPlane <= c.Graphics.NearPlane {
		c.Graphics.FarPlane = c.Graphics.NearPlane * 1000
	}
	if c.Graphics.MaxFrameDelta <= 0 {
		c.Graphics.MaxFrameDelta = d.Graphics.MaxFrameDelta
	}
	if c.Shadow.Resolution <= 0 {
		c.Shadow.Resolution = d.Shadow.Resolution
	}
	if c.Shadow.Extent <= 0 {
		c.Shadow.Extent = d.Shadow.Extent
	}
	if c.Shadow.Far <= c.Shadow.Near {
		c.Shadow.Near, c.Shadow.Far = d.Shadow.Near, d.Shadow.Far
	}
	if c.Water.Grid < 1 {
		c.Water.Grid = 1
	}
	if c.Water.HorizontalScale <= 0 {
		c.Water.HorizontalScale = d.Water.HorizontalScale
	}
	if c.Water.Wavelength <= 0 {
		c.Water.Wavelength = d.Water.Wavelength
	}
	if c.Water.MaxAmplitude < 0 {
		c.Water.MaxAmplitude = 0
	}
	if c.Weather.RainDrops <= 0 {
		c.Weather.RainDrops = d.Weather.RainDrops
	}
	if c.Weather.SnowFlakes <= 0 {
		c.Weather.SnowFlakes = d.Weather.SnowFlakes
	}
	if c.Weather.FogParticles <= 0 {
		c.Weather.FogParticles = d.Weather.FogParticles
	}
	if c.Weather.SparkCount <= 0 {
		c.Weather.SparkCount = d.Weather.SparkCount
	}
	if c.Weather.FogInterval <= 0 {
		c.Weather.FogInterval = d.Weather.FogInterval
	}
	if c.Audio.MasterVolume < 0 {
		c.Audio.MasterVolume = 0
	}
	if c.Audio.MasterVolume > 1 {
		c.Audio.MasterVolume = 1
	}
}
