package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -1, 1},     // Full volume should be ~0dB
		{0.5, -8, -4},    // Half volume should be around -6dB
		{0.25, -14, -10}, // Quarter volume should be around -12dB
		{0.0, -200, -90}, // Zero volume should be very negative
	}

	for _, tt := range tests {
		db := volumeToDb(tt.vol)
		if db < tt.min || db > tt.max {
			t.Errorf("volumeToDb(%f) = %f, want between %f and %f", tt.vol, db, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m.MasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.MasterVolume())
	}
	if m.IsInitialized() {
		t.Error("manager should not be initialized before Init")
	}
	if m.AmbiencePlaying() {
		t.Error("no track loaded, nothing should play")
	}

	m.SetMasterVolume(1.5)
	if m.MasterVolume() != 1 {
		t.Errorf("master volume = %f, want clamped 1", m.MasterVolume())
	}

	// No track: must not panic.
	m.SetAmbience(true)
}

// silentWAV writes a short silent stereo WAV and returns its bytes.
func silentWAV(t *testing.T, samples int) []byte {
	t.Helper()
	return silentWAVAt(t, DefaultSampleRate, samples)
}

func silentWAVAt(t *testing.T, rate beep.SampleRate, samples int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rain.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(samples), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return data
}

func TestLoadAmbienceToggle(t *testing.T) {
	m := New()
	if err := m.LoadAmbience(silentWAV(t, 100), "rain.wav"); err != nil {
		t.Fatalf("LoadAmbience: %v", err)
	}
	if m.AmbienceName() != "rain.wav" {
		t.Errorf("name = %q, want rain.wav", m.AmbienceName())
	}
	if m.AmbiencePlaying() {
		t.Error("a loaded track starts paused")
	}

	m.SetAmbience(true)
	if !m.AmbiencePlaying() {
		t.Error("expected ambience to play after SetAmbience(true)")
	}
	m.SetAmbience(false)
	if m.AmbiencePlaying() {
		t.Error("expected ambience to pause after SetAmbience(false)")
	}

	m.Close()
	if m.AmbienceName() != "" {
		t.Error("Close should drop the track")
	}
}

func TestLoadAmbienceInvalid(t *testing.T) {
	m := New()
	if err := m.LoadAmbience([]byte("not a wav file"), "broken.wav"); err == nil {
		t.Fatal("expected decode error")
	}
	if m.AmbienceName() != "" {
		t.Error("a failed load must not replace the track")
	}
}

func TestAmbienceLoops(t *testing.T) {
	tests := []struct {
		name string
		rate beep.SampleRate
	}{
		{"native rate", DefaultSampleRate},
		{"resampled", 22050},
		{"upsampled", 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			if err := m.LoadAmbience(silentWAVAt(t, tt.rate, 1000), "rain.wav"); err != nil {
				t.Fatalf("LoadAmbience: %v", err)
			}

			// Many passes over the 1000-sample file.
			buf := make([][2]float64, 512)
			for i := 0; i < 40; i++ {
				n, ok := m.track.loop.Stream(buf)
				if n != len(buf) || !ok {
					t.Fatalf("call %d: Stream = (%d, %v), want (%d, true)", i, n, ok, len(buf))
				}
			}
		})
	}
}

func TestVolumeApplied(t *testing.T) {
	m := New()
	if err := m.LoadAmbience(silentWAV(t, 10), "rain.wav"); err != nil {
		t.Fatalf("LoadAmbience: %v", err)
	}

	m.SetMasterVolume(0.5)
	// Base 10: Volume is in bels, so 0.5 -> about -0.301.
	want := math.Log10(0.5)
	if got := m.track.volume.Volume; math.Abs(got-want) > 1e-9 {
		t.Errorf("volume = %f, want %f", got, want)
	}

	m.SetMasterVolume(0)
	if !m.track.volume.Silent {
		t.Error("zero master volume should silence the track")
	}
}
