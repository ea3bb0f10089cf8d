// Package audio plays the looping weather ambience.
package audio

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Manager owns the speaker and one looping ambience track.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	masterVolume float64

	track *track
}

type track struct {
	name     string
	streamer beep.StreamSeekCloser
	loop     beep.Streamer // endless, at the manager's sample rate
	ctrl     *beep.Ctrl
	volume   *effects.Volume
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sampleRate:   DefaultSampleRate,
	}
}

// Init initializes the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.initialized = true

	if m.track != nil {
		speaker.Play(m.track.volume)
	}
	return nil
}

// Close stops playback and shuts the speaker down.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
		m.initialized = false
	}
	if m.track != nil {
		m.track.streamer.Close()
		m.track = nil
	}
}

// IsInitialized returns whether the speaker is running.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
	m.withSpeaker(m.applyVolume)
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// LoadAmbience decodes a WAV loop and queues it paused. Any previous track
// is replaced.
func (m *Manager) LoadAmbience(data []byte, name string) error {
	streamer, format, err := wav.Decode(seekCloser{bytes.NewReader(data)})
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}

	loop, err := beep.Loop2(streamer)
	if err != nil {
		streamer.Close()
		return fmt.Errorf("loop wav %s: %w", name, err)
	}
	// The resampler wraps the loop so it never sees the end of the file.
	if format.SampleRate != m.sampleRate {
		loop = beep.Resample(4, format.SampleRate, m.sampleRate, loop)
	}

	t := &track{
		name:     name,
		streamer: streamer,
		loop:     loop,
	}
	t.ctrl = &beep.Ctrl{Streamer: t.loop, Paused: true}
	t.volume = &effects.Volume{Streamer: t.ctrl, Base: 10}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.track != nil {
		m.withSpeaker(func() { m.track.ctrl.Streamer = nil })
		m.track.streamer.Close()
	}
	m.track = t
	m.applyVolume()
	if m.initialized {
		speaker.Play(t.volume)
	}
	return nil
}

// SetAmbience starts or pauses the loaded loop. Without a track it is a no-op.
func (m *Manager) SetAmbience(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.track == nil {
		return
	}
	m.withSpeaker(func() { m.track.ctrl.Paused = !on })
}

// AmbiencePlaying reports whether the loop is loaded and unpaused.
func (m *Manager) AmbiencePlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.track == nil {
		return false
	}
	playing := false
	m.withSpeaker(func() { playing = !m.track.ctrl.Paused })
	return playing
}

// AmbienceName returns the name of the loaded track.
func (m *Manager) AmbienceName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.track == nil {
		return ""
	}
	return m.track.name
}

// withSpeaker runs fn under the speaker lock when the speaker is running.
func (m *Manager) withSpeaker(fn func()) {
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

func (m *Manager) applyVolume() {
	if m.track == nil {
		return
	}
	v := m.track.volume
	v.Silent = m.masterVolume <= 0
	v.Volume = volumeToDb(m.masterVolume) / 20
}

// volumeToDb converts a 0-1 volume to decibels: 1 -> 0 dB, 0.5 -> -6 dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// seekCloser keeps the reader seekable so the decoder can rewind it.
type seekCloser struct {
	*bytes.Reader
}

func (seekCloser) Close() error { return nil }
