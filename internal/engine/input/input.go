// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int32
	Height int32
	DX     int32 // relative mouse motion
	DY     int32
	Wheel  float32
}

// Input collects the events of one frame plus held-key state.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool

	mouseDX, mouseDY float32
	wheel            float32
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events for this frame.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.mouseDX, i.mouseDY, i.wheel = 0, 0, 0

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  e.Data1,
					Height: e.Data2,
				})
			}

		case *sdl.KeyboardEvent:
			sc := e.Keysym.Scancode
			if e.Type == sdl.KEYDOWN {
				i.held[sc] = true
				// Toggles fire once per press, not on auto-repeat.
				if e.Repeat == 0 {
					i.events = append(i.events, Event{Type: EventKeyDown, Key: sc})
				}
			} else if e.Type == sdl.KEYUP {
				delete(i.held, sc)
				i.events = append(i.events, Event{Type: EventKeyUp, Key: sc})
			}

		case *sdl.MouseMotionEvent:
			i.mouseDX += float32(e.XRel)
			i.mouseDY += float32(e.YRel)
			i.events = append(i.events, Event{Type: EventMouseMove, DX: e.XRel, DY: e.YRel})

		case *sdl.MouseWheelEvent:
			i.wheel += float32(e.Y)
			i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: float32(e.Y)})
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether a key is currently down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// MouseDelta returns the accumulated relative motion of this frame.
// Screen y grows downward.
func (i *Input) MouseDelta() (dx, dy float32) {
	return i.mouseDX, i.mouseDY
}

// Wheel returns the accumulated vertical scroll of this frame.
func (i *Input) Wheel() float32 {
	return i.wheel
}
