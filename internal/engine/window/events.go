package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/shading-sandbox/internal/engine/input"
)

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_Q:      input.KeyQ,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_F:      input.KeyF,
	sdl.SCANCODE_R:      input.KeyR,
	sdl.SCANCODE_M:      input.KeyM,
	sdl.SCANCODE_LCTRL:  input.KeyLeftCtrl,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
	sdl.SCANCODE_F12:    input.KeyF12,
	sdl.SCANCODE_1:      input.Key1,
	sdl.SCANCODE_2:      input.Key2,
	sdl.SCANCODE_3:      input.Key3,
	sdl.SCANCODE_4:      input.Key4,
	sdl.SCANCODE_5:      input.Key5,
	sdl.SCANCODE_6:      input.Key6,
	sdl.SCANCODE_7:      input.Key7,
	sdl.SCANCODE_8:      input.Key8,
	sdl.SCANCODE_9:      input.Key9,
}

// eventSource converts SDL2 events into input events.
//
// The cursor is reported as a virtual position built from relative motion, so
// it keeps moving while SDL relative mouse mode pins the real pointer.
type eventSource struct {
	queue   *input.Queue
	cursorX float32
	cursorY float32
}

func newEventSource() *eventSource {
	return &eventSource{queue: input.NewQueue()}
}

// poll drains pending SDL events and returns them translated.
func (s *eventSource) poll() []input.Event {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		s.translate(event)
	}
	return s.queue.Drain()
}

func (s *eventSource) translate(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.queue.Push(input.Event{Type: input.EventQuit})

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			s.queue.Push(input.Event{
				Type:   input.EventResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return
		}
		key, ok := scancodes[e.Keysym.Scancode]
		if !ok {
			return
		}
		if e.Type == sdl.KEYDOWN {
			s.queue.Push(input.Event{Type: input.EventKeyDown, Key: key})
		} else if e.Type == sdl.KEYUP {
			s.queue.Push(input.Event{Type: input.EventKeyUp, Key: key})
		}

	case *sdl.MouseMotionEvent:
		s.cursorX += float32(e.XRel)
		s.cursorY += float32(e.YRel)
		s.queue.Push(input.Event{
			Type: input.EventCursorMove,
			X:    s.cursorX,
			Y:    s.cursorY,
		})
	}
}
