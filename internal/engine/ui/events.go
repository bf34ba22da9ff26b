package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/shading-sandbox/internal/engine/input"
)

var imguiKeys = map[imgui.Key]input.Key{
	imgui.KeyW:        input.KeyW,
	imgui.KeyA:        input.KeyA,
	imgui.KeyS:        input.KeyS,
	imgui.KeyD:        input.KeyD,
	imgui.KeyQ:        input.KeyQ,
	imgui.KeyE:        input.KeyE,
	imgui.KeyLeftCtrl: input.KeyLeftCtrl,
	imgui.KeyF12:      input.KeyF12,
	imgui.KeyEscape:   input.KeyEscape,
}

// keyEdges turns sampled key states into down/up events.
type keyEdges struct {
	held map[input.Key]bool
}

func (k *keyEdges) sample(key input.Key, down bool, q *input.Queue) {
	if k.held == nil {
		k.held = make(map[input.Key]bool)
	}
	if k.held[key] == down {
		return
	}
	k.held[key] = down
	t := input.EventKeyUp
	if down {
		t = input.EventKeyDown
	}
	q.Push(input.Event{Type: t, Key: key})
}

// cursorTracker emits a move event when the cursor position changes.
type cursorTracker struct {
	x, y  float32
	valid bool
}

func (c *cursorTracker) sample(x, y float32, q *input.Queue) {
	if c.valid && x == c.x && y == c.y {
		return
	}
	c.x, c.y, c.valid = x, y, true
	q.Push(input.Event{Type: input.EventCursorMove, X: x, Y: y})
}

// IOSource samples ImGui IO once per frame and reports the changes as
// input events. It implements the renderer's Window interface.
type IOSource struct {
	queue  *input.Queue
	keys   keyEdges
	cursor cursorTracker

	// Look receives right-drag deltas outside ImGui widgets.
	Look func(dx, dy float32)
	drag cursorTracker
}

// NewIOSource returns an empty source.
func NewIOSource() *IOSource {
	return &IOSource{queue: input.NewQueue()}
}

// PollEvents samples keys and cursor and returns the resulting events.
func (s *IOSource) PollEvents() []input.Event {
	typing := imgui.IsAnyItemActive()
	for ik, k := range imguiKeys {
		s.keys.sample(k, !typing && imgui.IsKeyDown(ik), s.queue)
	}

	pos := imgui.MousePos()
	s.cursor.sample(pos.X, pos.Y, s.queue)

	held := lookHeld(imgui.IsMouseDown(imgui.MouseButtonRight), typing, imgui.CurrentIO().WantCaptureMouse())
	s.dragLook(pos.X, pos.Y, held)

	return s.queue.Drain()
}

// lookHeld reports whether a right drag should steer the camera. A drag
// that starts over a window or while a widget is active belongs to ImGui.
func lookHeld(right, itemActive, wantMouse bool) bool {
	return right && !itemActive && !wantMouse
}

func (s *IOSource) dragLook(x, y float32, held bool) {
	if s.Look == nil || !held {
		s.drag.valid = false
		return
	}
	if s.drag.valid {
		s.Look(x-s.drag.x, y-s.drag.y)
	}
	s.drag = cursorTracker{x: x, y: y, valid: true}
}

// FramebufferSize returns the ImGui display size in pixels.
func (s *IOSource) FramebufferSize() (int, int) {
	return FramebufferSize()
}
