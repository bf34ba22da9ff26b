// Package input defines the typed event stream consumed by the renderer and
// camera, plus the SDL2 source that produces it.
package input

// EventType identifies an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventCursorMove
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventResize:
		return "resize"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventCursorMove:
		return "cursor-move"
	default:
		return "none"
	}
}

// Key is a backend-independent key code.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyF
	KeyR
	KeyM
	KeyLeftCtrl
	KeyEscape
	KeyF12
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Digit returns the numeric value of Key1..Key9 and false for other keys.
func (k Key) Digit() (int, bool) {
	if k >= Key1 && k <= Key9 {
		return int(k-Key1) + 1, true
	}
	return 0, false
}

// Event is one processed input event. Only the fields relevant to Type are set.
type Event struct {
	Type   EventType
	Key    Key
	X, Y   float32 // cursor position for EventCursorMove
	Width  int     // new size for EventResize
	Height int
}

// Queue buffers events between a producer and the frame loop.
type Queue struct {
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 16)}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns the buffered events and empties the queue. The returned slice
// is only valid until the next Push.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = q.events[:0]
	return out
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return len(q.events)
}
