// Package camera provides the free-look camera controller: damped yaw/pitch
// driven by cursor deltas, WASD/EQ translation, and a look-at view matrix.
package camera

import (
	gomath "math"

	"github.com/Faultbox/shading-sandbox/internal/engine/input"
	"github.com/Faultbox/shading-sandbox/pkg/math"
)

// Pitch limits in degrees.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
)

var worldUp = math.Vec3{X: 0, Y: 1, Z: 0}

// Config holds camera tuning.
type Config struct {
	Position    math.Vec3
	Target      math.Vec3
	MoveSpeed   float32 // world units per second
	Sensitivity float32 // degrees per cursor pixel
	Damping     float32 // convergence rate per second
}

// DefaultConfig returns the sandbox camera defaults.
func DefaultConfig() Config {
	return Config{
		Position:    math.Vec3{X: 0, Y: 0.15, Z: 0.35},
		Target:      math.Vec3{X: 0, Y: 0.1, Z: 0},
		MoveSpeed:   0.5,
		Sensitivity: 0.35,
		Damping:     15,
	}
}

// State is a snapshot of the camera. Angles are in degrees.
type State struct {
	Position     math.Vec3
	Yaw          float32
	Pitch        float32
	YawDesired   float32
	PitchDesired float32
	Front        math.Vec3
	Right        math.Vec3
	Up           math.Vec3
}

type direction int

const (
	dirForward direction = iota
	dirBack
	dirLeft
	dirRight
	dirUp
	dirDown
	dirCount
)

var moveKeys = map[input.Key]direction{
	input.KeyW: dirForward,
	input.KeyS: dirBack,
	input.KeyA: dirLeft,
	input.KeyD: dirRight,
	input.KeyE: dirUp,
	input.KeyQ: dirDown,
}

// Controller is a free-look camera.
type Controller struct {
	cfg   Config
	state State

	firstMouse bool
	lastX      float32
	lastY      float32

	captured    bool
	captureHook func(bool)

	held [dirCount]bool
}

// New creates a controller at cfg.Position facing cfg.Target.
func New(cfg Config) *Controller {
	c := &Controller{
		cfg:        cfg,
		firstMouse: true,
	}
	c.state.Position = cfg.Position

	dir := cfg.Target.Sub(cfg.Position).Normalize()
	if dir.Length() > 0 {
		c.state.Pitch = math.Clamp(math.Degrees(float32(gomath.Asin(float64(dir.Y)))), MinPitch, MaxPitch)
		c.state.Yaw = math.Degrees(float32(gomath.Atan2(float64(dir.Z), float64(dir.X))))
	}
	c.state.YawDesired = c.state.Yaw
	c.state.PitchDesired = c.state.Pitch
	c.updateVectors()

	return c
}

// SetCaptureHook registers fn to be called whenever captured mode flips.
func (c *Controller) SetCaptureHook(fn func(captured bool)) {
	c.captureHook = fn
}

// Captured reports whether cursor deltas currently steer the camera.
func (c *Controller) Captured() bool {
	return c.captured
}

// ToggleCapture flips captured mode.
func (c *Controller) ToggleCapture() {
	c.captured = !c.captured
	if c.captureHook != nil {
		c.captureHook(c.captured)
	}
}

// HandleEvent consumes one input event.
func (c *Controller) HandleEvent(e input.Event) {
	switch e.Type {
	case input.EventCursorMove:
		c.sampleCursor(e.X, e.Y)
	case input.EventKeyDown:
		if e.Key == input.KeyLeftCtrl {
			c.ToggleCapture()
			return
		}
		if d, ok := moveKeys[e.Key]; ok {
			c.held[d] = true
		}
	case input.EventKeyUp:
		if d, ok := moveKeys[e.Key]; ok {
			c.held[d] = false
		}
	}
}

func (c *Controller) sampleCursor(x, y float32) {
	if c.firstMouse {
		c.lastX, c.lastY = x, y
		c.firstMouse = false
	}
	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX, c.lastY = x, y

	if c.captured {
		c.Look(dx, dy)
	}
}

// Look applies a cursor delta in pixels to the desired angles. Screen Y grows
// downward, so dy is inverted.
func (c *Controller) Look(dx, dy float32) {
	c.state.YawDesired += dx * c.cfg.Sensitivity
	c.state.PitchDesired += -dy * c.cfg.Sensitivity
	c.state.PitchDesired = math.Clamp(c.state.PitchDesired, MinPitch, MaxPitch)
}

// Update advances damping and translation by dt seconds.
func (c *Controller) Update(dt float32) {
	s := &c.state
	s.PitchDesired = math.Clamp(s.PitchDesired, MinPitch, MaxPitch)

	// First-order low-pass; a step larger than 1 would overshoot.
	k := c.cfg.Damping * dt
	if k > 1 {
		k = 1
	}
	s.Yaw += (s.YawDesired - s.Yaw) * k
	s.Pitch += (s.PitchDesired - s.Pitch) * k
	s.Pitch = math.Clamp(s.Pitch, MinPitch, MaxPitch)

	c.updateVectors()

	step := c.cfg.MoveSpeed * dt
	if c.held[dirForward] {
		s.Position = s.Position.Add(s.Front.Scale(step))
	}
	if c.held[dirBack] {
		s.Position = s.Position.Sub(s.Front.Scale(step))
	}
	if c.held[dirLeft] {
		s.Position = s.Position.Sub(s.Right.Scale(step))
	}
	if c.held[dirRight] {
		s.Position = s.Position.Add(s.Right.Scale(step))
	}
	if c.held[dirUp] {
		s.Position = s.Position.Add(worldUp.Scale(step))
	}
	if c.held[dirDown] {
		s.Position = s.Position.Sub(worldUp.Scale(step))
	}
}

func (c *Controller) updateVectors() {
	s := &c.state
	yaw := float64(math.Radians(s.Yaw))
	pitch := float64(math.Radians(s.Pitch))

	front := math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}
	s.Front = front.Normalize()
	s.Right = s.Front.Cross(worldUp).Normalize()
	s.Up = s.Right.Cross(s.Front).Normalize()
}

// View returns the look-at view matrix.
func (c *Controller) View() math.Mat4 {
	return math.LookAt(c.state.Position, c.state.Position.Add(c.state.Front), c.state.Up)
}

// State returns a copy of the current camera state.
func (c *Controller) State() State {
	return c.state
}
