// Package hud is the keyboard-driven overlay of the SDL frontend: hotkeys
// edit the render settings and the window title shows the current state.
package hud

import (
	"fmt"
	"strings"

	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/internal/engine/input"
)

// Titler displays a status line.
type Titler interface {
	SetTitle(title string)
}

// HUD implements the renderer overlay for the SDL frontend.
type HUD struct {
	titler Titler
	base   string
	meshes []string

	pending []func(s *frame.Settings)
	current frame.Settings

	quit       bool
	screenshot bool
	fps        float64
	lastTitle  string
}

// New returns a HUD that prefixes the title with base and names meshes by index.
func New(t Titler, base string, meshes []string) *HUD {
	return &HUD{titler: t, base: base, meshes: meshes}
}

// HandleEvent maps hotkeys to settings changes.
//
//	1-9  select mesh
//	F    toggle wireframe
//	R    toggle auto-rotate
//	M    next shading model
//	F12  screenshot
//	Esc  quit
func (h *HUD) HandleEvent(e input.Event) {
	if e.Type != input.EventKeyDown {
		return
	}

	if d, ok := e.Key.Digit(); ok {
		if d <= len(h.meshes) {
			h.queue(func(s *frame.Settings) { s.Mesh = d - 1 })
		}
		return
	}

	switch e.Key {
	case input.KeyF:
		h.queue(func(s *frame.Settings) { s.Wireframe = !s.Wireframe })
	case input.KeyR:
		h.queue(func(s *frame.Settings) { s.AutoRotate = !s.AutoRotate })
	case input.KeyM:
		h.queue(func(s *frame.Settings) { s.Model = s.Model.Next() })
	case input.KeyF12:
		h.screenshot = true
	case input.KeyEscape:
		h.quit = true
	}
}

func (h *HUD) queue(fn func(s *frame.Settings)) {
	h.pending = append(h.pending, fn)
}

// BeginFrame applies the hotkeys pressed since the last frame.
func (h *HUD) BeginFrame(s *frame.Settings) {
	for _, fn := range h.pending {
		fn(s)
	}
	h.pending = h.pending[:0]
	h.current = *s
}

// Render draws nothing; the HUD lives in the title bar.
func (h *HUD) Render(gpu.CommandBuffer) {}

// EndFrame refreshes the title when it changed.
func (h *HUD) EndFrame() {
	title := h.Title()
	if title != h.lastTitle && h.titler != nil {
		h.titler.SetTitle(title)
	}
	h.lastTitle = title
}

// SetFPS sets the frame rate shown in the title.
func (h *HUD) SetFPS(fps float64) {
	h.fps = fps
}

// Title formats the status line for the last applied settings.
func (h *HUD) Title() string {
	s := h.current
	name := fmt.Sprintf("mesh %d", s.Mesh)
	if s.Mesh >= 0 && s.Mesh < len(h.meshes) {
		name = h.meshes[s.Mesh]
	}

	parts := []string{h.base, name, s.Model.String()}
	if s.Wireframe {
		parts = append(parts, "wireframe")
	}
	if !s.AutoRotate {
		parts = append(parts, "paused")
	}
	if h.fps > 0 {
		parts = append(parts, fmt.Sprintf("%.0f fps", h.fps))
	}
	return strings.Join(parts, " | ")
}

// AddMesh appends a name for meshes registered after startup.
func (h *HUD) AddMesh(name string) {
	h.meshes = append(h.meshes, name)
}

// QuitRequested reports whether Esc was pressed.
func (h *HUD) QuitRequested() bool {
	return h.quit
}

// TakeScreenshot reports and clears a pending F12 press.
func (h *HUD) TakeScreenshot() bool {
	s := h.screenshot
	h.screenshot = false
	return s
}
