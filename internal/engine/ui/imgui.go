// Package ui provides the ImGui frontend: the SDL backend wrapper, the
// settings panel overlay and an event source fed from ImGui IO.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
)

// Backend wraps the ImGui SDL backend. The backend owns the window, the GL
// context and the main loop.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// Font selects a TTF font for the UI. An empty path keeps the ImGui default.
type Font struct {
	Path string
	Size float32
}

// NewBackend creates the ImGui backend and its window. The GL context is
// current when it returns.
func NewBackend(title string, width, height int, font Font) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	if font.Path != "" {
		b.backend.SetAfterCreateContextHook(func() {
			loadFont(font)
		})
	}

	b.backend.SetBgColor(imgui.NewVec4(0.5, 0.5, 0.5, 1.0))
	b.backend.CreateWindow(title, width, height)

	return b, nil
}

func loadFont(font Font) {
	if _, err := os.Stat(font.Path); err != nil {
		return
	}
	if font.Size <= 0 {
		font.Size = 13
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	imgui.CurrentIO().Fonts().AddFontFromFileTTFV(font.Path, font.Size, fontCfg, nil)
}

// Run starts the main loop; frame is called once per ImGui frame.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// RequestClose ends Run after the current frame.
func (b *Backend) RequestClose() {
	b.backend.SetShouldClose(true)
}

// SetTitle updates the window title.
func (b *Backend) SetTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// FramebufferSize returns the drawable size in pixels. DisplaySize is in
// logical points; the framebuffer scale converts on HiDPI displays.
func FramebufferSize() (int, int) {
	io := imgui.CurrentIO()
	size := io.DisplaySize()
	scale := io.DisplayFramebufferScale()
	return int(size.X * scale.X), int(size.Y * scale.Y)
}
