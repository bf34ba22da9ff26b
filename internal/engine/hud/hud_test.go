package hud

import (
	"testing"

	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
	"github.com/Faultbox/shading-sandbox/internal/engine/input"
)

type titleRecorder struct {
	titles []string
}

func (t *titleRecorder) SetTitle(s string) { t.titles = append(t.titles, s) }

func press(h *HUD, k input.Key) {
	h.HandleEvent(input.Event{Type: input.EventKeyDown, Key: k})
}

func TestHotkeys(t *testing.T) {
	tests := []struct {
		name  string
		keys  []input.Key
		check func(s frame.Settings) bool
	}{
		{"select mesh", []input.Key{input.Key2}, func(s frame.Settings) bool { return s.Mesh == 1 }},
		{"mesh out of range ignored", []input.Key{input.Key9}, func(s frame.Settings) bool { return s.Mesh == 0 }},
		{"wireframe", []input.Key{input.KeyF}, func(s frame.Settings) bool { return s.Wireframe }},
		{"wireframe twice", []input.Key{input.KeyF, input.KeyF}, func(s frame.Settings) bool { return !s.Wireframe }},
		{"auto-rotate", []input.Key{input.KeyR}, func(s frame.Settings) bool { return !s.AutoRotate }},
		{"shading model", []input.Key{input.KeyM}, func(s frame.Settings) bool { return s.Model == frame.ShadingGooch }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(nil, "sandbox", []string{"UV-Sphere", "Bunny", "Teapot"})
			s := frame.DefaultSettings()
			for _, k := range tt.keys {
				press(h, k)
			}
			h.BeginFrame(&s)
			if !tt.check(s) {
				t.Errorf("settings after %v = %+v", tt.keys, s)
			}
		})
	}
}

func TestPendingAppliedOnce(t *testing.T) {
	h := New(nil, "sandbox", nil)
	s := frame.DefaultSettings()
	press(h, input.KeyF)
	h.BeginFrame(&s)
	h.BeginFrame(&s)
	if !s.Wireframe {
		t.Error("toggle applied twice")
	}
}

func TestKeyUpIgnored(t *testing.T) {
	h := New(nil, "sandbox", nil)
	h.HandleEvent(input.Event{Type: input.EventKeyUp, Key: input.KeyEscape})
	if h.QuitRequested() {
		t.Error("key up should not quit")
	}
	press(h, input.KeyEscape)
	if !h.QuitRequested() {
		t.Error("Esc should quit")
	}
}

func TestScreenshotConsumed(t *testing.T) {
	h := New(nil, "sandbox", nil)
	press(h, input.KeyF12)
	if !h.TakeScreenshot() {
		t.Fatal("screenshot not requested")
	}
	if h.TakeScreenshot() {
		t.Error("screenshot request not cleared")
	}
}

func TestTitleUpdatedOnChange(t *testing.T) {
	rec := &titleRecorder{}
	h := New(rec, "sandbox", []string{"UV-Sphere", "Bunny"})
	s := frame.DefaultSettings()

	h.BeginFrame(&s)
	h.EndFrame()
	h.BeginFrame(&s)
	h.EndFrame()
	if len(rec.titles) != 1 {
		t.Fatalf("titles = %v, want one update", rec.titles)
	}
	if rec.titles[0] != "sandbox | UV-Sphere | toon" {
		t.Errorf("title = %q", rec.titles[0])
	}

	press(h, input.Key2)
	press(h, input.KeyF)
	press(h, input.KeyR)
	h.SetFPS(59.6)
	h.BeginFrame(&s)
	h.EndFrame()
	if got := rec.titles[len(rec.titles)-1]; got != "sandbox | Bunny | toon | wireframe | paused | 60 fps" {
		t.Errorf("title = %q", got)
	}
}

func TestAddedMeshNamedInTitle(t *testing.T) {
	rec := &titleRecorder{}
	h := New(rec, "sandbox", []string{"UV-Sphere"})
	h.AddMesh("teapot")

	s := frame.DefaultSettings()
	s.Mesh = 1
	h.BeginFrame(&s)
	h.EndFrame()
	if got := rec.titles[len(rec.titles)-1]; got != "sandbox | teapot | toon" {
		t.Errorf("title = %q", got)
	}

	s.Mesh = 0
	press(h, input.Key2)
	h.BeginFrame(&s)
	if s.Mesh != 1 {
		t.Errorf("digit 2 should select the added mesh, got %d", s.Mesh)
	}
}
