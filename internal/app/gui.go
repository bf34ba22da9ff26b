package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shading-sandbox/internal/config"
	"github.com/Faultbox/shading-sandbox/internal/engine/capture"
	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
	"github.com/Faultbox/shading-sandbox/internal/engine/framebuffer"
	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/internal/engine/hud"
	"github.com/Faultbox/shading-sandbox/internal/engine/renderer"
	"github.com/Faultbox/shading-sandbox/internal/engine/ui"
	"github.com/Faultbox/shading-sandbox/internal/logger"
)

// GUI is the ImGui frontend. The ImGui backend owns the window and the
// loop; the scene renders into an offscreen framebuffer that the panel
// draws as its background.
type GUI struct {
	cfg      *config.Config
	backend  *ui.Backend
	target   *framebuffer.Framebuffer
	device   *gpu.GLDevice
	renderer *renderer.Renderer
	panel    *ui.Panel
	source   *ui.IOSource
	capture  *capture.Capturer
	picker   *modelPicker
	status   *hud.HUD

	settings frame.Settings
	fps      fpsCounter
	err      error
}

// NewGUI creates the ImGui window, the offscreen target and the renderer.
func NewGUI(cfg *config.Config) (*GUI, error) {
	g := &GUI{
		cfg:      cfg,
		settings: cfg.Settings(),
		capture:  capture.New(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
		panel:    ui.NewPanel(cfg.MeshNames()),
		source:   ui.NewIOSource(),
		picker:   newModelPicker(),
	}

	var err error
	g.backend, err = ui.NewBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height,
		ui.Font{Path: cfg.Window.Font, Size: cfg.Window.FontSize})
	if err != nil {
		return nil, fmt.Errorf("failed to create ui backend: %w", err)
	}

	// Hotkeys stay with the panel; the HUD only formats the title.
	g.status = hud.New(g.backend, cfg.Window.Title, cfg.MeshNames())

	g.device, err = gpu.NewGLDevice(gpu.GLOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	g.target, err = framebuffer.New(int32(cfg.Window.Width), int32(cfg.Window.Height))
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create scene target: %w", err)
	}
	g.device.SetTarget(g.target)

	g.renderer, err = renderer.New(renderer.Deps{
		Device:  g.device,
		Window:  g.source,
		Overlay: g.panel,
	}, cfg.Sources(), cfg.Renderer())
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.source.Look = g.renderer.Camera().Look
	g.renderer.Subscribe(g.panel.HandleEvent)

	return g, nil
}

// Run hands the loop to the ImGui backend and returns the first frame
// error, if any.
func (g *GUI) Run() error {
	logger.Info("starting ui loop")
	g.backend.Run(g.frame)
	return g.err
}

func (g *GUI) frame() {
	if g.err != nil {
		return
	}

	g.panel.SetSceneTexture(g.target.ColorTexture())
	g.panel.SetCaptured(g.renderer.Camera().Captured())

	stats, err := g.renderer.RunFrame(&g.settings)
	if err != nil {
		g.err = fmt.Errorf("render error: %w", err)
		g.backend.RequestClose()
		return
	}
	if g.panel.QuitRequested() {
		g.backend.RequestClose()
	}
	if g.panel.TakeOpenRequest() {
		g.picker.Open()
	}
	if path, ok := g.picker.Poll(); ok {
		g.addModel(path)
	}
	if g.panel.TakeSaveRequest() {
		g.saveSettings()
	}
	if stats.Skipped {
		return
	}

	if g.panel.TakeScreenshot() {
		saveScreenshot(g.capture, g.device, stats.Width, stats.Height)
	}

	if fps, ok := g.fps.Tick(time.Now()); ok {
		logger.Debug("fps",
			zap.Float64("fps", fps),
			zap.Float32("dt_ms", stats.DT*1000),
			zap.Int("draws", stats.Draws),
		)
		g.panel.SetFPS(int(fps + 0.5))
		g.status.SetFPS(fps)
	}
	g.status.BeginFrame(&g.settings)
	g.status.EndFrame()
}

func (g *GUI) addModel(path string) {
	src := modelSource(path)
	id, err := g.renderer.AddMesh(src)
	if err != nil {
		logger.Error("failed to add model", zap.String("path", path), zap.Error(err))
		return
	}
	g.panel.AddMesh(src.Name)
	g.status.AddMesh(src.Name)
	g.settings.Mesh = int(id)
}

// saveSettings writes the live settings to the user config file. Meshes
// opened at runtime are not persisted, so the selection falls back to a
// configured mesh.
func (g *GUI) saveSettings() {
	s := g.settings
	if s.Mesh >= len(g.cfg.Meshes) {
		s.Mesh = 0
	}
	g.cfg.StoreSettings(s)
	if err := g.cfg.Save(); err != nil {
		logger.Error("failed to save settings", zap.Error(err))
		return
	}
	logger.Info("settings saved", zap.String("dir", config.ConfigDir()))
}

// Close releases the renderer and the offscreen target. The ImGui backend
// tears down its own window.
func (g *GUI) Close() {
	logger.Info("closing sandbox")

	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.device != nil {
		g.device.Close()
		g.device = nil
	}
	if g.target != nil {
		g.target.Destroy()
		g.target = nil
	}
}
