// Package app wires configuration, window, GPU device and renderer into the
// sandbox main loops.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shading-sandbox/internal/config"
	"github.com/Faultbox/shading-sandbox/internal/engine/capture"
	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/internal/engine/hud"
	"github.com/Faultbox/shading-sandbox/internal/engine/renderer"
	"github.com/Faultbox/shading-sandbox/internal/engine/window"
	"github.com/Faultbox/shading-sandbox/internal/logger"
)

// idleDelay throttles the loop while the window has no drawable area.
const idleDelay = 16 * time.Millisecond

// App is the SDL frontend: hotkeys drive the settings and the window title
// shows the current state.
type App struct {
	cfg      *config.Config
	window   *window.Window
	device   *gpu.GLDevice
	renderer *renderer.Renderer
	hud      *hud.HUD
	capture  *capture.Capturer

	settings frame.Settings
	fps      fpsCounter
}

// New creates the window, the GL device and the renderer.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing sandbox",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		cfg:      cfg,
		settings: cfg.Settings(),
		capture:  capture.New(cfg.Screenshots.Dir, cfg.Screenshots.Prefix),
	}

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.device, err = gpu.NewGLDevice(gpu.GLOptions{Present: a.present})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	a.hud = hud.New(a.window, cfg.Window.Title, cfg.MeshNames())

	a.renderer, err = renderer.New(renderer.Deps{
		Device:  a.device,
		Window:  a.window,
		Overlay: a.hud,
	}, cfg.Sources(), cfg.Renderer())
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.Subscribe(a.hud.HandleEvent)

	logger.Info("sandbox initialized",
		zap.String("mesh", cfg.MeshNames()[a.settings.Mesh]),
		zap.Stringer("model", a.settings.Model),
	)
	return a, nil
}

// Run drives frames until the window closes or Esc is pressed.
func (a *App) Run() error {
	logger.Info("starting render loop")

	for a.renderer.Running() {
		stats, err := a.renderer.RunFrame(&a.settings)
		if err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if a.hud.QuitRequested() {
			a.renderer.Stop()
		}
		if stats.Skipped {
			time.Sleep(idleDelay)
			continue
		}

		if fps, ok := a.fps.Tick(time.Now()); ok {
			logger.Debug("fps",
				zap.Float64("fps", fps),
				zap.Float32("dt_ms", stats.DT*1000),
				zap.Int("draws", stats.Draws),
			)
			a.hud.SetFPS(fps)
		}
	}

	return nil
}

// present runs from Submit. The back buffer is read before the swap, which
// is the only point where it still holds the finished frame.
func (a *App) present() {
	if a.hud.TakeScreenshot() {
		w, h := a.window.FramebufferSize()
		saveScreenshot(a.capture, a.device, w, h)
	}
	a.window.SwapBuffers()
}

// Close releases resources in reverse creation order. It is safe to call
// more than once.
func (a *App) Close() {
	logger.Info("closing sandbox")

	if a.renderer != nil {
		a.renderer.Close()
		a.renderer = nil
	}
	if a.device != nil {
		a.device.Close()
		a.device = nil
	}
	if a.window != nil {
		a.window.Close()
		a.window = nil
	}
}

func saveScreenshot(c *capture.Capturer, dev *gpu.GLDevice, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	path, err := c.Save(dev.ReadPixels(width, height), width, height)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
