// Package renderer drives one frame at a time: it polls input, composes the
// uniform block, records the solid and optional wireframe draws of the
// selected mesh, and submits.
package renderer

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/shading-sandbox/internal/engine/camera"
	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
	"github.com/Faultbox/shading-sandbox/internal/engine/geometry"
	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/internal/engine/input"
	"github.com/Faultbox/shading-sandbox/internal/engine/pipeline"
	"github.com/Faultbox/shading-sandbox/internal/engine/shader"
	"github.com/Faultbox/shading-sandbox/internal/engine/texture"
	"github.com/Faultbox/shading-sandbox/internal/logger"
	"github.com/Faultbox/shading-sandbox/pkg/math"
)

// Window is the presentation surface the renderer reads from.
type Window interface {
	PollEvents() []input.Event
	// FramebufferSize returns the drawable size in pixels; 0 means minimized.
	FramebufferSize() (width, height int)
}

// Overlay draws UI on top of the scene and may edit the settings.
type Overlay interface {
	BeginFrame(s *frame.Settings)
	Render(cmd gpu.CommandBuffer)
	EndFrame()
}

// NopOverlay draws nothing.
type NopOverlay struct{}

func (NopOverlay) BeginFrame(*frame.Settings) {}
func (NopOverlay) Render(gpu.CommandBuffer)   {}
func (NopOverlay) EndFrame()                  {}

// Deps are the collaborators the renderer draws through.
type Deps struct {
	Device  gpu.Device
	Window  Window
	Overlay Overlay
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Config holds renderer configuration.
type Config struct {
	Camera     camera.Config
	Frame      frame.Config
	ClearColor [4]float32
	// ShaderDir overrides the embedded shaders when set.
	ShaderDir string
	// AlbedoPath is an optional texture multiplied into the base color.
	AlbedoPath string
}

// DefaultConfig returns the sandbox defaults.
func DefaultConfig() Config {
	return Config{
		Camera:     camera.DefaultConfig(),
		Frame:      frame.DefaultConfig(),
		ClearColor: [4]float32{0.5, 0.5, 0.5, 1},
	}
}

// Depth settings of the two passes.
var (
	solidDepth    = gpu.DepthState{Compare: gpu.CompareLess, Write: true}
	wireframeBias = gpu.DepthBias{Constant: 0, Slope: -1, Clamp: 0}
)

// Stats describes what one RunFrame did.
type Stats struct {
	Skipped bool
	Mesh    geometry.MeshID
	Draws   int
	Indices int
	Width   int
	Height  int
	DT      float32
}

// Renderer owns every GPU object of the sandbox.
type Renderer struct {
	cfg     Config
	dev     gpu.Device
	win     Window
	overlay Overlay
	clock   func() time.Time

	store   *geometry.Store
	lib     *pipeline.Library
	vs, fs  gpu.ShaderModule
	uniform gpu.Buffer
	albedo  gpu.Texture

	cam       *camera.Controller
	spin      frame.Spin
	listeners []func(input.Event)

	last    time.Time
	running bool
}

// New registers every mesh source, builds the pipelines and allocates the
// per-frame buffers. Any error leaves nothing allocated.
func New(deps Deps, meshes []geometry.Source, cfg Config) (*Renderer, error) {
	if deps.Device == nil || deps.Window == nil {
		return nil, fmt.Errorf("renderer needs a device and a window")
	}
	if deps.Overlay == nil {
		deps.Overlay = NopOverlay{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	r := &Renderer{
		cfg:     cfg,
		dev:     deps.Device,
		win:     deps.Window,
		overlay: deps.Overlay,
		clock:   deps.Clock,
		store:   geometry.NewStore(deps.Device),
		cam:     camera.New(cfg.Camera),
		running: true,
	}
	ready := false
	defer func() {
		if !ready {
			r.Close()
		}
	}()

	for _, src := range meshes {
		if _, err := r.store.Register(src); err != nil {
			return nil, err
		}
	}

	if err := r.buildPipelines(); err != nil {
		return nil, err
	}

	uniform, err := r.dev.CreateBuffer(gpu.UsageUniform, make([]byte, frame.UniformBlockSize))
	if err != nil {
		return nil, fmt.Errorf("uniform buffer: %w", err)
	}
	r.uniform = uniform

	if err := r.loadAlbedo(); err != nil {
		return nil, err
	}

	if c, ok := deps.Window.(interface{ SetCaptured(bool) }); ok {
		r.cam.SetCaptureHook(c.SetCaptured)
	}
	r.Subscribe(r.cam.HandleEvent)

	logger.Info("renderer ready",
		zap.Int("meshes", r.store.Len()),
		zap.Strings("names", r.store.Names()),
	)
	ready = true
	return r, nil
}

func (r *Renderer) buildPipelines() error {
	vsrc, err := shader.Source(r.cfg.ShaderDir, shader.MeshVertex)
	if err != nil {
		return err
	}
	fsrc, err := shader.Source(r.cfg.ShaderDir, shader.MeshFragment)
	if err != nil {
		return err
	}

	if r.vs, err = r.dev.CreateShaderModule(gpu.StageVertex, vsrc); err != nil {
		return fmt.Errorf("vertex shader: %w", err)
	}
	if r.fs, err = r.dev.CreateShaderModule(gpu.StageFragment, fsrc); err != nil {
		return fmt.Errorf("fragment shader: %w", err)
	}

	color, depth := r.dev.SurfaceFormats()
	r.lib, err = pipeline.BuildLibrary(r.dev, pipeline.Descriptor{
		Name:        "mesh",
		Vertex:      r.vs,
		Fragment:    r.fs,
		Layout:      geometry.Layout(),
		ColorFormat: color,
		DepthFormat: depth,
	}, frame.ShadingModels)
	return err
}

func (r *Renderer) loadAlbedo() error {
	img := texture.White()
	if r.cfg.AlbedoPath != "" {
		var err error
		if img, err = texture.Load(r.cfg.AlbedoPath); err != nil {
			return fmt.Errorf("albedo texture: %w", err)
		}
	}

	b := img.Bounds()
	tex, err := r.dev.CreateTexture(b.Dx(), b.Dy(), img.Pix)
	if err != nil {
		return fmt.Errorf("albedo texture: %w", err)
	}
	r.albedo = tex
	return nil
}

// Subscribe registers fn to receive every polled event, in order.
func (r *Renderer) Subscribe(fn func(input.Event)) {
	r.listeners = append(r.listeners, fn)
}

// Running reports whether a quit event has been seen.
func (r *Renderer) Running() bool {
	return r.running
}

// Stop makes Running return false.
func (r *Renderer) Stop() {
	r.running = false
}

// Camera returns the camera controller.
func (r *Renderer) Camera() *camera.Controller {
	return r.cam
}

// Meshes returns the mesh store.
func (r *Renderer) Meshes() *geometry.Store {
	return r.store
}

// AddMesh registers another mesh after startup. Its buffers live until
// Close like the startup meshes.
func (r *Renderer) AddMesh(src geometry.Source) (geometry.MeshID, error) {
	id, err := r.store.Register(src)
	if err != nil {
		return 0, fmt.Errorf("add mesh %q: %w", src.Name, err)
	}
	logger.Info("mesh added", zap.String("name", src.Name), zap.Int("id", int(id)))
	return id, nil
}

// Angle returns the current model rotation in degrees.
func (r *Renderer) Angle() float32 {
	return r.spin.Degrees
}

// selected clamps the requested mesh index into range.
func (r *Renderer) selected(i int) geometry.MeshID {
	n := r.store.Len()
	if n == 0 {
		return -1
	}
	return geometry.MeshID(min(max(i, 0), n-1))
}

// RunFrame renders one frame with s. A zero-sized framebuffer skips
// everything after event polling.
func (r *Renderer) RunFrame(s *frame.Settings) (Stats, error) {
	for _, e := range r.win.PollEvents() {
		if e.Type == input.EventQuit {
			r.running = false
		}
		for _, fn := range r.listeners {
			fn(e)
		}
	}

	now := r.clock()
	var dt float32
	if !r.last.IsZero() {
		dt = float32(now.Sub(r.last).Seconds())
	}
	r.last = now

	width, height := r.win.FramebufferSize()
	if width <= 0 || height <= 0 {
		return Stats{Skipped: true}, nil
	}

	// The overlay may edit s; everything below reads the edited value.
	r.overlay.BeginFrame(s)
	stats := Stats{Width: width, Height: height, DT: dt, Mesh: r.selected(s.Mesh)}

	r.cam.Update(dt)
	angle := r.spin.Advance(dt, r.cfg.Frame.Rate(s))

	mesh := r.store.Get(stats.Mesh)
	var offset math.Vec3
	if mesh != nil {
		offset = mesh.Offset
	}

	block := frame.Compose(r.cfg.Frame, frame.Input{
		AngleDegrees: angle,
		Settings:     *s,
		Camera:       r.cam.State(),
		View:         r.cam.View(),
		Aspect:       float32(width) / float32(height),
		Position:     offset,
		Scale:        math.Vec3{X: 1, Y: 1, Z: 1},
	})

	cmd := r.dev.AcquireCommandBuffer()
	cmd.UpdateBuffer(r.uniform, block.Bytes())
	cmd.BeginRenderPass(gpu.RenderPass{ClearColor: r.cfg.ClearColor, ClearDepth: 1}, width, height)

	if mesh != nil {
		set := r.lib.Get(s.Model)
		count := mesh.IndexCount()

		cmd.BindVertexBuffer(mesh.VertexBuffer)
		cmd.BindIndexBuffer(mesh.IndexBuffer)

		cmd.BindPipeline(set.Solid)
		cmd.SetDepthState(solidDepth)
		cmd.SetDepthBias(false, gpu.DepthBias{})
		cmd.BindUniformBuffer(0, r.uniform)
		cmd.BindTexture(0, r.albedo)
		cmd.DrawIndexed(count)
		stats.Draws++
		stats.Indices += count

		if s.Wireframe {
			cmd.BindPipeline(set.Wireframe)
			cmd.SetDepthBias(true, wireframeBias)
			cmd.DrawIndexed(count)
			cmd.SetDepthBias(false, gpu.DepthBias{})
			stats.Draws++
			stats.Indices += count
		}
	}

	r.overlay.Render(cmd)
	cmd.EndRenderPass()
	err := r.dev.Submit(cmd)
	r.overlay.EndFrame()
	if err != nil {
		return stats, fmt.Errorf("submit: %w", err)
	}

	return stats, nil
}

// Close releases every GPU object the renderer created.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.lib != nil {
		r.lib.Destroy()
		r.lib = nil
	}
	if r.store != nil {
		r.store.Close()
	}
	if r.uniform != 0 {
		r.dev.DestroyBuffer(r.uniform)
		r.uniform = 0
	}
	if r.albedo != 0 {
		r.dev.DestroyTexture(r.albedo)
		r.albedo = 0
	}
	if r.vs != 0 {
		r.dev.DestroyShaderModule(r.vs)
		r.vs = 0
	}
	if r.fs != 0 {
		r.dev.DestroyShaderModule(r.fs)
		r.fs = 0
	}
}
