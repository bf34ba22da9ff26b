package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/shading-sandbox/internal/engine/framebuffer"
	"github.com/Faultbox/shading-sandbox/internal/engine/shader"
	"github.com/Faultbox/shading-sandbox/internal/logger"
)

// Names the GL backend binds by convention.
const (
	uniformBlockName = "FrameUniforms"
	albedoSampler    = "uAlbedo"
)

type glBuffer struct {
	id     uint32
	target uint32
	size   int
}

type glModule struct {
	stage  ShaderStage
	source string
}

type glPipeline struct {
	program uint32
	desc    PipelineDesc
}

// GLDevice implements Device on an OpenGL 4.1 core context. Command buffers
// execute immediately; Submit flushes and presents.
type GLDevice struct {
	target  *framebuffer.Framebuffer
	present func()

	vao    uint32
	nextID uint32

	buffers   map[Buffer]glBuffer
	textures  map[Texture]uint32
	modules   map[ShaderModule]glModule
	pipelines map[Pipeline]*glPipeline

	cmd glCommandBuffer
}

// GLOptions configures a GLDevice.
type GLOptions struct {
	// Target renders into an offscreen framebuffer instead of the window.
	Target *framebuffer.Framebuffer
	// Present is called from Submit, e.g. to swap the window buffers.
	Present func()
}

// NewGLDevice initializes GL function pointers and returns a device.
// Must be called with a current GL context.
func NewGLDevice(opts GLOptions) (*GLDevice, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	d := &GLDevice{
		target:    opts.Target,
		present:   opts.Present,
		buffers:   make(map[Buffer]glBuffer),
		textures:  make(map[Texture]uint32),
		modules:   make(map[ShaderModule]glModule),
		pipelines: make(map[Pipeline]*glPipeline),
	}
	d.cmd.dev = d

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	return d, nil
}

func (d *GLDevice) id() uint32 {
	d.nextID++
	return d.nextID
}

// CreateBuffer allocates a buffer of exactly len(data) bytes.
func (d *GLDevice) CreateBuffer(usage BufferUsage, data []byte) (Buffer, error) {
	var target uint32
	var hint uint32 = gl.STATIC_DRAW
	switch usage {
	case UsageVertex:
		target = gl.ARRAY_BUFFER
	case UsageIndex:
		target = gl.ELEMENT_ARRAY_BUFFER
	case UsageUniform:
		target = gl.UNIFORM_BUFFER
		hint = gl.DYNAMIC_DRAW
	default:
		return 0, fmt.Errorf("unknown buffer usage %d", usage)
	}

	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, fmt.Errorf("glGenBuffers failed for %s buffer", usage)
	}

	// Index buffers are bound through the VAO; keep the global one current.
	gl.BindVertexArray(d.vao)
	gl.BindBuffer(target, id)
	if len(data) > 0 {
		gl.BufferData(target, len(data), gl.Ptr(data), hint)
	} else {
		gl.BufferData(target, 0, nil, hint)
	}

	h := Buffer(d.id())
	d.buffers[h] = glBuffer{id: id, target: target, size: len(data)}
	return h, nil
}

// DestroyBuffer releases b.
func (d *GLDevice) DestroyBuffer(b Buffer) {
	buf, ok := d.buffers[b]
	if !ok {
		return
	}
	gl.DeleteBuffers(1, &buf.id)
	delete(d.buffers, b)
}

// CreateTexture uploads an RGBA8 image.
func (d *GLDevice) CreateTexture(width, height int, rgba []byte) (Texture, error) {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return 0, fmt.Errorf("texture %dx%d with %d bytes", width, height, len(rgba))
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	h := Texture(d.id())
	d.textures[h] = id
	return h, nil
}

// DestroyTexture releases t.
func (d *GLDevice) DestroyTexture(t Texture) {
	id, ok := d.textures[t]
	if !ok {
		return
	}
	gl.DeleteTextures(1, &id)
	delete(d.textures, t)
}

// CreateShaderModule stores source for later compilation; GL compiles per
// pipeline since build-time constants are injected as defines.
func (d *GLDevice) CreateShaderModule(stage ShaderStage, source string) (ShaderModule, error) {
	if source == "" {
		return 0, fmt.Errorf("empty shader source")
	}
	h := ShaderModule(d.id())
	d.modules[h] = glModule{stage: stage, source: source}
	return h, nil
}

// DestroyShaderModule releases m.
func (d *GLDevice) DestroyShaderModule(m ShaderModule) {
	delete(d.modules, m)
}

// CreatePipeline compiles and links a program for desc.
func (d *GLDevice) CreatePipeline(desc PipelineDesc) (Pipeline, error) {
	vs, ok := d.modules[desc.Vertex]
	if !ok || vs.stage != StageVertex {
		return 0, fmt.Errorf("pipeline %q vertex module: %w", desc.Name, ErrInvalidHandle)
	}
	fs, ok := d.modules[desc.Fragment]
	if !ok || fs.stage != StageFragment {
		return 0, fmt.Errorf("pipeline %q fragment module: %w", desc.Name, ErrInvalidHandle)
	}
	color, depth := d.SurfaceFormats()
	if desc.ColorFormat != color || desc.DepthFormat != depth {
		return 0, fmt.Errorf("pipeline %q wants %s/%s, surface is %s/%s: %w",
			desc.Name, desc.ColorFormat, desc.DepthFormat, color, depth, ErrFormatMismatch)
	}

	defines := make([]shader.Define, len(desc.Constants))
	for i, c := range desc.Constants {
		defines[i] = shader.Define{Name: c.Name, Value: c.Value}
	}

	program, err := shader.CompileProgram(
		shader.InjectDefines(vs.source, defines),
		shader.InjectDefines(fs.source, defines),
	)
	if err != nil {
		return 0, fmt.Errorf("pipeline %q: %w", desc.Name, err)
	}

	if idx := shader.UniformBlockIndex(program, uniformBlockName); idx != gl.INVALID_INDEX {
		gl.UniformBlockBinding(program, idx, 0)
	}
	if loc := shader.UniformLocation(program, albedoSampler); loc >= 0 {
		gl.UseProgram(program)
		gl.Uniform1i(loc, 0)
		gl.UseProgram(0)
	}

	h := Pipeline(d.id())
	d.pipelines[h] = &glPipeline{program: program, desc: desc}

	logger.Debug("pipeline created",
		zap.String("name", desc.Name),
		zap.Int("constants", len(desc.Constants)),
	)
	return h, nil
}

// DestroyPipeline releases p.
func (d *GLDevice) DestroyPipeline(p Pipeline) {
	pl, ok := d.pipelines[p]
	if !ok {
		return
	}
	gl.DeleteProgram(pl.program)
	delete(d.pipelines, p)
}

// SurfaceFormats reports RGBA8 color with a 24-bit depth buffer, matching
// both the window attributes and the offscreen framebuffer.
func (d *GLDevice) SurfaceFormats() (Format, Format) {
	return FormatRGBA8, FormatDepth24
}

// AcquireCommandBuffer returns the device's immediate command buffer.
func (d *GLDevice) AcquireCommandBuffer() CommandBuffer {
	d.cmd.reset()
	return &d.cmd
}

// Submit flushes GL and presents.
func (d *GLDevice) Submit(cmd CommandBuffer) error {
	if cmd != CommandBuffer(&d.cmd) {
		return fmt.Errorf("command buffer from another device")
	}
	gl.Flush()
	if e := gl.GetError(); e != gl.NO_ERROR {
		logger.Warn("GL error at submit", zap.Uint32("code", e))
	}
	if d.present != nil {
		d.present()
	}
	return nil
}

// Target returns the offscreen framebuffer, or nil when drawing to the window.
func (d *GLDevice) Target() *framebuffer.Framebuffer {
	return d.target
}

// SetTarget redirects later render passes into fb. Nil draws to the window.
func (d *GLDevice) SetTarget(fb *framebuffer.Framebuffer) {
	d.target = fb
}

// ReadPixels reads the last rendered frame as top-down RGBA.
func (d *GLDevice) ReadPixels(width, height int) []byte {
	if d.target != nil {
		return framebuffer.FlipRows(d.target.ReadPixels(), width, height)
	}
	pixels := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return framebuffer.FlipRows(pixels, width, height)
}

// Close releases every object still owned by the device.
func (d *GLDevice) Close() {
	for h := range d.pipelines {
		d.DestroyPipeline(h)
	}
	for h := range d.buffers {
		d.DestroyBuffer(h)
	}
	for h := range d.textures {
		d.DestroyTexture(h)
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

type glCommandBuffer struct {
	dev      *GLDevice
	pipeline *glPipeline
	vertex   uint32
	dirty    bool
}

func (c *glCommandBuffer) reset() {
	c.pipeline = nil
	c.vertex = 0
	c.dirty = true
}

func (c *glCommandBuffer) UpdateBuffer(b Buffer, data []byte) {
	buf, ok := c.dev.buffers[b]
	if !ok || len(data) == 0 {
		return
	}
	n := len(data)
	if n > buf.size {
		n = buf.size
	}
	gl.BindBuffer(buf.target, buf.id)
	gl.BufferSubData(buf.target, 0, n, gl.Ptr(data))
}

func (c *glCommandBuffer) BeginRenderPass(pass RenderPass, width, height int) {
	if t := c.dev.target; t != nil {
		t.Resize(int32(width), int32(height))
		t.Bind()
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, int32(width), int32(height))
	}

	gl.BindVertexArray(c.dev.vao)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.ClearColor(pass.ClearColor[0], pass.ClearColor[1], pass.ClearColor[2], pass.ClearColor[3])
	gl.ClearDepth(float64(pass.ClearDepth))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (c *glCommandBuffer) BindPipeline(p Pipeline) {
	pl, ok := c.dev.pipelines[p]
	if !ok {
		logger.Warn("bind of unknown pipeline", zap.Uint32("handle", uint32(p)))
		return
	}
	c.pipeline = pl
	c.dirty = true
	gl.UseProgram(pl.program)
	if pl.desc.FillMode == FillLine {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func (c *glCommandBuffer) SetDepthState(d DepthState) {
	gl.Enable(gl.DEPTH_TEST)
	switch d.Compare {
	case CompareLessEqual:
		gl.DepthFunc(gl.LEQUAL)
	case CompareAlways:
		gl.DepthFunc(gl.ALWAYS)
	default:
		gl.DepthFunc(gl.LESS)
	}
	gl.DepthMask(d.Write)
}

// SetDepthBias maps the slope term to the GL factor and the constant term to
// units. GL has no bias clamp, so Clamp is ignored.
func (c *glCommandBuffer) SetDepthBias(enabled bool, bias DepthBias) {
	if !enabled {
		gl.Disable(gl.POLYGON_OFFSET_LINE)
		gl.Disable(gl.POLYGON_OFFSET_FILL)
		return
	}
	gl.Enable(gl.POLYGON_OFFSET_LINE)
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(bias.Slope, bias.Constant)
}

func (c *glCommandBuffer) BindVertexBuffer(b Buffer) {
	buf, ok := c.dev.buffers[b]
	if !ok {
		return
	}
	c.vertex = buf.id
	c.dirty = true
}

func (c *glCommandBuffer) BindIndexBuffer(b Buffer) {
	buf, ok := c.dev.buffers[b]
	if !ok {
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.id)
}

func (c *glCommandBuffer) BindUniformBuffer(binding uint32, b Buffer) {
	buf, ok := c.dev.buffers[b]
	if !ok {
		return
	}
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, buf.id)
}

func (c *glCommandBuffer) BindTexture(unit uint32, t Texture) {
	id, ok := c.dev.textures[t]
	if !ok {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// applyLayout points the vertex attributes at the bound vertex buffer using
// the current pipeline's layout.
func (c *glCommandBuffer) applyLayout() {
	if !c.dirty || c.pipeline == nil || c.vertex == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vertex)
	layout := c.pipeline.desc.Layout
	for _, a := range layout.Attributes {
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, a.Format.Components(), gl.FLOAT, false, layout.Stride, a.Offset)
	}
	c.dirty = false
}

func (c *glCommandBuffer) DrawIndexed(count int) {
	if count <= 0 || c.pipeline == nil {
		return
	}
	c.applyLayout()
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_INT, nil)
}

func (c *glCommandBuffer) EndRenderPass() {
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.POLYGON_OFFSET_LINE)
	gl.Disable(gl.POLYGON_OFFSET_FILL)
	gl.DepthMask(true)
	if c.dev.target != nil {
		c.dev.target.Unbind()
	}
}
