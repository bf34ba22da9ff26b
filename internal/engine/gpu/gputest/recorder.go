// Package gputest provides a recording gpu.Device for tests.
package gputest

import (
	"fmt"

	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
)

// OpKind names a recorded command.
type OpKind string

const (
	OpUpdateBuffer     OpKind = "update-buffer"
	OpBeginRenderPass  OpKind = "begin-pass"
	OpBindPipeline     OpKind = "bind-pipeline"
	OpSetDepthState    OpKind = "depth-state"
	OpSetDepthBias     OpKind = "depth-bias"
	OpBindVertexBuffer OpKind = "bind-vertex"
	OpBindIndexBuffer  OpKind = "bind-index"
	OpBindUniform      OpKind = "bind-uniform"
	OpBindTexture      OpKind = "bind-texture"
	OpDrawIndexed      OpKind = "draw-indexed"
	OpEndRenderPass    OpKind = "end-pass"
	OpSubmit           OpKind = "submit"
)

// Op is one recorded command.
type Op struct {
	Kind     OpKind
	Buffer   gpu.Buffer
	Pipeline gpu.Pipeline
	Texture  gpu.Texture
	Binding  uint32
	Count    int
	Width    int
	Height   int
	Pass     gpu.RenderPass
	Depth    gpu.DepthState
	Bias     gpu.DepthBias
	Enabled  bool
	Data     []byte
}

// BufferInfo describes a live buffer.
type BufferInfo struct {
	Usage gpu.BufferUsage
	Size  int
	Data  []byte
}

// Recorder implements gpu.Device and gpu.CommandBuffer by logging calls.
type Recorder struct {
	Ops []Op

	Buffers   map[gpu.Buffer]BufferInfo
	Pipelines map[gpu.Pipeline]gpu.PipelineDesc
	Modules   map[gpu.ShaderModule]string
	Textures  map[gpu.Texture][2]int

	BuffersCreated   int
	BuffersDestroyed int

	// FailPipeline, when set, decides whether CreatePipeline fails.
	FailPipeline func(desc gpu.PipelineDesc) error
	// FailBuffers makes every CreateBuffer call fail.
	FailBuffers bool

	Color gpu.Format
	Depth gpu.Format

	next uint32
}

// New returns an empty recorder with RGBA8/Depth24 surface formats.
func New() *Recorder {
	return &Recorder{
		Buffers:   make(map[gpu.Buffer]BufferInfo),
		Pipelines: make(map[gpu.Pipeline]gpu.PipelineDesc),
		Modules:   make(map[gpu.ShaderModule]string),
		Textures:  make(map[gpu.Texture][2]int),
		Color:     gpu.FormatRGBA8,
		Depth:     gpu.FormatDepth24,
	}
}

func (r *Recorder) id() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) CreateBuffer(usage gpu.BufferUsage, data []byte) (gpu.Buffer, error) {
	if r.FailBuffers {
		return 0, fmt.Errorf("gputest: buffer creation disabled")
	}
	h := gpu.Buffer(r.id())
	r.Buffers[h] = BufferInfo{Usage: usage, Size: len(data), Data: append([]byte(nil), data...)}
	r.BuffersCreated++
	return h, nil
}

func (r *Recorder) DestroyBuffer(b gpu.Buffer) {
	if _, ok := r.Buffers[b]; ok {
		delete(r.Buffers, b)
		r.BuffersDestroyed++
	}
}

func (r *Recorder) CreateTexture(width, height int, rgba []byte) (gpu.Texture, error) {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return 0, fmt.Errorf("gputest: bad texture %dx%d", width, height)
	}
	h := gpu.Texture(r.id())
	r.Textures[h] = [2]int{width, height}
	return h, nil
}

func (r *Recorder) DestroyTexture(t gpu.Texture) {
	delete(r.Textures, t)
}

func (r *Recorder) CreateShaderModule(stage gpu.ShaderStage, source string) (gpu.ShaderModule, error) {
	if source == "" {
		return 0, fmt.Errorf("gputest: empty shader")
	}
	h := gpu.ShaderModule(r.id())
	r.Modules[h] = source
	return h, nil
}

func (r *Recorder) DestroyShaderModule(m gpu.ShaderModule) {
	delete(r.Modules, m)
}

func (r *Recorder) CreatePipeline(desc gpu.PipelineDesc) (gpu.Pipeline, error) {
	if r.FailPipeline != nil {
		if err := r.FailPipeline(desc); err != nil {
			return 0, err
		}
	}
	if _, ok := r.Modules[desc.Vertex]; !ok {
		return 0, gpu.ErrInvalidHandle
	}
	if _, ok := r.Modules[desc.Fragment]; !ok {
		return 0, gpu.ErrInvalidHandle
	}
	if desc.ColorFormat != r.Color || desc.DepthFormat != r.Depth {
		return 0, gpu.ErrFormatMismatch
	}
	h := gpu.Pipeline(r.id())
	desc.Constants = append([]gpu.Constant(nil), desc.Constants...)
	r.Pipelines[h] = desc
	return h, nil
}

func (r *Recorder) DestroyPipeline(p gpu.Pipeline) {
	delete(r.Pipelines, p)
}

func (r *Recorder) SurfaceFormats() (gpu.Format, gpu.Format) {
	return r.Color, r.Depth
}

func (r *Recorder) AcquireCommandBuffer() gpu.CommandBuffer {
	return r
}

func (r *Recorder) Submit(cmd gpu.CommandBuffer) error {
	r.Ops = append(r.Ops, Op{Kind: OpSubmit})
	return nil
}

func (r *Recorder) UpdateBuffer(b gpu.Buffer, data []byte) {
	r.Ops = append(r.Ops, Op{Kind: OpUpdateBuffer, Buffer: b, Data: append([]byte(nil), data...)})
}

func (r *Recorder) BeginRenderPass(pass gpu.RenderPass, width, height int) {
	r.Ops = append(r.Ops, Op{Kind: OpBeginRenderPass, Pass: pass, Width: width, Height: height})
}

func (r *Recorder) BindPipeline(p gpu.Pipeline) {
	r.Ops = append(r.Ops, Op{Kind: OpBindPipeline, Pipeline: p})
}

func (r *Recorder) SetDepthState(d gpu.DepthState) {
	r.Ops = append(r.Ops, Op{Kind: OpSetDepthState, Depth: d})
}

func (r *Recorder) SetDepthBias(enabled bool, bias gpu.DepthBias) {
	r.Ops = append(r.Ops, Op{Kind: OpSetDepthBias, Enabled: enabled, Bias: bias})
}

func (r *Recorder) BindVertexBuffer(b gpu.Buffer) {
	r.Ops = append(r.Ops, Op{Kind: OpBindVertexBuffer, Buffer: b})
}

func (r *Recorder) BindIndexBuffer(b gpu.Buffer) {
	r.Ops = append(r.Ops, Op{Kind: OpBindIndexBuffer, Buffer: b})
}

func (r *Recorder) BindUniformBuffer(binding uint32, b gpu.Buffer) {
	r.Ops = append(r.Ops, Op{Kind: OpBindUniform, Binding: binding, Buffer: b})
}

func (r *Recorder) BindTexture(unit uint32, t gpu.Texture) {
	r.Ops = append(r.Ops, Op{Kind: OpBindTexture, Binding: unit, Texture: t})
}

func (r *Recorder) DrawIndexed(count int) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawIndexed, Count: count})
}

func (r *Recorder) EndRenderPass() {
	r.Ops = append(r.Ops, Op{Kind: OpEndRenderPass})
}

// Reset clears the recorded commands, keeping created objects.
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Filter returns the recorded ops of the given kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	return len(r.Filter(kind))
}

var (
	_ gpu.Device        = (*Recorder)(nil)
	_ gpu.CommandBuffer = (*Recorder)(nil)
)
