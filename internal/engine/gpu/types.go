// Package gpu is the thin device abstraction the renderer draws through.
// Handles are opaque integers; zero is never a valid handle.
package gpu

// Buffer is a GPU buffer handle.
type Buffer uint32

// Pipeline is a compiled pipeline handle.
type Pipeline uint32

// Texture is a sampled texture handle.
type Texture uint32

// ShaderModule is a shader source handle.
type ShaderModule uint32

// BufferUsage says how a buffer is bound.
type BufferUsage int

const (
	UsageVertex BufferUsage = iota
	UsageIndex
	UsageUniform
)

func (u BufferUsage) String() string {
	switch u {
	case UsageVertex:
		return "vertex"
	case UsageIndex:
		return "index"
	case UsageUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Format covers vertex attribute and render target formats.
type Format int

const (
	FormatUndefined Format = iota
	FormatFloat2
	FormatFloat3
	FormatFloat4
	FormatRGBA8
	FormatDepth24
)

// Components returns the float count of a vertex format, or 0.
func (f Format) Components() int32 {
	switch f {
	case FormatFloat2:
		return 2
	case FormatFloat3:
		return 3
	case FormatFloat4:
		return 4
	default:
		return 0
	}
}

func (f Format) String() string {
	switch f {
	case FormatFloat2:
		return "float2"
	case FormatFloat3:
		return "float3"
	case FormatFloat4:
		return "float4"
	case FormatRGBA8:
		return "rgba8"
	case FormatDepth24:
		return "depth24"
	default:
		return "undefined"
	}
}

// ShaderStage identifies a programmable stage.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

// FillMode is the rasterizer polygon mode.
type FillMode int

const (
	FillSolid FillMode = iota
	FillLine
)

// CompareOp is a depth comparison function.
type CompareOp int

const (
	CompareLess CompareOp = iota
	CompareLessEqual
	CompareAlways
)

// VertexAttribute describes one shader input.
type VertexAttribute struct {
	Location uint32
	Format   Format
	Offset   uintptr
}

// VertexLayout describes an interleaved vertex buffer.
type VertexLayout struct {
	Attributes []VertexAttribute
	Stride     int32
}

// Constant is a build-time shader constant.
type Constant struct {
	Name  string
	Value int32
}

// PipelineDesc is everything needed to build one pipeline.
type PipelineDesc struct {
	Name        string
	Vertex      ShaderModule
	Fragment    ShaderModule
	Layout      VertexLayout
	ColorFormat Format
	DepthFormat Format
	FillMode    FillMode
	Constants   []Constant
}

// DepthState configures the depth test for subsequent draws.
type DepthState struct {
	Compare CompareOp
	Write   bool
}

// DepthBias offsets rasterized depth.
type DepthBias struct {
	Constant float32
	Slope    float32
	Clamp    float32
}

// RenderPass describes the clear values of a pass.
type RenderPass struct {
	ClearColor [4]float32
	ClearDepth float32
}
