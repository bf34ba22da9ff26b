package gpu

import "errors"

var (
	// ErrInvalidHandle is returned when a handle does not name a live object.
	ErrInvalidHandle = errors.New("gpu: invalid handle")
	// ErrFormatMismatch is returned when a pipeline targets formats the surface lacks.
	ErrFormatMismatch = errors.New("gpu: pipeline formats do not match surface")
)

// Device creates GPU objects and submits recorded work.
type Device interface {
	CreateBuffer(usage BufferUsage, data []byte) (Buffer, error)
	DestroyBuffer(b Buffer)

	CreateTexture(width, height int, rgba []byte) (Texture, error)
	DestroyTexture(t Texture)

	CreateShaderModule(stage ShaderStage, source string) (ShaderModule, error)
	DestroyShaderModule(m ShaderModule)

	CreatePipeline(desc PipelineDesc) (Pipeline, error)
	DestroyPipeline(p Pipeline)

	// SurfaceFormats returns the color and depth formats of the presentation target.
	SurfaceFormats() (color, depth Format)

	AcquireCommandBuffer() CommandBuffer
	Submit(cmd CommandBuffer) error
}

// CommandBuffer records one frame of work.
type CommandBuffer interface {
	UpdateBuffer(b Buffer, data []byte)
	BeginRenderPass(pass RenderPass, width, height int)
	BindPipeline(p Pipeline)
	SetDepthState(d DepthState)
	SetDepthBias(enabled bool, bias DepthBias)
	BindVertexBuffer(b Buffer)
	BindIndexBuffer(b Buffer)
	BindUniformBuffer(binding uint32, b Buffer)
	BindTexture(unit uint32, t Texture)
	DrawIndexed(count int)
	EndRenderPass()
}
