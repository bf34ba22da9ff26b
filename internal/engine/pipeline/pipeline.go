// Package pipeline builds the solid and wireframe pipelines the renderer
// draws with. Both come from one descriptor and differ only in fill mode and
// the IS_WIREFRAME constant.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/internal/logger"
)

// Constant names understood by the mesh shaders.
const (
	ConstWireframe    = "IS_WIREFRAME"
	ConstShadingModel = "SHADING_MODEL"
)

// Descriptor is the shared description of a pipeline pair.
type Descriptor struct {
	Name        string
	Vertex      gpu.ShaderModule
	Fragment    gpu.ShaderModule
	Layout      gpu.VertexLayout
	ColorFormat gpu.Format
	DepthFormat gpu.Format
	Constants   []gpu.Constant
}

// Set is a solid pipeline and its wireframe twin.
type Set struct {
	Solid     gpu.Pipeline
	Wireframe gpu.Pipeline

	Layout      gpu.VertexLayout
	ColorFormat gpu.Format
	DepthFormat gpu.Format
}

func (d Descriptor) desc(fill gpu.FillMode, suffix string, extra ...gpu.Constant) gpu.PipelineDesc {
	constants := make([]gpu.Constant, 0, len(d.Constants)+len(extra))
	constants = append(constants, d.Constants...)
	constants = append(constants, extra...)

	return gpu.PipelineDesc{
		Name:        d.Name + suffix,
		Vertex:      d.Vertex,
		Fragment:    d.Fragment,
		Layout:      d.Layout,
		ColorFormat: d.ColorFormat,
		DepthFormat: d.DepthFormat,
		FillMode:    fill,
		Constants:   constants,
	}
}

// Build creates both pipelines of a set. On error nothing is left allocated.
func Build(dev gpu.Device, d Descriptor) (Set, error) {
	set := Set{
		Layout:      d.Layout,
		ColorFormat: d.ColorFormat,
		DepthFormat: d.DepthFormat,
	}

	solid, err := dev.CreatePipeline(d.desc(gpu.FillSolid, "/solid"))
	if err != nil {
		return Set{}, fmt.Errorf("building %s solid pipeline: %w", d.Name, err)
	}
	if solid == 0 {
		return Set{}, fmt.Errorf("building %s solid pipeline: %w", d.Name, gpu.ErrInvalidHandle)
	}

	wire, err := dev.CreatePipeline(d.desc(gpu.FillLine, "/wireframe", gpu.Constant{Name: ConstWireframe, Value: 1}))
	if err == nil && wire == 0 {
		err = gpu.ErrInvalidHandle
	}
	if err != nil {
		dev.DestroyPipeline(solid)
		return Set{}, fmt.Errorf("building %s wireframe pipeline: %w", d.Name, err)
	}

	set.Solid = solid
	set.Wireframe = wire
	return set, nil
}

// Destroy releases both pipelines.
func (s Set) Destroy(dev gpu.Device) {
	dev.DestroyPipeline(s.Solid)
	dev.DestroyPipeline(s.Wireframe)
}

// Library holds one Set per shading model.
type Library struct {
	dev    gpu.Device
	models []frame.ShadingModel
	sets   map[frame.ShadingModel]Set
}

// BuildLibrary builds a Set for every model, adding the SHADING_MODEL
// constant to base. Any failure destroys what was built and returns the error.
func BuildLibrary(dev gpu.Device, base Descriptor, models []frame.ShadingModel) (*Library, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("pipeline library needs at least one shading model")
	}

	lib := &Library{
		dev:  dev,
		sets: make(map[frame.ShadingModel]Set, len(models)),
	}

	for _, m := range models {
		if _, ok := lib.sets[m]; ok {
			continue
		}
		d := base
		d.Name = fmt.Sprintf("%s/%s", base.Name, m)
		d.Constants = append(append([]gpu.Constant(nil), base.Constants...),
			gpu.Constant{Name: ConstShadingModel, Value: int32(m)})

		set, err := Build(dev, d)
		if err != nil {
			lib.Destroy()
			return nil, err
		}
		lib.sets[m] = set
		lib.models = append(lib.models, m)
	}

	logger.Info("pipelines built", zap.Int("sets", len(lib.sets)))
	return lib, nil
}

// Get returns the set for m, or the first model's set when m is unknown.
func (l *Library) Get(m frame.ShadingModel) Set {
	if s, ok := l.sets[m]; ok {
		return s
	}
	return l.sets[l.models[0]]
}

// Destroy releases every pipeline.
func (l *Library) Destroy() {
	for _, s := range l.sets {
		s.Destroy(l.dev)
	}
	l.sets = map[frame.ShadingModel]Set{}
	l.models = nil
}
