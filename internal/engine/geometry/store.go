package geometry

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/internal/logger"
	"github.com/Faultbox/shading-sandbox/pkg/math"
)

// Store owns every registered mesh and its GPU buffers.
type Store struct {
	dev    gpu.Device
	meshes []*MeshRecord
}

// NewStore returns an empty store that allocates buffers on dev.
func NewStore(dev gpu.Device) *Store {
	return &Store{dev: dev}
}

// RegisterProcedural generates a UV sphere and uploads it.
func (s *Store) RegisterProcedural(name string, p SphereParams, offset math.Vec3) (MeshID, error) {
	vertices, indices := GenerateUVSphere(p.Radius, p.Rings, p.Segments)
	return s.register(name, vertices, indices, offset)
}

// RegisterImported loads a model file and uploads it. A file that cannot be
// imported is logged and registered as an empty mesh; only buffer creation
// failures are returned.
func (s *Store) RegisterImported(name, path string, opts ImportOptions, offset math.Vec3) (MeshID, error) {
	vertices, indices, err := Import(path, opts)
	if err != nil {
		logger.Warn("mesh import failed, registering empty mesh",
			zap.String("mesh", name),
			zap.String("path", path),
			zap.Error(err),
		)
		vertices, indices = nil, nil
	}
	return s.register(name, vertices, indices, offset)
}

// Register uploads a source of either kind.
func (s *Store) Register(src Source) (MeshID, error) {
	switch src.Kind {
	case SourceSphere:
		return s.RegisterProcedural(src.Name, src.Sphere, src.Offset)
	case SourceFile:
		return s.RegisterImported(src.Name, src.Path, src.Options, src.Offset)
	default:
		return 0, fmt.Errorf("mesh %q: unknown source kind %d", src.Name, src.Kind)
	}
}

func (s *Store) register(name string, vertices []Vertex, indices []uint32, offset math.Vec3) (MeshID, error) {
	if err := Validate(vertices, indices); err != nil {
		logger.Warn("mesh data invalid, registering empty mesh",
			zap.String("mesh", name),
			zap.Error(err),
		)
		vertices, indices = nil, nil
	}

	rec := &MeshRecord{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Offset:   offset,
	}

	vb, err := s.dev.CreateBuffer(gpu.UsageVertex, vertexBytes(vertices))
	if err != nil {
		return 0, fmt.Errorf("mesh %q vertex buffer: %w", name, err)
	}
	ib, err := s.dev.CreateBuffer(gpu.UsageIndex, indexBytes(indices))
	if err != nil {
		s.dev.DestroyBuffer(vb)
		return 0, fmt.Errorf("mesh %q index buffer: %w", name, err)
	}
	rec.VertexBuffer = vb
	rec.IndexBuffer = ib

	id := MeshID(len(s.meshes))
	s.meshes = append(s.meshes, rec)

	logger.Debug("mesh registered",
		zap.String("mesh", name),
		zap.Int("id", int(id)),
		zap.Int("vertices", len(vertices)),
		zap.Int("triangles", len(indices)/3),
	)
	return id, nil
}

// Get returns the mesh for id, or nil if id is unknown.
func (s *Store) Get(id MeshID) *MeshRecord {
	if id < 0 || int(id) >= len(s.meshes) {
		return nil
	}
	return s.meshes[id]
}

// Len returns the number of registered meshes.
func (s *Store) Len() int {
	return len(s.meshes)
}

// Names returns the mesh names in id order.
func (s *Store) Names() []string {
	names := make([]string, len(s.meshes))
	for i, m := range s.meshes {
		names[i] = m.Name
	}
	return names
}

// Close releases every buffer. The store is empty afterwards.
func (s *Store) Close() {
	for _, m := range s.meshes {
		s.dev.DestroyBuffer(m.VertexBuffer)
		s.dev.DestroyBuffer(m.IndexBuffer)
	}
	s.meshes = nil
}

func vertexBytes(v []Vertex) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*VertexSize)
}

func indexBytes(idx []uint32) []byte {
	if len(idx) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&idx[0])), len(idx)*4)
}
