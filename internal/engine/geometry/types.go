// Package geometry turns procedural and imported triangle meshes into
// GPU-resident vertex and index buffers, keyed by opaque MeshID.
package geometry

import (
	"unsafe"

	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/pkg/math"
)

// Vertex is the interleaved vertex format shared by every mesh.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexSize is the byte size of Vertex.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// MeshID identifies a registered mesh. IDs are dense and start at 0 in
// registration order.
type MeshID int

// MeshRecord is one registered mesh. The GPU buffers are created when the
// mesh is registered and released only by Store.Close.
type MeshRecord struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32

	VertexBuffer gpu.Buffer
	IndexBuffer  gpu.Buffer

	// Offset places the mesh in the world.
	Offset math.Vec3
}

// IndexCount returns the number of indices to draw.
func (m *MeshRecord) IndexCount() int {
	return len(m.Indices)
}

// Empty reports whether the mesh has nothing to draw.
func (m *MeshRecord) Empty() bool {
	return len(m.Indices) == 0
}

// SphereParams configures GenerateUVSphere.
type SphereParams struct {
	Radius   float32
	Rings    int
	Segments int
}

// ImportOptions tunes Import.
type ImportOptions struct {
	// GenerateNormals computes smooth normals when the source has none.
	GenerateNormals bool
}

// SourceKind says how a Source produces its geometry.
type SourceKind int

const (
	SourceSphere SourceKind = iota
	SourceFile
)

// Source describes one mesh to register at startup.
type Source struct {
	Name    string
	Kind    SourceKind
	Sphere  SphereParams
	Path    string
	Options ImportOptions
	Offset  math.Vec3
}

// Layout returns the vertex layout of Vertex: position, normal and UV at
// locations 0, 1 and 2.
func Layout() gpu.VertexLayout {
	var v Vertex
	return gpu.VertexLayout{
		Attributes: []gpu.VertexAttribute{
			{Location: 0, Format: gpu.FormatFloat3, Offset: unsafe.Offsetof(v.Position)},
			{Location: 1, Format: gpu.FormatFloat3, Offset: unsafe.Offsetof(v.Normal)},
			{Location: 2, Format: gpu.FormatFloat2, Offset: unsafe.Offsetof(v.UV)},
		},
		Stride: int32(VertexSize),
	}
}
