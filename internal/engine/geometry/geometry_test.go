package geometry

import (
	"errors"
	gomath "math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/internal/engine/gpu/gputest"
	"github.com/Faultbox/shading-sandbox/pkg/math"
)

func checkTriangles(t *testing.T, vertices []Vertex, indices []uint32) {
	t.Helper()
	if len(indices)%3 != 0 {
		t.Errorf("len(indices) = %d, not a multiple of 3", len(indices))
	}
	for i, idx := range indices {
		if int(idx) >= len(vertices) {
			t.Fatalf("indices[%d] = %d >= %d vertices", i, idx, len(vertices))
		}
	}
}

func TestGenerateUVSphere(t *testing.T) {
	tests := []struct {
		name               string
		radius             float32
		rings, segments    int
		wantRings, wantSeg int
	}{
		{"default", 1, 32, 64, 32, 64},
		{"small", 0.1, 32, 64, 32, 64},
		{"degenerate clamps", 1, 0, 1, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, idx := GenerateUVSphere(tt.radius, tt.rings, tt.segments)
			checkTriangles(t, v, idx)

			if want := (tt.wantRings + 1) * (tt.wantSeg + 1); len(v) != want {
				t.Errorf("vertices = %d, want %d", len(v), want)
			}
			if want := tt.wantRings * tt.wantSeg * 6; len(idx) != want {
				t.Errorf("indices = %d, want %d", len(idx), want)
			}
			for i, vert := range v {
				p := math.V3(vert.Position)
				if gomath.Abs(float64(p.Length()-tt.radius)) > 1e-4 {
					t.Fatalf("vertex %d at distance %f, want %f", i, p.Length(), tt.radius)
				}
				n := math.V3(vert.Normal)
				if gomath.Abs(float64(n.Length()-1)) > 1e-4 {
					t.Fatalf("vertex %d normal length %f", i, n.Length())
				}
			}
		})
	}
}

func TestSphereWindingOutward(t *testing.T) {
	v, idx := GenerateUVSphere(1, 8, 16)
	for i := 0; i < len(idx); i += 3 {
		a, b, c := math.V3(v[idx[i]].Position), math.V3(v[idx[i+1]].Position), math.V3(v[idx[i+2]].Position)
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() < 1e-6 {
			continue // pole triangles collapse
		}
		center := a.Add(b).Add(c).Scale(1.0 / 3)
		if n.Dot(center) <= 0 {
			t.Fatalf("triangle %d faces inward", i/3)
		}
	}
}

func TestValidate(t *testing.T) {
	three := make([]Vertex, 3)
	tests := []struct {
		name    string
		indices []uint32
		wantErr error
	}{
		{"empty", nil, nil},
		{"ok", []uint32{0, 1, 2}, nil},
		{"partial triangle", []uint32{0, 1}, ErrNotTriangles},
		{"out of range", []uint32{0, 1, 3}, ErrIndexRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(three, tt.indices)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

const cubeOBJ = `# unit quad and triangle
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
f -4/-4/-1 -2/-2/-1 -1/-1/-1
`

func TestParseOBJ(t *testing.T) {
	v, idx, err := parseOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatal(err)
	}
	checkTriangles(t, v, idx)

	// Quad fans into two triangles, plus one triangle.
	if len(idx) != 9 {
		t.Errorf("indices = %d, want 9", len(idx))
	}
	// The second face reuses corners 1, 3 and 4 of the quad.
	if len(v) != 4 {
		t.Errorf("vertices = %d, want 4 (shared tuples deduplicated)", len(v))
	}
	if v[1].UV != [2]float32{1, 0} {
		t.Errorf("vertex 1 uv = %v", v[1].UV)
	}
	if v[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("vertex 0 normal = %v", v[0].Normal)
	}
	want := []uint32{0, 1, 2, 0, 2, 3, 0, 2, 3}
	for i := range want {
		if idx[i] != want[i] {
			t.Errorf("indices = %v, want %v", idx, want)
			break
		}
	}
}

func TestParseOBJPositionOnly(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	v, idx, err := parseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 3 || len(idx) != 3 {
		t.Fatalf("got %d vertices, %d indices", len(v), len(idx))
	}
	if v[2].Normal != ([3]float32{}) || v[2].UV != ([2]float32{}) {
		t.Error("missing attributes should be zero")
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"index past end", "v 0 0 0\nf 1 2 3\n"},
		{"bad float", "v 0 x 0\n"},
		{"two corners", "v 0 0 0\nv 1 1 1\nf 1 2\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parseOBJ(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestImportOBJWithGeneratedNormals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	v, _, err := Import(path, ImportOptions{GenerateNormals: true})
	if err != nil {
		t.Fatal(err)
	}
	for i := range v {
		if v[i].Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v, want +Z", i, v[i].Normal)
		}
	}

	v, _, err = Import(path, ImportOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if v[0].Normal != ([3]float32{}) {
		t.Error("normals generated without the option")
	}
}

func TestImportErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.obj")
	if err := os.WriteFile(empty, []byte("# nothing\n"), 0644); err != nil {
		t.Fatal(err)
	}
	garbage := filepath.Join(dir, "broken.glb")
	if err := os.WriteFile(garbage, []byte("not a glb"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"missing file", filepath.Join(dir, "missing.obj"), nil},
		{"no faces", empty, ErrNoMeshes},
		{"unknown extension", filepath.Join(dir, "mesh.fbx"), ErrUnsupportedFormat},
		{"corrupt glb", garbage, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Import(tt.path, ImportOptions{})
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStoreRegisterProcedural(t *testing.T) {
	dev := gputest.New()
	s := NewStore(dev)

	offset := math.Vec3{X: 0, Y: 0.1, Z: 0}
	id, err := s.RegisterProcedural("UV-Sphere", SphereParams{Radius: 0.1, Rings: 32, Segments: 64}, offset)
	if err != nil {
		t.Fatal(err)
	}
	m := s.Get(id)
	if m == nil {
		t.Fatal("Get returned nil")
	}
	if m.Name != "UV-Sphere" || m.Offset != offset {
		t.Errorf("record = %q offset %+v", m.Name, m.Offset)
	}
	checkTriangles(t, m.Vertices, m.Indices)

	vb := dev.Buffers[m.VertexBuffer]
	ib := dev.Buffers[m.IndexBuffer]
	if vb.Usage != gpu.UsageVertex || vb.Size != len(m.Vertices)*VertexSize {
		t.Errorf("vertex buffer %+v, want %d bytes", vb.Usage, len(m.Vertices)*VertexSize)
	}
	if ib.Usage != gpu.UsageIndex || ib.Size != len(m.Indices)*4 {
		t.Errorf("index buffer size %d, want %d", ib.Size, len(m.Indices)*4)
	}
}

func TestStoreMissingImportIsEmpty(t *testing.T) {
	dev := gputest.New()
	s := NewStore(dev)

	id, err := s.RegisterImported("Bunny", "/nonexistent/bunny.obj", ImportOptions{}, math.Vec3{})
	if err != nil {
		t.Fatalf("RegisterImported() error = %v, want nil", err)
	}
	m := s.Get(id)
	if m == nil {
		t.Fatal("missing import not registered")
	}
	if !m.Empty() || m.IndexCount() != 0 || len(m.Vertices) != 0 {
		t.Errorf("record has %d vertices, %d indices, want empty", len(m.Vertices), m.IndexCount())
	}
	if dev.BuffersCreated != 2 {
		t.Errorf("buffers created = %d, want 2", dev.BuffersCreated)
	}
	if dev.Buffers[m.IndexBuffer].Size != 0 {
		t.Error("empty mesh index buffer should be zero-sized")
	}
}

func TestStoreIDsAndGet(t *testing.T) {
	s := NewStore(gputest.New())
	srcs := []Source{
		{Name: "a", Kind: SourceSphere, Sphere: SphereParams{Radius: 1, Rings: 4, Segments: 4}},
		{Name: "b", Kind: SourceFile, Path: "missing.obj"},
		{Name: "c", Kind: SourceSphere, Sphere: SphereParams{Radius: 2, Rings: 4, Segments: 4}},
	}
	for i, src := range srcs {
		id, err := s.Register(src)
		if err != nil {
			t.Fatal(err)
		}
		if int(id) != i {
			t.Errorf("id = %d, want %d", id, i)
		}
	}

	if s.Len() != 3 {
		t.Errorf("Len() = %d", s.Len())
	}
	if got := strings.Join(s.Names(), ","); got != "a,b,c" {
		t.Errorf("Names() = %s", got)
	}
	for _, id := range []MeshID{-1, 3, 100} {
		if s.Get(id) != nil {
			t.Errorf("Get(%d) should be nil", id)
		}
	}
	if _, err := s.Register(Source{Name: "x", Kind: SourceKind(9)}); err == nil {
		t.Error("unknown source kind should fail")
	}
}

func TestStoreBufferFailure(t *testing.T) {
	dev := gputest.New()
	dev.FailBuffers = true
	s := NewStore(dev)

	if _, err := s.RegisterProcedural("s", SphereParams{Radius: 1, Rings: 4, Segments: 4}, math.Vec3{}); err == nil {
		t.Error("expected buffer creation error")
	}
	if s.Len() != 0 {
		t.Error("failed registration should not add a record")
	}
}

func TestStoreClose(t *testing.T) {
	dev := gputest.New()
	s := NewStore(dev)
	for i := 0; i < 3; i++ {
		if _, err := s.RegisterProcedural("s", SphereParams{Radius: 1, Rings: 4, Segments: 4}, math.Vec3{}); err != nil {
			t.Fatal(err)
		}
	}
	if dev.BuffersDestroyed != 0 {
		t.Fatal("buffers freed before Close")
	}

	s.Close()
	if dev.BuffersDestroyed != 6 || len(dev.Buffers) != 0 {
		t.Errorf("destroyed %d, remaining %d", dev.BuffersDestroyed, len(dev.Buffers))
	}
	if s.Len() != 0 {
		t.Error("store not empty after Close")
	}
}

func TestLayout(t *testing.T) {
	l := Layout()
	if l.Stride != 32 || VertexSize != 32 {
		t.Fatalf("stride = %d, VertexSize = %d, want 32", l.Stride, VertexSize)
	}
	want := []gpu.VertexAttribute{
		{Location: 0, Format: gpu.FormatFloat3, Offset: 0},
		{Location: 1, Format: gpu.FormatFloat3, Offset: 12},
		{Location: 2, Format: gpu.FormatFloat2, Offset: 24},
	}
	if len(l.Attributes) != len(want) {
		t.Fatalf("attributes = %d", len(l.Attributes))
	}
	for i := range want {
		if l.Attributes[i] != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, l.Attributes[i], want[i])
		}
	}
}
