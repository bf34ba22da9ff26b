package geometry

import (
	"errors"
	"fmt"
	gomath "math"
)

var (
	// ErrNotTriangles means the index count is not a multiple of three.
	ErrNotTriangles = errors.New("index count is not a multiple of 3")
	// ErrIndexRange means an index points past the vertex array.
	ErrIndexRange = errors.New("index out of range")
)

// Validate checks that indices describe whole triangles over vertices.
func Validate(vertices []Vertex, indices []uint32) error {
	if len(indices)%3 != 0 {
		return fmt.Errorf("%d indices: %w", len(indices), ErrNotTriangles)
	}
	n := uint32(len(vertices))
	for i, idx := range indices {
		if idx >= n {
			return fmt.Errorf("index %d = %d with %d vertices: %w", i, idx, n, ErrIndexRange)
		}
	}
	return nil
}

// GenerateNormals overwrites vertex normals with area-weighted averages of
// the adjacent face normals.
func GenerateNormals(vertices []Vertex, indices []uint32) {
	acc := make([][3]float64, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := vertices[i0].Position, vertices[i1].Position, vertices[i2].Position

		e1 := [3]float64{float64(p1[0] - p0[0]), float64(p1[1] - p0[1]), float64(p1[2] - p0[2])}
		e2 := [3]float64{float64(p2[0] - p0[0]), float64(p2[1] - p0[1]), float64(p2[2] - p0[2])}
		// Unnormalized cross product: length is twice the triangle area.
		n := [3]float64{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		for _, idx := range [3]uint32{i0, i1, i2} {
			acc[idx][0] += n[0]
			acc[idx][1] += n[1]
			acc[idx][2] += n[2]
		}
	}

	for i, n := range acc {
		l := gomath.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if l < 1e-12 {
			vertices[i].Normal = [3]float32{}
			continue
		}
		vertices[i].Normal = [3]float32{float32(n[0] / l), float32(n[1] / l), float32(n[2] / l)}
	}
}

func hasNormals(vertices []Vertex) bool {
	for i := range vertices {
		if vertices[i].Normal != ([3]float32{}) {
			return true
		}
	}
	return false
}
