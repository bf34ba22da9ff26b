package geometry

import (
	gomath "math"
)

// GenerateUVSphere builds a latitude/longitude sphere centered at the origin.
// Rings and segments are clamped to at least 2 and 3.
func GenerateUVSphere(radius float32, rings, segments int) ([]Vertex, []uint32) {
	rings = max(rings, 2)
	segments = max(segments, 3)

	vertices := make([]Vertex, 0, (rings+1)*(segments+1))
	for r := 0; r <= rings; r++ {
		v := float64(r) / float64(rings)
		phi := v * gomath.Pi
		sinPhi, cosPhi := gomath.Sincos(phi)

		for s := 0; s <= segments; s++ {
			u := float64(s) / float64(segments)
			theta := u * 2 * gomath.Pi
			sinTheta, cosTheta := gomath.Sincos(theta)

			n := [3]float32{
				float32(sinPhi * cosTheta),
				float32(cosPhi),
				float32(sinPhi * sinTheta),
			}
			vertices = append(vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				UV:       [2]float32{float32(u), float32(v)},
			})
		}
	}

	stride := uint32(segments + 1)
	indices := make([]uint32, 0, rings*segments*6)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			// Counter-clockwise seen from outside.
			indices = append(indices, a, a+1, b)
			indices = append(indices, a+1, b+1, b)
		}
	}

	return vertices, indices
}
