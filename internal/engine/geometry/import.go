package geometry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file extensions Import cannot read.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
	// ErrNoMeshes is returned when a file parses but holds no triangles.
	ErrNoMeshes = errors.New("scene is invalid or has no meshes")
)

// Import reads the first mesh of a model file. Wavefront OBJ and glTF
// (.gltf, .glb) are supported.
func Import(path string, opts ImportOptions) ([]Vertex, []uint32, error) {
	var (
		vertices []Vertex
		indices  []uint32
		err      error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		vertices, indices, err = importOBJ(path)
	case ".gltf", ".glb":
		vertices, indices, err = importGLTF(path)
	default:
		return nil, nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(vertices) == 0 || len(indices) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrNoMeshes)
	}
	if err := Validate(vertices, indices); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	if opts.GenerateNormals && !hasNormals(vertices) {
		GenerateNormals(vertices, indices)
	}

	return vertices, indices, nil
}
