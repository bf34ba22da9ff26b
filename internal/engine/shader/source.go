package shader

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed glsl/*.vert glsl/*.frag
var embedded embed.FS

// File names of the mesh shaders.
const (
	MeshVertex   = "mesh.vert"
	MeshFragment = "mesh.frag"
)

// Source returns the shader named name. When dir is non-empty and contains the
// file, that copy wins over the embedded one.
func Source(dir, name string) (string, error) {
	if dir != "" {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("reading shader %s: %w", name, err)
		}
	}

	data, err := fs.ReadFile(embedded, "glsl/"+name)
	if err != nil {
		return "", fmt.Errorf("shader %s not found: %w", name, err)
	}
	return string(data), nil
}
