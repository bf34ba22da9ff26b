package app

import (
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/shading-sandbox/internal/engine/geometry"
	"github.com/Faultbox/shading-sandbox/internal/logger"
)

// modelPicker runs the native file dialog off the main thread and hands the
// chosen path back through a channel the frame loop drains.
type modelPicker struct {
	picked chan string
	busy   bool
}

func newModelPicker() *modelPicker {
	return &modelPicker{picked: make(chan string, 1)}
}

// Open shows the dialog unless one is already showing.
func (m *modelPicker) Open() {
	if m.busy {
		return
	}
	m.busy = true

	go func() {
		filename, err := dialog.File().
			Filter("Models", "obj", "gltf", "glb").
			Filter("All Files", "*").
			Title("Open Model").
			Load()
		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			filename = ""
		}
		m.picked <- filename
	}()
}

// Poll returns a picked path, if the dialog closed since the last call.
func (m *modelPicker) Poll() (string, bool) {
	select {
	case path := <-m.picked:
		m.busy = false
		return path, path != ""
	default:
		return "", false
	}
}

// modelSource describes a user-picked model file.
func modelSource(path string) geometry.Source {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return geometry.Source{
		Name:    name,
		Kind:    geometry.SourceFile,
		Path:    path,
		Options: geometry.ImportOptions{GenerateNormals: true},
	}
}
