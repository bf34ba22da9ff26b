package config

import (
	"github.com/Faultbox/shading-sandbox/internal/engine/camera"
	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
	"github.com/Faultbox/shading-sandbox/internal/engine/geometry"
	"github.com/Faultbox/shading-sandbox/internal/engine/renderer"
	"github.com/Faultbox/shading-sandbox/pkg/math"
)

func vec3(v [3]float32) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// CameraConfig converts the camera section.
func (c *Config) CameraConfig() camera.Config {
	return camera.Config{
		Position:    vec3(c.Camera.Position),
		Target:      vec3(c.Camera.Target),
		MoveSpeed:   c.Camera.MoveSpeed,
		Sensitivity: c.Camera.Sensitivity,
		Damping:     c.Camera.Damping,
	}
}

// FrameConfig converts the projection and rotation settings.
func (c *Config) FrameConfig() frame.Config {
	return frame.Config{
		FovYDegrees:   c.Camera.FOV,
		Near:          c.Camera.Near,
		Far:           c.Camera.Far,
		RotationSpeed: c.Scene.RotationSpeed,
		RotationAxis:  vec3(c.Scene.RotationAxis),
	}
}

// Settings returns the initial render settings. An unknown shading model
// falls back to toon; Validate reports it.
func (c *Config) Settings() frame.Settings {
	model, _ := frame.ParseShadingModel(c.Shading.Model)
	return frame.Settings{
		Mesh:             c.Shading.Mesh,
		Wireframe:        c.Shading.Wireframe,
		AutoRotate:       c.Shading.AutoRotate,
		Model:            model,
		BaseColor:        c.Shading.BaseColor,
		DiffuseIntensity: c.Shading.Diffuse,
		AmbientColor:     c.Shading.AmbientColor,
		AmbientStrength:  c.Shading.AmbientStrength,
		LightPosition:    c.Shading.LightPosition,
		Specular:         c.Shading.Specular,
		ToonLevels:       c.Shading.ToonLevels,
		RimPower:         c.Shading.RimPower,
	}
}

// StoreSettings copies live render settings back into the shading section.
func (c *Config) StoreSettings(s frame.Settings) {
	c.Shading = ShadingConfig{
		Mesh:            s.Mesh,
		Wireframe:       s.Wireframe,
		AutoRotate:      s.AutoRotate,
		Model:           s.Model.String(),
		BaseColor:       s.BaseColor,
		Diffuse:         s.DiffuseIntensity,
		AmbientColor:    s.AmbientColor,
		AmbientStrength: s.AmbientStrength,
		LightPosition:   s.LightPosition,
		Specular:        s.Specular,
		ToonLevels:      s.ToonLevels,
		RimPower:        s.RimPower,
	}
}

// Sources returns the mesh list in registration order.
func (c *Config) Sources() []geometry.Source {
	sources := make([]geometry.Source, 0, len(c.Meshes))
	for _, m := range c.Meshes {
		src := geometry.Source{
			Name:   m.Name,
			Offset: vec3(m.Offset),
		}
		switch m.Kind {
		case MeshSphere:
			src.Kind = geometry.SourceSphere
			src.Sphere = geometry.SphereParams{Radius: m.Radius, Rings: m.Rings, Segments: m.Segments}
		default:
			src.Kind = geometry.SourceFile
			src.Path = m.Path
			src.Options = geometry.ImportOptions{GenerateNormals: m.GenerateNormals}
		}
		sources = append(sources, src)
	}
	return sources
}

// Renderer returns the renderer configuration.
func (c *Config) Renderer() renderer.Config {
	return renderer.Config{
		Camera:     c.CameraConfig(),
		Frame:      c.FrameConfig(),
		ClearColor: c.Scene.ClearColor,
		ShaderDir:  c.Scene.ShaderDir,
		AlbedoPath: c.Scene.Albedo,
	}
}

// MeshNames returns the configured mesh names in order.
func (c *Config) MeshNames() []string {
	names := make([]string, len(c.Meshes))
	for i, m := range c.Meshes {
		names[i] = m.Name
	}
	return names
}
