package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		err = multierr.Append(err, fmt.Errorf("camera: fov %.1f out of range (0, 180)", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera: need 0 < near < far, got near=%g far=%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.MoveSpeed < 0 || c.Camera.Sensitivity < 0 || c.Camera.Damping < 0 {
		err = multierr.Append(err, fmt.Errorf("camera: move_speed, sensitivity and damping must not be negative"))
	}

	if c.Scene.RotationAxis == [3]float32{} {
		err = multierr.Append(err, fmt.Errorf("scene: rotation_axis must not be zero"))
	}

	if _, perr := frame.ParseShadingModel(c.Shading.Model); perr != nil {
		err = multierr.Append(err, fmt.Errorf("shading: %w", perr))
	}
	if c.Shading.ToonLevels < frame.MinToonLevels || c.Shading.ToonLevels > frame.MaxToonLevels {
		err = multierr.Append(err, fmt.Errorf("shading: toon_levels %d out of range [%d, %d]",
			c.Shading.ToonLevels, frame.MinToonLevels, frame.MaxToonLevels))
	}
	if c.Shading.Mesh < 0 || c.Shading.Mesh >= len(c.Meshes) {
		err = multierr.Append(err, fmt.Errorf("shading: mesh %d out of range, %d meshes configured", c.Shading.Mesh, len(c.Meshes)))
	}

	for i, m := range c.Meshes {
		err = multierr.Append(err, m.validate(i))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		err = multierr.Append(err, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}

	return err
}

func (m MeshConfig) validate(i int) error {
	var err error
	if m.Name == "" {
		err = multierr.Append(err, fmt.Errorf("meshes[%d]: name is required", i))
	}
	switch m.Kind {
	case MeshSphere:
		if m.Radius <= 0 {
			err = multierr.Append(err, fmt.Errorf("meshes[%d]: sphere radius must be positive", i))
		}
	case MeshFile:
		if m.Path == "" {
			err = multierr.Append(err, fmt.Errorf("meshes[%d]: path is required", i))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("meshes[%d]: unknown kind %q", i, m.Kind))
	}
	return err
}
