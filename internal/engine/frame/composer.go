package frame

import (
	"github.com/Faultbox/shading-sandbox/internal/engine/camera"
	"github.com/Faultbox/shading-sandbox/pkg/math"
)

// Config holds projection and animation constants.
type Config struct {
	FovYDegrees   float32
	Near          float32
	Far           float32
	RotationSpeed float32 // degrees per second
	RotationAxis  math.Vec3
}

// DefaultConfig returns the sandbox projection and spin defaults.
func DefaultConfig() Config {
	return Config{
		FovYDegrees:   45,
		Near:          0.1,
		Far:           1000,
		RotationSpeed: 15,
		RotationAxis:  math.Vec3{X: 0, Y: 1, Z: 0},
	}
}

// Spin accumulates the model rotation angle across frames.
type Spin struct {
	Degrees float32
}

// Rate returns the spin rate for s: cfg.RotationSpeed, or 0 when auto-rotate is off.
func (c Config) Rate(s *Settings) float32 {
	if !s.AutoRotate {
		return 0
	}
	return c.RotationSpeed
}

// Advance adds rate*dt to the angle and returns the new angle.
func (sp *Spin) Advance(dt, rate float32) float32 {
	sp.Degrees += rate * dt
	if sp.Degrees >= 360 || sp.Degrees <= -360 {
		sp.Degrees -= 360 * float32(int(sp.Degrees/360))
	}
	return sp.Degrees
}

// Input is everything Compose reads.
type Input struct {
	AngleDegrees float32
	Settings     Settings
	Camera       camera.State
	View         math.Mat4
	Aspect       float32
	Position     math.Vec3
	Scale        math.Vec3
}

// ModelMatrix returns translate(position) * rotate(axis, angle) * scale(scale).
func ModelMatrix(position math.Vec3, angleDegrees float32, axis, scale math.Vec3) math.Mat4 {
	t := math.Translate(position)
	r := math.RotateAxis(axis, math.Radians(angleDegrees))
	s := math.Scale(scale)
	return t.Mul(r).Mul(s)
}

// Compose builds the uniform block for one frame.
func Compose(cfg Config, in Input) UniformBlock {
	s := in.Settings
	cam := in.Camera.Position

	return UniformBlock{
		Model: ModelMatrix(in.Position, in.AngleDegrees, cfg.RotationAxis, in.Scale),
		View:  in.View,
		Proj:  math.Perspective(math.Radians(cfg.FovYDegrees), in.Aspect, cfg.Near, cfg.Far),

		BaseColor:      [4]float32{s.BaseColor[0], s.BaseColor[1], s.BaseColor[2], s.DiffuseIntensity},
		Ambient:        [4]float32{s.AmbientColor[0], s.AmbientColor[1], s.AmbientColor[2], s.AmbientStrength},
		LightPosition:  [4]float32{s.LightPosition[0], s.LightPosition[1], s.LightPosition[2], 1},
		CameraPosition: [4]float32{cam.X, cam.Y, cam.Z, 1},
		ShadingParams:  [4]float32{s.Specular, float32(s.ToonLevels), s.RimPower, 0},
	}
}
