// Package frame turns render settings and camera state into the per-frame
// uniform block. Everything here is pure except Spin, which the caller owns.
package frame

import (
	"fmt"
	"strings"
)

// ShadingModel selects the fragment lighting model.
type ShadingModel int32

const (
	ShadingFlat ShadingModel = iota
	ShadingToon
	ShadingGooch
)

// ShadingModels lists every model in cycle order.
var ShadingModels = []ShadingModel{ShadingFlat, ShadingToon, ShadingGooch}

func (m ShadingModel) String() string {
	switch m {
	case ShadingFlat:
		return "flat"
	case ShadingToon:
		return "toon"
	case ShadingGooch:
		return "gooch"
	default:
		return fmt.Sprintf("shading(%d)", int32(m))
	}
}

// Next returns the model after m, wrapping around.
func (m ShadingModel) Next() ShadingModel {
	return ShadingModel((int(m) + 1) % len(ShadingModels))
}

// ParseShadingModel maps a name to a model.
func ParseShadingModel(s string) (ShadingModel, error) {
	for _, m := range ShadingModels {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ShadingToon, fmt.Errorf("unknown shading model %q", s)
}

// Toon level range exposed to the UI.
const (
	MinToonLevels = 1
	MaxToonLevels = 10
)

// Settings is the user-tunable render state. The overlay writes it; the
// renderer only reads it.
type Settings struct {
	Mesh       int
	Wireframe  bool
	AutoRotate bool
	Model      ShadingModel

	BaseColor        [3]float32
	DiffuseIntensity float32
	AmbientColor     [3]float32
	AmbientStrength  float32
	LightPosition    [3]float32
	Specular         float32
	ToonLevels       int32
	RimPower         float32
}

// DefaultSettings returns the initial settings.
func DefaultSettings() Settings {
	return Settings{
		Mesh:             0,
		Wireframe:        false,
		AutoRotate:       true,
		Model:            ShadingToon,
		BaseColor:        [3]float32{0.8, 0.5, 0.0},
		DiffuseIntensity: 1.0,
		AmbientColor:     [3]float32{1, 1, 1},
		AmbientStrength:  0.1,
		LightPosition:    [3]float32{14, 7, 7},
		Specular:         0.0,
		ToonLevels:       3,
		RimPower:         4.0,
	}
}
