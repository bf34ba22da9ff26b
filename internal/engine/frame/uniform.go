package frame

import (
	"encoding/binary"
	"math"

	m "github.com/Faultbox/shading-sandbox/pkg/math"
)

// UniformBlockSize is the std140 size of UniformBlock in bytes.
const UniformBlockSize = 3*64 + 5*16

// UniformBlock mirrors the FrameUniforms block in the mesh shaders.
type UniformBlock struct {
	Model m.Mat4
	View  m.Mat4
	Proj  m.Mat4

	BaseColor      [4]float32 // rgb, w = diffuse intensity
	Ambient        [4]float32 // rgb, w = strength
	LightPosition  [4]float32
	CameraPosition [4]float32
	ShadingParams  [4]float32 // specular, toon levels, rim power, unused
}

// Bytes encodes the block in std140 layout, little endian.
func (u *UniformBlock) Bytes() []byte {
	buf := make([]byte, 0, UniformBlockSize)
	put := func(vs ...float32) {
		for _, v := range vs {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}

	put(u.Model[:]...)
	put(u.View[:]...)
	put(u.Proj[:]...)
	put(u.BaseColor[:]...)
	put(u.Ambient[:]...)
	put(u.LightPosition[:]...)
	put(u.CameraPosition[:]...)
	put(u.ShadingParams[:]...)
	return buf
}
