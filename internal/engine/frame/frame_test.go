package frame

import (
	"encoding/binary"
	gomath "math"
	"testing"

	"github.com/Faultbox/shading-sandbox/internal/engine/camera"
	"github.com/Faultbox/shading-sandbox/pkg/math"
)

func identityInput() Input {
	return Input{
		AngleDegrees: 0,
		Settings:     DefaultSettings(),
		View:         math.Identity(),
		Aspect:       1,
		Position:     math.Vec3{},
		Scale:        math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

func TestIdentityModel(t *testing.T) {
	u := Compose(DefaultConfig(), identityInput())
	if u.Model != math.Identity() {
		t.Errorf("Model = %v, want identity", u.Model)
	}
}

func TestModelMatrixOrder(t *testing.T) {
	// Scale first, then rotate 90 degrees about Y, then translate.
	m := ModelMatrix(math.Vec3{X: 0, Y: 1, Z: 0}, 90, math.Vec3{X: 0, Y: 1, Z: 0}, math.Vec3{X: 2, Y: 2, Z: 2})
	p := m.TransformPoint(math.Vec3{X: 1, Y: 0, Z: 0})

	want := math.Vec3{X: 0, Y: 1, Z: -2}
	if gomath.Abs(float64(p.X-want.X)) > 1e-5 || gomath.Abs(float64(p.Y-want.Y)) > 1e-5 || gomath.Abs(float64(p.Z-want.Z)) > 1e-5 {
		t.Errorf("transformed point = %+v, want %+v", p, want)
	}
}

func TestSettingsCopiedVerbatim(t *testing.T) {
	s := Settings{
		BaseColor:        [3]float32{0.1, 0.2, 0.3},
		DiffuseIntensity: 0.4,
		AmbientColor:     [3]float32{0.5, 0.6, 0.7},
		AmbientStrength:  0.8,
		LightPosition:    [3]float32{-1, 2, -3},
		Specular:         0.9,
		ToonLevels:       7,
		RimPower:         2.5,
	}
	in := identityInput()
	in.Settings = s
	in.Camera = camera.State{Position: math.Vec3{X: 4, Y: 5, Z: 6}}

	u := Compose(DefaultConfig(), in)

	tests := []struct {
		name string
		got  [4]float32
		want [4]float32
	}{
		{"base color", u.BaseColor, [4]float32{0.1, 0.2, 0.3, 0.4}},
		{"ambient", u.Ambient, [4]float32{0.5, 0.6, 0.7, 0.8}},
		{"light", u.LightPosition, [4]float32{-1, 2, -3, 1}},
		{"camera", u.CameraPosition, [4]float32{4, 5, 6, 1}},
		{"shading params", u.ShadingParams, [4]float32{0.9, 7, 2.5, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestComposeIsPure(t *testing.T) {
	in := identityInput()
	in.AngleDegrees = 33
	in.Aspect = 16.0 / 9.0
	a := Compose(DefaultConfig(), in)
	b := Compose(DefaultConfig(), in)
	if a != b {
		t.Error("Compose returned different blocks for equal input")
	}
}

func TestProjectionDependsOnAspect(t *testing.T) {
	cfg := DefaultConfig()
	in := identityInput()

	in.Aspect = 1
	square := Compose(cfg, in).Proj
	in.Aspect = 2
	wide := Compose(cfg, in).Proj

	if wide[0] >= square[0] {
		t.Errorf("x scale should shrink with wider aspect: %f vs %f", wide[0], square[0])
	}
	if wide[5] != square[5] {
		t.Errorf("y scale should not depend on aspect: %f vs %f", wide[5], square[5])
	}
	want := math.Perspective(math.Radians(45), 2, 0.1, 1000)
	if wide != want {
		t.Errorf("Proj = %v, want %v", wide, want)
	}
}

func TestSpinFreezesWhenAutoRotateOff(t *testing.T) {
	cfg := DefaultConfig()
	s := DefaultSettings()
	var spin Spin

	for i := 0; i < 60; i++ {
		spin.Advance(1.0/60, cfg.Rate(&s))
	}
	before := spin.Degrees
	if gomath.Abs(float64(before-15)) > 1e-3 {
		t.Fatalf("after 1s angle = %f, want 15", before)
	}

	s.AutoRotate = false
	if r := cfg.Rate(&s); r != 0 {
		t.Fatalf("rate with auto-rotate off = %f, want 0", r)
	}
	for i := 0; i < 120; i++ {
		spin.Advance(1.0/60, cfg.Rate(&s))
	}
	if spin.Degrees != before {
		t.Errorf("angle changed while frozen: %f -> %f", before, spin.Degrees)
	}
}

func TestSpinWraps(t *testing.T) {
	sp := Spin{Degrees: 350}
	got := sp.Advance(1, 15)
	if gomath.Abs(float64(got-5)) > 1e-4 {
		t.Errorf("Advance wrapped to %f, want 5", got)
	}
}

func TestUniformBlockBytes(t *testing.T) {
	in := identityInput()
	in.Settings.ToonLevels = 5
	u := Compose(DefaultConfig(), in)
	b := u.Bytes()

	if len(b) != UniformBlockSize || UniformBlockSize != 272 {
		t.Fatalf("encoded %d bytes, size const %d, want 272", len(b), UniformBlockSize)
	}

	read := func(i int) float32 {
		return gomath.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	if read(0) != 1 || read(5) != 1 || read(1) != 0 {
		t.Errorf("model not at offset 0")
	}
	// ShadingParams occupies the last vec4.
	if got := read(68 - 4 + 1); got != 5 {
		t.Errorf("toon levels at tail = %f, want 5", got)
	}
	if got := read(48); got != u.BaseColor[0] {
		t.Errorf("base color at offset 192 = %f, want %f", got, u.BaseColor[0])
	}
}

func TestParseShadingModel(t *testing.T) {
	tests := []struct {
		in      string
		want    ShadingModel
		wantErr bool
	}{
		{"flat", ShadingFlat, false},
		{"Toon", ShadingToon, false},
		{"GOOCH", ShadingGooch, false},
		{"phong", ShadingToon, true},
	}
	for _, tt := range tests {
		got, err := ParseShadingModel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseShadingModel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseShadingModel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestShadingModelNext(t *testing.T) {
	if ShadingGooch.Next() != ShadingFlat {
		t.Errorf("gooch.Next() = %v", ShadingGooch.Next())
	}
	if ShadingFlat.Next() != ShadingToon {
		t.Errorf("flat.Next() = %v", ShadingFlat.Next())
	}
}
