// Package config handles sandbox configuration loading and management.
package config

// Config holds all sandbox settings.
type Config struct {
	Window      WindowConfig     `yaml:"window"`
	Camera      CameraConfig     `yaml:"camera"`
	Scene       SceneConfig      `yaml:"scene"`
	Shading     ShadingConfig    `yaml:"shading"`
	Meshes      []MeshConfig     `yaml:"meshes"`
	Screenshots ScreenshotConfig `yaml:"screenshots"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`

	// Font and FontSize apply to the ImGui frontend only.
	Font     string  `yaml:"font"`
	FontSize float32 `yaml:"font_size"`
}

// CameraConfig holds the initial camera pose, its controls and the
// projection parameters.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Target      [3]float32 `yaml:"target"`
	MoveSpeed   float32    `yaml:"move_speed"`  // units per second
	Sensitivity float32    `yaml:"sensitivity"` // degrees per pixel
	Damping     float32    `yaml:"damping"`
	FOV         float32    `yaml:"fov"` // vertical, degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// SceneConfig holds model animation and render target settings.
type SceneConfig struct {
	RotationSpeed float32    `yaml:"rotation_speed"` // degrees per second
	RotationAxis  [3]float32 `yaml:"rotation_axis"`
	ClearColor    [4]float32 `yaml:"clear_color"`
	ShaderDir     string     `yaml:"shader_dir"` // overrides embedded shaders
	Albedo        string     `yaml:"albedo"`     // optional texture path
}

// ShadingConfig holds the initial render settings.
type ShadingConfig struct {
	Mesh            int        `yaml:"mesh"`
	Wireframe       bool       `yaml:"wireframe"`
	AutoRotate      bool       `yaml:"auto_rotate"`
	Model           string     `yaml:"model"`
	BaseColor       [3]float32 `yaml:"base_color"`
	Diffuse         float32    `yaml:"diffuse"`
	AmbientColor    [3]float32 `yaml:"ambient_color"`
	AmbientStrength float32    `yaml:"ambient_strength"`
	LightPosition   [3]float32 `yaml:"light_position"`
	Specular        float32    `yaml:"specular"`
	ToonLevels      int32      `yaml:"toon_levels"`
	RimPower        float32    `yaml:"rim_power"`
}

// Mesh kinds.
const (
	MeshSphere = "sphere"
	MeshFile   = "file"
)

// MeshConfig describes one mesh registered at startup.
type MeshConfig struct {
	Name            string     `yaml:"name"`
	Kind            string     `yaml:"kind"`
	Path            string     `yaml:"path,omitempty"`
	Radius          float32    `yaml:"radius,omitempty"`
	Rings           int        `yaml:"rings,omitempty"`
	Segments        int        `yaml:"segments,omitempty"`
	GenerateNormals bool       `yaml:"generate_normals,omitempty"`
	Offset          [3]float32 `yaml:"offset"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Shading",
			Width:  1280,
			Height: 720,
			VSync:  true,

			FontSize: 13,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0.15, 0.35},
			Target:      [3]float32{0, 0.1, 0},
			MoveSpeed:   0.5,
			Sensitivity: 0.35,
			Damping:     15,
			FOV:         45,
			Near:        0.1,
			Far:         1000,
		},
		Scene: SceneConfig{
			RotationSpeed: 15,
			RotationAxis:  [3]float32{0, 1, 0},
			ClearColor:    [4]float32{0.5, 0.5, 0.5, 1},
		},
		Shading: ShadingConfig{
			Mesh:            0,
			AutoRotate:      true,
			Model:           "toon",
			BaseColor:       [3]float32{0.8, 0.5, 0.0},
			Diffuse:         1.0,
			AmbientColor:    [3]float32{1, 1, 1},
			AmbientStrength: 0.1,
			LightPosition:   [3]float32{14, 7, 7},
			Specular:        0.0,
			ToonLevels:      3,
			RimPower:        4.0,
		},
		Meshes: []MeshConfig{
			{Name: "UV-Sphere", Kind: MeshSphere, Radius: 0.1, Rings: 32, Segments: 64, Offset: [3]float32{0, 0.1, 0}},
			{Name: "Bunny", Kind: MeshFile, Path: "models/bunny.obj"},
			{Name: "Teapot", Kind: MeshFile, Path: "models/teapot.glb"},
		},
		Screenshots: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "shading",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
