package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagMesh      = flag.Int("mesh", -1, "Initial mesh index")
	flagWireframe = flag.Bool("wireframe", false, "Start with the wireframe overlay on")
	flagShading   = flag.String("shading", "", "Initial shading model (flat, toon, gooch)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagMesh >= 0 {
		cfg.Shading.Mesh = *flagMesh
	}
	if *flagWireframe {
		cfg.Shading.Wireframe = true
	}
	if *flagShading != "" {
		cfg.Shading.Model = *flagShading
	}
}
