package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/shading-sandbox/internal/engine/frame"
	"github.com/Faultbox/shading-sandbox/internal/engine/gpu"
	"github.com/Faultbox/shading-sandbox/internal/engine/input"
)

const panelWidth = 320

// Panel is the ImGui overlay. It shows the scene texture behind every
// window and a settings panel that edits the frame settings in place.
type Panel struct {
	meshes  []string
	scene   uint32
	fps     int
	capture bool

	screenshot bool
	open       bool
	save       bool
	quit       bool
}

// NewPanel creates a panel listing the given mesh names.
func NewPanel(meshes []string) *Panel {
	return &Panel{meshes: meshes}
}

// SetSceneTexture sets the GL texture drawn as the background.
func (p *Panel) SetSceneTexture(id uint32) { p.scene = id }

// SetFPS sets the displayed frame rate.
func (p *Panel) SetFPS(fps int) { p.fps = fps }

// SetCaptured updates the mouse capture hint.
func (p *Panel) SetCaptured(captured bool) { p.capture = captured }

// TakeScreenshot reports and clears a pending screenshot request.
func (p *Panel) TakeScreenshot() bool {
	s := p.screenshot
	p.screenshot = false
	return s
}

// HandleEvent maps F12 to a screenshot and Esc to quit.
func (p *Panel) HandleEvent(e input.Event) {
	if e.Type != input.EventKeyDown {
		return
	}
	switch e.Key {
	case input.KeyF12:
		p.screenshot = true
	case input.KeyEscape:
		p.quit = true
	}
}

// AddMesh appends a name to the mesh list.
func (p *Panel) AddMesh(name string) {
	p.meshes = append(p.meshes, name)
}

// TakeOpenRequest reports and clears a pending "Open model" click.
func (p *Panel) TakeOpenRequest() bool {
	o := p.open
	p.open = false
	return o
}

// TakeSaveRequest reports and clears a pending "Save settings" click.
func (p *Panel) TakeSaveRequest() bool {
	sv := p.save
	p.save = false
	return sv
}

// QuitRequested reports whether the quit button was pressed.
func (p *Panel) QuitRequested() bool { return p.quit }

// BeginFrame draws the background image and the settings window.
func (p *Panel) BeginFrame(s *frame.Settings) {
	p.drawScene()
	p.drawSettings(s)
}

// Render is a no-op: the ImGui backend renders its draw lists after the
// frame callback returns.
func (p *Panel) Render(gpu.CommandBuffer) {}

// EndFrame is a no-op.
func (p *Panel) EndFrame() {}

func (p *Panel) drawScene() {
	if p.scene == 0 {
		return
	}
	size := imgui.CurrentIO().DisplaySize()

	imgui.SetNextWindowPos(imgui.NewVec2(0, 0))
	imgui.SetNextWindowSize(size)
	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoInputs |
		imgui.WindowFlagsNoBringToFrontOnFocus | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoSavedSettings
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(p.scene))
		imgui.ImageWithBgV(
			*texRef,
			size,
			imgui.NewVec2(0, 1), // GL textures are bottom-up
			imgui.NewVec2(1, 0),
			imgui.NewVec4(0, 0, 0, 0),
			imgui.NewVec4(1, 1, 1, 1),
		)
	}
	imgui.End()
	imgui.PopStyleVar()
}

func (p *Panel) drawSettings(s *frame.Settings) {
	imgui.SetNextWindowPos(imgui.NewVec2(10, 10))
	imgui.SetNextWindowSize(imgui.NewVec2(panelWidth, 0))
	flags := imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse | imgui.WindowFlagsAlwaysAutoResize
	if imgui.BeginV("Shading", nil, flags) {
		p.drawMeshes(s)
		imgui.Separator()
		p.drawModels(s)
		imgui.Separator()
		drawMaterial(s)
		imgui.Separator()
		p.drawStatus()
	}
	imgui.End()
}

func (p *Panel) drawMeshes(s *frame.Settings) {
	imgui.Text("Mesh")
	for i, name := range p.meshes {
		label := fmt.Sprintf("%d  %s##mesh%d", i+1, name, i)
		if imgui.SelectableBoolV(label, s.Mesh == i, 0, imgui.NewVec2(0, 0)) {
			s.Mesh = i
		}
	}
	if imgui.Button("Open model...") {
		p.open = true
	}
	imgui.Spacing()
	imgui.Checkbox("Wireframe", &s.Wireframe)
	imgui.SameLine()
	imgui.Checkbox("Auto-rotate", &s.AutoRotate)
}

func (p *Panel) drawModels(s *frame.Settings) {
	imgui.Text("Model")
	for _, m := range frame.ShadingModels {
		if imgui.SelectableBoolV(m.String(), s.Model == m, 0, imgui.NewVec2(0, 0)) {
			s.Model = m
		}
	}
}

func drawMaterial(s *frame.Settings) {
	colorSliders("Base color", &s.BaseColor)
	imgui.SliderFloatV("Diffuse", &s.DiffuseIntensity, 0, 10, "%.2f", imgui.SliderFlagsNone)
	colorSliders("Ambient color", &s.AmbientColor)
	imgui.SliderFloatV("Ambient", &s.AmbientStrength, 0, 1, "%.2f", imgui.SliderFlagsNone)

	imgui.Text("Light position")
	axes := [3]string{"X##light", "Y##light", "Z##light"}
	for i := range s.LightPosition {
		imgui.SliderFloatV(axes[i], &s.LightPosition[i], -20, 20, "%.1f", imgui.SliderFlagsNone)
	}

	imgui.SliderFloatV("Specular", &s.Specular, 0, 1, "%.2f", imgui.SliderFlagsNone)
	imgui.SliderIntV("Toon levels", &s.ToonLevels, frame.MinToonLevels, frame.MaxToonLevels, "%d", imgui.SliderFlagsNone)
	imgui.SliderFloatV("Rim power", &s.RimPower, 0, 10, "%.1f", imgui.SliderFlagsNone)
}

func colorSliders(label string, c *[3]float32) {
	imgui.Text(label)
	channels := [3]string{"R", "G", "B"}
	for i := range c {
		imgui.SliderFloatV(channels[i]+"##"+label, &c[i], 0, 1, "%.2f", imgui.SliderFlagsNone)
	}
}

func (p *Panel) drawStatus() {
	imgui.Text(fmt.Sprintf("%d fps", p.fps))
	if p.capture {
		imgui.TextDisabled("Mouse captured (Left Ctrl to release)")
	} else {
		imgui.TextDisabled("Left Ctrl to capture, right drag to look")
	}
	if imgui.Button("Screenshot") {
		p.screenshot = true
	}
	imgui.SameLine()
	if imgui.Button("Save settings") {
		p.save = true
	}
	imgui.SameLine()
	if imgui.Button("Quit") {
		p.quit = true
	}
}
