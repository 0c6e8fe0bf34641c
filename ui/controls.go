package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxSpeed is the upper end of the speed slider.
const maxSpeed = 50

// ControlsPanel renders the right-side panel with run controls and overlay
// toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	drawnHeight int32 // height at the last Draw
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies on the panel, so clicks there
// are not treated as world picks.
func (c *ControlsPanel) Contains(px, py float32) bool {
	if !c.visible {
		return false
	}
	return px >= float32(c.x) && px < float32(c.x+c.width) &&
		py >= float32(c.y) && py < float32(c.y+c.drawnHeight)
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	lines := int32(5) // title, run header, buttons, speed label, slider
	for _, cat := range overlays.Categories() {
		lines += int32(len(overlays.ByCategory(cat))) + 1
	}
	return lines*(r.Theme.LineHeight+8) + r.Theme.Padding*2
}

// Draw renders the panel and applies any control changes to sim.
func (c *ControlsPanel) Draw(sim Simulation, overlays *OverlayRegistry) {
	if !c.visible {
		return
	}

	r := c.renderer
	pad := r.Theme.Padding
	x := float32(c.x + pad)
	inner := float32(c.width - pad*2)

	c.drawnHeight = c.height(overlays)
	r.DrawPanel(c.x, c.y, c.width, c.drawnHeight)

	y := c.y + pad
	rl.DrawText("Controls", c.x+pad, y, 16, rl.White)
	y += r.Theme.LineHeight + 8

	// Run controls
	y = r.DrawSectionHeader(c.x+pad, y, "Run")
	half := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: 24}, toggleText(sim.Paused(), "Resume", "Pause")) {
		sim.SetPaused(!sim.Paused())
	}
	if sim.Paused() {
		if gui.Button(rl.Rectangle{X: x + half + 10, Y: float32(y), Width: half, Height: 24}, "Step") {
			sim.Step()
		}
	}
	y += 32

	speed := sim.StepsPerUpdate()
	rl.DrawText(fmt.Sprintf("Steps per frame: %d", speed), c.x+pad, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: float32(y), Width: inner - 40, Height: 16},
		"1", fmt.Sprint(maxSpeed),
		float32(speed), 1, maxSpeed,
	)
	if n := int(newSpeed + 0.5); n != speed {
		sim.SetStepsPerUpdate(n)
	}
	y += r.Theme.LineHeight + 12

	// Overlay toggles
	for _, category := range overlays.Categories() {
		y = r.DrawSectionHeader(c.x+pad, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(x, float32(y), inner, desc, overlays)
			y += r.Theme.LineHeight + 8
		}
	}
}

func (c *ControlsPanel) drawToggle(x, y, width float32, desc OverlayDescriptor, overlays *OverlayRegistry) {
	r := c.renderer
	enabled := overlays.IsEnabled(desc.ID)

	statusColor := r.Theme.ToggleOff
	if enabled {
		statusColor = r.Theme.ToggleOn
	}
	rl.DrawRectangle(int32(x), int32(y)+6, 8, 8, statusColor)

	label := desc.Name
	if desc.KeyLabel != "" {
		label = fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
	}
	if gui.Button(rl.Rectangle{X: x + 14, Y: y, Width: width - 14, Height: 20}, label) {
		overlays.Toggle(desc.ID)
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
