package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/membrane/camera"
	"github.com/pthm-cable/membrane/systems"
)

// Simulation is the part of the simulation the controls drive.
type Simulation interface {
	Paused() bool
	SetPaused(bool)
	StepsPerUpdate() int
	SetStepsPerUpdate(int)
	Step() systems.StepResult
}

// Input routes keyboard and mouse events to the simulation, the camera and
// the panels.
type Input struct {
	sim       Simulation
	cam       *camera.Camera
	overlays  *OverlayRegistry
	controls  *ControlsPanel
	inspector *Inspector

	screenW, screenH float32
}

// NewInput creates an input handler for a screen of the given size.
func NewInput(sim Simulation, cam *camera.Camera, overlays *OverlayRegistry, controls *ControlsPanel, inspector *Inspector, screenW, screenH float32) *Input {
	return &Input{
		sim:       sim,
		cam:       cam,
		overlays:  overlays,
		controls:  controls,
		inspector: inspector,
		screenW:   screenW,
		screenH:   screenH,
	}
}

// Handle processes one frame of input. snap is used for vesicle picking.
func (in *Input) Handle(snap systems.Snapshot) {
	in.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		in.sim.SetPaused(!in.sim.Paused())
	}
	if rl.IsKeyPressed(rl.KeyN) && in.sim.Paused() {
		in.sim.Step()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		in.sim.SetStepsPerUpdate(in.sim.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		in.sim.SetStepsPerUpdate(in.sim.StepsPerUpdate() + 1)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		in.controls.Toggle()
	}
	in.overlays.HandleKeys()

	in.handleCamera()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		if !in.controls.Contains(mouse.X, mouse.Y) {
			in.inspector.Select(mouse.X, mouse.Y, in.cam, snap)
		}
	}
}

// ScreenSize returns the current screen dimensions.
func (in *Input) ScreenSize() (w, h float32) {
	return in.screenW, in.screenH
}

func (in *Input) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == in.screenW && h == in.screenH {
		return
	}
	in.screenW = w
	in.screenH = h
	in.cam.Resize(w, h)
	in.controls.SetPosition(int32(w)-in.controls.width-10, 10)
}

func (in *Input) handleCamera() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / in.cam.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		in.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		in.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		in.cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		in.cam.Pan(0, -panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		in.cam.ZoomBy(1 + wheel*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		in.cam.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		in.cam.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		in.cam.Reset()
	}
}
