package main

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/membrane/camera"
	"github.com/pthm-cable/membrane/config"
	"github.com/pthm-cable/membrane/game"
	"github.com/pthm-cable/membrane/renderer"
	"github.com/pthm-cable/membrane/ui"
)

const controlsLegend = "[Space] Pause  [N] Step  [<>] Speed  [Arrows] Pan  [+/-/Wheel] Zoom  [Home] Reset view  [Tab] Panel  [Click] Inspect"

const controlsWidth = 220

// runViewer opens a window and runs the simulation interactively until the
// window closes or maxTicks (0 = unlimited) is reached.
func runViewer(cfg *config.Config, opts game.Options, maxTicks int) (err error) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Membrane")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, g.Unload()) }()

	w, h := cfg.Derived.ScreenW32, cfg.Derived.ScreenH32
	snap := g.Snapshot()
	cam := camera.New(w, h, float32(snap.XMax), float32(snap.YMax), float32(cfg.Mesh.EdgeLength))

	meshRenderer := renderer.NewMeshRenderer()
	overlays := ui.NewOverlayRegistry()
	hud := ui.NewHUD()
	perfPanel := ui.NewPerfPanel(10, 125)
	controls := ui.NewControlsPanel(int32(w)-controlsWidth-10, 10, controlsWidth)
	inspector := ui.NewInspector(10, 215, controlsWidth)
	input := ui.NewInput(g, cam, overlays, controls, inspector, w, h)

	for !rl.WindowShouldClose() {
		input.Handle(snap)
		g.Update()
		snap = g.Snapshot()

		_, sh := input.ScreenSize()

		rl.BeginDrawing()
		rl.ClearBackground(meshRenderer.Palette.Background)

		meshRenderer.Draw(snap, cam, overlays.Layers(), inspector.Selected())

		stats := g.LastStats()
		hud.Draw(ui.HUDData{
			Title:            "Membrane",
			Tick:             snap.Tick,
			SimTime:          float64(snap.Tick) * cfg.Vesicle.DT,
			Vesicles:         len(snap.Vesicles),
			AcceptanceRate:   stats.AcceptanceRate,
			OccupiedFraction: snap.OccupiedFraction(),
			MSD:              g.MeanSquaredDisplacement(),
			DEff:             g.EffectiveDiffusion(),
			DTarget:          cfg.Vesicle.DiffusionCoeff,
			Speed:            g.StepsPerUpdate(),
			FPS:              rl.GetFPS(),
			Paused:           g.Paused(),
		})
		perfPanel.Draw(g.Perf().Stats())
		inspector.Draw(snap)
		controls.Draw(g, overlays)
		hud.DrawControls(int32(sh), controlsLegend)

		rl.EndDrawing()
		g.Perf().RecordFrame()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}
