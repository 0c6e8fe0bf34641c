package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/membrane/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title            string
	Tick             int32
	SimTime          float64
	Vesicles         int
	AcceptanceRate   float64 // last flushed window
	OccupiedFraction float64
	MSD              float64
	DEff             float64
	DTarget          float64 // configured D, for comparison
	Speed            int
	FPS              int32
	Paused           bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	th := h.renderer.Theme

	rl.DrawText(data.Title, 10, 10, th.TitleFontSize, rl.White)

	rl.DrawText(
		fmt.Sprintf("Vesicles: %d | Occupied: %.1f%% | Accept: %.1f%%",
			data.Vesicles, data.OccupiedFraction*100, data.AcceptanceRate*100),
		10, 35, 16, th.LabelColor,
	)

	rl.DrawText(
		fmt.Sprintf("MSD: %.2f | D_eff: %.3f (D=%.3f)", data.MSD, data.DEff, data.DTarget),
		10, 55, 16, th.LabelColor,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | t=%.1f | Speed: %dx | FPS: %d", data.Tick, data.SimTime, data.Speed, data.FPS),
		10, 75, 16, th.LabelColor,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 95, 16, th.StatusColor)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, h.renderer.Theme.MutedColor)
}

// PerfPanel renders per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg tick: %s | %.0f ticks/s",
		stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, p.renderer.Theme.StatusColor)
	y += 16

	for ph := range telemetry.NumPhases {
		pct := stats.PhasePct[ph]
		color := p.renderer.Theme.LabelColor
		if pct > 60 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", telemetry.Phase(ph), stats.PhaseAvg[ph].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
