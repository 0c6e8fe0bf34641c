// Package game wires the mesh, the vesicles and telemetry into a tickable
// simulation. It has no rendering dependencies; frontends draw Snapshots.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/pthm-cable/membrane/config"
	"github.com/pthm-cable/membrane/mesh"
	"github.com/pthm-cable/membrane/systems"
	"github.com/pthm-cable/membrane/telemetry"
)

// RNG stream ids, so placement and diffusion draw independent sequences
// from one seed.
const (
	streamPlacement uint64 = iota + 1
	streamDiffusion
)

// Game holds the complete simulation state.
type Game struct {
	cfg *config.Config

	mesh      *mesh.Mesh
	tracker   *mesh.Tracker
	vesicles  *systems.VesicleSet
	diffusion *systems.Diffusion

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	lastStats     telemetry.WindowStats

	// State
	tick           int32
	paused         bool
	stepsPerUpdate int
	verify         bool
	violations     int
	last           systems.StepResult
}

// New builds the mesh, seeds the vesicles and prepares telemetry. It returns
// no Game when the mesh cannot be built or a vesicle cannot be placed.
func New(cfg *config.Config, opts Options) (*Game, error) {
	m, err := mesh.Build(cfg.Mesh.Rows, cfg.Mesh.Cols, cfg.Mesh.EdgeLength)
	if err != nil {
		return nil, fmt.Errorf("building mesh: %w", err)
	}
	tr := mesh.NewTracker(m)

	seed := uint64(opts.Seed)
	set := systems.NewVesicleSet()
	placer := systems.NewPlacer(rand.NewPCG(seed, streamPlacement))
	params := systems.PlacementParams{
		Radius:      cfg.Vesicle.Radius,
		XMax:        m.XMax(),
		YMax:        m.YMax(),
		Samples:     cfg.Vesicle.Samples,
		Diffusion:   cfg.Vesicle.DiffusionCoeff,
		DT:          cfg.Vesicle.DT,
		MaxAttempts: cfg.Vesicle.MaxPlacementAttempts,
	}
	if err := systems.Seed(tr, set, placer, params, cfg.Vesicle.Count); err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	g := &Game{
		cfg:            cfg,
		mesh:           m,
		tracker:        tr,
		vesicles:       set,
		diffusion:      systems.NewDiffusion(tr, systems.NewBrownianDisplacer(rand.NewPCG(seed, streamDiffusion))),
		collector:      telemetry.NewCollector(int32(cfg.Derived.TicksPerWindow), cfg.Vesicle.DT),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager:  om,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		stepsPerUpdate: steps,
		verify:         opts.Verify,
	}

	slog.Info("simulation ready",
		"triangles", m.Len(),
		"x_max", m.XMax(),
		"y_max", m.YMax(),
		"vesicles", set.Len(),
		"occupied", m.OccupiedCount(),
		"step_scale", cfg.Derived.StepScale,
	)

	return g, nil
}

// Step runs a single tick: every vesicle proposes one Brownian move.
func (g *Game) Step() systems.StepResult {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseDiffuse)
	res := g.diffusion.Step(g.vesicles)
	g.tick++

	if g.verify {
		g.perfCollector.StartPhase(telemetry.PhaseVerify)
		if err := systems.CheckOccupancy(g.mesh, g.vesicles); err != nil {
			g.violations++
			slog.Error("occupancy check failed", "tick", g.tick, "error", err)
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordStep(res.Accepted, res.Rejected, res.Proposed)
	g.flushTelemetry()

	g.perfCollector.EndTick()

	g.last = res
	return res
}

// UpdateHeadless runs StepsPerUpdate ticks.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.Step()
	}
}

// Update runs StepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	if g.paused {
		return
	}
	g.UpdateHeadless()
}

// Snapshot returns a deep copy of the current mesh and vesicle state.
func (g *Game) Snapshot() systems.Snapshot {
	return systems.TakeSnapshot(g.tick, g.mesh, g.vesicles)
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() error {
	return g.outputManager.Close()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// Paused reports whether Update is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes Update.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// StepsPerUpdate returns the ticks run per Update call.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets the ticks per Update call, clamped to [1, 50].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = min(max(n, 1), maxStepsPerUpdate)
}

// LastStep returns the result of the most recent tick.
func (g *Game) LastStep() systems.StepResult {
	return g.last
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Perf returns the rolling performance statistics.
func (g *Game) Perf() *telemetry.PerfCollector {
	return g.perfCollector
}

// EffectiveDiffusion returns D_eff over the windows flushed so far.
func (g *Game) EffectiveDiffusion() float64 {
	return g.collector.EffectiveDiffusion()
}

// MeanSquaredDisplacement returns the current MSD from seeding positions.
func (g *Game) MeanSquaredDisplacement() float64 {
	return g.vesicles.MeanSquaredDisplacement()
}

// Violations returns the number of ticks that failed the occupancy check.
func (g *Game) Violations() int {
	return g.violations
}

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config {
	return g.cfg
}
