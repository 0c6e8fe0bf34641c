package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/membrane/config"
	"github.com/pthm-cable/membrane/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	verify := flag.Bool("verify", false, "Check occupancy bookkeeping after every tick")
	vesicles := flag.Int("vesicles", 0, "Number of vesicles to seed (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *statsWindow > 0 || *vesicles > 0 {
		if *statsWindow > 0 {
			cfg.Telemetry.StatsWindow = *statsWindow
		}
		if *vesicles > 0 {
			cfg.Vesicle.Count = *vesicles
		}
		if err := cfg.Finalize(); err != nil {
			slog.Error("invalid flag override", "error", err)
			os.Exit(1)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		Verify:         *verify,
	}

	var err error
	if *headless {
		err = runHeadless(cfg, opts, *maxTicks)
	} else {
		err = runViewer(cfg, opts, *maxTicks)
	}
	if err != nil {
		slog.Error("simulation failed", "seed", rngSeed, "error", err)
		os.Exit(1)
	}
}

// runHeadless steps the simulation without raylib until maxTicks (0 = forever).
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) error {
	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"stats_window", cfg.Derived.TicksPerWindow,
		"max_ticks", maxTicks,
		"steps_per_update", g.StepsPerUpdate(),
	)

	for maxTicks <= 0 || int(g.Tick()) < maxTicks {
		g.UpdateHeadless()
	}

	slog.Info("max ticks reached",
		"tick", g.Tick(),
		"msd", g.MeanSquaredDisplacement(),
		"d_eff", g.EffectiveDiffusion(),
		"violations", g.Violations(),
	)
	return g.Unload()
}
