// Package main calibrates the free-space diffusion coefficient so that
// vesicles crowded on the membrane mesh reach a target effective diffusion.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/membrane/config"
	"github.com/pthm-cable/membrane/telemetry"
)

// logRow is one line of calibrate_log.csv.
type logRow struct {
	Eval           int     `csv:"eval"`
	Fitness        float64 `csv:"fitness"`
	DiffusionCoeff float64 `csv:"diffusion_coeff"`
	MeanDEff       float64 `csv:"mean_d_eff"`
	StdDEff        float64 `csv:"std_d_eff"`
	AcceptanceRate float64 `csv:"acceptance_rate"`
	Failed         int     `csv:"failed_seeds"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// newMethod returns the optimizer named by name.
func newMethod(name string, dim int) (optimize.Method, error) {
	switch name {
	case "nelder-mead":
		return &optimize.NelderMead{}, nil
	case "cmaes":
		return &optimize.CmaEsChol{
			InitStepSize: 0.3,
			Population:   4 + int(3*math.Log(float64(dim))),
		}, nil
	}
	return nil, fmt.Errorf("unknown method %q (want nelder-mead or cmaes)", name)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	target := flag.Float64("target", 0, "Target effective diffusion coefficient D_eff (required)")
	ticks := flag.Int("ticks", 0, "Ticks per simulation run (0 = use config)")
	seeds := flag.Int("seeds", 0, "Number of seeds per evaluation (0 = use config)")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	methodName := flag.String("method", "nelder-mead", "Optimizer: nelder-mead or cmaes")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *target <= 0 {
		log.Fatal("--target must be positive")
	}

	// Simulation logs would drown the progress lines.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	runTicks := baseCfg.Calibrate.Ticks
	if *ticks > 0 {
		runTicks = *ticks
	}
	numSeeds := baseCfg.Calibrate.Seeds
	if *seeds > 0 {
		numSeeds = *seeds
	}

	params := NewParamVector(baseCfg)

	evalSeeds := make([]int64, numSeeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, int32(runTicks), evalSeeds, baseCfg, *target)

	method, err := newMethod(*methodName, params.Dim())
	if err != nil {
		log.Fatal(err)
	}

	calLog, err := telemetry.OpenCSVLog[logRow](*outputDir, "calibrate_log.csv")
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer calLog.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			ev := evaluator.Last()
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			if err := calLog.Write([]logRow{{
				Eval:           evalCount,
				Fitness:        fitness,
				DiffusionCoeff: clamped[0],
				MeanDEff:       ev.MeanDEff,
				StdDEff:        ev.StdDEff,
				AcceptanceRate: ev.AcceptanceRate,
				Failed:         ev.Failed,
			}}); err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(max(*maxEvals-evalCount, 0)) * avgPerEval

			fmt.Printf("Eval %d/%d: D=%.4f D_eff=%.4f±%.4f accept=%.2f fitness=%.5f (best=%.5f) | elapsed: %s, ETA: %s\n",
				evalCount, *maxEvals, clamped[0], ev.MeanDEff, ev.StdDEff, ev.AcceptanceRate,
				fitness, bestFitness, formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // seeds already run in parallel inside Evaluate
	}

	fmt.Printf("Calibrating %d parameter(s) with %s: target D_eff=%.4f, max_evals=%d\n",
		params.Dim(), *methodName, *target, *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", numSeeds, runTicks)

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.6f\n", bestFitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	bestCfg := *baseCfg
	if err := params.ApplyToConfig(&bestCfg, bestParams); err != nil {
		log.Fatalf("best parameters are invalid: %v", err)
	}

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
