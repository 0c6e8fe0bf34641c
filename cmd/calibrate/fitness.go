package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/membrane/config"
	"github.com/pthm-cable/membrane/game"
)

// windowsPerRun is the number of stats windows each run is split into;
// D_eff is fitted over their MSD samples.
const windowsPerRun = 20

// FitnessEvaluator runs headless simulations and scores how far their
// effective diffusion is from the target.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int32
	seeds      []int64
	baseConfig *config.Config
	target     float64

	mu   sync.Mutex
	last Evaluation
}

// Evaluation is the outcome of one Evaluate call.
type Evaluation struct {
	Fitness        float64
	MeanDEff       float64
	StdDEff        float64
	AcceptanceRate float64
	Failed         int // seeds whose simulation could not be built
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int32, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		ticks:      ticks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// Last returns the most recent evaluation.
func (fe *FitnessEvaluator) Last() Evaluation {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// runResult holds the results from a single simulation run.
type runResult struct {
	dEff     float64
	accepted int
	rejected int
	err      error
}

// Evaluate computes fitness for raw parameter values (lower = better):
// the squared relative error between the seed-averaged D_eff and the target.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg, err := fe.configFor(x)
	if err != nil {
		fe.record(Evaluation{Fitness: math.Inf(1), Failed: len(fe.seeds)})
		return math.Inf(1)
	}

	// Run all seeds in parallel; each goroutine owns its Game.
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var ev Evaluation
	var dEffs []float64
	var accepted, rejected int
	for _, r := range results {
		if r.err != nil {
			ev.Failed++
			continue
		}
		dEffs = append(dEffs, r.dEff)
		accepted += r.accepted
		rejected += r.rejected
	}

	if len(dEffs) == 0 {
		ev.Fitness = math.Inf(1)
		fe.record(ev)
		return ev.Fitness
	}

	if len(dEffs) > 1 {
		ev.MeanDEff, ev.StdDEff = stat.MeanStdDev(dEffs, nil)
	} else {
		ev.MeanDEff = dEffs[0]
	}
	if total := accepted + rejected; total > 0 {
		ev.AcceptanceRate = float64(accepted) / float64(total)
	}
	ev.Fitness = relativeSquaredError(ev.MeanDEff, fe.target)

	fe.record(ev)
	return ev.Fitness
}

func (fe *FitnessEvaluator) record(ev Evaluation) {
	fe.mu.Lock()
	fe.last = ev
	fe.mu.Unlock()
}

// configFor returns a copy of the base config with x applied.
func (fe *FitnessEvaluator) configFor(x []float64) (*config.Config, error) {
	cfg := *fe.baseConfig
	cfg.Telemetry.StatsWindow = max(int(fe.ticks)/windowsPerRun, 1)
	if err := fe.params.ApplyToConfig(&cfg, x); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// runSimulation executes a single headless simulation run.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	g, err := game.New(cfg, game.Options{Seed: seed, StepsPerUpdate: 1})
	if err != nil {
		return runResult{err: fmt.Errorf("seed %d: %w", seed, err)}
	}
	defer g.Unload()

	var r runResult
	for g.Tick() < fe.ticks {
		res := g.Step()
		r.accepted += res.Accepted
		r.rejected += res.Rejected
	}
	r.dEff = g.EffectiveDiffusion()
	return r
}

// relativeSquaredError returns ((got - want) / want)^2, or the absolute
// squared error when want is zero.
func relativeSquaredError(got, want float64) float64 {
	d := got - want
	if want != 0 {
		d /= want
	}
	return d * d
}
