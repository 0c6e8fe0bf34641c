package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/membrane/config"
)

func TestParamVectorNormalize(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)

	if pv.Dim() != 1 {
		t.Fatalf("Dim = %d, want 1", pv.Dim())
	}
	if got := pv.DefaultVector()[0]; got != cfg.Vesicle.DiffusionCoeff {
		t.Errorf("default D = %f, want %f", got, cfg.Vesicle.DiffusionCoeff)
	}

	n := pv.Normalize([]float64{5})
	if math.Abs(n[0]-0.1) > 1e-12 {
		t.Errorf("Normalize(5) = %f, want 0.1", n[0])
	}
	if raw := pv.Denormalize(n); math.Abs(raw[0]-5) > 1e-12 {
		t.Errorf("Denormalize(Normalize(5)) = %f", raw[0])
	}
}

func TestParamVectorClamp(t *testing.T) {
	pv := NewParamVector(config.Defaults())

	testCases := []struct {
		in, want float64
	}{
		{-3, 0},
		{12, 12},
		{80, 50},
	}

	for _, tc := range testCases {
		if got := pv.Clamp([]float64{tc.in})[0]; got != tc.want {
			t.Errorf("Clamp(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)

	if err := pv.ApplyToConfig(cfg, []float64{8}); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}
	if cfg.Vesicle.DiffusionCoeff != 8 {
		t.Errorf("D = %f, want 8", cfg.Vesicle.DiffusionCoeff)
	}
	if want := math.Sqrt(2 * 8 * cfg.Vesicle.DT); math.Abs(cfg.Derived.StepScale-want) > 1e-12 {
		t.Errorf("StepScale = %f, want %f", cfg.Derived.StepScale, want)
	}
	if got := pv.ExtractFromConfig(cfg)[0]; got != 8 {
		t.Errorf("ExtractFromConfig = %f, want 8", got)
	}
}

func TestEvaluateZeroDiffusion(t *testing.T) {
	cfg := config.Defaults()
	pv := NewParamVector(cfg)
	fe := NewFitnessEvaluator(pv, 40, []int64{1, 2}, cfg, 2.5)

	// With D = 0 nothing moves, so D_eff is exactly zero.
	fitness := fe.Evaluate([]float64{0})
	if fitness != 1 {
		t.Errorf("fitness = %f, want 1", fitness)
	}

	ev := fe.Last()
	if ev.MeanDEff != 0 || ev.Failed != 0 {
		t.Errorf("evaluation = %+v", ev)
	}
	if ev.AcceptanceRate != 1 {
		t.Errorf("acceptance = %f, want 1 for zero steps", ev.AcceptanceRate)
	}

	if cfg.Vesicle.DiffusionCoeff != 5 {
		t.Errorf("base config modified: D = %f", cfg.Vesicle.DiffusionCoeff)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	cfg := config.Defaults()
	fe := NewFitnessEvaluator(NewParamVector(cfg), 60, []int64{3, 4, 5}, cfg, 2)

	a := fe.Evaluate([]float64{4})
	b := fe.Evaluate([]float64{4})
	if a != b {
		t.Errorf("same parameters scored %f then %f", a, b)
	}
	if math.IsInf(a, 0) || math.IsNaN(a) || fe.Last().Failed != 0 {
		t.Errorf("evaluation = %+v", fe.Last())
	}
}

func TestEvaluateFailedPlacement(t *testing.T) {
	cfg := config.Defaults()
	cfg.Vesicle.Radius = 40
	cfg.Vesicle.Count = 2
	cfg.Vesicle.MaxPlacementAttempts = 20
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}

	fe := NewFitnessEvaluator(NewParamVector(cfg), 10, []int64{1, 2}, cfg, 1)
	if got := fe.Evaluate([]float64{1}); !math.IsInf(got, 1) {
		t.Errorf("fitness = %f, want +Inf", got)
	}
	if fe.Last().Failed != 2 {
		t.Errorf("failed seeds = %d, want 2", fe.Last().Failed)
	}
}

func TestRelativeSquaredError(t *testing.T) {
	testCases := []struct {
		got, want, err float64
	}{
		{2, 2, 0},
		{3, 2, 0.25},
		{1, 2, 0.25},
		{0.5, 0, 0.25},
	}
	for _, tc := range testCases {
		if e := relativeSquaredError(tc.got, tc.want); math.Abs(e-tc.err) > 1e-12 {
			t.Errorf("relativeSquaredError(%f, %f) = %f, want %f", tc.got, tc.want, e, tc.err)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Second, "0m42s"},
		{3*time.Minute + 5*time.Second, "3m05s"},
		{2*time.Hour + 7*time.Minute + 9*time.Second, "2h07m09s"},
	}
	for _, tc := range testCases {
		if got := formatDuration(tc.d); got != tc.want {
			t.Errorf("formatDuration(%s) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
