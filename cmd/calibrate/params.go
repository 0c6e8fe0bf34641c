package main

import (
	"github.com/pthm-cable/membrane/config"
)

// ParamSpec defines a single calibrated parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of calibrated parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the calibrated parameter set, starting from the
// values in cfg.
func NewParamVector(cfg *config.Config) *ParamVector {
	pv := &ParamVector{
		Specs: []ParamSpec{
			{
				Name: "diffusion_coeff", Path: "vesicle.diffusion_coeff", Min: 0, Max: 50,
				get: func(c *config.Config) float64 { return c.Vesicle.DiffusionCoeff },
				set: func(c *config.Config, v float64) { c.Vesicle.DiffusionCoeff = v },
			},
		},
	}
	for i := range pv.Specs {
		pv.Specs[i].Default = pv.Specs[i].get(cfg)
	}
	return pv
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg and refreshes its
// derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(cfg, v)
	}
	return cfg.Finalize()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
