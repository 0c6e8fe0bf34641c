// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig wraps every validation failure reported by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Mesh      MeshConfig      `yaml:"mesh"`
	Vesicle   VesicleConfig   `yaml:"vesicle"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Calibrate CalibrateConfig `yaml:"calibrate"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// MeshConfig holds the hex-packed grid dimensions.
type MeshConfig struct {
	Rows       int     `yaml:"rows"`        // Grid point rows (>= 2)
	Cols       int     `yaml:"cols"`        // Grid point columns (>= 2)
	EdgeLength float64 `yaml:"edge_length"` // Triangle edge length L
}

// VesicleConfig holds vesicle shape, motion and seeding parameters.
type VesicleConfig struct {
	Radius               float64 `yaml:"radius"`
	DiffusionCoeff       float64 `yaml:"diffusion_coeff"`        // Free-space D
	DT                   float64 `yaml:"dt"`                     // Seconds per tick
	Samples              int     `yaml:"samples"`                // Perimeter sample points (>= 3)
	Count                int     `yaml:"count"`                  // Vesicles seeded at startup
	MaxPlacementAttempts int     `yaml:"max_placement_attempts"` // Retry budget per vesicle
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// CalibrateConfig holds defaults for the calibration tool.
type CalibrateConfig struct {
	Ticks int `yaml:"ticks"` // Ticks simulated per evaluation
	Seeds int `yaml:"seeds"` // Independent runs averaged per evaluation
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	StepScale      float64 // sqrt(2*D*dt)
	TicksPerWindow int     // Telemetry.StatsWindow, at least 1
	WindowSeconds  float64 // Simulated seconds per stats window
	ScreenW32      float32
	ScreenH32      float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: parsing embedded defaults: %v", err))
	}
	cfg.computeDerived()
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every out-of-range parameter, joined into one error
// wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
		}
	}

	check(c.Mesh.Rows >= 2, "mesh.rows must be >= 2, got %d", c.Mesh.Rows)
	check(c.Mesh.Cols >= 2, "mesh.cols must be >= 2, got %d", c.Mesh.Cols)
	check(finite(c.Mesh.EdgeLength) && c.Mesh.EdgeLength > 0, "mesh.edge_length must be > 0, got %g", c.Mesh.EdgeLength)

	v := c.Vesicle
	check(finite(v.Radius) && v.Radius > 0, "vesicle.radius must be > 0, got %g", v.Radius)
	check(finite(v.DiffusionCoeff) && v.DiffusionCoeff >= 0, "vesicle.diffusion_coeff must be >= 0, got %g", v.DiffusionCoeff)
	check(finite(v.DT) && v.DT > 0, "vesicle.dt must be > 0, got %g", v.DT)
	check(v.Samples >= 3, "vesicle.samples must be >= 3, got %d", v.Samples)
	check(v.Count >= 0, "vesicle.count must be >= 0, got %d", v.Count)
	check(v.MaxPlacementAttempts >= 1, "vesicle.max_placement_attempts must be >= 1, got %d", v.MaxPlacementAttempts)

	check(c.Telemetry.StatsWindow >= 0, "telemetry.stats_window must be >= 0, got %d", c.Telemetry.StatsWindow)
	check(c.Telemetry.PerfCollectorWindow >= 0, "telemetry.perf_collector_window must be >= 0, got %d", c.Telemetry.PerfCollectorWindow)

	check(c.Calibrate.Ticks >= 1, "calibrate.ticks must be >= 1, got %d", c.Calibrate.Ticks)
	check(c.Calibrate.Seeds >= 1, "calibrate.seeds must be >= 1, got %d", c.Calibrate.Seeds)

	return errors.Join(errs...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.StepScale = math.Sqrt(2 * c.Vesicle.DiffusionCoeff * c.Vesicle.DT)
	c.Derived.TicksPerWindow = max(c.Telemetry.StatsWindow, 1)
	c.Derived.WindowSeconds = float64(c.Derived.TicksPerWindow) * c.Vesicle.DT
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
}

// Finalize validates c and recomputes its derived values. Call it after
// modifying a loaded config in place.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
