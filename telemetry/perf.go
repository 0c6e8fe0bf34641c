package telemetry

import (
	"log/slog"
	"time"
)

// Phase identifies a timed section of a simulation tick.
type Phase int

// Phases of one tick, in execution order.
const (
	PhaseDiffuse Phase = iota
	PhaseVerify
	PhaseTelemetry
	numPhases
)

// NumPhases is the number of timed phases in a tick.
const NumPhases = int(numPhases)

var phaseNames = [numPhases]string{"diffuse", "verify", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Phases       [numPhases]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	current    PerfSample
	tickStart  time.Time
	phaseStart time.Time
	lastPhase  Phase
	inPhase    bool

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of ticks to average over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{samples: make([]PerfSample, windowSize)}
}

// StartTick begins timing a new simulation tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = PerfSample{}
	p.inPhase = false
}

// StartPhase ends the running phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.endPhase(now)
	p.phaseStart = now
	p.lastPhase = phase
	p.inPhase = true
}

func (p *PerfCollector) endPhase(now time.Time) {
	if p.inPhase && p.lastPhase >= 0 && p.lastPhase < numPhases {
		p.current.Phases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick finishes timing the current tick and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.endPhase(now)
	p.current.TickDuration = now.Sub(p.tickStart)

	p.samples[p.writeIndex] = p.current
	p.writeIndex = (p.writeIndex + 1) % len(p.samples)
	if p.sampleCount < len(p.samples) {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Per-phase average duration and share of the average tick, in percent
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64

	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{FrameDuration: p.frameDuration}
	if p.frameDuration > 0 {
		stats.FPS = float64(time.Second) / float64(p.frameDuration)
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	var phaseSum [numPhases]time.Duration
	for i, s := range p.samples[:p.sampleCount] {
		total += s.TickDuration
		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		stats.MaxTickDuration = max(stats.MaxTickDuration, s.TickDuration)
		for ph, d := range s.Phases {
			phaseSum[ph] += d
		}
	}

	n := time.Duration(p.sampleCount)
	stats.AvgTickDuration = total / n
	for ph := range phaseSum {
		stats.PhaseAvg[ph] = phaseSum[ph] / n
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[ph] = float64(stats.PhaseAvg[ph]) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"min_tick_us", s.MinTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, Phase(ph).String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	DiffusePct   float64 `csv:"diffuse_pct"`
	VerifyPct    float64 `csv:"verify_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		DiffusePct:   s.PhasePct[PhaseDiffuse],
		VerifyPct:    s.PhasePct[PhaseVerify],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
