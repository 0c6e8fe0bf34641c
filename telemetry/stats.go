package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Vesicles int `csv:"vesicles"`

	// Moves during window
	Accepted       int     `csv:"accepted"`
	Rejected       int     `csv:"rejected"`
	AcceptanceRate float64 `csv:"acceptance_rate"`

	// Occupancy at window end
	OccupiedTriangles int     `csv:"occupied"`
	OccupiedFraction  float64 `csv:"occupied_fraction"`

	// Proposed displacements during window; each tends to 2*D*dt
	ProposalVarX float64 `csv:"proposal_var_x"`
	ProposalVarY float64 `csv:"proposal_var_y"`

	// Displacement from seeding position
	MSD  float64 `csv:"msd"`
	DEff float64 `csv:"d_eff"` // slope(MSD vs t) / 4 over the run so far
}

// EffectiveDiffusion fits MSD = a + b*t by least squares and returns b/4,
// the 2D diffusion coefficient implied by the slope. Fewer than two points
// yield 0.
func EffectiveDiffusion(times, msd []float64) float64 {
	if len(times) < 2 || len(times) != len(msd) {
		return 0
	}
	_, slope := stat.LinearRegression(times, msd, nil, false)
	return slope / 4
}

// variance returns the unbiased sample variance, or 0 for fewer than two values.
func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	_, v := stat.MeanVariance(xs, nil)
	return v
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("vesicles", s.Vesicles),
		slog.Int("accepted", s.Accepted),
		slog.Int("rejected", s.Rejected),
		slog.Float64("acceptance_rate", s.AcceptanceRate),
		slog.Int("occupied", s.OccupiedTriangles),
		slog.Float64("occupied_fraction", s.OccupiedFraction),
		slog.Float64("proposal_var_x", s.ProposalVarX),
		slog.Float64("proposal_var_y", s.ProposalVarY),
		slog.Float64("msd", s.MSD),
		slog.Float64("d_eff", s.DEff),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"vesicles", s.Vesicles,
		"accepted", s.Accepted,
		"rejected", s.Rejected,
		"acceptance_rate", s.AcceptanceRate,
		"occupied", s.OccupiedTriangles,
		"occupied_fraction", s.OccupiedFraction,
		"proposal_var_x", s.ProposalVarX,
		"proposal_var_y", s.ProposalVarY,
		"msd", s.MSD,
		"d_eff", s.DEff,
	)
}
