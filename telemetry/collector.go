// Package telemetry aggregates per-tick simulation counters into windowed
// statistics, times simulation phases, and writes both to CSV.
package telemetry

import "gonum.org/v1/gonum/spatial/r2"

// Collector accumulates move outcomes within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	accepted   int
	rejected   int
	proposalsX []float64
	proposalsY []float64

	// MSD history over the whole run, one point per flushed window
	times []float64
	msd   []float64
}

// NewCollector creates a new stats collector.
// ticksPerWindow: ticks per stats window (at least 1)
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(ticksPerWindow int32, dt float64) *Collector {
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		times:               []float64{0},
		msd:                 []float64{0},
	}
}

// RecordStep records the outcome of one tick and its proposed displacements.
func (c *Collector) RecordStep(accepted, rejected int, proposed []r2.Vec) {
	c.accepted += accepted
	c.rejected += rejected
	for _, d := range proposed {
		c.proposalsX = append(c.proposalsX, d.X)
		c.proposalsY = append(c.proposalsY, d.Y)
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Occupancy holds mesh occupancy at the end of a window.
type Occupancy struct {
	Occupied  int
	Triangles int
}

// Flush produces a WindowStats and resets counters for the next window.
// msd is the current mean squared displacement of the vesicles from their
// seeding positions.
func (c *Collector) Flush(currentTick int32, vesicles int, occ Occupancy, msd float64) WindowStats {
	simTime := float64(currentTick) * c.dt
	c.times = append(c.times, simTime)
	c.msd = append(c.msd, msd)

	var rate float64
	if moves := c.accepted + c.rejected; moves > 0 {
		rate = float64(c.accepted) / float64(moves)
	}
	var frac float64
	if occ.Triangles > 0 {
		frac = float64(occ.Occupied) / float64(occ.Triangles)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,

		Vesicles: vesicles,

		Accepted:       c.accepted,
		Rejected:       c.rejected,
		AcceptanceRate: rate,

		OccupiedTriangles: occ.Occupied,
		OccupiedFraction:  frac,

		ProposalVarX: variance(c.proposalsX),
		ProposalVarY: variance(c.proposalsY),

		MSD:  msd,
		DEff: EffectiveDiffusion(c.times, c.msd),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.accepted = 0
	c.rejected = 0
	c.proposalsX = c.proposalsX[:0]
	c.proposalsY = c.proposalsY[:0]

	return stats
}

// EffectiveDiffusion returns D_eff over all windows flushed so far.
func (c *Collector) EffectiveDiffusion() float64 {
	return EffectiveDiffusion(c.times, c.msd)
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
