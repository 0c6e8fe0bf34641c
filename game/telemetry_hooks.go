package game

import (
	"log/slog"

	"github.com/pthm-cable/membrane/telemetry"
)

// flushTelemetry emits the stats window once it is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	occ := telemetry.Occupancy{Occupied: g.mesh.OccupiedCount(), Triangles: g.mesh.Len()}
	stats := g.collector.Flush(g.tick, g.vesicles.Len(), occ, g.vesicles.MeanSquaredDisplacement())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if err := g.outputManager.WriteTrajectory(g.trajectory(stats.WindowEndTick)); err != nil {
			slog.Error("failed to write trajectory", "error", err)
		}
	}
}

// trajectory samples every vesicle center at the end of a window.
func (g *Game) trajectory(windowEnd int32) []telemetry.TrajectoryPoint {
	points := make([]telemetry.TrajectoryPoint, g.vesicles.Len())
	for i := range points {
		c := g.vesicles.At(i).Center
		points[i] = telemetry.TrajectoryPoint{WindowEnd: windowEnd, Vesicle: i, X: c.X, Y: c.Y}
	}
	return points
}
