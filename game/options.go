package game

import "github.com/pthm-cable/membrane/telemetry"

// Options holds run settings that are not part of the simulation config.
type Options struct {
	Seed           int64
	LogStats       bool   // log window and perf stats via slog
	OutputDir      string // CSV and config snapshot directory; empty disables output
	StepsPerUpdate int    // ticks per Update/UpdateHeadless call
	Verify         bool   // check occupancy bookkeeping after every tick

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// maxStepsPerUpdate bounds the interactive speed control.
const maxStepsPerUpdate = 50
