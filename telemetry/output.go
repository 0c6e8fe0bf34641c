package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/membrane/config"
)

// TrajectoryPoint is one vesicle position at the end of a stats window.
type TrajectoryPoint struct {
	WindowEnd int32   `csv:"window_end"`
	Vesicle   int     `csv:"vesicle"`
	X         float64 `csv:"x"`
	Y         float64 `csv:"y"`
}

// CSVLog appends records of one type to a CSV file, writing the header with
// the first batch.
type CSVLog[T any] struct {
	name          string
	file          *os.File
	headerWritten bool
}

// OpenCSVLog creates (or truncates) dir/name.
func OpenCSVLog[T any](dir, name string) (*CSVLog[T], error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &CSVLog[T]{name: name, file: f}, nil
}

// Write appends records.
func (l *CSVLog[T]) Write(records []T) error {
	if len(records) == 0 {
		return nil
	}
	var err error
	if !l.headerWritten {
		err = gocsv.Marshal(records, l.file)
		l.headerWritten = err == nil
	} else {
		err = gocsv.MarshalWithoutHeaders(records, l.file)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", l.name, err)
	}
	return nil
}

// Close closes the file. It is safe on a nil log.
func (l *CSVLog[T]) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// OutputManager handles structured experiment output with CSV logging.
type OutputManager struct {
	dir        string
	telemetry  *CSVLog[WindowStats]
	perf       *CSVLog[PerfStatsCSV]
	trajectory *CSVLog[TrajectoryPoint]
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). All methods are no-ops on a
// nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	var err error
	if om.telemetry, err = OpenCSVLog[WindowStats](dir, "telemetry.csv"); err != nil {
		return nil, err
	}
	if om.perf, err = OpenCSVLog[PerfStatsCSV](dir, "perf.csv"); err != nil {
		om.Close()
		return nil, err
	}
	if om.trajectory, err = OpenCSVLog[TrajectoryPoint](dir, "trajectory.csv"); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes a window stats record to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return om.telemetry.Write([]WindowStats{stats})
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return om.perf.Write([]PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteTrajectory appends vesicle positions to trajectory.csv.
func (om *OutputManager) WriteTrajectory(points []TrajectoryPoint) error {
	if om == nil {
		return nil
	}
	return om.trajectory.Write(points)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	return errors.Join(om.telemetry.Close(), om.perf.Close(), om.trajectory.Close())
}
