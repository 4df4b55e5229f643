package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/foodchain/config"
)

// csvStream appends records to one CSV file, writing the header once.
// The file is created on the first write.
type csvStream struct {
	path          string
	file          *os.File
	headerWritten bool
}

func (s *csvStream) write(records any) error {
	if s.file == nil {
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Base(s.path), err)
		}
		s.file = f
	}

	if !s.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, s.file); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(s.path), err)
		}
		s.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, s.file); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(s.path), err)
	}
	return nil
}

func (s *csvStream) close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// OutputManager handles CSV output of rounds, events and batch results.
// All methods are safe on a nil receiver, which means output is disabled.
type OutputManager struct {
	dir     string
	rounds  csvStream
	events  csvStream
	results csvStream
	perf    csvStream
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &OutputManager{
		dir:     dir,
		rounds:  csvStream{path: filepath.Join(dir, "rounds.csv")},
		events:  csvStream{path: filepath.Join(dir, "events.csv")},
		results: csvStream{path: filepath.Join(dir, "results.csv")},
		perf:    csvStream{path: filepath.Join(dir, "perf.csv")},
	}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRound writes a round summary to rounds.csv.
func (om *OutputManager) WriteRound(stats RoundStats) error {
	if om == nil {
		return nil
	}
	return om.rounds.write([]RoundStats{stats})
}

// WriteEvent writes a game event to events.csv.
func (om *OutputManager) WriteEvent(ev Event) error {
	if om == nil {
		return nil
	}
	return om.events.write([]Event{ev})
}

// WriteResult writes a finished game to results.csv.
func (om *OutputManager) WriteResult(res GameResult) error {
	if om == nil {
		return nil
	}
	return om.results.write([]GameResult{res})
}

// WritePerf writes timing rows to perf.csv.
func (om *OutputManager) WritePerf(rows ...PerfStatsCSV) error {
	if om == nil || len(rows) == 0 {
		return nil
	}
	return om.perf.write(rows)
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

	var firstErr error
	for _, s := range []*csvStream{&om.rounds, &om.events, &om.results, &om.perf} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
