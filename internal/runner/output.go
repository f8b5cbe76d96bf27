package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Output file names inside a run directory.
const (
	ResultsFileName = "benchmark_results.json"
	RunFileName     = "run.json"
	PlotFileName    = "benchmark_results.png"
	DuckDBFileName  = "results.duckdb"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{Root: root, RunID: runID}, nil
}

// RunDir returns the directory for a specific run.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Root, o.RunID)
}

// ResultsPath returns the path to the record array.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.RunDir(), ResultsFileName)
}

// RunPath returns the path to the run metadata document.
func (o OutputPaths) RunPath() string {
	return filepath.Join(o.RunDir(), RunFileName)
}

// PlotPath returns the path to the PNG chart.
func (o OutputPaths) PlotPath() string {
	return filepath.Join(o.RunDir(), PlotFileName)
}

// DuckDBPath returns the path to the results database shared by every run under Root.
func (o OutputPaths) DuckDBPath() string {
	return filepath.Join(o.Root, DuckDBFileName)
}
