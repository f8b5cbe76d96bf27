package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/runner"
)

// LatestRef selects the most recent run in an output directory.
const LatestRef = "latest"

// ResolveRunDir locates a run directory by run ID, or the newest one for LatestRef.
func ResolveRunDir(outputDir, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == LatestRef {
		return findLatestRunDir(outputDir)
	}
	runDir := filepath.Join(outputDir, ref)
	info, err := os.Stat(runDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("run %s not found in %s", ref, outputDir)
	}
	return runDir, nil
}

// LoadRecords reads records from a results file or a run directory.
func LoadRecords(path string) ([]runner.Record, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		path = filepath.Join(path, runner.ResultsFileName)
	}
	return runner.LoadResults(path)
}

// findLatestRunDir relies on run IDs sorting by their timestamp prefix.
func findLatestRunDir(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", err
	}
	runIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(outputDir, entry.Name(), runner.ResultsFileName)); err == nil {
			runIDs = append(runIDs, entry.Name())
		}
	}
	if len(runIDs) == 0 {
		return "", fmt.Errorf("no runs found in %s", outputDir)
	}
	sort.Strings(runIDs)
	return filepath.Join(outputDir, runIDs[len(runIDs)-1]), nil
}
