package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xichen1997/stronger-llama/internal/spec"
)

// validConfig returns a minimal config used by validation tests.
func validConfig() spec.Config {
	return spec.Config{
		Version: 1,
		Backend: spec.BackendConfig{
			Provider: "ollama",
			Model:    "llama3.2:3b",
		},
		Benchmark: spec.BenchmarkConfig{
			OutputDir:    "./out",
			Combinations: []spec.CombinationConfig{{Strategy: "cot"}},
		},
	}
}

func writeQuestionSpec(t *testing.T, dir string) {
	t.Helper()
	payload := `version: 1
questions:
  - id: q1
    question: "What is 1+1?"
`
	path := filepath.Join(dir, "questions.yml")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write questions file: %v", err)
	}
}

func writeConfig(t *testing.T, root, payload string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
