package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/generation"
	"github.com/xichen1997/stronger-llama/internal/question"
	"github.com/xichen1997/stronger-llama/internal/runner"
	"github.com/xichen1997/stronger-llama/internal/spec"
)

// Validate checks a config for correctness and referenced files.
func Validate(cfg *spec.Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}
	if baseDir == "" {
		baseDir = "."
	}

	validateBackend(cfg.Backend, collector)
	validateBenchmark(cfg.Benchmark, baseDir, collector)
	return collector.result()
}

func validateBackend(backend spec.BackendConfig, collector *issueCollector) {
	switch backend.Provider {
	case generation.ProviderOllama, generation.ProviderGemini:
	case "":
		collector.add("backend.provider", "is required")
	default:
		collector.add("backend.provider", fmt.Sprintf("unsupported provider %q", backend.Provider))
	}
	if strings.TrimSpace(backend.Model) == "" {
		collector.add("backend.model", "is required")
	}
}

func validateBenchmark(bench spec.BenchmarkConfig, baseDir string, collector *issueCollector) {
	if strings.TrimSpace(bench.OutputDir) == "" {
		collector.add("benchmark.output_dir", "is required")
	}
	if len(bench.Combinations) == 0 {
		collector.add("benchmark.combinations", "must include at least one entry")
	}
	seen := map[string]struct{}{}
	for i, entry := range bench.Combinations {
		field := fmt.Sprintf("benchmark.combinations[%d]", i)
		combo, err := runner.ParseCombination(entry.Strategy, entry.Reasoning)
		if err != nil {
			collector.add(field, err.Error())
			continue
		}
		key := combo.String()
		if _, exists := seen[key]; exists {
			collector.add(field, fmt.Sprintf("duplicate combination %q", key))
			continue
		}
		seen[key] = struct{}{}
	}
	for i, text := range bench.Questions {
		if strings.TrimSpace(text) == "" {
			collector.add(fmt.Sprintf("benchmark.questions[%d]", i), "is empty")
		}
	}

	file := strings.TrimSpace(bench.QuestionsFile)
	if file == "" {
		return
	}
	path := ResolvePath(baseDir, file)
	info, err := os.Stat(path)
	if err != nil {
		collector.add("benchmark.questions_file", fmt.Sprintf("cannot read %q: %v", file, err))
		return
	}
	if info.IsDir() {
		collector.add("benchmark.questions_file", fmt.Sprintf("%q is a directory", file))
		return
	}
	if _, err := question.LoadSpec(path); err != nil {
		collector.add("benchmark.questions_file", err.Error())
	}
}
