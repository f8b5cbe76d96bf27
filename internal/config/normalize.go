package config

import (
	"strings"

	"github.com/xichen1997/stronger-llama/internal/spec"
)

// Defaults applied by Normalize.
const (
	DefaultProvider    = "ollama"
	DefaultOllamaModel = "llama3.2:3b"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// DefaultCombinations is the benchmark matrix used when none is configured.
var DefaultCombinations = []spec.CombinationConfig{
	{Strategy: "cot"},
	{Strategy: "cot+reflection"},
	{Strategy: "cot+reflection", Reasoning: true},
}

// Normalize fills defaults for fields left empty.
func Normalize(cfg *spec.Config) {
	cfg.Backend.Provider = strings.ToLower(strings.TrimSpace(cfg.Backend.Provider))
	if cfg.Backend.Provider == "" {
		cfg.Backend.Provider = DefaultProvider
	}
	cfg.Backend.Host = strings.TrimSpace(cfg.Backend.Host)
	cfg.Backend.Model = strings.TrimSpace(cfg.Backend.Model)
	if cfg.Backend.Model == "" {
		switch cfg.Backend.Provider {
		case "gemini":
			cfg.Backend.Model = DefaultGeminiModel
		case DefaultProvider:
			cfg.Backend.Model = DefaultOllamaModel
		}
	}
	if strings.TrimSpace(cfg.Benchmark.OutputDir) == "" {
		cfg.Benchmark.OutputDir = DefaultOutputDir
	}
	if len(cfg.Benchmark.Combinations) == 0 {
		cfg.Benchmark.Combinations = append([]spec.CombinationConfig(nil), DefaultCombinations...)
	}
	for i := range cfg.Benchmark.Combinations {
		cfg.Benchmark.Combinations[i].Strategy = strings.TrimSpace(cfg.Benchmark.Combinations[i].Strategy)
	}
}
