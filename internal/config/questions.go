package config

import (
	"strings"

	"github.com/xichen1997/stronger-llama/internal/question"
	"github.com/xichen1997/stronger-llama/internal/spec"
)

// Questions resolves the benchmark question list. A questions file wins over
// inline questions, and the built-in set is used when neither is configured.
func Questions(cfg spec.Config, root string) ([]string, error) {
	if file := strings.TrimSpace(cfg.Benchmark.QuestionsFile); file != "" {
		set, err := question.LoadSpec(ResolvePath(root, file))
		if err != nil {
			return nil, err
		}
		return set.Prompts(), nil
	}
	if len(cfg.Benchmark.Questions) > 0 {
		prompts := make([]string, 0, len(cfg.Benchmark.Questions))
		for _, text := range cfg.Benchmark.Questions {
			prompts = append(prompts, strings.TrimSpace(text))
		}
		return prompts, nil
	}
	return question.Default().Prompts(), nil
}
