package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xichen1997/stronger-llama/internal/spec"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	cfg := spec.Config{Version: 1}
	Normalize(&cfg)

	if cfg.Backend.Provider != DefaultProvider {
		t.Fatalf("expected provider %q, got %q", DefaultProvider, cfg.Backend.Provider)
	}
	if cfg.Backend.Model != DefaultOllamaModel {
		t.Fatalf("expected model %q, got %q", DefaultOllamaModel, cfg.Backend.Model)
	}
	if cfg.Benchmark.OutputDir != DefaultOutputDir {
		t.Fatalf("expected output dir %q, got %q", DefaultOutputDir, cfg.Benchmark.OutputDir)
	}
	if len(cfg.Benchmark.Combinations) != 3 {
		t.Fatalf("expected default combinations, got %+v", cfg.Benchmark.Combinations)
	}
	if err := Validate(&cfg, "."); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestNormalizeGeminiModel(t *testing.T) {
	cfg := spec.Config{Version: 1, Backend: spec.BackendConfig{Provider: " Gemini "}}
	Normalize(&cfg)
	if cfg.Backend.Provider != "gemini" || cfg.Backend.Model != DefaultGeminiModel {
		t.Fatalf("unexpected backend %+v", cfg.Backend)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	Normalize(&cfg)
	if cfg.Benchmark.OutputDir != "./out" || len(cfg.Benchmark.Combinations) != 1 {
		t.Fatalf("expected explicit values to survive, got %+v", cfg.Benchmark)
	}
}

func TestValidateRejectsBadCombinations(t *testing.T) {
	cfg := validConfig()
	cfg.Benchmark.Combinations = []spec.CombinationConfig{
		{Strategy: "cot", Reasoning: true},
		{Strategy: "mystery"},
		{Strategy: "cot+reflection"},
		{Strategy: "cot_reflection"},
	}

	err := Validate(&cfg, ".")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %+v", validationErr.Issues)
	}
	if !strings.Contains(err.Error(), "duplicate combination") {
		t.Fatalf("expected duplicate error, got %q", err.Error())
	}
}

func TestValidateBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.Provider = "openai"
	cfg.Backend.Model = ""
	cfg.Version = 3

	err := Validate(&cfg, ".")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, field := range []string{"version", "backend.provider", "backend.model"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("expected %s issue in %q", field, err.Error())
		}
	}
}

func TestValidateQuestionsFile(t *testing.T) {
	dir := t.TempDir()
	cfg := validConfig()
	cfg.Benchmark.QuestionsFile = "missing.yml"
	if err := Validate(&cfg, dir); err == nil || !strings.Contains(err.Error(), "benchmark.questions_file") {
		t.Fatalf("expected questions_file error, got %v", err)
	}

	writeQuestionSpec(t, dir)
	cfg.Benchmark.QuestionsFile = "questions.yml"
	if err := Validate(&cfg, dir); err != nil {
		t.Fatalf("expected config to validate, got %v", err)
	}
}

func TestValidateEmptyInlineQuestion(t *testing.T) {
	cfg := validConfig()
	cfg.Benchmark.Questions = []string{"ok", "  "}
	if err := Validate(&cfg, "."); err == nil || !strings.Contains(err.Error(), "benchmark.questions[1]") {
		t.Fatalf("expected empty question error, got %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\nbackend:\n  provider: ollama\n  temperature: 0.2\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadResolvesQuestions(t *testing.T) {
	root := t.TempDir()
	writeQuestionSpec(t, root)
	path := writeConfig(t, root, "version: 1\nbenchmark:\n  questions_file: questions.yml\n  questions: [\"ignored\"]\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	prompts, err := Questions(cfg, RepoRootFromConfigPath(path))
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(prompts) != 1 || prompts[0] != "What is 1+1?" {
		t.Fatalf("unexpected prompts %v", prompts)
	}

	cfg.Benchmark.QuestionsFile = ""
	prompts, _ = Questions(cfg, root)
	if len(prompts) != 1 || prompts[0] != "ignored" {
		t.Fatalf("expected inline questions, got %v", prompts)
	}

	cfg.Benchmark.Questions = nil
	prompts, _ = Questions(cfg, root)
	if len(prompts) != 5 {
		t.Fatalf("expected built-in questions, got %v", prompts)
	}
}

func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	if found != path {
		t.Fatalf("expected %q, got %q", path, found)
	}
	if RepoRootFromConfigPath(found) != root {
		t.Fatalf("unexpected root %q", RepoRootFromConfigPath(found))
	}
}

func TestFindConfigPathMissing(t *testing.T) {
	_, err := FindConfigPath(t.TempDir())
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestFindConfigPathMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := FindConfigPath(root)
	if err == nil || errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestScaffoldWritesValidConfig(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path, ScaffoldOptions{OutputDir: "out/bench"}); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected scaffold to load, got %v", err)
	}
	if cfg.Backend.Model != DefaultOllamaModel || cfg.Benchmark.OutputDir != "out/bench" {
		t.Fatalf("unexpected scaffold config %+v", cfg)
	}
	if err := Scaffold(path, ScaffoldOptions{}); err == nil {
		t.Fatalf("expected scaffold to refuse overwrite")
	}
}

func TestRenderScaffoldGemini(t *testing.T) {
	cfg, err := spec.ParseConfig([]byte(RenderScaffold(ScaffoldOptions{Provider: "gemini"})))
	if err != nil {
		t.Fatalf("parse scaffold: %v", err)
	}
	if cfg.Backend.Provider != "gemini" || cfg.Backend.Model != DefaultGeminiModel {
		t.Fatalf("unexpected backend %+v", cfg.Backend)
	}
}
