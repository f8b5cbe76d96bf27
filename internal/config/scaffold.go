package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const scaffoldTemplate = `version: 1
backend:
  provider: %q
  # host defaults to $OLLAMA_HOST, then http://localhost:11434
  host: ""
  model: %q

benchmark:
  output_dir: %q
  # questions_file: "questions.yml"
  questions:
    - "What causes climate change?"
    - "Explain how photosynthesis works"
  combinations:
    - strategy: "cot"
    - strategy: "cot+reflection"
    - strategy: "cot+reflection"
      reasoning: true
  continue_on_error: false
  skip_plot: false
  duckdb: false
`

// ScaffoldOptions customizes the generated config.
type ScaffoldOptions struct {
	Provider  string
	Model     string
	OutputDir string
}

// RenderScaffold returns the starter config YAML, filling empty options with defaults.
func RenderScaffold(opts ScaffoldOptions) string {
	if opts.Provider == "" {
		opts.Provider = DefaultProvider
	}
	if opts.Model == "" {
		opts.Model = DefaultOllamaModel
		if opts.Provider == "gemini" {
			opts.Model = DefaultGeminiModel
		}
	}
	if opts.OutputDir == "" {
		opts.OutputDir = DefaultOutputDir
	}
	return fmt.Sprintf(scaffoldTemplate, opts.Provider, opts.Model, opts.OutputDir)
}

// Scaffold writes a starter config file, refusing to overwrite an existing one.
func Scaffold(configPath string, opts ScaffoldOptions) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(RenderScaffold(opts)), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
