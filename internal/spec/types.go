package spec

// Config is the .stronger-llama/config.yml schema.
type Config struct {
	Version   int             `yaml:"version"`
	Backend   BackendConfig   `yaml:"backend"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
}

// BackendConfig selects the generation service and model.
type BackendConfig struct {
	Provider string `yaml:"provider"`
	Host     string `yaml:"host"`
	Model    string `yaml:"model"`
}

// BenchmarkConfig drives the benchmark command.
type BenchmarkConfig struct {
	QuestionsFile   string              `yaml:"questions_file"`
	Questions       []string            `yaml:"questions"`
	Combinations    []CombinationConfig `yaml:"combinations"`
	OutputDir       string              `yaml:"output_dir"`
	ContinueOnError bool                `yaml:"continue_on_error"`
	SkipPlot        bool                `yaml:"skip_plot"`
	DuckDB          bool                `yaml:"duckdb"`
}

// CombinationConfig is one strategy combination in the benchmark matrix.
type CombinationConfig struct {
	Strategy  string `yaml:"strategy"`
	Reasoning bool   `yaml:"reasoning"`
}
