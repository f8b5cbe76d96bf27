package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/config"
	"github.com/xichen1997/stronger-llama/internal/generation"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := newFlagSet(cmd, stderr)
		specPath := flags.String("spec", "", "Path to write the config (default: ./.stronger-llama/config.yml)")
		assumeYes := flags.Bool("yes", false, "Accept every default without prompting")
		if code, ok := parseFlags(cmd, flags, args, false, stdout, stderr); !ok {
			return code
		}

		targetSpecPath, err := initTargetPath(*specPath)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		configDir := filepath.Dir(targetSpecPath)
		baseDir := config.RepoRootFromConfigPath(targetSpecPath)
		repoRoot := discoverGitRoot(baseDir)

		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		if info, err := os.Stat(targetSpecPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: spec path %q is a directory\n", targetSpecPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: spec file already exists at %q\n", targetSpecPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat spec file: %v\n", err)
			return ExitError
		}

		opts := config.ScaffoldOptions{
			Provider:  config.DefaultProvider,
			Model:     config.DefaultOllamaModel,
			OutputDir: config.DefaultOutputDir,
		}
		addGitignore := repoRoot != ""
		if !*assumeYes {
			var confirmed bool
			opts, addGitignore, confirmed, err = promptInitOptions(initInput, stdout, configDir, repoRoot != "")
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !confirmed {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
		}

		if err := config.Scaffold(targetSpecPath, opts); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", targetSpecPath)

		if addGitignore {
			outputDir := config.ResolvePath(baseDir, opts.OutputDir)
			updated, err := ignoreResultsDir(repoRoot, outputDir)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if updated {
				fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(repoRoot, ".gitignore"))
			}
		}
		return ExitOK
	}
}

// initTargetPath resolves where init writes the config.
func initTargetPath(specPath string) (string, error) {
	if value := strings.TrimSpace(specPath); value != "" {
		return filepath.Abs(value)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return config.ConfigPath(wd), nil
}

// promptInitOptions asks for the backend and results folder.
func promptInitOptions(in io.Reader, out io.Writer, configDir string, inRepo bool) (opts config.ScaffoldOptions, addGitignore, confirmed bool, err error) {
	if in == nil {
		in = os.Stdin
	}
	p := newPrompter(in, out)

	confirmed, err = p.confirm(fmt.Sprintf("Initialize stronger-llama config in %s?", configDir), true)
	if err != nil || !confirmed {
		return opts, false, confirmed, err
	}
	providers := []string{generation.ProviderOllama, generation.ProviderGemini}
	if opts.Provider, err = p.choice("Provider", providers, config.DefaultProvider); err != nil {
		return opts, false, false, err
	}
	defaultModel := config.DefaultOllamaModel
	if opts.Provider == generation.ProviderGemini {
		defaultModel = config.DefaultGeminiModel
	}
	if opts.Model, err = p.text("Model", defaultModel); err != nil {
		return opts, false, false, err
	}
	if opts.OutputDir, err = p.text("Results folder", config.DefaultOutputDir); err != nil {
		return opts, false, false, err
	}
	if inRepo {
		if addGitignore, err = p.confirm("Add results folder to .gitignore?", true); err != nil {
			return opts, false, false, err
		}
	}
	return opts, addGitignore, true, nil
}

// discoverGitRoot walks up from startDir looking for a .git entry and returns
// its parent, or empty when none is found.
func discoverGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
