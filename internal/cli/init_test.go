package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withInitInput(t *testing.T, input string) {
	t.Helper()
	original := initInput
	initInput = strings.NewReader(input)
	t.Cleanup(func() { initInput = original })
}

func TestInitWithDefaults(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, ".stronger-llama", "config.yml")

	code, stdout, stderr := runCLI("init", "--spec", specPath, "--yes")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "Wrote "+specPath) {
		t.Fatalf("unexpected stdout: %s", stdout)
	}
	data, err := os.ReadFile(specPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), `model: "llama3.2:3b"`) {
		t.Fatalf("expected default model in config:\n%s", data)
	}

	code, stdout, stderr = runCLI("validate", "--spec", specPath)
	if code != ExitOK {
		t.Fatalf("expected scaffold to validate, got %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Config OK") {
		t.Fatalf("unexpected validate output: %s", stdout)
	}
}

func TestInitPromptsAndUpdatesGitignore(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	specPath := filepath.Join(dir, ".stronger-llama", "config.yml")
	withInitInput(t, "y\ngemini\n\nout/results\ny\n")

	code, stdout, stderr := runCLI("init", "--spec", specPath)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, stderr)
	}
	data, err := os.ReadFile(specPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, want := range []string{`provider: "gemini"`, `model: "gemini-2.5-flash"`, `output_dir: "out/results"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %s in config:\n%s", want, data)
		}
	}
	gitignore, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if strings.TrimSpace(string(gitignore)) != "out/results/" {
		t.Fatalf("unexpected .gitignore: %q", gitignore)
	}
	if !strings.Contains(stdout, "Updated ") {
		t.Fatalf("expected gitignore update message: %s", stdout)
	}
}

func TestInitRejectsUnknownProviderAnswer(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "config.yml")
	withInitInput(t, "y\nopenai\nollama\n\n\n")

	code, stdout, stderr := runCLI("init", "--spec", specPath)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "Please answer ollama or gemini.") {
		t.Fatalf("expected re-prompt, got: %s", stdout)
	}
}

func TestInitCancelled(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "config.yml")
	withInitInput(t, "n\n")

	code, _, stderr := runCLI("init", "--spec", specPath)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr, "Init cancelled.") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
	if _, err := os.Stat(specPath); !os.IsNotExist(err) {
		t.Fatalf("expected no config to be written")
	}
}

func TestInitRefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(specPath, []byte("version: 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, _, stderr := runCLI("init", "--spec", specPath, "--yes")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr, "already exists") {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
}

func TestResultsIgnoreEntry(t *testing.T) {
	root := t.TempDir()
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "default results dir", input: filepath.Join(root, ".stronger-llama", "results"), want: ".stronger-llama/results/"},
		{name: "uncleaned", input: root + "/out/../runs/", want: "runs/"},
		{name: "repo root itself", input: root, wantErr: true},
		{name: "outside", input: filepath.Join(filepath.Dir(root), "elsewhere"), wantErr: true},
		{name: "unresolved", input: "results", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resultsIgnoreEntry(root, tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestIgnoreResultsDirKeepsExistingPattern(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".gitignore")
	if err := os.WriteFile(path, []byte("bin\n/results"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	updated, err := ignoreResultsDir(root, filepath.Join(root, "results"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated {
		t.Fatalf("expected /results to match results/")
	}

	updated, err = ignoreResultsDir(root, filepath.Join(root, "runs"))
	if err != nil || !updated {
		t.Fatalf("expected runs/ to be added, got %v %v", updated, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "bin\n/results\nruns/\n" {
		t.Fatalf("unexpected .gitignore: %q", data)
	}
}
