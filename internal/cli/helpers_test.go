package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xichen1997/stronger-llama/internal/generation"
	"github.com/xichen1997/stronger-llama/internal/spec"
	"github.com/xichen1997/stronger-llama/internal/testutil"
)

func newFakeOllama(t *testing.T) *testutil.OllamaServer {
	t.Helper()
	return testutil.NewOllamaServer(t)
}

// stubGenerator replaces newGenerator with an echo backend for the test and
// returns the number of generators built.
func stubGenerator(t *testing.T) *int {
	t.Helper()
	built := 0
	original := newGenerator
	newGenerator = func(context.Context, spec.BackendConfig) (generation.Generator, error) {
		built++
		return echoGenerator{}, nil
	}
	t.Cleanup(func() { newGenerator = original })
	return &built
}

type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, _, prompt string) (string, error) {
	return "echo: " + prompt, nil
}

// writeTestConfig writes a config pointing at host with results under dir.
func writeTestConfig(t *testing.T, dir, host string, extra string) string {
	t.Helper()
	path := filepath.Join(dir, ".stronger-llama", "config.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := fmt.Sprintf(`version: 1
backend:
  provider: ollama
  host: %q
  model: "test-model"
benchmark:
  output_dir: "results"
  questions:
    - "What causes climate change?"
    - "Explain how photosynthesis works"
%s`, host, extra)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func assertContainsInOrder(t *testing.T, output string, parts ...string) {
	t.Helper()
	offset := 0
	for _, part := range parts {
		idx := strings.Index(output[offset:], part)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d in output:\n%s", part, offset, output)
		}
		offset += idx + len(part)
	}
}
