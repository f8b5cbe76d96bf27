package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/generation"
	"github.com/xichen1997/stronger-llama/internal/spec"
)

// newGenerator builds the generation backend. Tests replace it.
var newGenerator = func(ctx context.Context, backend spec.BackendConfig) (generation.Generator, error) {
	return generation.New(ctx, backend, nil)
}

// backendHost reports the host a backend talks to, for remediation output.
func backendHost(gen generation.Generator, backend spec.BackendConfig) string {
	if client, ok := gen.(*generation.OllamaClient); ok {
		return client.Host
	}
	return backend.Host
}

// printGenerationFailure explains a failed generation call and how to recover.
func printGenerationFailure(w io.Writer, err error, backend spec.BackendConfig, host string) {
	fmt.Fprintf(w, "Error: %v\n", err)
	switch {
	case errors.Is(err, generation.ErrTransportUnavailable):
		if strings.EqualFold(backend.Provider, generation.ProviderGemini) {
			fmt.Fprintln(w, "\nCould not reach the Gemini API. Check network access and GEMINI_API_KEY.")
			return
		}
		fmt.Fprintf(w, "\nCould not reach Ollama at %s. To fix:\n", host)
		fmt.Fprintln(w, "  1. Install Ollama from https://ollama.com/download")
		fmt.Fprintln(w, "  2. Start the server: ollama serve")
		fmt.Fprintf(w, "  3. Pull the model: ollama pull %s\n", backend.Model)
		fmt.Fprintln(w, "  4. Set OLLAMA_HOST or backend.host if the server runs elsewhere")
	case generation.IsModelNotFound(err):
		fmt.Fprintf(w, "\nModel %q is not available. Pull it with: ollama pull %s\n", backend.Model, backend.Model)
	}
}
