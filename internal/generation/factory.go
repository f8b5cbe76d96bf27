package generation

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/spec"
)

// Provider names accepted in backend configuration.
const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

// New builds the generator selected by the backend configuration.
func New(ctx context.Context, backend spec.BackendConfig, client *http.Client) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(backend.Provider))
	switch provider {
	case "", ProviderOllama:
		var doer HTTPDoer
		if client != nil {
			doer = client
		}
		return NewOllamaClient(backend.Host, doer), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, GeminiOptions{BaseURL: backend.Host, HTTPClient: client})
	default:
		return nil, fmt.Errorf("unsupported provider %q", backend.Provider)
	}
}
