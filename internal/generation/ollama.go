package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// DefaultOllamaHost is the address a local `ollama serve` listens on.
const DefaultOllamaHost = "http://localhost:11434"

// OllamaClient implements Generator for the Ollama generate API.
type OllamaClient struct {
	Host   string
	Client HTTPDoer
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
	Error    string  `json:"error,omitempty"`
}

// NewOllamaClient constructs a client for host, falling back to OLLAMA_HOST and then the default.
func NewOllamaClient(host string, client HTTPDoer) *OllamaClient {
	if strings.TrimSpace(host) == "" {
		host = strings.TrimSpace(os.Getenv("OLLAMA_HOST"))
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaClient{
		Host:   normalizeHost(host),
		Client: client,
	}
}

// normalizeHost adds a scheme and trims trailing slashes.
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return DefaultOllamaHost
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return strings.TrimRight(host, "/")
}

// Generate sends a single non-streaming generate request and returns the response text.
func (c *OllamaClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if err := validateRequest(model, prompt); err != nil {
		return "", err
	}
	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:  model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %w", ErrGenerationFailed, err)
	}

	endpoint := c.Host + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		if isTransportFailure(err) {
			return "", transportError(err)
		}
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTransportFailure(err) {
			return "", transportError(err)
		}
		return "", fmt.Errorf("%w: read response: %w", ErrGenerationFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &GenerationError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var decoded ollamaGenerateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: parse response: %w", ErrGenerationFailed, err)
	}
	if decoded.Error != "" {
		return "", &GenerationError{StatusCode: resp.StatusCode, Message: decoded.Error}
	}
	if decoded.Response == nil {
		return "", fmt.Errorf("%w: response field missing", ErrGenerationFailed)
	}
	return *decoded.Response, nil
}

// errorMessage extracts the `error` field from an Ollama error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
