package generation

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Generator on top of the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// GeminiOptions configures a GeminiClient.
type GeminiOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGeminiClient builds a Gemini-backed generator. The API key defaults to GEMINI_API_KEY.
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(base, "/") + "/"}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Generate sends the prompt as a single user turn and returns the concatenated text parts.
func (c *GeminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if err := validateRequest(model, prompt); err != nil {
		return "", err
	}
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		if isTransportFailure(err) {
			return "", transportError(err)
		}
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: empty candidate list", ErrGenerationFailed)
	}
	return resp.Text(), nil
}
