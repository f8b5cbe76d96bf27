package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrTransportUnavailable reports that the generation service could not be reached.
var ErrTransportUnavailable = errors.New("generation service unreachable")

// ErrGenerationFailed reports that the service was reached but produced no usable text.
var ErrGenerationFailed = errors.New("generation failed")

// Generator sends a prompt to a model and returns the raw generated text.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// HTTPDoer abstracts HTTP clients used by generators.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GenerationError describes a non-success response from the generation service.
type GenerationError struct {
	StatusCode int
	Message    string
}

// Error returns the service message with its HTTP status.
func (e *GenerationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generation failed: status %d", e.StatusCode)
	}
	return fmt.Sprintf("generation failed: status %d: %s", e.StatusCode, e.Message)
}

// Is matches ErrGenerationFailed.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// IsModelNotFound reports whether err is a 404 from the generation service.
func IsModelNotFound(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr) && genErr.StatusCode == http.StatusNotFound
}

// transportError wraps a network failure so it matches ErrTransportUnavailable.
func transportError(err error) error {
	return fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
}

// isTransportFailure reports whether err came from dialing or talking to the host.
func isTransportFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func validateRequest(model, prompt string) error {
	if strings.TrimSpace(model) == "" {
		return fmt.Errorf("%w: model is required", ErrGenerationFailed)
	}
	if strings.TrimSpace(prompt) == "" {
		return fmt.Errorf("%w: prompt is required", ErrGenerationFailed)
	}
	return nil
}
