package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// GenerateRequest is the body the fake server decodes from /api/generate.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// OllamaServer is an in-process stand-in for the Ollama generate endpoint.
// By default the n-th call (1-based) answers "answer n".
type OllamaServer struct {
	URL string

	server   *httptest.Server
	mu       sync.Mutex
	requests []GenerateRequest
	status   int
	reply    func(call int, req GenerateRequest) string
}

// NewOllamaServer starts a fake server closed at test cleanup.
func NewOllamaServer(t testing.TB) *OllamaServer {
	t.Helper()
	fake := &OllamaServer{}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.handle))
	fake.URL = fake.server.URL
	t.Cleanup(fake.server.Close)
	return fake
}

// Close stops the server; later requests fail with connection refused.
func (s *OllamaServer) Close() {
	s.server.Close()
}

// FailWith makes every request answer status with an Ollama-style error body.
// Zero restores normal replies.
func (s *OllamaServer) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// ReplyWith overrides the generated text.
func (s *OllamaServer) ReplyWith(reply func(call int, req GenerateRequest) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reply = reply
}

// Requests returns a copy of the decoded requests in arrival order.
func (s *OllamaServer) Requests() []GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GenerateRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// Calls returns the number of generate requests received.
func (s *OllamaServer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *OllamaServer) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost || r.URL.Path != "/api/generate" {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":"not found"}`)
		return
	}
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `{"error":%q}`, err.Error())
		return
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	call := len(s.requests)
	status := s.status
	reply := s.reply
	s.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":"model '%s' not found, try pulling it first"}`, req.Model)
		return
	}
	text := fmt.Sprintf("answer %d", call)
	if reply != nil {
		text = reply(call, req)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":    req.Model,
		"response": text,
		"done":     true,
	})
}
