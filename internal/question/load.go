package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xichen1997/stronger-llama/internal/spec"
)

// LoadSpec reads, parses, and validates a question-set file.
func LoadSpec(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("read question set: %w", err)
	}
	parsed, err := parseSpec(data, path)
	if err != nil {
		return Spec{}, err
	}
	return NormalizeSpec(parsed)
}

func parseSpec(data []byte, path string) (Spec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSONSpec(data)
	case ".txt":
		return parseTextSpec(data), nil
	default:
		return parseYAMLSpec(data)
	}
}

func parseJSONSpec(data []byte) (Spec, error) {
	var parsed Spec
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&parsed); err != nil {
		return Spec{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Spec{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Spec{}, fmt.Errorf("parse json: %w", err)
	}
	return parsed, nil
}

func parseYAMLSpec(data []byte) (Spec, error) {
	var parsed Spec
	if err := spec.DecodeStrictYAML(data, &parsed); err != nil {
		return Spec{}, fmt.Errorf("parse yaml: %w", err)
	}
	return parsed, nil
}

// parseTextSpec treats each non-blank line as one question.
func parseTextSpec(data []byte) Spec {
	var prompts []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			prompts = append(prompts, trimmed)
		}
	}
	return FromPrompts(prompts)
}
