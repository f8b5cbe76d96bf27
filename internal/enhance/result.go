package enhance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Stage names used as StageResult keys.
const (
	StageChainOfThought = "chain_of_thought"
	StageReflection     = "reflection"
	StageReasoningQuery = "reasoning_query"
)

// Stage is one prompt/response exchange.
type Stage struct {
	Name   string
	Output string
}

// StageResult holds stage outputs in execution order. The zero value is empty.
type StageResult struct {
	stages []Stage
}

// NewStageResult builds a result from stages in the given order.
func NewStageResult(stages ...Stage) StageResult {
	var result StageResult
	for _, stage := range stages {
		result = result.With(stage.Name, stage.Output)
	}
	return result
}

// With returns a copy of the result with the stage appended, or replaced in place if present.
func (r StageResult) With(name, output string) StageResult {
	stages := make([]Stage, len(r.stages), len(r.stages)+1)
	copy(stages, r.stages)
	for i := range stages {
		if stages[i].Name == name {
			stages[i].Output = output
			return StageResult{stages: stages}
		}
	}
	return StageResult{stages: append(stages, Stage{Name: name, Output: output})}
}

// Len returns the number of stages.
func (r StageResult) Len() int {
	return len(r.stages)
}

// Get returns the output recorded for a stage.
func (r StageResult) Get(name string) (string, bool) {
	for _, stage := range r.stages {
		if stage.Name == name {
			return stage.Output, true
		}
	}
	return "", false
}

// Names returns stage names in execution order.
func (r StageResult) Names() []string {
	names := make([]string, 0, len(r.stages))
	for _, stage := range r.stages {
		names = append(names, stage.Name)
	}
	return names
}

// Stages returns a copy of the stages in execution order.
func (r StageResult) Stages() []Stage {
	out := make([]Stage, len(r.stages))
	copy(out, r.stages)
	return out
}

// Equal reports whether both results hold the same stages in the same order.
func (r StageResult) Equal(other StageResult) bool {
	return slices.Equal(r.stages, other.stages)
}

// MarshalJSON encodes the result as an object whose keys keep execution order.
func (r StageResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, stage := range r.stages {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(stage.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(stage.Output)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of stage outputs, preserving key order.
func (r *StageResult) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = StageResult{}
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("decode stage result: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode stage result: expected object")
	}
	var result StageResult
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("decode stage result: %w", err)
		}
		key, ok := keyToken.(string)
		if !ok {
			return fmt.Errorf("decode stage result: expected string key")
		}
		var output string
		if err := decoder.Decode(&output); err != nil {
			return fmt.Errorf("decode stage %q: %w", key, err)
		}
		result = result.With(key, output)
	}
	if _, err := decoder.Token(); err != nil {
		return fmt.Errorf("decode stage result: %w", err)
	}
	*r = result
	return nil
}
