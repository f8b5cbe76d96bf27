package enhance

import (
	"errors"
	"fmt"

	"github.com/xichen1997/stronger-llama/internal/generation"
)

// ErrPipelineFailure marks any stage failure that is not a transport outage.
var ErrPipelineFailure = errors.New("pipeline failure")

// StageError reports the stage that failed along with the stages completed before it.
type StageError struct {
	Stage   string
	Partial StageResult
	Err     error
}

// Error returns the failing stage and its cause.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

// Unwrap exposes the cause for errors.Is/As.
func (e *StageError) Unwrap() error {
	return e.Err
}

// PartialResult returns the stages completed before a StageError, if err carries one.
func PartialResult(err error) (StageResult, bool) {
	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		return StageResult{}, false
	}
	return stageErr.Partial, true
}

// stageFailure classifies a generator error. Transport outages keep their kind as-is.
func stageFailure(stage string, partial StageResult, err error) error {
	if errors.Is(err, generation.ErrTransportUnavailable) {
		return &StageError{Stage: stage, Partial: partial, Err: err}
	}
	return &StageError{Stage: stage, Partial: partial, Err: fmt.Errorf("%w: %w", ErrPipelineFailure, err)}
}
