package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a question set.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question set validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// NormalizeSpec trims whitespace and validates a question set.
func NormalizeSpec(set Spec) (Spec, error) {
	collector := &issueCollector{}
	if set.Version == 0 {
		collector.add("version", "is required")
	} else if set.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", set.Version))
	}
	if len(set.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	seenIDs := map[string]struct{}{}
	normalized := make([]Question, len(set.Questions))
	for i, item := range set.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		item.ID = strings.TrimSpace(item.ID)
		if item.ID != "" {
			if _, exists := seenIDs[item.ID]; exists {
				collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", item.ID))
			} else {
				seenIDs[item.ID] = struct{}{}
			}
		}
		item.Prompt = strings.TrimSpace(item.Prompt)
		if item.Prompt == "" {
			collector.add(prefix+".question", "is required")
		}
		normalized[i] = item
	}
	set.Questions = normalized

	if err := collector.result(); err != nil {
		return Spec{}, err
	}
	return set, nil
}
