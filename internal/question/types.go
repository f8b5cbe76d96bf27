package question

// Spec defines the question-set schema loaded from JSON or YAML.
type Spec struct {
	Version   int        `json:"version" yaml:"version"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Question is a single benchmark question.
type Question struct {
	ID     string `json:"id,omitempty" yaml:"id"`
	Prompt string `json:"question" yaml:"question"`
}

// Prompts returns the question texts in file order.
func (s Spec) Prompts() []string {
	out := make([]string, 0, len(s.Questions))
	for _, q := range s.Questions {
		out = append(out, q.Prompt)
	}
	return out
}
