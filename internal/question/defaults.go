package question

// DefaultPrompts is the built-in benchmark question set.
var DefaultPrompts = []string{
	"Explain how photosynthesis works",
	"What causes climate change?",
	"How does a computer's CPU work?",
	"Explain the theory of relativity",
	"What is the difference between RNA and DNA?",
}

// Default returns the built-in question set as a Spec.
func Default() Spec {
	return FromPrompts(DefaultPrompts)
}

// FromPrompts wraps plain question texts in a Spec.
func FromPrompts(prompts []string) Spec {
	questions := make([]Question, 0, len(prompts))
	for _, prompt := range prompts {
		questions = append(questions, Question{Prompt: prompt})
	}
	return Spec{Version: 1, Questions: questions}
}
