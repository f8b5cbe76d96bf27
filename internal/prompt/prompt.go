// Package prompt renders the fixed templates used by each enhancement stage.
package prompt

import "strings"

const chainOfThoughtInstructions = `Important: Base your response ONLY on verifiable information and logical reasoning. Let's solve this carefully, showing our reasoning for each step:

1) First, let's identify:
- What we know for certain
- What assumptions we're making
- What we need to determine
- What logical steps connect our facts to conclusions

2) Let's break this down systematically:
- Key components of the problem
- Relevant relationships or patterns
- Potential approaches
- Limitations of each approach

3) For each step of our solution:
- Explain the reasoning
- Note confidence level (High/Medium/Low)
- Highlight any uncertainties
- Provide evidence or logical justification

4) Finally, let's:
- Combine our findings
- Verify our logic
- Address any uncertainties
- State our conclusion with appropriate confidence

If you're unsure about something, explicitly state that. Please show your complete reasoning process and clearly mark any assumptions or uncertainties.`

const reflectionInstructions = `Let's reflect on this answer:
1) What assumptions did we make?
2) What could be potential weaknesses in our reasoning?
3) Are there alternative perspectives we haven't considered?
4) How confident are we in each part of our answer?

Based on this reflection, please provide:
1) A critique of the initial response
2) Suggested improvements
3) A revised answer if necessary`

// ChainOfThought asks the model for explicit, confidence-labelled stepwise reasoning.
func ChainOfThought(question string) string {
	var builder strings.Builder
	builder.WriteString("Question: ")
	builder.WriteString(question)
	builder.WriteString("\n")
	builder.WriteString(chainOfThoughtInstructions)
	return builder.String()
}

// Reflection asks the model to critique and revise a prior response.
func Reflection(priorResponse string) string {
	var builder strings.Builder
	builder.WriteString("Given this initial response:\n")
	builder.WriteString(priorResponse)
	builder.WriteString("\n\n")
	builder.WriteString(reflectionInstructions)
	return builder.String()
}

// ReasoningQuery asks for a short answer synthesized from the question and both prior stages.
func ReasoningQuery(question, chainOfThought, reflection string) string {
	var builder strings.Builder
	builder.WriteString("Based on the question: ")
	builder.WriteString(question)
	builder.WriteString(", the chain-of-thought output and the reflection below, generate a short answer.\n\n")
	builder.WriteString("COT output:\n")
	builder.WriteString(chainOfThought)
	builder.WriteString("\n\nReflection output:\n")
	builder.WriteString(reflection)
	builder.WriteString("\n")
	return builder.String()
}
