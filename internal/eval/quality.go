// Package eval scores enhancement results.
package eval

import "github.com/xichen1997/stronger-llama/internal/enhance"

// Metric names in report order.
const (
	MetricCoherence       = "coherence"
	MetricReasoningDepth  = "reasoning_depth"
	MetricSelfConsistency = "self_consistency"
)

// MetricNames lists every metric in report order.
var MetricNames = []string{MetricCoherence, MetricReasoningDepth, MetricSelfConsistency}

// Metrics holds the quality scores for one result.
type Metrics struct {
	Coherence       float64 `json:"coherence"`
	ReasoningDepth  float64 `json:"reasoning_depth"`
	SelfConsistency float64 `json:"self_consistency"`
}

// NamedMetric is a single metric value paired with its name.
type NamedMetric struct {
	Name  string
	Value float64
}

// Named returns the metrics in MetricNames order.
func (m Metrics) Named() []NamedMetric {
	return []NamedMetric{
		{Name: MetricCoherence, Value: m.Coherence},
		{Name: MetricReasoningDepth, Value: m.ReasoningDepth},
		{Name: MetricSelfConsistency, Value: m.SelfConsistency},
	}
}

// Scorer computes quality metrics for a stage result.
type Scorer interface {
	Score(result enhance.StageResult) Metrics
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(result enhance.StageResult) Metrics

// Score calls f.
func (f ScorerFunc) Score(result enhance.StageResult) Metrics {
	return f(result)
}

// Placeholder scores every result as zero. It accepts any result shape.
type Placeholder struct{}

// Score returns zero-valued metrics.
func (Placeholder) Score(enhance.StageResult) Metrics {
	return Metrics{}
}

// Evaluate scores result with the placeholder scorer.
func Evaluate(result enhance.StageResult) Metrics {
	return Placeholder{}.Score(result)
}
