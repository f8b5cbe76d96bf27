// Package report aggregates benchmark records and renders them as tables and charts.
package report

import (
	"math"

	"github.com/xichen1997/stronger-llama/internal/eval"
	"github.com/xichen1997/stronger-llama/internal/runner"
)

// StrategySummary aggregates the records of one strategy descriptor.
type StrategySummary struct {
	Strategy         string
	Cases            int
	Failures         int
	MeanResponseTime float64
	MinResponseTime  float64
	MaxResponseTime  float64
	MeanMetrics      eval.Metrics
	// ResponseTimes holds successful response times in record order.
	ResponseTimes []float64
}

// Succeeded returns the number of cases that produced output.
func (s StrategySummary) Succeeded() int {
	return s.Cases - s.Failures
}

// Summarize groups records by strategy in first-seen order. Failed records count
// toward Cases and Failures but not toward the means.
func Summarize(records []runner.Record) []StrategySummary {
	index := map[string]int{}
	var summaries []StrategySummary
	for _, record := range records {
		i, ok := index[record.Strategy]
		if !ok {
			i = len(summaries)
			index[record.Strategy] = i
			summaries = append(summaries, StrategySummary{
				Strategy:        record.Strategy,
				MinResponseTime: math.Inf(1),
				MaxResponseTime: math.Inf(-1),
			})
		}
		summary := &summaries[i]
		summary.Cases++
		if record.Failed() {
			summary.Failures++
			continue
		}
		summary.ResponseTimes = append(summary.ResponseTimes, record.ResponseTime)
		summary.MeanResponseTime += record.ResponseTime
		summary.MinResponseTime = math.Min(summary.MinResponseTime, record.ResponseTime)
		summary.MaxResponseTime = math.Max(summary.MaxResponseTime, record.ResponseTime)
		summary.MeanMetrics.Coherence += record.Coherence
		summary.MeanMetrics.ReasoningDepth += record.ReasoningDepth
		summary.MeanMetrics.SelfConsistency += record.SelfConsistency
	}
	for i := range summaries {
		summary := &summaries[i]
		n := float64(summary.Succeeded())
		if n == 0 {
			summary.MinResponseTime, summary.MaxResponseTime = 0, 0
			continue
		}
		summary.MeanResponseTime /= n
		summary.MeanMetrics.Coherence /= n
		summary.MeanMetrics.ReasoningDepth /= n
		summary.MeanMetrics.SelfConsistency /= n
	}
	return summaries
}
