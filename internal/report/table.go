package report

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteSummaryTable prints one aligned row per strategy.
func WriteSummaryTable(w io.Writer, summaries []StrategySummary) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "STRATEGY\tCASES\tFAILED\tMEAN(s)\tMIN(s)\tMAX(s)\tCOHERENCE\tREASONING_DEPTH\tSELF_CONSISTENCY")
	for _, summary := range summaries {
		fmt.Fprintf(writer, "%s\t%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			summary.Strategy,
			summary.Cases,
			summary.Failures,
			summary.MeanResponseTime,
			summary.MinResponseTime,
			summary.MaxResponseTime,
			summary.MeanMetrics.Coherence,
			summary.MeanMetrics.ReasoningDepth,
			summary.MeanMetrics.SelfConsistency,
		)
	}
	return writer.Flush()
}

// StrategyDelta compares one strategy across two runs.
type StrategyDelta struct {
	Strategy string
	Base     *StrategySummary
	Head     *StrategySummary
}

// MeanResponseTimeDelta returns head minus base, or false when either side is missing.
func (d StrategyDelta) MeanResponseTimeDelta() (float64, bool) {
	if d.Base == nil || d.Head == nil {
		return 0, false
	}
	return d.Head.MeanResponseTime - d.Base.MeanResponseTime, true
}

// Compare pairs strategies of two runs, base order first, then head-only strategies.
func Compare(base, head []StrategySummary) []StrategyDelta {
	headIndex := map[string]int{}
	for i, summary := range head {
		headIndex[summary.Strategy] = i
	}
	seen := map[string]struct{}{}
	deltas := make([]StrategyDelta, 0, len(base)+len(head))
	for i := range base {
		delta := StrategyDelta{Strategy: base[i].Strategy, Base: &base[i]}
		if j, ok := headIndex[base[i].Strategy]; ok {
			delta.Head = &head[j]
		}
		seen[base[i].Strategy] = struct{}{}
		deltas = append(deltas, delta)
	}
	for i := range head {
		if _, ok := seen[head[i].Strategy]; ok {
			continue
		}
		deltas = append(deltas, StrategyDelta{Strategy: head[i].Strategy, Head: &head[i]})
	}
	return deltas
}

// WriteCompareTable prints base/head mean response times per strategy.
func WriteCompareTable(w io.Writer, deltas []StrategyDelta) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "STRATEGY\tBASE MEAN(s)\tHEAD MEAN(s)\tDELTA(s)")
	for _, delta := range deltas {
		fmt.Fprintf(writer, "%s\t%s\t%s\t", delta.Strategy, meanOrDash(delta.Base), meanOrDash(delta.Head))
		if change, ok := delta.MeanResponseTimeDelta(); ok {
			fmt.Fprintf(writer, "%+.3f\n", change)
		} else {
			fmt.Fprintln(writer, "-")
		}
	}
	return writer.Flush()
}

func meanOrDash(summary *StrategySummary) string {
	if summary == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", summary.MeanResponseTime)
}
