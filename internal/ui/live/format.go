package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/xichen1997/stronger-llama/internal/runner"
)

// formatIndex formats a case index.
func formatIndex(index int) string {
	return "#" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatQuestionText collapses whitespace and truncates to limit runes.
func formatQuestionText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if limit <= 3 || len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row CaseRow, noColor bool) string {
	label := string(row.Status)
	if row.Status == runner.CaseFailed && row.Error != "" {
		label += ": " + formatQuestionText(row.Error, 40)
	}
	if noColor {
		return label
	}
	return statusStyle(row.Status).Render(label)
}

// formatRowDuration returns elapsed time for a running or finished row.
func formatRowDuration(row CaseRow, now time.Time) string {
	if isTerminalStatus(row.Status) {
		return formatDuration(row.Elapsed)
	}
	if row.Status == runner.CaseRunning && !row.StartedAt.IsZero() {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.CaseEventType) lipgloss.Style {
	color := lipgloss.Color("246")
	switch status {
	case runner.CaseDone:
		color = lipgloss.Color("42")
	case runner.CaseFailed:
		color = lipgloss.Color("196")
	case runner.CaseRunning:
		color = lipgloss.Color("33")
	}
	return lipgloss.NewStyle().Foreground(color)
}
