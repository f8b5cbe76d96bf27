package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	indexColumnWidth    = 5
	strategyColumnWidth = 26
	statusColumnWidth   = 30
	elapsedColumnWidth  = 9
	minQuestionWidth    = 20
)

// defaultColumns returns columns sized for an 120-column terminal.
func defaultColumns() []table.Column {
	return columnsForWidth(120)
}

// columnsForWidth gives the question column whatever the fixed columns leave.
func columnsForWidth(width int) []table.Column {
	questionWidth := width - indexColumnWidth - strategyColumnWidth - statusColumnWidth - elapsedColumnWidth - 10
	if questionWidth < minQuestionWidth {
		questionWidth = minQuestionWidth
	}
	return []table.Column{
		{Title: "Case", Width: indexColumnWidth},
		{Title: "Question", Width: questionWidth},
		{Title: "Strategy", Width: strategyColumnWidth},
		{Title: "Status", Width: statusColumnWidth},
		{Title: "Elapsed", Width: elapsedColumnWidth},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle()
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, questionWidth int, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatQuestionText(row.Question, questionWidth),
			row.Strategy,
			formatStatus(row, noColor),
			formatRowDuration(row, now),
		})
	}
	return rows
}
