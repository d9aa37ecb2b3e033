// Package render draws schedules and listings as terminal tables
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/report"
)

// ShortMarker is appended to understaffed cells
const ShortMarker = "(short)"

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	roleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	shortStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)
)

// ScheduleTable renders a schedule with the same layout as the xlsx report
func ScheduleTable(schedule *allocator.Schedule, opts report.Options) string {
	grid := report.Build(schedule, opts)

	rows := make([][]string, len(grid.Rows))
	for i, row := range grid.Rows {
		line := make([]string, 0, len(row.Cells)+1)
		line = append(line, row.Role)
		for _, cell := range row.Cells {
			text := cell.Text()
			if cell.Short {
				if text == "" {
					text = ShortMarker
				} else {
					text += "\n" + ShortMarker
				}
			}
			line = append(line, text)
		}
		rows[i] = line
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		BorderRow(true).
		Headers(append([]string{grid.Corner}, grid.Headers...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return roleStyle
			case grid.Rows[row].Cells[col-1].Short:
				return shortStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

// Table renders a plain listing with a header row
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}
