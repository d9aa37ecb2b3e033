package sheetsclient

import (
	"fmt"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/jakechorley/duty-roster/pkg/core/report"
)

// PublishSchedule writes the grid into the month's tab ("Jadwal February 2026").
// A missing tab is created; an existing one is cleared and overwritten. Returns the tab title.
func (c *Client) PublishSchedule(spreadsheetID string, year int, month time.Month, grid *report.Grid) (string, error) {
	title := TabTitle(year, month)

	exists, err := c.sheetExists(spreadsheetID, title)
	if err != nil {
		return "", err
	}

	if exists {
		_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, fmt.Sprintf("'%s'", title), &sheets.ClearValuesRequest{}).
			Context(c.ctx).Do()
		if err != nil {
			return "", fmt.Errorf("failed to clear tab %q: %w", title, err)
		}
	} else {
		if _, err := c.CreateSheet(spreadsheetID, title); err != nil {
			return "", fmt.Errorf("failed to create tab: %w", err)
		}
	}

	_, err = c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		fmt.Sprintf("'%s'!A1", title),
		&sheets.ValueRange{Values: gridValues(grid)},
	).ValueInputOption("RAW").Context(c.ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to write schedule to tab %q: %w", title, err)
	}

	return title, nil
}

// TabTitle names the tab a month's schedule is published to
func TabTitle(year int, month time.Month) string {
	return fmt.Sprintf("Jadwal %s %d", month, year)
}

// gridValues converts the grid to the loosely typed rows the Sheets API expects
func gridValues(grid *report.Grid) [][]interface{} {
	text := grid.Values()
	rows := make([][]interface{}, len(text))
	for i, line := range text {
		rows[i] = make([]interface{}, len(line))
		for j, v := range line {
			rows[i][j] = v
		}
	}
	return rows
}
