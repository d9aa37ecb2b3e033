package sheetsclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/duty-roster/pkg/core/report"
)

func TestTabTitle(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2026, time.February, "Jadwal February 2026"},
		{2025, time.December, "Jadwal December 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, TabTitle(tt.year, tt.month))
		})
	}
}

func TestGridValues(t *testing.T) {
	grid := &report.Grid{
		Corner:  "WAKTU",
		Headers: []string{"MINGGU, 01 FEBRUARY 2026"},
		Rows: []report.Row{
			{Role: "Lektor", Cells: []report.Cell{{Names: []string{"Ani", "Budi"}}}},
			{Role: "DP/PA", Cells: []report.Cell{{Short: true}}},
		},
	}

	assert.Equal(t, [][]interface{}{
		{"WAKTU", "MINGGU, 01 FEBRUARY 2026"},
		{"Lektor", "Ani\nBudi"},
		{"DP/PA", ""},
	}, gridValues(grid))
}
