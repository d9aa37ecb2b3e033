package xlsxclient

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/report"
)

const (
	// SheetName is the title of the report sheet
	SheetName = "Jadwal Bulanan"

	headerFill    = "BDD7EE"
	shortfallFill = "F8CBAD"
	labelWidth    = 18
	dateWidth     = 28
)

// WriteSchedule writes the schedule as a styled workbook, creating the output directory if needed.
// Understaffed cells are filled so shortfalls stand out in the printed report.
func WriteSchedule(path string, schedule *allocator.Schedule, opts report.Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	grid := report.Build(schedule, opts)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newReportStyles(f)
	if err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(grid.Headers) + 1)
	if err != nil {
		return fmt.Errorf("failed to compute last column: %w", err)
	}

	header := append([]interface{}{grid.Corner}, toInterfaces(grid.Headers)...)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", styles.header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for r, row := range grid.Rows {
		rowNum := r + 2

		label, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetCellValue(SheetName, label, row.Role); err != nil {
			return fmt.Errorf("failed to write role label: %w", err)
		}
		if err := f.SetCellStyle(SheetName, label, label, styles.label); err != nil {
			return fmt.Errorf("failed to style role label: %w", err)
		}

		for c, cell := range row.Cells {
			ref, _ := excelize.CoordinatesToCellName(c+2, rowNum)
			if err := f.SetCellValue(SheetName, ref, cell.Text()); err != nil {
				return fmt.Errorf("failed to write %s on %s: %w", row.Role, allocator.DateKey(schedule.Dates[c]), err)
			}

			style := styles.names
			if cell.Short {
				style = styles.shortfall
			}
			if err := f.SetCellStyle(SheetName, ref, ref, style); err != nil {
				return fmt.Errorf("failed to style cell %s: %w", ref, err)
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", labelWidth); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if len(grid.Headers) > 0 {
		if err := f.SetColWidth(SheetName, "B", lastCol, dateWidth); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

type reportStyles struct {
	header    int
	label     int
	names     int
	shortfall int
}

func newReportStyles(f *excelize.File) (*reportStyles, error) {
	thin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	wrapTop := &excelize.Alignment{WrapText: true, Vertical: "top"}

	header, err := f.NewStyle(&excelize.Style{
		Border:    thin,
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
		Alignment: &excelize.Alignment{WrapText: true, Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	label, err := f.NewStyle(&excelize.Style{Border: thin, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create label style: %w", err)
	}

	names, err := f.NewStyle(&excelize.Style{Border: thin, Alignment: wrapTop})
	if err != nil {
		return nil, fmt.Errorf("failed to create names style: %w", err)
	}

	shortfall, err := f.NewStyle(&excelize.Style{
		Border:    thin,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{shortfallFill}},
		Alignment: wrapTop,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shortfall style: %w", err)
	}

	return &reportStyles{header: header, label: label, names: names, shortfall: shortfall}, nil
}
