package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
)

// DefaultServiceTime is printed under every date heading
const DefaultServiceTime = "Pkl. 07.00 Wib,"

// DefaultDisplayOrder is the row order of the report
var DefaultDisplayOrder = []string{
	"DP/PA", "W/PB", "Persembahan", "Kolektan", "P. Jemaat",
	"Lektor", "Prokantor", "Pemusik", "Multimedia",
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "MINGGU",
	time.Monday:    "SENIN",
	time.Tuesday:   "SELASA",
	time.Wednesday: "RABU",
	time.Thursday:  "KAMIS",
	time.Friday:    "JUMAT",
	time.Saturday:  "SABTU",
}

// Options controls the report layout
type Options struct {
	ServiceTime  string
	DisplayOrder []string
}

// Cell is one role on one date
type Cell struct {
	Names []string
	Short bool
}

// Text returns the names one per line
func (c Cell) Text() string {
	return strings.Join(c.Names, "\n")
}

// Row is one role across every date
type Row struct {
	Role  string
	Cells []Cell
}

// Grid is a schedule laid out as a table: a corner label, one column per date, one row per role
type Grid struct {
	Corner  string
	Headers []string
	Rows    []Row
}

// Build lays a schedule out as a grid
func Build(schedule *allocator.Schedule, opts Options) *Grid {
	grid := &Grid{Corner: "WAKTU", Headers: make([]string, len(schedule.Dates))}
	for i, date := range schedule.Dates {
		grid.Headers[i] = DateHeader(date, opts.ServiceTime)
	}

	for _, role := range Roles(schedule, opts.DisplayOrder) {
		row := Row{Role: role, Cells: make([]Cell, len(schedule.Dates))}
		for i, date := range schedule.Dates {
			row.Cells[i] = Cell{
				Names: schedule.Names(date, role),
				Short: schedule.IsShort(date, role),
			}
		}
		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// Values returns the grid as text rows, header first
func (g *Grid) Values() [][]string {
	values := make([][]string, 0, len(g.Rows)+1)
	values = append(values, append([]string{g.Corner}, g.Headers...))
	for _, row := range g.Rows {
		line := make([]string, 0, len(row.Cells)+1)
		line = append(line, row.Role)
		for _, cell := range row.Cells {
			line = append(line, cell.Text())
		}
		values = append(values, line)
	}
	return values
}

// DateHeader formats a date column heading, e.g. "MINGGU, 01 FEBRUARY 2026\nPkl. 07.00 Wib,"
func DateHeader(date time.Time, serviceTime string) string {
	header := fmt.Sprintf("%s, %02d %s", weekdayNames[date.Weekday()], date.Day(),
		strings.ToUpper(date.Format("January 2006")))
	if serviceTime == "" {
		return header
	}
	return header + "\n" + serviceTime
}

// Roles returns the roles to print: display order first, then any remaining scheduled roles
func Roles(schedule *allocator.Schedule, displayOrder []string) []string {
	if len(displayOrder) == 0 {
		displayOrder = DefaultDisplayOrder
	}

	scheduled := schedule.Roles()
	roles := make([]string, 0, len(scheduled))
	for _, role := range displayOrder {
		if slices.Contains(scheduled, role) && !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	for _, role := range scheduled {
		if !slices.Contains(roles, role) {
			roles = append(roles, role)
		}
	}
	return roles
}
