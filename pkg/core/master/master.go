package master

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Accepted header labels for the name and privileged-category columns
var (
	nameHeaders       = []string{"nama", "name"}
	privilegedHeaders = []string{"penatua", "privileged", "elder"}

	// row numbering columns, never roles
	ignoredHeaders = []string{"no", "no.", "#"}
)

// truthy cell values marking a flag as set
var truthy = []string{"x", "1", "true", "ya", "yes", "y"}

// IsTruthy reports whether a cell marks a flag as set
func IsTruthy(cell string) bool {
	return slices.Contains(truthy, strings.ToLower(strings.TrimSpace(cell)))
}

// Parse converts a master table into a roster.
//
// The first row is the header and must contain a name column and a privileged column. Every
// other non-empty column except a "No" numbering column is a role. When the row under the header
// has an empty name cell and at least one role cell that is not a flag, it is treated as a label
// row and supplies the role names; otherwise role names come from the header. Rows with a blank
// name are skipped.
func Parse(rows [][]string) (*model.Roster, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row found")
	}

	header := rows[0]
	nameCol := findColumn(header, nameHeaders)
	if nameCol == -1 {
		return nil, fmt.Errorf("missing name column in header (expected one of %v)", nameHeaders)
	}
	privilegedCol := findColumn(header, privilegedHeaders)
	if privilegedCol == -1 {
		return nil, fmt.Errorf("missing privileged column in header (expected one of %v)", privilegedHeaders)
	}

	labels := header
	dataStart := 1
	if len(rows) > 1 && isLabelRow(header, rows[1], nameCol, privilegedCol) {
		labels = rows[1]
		dataStart = 2
	}

	// Role column index -> role name, in column order
	var roleCols []int
	roleNames := make(map[int]string)
	var roles []string
	for i := 0; i < max(len(header), len(labels)); i++ {
		if i == nameCol || i == privilegedCol || isIgnored(cell(header, i)) {
			continue
		}
		label := strings.TrimSpace(cell(labels, i))
		if label == "" || slices.Contains(roles, label) {
			continue
		}
		roleCols = append(roleCols, i)
		roleNames[i] = label
		roles = append(roles, label)
	}

	people := make([]model.Person, 0, len(rows)-dataStart)
	for _, row := range rows[min(dataStart, len(rows)):] {
		name := model.NormalizeName(cell(row, nameCol))
		if name == "" {
			continue
		}

		eligibility := make(map[string]bool, len(roleCols))
		for _, col := range roleCols {
			eligibility[roleNames[col]] = IsTruthy(cell(row, col))
		}

		people = append(people, model.Person{
			Name:        name,
			Privileged:  IsTruthy(cell(row, privilegedCol)),
			Eligibility: eligibility,
		})
	}

	return &model.Roster{People: people, Roles: roles}, nil
}

// FromValues converts loosely typed spreadsheet values into strings
func FromValues(raw [][]interface{}) [][]string {
	rows := make([][]string, len(raw))
	for i, row := range raw {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			if s, ok := v.(string); ok {
				rows[i][j] = s
				continue
			}
			rows[i][j] = fmt.Sprint(v)
		}
	}
	return rows
}

func findColumn(header []string, candidates []string) int {
	for i, c := range header {
		if slices.Contains(candidates, strings.ToLower(strings.TrimSpace(c))) {
			return i
		}
	}
	return -1
}

// isLabelRow reports whether row carries role labels rather than flags for an unnamed person
func isLabelRow(header, row []string, nameCol, privilegedCol int) bool {
	if strings.TrimSpace(cell(row, nameCol)) != "" {
		return false
	}
	for i := range row {
		if i == nameCol || i == privilegedCol || isIgnored(cell(header, i)) {
			continue
		}
		if value := strings.TrimSpace(row[i]); value != "" && !IsTruthy(value) {
			return true
		}
	}
	return false
}

func isIgnored(label string) bool {
	return slices.Contains(ignoredHeaders, strings.ToLower(strings.TrimSpace(label)))
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}
