package allocator

import (
	"errors"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// DateLayout is the key format used for dates in a Schedule
const DateLayout = "2006-01-02"

var (
	// ErrInputEmpty is returned when the roster holds no usable person records
	ErrInputEmpty = errors.New("roster has no usable person records")

	// ErrConfigurationInvalid is returned when options or the requirement table are malformed
	ErrConfigurationInvalid = errors.New("invalid schedule configuration")
)

// NameSet is a set of person names
type NameSet map[string]bool

// Union returns a new set containing the members of every given set
func Union(sets ...NameSet) NameSet {
	out := NameSet{}
	for _, s := range sets {
		for name, ok := range s {
			if ok {
				out[name] = true
			}
		}
	}
	return out
}

// Shortfall records a role that received fewer names than required on a date.
// This is a legitimate outcome when the eligible population is too small, not an error.
type Shortfall struct {
	Date     string `json:"date"`
	Role     string `json:"role"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
}

// Relaxation records that a role needed a relaxed selection step to be filled
type Relaxation struct {
	Date  string   `json:"date"`
	Role  string   `json:"role"`
	Step  string   `json:"step"`
	Names []string `json:"names"`
}

// Schedule is the output of a run: every target date with its role assignments
type Schedule struct {
	// SeedKey identifies the month ("2006-01"); it never influences candidate order
	SeedKey string

	Year    int
	Month   time.Month
	Weekday time.Weekday

	// Dates in ascending order
	Dates []time.Time

	// Requirements actually resolved in this run, in processing order
	Requirements []model.Requirement

	// Assignments maps date key (DateLayout) -> role -> names in selection order
	Assignments map[string]map[string][]string

	Shortfalls  []Shortfall
	Relaxations []Relaxation
}

// DateKey formats a date the way Schedule keys its assignments
func DateKey(date time.Time) string {
	return date.Format(DateLayout)
}

// Roles returns the resolved role names in processing order
func (s *Schedule) Roles() []string {
	roles := make([]string, len(s.Requirements))
	for i, req := range s.Requirements {
		roles[i] = req.Role
	}
	return roles
}

// For returns the role assignments for a date (nil if the date is not part of the schedule)
func (s *Schedule) For(date time.Time) map[string][]string {
	return s.Assignments[DateKey(date)]
}

// Names returns the names assigned to a role on a date
func (s *Schedule) Names(date time.Time, role string) []string {
	return s.For(date)[role]
}

// Requirement returns the resolved requirement for a role
func (s *Schedule) Requirement(role string) (model.Requirement, bool) {
	for _, req := range s.Requirements {
		if req.Role == role {
			return req, true
		}
	}
	return model.Requirement{}, false
}

// IsShort reports whether the role on the date is understaffed
func (s *Schedule) IsShort(date time.Time, role string) bool {
	key := DateKey(date)
	for _, sf := range s.Shortfalls {
		if sf.Date == key && sf.Role == role {
			return true
		}
	}
	return false
}
