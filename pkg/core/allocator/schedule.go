package allocator

import (
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// BuildSchedule assigns people to every required role on every date of the month.
//
// Roles in the requirement table that are missing from roles are skipped. Dates are resolved in
// ascending order because each date's non-privileged assignments feed the next date's exclusions.
// Understaffed roles are reported in Schedule.Shortfalls rather than as errors.
func BuildSchedule(people []model.Person, roles []string, year int, month time.Month, opts Options) (*Schedule, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d out of range", ErrConfigurationInvalid, month)
	}

	roster := NormalizeRoster(people)
	if len(roster) == 0 {
		return nil, ErrInputEmpty
	}

	requirements := FilterRequirements(opts.Requirements, roles)

	e := &engine{
		opts:   opts,
		pools:  BuildPools(roster, roles),
		people: make(map[string]model.Person, len(roster)),
	}
	for _, person := range roster {
		e.people[person.Name] = person
	}

	schedule := &Schedule{
		SeedKey:      SeedKey(year, month),
		Year:         year,
		Month:        month,
		Weekday:      opts.Weekday,
		Dates:        DatesInMonth(year, month, opts.Weekday),
		Requirements: requirements,
		Assignments:  make(map[string]map[string][]string),
		Shortfalls:   []Shortfall{},
		Relaxations:  []Relaxation{},
	}

	previous := NameSet{}
	for _, date := range schedule.Dates {
		state := newDateState(DateKey(date), previous)
		day := make(map[string][]string, len(requirements))

		for _, req := range requirements {
			result := e.assignRole(req, state)
			e.record(result.names, state)

			day[req.Role] = result.names
			schedule.Relaxations = append(schedule.Relaxations, result.relaxations...)
			if len(result.names) < req.Headcount {
				schedule.Shortfalls = append(schedule.Shortfalls, Shortfall{
					Date:     state.key,
					Role:     req.Role,
					Required: req.Headcount,
					Assigned: len(result.names),
				})
			}
		}

		schedule.Assignments[state.key] = day
		previous = state.nextPrevious
	}

	return schedule, nil
}

// SeedKey returns the month identifier recorded on a schedule
func SeedKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// NormalizeRoster trims names, drops blank names and keeps the first record of any duplicate.
// Names differing only in letter case are duplicates.
func NormalizeRoster(people []model.Person) []model.Person {
	seen := make(map[string]bool, len(people))
	roster := make([]model.Person, 0, len(people))

	for _, person := range people {
		name := model.NormalizeName(person.Name)
		key := model.NameKey(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		person.Name = name
		roster = append(roster, person)
	}

	return roster
}
