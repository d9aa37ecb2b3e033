package allocator

import (
	"fmt"
	"slices"
)

// Check names reported by Validate
const (
	CheckUnderstaffed   = "Understaffed"
	CheckSameDateRepeat = "SameDateRepeat"
)

// ScheduleValidationError describes a degraded outcome found in a finished schedule
type ScheduleValidationError struct {
	Date        string
	Role        string
	CheckName   string
	Description string
}

// Validate re-checks a finished schedule.
//
// It reports:
//   - roles holding fewer names than their headcount
//   - people holding more than one role on the same date
//
// Both can legitimately occur when the eligible pool is too small. An empty slice means every
// role is fully staffed by distinct people on every date.
func Validate(s *Schedule) []ScheduleValidationError {
	var errors []ScheduleValidationError

	for _, date := range s.Dates {
		key := DateKey(date)
		day := s.Assignments[key]

		// First role each name was seen in on this date
		firstRole := make(map[string]string)

		for _, req := range s.Requirements {
			names := day[req.Role]

			if len(names) < req.Headcount {
				errors = append(errors, ScheduleValidationError{
					Date:        key,
					Role:        req.Role,
					CheckName:   CheckUnderstaffed,
					Description: fmt.Sprintf("Role '%s' has %d of %d required people", req.Role, len(names), req.Headcount),
				})
			}

			for i, name := range names {
				if slices.Contains(names[:i], name) {
					errors = append(errors, ScheduleValidationError{
						Date:        key,
						Role:        req.Role,
						CheckName:   CheckSameDateRepeat,
						Description: fmt.Sprintf("'%s' is listed twice for role '%s'", name, req.Role),
					})
					continue
				}

				if other, ok := firstRole[name]; ok {
					errors = append(errors, ScheduleValidationError{
						Date:        key,
						Role:        req.Role,
						CheckName:   CheckSameDateRepeat,
						Description: fmt.Sprintf("'%s' is assigned to both '%s' and '%s'", name, other, req.Role),
					})
					continue
				}
				firstRole[name] = req.Role
			}
		}
	}

	return errors
}
