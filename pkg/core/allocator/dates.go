package allocator

import (
	"time"

	"github.com/teambition/rrule-go"
)

// rruleWeekdays is indexed by time.Weekday (Sunday = 0)
var rruleWeekdays = [...]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// DatesInMonth returns every date in the month falling on the given weekday, ascending.
// Dates are midnight UTC.
func DatesInMonth(year int, month time.Month, weekday time.Weekday) []time.Time {
	if weekday < time.Sunday || weekday > time.Saturday {
		return nil
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   first,
		Until:     last,
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
	})
	if err != nil {
		return nil
	}

	return rule.All()
}
