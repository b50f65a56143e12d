// Package schedule projects recurring-payment due dates. All functions are
// pure and re-entrant; callers own persistence and windowing policy.
package schedule

import (
	"time"

	"cloud.google.com/go/civil"
)

// Payment carries the scheduling attributes of a recurring payment. DueDay
// is an ISO weekday (1=Monday) for weekly payments and a day-of-month
// otherwise; nil falls back to the window start's day.
type Payment struct {
	Frequency string
	DueDay    *int
	StartDate civil.Date
	EndDate   *civil.Date
	IsActive  bool
}

// monthClamp caps day-of-month due days when seeding the first candidate so
// short months never produce invalid dates. Due days 29-31 therefore land on
// the 28th; a known approximation, kept because downstream consumers depend
// on it.
const monthClamp = 28

// ProjectDueDates returns the ascending sequence of due dates inside
// [windowStart, windowEnd], both bounds inclusive. A payment end date
// earlier than windowEnd tightens the window; an inactive payment projects
// nothing.
func ProjectDueDates(p Payment, windowStart, windowEnd civil.Date) []civil.Date {
	if !p.IsActive {
		return nil
	}
	if p.EndDate != nil && p.EndDate.Before(windowEnd) {
		windowEnd = *p.EndDate
	}

	dueDay := windowStart.Day
	if p.DueDay != nil {
		dueDay = *p.DueDay
	}

	var current civil.Date
	var step func(civil.Date) civil.Date

	switch p.Frequency {
	case "weekly":
		offset := ((dueDay-isoWeekday(windowStart))%7 + 7) % 7
		// A zero offset mid-series would re-emit a date the previous
		// generation pass already covered, so push a full week.
		if offset == 0 && windowStart.After(p.StartDate) {
			offset = 7
		}
		current = windowStart.AddDays(offset)
		step = func(d civil.Date) civil.Date { return d.AddDays(7) }

	case "monthly", "quarterly", "yearly":
		months := 1
		switch p.Frequency {
		case "quarterly":
			months = 3
		case "yearly":
			months = 12
		}

		day := dueDay
		if day > monthClamp {
			day = monthClamp
		}
		current = civil.Date{Year: windowStart.Year, Month: windowStart.Month, Day: day}
		if current.Before(windowStart) {
			current = AddMonths(current, months)
		}
		step = func(d civil.Date) civil.Date { return AddMonths(d, months) }

	default:
		return nil
	}

	var due []civil.Date
	for !current.After(windowEnd) {
		due = append(due, current)
		current = step(current)
	}
	return due
}

// AddMonths advances a date by whole calendar months, clamping the day to
// the target month's length (Jan 31 + 1 month = Feb 28/29), unlike
// time.AddDate which rolls over.
func AddMonths(d civil.Date, months int) civil.Date {
	monthIdx := int(d.Month) - 1 + months
	year := d.Year + monthIdx/12
	monthIdx %= 12
	if monthIdx < 0 {
		monthIdx += 12
		year--
	}
	month := time.Month(monthIdx + 1)

	day := d.Day
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return civil.Date{Year: year, Month: month, Day: day}
}

// isoWeekday maps a date to ISO 8601 weekday numbering, 1=Monday..7=Sunday.
func isoWeekday(d civil.Date) int {
	wd := int(d.In(time.UTC).Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
