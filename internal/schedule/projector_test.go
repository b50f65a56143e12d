package schedule

import (
	"testing"

	"cloud.google.com/go/civil"

	"github.com/eyeonits/finapp-personal-finance-tracker/pkg/helpers"
)

func TestProjectWeeklyWednesdays(t *testing.T) {
	// 2024-01-01 is a Monday; due_day 3 = Wednesday. A 14-day window holds
	// exactly two Wednesdays.
	p := Payment{
		Frequency: "weekly",
		DueDay:    helpers.Ptr(3),
		StartDate: civil.Date{Year: 2023, Month: 12, Day: 1},
		IsActive:  true,
	}
	start := civil.Date{Year: 2024, Month: 1, Day: 1}
	end := start.AddDays(14)

	got := ProjectDueDates(p, start, end)
	want := []civil.Date{
		{Year: 2024, Month: 1, Day: 3},
		{Year: 2024, Month: 1, Day: 10},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d dates (%v), want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("date %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProjectWeeklySameDayAdvances(t *testing.T) {
	// Window starts on the due weekday itself, mid-series: the first
	// projection moves a full week out so a prior pass's date is not
	// re-emitted.
	p := Payment{
		Frequency: "weekly",
		DueDay:    helpers.Ptr(1), // Monday
		StartDate: civil.Date{Year: 2023, Month: 12, Day: 1},
		IsActive:  true,
	}
	start := civil.Date{Year: 2024, Month: 1, Day: 1} // a Monday after StartDate
	got := ProjectDueDates(p, start, start.AddDays(13))

	if len(got) == 0 || got[0] != start.AddDays(7) {
		t.Fatalf("first date = %v, want %v", got, start.AddDays(7))
	}
}

func TestProjectWeeklySameDayOnStartDate(t *testing.T) {
	// When the window starts on the payment's own start date, the first
	// occurrence is that day.
	start := civil.Date{Year: 2024, Month: 1, Day: 1} // Monday
	p := Payment{
		Frequency: "weekly",
		DueDay:    helpers.Ptr(1),
		StartDate: start,
		IsActive:  true,
	}
	got := ProjectDueDates(p, start, start.AddDays(7))
	if len(got) == 0 || got[0] != start {
		t.Fatalf("first date = %v, want %v", got, start)
	}
}

func TestProjectMonthlyDueDayClamp(t *testing.T) {
	// Due day 31 is capped at 28 so February never produces an invalid date.
	p := Payment{
		Frequency: "monthly",
		DueDay:    helpers.Ptr(31),
		StartDate: civil.Date{Year: 2024, Month: 1, Day: 1},
		IsActive:  true,
	}
	got := ProjectDueDates(p,
		civil.Date{Year: 2024, Month: 1, Day: 1},
		civil.Date{Year: 2024, Month: 3, Day: 31})

	want := []civil.Date{
		{Year: 2024, Month: 1, Day: 28},
		{Year: 2024, Month: 2, Day: 28},
		{Year: 2024, Month: 3, Day: 28},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("date %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestProjectBoundedAscending(t *testing.T) {
	cases := []struct {
		frequency string
		gapDays   int
	}{
		{"weekly", 7},
		{"monthly", 28},
		{"quarterly", 89},
		{"yearly", 365},
	}

	start := civil.Date{Year: 2024, Month: 1, Day: 10}
	end := civil.Date{Year: 2026, Month: 1, Day: 10}

	for _, c := range cases {
		p := Payment{
			Frequency: c.frequency,
			DueDay:    helpers.Ptr(5),
			StartDate: civil.Date{Year: 2023, Month: 6, Day: 1},
			IsActive:  true,
		}
		got := ProjectDueDates(p, start, end)
		if len(got) == 0 {
			t.Fatalf("%s: no dates projected", c.frequency)
		}
		for i, d := range got {
			if d.Before(start) || d.After(end) {
				t.Fatalf("%s: date %v outside [%v, %v]", c.frequency, d, start, end)
			}
			if i > 0 {
				gap := d.DaysSince(got[i-1])
				if gap < c.gapDays {
					t.Fatalf("%s: gap %d days between %v and %v, want >= %d",
						c.frequency, gap, got[i-1], d, c.gapDays)
				}
			}
		}
	}
}

func TestProjectInactivePayment(t *testing.T) {
	p := Payment{
		Frequency: "monthly",
		DueDay:    helpers.Ptr(5),
		StartDate: civil.Date{Year: 2024, Month: 1, Day: 1},
		IsActive:  false,
	}
	got := ProjectDueDates(p,
		civil.Date{Year: 2024, Month: 1, Day: 1},
		civil.Date{Year: 2024, Month: 12, Day: 31})
	if got != nil {
		t.Fatalf("inactive payment projected %v", got)
	}
}

func TestProjectEndDateTightensWindow(t *testing.T) {
	endDate := civil.Date{Year: 2024, Month: 2, Day: 15}
	p := Payment{
		Frequency: "monthly",
		DueDay:    helpers.Ptr(10),
		StartDate: civil.Date{Year: 2024, Month: 1, Day: 1},
		EndDate:   &endDate,
		IsActive:  true,
	}
	got := ProjectDueDates(p,
		civil.Date{Year: 2024, Month: 1, Day: 1},
		civil.Date{Year: 2024, Month: 12, Day: 31})

	for _, d := range got {
		if d.After(endDate) {
			t.Fatalf("date %v after end date %v", d, endDate)
		}
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want two dates (Jan 10, Feb 10)", got)
	}
}

func TestAddMonthsClampsDay(t *testing.T) {
	cases := []struct {
		in     civil.Date
		months int
		want   civil.Date
	}{
		{civil.Date{Year: 2024, Month: 1, Day: 31}, 1, civil.Date{Year: 2024, Month: 2, Day: 29}},
		{civil.Date{Year: 2023, Month: 1, Day: 31}, 1, civil.Date{Year: 2023, Month: 2, Day: 28}},
		{civil.Date{Year: 2024, Month: 11, Day: 30}, 3, civil.Date{Year: 2025, Month: 2, Day: 28}},
		{civil.Date{Year: 2024, Month: 3, Day: 15}, 12, civil.Date{Year: 2025, Month: 3, Day: 15}},
	}
	for _, c := range cases {
		if got := AddMonths(c.in, c.months); got != c.want {
			t.Fatalf("AddMonths(%v, %d) = %v, want %v", c.in, c.months, got, c.want)
		}
	}
}
