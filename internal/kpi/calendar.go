package kpi

import "time"

// DateFormat is the wire format for business dates across the API.
const DateFormat = "2006-01-02"

// Day truncates t to its calendar date in UTC. All week math runs on calendar
// days, never instants, so boundaries cannot shift near midnight in any zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday on or before d (ISO week, Monday-anchored).
// Idempotente: WeekStart(WeekStart(d)) == WeekStart(d).
func WeekStart(d time.Time) time.Time {
	d = Day(d)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // domingo
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// WeekEnd returns the Sunday of d's week.
func WeekEnd(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, 6)
}

// WeekDates returns the 7 calendar dates of d's week, Monday first.
func WeekDates(d time.Time) []time.Time {
	ws := WeekStart(d)
	out := make([]time.Time, 7)
	for i := range out {
		out[i] = ws.AddDate(0, 0, i)
	}
	return out
}

// PreviousWeekStart shifts a Monday back one week.
func PreviousWeekStart(monday time.Time) time.Time {
	return Day(monday).AddDate(0, 0, -7)
}
