// Package dateutil holds the calendar arithmetic shared by the store
// and the views: ISO dates, Monday-aligned weeks and month ranges.
package dateutil

import (
	"fmt"
	"regexp"
	"time"
)

const isoDate = "2006-01-02"

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func ToISO(t time.Time) string {
	return t.Format(isoDate)
}

func ParseISO(s string) (time.Time, error) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse iso date %q: %w", s, err)
	}
	return t, nil
}

func IsValidISO(s string) bool {
	if !isoDateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(isoDate, s)
	return err == nil
}

func Today() string {
	return ToISO(time.Now())
}

// AddDays shifts an ISO date by n days. Invalid input falls back to today.
func AddDays(iso string, n int) string {
	t, err := ParseISO(iso)
	if err != nil {
		t = time.Now()
	}
	return ToISO(t.AddDate(0, 0, n))
}

// WeekStart returns the Monday of the week containing t. Sunday maps
// to the previous week's Monday.
func WeekStart(t time.Time) time.Time {
	weekday := t.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return t.AddDate(0, 0, -int(weekday-time.Monday))
}

// WeekRange returns the inclusive Monday..Sunday span containing iso.
func WeekRange(iso string) (start, end string) {
	t, err := ParseISO(iso)
	if err != nil {
		t = time.Now()
	}
	ws := WeekStart(t)
	return ToISO(ws), ToISO(ws.AddDate(0, 0, 6))
}

// MonthKey formats t as "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

func IsValidMonthKey(s string) bool {
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// PrevMonthKey returns the month key immediately before key.
func PrevMonthKey(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		t = time.Now()
	}
	return MonthKey(t.AddDate(0, -1, 0))
}

func AddMonths(key string, n int) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		t = time.Now()
	}
	return MonthKey(t.AddDate(0, n, 0))
}

// MonthRange returns the first and last calendar day of the month.
func MonthRange(key string) (start, end string) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		t = time.Now()
		t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return ToISO(first), ToISO(last)
}

// WeekSpan is one Monday..Sunday slice of a month.
type WeekSpan struct {
	Start string
	End   string
}

// MonthWeeks lists every week touching the month, starting with the
// week containing the 1st and ending with the week containing the
// last day.
func MonthWeeks(key string) []WeekSpan {
	startIso, endIso := MonthRange(key)
	monthEnd, _ := ParseISO(endIso)
	first, _ := ParseISO(startIso)

	var weeks []WeekSpan
	for ws := WeekStart(first); !ws.After(monthEnd); ws = ws.AddDate(0, 0, 7) {
		weeks = append(weeks, WeekSpan{
			Start: ToISO(ws),
			End:   ToISO(ws.AddDate(0, 0, 6)),
		})
	}
	return weeks
}
