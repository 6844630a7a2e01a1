package model

import (
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// Clock returns the current instant; "today" is derived from it in its own location.
type Clock func() time.Time

// Today truncates now to a calendar date in now's location.
func Today(now time.Time) datatypes.Date {
	y, m, d := now.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses YYYY-MM-DD into a Date.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

func FormatDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(DateLayout)
	return &s
}

// civil strips the location so that dates compare by calendar day only.
func civil(d datatypes.Date) time.Time {
	y, m, dd := time.Time(d).Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns to - from in whole days.
func DaysBetween(from, to datatypes.Date) int {
	return int(civil(to).Sub(civil(from)).Hours() / 24)
}

func dateBefore(a, b datatypes.Date) bool {
	return civil(a).Before(civil(b))
}

// ValidRange reports whether start <= due when both are present.
func ValidRange(start, due *datatypes.Date) bool {
	if start == nil || due == nil {
		return true
	}
	return !dateBefore(*due, *start)
}

func overdue(due *datatypes.Date, terminal bool, today datatypes.Date) bool {
	if due == nil || terminal {
		return false
	}
	return dateBefore(*due, today)
}

func daysUntil(due *datatypes.Date, today datatypes.Date) *int {
	if due == nil {
		return nil
	}
	n := DaysBetween(today, *due)
	return &n
}
