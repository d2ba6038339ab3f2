// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// WeekBounds returns the Monday and Sunday of the week containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	t = BeginningOfDay(t)
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // Sunday belongs to the preceding Monday
	}
	monday := t.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}