package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekBounds(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		monday string
		sunday string
	}{
		{"monday maps to itself", "2024-01-08", "2024-01-08", "2024-01-14"},
		{"midweek", "2024-01-10", "2024-01-08", "2024-01-14"},
		{"sunday belongs to preceding monday", "2024-01-07", "2024-01-01", "2024-01-07"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := time.Parse("2006-01-02", tt.in)
			assert.NoError(t, err)
			monday, sunday := WeekBounds(in)
			assert.Equal(t, tt.monday, monday.Format("2006-01-02"))
			assert.Equal(t, tt.sunday, sunday.Format("2006-01-02"))
		})
	}
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 1, 1, 23, 50, 0, 0, time.UTC)
	end := time.Date(2024, 1, 3, 0, 10, 0, 0, time.UTC)
	assert.Equal(t, 2, DaysBetween(start, end))
}
