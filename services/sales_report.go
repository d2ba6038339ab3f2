// services/sales_report.go
package services

import (
	"fmt"
	"time"

	"soulpatterns-backend/models"
	"soulpatterns-backend/utils"
)

// Sales aggregation is a pure function of the full sale set and a reference
// day. Dates are compared as YYYY-MM-DD strings, which orders the same as
// the calendar.

// SalesSummary is the three headline figures shown above the chart.
type SalesSummary struct {
	Today float64 `json:"today"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

// ChartPoint is one bar of the revenue chart.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SummarizeSales totals the day, the Monday-based week containing today,
// and the calendar month.
func SummarizeSales(sales []models.Sale, today time.Time) SalesSummary {
	return SalesSummary{
		Today: TotalOn(sales, today),
		Week:  WeekToDate(sales, today),
		Month: MonthTotal(sales, today),
	}
}

// TotalOn sums the sales recorded on the given day.
func TotalOn(sales []models.Sale, day time.Time) float64 {
	date := day.Format(models.DateLayout)
	var total float64
	for _, s := range sales {
		if s.Date == date {
			total += s.Amount
		}
	}
	return total
}

// WeekToDate sums the Monday-through-Sunday week containing today.
func WeekToDate(sales []models.Sale, today time.Time) float64 {
	monday, sunday := utils.WeekBounds(today)
	first := monday.Format(models.DateLayout)
	last := sunday.Format(models.DateLayout)

	var total float64
	for _, s := range sales {
		if s.Date >= first && s.Date <= last {
			total += s.Amount
		}
	}
	return total
}

// MonthTotal sums the calendar month containing today.
func MonthTotal(sales []models.Sale, today time.Time) float64 {
	prefix := today.Format("2006-01")
	var total float64
	for _, s := range sales {
		if len(s.Date) >= len(prefix) && s.Date[:len(prefix)] == prefix {
			total += s.Amount
		}
	}
	return total
}

// WeeklyChart buckets the last seven days, oldest first, one bar per day.
func WeeklyChart(sales []models.Sale, today time.Time) []ChartPoint {
	byDate := make(map[string]float64)
	for _, s := range sales {
		byDate[s.Date] += s.Amount
	}

	points := make([]ChartPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		points = append(points, ChartPoint{
			Label: d.Format("Mon"),
			Value: byDate[d.Format(models.DateLayout)],
		})
	}
	return points
}

// MonthlyChart buckets the last four Monday-aligned weeks, oldest first.
func MonthlyChart(sales []models.Sale, today time.Time) []ChartPoint {
	monday, _ := utils.WeekBounds(today)

	points := make([]ChartPoint, 0, 4)
	for i := 3; i >= 0; i-- {
		start := monday.AddDate(0, 0, -7*i)
		end := start.AddDate(0, 0, 6)
		first := start.Format(models.DateLayout)
		last := end.Format(models.DateLayout)

		var total float64
		for _, s := range sales {
			if s.Date >= first && s.Date <= last {
				total += s.Amount
			}
		}
		points = append(points, ChartPoint{
			Label: fmt.Sprintf("%d-%d", start.Day(), end.Day()),
			Value: total,
		})
	}
	return points
}
