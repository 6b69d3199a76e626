package plangen

import (
	"time"

	"alcyxob/training-planner/internal/domain"
)

// WeekStartDate is the Monday of the given 1-based plan week. Week 1 starts
// on the first Monday on or after planStart.
func WeekStartDate(planStart time.Time, week int) time.Time {
	return domain.MondayOnOrAfter(planStart).AddDate(0, 0, (week-1)*7)
}

// DayDates maps every weekday to its calendar date inside the given week.
func DayDates(planStart time.Time, week int) map[domain.Weekday]time.Time {
	monday := WeekStartDate(planStart, week)
	out := make(map[domain.Weekday]time.Time, len(domain.Weekdays))
	for i, d := range domain.Weekdays {
		out[d] = monday.AddDate(0, 0, i)
	}
	return out
}
