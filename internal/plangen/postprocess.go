package plangen

import (
	"sort"

	"alcyxob/training-planner/internal/domain"
)

// PostProcessWeek orders workouts by the athlete's training-day order and
// recomputes the week totals.
func PostProcessWeek(days []domain.Weekday, week *domain.TrainingWeek) {
	pos := make(map[domain.Weekday]int, len(days))
	for i, d := range days {
		pos[d] = i
	}
	rank := func(d domain.Weekday) int {
		if i, ok := pos[d]; ok {
			return i
		}
		return -1
	}
	sort.SliceStable(week.Workouts, func(i, j int) bool {
		return rank(week.Workouts[i].DayOfWeek) < rank(week.Workouts[j].DayOfWeek)
	})
	week.RecomputeTotals()
}
