// internal/domain/week.go
package domain

import (
	"fmt"
	"math"
	"time"
)

// TrainingWeek is one Monday-aligned week of a plan.
type TrainingWeek struct {
	ID            string            `bson:"id" json:"id"` // "week-N"
	Week          int               `bson:"week" json:"week"`
	StartDate     time.Time         `bson:"startDate" json:"startDate"`
	EndDate       time.Time         `bson:"endDate" json:"endDate"`
	TotalMileage  float64           `bson:"totalMileage" json:"totalMileage"`
	TotalDuration float64           `bson:"totalDuration" json:"totalDuration"`
	Description   string            `bson:"description,omitempty" json:"description,omitempty"`
	Tags          []string          `bson:"tags,omitempty" json:"tags,omitempty"`
	Workouts      []TrainingWorkout `bson:"workouts" json:"workouts"`
}

// WeekID formats the id of week n.
func WeekID(n int) string { return fmt.Sprintf("week-%d", n) }

// Clone returns a deep copy.
func (w TrainingWeek) Clone() TrainingWeek {
	if w.Tags != nil {
		w.Tags = append(make([]string, 0, len(w.Tags)), w.Tags...)
	}
	if w.Workouts != nil {
		ws := make([]TrainingWorkout, len(w.Workouts))
		for i, wo := range w.Workouts {
			ws[i] = wo.Clone()
		}
		w.Workouts = ws
	}
	return w
}

// Contains reports whether t falls inside the week's Monday..Sunday span.
func (w TrainingWeek) Contains(t time.Time) bool {
	day := TruncateToDay(t)
	start := TruncateToDay(w.StartDate)
	end := TruncateToDay(w.EndDate)
	return !day.Before(start) && !day.After(end)
}

// RecomputeTotals rebuilds the aggregates from the workouts. Mileage is rounded to one decimal.
func (w *TrainingWeek) RecomputeTotals() {
	var miles, secs float64
	for _, wo := range w.Workouts {
		miles += wo.Distance
		secs += wo.Duration
	}
	w.TotalMileage = math.Round(miles*10) / 10
	w.TotalDuration = secs
}

// CloneWeeks deep-copies a plan.
func CloneWeeks(in []TrainingWeek) []TrainingWeek {
	if in == nil {
		return nil
	}
	out := make([]TrainingWeek, len(in))
	for i, w := range in {
		out[i] = w.Clone()
	}
	return out
}
