package plangen

import (
	"fmt"
	"time"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/pacing"
)

// WeekContext is everything derived from the profile that one week's generation needs.
type WeekContext struct {
	Profile  *domain.AthleteProfile
	Week     int
	NumWeeks int
	Target   WeekTarget
	Paces    pacing.Vector
	Days     DayAssignment
	Start    time.Time
	Dates    map[domain.Weekday]time.Time
}

// NewWeekContext resolves week (1-based) of the profile's plan.
func NewWeekContext(p *domain.AthleteProfile, week int) (*WeekContext, error) {
	progression, err := ProfileProgression(p)
	if err != nil {
		return nil, err
	}
	return newWeekContext(p, progression, week)
}

func newWeekContext(p *domain.AthleteProfile, progression []WeekTarget, week int) (*WeekContext, error) {
	numWeeks := len(progression)
	if week < 1 || week > numWeeks {
		return nil, fmt.Errorf("%w: week %d outside a %d week plan", domain.ErrInvalidProfile, week, numWeeks)
	}
	target := progression[week-1]
	days, err := AssignWorkoutDays(p.TrainingDays, p.DoubleThresholdDays, target.RaceSpecific)
	if err != nil {
		return nil, err
	}
	paces, err := pacing.ForWeek(p, numWeeks, week)
	if err != nil {
		return nil, err
	}
	start, err := p.StartDate()
	if err != nil {
		return nil, fmt.Errorf("%w: planStartDate: %v", domain.ErrInvalidProfile, err)
	}
	return &WeekContext{
		Profile:  p,
		Week:     week,
		NumWeeks: numWeeks,
		Target:   target,
		Paces:    paces,
		Days:     days,
		Start:    WeekStartDate(start, week),
		Dates:    DayDates(start, week),
	}, nil
}

// EmptyWeek is the week shell with its id and Monday..Sunday span.
func (wc *WeekContext) EmptyWeek() domain.TrainingWeek {
	return domain.TrainingWeek{
		ID:        domain.WeekID(wc.Week),
		Week:      wc.Week,
		StartDate: wc.Start,
		EndDate:   wc.Start.AddDate(0, 0, 6),
		Workouts:  []domain.TrainingWorkout{},
	}
}
