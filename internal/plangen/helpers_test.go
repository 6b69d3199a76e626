package plangen

import (
	"context"
	"errors"
	"testing"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/pacing"
)

func testProfile() *domain.AthleteProfile {
	return &domain.AthleteProfile{
		UserID:              "runner-1",
		Experience:          domain.ExperienceIntermediate,
		TrainingDays:        append([]domain.Weekday(nil), domain.Weekdays...),
		CurrentMileage:      40,
		GoalMileage:         50,
		CurrentRaceDistance: domain.Race5K,
		CurrentRaceTime:     "19:56",
		GoalRaceDistance:    domain.Race5K,
		GoalRaceTime:        "19:00",
		PlanStartDate:       "2025-01-06",
		GoalRaceDate:        "2025-03-30",
		NumWeeks:            12,
	}
}

// vdot50 is the week-one pace vector of testProfile: LT1 455, LT2 435, Easy 530, Hills 400.
func vdot50(t *testing.T) pacing.Vector {
	t.Helper()
	current, err := pacing.FromPerformance(domain.Race5K, "19:56", false)
	if err != nil {
		t.Fatal(err)
	}
	return pacing.Interpolate(current, current, 1, 1)
}

type stubDrafter struct {
	drafts []domain.DraftWorkout
	err    error
	reqs   chan domain.DraftRequest
}

func (s *stubDrafter) DraftWorkouts(_ context.Context, req domain.DraftRequest) ([]domain.DraftWorkout, error) {
	if s.reqs != nil {
		s.reqs <- req
	}
	return s.drafts, s.err
}

var errDrafter = errors.New("drafter unavailable")
