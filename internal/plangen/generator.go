package plangen

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"alcyxob/training-planner/internal/domain"
)

// GenerateWeek drafts, validates, schedules and fills one week.
func GenerateWeek(ctx context.Context, p *domain.AthleteProfile, week int, drafter Drafter) (domain.TrainingWeek, error) {
	if err := p.Validate(); err != nil {
		return domain.TrainingWeek{}, err
	}
	progression, err := ProfileProgression(p)
	if err != nil {
		return domain.TrainingWeek{}, err
	}
	return generateWeek(ctx, p, progression, week, drafter)
}

func generateWeek(ctx context.Context, p *domain.AthleteProfile, progression []WeekTarget, week int, drafter Drafter) (domain.TrainingWeek, error) {
	wc, err := newWeekContext(p, progression, week)
	if err != nil {
		return domain.TrainingWeek{}, err
	}

	drafts, err := drafter.DraftWorkouts(ctx, DraftRequestFor(wc))
	if err != nil {
		return domain.TrainingWeek{}, fmt.Errorf("draft week %d: %w", week, err)
	}
	drafts = DropLongRuns(drafts)
	if err := ValidateDrafts(drafts); err != nil {
		return domain.TrainingWeek{}, fmt.Errorf("week %d: %w", week, err)
	}

	tw, err := ScheduleKeyWorkouts(wc, drafts)
	if err != nil {
		return domain.TrainingWeek{}, fmt.Errorf("week %d: %w", week, err)
	}
	FillEasyRuns(wc, &tw)
	PostProcessWeek(p.TrainingDays, &tw)
	return tw, nil
}

// GeneratePlan generates every week, at most concurrency at a time, and
// returns them in week order. The first failure cancels the rest.
func GeneratePlan(ctx context.Context, p *domain.AthleteProfile, drafter Drafter, concurrency int) ([]domain.TrainingWeek, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	progression, err := ProfileProgression(p)
	if err != nil {
		return nil, err
	}

	weeks := make([]domain.TrainingWeek, len(progression))
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i := range progression {
		i := i
		g.Go(func() error {
			w, err := generateWeek(gctx, p, progression, i+1, drafter)
			if err != nil {
				return err
			}
			weeks[i] = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return weeks, nil
}
