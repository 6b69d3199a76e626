package plangen

import (
	"context"
	"fmt"

	"alcyxob/training-planner/internal/domain"
)

// Drafter proposes a week's hard sessions. Its output is validated and every
// number in it is recomputed before scheduling.
type Drafter interface {
	DraftWorkouts(ctx context.Context, req domain.DraftRequest) ([]domain.DraftWorkout, error)
}

// DraftRequestFor derives the per-role counts and time targets for a week.
func DraftRequestFor(wc *WeekContext) domain.DraftRequest {
	dt := len(wc.Days.DoubleThresholdDays)
	counts := domain.DraftCounts{LT1: dt, LT2: dt}
	if wc.Days.LT1Day != "" {
		counts.LT1++
	}
	if wc.Days.LT2Day != "" {
		counts.LT2++
	}
	if wc.Days.VO2RaceDay != "" {
		counts.Hills = 1
	}
	return domain.DraftRequest{
		Profile:      *wc.Profile,
		Week:         wc.Week,
		RaceSpecific: wc.Target.RaceSpecific,
		Counts:       counts,
		Targets:      ThresholdTargets(wc.Profile, wc.Target.Mileage),
	}
}

var draftableTags = map[domain.WorkoutTag]bool{
	domain.TagLT1:          true,
	domain.TagLT2:          true,
	domain.TagHills:        true,
	domain.TagRaceSpecific: true,
	domain.TagVO2Max:       true,
	domain.TagSpeed:        true,
}

// DropLongRuns removes long-run drafts; the long run is always sized by the filler.
func DropLongRuns(drafts []domain.DraftWorkout) []domain.DraftWorkout {
	out := drafts[:0:0]
	for _, d := range drafts {
		if d.Tags != domain.TagLongRun {
			out = append(out, d)
		}
	}
	return out
}

// ValidateDrafts rejects the whole list if any draft is malformed.
func ValidateDrafts(drafts []domain.DraftWorkout) error {
	for i, d := range drafts {
		if d.Name == "" {
			return fmt.Errorf("%w: workout %d has no name", ErrInvalidPlanFormat, i)
		}
		if !draftableTags[d.Tags] {
			return fmt.Errorf("%w: workout %d has unsupported tag %q", ErrInvalidPlanFormat, i, d.Tags)
		}
		if len(d.Workout) == 0 {
			return fmt.Errorf("%w: workout %d has no main set", ErrInvalidPlanFormat, i)
		}
		parts := []struct {
			name string
			segs []domain.Segment
		}{{"warmup", d.Warmup}, {"workout", d.Workout}, {"cooldown", d.Cooldown}}
		for _, part := range parts {
			for j, s := range part.segs {
				if err := validateSegment(s); err != nil {
					return fmt.Errorf("%w: workout %d %s[%d]: %v", ErrInvalidPlanFormat, i, part.name, j, err)
				}
			}
		}
	}
	return nil
}

func validateSegment(s domain.Segment) error {
	switch s.Kind {
	case domain.SegmentRest:
		if s.RestSeconds < 0 {
			return fmt.Errorf("negative rest")
		}
		return nil
	case domain.SegmentSet:
		set := s.Set
		if set == nil {
			return fmt.Errorf("missing set")
		}
		if !set.Zone.Valid() {
			return fmt.Errorf("unknown pace zone %q", set.Zone)
		}
		if set.Length.Kind != domain.LengthTime && set.Length.Kind != domain.LengthDistance {
			return fmt.Errorf("unknown length type %q", set.Length.Kind)
		}
		if set.Length.Amount <= 0 {
			return fmt.Errorf("length must be positive")
		}
		if set.Reps < 0 {
			return fmt.Errorf("reps cannot be negative")
		}
		if set.Rest < 0 {
			return fmt.Errorf("negative rest")
		}
		return nil
	default:
		return fmt.Errorf("unknown segment kind %q", s.Kind)
	}
}
