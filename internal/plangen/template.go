package plangen

import (
	"context"
	"fmt"
	"math"

	"alcyxob/training-planner/internal/domain"
)

// Allowed rep lengths in seconds, longest first.
var (
	lt1RepSeconds = []int{720, 540, 360}
	lt2RepSeconds = []int{540, 360, 180}
)

// TemplateDrafter builds drafts from fixed threshold templates. It is
// deterministic and needs no network, so it serves when no model is configured.
type TemplateDrafter struct{}

func (TemplateDrafter) DraftWorkouts(_ context.Context, req domain.DraftRequest) ([]domain.DraftWorkout, error) {
	var out []domain.DraftWorkout
	for i := 0; i < req.Counts.LT1; i++ {
		out = append(out, thresholdDraft(domain.TagLT1, req.Targets.LT1Minutes*60, lt1RepSeconds, false))
	}
	for i := 0; i < req.Counts.LT2; i++ {
		out = append(out, thresholdDraft(domain.TagLT2, req.Targets.LT2Minutes*60, lt2RepSeconds, true))
	}
	if req.Counts.Hills > 0 {
		out = append(out, hillsDraft(req.RaceSpecific, req.Profile.GoalRaceDistance))
	}
	return out, nil
}

// thresholdDraft uses the longest allowed rep that divides the target evenly,
// otherwise the shortest rep and the nearest rep count. Rest is a third of the rep.
func thresholdDraft(tag domain.WorkoutTag, target int, reps []int, thresholdWarmup bool) domain.DraftWorkout {
	rep := reps[len(reps)-1]
	count := int(math.Max(1, math.Round(float64(target)/float64(rep))))
	for _, r := range reps {
		if target%r == 0 {
			rep, count = r, target/r
			break
		}
	}

	warmup := []domain.Segment{domain.Set(domain.ZoneEasy, 0, domain.LengthTime, 900, 0)}
	if thresholdWarmup {
		warmup = append(warmup, domain.Set(domain.ZoneLT2, 2, domain.LengthTime, 120, 60))
	}
	zone := domain.ZoneLT1
	hr := "80-83% MHR"
	if tag == domain.TagLT2 {
		zone, hr = domain.ZoneLT2, "85-88% MHR"
	}
	return domain.DraftWorkout{
		Name:            fmt.Sprintf("%s %d x %d:%02d", tag, count, rep/60, rep%60),
		Tags:            tag,
		Warmup:          warmup,
		Workout:         []domain.Segment{domain.Set(zone, count, domain.LengthTime, float64(rep), float64(rep/3))},
		Cooldown:        []domain.Segment{domain.Set(domain.ZoneEasy, 0, domain.LengthTime, 900, 0)},
		TargetHeartRate: hr,
	}
}

func hillsDraft(raceSpecific bool, race domain.RaceDistance) domain.DraftWorkout {
	warmup := []domain.Segment{domain.Set(domain.ZoneEasy, 0, domain.LengthTime, 900, 0)}
	cooldown := []domain.Segment{domain.Set(domain.ZoneEasy, 0, domain.LengthTime, 600, 0)}
	if raceSpecific {
		return domain.DraftWorkout{
			Name:            fmt.Sprintf("%s Pace 6 x 1000m", race),
			Tags:            domain.TagRaceSpecific,
			Warmup:          warmup,
			Workout:         []domain.Segment{domain.Set(domain.PaceZone(race), 6, domain.LengthDistance, 1000, 90)},
			Cooldown:        cooldown,
			TargetHeartRate: "88-92% MHR",
		}
	}
	return domain.DraftWorkout{
		Name:            "Hill Repeats 8 x 1:00",
		Tags:            domain.TagHills,
		Warmup:          warmup,
		Workout:         []domain.Segment{domain.Set(domain.ZoneHills, 8, domain.LengthTime, 60, 120)},
		Cooldown:        cooldown,
		TargetHeartRate: "90-95% MHR",
		Notes:           "Jog down recovery",
	}
}
