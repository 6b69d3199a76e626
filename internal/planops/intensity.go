package planops

import (
	"math"

	"alcyxob/training-planner/internal/domain"
)

// Intensity ladder for week-level adjustments.
var ladder = []domain.WorkoutTag{domain.TagEasy, domain.TagLT1, domain.TagLT2, domain.TagVO2Max}

// shiftTag moves a hard session one rung. Easy days and long runs are left alone;
// hills, race-specific and speed work step down to LT2 and are already at the top going up.
func shiftTag(tag domain.WorkoutTag, dir domain.IntensityDirection) domain.WorkoutTag {
	if !tag.IsHard() {
		return tag
	}
	switch tag {
	case domain.TagHills, domain.TagRaceSpecific, domain.TagSpeed:
		if dir == domain.DirectionDown {
			return domain.TagLT2
		}
		return tag
	}
	for i, t := range ladder {
		if t != tag {
			continue
		}
		if dir == domain.DirectionUp && i < len(ladder)-1 {
			return ladder[i+1]
		}
		if dir == domain.DirectionDown && i > 0 {
			return ladder[i-1]
		}
		return tag
	}
	return tag
}

const (
	noteEasier   = "(Modified for recovery - reduced intensity and distance)"
	noteHarder   = "(Modified - increased intensity based on feeling great)"
	noteSkip     = "(Skipped due to feedback - rest day recommended)"
	noteModerate = "(Modified - moderate adjustment based on feedback)"
	noteRecovery = "(Modified for recovery)"
	noteEasy     = "(Modified to an easy run based on feedback)"
)

func scale(w *domain.TrainingWorkout, factor float64) {
	w.Distance = roundTenth(w.Distance * factor)
	w.Duration = math.Round(w.Duration * factor)
}

func restDay(w *domain.TrainingWorkout) {
	w.Name = "Rest Day"
	w.Tags = domain.TagEasy
	w.Distance = 0
	w.Duration = 0
	w.Workout, w.Warmup, w.Cooldown = nil, nil, nil
	w.CooldownTarget = ""
	w.TargetPace = []domain.PaceEntry{}
	w.Notes = appendNote(w.Notes, noteSkip)
}

// applyAdjustment reports false for an unknown adjustment.
func applyAdjustment(w *domain.TrainingWorkout, adj domain.IntensityAdjustment) bool {
	switch adj {
	case domain.AdjustEasier:
		scale(w, 0.7)
		w.Tags = domain.TagEasy
		w.Notes = appendNote(w.Notes, noteEasier)
	case domain.AdjustHarder:
		scale(w, 1.1)
		if w.Tags == domain.TagEasy {
			w.Tags = domain.TagLT1
		}
		w.Notes = appendNote(w.Notes, noteHarder)
	case domain.AdjustSkip:
		restDay(w)
	case domain.AdjustModerate:
		scale(w, 0.85)
		w.Notes = appendNote(w.Notes, noteModerate)
	default:
		return false
	}
	return true
}

func adjustWorkoutIntensity(weeks []domain.TrainingWeek, op domain.AdjustWorkoutIntensity) outcome {
	day, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	wi, i, ok := locate(weeks, day)
	if !ok {
		return warn("AdjustWorkoutIntensity: no workout found on %s", op.Date)
	}
	if !applyAdjustment(&weeks[wi].Workouts[i], op.Adjustment) {
		return warn("AdjustWorkoutIntensity: unknown adjustment %q", op.Adjustment)
	}
	return changedWeeks(wi)
}

func modifyBasedOnFeedback(weeks []domain.TrainingWeek, op domain.ModifyWorkoutBasedOnFeedback) outcome {
	day, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	wi, i, ok := locate(weeks, day)
	if !ok {
		return warn("ModifyWorkoutBasedOnFeedback: no workout found on %s", op.Date)
	}
	w := &weeks[wi].Workouts[i]
	mods := op.SuggestedModifications

	if mods.Intensity != "" && !applyAdjustment(w, mods.Intensity) {
		return warn("ModifyWorkoutBasedOnFeedback: unknown intensity %q", mods.Intensity)
	}
	if mods.Intensity != domain.AdjustSkip {
		switch mods.Type {
		case domain.ModificationRecovery:
			if mods.Distance == nil && mods.Intensity == "" {
				scale(w, 0.7)
			}
			w.Tags = domain.TagEasy
			w.Notes = appendNote(w.Notes, noteRecovery)
		case domain.ModificationEasy:
			w.Tags = domain.TagEasy
			w.Notes = appendNote(w.Notes, noteEasy)
		}
		if mods.Distance != nil {
			w.Distance = *mods.Distance
		}
		if mods.Duration != nil {
			w.Duration = *mods.Duration
		}
	}
	return changedWeeks(wi)
}
