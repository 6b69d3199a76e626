package planops

import (
	"fmt"
	"math"
	"strings"
	"time"

	"alcyxob/training-planner/internal/domain"
)

func warn(format string, args ...any) outcome {
	return outcome{warning: fmt.Sprintf(format, args...)}
}

func changedWeeks(idx ...int) outcome {
	return outcome{changed: idx}
}

// onDay moves w to day, keeping every other field.
func onDay(w domain.TrainingWorkout, day time.Time) domain.TrainingWorkout {
	w.Date = day
	w.DayOfWeek = domain.WeekdayOf(day)
	return w
}

func parseDay(op domain.OperationType, field, s string) (time.Time, *outcome) {
	d, err := domain.ParseDate(s)
	if err != nil {
		o := warn("%s: invalid %s %q", op, field, s)
		return time.Time{}, &o
	}
	return d, nil
}

func moveWorkout(weeks []domain.TrainingWeek, op domain.MoveWorkout) outcome {
	from, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	to, bad := parseDay(op.Type(), "toDate", op.ToDate)
	if bad != nil {
		return *bad
	}
	wi, i, ok := locate(weeks, from)
	if !ok {
		return warn("MoveWorkout: no workout found on %s", op.Date)
	}
	dst, ok := weekContaining(weeks, to)
	if !ok {
		return warn("MoveWorkout: no week contains %s", op.ToDate)
	}
	moved := onDay(weeks[wi].Workouts[i], to)
	weeks[wi].Workouts = removeAt(weeks[wi].Workouts, i)
	weeks[dst].Workouts = append(weeks[dst].Workouts, moved)
	return changedWeeks(wi, dst)
}

func replaceWorkout(weeks []domain.TrainingWeek, op domain.ReplaceWorkout) outcome {
	day, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	wi, i, ok := locate(weeks, day)
	if !ok {
		return warn("ReplaceWorkout: no workout found on %s", op.Date)
	}
	weeks[wi].Workouts[i] = onDay(op.Workout.Clone(), day)
	return changedWeeks(wi)
}

func modifyWorkout(weeks []domain.TrainingWeek, op domain.ModifyWorkout) outcome {
	day, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	wi, i, ok := locate(weeks, day)
	if !ok {
		return warn("ModifyWorkout: no workout found on %s", op.Date)
	}
	w := &weeks[wi].Workouts[i]
	v := op.NewValues
	if v.Name != nil {
		w.Name = *v.Name
	}
	if v.Tags != nil {
		w.Tags = *v.Tags
	}
	if v.Workout != nil {
		w.Workout = domain.CloneSegments(v.Workout)
	}
	if v.Warmup != nil {
		w.Warmup = domain.CloneSegments(v.Warmup)
	}
	if v.Cooldown != nil {
		w.Cooldown = domain.CloneSegments(v.Cooldown)
	}
	if v.Distance != nil {
		w.Distance = *v.Distance
	}
	if v.Duration != nil {
		w.Duration = *v.Duration
	}
	if v.TargetHeartRate != nil {
		w.TargetHeartRate = *v.TargetHeartRate
	}
	if v.TargetPace != nil {
		w.TargetPace = append(make([]domain.PaceEntry, 0, len(v.TargetPace)), v.TargetPace...)
	}
	if v.Notes != nil {
		w.Notes = *v.Notes
	}
	return changedWeeks(wi)
}

func insertWorkout(weeks []domain.TrainingWeek, op domain.InsertWorkout) outcome {
	day, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	wi, ok := weekContaining(weeks, day)
	if !ok {
		return warn("InsertWorkout: no week contains %s", op.Date)
	}
	w := onDay(op.Workout.Clone(), day)
	if w.TargetPace == nil {
		w.TargetPace = []domain.PaceEntry{}
	}
	weeks[wi].Workouts = append(weeks[wi].Workouts, w)
	return changedWeeks(wi)
}

func deleteWorkout(weeks []domain.TrainingWeek, op domain.DeleteWorkout) outcome {
	day, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	wi, i, ok := locate(weeks, day)
	if !ok {
		return warn("DeleteWorkout: no workout found on %s", op.Date)
	}
	weeks[wi].Workouts = removeAt(weeks[wi].Workouts, i)
	return changedWeeks(wi)
}

func swapWorkouts(weeks []domain.TrainingWeek, op domain.SwapWorkouts) outcome {
	a, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	b, bad := parseDay(op.Type(), "toDate", op.ToDate)
	if bad != nil {
		return *bad
	}
	if a.Equal(b) {
		return warn("SwapWorkouts: %s and %s are the same day", op.Date, op.ToDate)
	}
	wa, ia, ok := locate(weeks, a)
	if !ok {
		return warn("SwapWorkouts: no workout found on %s", op.Date)
	}
	wb, ib, ok := locate(weeks, b)
	if !ok {
		return warn("SwapWorkouts: no workout found on %s", op.ToDate)
	}
	first, second := weeks[wa].Workouts[ia], weeks[wb].Workouts[ib]
	weeks[wa].Workouts[ia] = onDay(second, a)
	weeks[wb].Workouts[ib] = onDay(first, b)
	return changedWeeks(wa, wb)
}

func shiftWeek(weeks []domain.TrainingWeek, op domain.ShiftWeek) outcome {
	wi, ok := weekNumbered(weeks, op.Week)
	if !ok {
		return warn("ShiftWeek: week %d not found", op.Week)
	}
	if op.DeltaDays == 0 {
		return outcome{}
	}
	for i := range weeks[wi].Workouts {
		w := &weeks[wi].Workouts[i]
		*w = onDay(*w, w.Date.AddDate(0, 0, op.DeltaDays))
	}
	return changedWeeks(wi)
}

func adjustWeekVolume(weeks []domain.TrainingWeek, op domain.AdjustWeekVolume) outcome {
	if op.Factor <= 0 {
		return warn("AdjustWeekVolume: factor must be positive, got %v", op.Factor)
	}
	wi, ok := weekNumbered(weeks, op.Week)
	if !ok {
		return warn("AdjustWeekVolume: week %d not found", op.Week)
	}
	for i := range weeks[wi].Workouts {
		w := &weeks[wi].Workouts[i]
		w.Distance = roundTenth(w.Distance * op.Factor)
		w.Duration = math.Round(w.Duration * op.Factor)
	}
	return changedWeeks(wi)
}

func adjustIntensity(weeks []domain.TrainingWeek, op domain.AdjustIntensity) outcome {
	if op.Direction != domain.DirectionUp && op.Direction != domain.DirectionDown {
		return warn("AdjustIntensity: unknown direction %q", op.Direction)
	}
	wi, ok := weekNumbered(weeks, op.Week)
	if !ok {
		return warn("AdjustIntensity: week %d not found", op.Week)
	}
	touched := false
	for i := range weeks[wi].Workouts {
		w := &weeks[wi].Workouts[i]
		if next := shiftTag(w.Tags, op.Direction); next != w.Tags {
			w.Tags = next
			touched = true
		}
	}
	if !touched {
		return outcome{}
	}
	return changedWeeks(wi)
}

func setPlanProperty(weeks []domain.TrainingWeek, op domain.SetPlanProperty) outcome {
	if op.ID == "" {
		return warn("SetPlanProperty: missing week id")
	}
	wi, ok := weekWithID(weeks, op.ID)
	if !ok {
		return warn("SetPlanProperty: week %q not found", op.ID)
	}
	if op.Comment != "" {
		weeks[wi].Description = op.Comment
	}
	if op.Tags != nil {
		weeks[wi].Tags = append([]string(nil), op.Tags...)
	}
	return changedWeeks(wi)
}

func addAnnotation(weeks []domain.TrainingWeek, op domain.AddAnnotation) outcome {
	day, bad := parseDay(op.Type(), "date", op.Date)
	if bad != nil {
		return *bad
	}
	wi, i, ok := locate(weeks, day)
	if !ok {
		return warn("AddAnnotation: no workout found on %s", op.Date)
	}
	w := &weeks[wi].Workouts[i]
	w.Notes = appendNote(w.Notes, op.Comment)
	return changedWeeks(wi)
}

func appendNote(notes, note string) string {
	note = strings.TrimSpace(note)
	if note == "" {
		return notes
	}
	if notes == "" {
		return note
	}
	return notes + " " + note
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
