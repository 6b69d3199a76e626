// Package planops applies plan operations to a copy of a plan and reports
// what changed.
package planops

import (
	"time"

	"alcyxob/training-planner/internal/domain"
)

// Result of running an operation list.
type Result struct {
	UpdatedPlan  []domain.TrainingWeek `json:"updatedPlan"`
	UpdatedWeeks []domain.TrainingWeek `json:"updatedWeeks"`
	Changeset    []domain.PatchOp      `json:"changeset"`
	Warnings     []string              `json:"warnings"`
	Explanations []Explanation         `json:"explanations,omitempty"`
}

// Engine runs operations. The clock resolves "today" for operations that default to it.
type Engine struct {
	now func() time.Time
}

// NewEngine returns an engine using now as its clock; nil means time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// outcome is what applying one operation did.
type outcome struct {
	changed     []int // indexes into the plan
	warning     string
	explanation *Explanation
}

// Run applies ops in order to a deep copy of plan. An operation whose target
// cannot be found adds a warning and changes nothing; the rest still run.
func (e *Engine) Run(plan []domain.TrainingWeek, ops []domain.PlanOperation) (Result, error) {
	original := domain.CloneWeeks(plan)
	working := domain.CloneWeeks(plan)

	res := Result{
		UpdatedWeeks: []domain.TrainingWeek{},
		Warnings:     []string{},
	}
	changed := make(map[int]bool)
	for _, op := range ops {
		out := e.apply(working, op)
		if out.warning != "" {
			res.Warnings = append(res.Warnings, out.warning)
		}
		if out.explanation != nil {
			res.Explanations = append(res.Explanations, *out.explanation)
		}
		for _, i := range out.changed {
			changed[i] = true
		}
	}

	for i := range working {
		if changed[i] {
			working[i].RecomputeTotals()
			res.UpdatedWeeks = append(res.UpdatedWeeks, working[i].Clone())
		}
	}

	cs, err := Diff(original, working)
	if err != nil {
		return Result{}, err
	}
	res.Changeset = cs
	res.UpdatedPlan = working
	return res, nil
}

func (e *Engine) apply(weeks []domain.TrainingWeek, op domain.PlanOperation) outcome {
	if op == nil {
		return warn("empty operation")
	}
	switch op := op.(type) {
	case domain.MoveWorkout:
		return moveWorkout(weeks, op)
	case domain.ReplaceWorkout:
		return replaceWorkout(weeks, op)
	case domain.ModifyWorkout:
		return modifyWorkout(weeks, op)
	case domain.InsertWorkout:
		return insertWorkout(weeks, op)
	case domain.DeleteWorkout:
		return deleteWorkout(weeks, op)
	case domain.SwapWorkouts:
		return swapWorkouts(weeks, op)
	case domain.ShiftWeek:
		return shiftWeek(weeks, op)
	case domain.AdjustWeekVolume:
		return adjustWeekVolume(weeks, op)
	case domain.AdjustIntensity:
		return adjustIntensity(weeks, op)
	case domain.SetPlanProperty:
		return setPlanProperty(weeks, op)
	case domain.AddAnnotation:
		return addAnnotation(weeks, op)
	case domain.ExplainWorkout:
		return explainWorkout(weeks, op, e.now())
	case domain.AdjustWorkoutIntensity:
		return adjustWorkoutIntensity(weeks, op)
	case domain.ModifyWorkoutBasedOnFeedback:
		return modifyBasedOnFeedback(weeks, op)
	default:
		return warn("%s: unsupported operation", op.Type())
	}
}

// locate finds the first workout on day.
func locate(weeks []domain.TrainingWeek, day time.Time) (wi, i int, ok bool) {
	for wi := range weeks {
		for i, w := range weeks[wi].Workouts {
			if w.OnDate(day) {
				return wi, i, true
			}
		}
	}
	return -1, -1, false
}

// weekContaining finds the week whose span includes day.
func weekContaining(weeks []domain.TrainingWeek, day time.Time) (int, bool) {
	for i, w := range weeks {
		if w.Contains(day) {
			return i, true
		}
	}
	return -1, false
}

func weekNumbered(weeks []domain.TrainingWeek, n int) (int, bool) {
	for i, w := range weeks {
		if w.Week == n {
			return i, true
		}
	}
	return -1, false
}

func weekWithID(weeks []domain.TrainingWeek, id string) (int, bool) {
	for i, w := range weeks {
		if w.ID == id {
			return i, true
		}
	}
	return -1, false
}

func removeAt(ws []domain.TrainingWorkout, i int) []domain.TrainingWorkout {
	return append(ws[:i:i], ws[i+1:]...)
}
