// Package feedback turns classified athlete messages into plan operations and
// gathers the training context a reply needs.
package feedback

import (
	"strings"
	"time"

	"alcyxob/training-planner/internal/domain"
)

// Translation is the result of mapping classifier actions onto the plan.
type Translation struct {
	Operations  []domain.PlanOperation
	Passthrough []domain.FeedbackAction // recognized or not, produced no mutation
}

// Translate maps each action to at most one operation. today resolves
// relative targets and is never read from the wall clock.
func Translate(req domain.FeedbackRequest, today time.Time) Translation {
	out := Translation{
		Operations:  []domain.PlanOperation{},
		Passthrough: []domain.FeedbackAction{},
	}
	for _, a := range req.Actions {
		date := domain.DateKey(TargetDate(a.Parameters, today))
		switch a.Type {
		case domain.ActionAdjustWorkoutIntensity:
			adj := a.Parameters.Intensity
			if adj == "" {
				adj = domain.AdjustModerate
			}
			out.Operations = append(out.Operations, domain.AdjustWorkoutIntensity{
				Date:         date,
				Adjustment:   adj,
				Reason:       a.Reasoning,
				UserFeedback: req.OriginalMessage,
			})
		case domain.ActionSkipWorkout:
			out.Operations = append(out.Operations, domain.AdjustWorkoutIntensity{
				Date:         date,
				Adjustment:   domain.AdjustSkip,
				Reason:       a.Reasoning,
				UserFeedback: req.OriginalMessage,
			})
		case domain.ActionAddRecovery:
			out.Operations = append(out.Operations, domain.ModifyWorkoutBasedOnFeedback{
				Date:         date,
				UserFeedback: req.OriginalMessage,
				SuggestedModifications: domain.SuggestedModifications{
					Type:     domain.ModificationRecovery,
					Distance: a.Parameters.Distance,
					Duration: a.Parameters.Duration,
				},
			})
		case domain.ActionExplainWorkout:
			out.Operations = append(out.Operations, domain.ExplainWorkout{
				Date:  date,
				Query: req.OriginalMessage,
			})
		default:
			out.Passthrough = append(out.Passthrough, a)
		}
	}
	return out
}

// TargetDate picks the day an action refers to: an explicit date, else the
// next occurrence of the named weekday (today counts), else today.
func TargetDate(p domain.ActionParameters, today time.Time) time.Time {
	today = domain.TruncateToDay(today)
	if p.Date != "" {
		if d, err := domain.ParseDate(p.Date); err == nil {
			return d
		}
	}
	if p.DayOfWeek != "" {
		return NextWeekday(today, p.DayOfWeek)
	}
	return today
}

// NextWeekday returns the first date on or after today falling on name.
// An unrecognized name yields today.
func NextWeekday(today time.Time, name string) time.Time {
	wd, err := domain.ParseWeekday(strings.TrimSpace(name))
	if err != nil {
		return domain.TruncateToDay(today)
	}
	current := domain.WeekdayOf(today).Index()
	ahead := (wd.Index() - current + 7) % 7
	return domain.TruncateToDay(today).AddDate(0, 0, ahead)
}
