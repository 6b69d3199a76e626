package feedback

import (
	"time"

	"alcyxob/training-planner/internal/domain"
)

// Preferences is the profile subset shared with the reply generator.
type Preferences struct {
	Experience          domain.Experience   `json:"experience"`
	TrainingDays        []domain.Weekday    `json:"trainingDays"`
	GoalRaceDistance    domain.RaceDistance `json:"goalRaceDistance,omitempty"`
	GoalRaceDate        string              `json:"goalRaceDate,omitempty"`
	GoalMileage         float64             `json:"goalMileage"`
	DoubleThresholdDays int                 `json:"numDaysDoubleThreshold"`
}

// Data holds whichever data sets the classifier asked for; unrequested ones stay nil.
type Data struct {
	TodayWorkout      *domain.TrainingWorkout `json:"today_workout,omitempty"`
	RecentLoad        *TrainingLoad           `json:"recent_training_load,omitempty"`
	Preferences       *Preferences            `json:"user_preferences,omitempty"`
	TrainingHistory   *History                `json:"training_history,omitempty"`
	RecoveryPatterns  *RecoveryPatterns       `json:"recovery_patterns,omitempty"`
	TargetDate        string                  `json:"targetDate,omitempty"`
	TodayWorkoutFound bool                    `json:"todayWorkoutFound"`
}

// Gather resolves req.DataNeeded against the plan and profile. profile may be nil.
func Gather(req domain.FeedbackRequest, weeks []domain.TrainingWeek, profile *domain.AthleteProfile, today time.Time) Data {
	var d Data
	for _, need := range req.DataNeeded {
		switch need {
		case domain.NeedTodayWorkout:
			target := domain.TruncateToDay(today)
			for _, a := range req.Actions {
				if a.Parameters.Date != "" || a.Parameters.DayOfWeek != "" {
					target = TargetDate(a.Parameters, today)
					break
				}
			}
			d.TargetDate = domain.DateKey(target)
			if w, ok := WorkoutOn(weeks, target); ok {
				d.TodayWorkout = &w
				d.TodayWorkoutFound = true
			}
		case domain.NeedRecentTrainingLoad:
			l := Load(Window(weeks, today, LoadWindowDays))
			d.RecentLoad = &l
		case domain.NeedUserPreferences:
			if profile != nil {
				d.Preferences = &Preferences{
					Experience:          profile.Experience,
					TrainingDays:        profile.TrainingDays,
					GoalRaceDistance:    profile.GoalRaceDistance,
					GoalRaceDate:        profile.GoalRaceDate,
					GoalMileage:         profile.GoalMileage,
					DoubleThresholdDays: profile.DoubleThresholdDays,
				}
			}
		case domain.NeedTrainingHistory:
			h := Window(weeks, today, HistoryWindowDays)
			d.TrainingHistory = &h
		case domain.NeedRecoveryPatterns:
			r := Recovery(Window(weeks, today, RecoveryWindowDays))
			d.RecoveryPatterns = &r
		}
	}
	return d
}

// WorkoutOn returns the first workout scheduled on day.
func WorkoutOn(weeks []domain.TrainingWeek, day time.Time) (domain.TrainingWorkout, bool) {
	for _, wk := range weeks {
		for _, w := range wk.Workouts {
			if w.OnDate(day) {
				return w.Clone(), true
			}
		}
	}
	return domain.TrainingWorkout{}, false
}
