package feedback

import (
	"reflect"
	"testing"
	"time"

	"alcyxob/training-planner/internal/domain"
)

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// thursday is 2025-01-16.
var thursday = date("2025-01-16")

func TestNextWeekday(t *testing.T) {
	cases := map[string]string{
		"thursday":  "2025-01-16",
		"Friday":    "2025-01-17",
		"sunday":    "2025-01-19",
		"monday":    "2025-01-20",
		"wednesday": "2025-01-22",
		"someday":   "2025-01-16",
	}
	for name, want := range cases {
		if got := domain.DateKey(NextWeekday(thursday, name)); got != want {
			t.Errorf("NextWeekday(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestTargetDatePrecedence(t *testing.T) {
	p := domain.ActionParameters{Date: "2025-02-01", DayOfWeek: "monday"}
	if got := domain.DateKey(TargetDate(p, thursday)); got != "2025-02-01" {
		t.Errorf("explicit date: got %s", got)
	}
	p.Date = "not a date"
	if got := domain.DateKey(TargetDate(p, thursday)); got != "2025-01-20" {
		t.Errorf("weekday fallback: got %s", got)
	}
	if got := domain.DateKey(TargetDate(domain.ActionParameters{}, thursday.Add(15*time.Hour))); got != "2025-01-16" {
		t.Errorf("today fallback: got %s", got)
	}
}

func TestTranslate(t *testing.T) {
	miles := 3.0
	req := domain.FeedbackRequest{
		Intent:          "modify_workout",
		OriginalMessage: "I'm exhausted",
		Actions: []domain.FeedbackAction{
			{Type: domain.ActionAdjustWorkoutIntensity, Parameters: domain.ActionParameters{Intensity: domain.AdjustEasier}, Reasoning: "tired"},
			{Type: domain.ActionSkipWorkout, Parameters: domain.ActionParameters{DayOfWeek: "saturday"}},
			{Type: domain.ActionAddRecovery, Parameters: domain.ActionParameters{Date: "2025-01-18", Distance: &miles}},
			{Type: domain.ActionExplainWorkout},
			{Type: domain.ActionTrainingAdvice},
			{Type: "book_massage"},
		},
	}
	got := Translate(req, thursday)

	want := []domain.PlanOperation{
		domain.AdjustWorkoutIntensity{Date: "2025-01-16", Adjustment: domain.AdjustEasier, Reason: "tired", UserFeedback: "I'm exhausted"},
		domain.AdjustWorkoutIntensity{Date: "2025-01-18", Adjustment: domain.AdjustSkip, UserFeedback: "I'm exhausted"},
		domain.ModifyWorkoutBasedOnFeedback{
			Date:                   "2025-01-18",
			UserFeedback:           "I'm exhausted",
			SuggestedModifications: domain.SuggestedModifications{Type: domain.ModificationRecovery, Distance: &miles},
		},
		domain.ExplainWorkout{Date: "2025-01-16", Query: "I'm exhausted"},
	}
	if !reflect.DeepEqual(got.Operations, want) {
		t.Errorf("operations:\n got %#v\nwant %#v", got.Operations, want)
	}
	if len(got.Passthrough) != 2 || got.Passthrough[1].Type != "book_massage" {
		t.Errorf("passthrough = %+v", got.Passthrough)
	}
}

func TestTranslateDefaultsIntensityToModerate(t *testing.T) {
	got := Translate(domain.FeedbackRequest{Actions: []domain.FeedbackAction{{Type: domain.ActionAdjustWorkoutIntensity}}}, thursday)
	op, ok := got.Operations[0].(domain.AdjustWorkoutIntensity)
	if !ok || op.Adjustment != domain.AdjustModerate {
		t.Errorf("got %#v", got.Operations)
	}
}

func TestTranslateEmpty(t *testing.T) {
	got := Translate(domain.FeedbackRequest{}, thursday)
	if got.Operations == nil || got.Passthrough == nil || len(got.Operations) != 0 {
		t.Errorf("got %#v", got)
	}
}

func entry(d string, tag domain.WorkoutTag, miles float64) domain.TrainingWorkout {
	return domain.TrainingWorkout{Name: string(tag), Date: date(d), Tags: tag, Distance: miles, Duration: miles * 500}
}

func plan() []domain.TrainingWeek {
	return []domain.TrainingWeek{
		{Week: 1, Workouts: []domain.TrainingWorkout{
			entry("2025-01-06", domain.TagEasy, 5),
			entry("2025-01-07", domain.TagLT2, 8),
			entry("2025-01-08", domain.TagVO2Max, 7),
			entry("2025-01-09", domain.TagLT1, 9),
			entry("2025-01-10", domain.TagLongRun, 12),
		}},
		{Week: 2, Workouts: []domain.TrainingWorkout{
			entry("2025-01-13", domain.TagLT2, 8),
			entry("2025-01-16", domain.TagEasy, 6),
			entry("2025-01-20", domain.TagLongRun, 14),
		}},
	}
}

func TestWindow(t *testing.T) {
	h := Window(plan(), thursday, 7)
	if h.TotalWorkouts != 4 {
		t.Fatalf("workouts = %d, want 4 (Jan 9 through 16)", h.TotalWorkouts)
	}
	if h.Workouts[0].Week != 1 || h.Workouts[3].Week != 2 {
		t.Errorf("entries = %+v", h.Workouts)
	}
	if h.AverageDistance != 8.75 {
		t.Errorf("average distance = %v", h.AverageDistance)
	}
}

func TestLoad(t *testing.T) {
	l := Load(Window(plan(), thursday, 7))
	if l.TotalDistance != 35 || l.WorkoutCount != 4 || l.RecoveryDays != 1 || l.RecoveryRate != 0.25 {
		t.Errorf("load = %+v", l)
	}
	if empty := Load(History{}); empty.RecoveryRate != 0 || empty.AverageDistance != 0 {
		t.Errorf("empty load = %+v", empty)
	}
}

func TestRecovery(t *testing.T) {
	r := Recovery(Window(plan(), thursday, 30))
	// Easy, LT2, VO2Max, LT1(9mi), LongRun(12mi), LT2, Easy
	if r.RecoveryDays != 2 || r.HardWorkouts != 5 || r.MaxConsecutiveHardDays != 5 {
		t.Errorf("patterns = %+v", r)
	}
	if r.RecoveryAssessment != RecoveryOptimal {
		t.Errorf("assessment = %s", r.RecoveryAssessment)
	}
	want := []string{
		"You may be doing too many hard workouts - consider reducing intensity",
		"Avoid more than 3 consecutive hard training days",
	}
	if !reflect.DeepEqual(r.Recommendations, want) {
		t.Errorf("recommendations = %v", r.Recommendations)
	}

	empty := Recovery(History{})
	if empty.RecoveryAssessment != RecoveryInsufficient || len(empty.Recommendations) != 1 {
		t.Errorf("empty = %+v", empty)
	}
}

func TestRecoveryLooksGood(t *testing.T) {
	h := History{Workouts: []HistoryEntry{
		{Tags: domain.TagEasy, Distance: 5},
		{Tags: domain.TagLT1, Distance: 7},
		{Tags: domain.TagEasy, Distance: 5},
		{Tags: domain.TagLT2, Distance: 7},
	}}
	r := Recovery(h)
	if r.RecoveryAssessment != RecoveryOptimal || !reflect.DeepEqual(r.Recommendations, []string{"Your recovery patterns look good - keep it up!"}) {
		t.Errorf("got %+v", r)
	}
}

func TestGather(t *testing.T) {
	req := domain.FeedbackRequest{
		DataNeeded: []domain.DataNeed{domain.NeedTodayWorkout, domain.NeedRecentTrainingLoad, domain.NeedUserPreferences},
		Actions:    []domain.FeedbackAction{{Type: domain.ActionSkipWorkout, Parameters: domain.ActionParameters{DayOfWeek: "monday"}}},
	}
	profile := &domain.AthleteProfile{Experience: domain.ExperienceAdvanced, GoalMileage: 60}
	d := Gather(req, plan(), profile, thursday)
	if !d.TodayWorkoutFound || d.TargetDate != "2025-01-20" || d.TodayWorkout.Tags != domain.TagLongRun {
		t.Errorf("today workout = %+v (%s)", d.TodayWorkout, d.TargetDate)
	}
	if d.RecentLoad == nil || d.RecentLoad.WorkoutCount != 4 {
		t.Errorf("load = %+v", d.RecentLoad)
	}
	if d.Preferences == nil || d.Preferences.GoalMileage != 60 {
		t.Errorf("preferences = %+v", d.Preferences)
	}
	if d.TrainingHistory != nil || d.RecoveryPatterns != nil {
		t.Error("unrequested data should be nil")
	}
}
