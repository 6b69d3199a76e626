// internal/domain/feedback.go
package domain

// FeedbackRequest is the structured form of a free-text athlete message, as
// produced by the classifier.
type FeedbackRequest struct {
	Intent          string           `json:"intent"`
	Context         FeedbackContext  `json:"context"`
	DataNeeded      []DataNeed       `json:"dataNeeded,omitempty"`
	Actions         []FeedbackAction `json:"actions,omitempty"`
	Response        *ResponseConfig  `json:"response,omitempty"`
	OriginalMessage string           `json:"originalMessage,omitempty"`
}

// FeedbackContext values are constrained by the classifier schema:
// temporal today|yesterday|this_week|future|past, physical tired|sore|energized|normal|injured,
// mental motivated|unmotivated|stressed|focused|confused, training base|build|peak|recovery|taper.
type FeedbackContext struct {
	Temporal string `json:"temporal,omitempty"`
	Physical string `json:"physical,omitempty"`
	Mental   string `json:"mental,omitempty"`
	Training string `json:"training,omitempty"`
}

// DataNeed names a data set the classifier wants before answering.
type DataNeed string

const (
	NeedTodayWorkout       DataNeed = "today_workout"
	NeedRecentTrainingLoad DataNeed = "recent_training_load"
	NeedUserPreferences    DataNeed = "user_preferences"
	NeedTrainingHistory    DataNeed = "training_history"
	NeedRecoveryPatterns   DataNeed = "recovery_patterns"
)

// ActionType is the classifier's action label. It is free-form on the wire;
// only the constants below map to plan mutations.
type ActionType string

const (
	ActionAdjustWorkoutIntensity ActionType = "adjust_workout_intensity"
	ActionSkipWorkout            ActionType = "skip_workout"
	ActionAddRecovery            ActionType = "add_recovery"
	ActionExplainWorkout         ActionType = "explain_workout"
	ActionTrainingAdvice         ActionType = "provide_training_advice"
)

type ActionParameters struct {
	Intensity IntensityAdjustment `json:"intensity,omitempty"`
	Date      string              `json:"date,omitempty"`      // YYYY-MM-DD
	DayOfWeek string              `json:"dayOfWeek,omitempty"` // lower-case weekday
	Distance  *float64            `json:"distance,omitempty"`
	Duration  *float64            `json:"duration,omitempty"`
}

type FeedbackAction struct {
	Type       ActionType       `json:"type"`
	Parameters ActionParameters `json:"parameters"`
	Reasoning  string           `json:"reasoning"`
	Confidence float64          `json:"confidence"`
}

type ResponseConfig struct {
	Tone            string   `json:"tone,omitempty"` // encouraging | educational | supportive
	IncludeTips     bool     `json:"includeTips"`
	IncludeRecovery bool     `json:"includeRecovery"`
	Sections        []string `json:"sections,omitempty"`
}
