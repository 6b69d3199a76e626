// internal/domain/workout.go
package domain

import "time"

// WorkoutTag categorizes a workout.
type WorkoutTag string

const (
	TagLT1           WorkoutTag = "LT1"
	TagLT2           WorkoutTag = "LT2"
	TagHills         WorkoutTag = "Hills"
	TagMediumLongRun WorkoutTag = "MediumLongRun"
	TagLongRun       WorkoutTag = "LongRun"
	TagEasy          WorkoutTag = "Easy"
	TagVO2Max        WorkoutTag = "VO2Max"
	TagRaceSpecific  WorkoutTag = "RaceSpecific"
	TagSpeed         WorkoutTag = "Speed"
	TagCrosstrain    WorkoutTag = "Crosstrain"
	TagOff           WorkoutTag = "Off"
)

var workoutTags = map[WorkoutTag]bool{
	TagLT1: true, TagLT2: true, TagHills: true, TagMediumLongRun: true, TagLongRun: true,
	TagEasy: true, TagVO2Max: true, TagRaceSpecific: true, TagSpeed: true, TagCrosstrain: true, TagOff: true,
}

func (t WorkoutTag) Valid() bool { return workoutTags[t] }

// IsHard reports whether the tag is a quality session.
func (t WorkoutTag) IsHard() bool {
	switch t {
	case TagLT1, TagLT2, TagHills, TagVO2Max, TagRaceSpecific, TagSpeed:
		return true
	}
	return false
}

// TrainingWorkout is a single scheduled session.
type TrainingWorkout struct {
	Name            string      `bson:"name" json:"name"`
	Date            time.Time   `bson:"date" json:"date"`
	DayOfWeek       Weekday     `bson:"dayOfWeek" json:"dayOfWeek"`
	Tags            WorkoutTag  `bson:"tags" json:"tags"`
	Workout         []Segment   `bson:"workout,omitempty" json:"workout,omitempty"`
	Warmup          []Segment   `bson:"warmup,omitempty" json:"warmup,omitempty"`
	Cooldown        []Segment   `bson:"cooldown,omitempty" json:"cooldown,omitempty"`
	CooldownTarget  string      `bson:"cooldownTarget,omitempty" json:"cooldownTarget,omitempty"` // "Cooldown to X"
	Distance        float64     `bson:"distance" json:"distance"`                                 // miles
	Duration        float64     `bson:"duration" json:"duration"`                                 // seconds
	TargetHeartRate string      `bson:"targetHeartRate,omitempty" json:"targetHeartRate,omitempty"`
	TargetPace      []PaceEntry `bson:"targetPace" json:"targetPace"`
	Notes           string      `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Clone returns a deep copy.
func (w TrainingWorkout) Clone() TrainingWorkout {
	w.Workout = CloneSegments(w.Workout)
	w.Warmup = CloneSegments(w.Warmup)
	w.Cooldown = CloneSegments(w.Cooldown)
	if w.TargetPace != nil {
		w.TargetPace = append(make([]PaceEntry, 0, len(w.TargetPace)), w.TargetPace...)
	}
	return w
}

// OnDate reports whether the workout falls on the same UTC calendar day as t.
func (w TrainingWorkout) OnDate(t time.Time) bool {
	return DateKey(w.Date) == DateKey(t)
}
