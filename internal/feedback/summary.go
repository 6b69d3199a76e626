package feedback

import (
	"sort"
	"time"

	"alcyxob/training-planner/internal/domain"
)

// Default look-back windows, in days.
const (
	LoadWindowDays     = 7
	HistoryWindowDays  = 30
	RecoveryWindowDays = 30
)

// HistoryEntry is one past workout in a look-back window.
type HistoryEntry struct {
	Date     time.Time         `json:"date"`
	Name     string            `json:"name"`
	Distance float64           `json:"distance"`
	Duration float64           `json:"duration"`
	Tags     domain.WorkoutTag `json:"tags"`
	Week     int               `json:"week"`
}

type History struct {
	Workouts        []HistoryEntry `json:"workouts"`
	TotalWorkouts   int            `json:"totalWorkouts"`
	AverageDistance float64        `json:"averageDistance"`
	AverageDuration float64        `json:"averageDuration"`
}

type TrainingLoad struct {
	TotalDistance   float64 `json:"totalDistance"`
	TotalDuration   float64 `json:"totalDuration"`
	WorkoutCount    int     `json:"workoutCount"`
	RecoveryDays    int     `json:"recoveryDays"`
	AverageDistance float64 `json:"averageDistance"`
	AverageDuration float64 `json:"averageDuration"`
	RecoveryRate    float64 `json:"recoveryRate"`
}

// Recovery assessments.
const (
	RecoveryInsufficient = "insufficient"
	RecoveryOptimal      = "optimal"
	RecoveryExcessive    = "excessive"
)

type RecoveryPatterns struct {
	RecoveryDays           int      `json:"recoveryDays"`
	HardWorkouts           int      `json:"hardWorkouts"`
	RecoveryRate           float64  `json:"recoveryRate"`
	HardWorkoutRate        float64  `json:"hardWorkoutRate"`
	MaxConsecutiveHardDays int      `json:"maxConsecutiveHardDays"`
	RecoveryAssessment     string   `json:"recoveryAssessment"`
	Recommendations        []string `json:"recommendations"`
}

// Window returns the workouts dated within the days before end (inclusive), oldest first.
func Window(weeks []domain.TrainingWeek, end time.Time, days int) History {
	end = domain.TruncateToDay(end)
	start := end.AddDate(0, 0, -days)
	h := History{Workouts: []HistoryEntry{}}
	for _, wk := range weeks {
		for _, w := range wk.Workouts {
			d := domain.TruncateToDay(w.Date)
			if d.Before(start) || d.After(end) {
				continue
			}
			h.Workouts = append(h.Workouts, HistoryEntry{
				Date:     w.Date,
				Name:     w.Name,
				Distance: w.Distance,
				Duration: w.Duration,
				Tags:     w.Tags,
				Week:     wk.Week,
			})
		}
	}
	sort.SliceStable(h.Workouts, func(i, j int) bool { return h.Workouts[i].Date.Before(h.Workouts[j].Date) })

	h.TotalWorkouts = len(h.Workouts)
	if h.TotalWorkouts > 0 {
		var dist, dur float64
		for _, e := range h.Workouts {
			dist += e.Distance
			dur += e.Duration
		}
		h.AverageDistance = dist / float64(h.TotalWorkouts)
		h.AverageDuration = dur / float64(h.TotalWorkouts)
	}
	return h
}

func isRecovery(e HistoryEntry) bool { return e.Tags == domain.TagEasy || e.Distance == 0 }

func isHard(e HistoryEntry) bool {
	return e.Tags == domain.TagLT2 || e.Tags == domain.TagVO2Max || e.Distance > 8
}

// Load summarizes volume over a window.
func Load(h History) TrainingLoad {
	l := TrainingLoad{WorkoutCount: len(h.Workouts)}
	for _, e := range h.Workouts {
		l.TotalDistance += e.Distance
		l.TotalDuration += e.Duration
		if isRecovery(e) {
			l.RecoveryDays++
		}
	}
	if l.WorkoutCount > 0 {
		n := float64(l.WorkoutCount)
		l.AverageDistance = l.TotalDistance / n
		l.AverageDuration = l.TotalDuration / n
		l.RecoveryRate = float64(l.RecoveryDays) / n
	}
	return l
}

// Recovery classifies each workout as recovery, hard or neither and grades the balance.
func Recovery(h History) RecoveryPatterns {
	var r RecoveryPatterns
	streak := 0
	for _, e := range h.Workouts {
		switch {
		case isRecovery(e):
			r.RecoveryDays++
			streak = 0
		case isHard(e):
			r.HardWorkouts++
			streak++
			r.MaxConsecutiveHardDays = max(r.MaxConsecutiveHardDays, streak)
		default:
			streak = 0
		}
	}
	if n := len(h.Workouts); n > 0 {
		r.RecoveryRate = float64(r.RecoveryDays) / float64(n)
		r.HardWorkoutRate = float64(r.HardWorkouts) / float64(n)
	}

	switch {
	case r.RecoveryRate < 0.2:
		r.RecoveryAssessment = RecoveryInsufficient
	case r.RecoveryRate > 0.5:
		r.RecoveryAssessment = RecoveryExcessive
	default:
		r.RecoveryAssessment = RecoveryOptimal
	}
	r.Recommendations = recommendations(r)
	return r
}

func recommendations(r RecoveryPatterns) []string {
	var out []string
	if r.RecoveryRate < 0.2 {
		out = append(out, "Consider adding more recovery days to your training schedule")
	}
	if r.HardWorkoutRate > 0.4 {
		out = append(out, "You may be doing too many hard workouts - consider reducing intensity")
	}
	if r.MaxConsecutiveHardDays > 3 {
		out = append(out, "Avoid more than 3 consecutive hard training days")
	}
	if len(out) == 0 {
		out = append(out, "Your recovery patterns look good - keep it up!")
	}
	return out
}
