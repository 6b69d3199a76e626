package planops

import (
	"fmt"
	"time"

	"alcyxob/training-planner/internal/domain"
)

// Explanation is the read-only answer to an ExplainWorkout operation.
type Explanation struct {
	Date    string                 `json:"date"`
	Query   string                 `json:"query,omitempty"`
	Week    int                    `json:"week"`
	Workout domain.TrainingWorkout `json:"workout"`
	Summary string                 `json:"summary"`
}

var purpose = map[domain.WorkoutTag]string{
	domain.TagLT1:           "Aerobic threshold work, held at a controlled effort to build time near marathon pace.",
	domain.TagLT2:           "Lactate threshold work, comfortably hard, to raise the pace you can sustain for about an hour.",
	domain.TagHills:         "Short hill repeats for strength and running economy.",
	domain.TagVO2Max:        "Hard intervals that develop maximal aerobic capacity.",
	domain.TagRaceSpecific:  "Work at goal race pace to rehearse the effort of the race.",
	domain.TagSpeed:         "Fast, short repetitions for turnover and form.",
	domain.TagLongRun:       "The week's longest run, for endurance and fat metabolism.",
	domain.TagMediumLongRun: "A steady medium-long run that adds aerobic volume.",
	domain.TagEasy:          "Easy running for recovery and aerobic base.",
	domain.TagCrosstrain:    "Low-impact cross training.",
	domain.TagOff:           "A rest day.",
}

func explainWorkout(weeks []domain.TrainingWeek, op domain.ExplainWorkout, now time.Time) outcome {
	day := domain.TruncateToDay(now)
	if op.Date != "" {
		d, bad := parseDay(op.Type(), "date", op.Date)
		if bad != nil {
			return *bad
		}
		day = d
	}
	wi, i, ok := locate(weeks, day)
	if !ok {
		return warn("ExplainWorkout: no workout found on %s", domain.DateKey(day))
	}
	w := weeks[wi].Workouts[i]
	summary := fmt.Sprintf("%s on %s: %.1f mi, about %d min.", w.Name, w.DayOfWeek, w.Distance, int(w.Duration/60))
	if p, ok := purpose[w.Tags]; ok {
		summary += " " + p
	}
	return outcome{explanation: &Explanation{
		Date:    domain.DateKey(day),
		Query:   op.Query,
		Week:    weeks[wi].Week,
		Workout: w.Clone(),
		Summary: summary,
	}}
}
