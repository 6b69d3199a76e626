package plangen

import (
	"math"

	"alcyxob/training-planner/internal/domain"
)

const (
	maxSingleRunSeconds = 70 * 60
	pmDoubleSeconds     = 25 * 60
	easyHeartRate       = "<70% MHR"
)

// LongRunMiles is min(cap, floor(20% of the week) + 1), capped at 20 for marathoners and 16 otherwise.
func LongRunMiles(weekMileage float64, race domain.RaceDistance) float64 {
	limit := 16.0
	if race == domain.RaceMarathon {
		limit = 20
	}
	return math.Min(limit, math.Floor(0.2*weekMileage)+1)
}

// DivideEasyMileage splits miles over n days in half-mile steps, handing any
// remainder out round-robin from the first day.
func DivideEasyMileage(miles float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if miles < 0 {
		miles = 0
	}
	miles = math.Floor(miles/0.5) * 0.5
	base := math.Floor(miles/float64(n)*2) / 2
	out := make([]float64, n)
	for i := range out {
		out[i] = base
	}
	remainder := miles - base*float64(n)
	for i := 0; remainder > 0 && i < n; i++ {
		out[i] += 0.5
		remainder -= 0.5
	}
	return out
}

// FillEasyRuns adds the long run, then spreads what is left of the week's
// target over the training days that have no session yet.
func FillEasyRuns(wc *WeekContext, week *domain.TrainingWeek) {
	easy := wc.Paces.EasyLow()
	easyPace := []domain.PaceEntry{{Zone: domain.ZoneEasy, Pace: mustPace(wc, domain.ZoneEasy)}}

	add := func(name string, day domain.Weekday, tag domain.WorkoutTag, miles float64, notes string) {
		secs := easyDuration(miles, easy)
		week.Workouts = append(week.Workouts, domain.TrainingWorkout{
			Name:            name,
			Date:            wc.Dates[day],
			DayOfWeek:       day,
			Tags:            tag,
			Distance:        miles,
			Duration:        secs,
			TargetHeartRate: easyHeartRate,
			TargetPace:      append([]domain.PaceEntry(nil), easyPace...),
			Notes:           notes,
		})
		week.TotalMileage += miles
		week.TotalDuration += secs
	}

	if day := wc.Days.LongRunDay; day != "" {
		notes := "Hill strides @5k effort after"
		if len(wc.Profile.TrainingDays) == 4 {
			notes = "Progress into LT1"
		}
		add("Long Run + Hill Strides", day, domain.TagLongRun, LongRunMiles(wc.Target.Mileage, wc.Profile.GoalRaceDistance), notes)
	}

	busy := make(map[domain.Weekday]bool, len(week.Workouts))
	for _, w := range week.Workouts {
		busy[w.DayOfWeek] = true
	}
	var open []domain.Weekday
	for _, d := range wc.Profile.TrainingDays {
		if !busy[d] {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		return
	}

	maxPerRun := math.Ceil(maxSingleRunSeconds / easy)
	for i, miles := range DivideEasyMileage(wc.Target.Mileage-week.TotalMileage, len(open)) {
		if miles <= 0 {
			continue
		}
		day := open[i]
		if miles <= maxPerRun {
			add("Easy Run", day, domain.TagEasy, miles, "")
			continue
		}
		pm := math.Ceil(pmDoubleSeconds / easy)
		am := miles - pm
		for am > maxPerRun {
			am--
			pm++
		}
		add("AM Easy Run", day, domain.TagEasy, am, "")
		add("PM Easy Run", day, domain.TagEasy, pm, "")
	}
}

func easyDuration(miles, pace float64) float64 {
	return math.Ceil(miles*pace/300) * 300
}

func mustPace(wc *WeekContext, zone domain.PaceZone) domain.Pace {
	p, _ := wc.Paces.Pace(zone)
	return p
}
