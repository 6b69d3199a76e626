package plangen

import (
	"math"
	"strconv"

	"alcyxob/training-planner/internal/domain"
)

// Added easy running at the end of a key workout, in minutes.
const (
	minPadMinutes = 10
	maxPadMinutes = 20
)

// ScheduleKeyWorkouts places validated drafts on their assigned days and
// computes their distance and duration.
func ScheduleKeyWorkouts(wc *WeekContext, drafts []domain.DraftWorkout) (domain.TrainingWeek, error) {
	var lt1s, lt2s []domain.DraftWorkout
	var vo2 *domain.DraftWorkout
	for i := range drafts {
		switch drafts[i].Tags {
		case domain.TagLT1:
			lt1s = append(lt1s, drafts[i])
		case domain.TagLT2:
			lt2s = append(lt2s, drafts[i])
		case domain.TagHills, domain.TagRaceSpecific, domain.TagVO2Max, domain.TagSpeed:
			if vo2 == nil {
				vo2 = &drafts[i]
			}
		}
	}

	type placement struct {
		draft domain.DraftWorkout
		day   domain.Weekday
		name  string
	}
	var placed []placement

	for _, day := range wc.Days.DoubleThresholdDays {
		if len(lt1s) == 0 || len(lt2s) == 0 {
			break
		}
		placed = append(placed,
			placement{lt1s[0], day, "(AM) " + lt1s[0].Name},
			placement{lt2s[0], day, "(PM) " + lt2s[0].Name},
		)
		lt1s, lt2s = lt1s[1:], lt2s[1:]
	}
	if wc.Days.LT1Day != "" && len(lt1s) > 0 {
		placed = append(placed, placement{lt1s[0], wc.Days.LT1Day, lt1s[0].Name})
	}
	if wc.Days.LT2Day != "" && len(lt2s) > 0 {
		placed = append(placed, placement{lt2s[0], wc.Days.LT2Day, lt2s[0].Name})
	}
	if wc.Days.VO2RaceDay != "" && vo2 != nil {
		placed = append(placed, placement{*vo2, wc.Days.VO2RaceDay, vo2.Name})
	}

	week := wc.EmptyWeek()
	for _, p := range placed {
		w, err := buildKeyWorkout(wc, p.draft, p.day, p.name)
		if err != nil {
			return domain.TrainingWeek{}, err
		}
		week.Workouts = append(week.Workouts, w)
		week.TotalMileage += w.Distance
		week.TotalDuration += w.Duration
	}
	return week, nil
}

func buildKeyWorkout(wc *WeekContext, d domain.DraftWorkout, day domain.Weekday, name string) (domain.TrainingWorkout, error) {
	warmup, err := Evaluate(d.Warmup, wc.Paces)
	if err != nil {
		return domain.TrainingWorkout{}, err
	}
	main, err := Evaluate(d.Workout, wc.Paces)
	if err != nil {
		return domain.TrainingWorkout{}, err
	}
	core := warmup.Rounded().Add(main.Rounded())

	easy := wc.Paces.EasyLow()
	total := padDistance(core.Distance, easy)
	added := total - core.Distance

	var cooldown []domain.Segment
	if added > 0 {
		cooldown = []domain.Segment{domain.Set(domain.ZoneEasy, 0, domain.LengthDistance, added*metersPerMile, 0)}
	}

	return domain.TrainingWorkout{
		Name:            name,
		Date:            wc.Dates[day],
		DayOfWeek:       day,
		Tags:            d.Tags,
		Workout:         domain.CloneSegments(d.Workout),
		Warmup:          domain.CloneSegments(d.Warmup),
		Cooldown:        cooldown,
		CooldownTarget:  "Cooldown to " + strconv.FormatFloat(total, 'f', -1, 64),
		Distance:        total,
		Duration:        core.Duration + added*easy,
		TargetHeartRate: d.TargetHeartRate,
		TargetPace:      PaceEntries(d.Workout, wc.Paces),
		Notes:           d.Notes,
	}, nil
}

// padDistance picks a total above core that adds between 10 and 20 minutes of
// easy running, stepping up by whole miles and back by half miles.
func padDistance(core, easyPace float64) float64 {
	minutes := func(total float64) float64 { return (total - core) * easyPace / 60 }
	total := math.Ceil(core) + 1
	if easyPace <= 0 {
		return total
	}
	for minutes(total) <= minPadMinutes {
		total++
	}
	for minutes(total) >= maxPadMinutes && total-0.5 > core {
		total -= 0.5
	}
	return total
}
