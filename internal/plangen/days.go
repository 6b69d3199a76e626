package plangen

import (
	"fmt"
	"sort"

	"alcyxob/training-planner/internal/domain"
)

// DayAssignment places the week's key roles on weekdays. Empty fields are unassigned.
type DayAssignment struct {
	LT1Day              domain.Weekday   `json:"LT1Day,omitempty"`
	LT2Day              domain.Weekday   `json:"LT2Day,omitempty"`
	VO2RaceDay          domain.Weekday   `json:"VO2RaceDay,omitempty"` // hills or race-specific work
	LongRunDay          domain.Weekday   `json:"LongRunDay,omitempty"`
	DoubleThresholdDays []domain.Weekday `json:"doubleThresholdDays,omitempty"`
}

// KeyDays lists every weekday carrying a role.
func (a DayAssignment) KeyDays() []domain.Weekday {
	out := append([]domain.Weekday(nil), a.DoubleThresholdDays...)
	for _, d := range []domain.Weekday{a.LT1Day, a.LT2Day, a.VO2RaceDay, a.LongRunDay} {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// AssignWorkoutDays applies the fixed spacing pattern for 4 to 7 training days.
func AssignWorkoutDays(days []domain.Weekday, doubleThreshold int, raceSpecific bool) (DayAssignment, error) {
	switch len(days) {
	case 4:
		if raceSpecific {
			return DayAssignment{LT2Day: days[1], VO2RaceDay: days[3]}, nil
		}
		return DayAssignment{LongRunDay: days[1], LT2Day: days[3]}, nil
	case 5:
		return assignFiveDays(days)
	case 6:
		missing := missingDays(days)
		if len(missing) != 1 {
			return DayAssignment{}, fmt.Errorf("%w: six training days must be distinct weekdays", ErrUnsupportedConfiguration)
		}
		// Double-threshold weeks keep the athlete's own day order; plain weeks restart after the rest day.
		if doubleThreshold > 0 {
			return assignByOffsets(days, doubleThreshold, 0)
		}
		return assignByOffsets(rotateAfter(missing[0]), 0, 0)
	case 7:
		return assignByOffsets(days, doubleThreshold, 6)
	default:
		return DayAssignment{}, fmt.Errorf("%w: %d training days", ErrUnsupportedConfiguration, len(days))
	}
}

// assignByOffsets fills positions 1, 3, 5 and the long-run position, folding
// LT1 (and then LT2) into double-threshold days.
func assignByOffsets(order []domain.Weekday, doubleThreshold, longRunAt int) (DayAssignment, error) {
	a := DayAssignment{VO2RaceDay: order[5], LongRunDay: order[longRunAt]}
	switch doubleThreshold {
	case 0:
		a.LT1Day, a.LT2Day = order[1], order[3]
	case 1:
		a.DoubleThresholdDays = []domain.Weekday{order[1]}
		a.LT2Day = order[3]
	case 2:
		a.DoubleThresholdDays = []domain.Weekday{order[1], order[3]}
	default:
		return DayAssignment{}, fmt.Errorf("%w: %d double-threshold days", ErrUnsupportedConfiguration, doubleThreshold)
	}
	return a, nil
}

func assignFiveDays(days []domain.Weekday) (DayAssignment, error) {
	missing := missingDays(days)
	if len(missing) != 2 {
		return DayAssignment{}, fmt.Errorf("%w: five training days must be distinct weekdays", ErrUnsupportedConfiguration)
	}
	first, second := missing[0].Index(), missing[1].Index()
	blocks := [][]domain.Weekday{
		append([]domain.Weekday(nil), domain.Weekdays[first+1:second]...),
		append(append([]domain.Weekday(nil), domain.Weekdays[second+1:]...), domain.Weekdays[:first]...),
	}
	sort.SliceStable(blocks, func(i, j int) bool { return len(blocks[i]) > len(blocks[j]) })
	main, side := blocks[0], blocks[1]

	switch len(main) {
	case 5:
		return DayAssignment{LT1Day: main[0], LT2Day: main[2], VO2RaceDay: main[4], LongRunDay: main[1]}, nil
	case 4:
		return DayAssignment{LT1Day: main[1], LT2Day: main[3], VO2RaceDay: side[0], LongRunDay: main[0]}, nil
	default: // 3 + 2
		return DayAssignment{LT1Day: main[0], LT2Day: main[2], VO2RaceDay: side[1], LongRunDay: main[1]}, nil
	}
}

// missingDays returns the weekdays not in days, in Monday-first order.
func missingDays(days []domain.Weekday) []domain.Weekday {
	have := make(map[domain.Weekday]bool, len(days))
	for _, d := range days {
		have[d] = true
	}
	var out []domain.Weekday
	for _, d := range domain.Weekdays {
		if !have[d] {
			out = append(out, d)
		}
	}
	return out
}

// rotateAfter lists the six weekdays following day, wrapping around the week.
func rotateAfter(day domain.Weekday) []domain.Weekday {
	i := day.Index()
	out := append([]domain.Weekday(nil), domain.Weekdays[i+1:]...)
	return append(out, domain.Weekdays[:i]...)
}
