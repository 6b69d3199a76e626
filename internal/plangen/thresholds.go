package plangen

import "alcyxob/training-planner/internal/domain"

var thresholdBands = []struct {
	above    float64
	lt1, lt2 int
}{
	{50, 48, 42},
	{40, 42, 36},
	{30, 36, 30},
}

// ThresholdTargets is the time-in-zone per threshold session for a week of the given volume.
func ThresholdTargets(p *domain.AthleteProfile, weekMileage float64) domain.DraftTargets {
	if p.IsDoubleThresholdAthlete() {
		return domain.DraftTargets{LT1Minutes: 30, LT2Minutes: 30}
	}
	for _, b := range thresholdBands {
		if weekMileage > b.above {
			return domain.DraftTargets{LT1Minutes: b.lt1, LT2Minutes: b.lt2}
		}
	}
	return domain.DraftTargets{LT1Minutes: 30, LT2Minutes: 25}
}
