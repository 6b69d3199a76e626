package plangen

import (
	"fmt"
	"math"

	"alcyxob/training-planner/internal/domain"
)

// WeekTarget is the planned volume of one week.
type WeekTarget struct {
	Week         int     `json:"week"`
	Mileage      float64 `json:"mileage"`
	RaceSpecific bool    `json:"raceSpecific"`
	Taper        bool    `json:"taper"`
}

var raceSpecificWeeks = map[domain.RaceDistance]int{
	domain.Race1500:         4,
	domain.RaceMile:         4,
	domain.Race3K:           4,
	domain.Race5K:           6,
	domain.Race10K:          6,
	domain.RaceHalfMarathon: 8,
	domain.RaceMarathon:     10,
}

var taperFractions = map[domain.RaceDistance][]float64{
	domain.Race1500:         {0.9, 0.8},
	domain.RaceMile:         {0.9, 0.8},
	domain.Race3K:           {0.9, 0.8},
	domain.Race5K:           {0.9, 0.8},
	domain.Race10K:          {0.9, 0.7},
	domain.RaceHalfMarathon: {0.9, 0.8, 0.6},
	domain.RaceMarathon:     {0.9, 0.8, 0.6, 0.5},
}

// MileageProgression returns one target per week. Base weeks grow by
// max(3, 10%) rounded up, never past the goal; the last weeks taper off the peak.
// Plans shorter than the taper table keep at least one base week and use the
// table's final fractions.
func MileageProgression(current, goal float64, numWeeks int, race domain.RaceDistance) ([]WeekTarget, error) {
	if numWeeks < 1 {
		return nil, fmt.Errorf("%w: plan must be at least one week long", domain.ErrInvalidProfile)
	}
	fractions, ok := taperFractions[race]
	if !ok {
		return nil, fmt.Errorf("%w: unknown goal race distance %q", domain.ErrInvalidProfile, race)
	}
	taperLen := min(len(fractions), numWeeks-1)
	fractions = fractions[len(fractions)-taperLen:]
	baseWeeks := numWeeks - taperLen
	raceSpecificFrom := numWeeks - raceSpecificWeeks[race]
	ceiling := math.Max(goal, current)

	out := make([]WeekTarget, 0, numWeeks)
	mileage := current
	for i := 0; i < baseWeeks; i++ {
		if i > 0 {
			mileage = math.Min(math.Ceil(mileage+math.Max(3, 0.1*mileage)), ceiling)
		}
		out = append(out, WeekTarget{Week: i + 1, Mileage: mileage, RaceSpecific: i >= raceSpecificFrom})
	}

	peak := out[len(out)-1].Mileage
	for _, f := range fractions {
		out = append(out, WeekTarget{
			Week:         len(out) + 1,
			Mileage:      math.Ceil(peak * f),
			RaceSpecific: true,
			Taper:        true,
		})
	}
	return out, nil
}

// ProfileProgression is MileageProgression for a profile.
func ProfileProgression(p *domain.AthleteProfile) ([]WeekTarget, error) {
	weeks, err := p.PlanWeeks()
	if err != nil {
		return nil, err
	}
	return MileageProgression(p.CurrentMileage, p.GoalMileage, weeks, p.GoalRaceDistance)
}
