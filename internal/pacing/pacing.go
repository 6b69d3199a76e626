// Package pacing turns race performances into per-mile training paces.
package pacing

import (
	"fmt"
	"math"

	"alcyxob/training-planner/internal/domain"
)

// Range is a pace range in seconds per mile, Low being the faster end.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// RacePaces maps each canonical distance to a per-mile pace in seconds.
type RacePaces map[domain.RaceDistance]float64

// Vector is the full set of paces for one week of a plan.
type Vector struct {
	Race  RacePaces
	Zones map[domain.PaceZone]Range
}

// Pace resolves a zone or race distance. Training zones come back as ranges.
func (v Vector) Pace(zone domain.PaceZone) (domain.Pace, bool) {
	if r, ok := v.Zones[zone]; ok {
		return domain.PaceRange(r.Low, r.High), true
	}
	if p, ok := v.Race[domain.RaceDistance(zone)]; ok {
		return domain.SinglePace(p), true
	}
	return domain.Pace{}, false
}

// EasyLow is the fast end of the Easy zone, the pace easy mileage is priced at.
func (v Vector) EasyLow() float64 { return v.Zones[domain.ZoneEasy].Low }

// FromPerformance reads an equivalent per-mile pace vector off the table.
// goal selects the optimistic read.
func FromPerformance(dist domain.RaceDistance, raceTime string, goal bool) (RacePaces, error) {
	if !dist.Valid() {
		return nil, fmt.Errorf("pacing: unknown race distance %q", dist)
	}
	secs, err := domain.ParseRaceTime(raceTime)
	if err != nil {
		return nil, fmt.Errorf("pacing: %w", err)
	}
	rows, err := Table()
	if err != nil {
		return nil, err
	}
	row := lookup(rows, dist, secs, goal)
	out := make(RacePaces, len(domain.RaceDistances))
	for _, d := range domain.RaceDistances {
		out[d] = row.Times[d] / milesPer[d]
	}
	return out, nil
}

// Interpolate blends current toward goal by (week-1)/(numWeeks-1) and derives the zones.
func Interpolate(current, goal RacePaces, numWeeks, week int) Vector {
	frac := 0.0
	if numWeeks > 1 {
		frac = float64(week-1) / float64(numWeeks-1)
	}
	race := make(RacePaces, len(domain.RaceDistances))
	for _, d := range domain.RaceDistances {
		race[d] = current[d] + (goal[d]-current[d])*frac
	}
	return Vector{Race: race, Zones: zones(race)}
}

func zones(race RacePaces) map[domain.PaceZone]Range {
	lt1 := roundUp5(race[domain.RaceMarathon]) + 15
	lt2 := roundUp5(race[domain.RaceHalfMarathon]) + 15
	easy := roundUp5(race[domain.RaceMarathon]) + 90
	hills := roundUp5(race[domain.Race5K]) + 15
	return map[domain.PaceZone]Range{
		domain.ZoneLT1:   {Low: lt1, High: lt1 + 20},
		domain.ZoneLT2:   {Low: lt2, High: lt2 + 20},
		domain.ZoneEasy:  {Low: easy, High: easy + 60},
		domain.ZoneHills: {Low: hills, High: hills + 20},
	}
}

func roundUp5(v float64) float64 { return math.Ceil(v/5) * 5 }

// ForWeek computes the paces of week (1-based) of a numWeeks plan for the profile.
func ForWeek(p *domain.AthleteProfile, numWeeks, week int) (Vector, error) {
	current, err := FromPerformance(p.CurrentRaceDistance, p.CurrentRaceTime, false)
	if err != nil {
		return Vector{}, err
	}
	goal, err := FromPerformance(p.GoalRaceDistance, p.GoalRaceTime, true)
	if err != nil {
		return Vector{}, err
	}
	return Interpolate(current, goal, numWeeks, week), nil
}

// FormatPace renders seconds per mile as "M:SS min/mi".
func FormatPace(secondsPerMile float64) string {
	minutes := int(math.Floor(secondsPerMile / 60))
	seconds := int(math.Round(math.Mod(secondsPerMile, 60)))
	if seconds == 60 {
		minutes++
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d min/mi", minutes, seconds)
}
