// internal/domain/athlete.go
package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidProfile is returned (wrapped) whenever an AthleteProfile fails validation.
var ErrInvalidProfile = errors.New("invalid athlete profile")

// Experience tier of the athlete.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Valid reports whether e is one of the known tiers.
func (e Experience) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

// RaceDistance is one of the 7 canonical race distance categories.
type RaceDistance string

const (
	Race1500         RaceDistance = "1500"
	RaceMile         RaceDistance = "Mile"
	Race3K           RaceDistance = "3K"
	Race5K           RaceDistance = "5K"
	Race10K          RaceDistance = "10K"
	RaceHalfMarathon RaceDistance = "Half Marathon"
	RaceMarathon     RaceDistance = "Marathon"
)

// RaceDistances lists the canonical distances from shortest to longest.
var RaceDistances = []RaceDistance{Race1500, RaceMile, Race3K, Race5K, Race10K, RaceHalfMarathon, RaceMarathon}

// Valid reports whether d is a canonical race distance.
func (d RaceDistance) Valid() bool {
	for _, rd := range RaceDistances {
		if rd == d {
			return true
		}
	}
	return false
}

// AthleteProfile holds everything plan generation needs to know about a runner.
type AthleteProfile struct {
	UserID              string       `bson:"userId" json:"userId,omitempty"`
	Experience          Experience   `bson:"experience" json:"experience"`
	TrainingDays        []Weekday    `bson:"trainingDays" json:"trainingDays"` // Order matters: presentation order of the week
	DoubleThresholdDays int          `bson:"numDaysDoubleThreshold,omitempty" json:"numDaysDoubleThreshold,omitempty"`
	CurrentMileage      float64      `bson:"currentMileage" json:"currentMileage"`
	GoalMileage         float64      `bson:"goalMileage" json:"goalMileage"`
	CurrentRaceDistance RaceDistance `bson:"currentRaceDistance" json:"currentRaceDistance"`
	CurrentRaceTime     string       `bson:"currentRaceTime" json:"currentRaceTime"` // "H:MM:SS" or "MM:SS"
	GoalRaceDistance    RaceDistance `bson:"goalRaceDistance" json:"goalRaceDistance"`
	GoalRaceTime        string       `bson:"goalRaceTime" json:"goalRaceTime"`
	PlanStartDate       string       `bson:"planStartDate" json:"planStartDate"` // YYYY-MM-DD
	GoalRaceDate        string       `bson:"goalRaceDate" json:"goalRaceDate"`   // YYYY-MM-DD
	NumWeeks            int          `bson:"numWeeks,omitempty" json:"numWeeks,omitempty"` // Optional override; derived from the dates otherwise
	UpdatedAt           time.Time    `bson:"updatedAt" json:"updatedAt,omitempty"`
}

// StartDate parses PlanStartDate.
func (p *AthleteProfile) StartDate() (time.Time, error) {
	return ParseDate(p.PlanStartDate)
}

// PlanWeeks returns the plan length. An explicit NumWeeks wins; otherwise the
// number of Monday-aligned weeks from the first training week through race day.
func (p *AthleteProfile) PlanWeeks() (int, error) {
	if p.NumWeeks > 0 {
		return p.NumWeeks, nil
	}
	start, err := ParseDate(p.PlanStartDate)
	if err != nil {
		return 0, fmt.Errorf("%w: planStartDate: %v", ErrInvalidProfile, err)
	}
	race, err := ParseDate(p.GoalRaceDate)
	if err != nil {
		return 0, fmt.Errorf("%w: goalRaceDate: %v", ErrInvalidProfile, err)
	}
	firstMonday := MondayOnOrAfter(start)
	if race.Before(firstMonday) {
		return 0, fmt.Errorf("%w: goal race date is before the first training week", ErrInvalidProfile)
	}
	days := int(race.Sub(firstMonday).Hours() / 24)
	return days/7 + 1, nil
}

// IsDoubleThresholdAthlete mirrors how the coaching model gates AM/PM threshold days.
func (p *AthleteProfile) IsDoubleThresholdAthlete() bool {
	return p.Experience == ExperienceAdvanced && p.DoubleThresholdDays > 0
}

// Validate checks the profile invariants.
func (p *AthleteProfile) Validate() error {
	if !p.Experience.Valid() {
		return fmt.Errorf("%w: unknown experience %q", ErrInvalidProfile, p.Experience)
	}
	if len(p.TrainingDays) == 0 {
		return fmt.Errorf("%w: at least one training day is required", ErrInvalidProfile)
	}
	seen := make(map[Weekday]bool, len(p.TrainingDays))
	for _, d := range p.TrainingDays {
		if !d.Valid() {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidProfile, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate weekday %q", ErrInvalidProfile, d)
		}
		seen[d] = true
	}
	if p.DoubleThresholdDays < 0 {
		return fmt.Errorf("%w: numDaysDoubleThreshold cannot be negative", ErrInvalidProfile)
	}
	if p.CurrentMileage < 0 || p.GoalMileage < 0 {
		return fmt.Errorf("%w: mileage cannot be negative", ErrInvalidProfile)
	}
	if !p.CurrentRaceDistance.Valid() || !p.GoalRaceDistance.Valid() {
		return fmt.Errorf("%w: unknown race distance", ErrInvalidProfile)
	}
	if _, err := ParseRaceTime(p.CurrentRaceTime); err != nil {
		return fmt.Errorf("%w: currentRaceTime: %v", ErrInvalidProfile, err)
	}
	if _, err := ParseRaceTime(p.GoalRaceTime); err != nil {
		return fmt.Errorf("%w: goalRaceTime: %v", ErrInvalidProfile, err)
	}
	if _, err := ParseDate(p.PlanStartDate); err != nil {
		return fmt.Errorf("%w: planStartDate: %v", ErrInvalidProfile, err)
	}
	weeks, err := p.PlanWeeks()
	if err != nil {
		return err
	}
	if weeks < 1 {
		return fmt.Errorf("%w: plan must be at least one week long", ErrInvalidProfile)
	}
	return nil
}
