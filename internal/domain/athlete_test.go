package domain

import (
	"errors"
	"testing"
	"time"
)

func validProfile() AthleteProfile {
	return AthleteProfile{
		Experience:          ExperienceIntermediate,
		TrainingDays:        []Weekday{Monday, Wednesday, Friday, Sunday},
		CurrentMileage:      30,
		GoalMileage:         40,
		CurrentRaceDistance: Race10K,
		CurrentRaceTime:     "45:00",
		GoalRaceDistance:    RaceHalfMarathon,
		GoalRaceTime:        "1:35:00",
		PlanStartDate:       "2025-01-08", // Wednesday
		GoalRaceDate:        "2025-03-30", // Sunday
	}
}

func TestPlanWeeks(t *testing.T) {
	p := validProfile()
	// First Monday is Jan 13; Mar 30 is the Sunday of the 11th week.
	got, err := p.PlanWeeks()
	if err != nil {
		t.Fatal(err)
	}
	if got != 11 {
		t.Errorf("PlanWeeks() = %d, want 11", got)
	}
	p.NumWeeks = 16
	if got, _ := p.PlanWeeks(); got != 16 {
		t.Errorf("PlanWeeks() with override = %d, want 16", got)
	}
}

func TestValidate(t *testing.T) {
	if p := validProfile(); p.Validate() != nil {
		t.Fatalf("Validate() = %v", p.Validate())
	}
	bad := map[string]func(p *AthleteProfile){
		"experience":    func(p *AthleteProfile) { p.Experience = "elite" },
		"no days":       func(p *AthleteProfile) { p.TrainingDays = nil },
		"duplicate day": func(p *AthleteProfile) { p.TrainingDays = []Weekday{Monday, Monday} },
		"unknown day":   func(p *AthleteProfile) { p.TrainingDays = []Weekday{"Funday"} },
		"distance":      func(p *AthleteProfile) { p.GoalRaceDistance = "Ultra" },
		"time":          func(p *AthleteProfile) { p.CurrentRaceTime = "45" },
		"race before":   func(p *AthleteProfile) { p.GoalRaceDate = "2025-01-09" },
		"negative":      func(p *AthleteProfile) { p.GoalMileage = -1 },
		"start":         func(p *AthleteProfile) { p.PlanStartDate = "soon" },
	}
	for name, mutate := range bad {
		t.Run(name, func(t *testing.T) {
			p := validProfile()
			mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("Validate() = %v, want ErrInvalidProfile", err)
			}
		})
	}
}

func TestParseRaceTime(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"19:56", 1196, true},
		{"1:35:00", 5700, true},
		{"3:10:40", 11440, true},
		{"45", 0, false},
		{"1:2:3:4", 0, false},
		{"a:bc", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseRaceTime(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseRaceTime(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestDates(t *testing.T) {
	d, err := ParseDate("2025-01-08T18:30:00-08:00")
	if err != nil {
		t.Fatal(err)
	}
	// 18:30 PST is already Jan 9 in UTC.
	if DateKey(d) != "2025-01-09" {
		t.Errorf("ParseDate() = %s", DateKey(d))
	}
	if got := MondayOnOrAfter(time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)); DateKey(got) != "2025-01-06" {
		t.Errorf("MondayOnOrAfter(Monday) = %s", DateKey(got))
	}
	if got := MondayOnOrAfter(time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)); DateKey(got) != "2025-01-13" {
		t.Errorf("MondayOnOrAfter(Sunday) = %s", DateKey(got))
	}
	if WeekdayOf(time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)) != Sunday {
		t.Error("WeekdayOf(Jan 12 2025) != Sunday")
	}
	if wd, err := ParseWeekday("tuesday"); err != nil || wd != Tuesday {
		t.Errorf("ParseWeekday(tuesday) = %v, %v", wd, err)
	}
}
