package plangen

import (
	"reflect"
	"testing"

	"alcyxob/training-planner/internal/domain"
)

func TestMileageProgressionFiveK(t *testing.T) {
	got, err := MileageProgression(30, 40, 12, domain.Race5K)
	if err != nil {
		t.Fatal(err)
	}
	var miles []float64
	for _, w := range got {
		miles = append(miles, w.Mileage)
	}
	want := []float64{30, 33, 37, 40, 40, 40, 40, 40, 40, 40, 36, 32}
	if !reflect.DeepEqual(miles, want) {
		t.Fatalf("mileage = %v, want %v", miles, want)
	}
	for i, w := range got {
		if w.Week != i+1 {
			t.Errorf("week %d has index %d", i+1, w.Week)
		}
		if wantRS := i >= 6; w.RaceSpecific != wantRS {
			t.Errorf("week %d raceSpecific = %v, want %v", w.Week, w.RaceSpecific, wantRS)
		}
		if wantTaper := i >= 10; w.Taper != wantTaper {
			t.Errorf("week %d taper = %v, want %v", w.Week, w.Taper, wantTaper)
		}
	}
}

func TestMileageProgressionMarathonTaper(t *testing.T) {
	got, err := MileageProgression(50, 60, 16, domain.RaceMarathon)
	if err != nil {
		t.Fatal(err)
	}
	tail := got[len(got)-4:]
	want := []float64{54, 48, 36, 30}
	for i, w := range tail {
		if w.Mileage != want[i] || !w.Taper || !w.RaceSpecific {
			t.Errorf("taper week %d = %+v, want mileage %v tapering", i, w, want[i])
		}
	}
}

func TestMileageProgressionShape(t *testing.T) {
	for _, race := range domain.RaceDistances {
		for weeks := 1; weeks <= 24; weeks++ {
			for _, pair := range [][2]float64{{20, 45}, {45, 45}, {60, 40}, {0, 10}} {
				got, err := MileageProgression(pair[0], pair[1], weeks, race)
				if err != nil {
					t.Fatalf("%s/%d: %v", race, weeks, err)
				}
				if len(got) != weeks {
					t.Fatalf("%s/%d: got %d weeks", race, weeks, len(got))
				}
				peak := 0.0
				inTaper := false
				for i, w := range got {
					if w.Taper {
						if !inTaper && w.Mileage > peak {
							t.Errorf("%s/%d %v: first taper week %v above peak %v", race, weeks, pair, w.Mileage, peak)
						}
						if inTaper && w.Mileage > got[i-1].Mileage {
							t.Errorf("%s/%d %v: taper increases at week %d", race, weeks, pair, w.Week)
						}
						inTaper = true
						continue
					}
					if inTaper {
						t.Fatalf("%s/%d: base week after taper", race, weeks)
					}
					if i > 0 && w.Mileage < got[i-1].Mileage {
						t.Errorf("%s/%d %v: base decreases at week %d", race, weeks, pair, w.Week)
					}
					peak = w.Mileage
				}
			}
		}
	}
}

func TestMileageProgressionRejectsEmptyPlan(t *testing.T) {
	if _, err := MileageProgression(30, 40, 0, domain.Race5K); err == nil {
		t.Fatal("expected error for zero weeks")
	}
}

func TestThresholdTargets(t *testing.T) {
	adv := &domain.AthleteProfile{Experience: domain.ExperienceAdvanced, DoubleThresholdDays: 1}
	if got := ThresholdTargets(adv, 80); got != (domain.DraftTargets{LT1Minutes: 30, LT2Minutes: 30}) {
		t.Errorf("double threshold targets = %+v", got)
	}
	p := &domain.AthleteProfile{Experience: domain.ExperienceIntermediate}
	tests := []struct {
		miles    float64
		lt1, lt2 int
	}{
		{55, 48, 42},
		{50, 42, 36},
		{41, 42, 36},
		{35, 36, 30},
		{30, 30, 25},
		{10, 30, 25},
	}
	for _, tt := range tests {
		got := ThresholdTargets(p, tt.miles)
		if got.LT1Minutes != tt.lt1 || got.LT2Minutes != tt.lt2 {
			t.Errorf("ThresholdTargets(%v) = %+v, want %d/%d", tt.miles, got, tt.lt1, tt.lt2)
		}
	}
}
