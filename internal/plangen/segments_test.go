package plangen

import (
	"math"
	"reflect"
	"testing"

	"alcyxob/training-planner/internal/domain"
)

func TestEvaluateEmpty(t *testing.T) {
	paces := vdot50(t)
	for _, segs := range [][]domain.Segment{nil, {}} {
		got, err := Evaluate(segs, paces)
		if err != nil {
			t.Fatal(err)
		}
		if got != (Totals{}) {
			t.Errorf("Evaluate(%v) = %+v, want zero", segs, got)
		}
	}
}

func TestEvaluate(t *testing.T) {
	paces := vdot50(t)
	tests := []struct {
		name string
		segs []domain.Segment
		want Totals
	}{
		{"bare rest", []domain.Segment{domain.Rest(60)}, Totals{0, 60}},
		{
			"time reps with rest per rep",
			[]domain.Segment{domain.Set(domain.ZoneLT1, 2, domain.LengthTime, 720, 240)},
			Totals{2 * 720 / 455.0, 1920},
		},
		{
			"distance reps",
			[]domain.Segment{domain.Set(domain.PaceZone(domain.Race5K), 6, domain.LengthDistance, 1000, 90)},
			Totals{1000.0 / 1609 * 6, (239 + 90) * 6},
		},
		{
			"single rep defaults",
			[]domain.Segment{domain.Set(domain.ZoneEasy, 0, domain.LengthTime, 1060, 0), domain.Rest(30)},
			Totals{2, 1090},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.segs, paces)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got.Distance-tt.want.Distance) > 1e-9 || math.Abs(got.Duration-tt.want.Duration) > 1e-9 {
				t.Errorf("Evaluate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEvaluateRejectsUnknownZone(t *testing.T) {
	_, err := Evaluate([]domain.Segment{domain.Set("Sprint", 1, domain.LengthTime, 60, 0)}, vdot50(t))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestEvaluateDistanceToTimeRoundTrip(t *testing.T) {
	paces := vdot50(t)
	distanceLegs := []domain.Segment{
		domain.Set(domain.ZoneLT1, 3, domain.LengthDistance, 1609, 60),
		domain.Set(domain.ZoneLT2, 1, domain.LengthDistance, 3218, 0),
		domain.Set(domain.ZoneHills, 4, domain.LengthDistance, 804.5, 90),
		domain.Set(domain.ZoneLT2, 10, domain.LengthDistance, 400, 60),
		domain.Set(domain.PaceZone(domain.Race5K), 6, domain.LengthDistance, 1000, 90),
	}
	var timeLegs []domain.Segment
	for _, s := range distanceLegs {
		pace, _ := paces.Pace(s.Set.Zone)
		secs := s.Set.Length.Amount / metersPerMile * pace.Seconds()
		timeLegs = append(timeLegs, domain.Set(s.Set.Zone, s.Set.Reps, domain.LengthTime, secs, s.Set.Rest))
	}
	byDistance, err := Evaluate(distanceLegs, paces)
	if err != nil {
		t.Fatal(err)
	}
	byTime, err := Evaluate(timeLegs, paces)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(byDistance.Distance-byTime.Distance) > 0.01 {
		t.Errorf("distance %v vs time %v differ by more than 0.01 mi", byDistance.Distance, byTime.Distance)
	}
}

func TestTotalsRounded(t *testing.T) {
	got := Totals{Distance: 4.747, Duration: 2161}.Rounded()
	if got != (Totals{Distance: 4.5, Duration: 2400}) {
		t.Errorf("Rounded() = %+v", got)
	}
}

func TestPaceEntriesDeduplicates(t *testing.T) {
	paces := vdot50(t)
	segs := []domain.Segment{
		domain.Set(domain.ZoneLT1, 2, domain.LengthTime, 360, 120),
		domain.Rest(60),
		domain.Set(domain.PaceZone(domain.Race5K), 4, domain.LengthDistance, 400, 60),
		domain.Set(domain.ZoneLT1, 1, domain.LengthTime, 720, 0),
	}
	got := PaceEntries(segs, paces)
	fiveK, _ := paces.Pace(domain.PaceZone(domain.Race5K))
	want := []domain.PaceEntry{
		{Zone: domain.ZoneLT1, Pace: domain.PaceRange(455, 475)},
		{Zone: domain.PaceZone(domain.Race5K), Pace: fiveK},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PaceEntries() = %+v, want %+v", got, want)
	}
	if got := PaceEntries(nil, paces); got == nil || len(got) != 0 {
		t.Errorf("PaceEntries(nil) = %#v, want empty slice", got)
	}
}
