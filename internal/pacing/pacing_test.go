package pacing

import (
	"math"
	"testing"

	"alcyxob/training-planner/internal/domain"
)

func TestTableIsOrderedSlowestFirst(t *testing.T) {
	rows, err := Table()
	if err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	for i := 1; i < len(rows); i++ {
		for _, d := range domain.RaceDistances {
			if rows[i].Times[d] > rows[i-1].Times[d] {
				t.Fatalf("row %d %s slower than row %d", i, d, i-1)
			}
		}
	}
}

func TestFromPerformanceLookupDirection(t *testing.T) {
	current, err := FromPerformance(domain.Race5K, "19:56", false)
	if err != nil {
		t.Fatal(err)
	}
	goal, err := FromPerformance(domain.Race5K, "19:56", true)
	if err != nil {
		t.Fatal(err)
	}
	// 19:56 is exactly the VDOT 50 row; the first strictly faster row is VDOT 51.
	if got, want := current[domain.Race5K], 1196/3.11; math.Abs(got-want) > 1e-9 {
		t.Errorf("current 5K pace = %v, want %v", got, want)
	}
	if got, want := goal[domain.Race5K], 1176/3.11; math.Abs(got-want) > 1e-9 {
		t.Errorf("goal 5K pace = %v, want %v", got, want)
	}
}

func TestFromPerformanceOutsideTable(t *testing.T) {
	rows, _ := Table()
	slow, err := FromPerformance(domain.RaceMarathon, "7:00:00", false)
	if err != nil {
		t.Fatal(err)
	}
	if want := rows[0].Times[domain.RaceMarathon] / 26.22; slow[domain.RaceMarathon] != want {
		t.Errorf("slow marathon pace = %v, want first row %v", slow[domain.RaceMarathon], want)
	}
	fast, err := FromPerformance(domain.RaceMarathon, "1:50:00", true)
	if err != nil {
		t.Fatal(err)
	}
	if want := rows[len(rows)-1].Times[domain.RaceMarathon] / 26.22; fast[domain.RaceMarathon] != want {
		t.Errorf("fast marathon pace = %v, want last row %v", fast[domain.RaceMarathon], want)
	}
}

func TestFromPerformanceRejectsBadTime(t *testing.T) {
	if _, err := FromPerformance(domain.Race5K, "twenty", false); err == nil {
		t.Fatal("expected error for malformed time")
	}
	if _, err := FromPerformance(domain.RaceDistance("Ultra"), "20:00", false); err == nil {
		t.Fatal("expected error for unknown distance")
	}
}

func TestInterpolateZones(t *testing.T) {
	current, _ := FromPerformance(domain.Race5K, "19:56", false)
	v := Interpolate(current, current, 1, 1)

	want := map[domain.PaceZone]Range{
		domain.ZoneLT1:   {455, 475},
		domain.ZoneLT2:   {435, 455},
		domain.ZoneEasy:  {530, 590},
		domain.ZoneHills: {400, 420},
	}
	for zone, r := range want {
		if got := v.Zones[zone]; got != r {
			t.Errorf("%s = %+v, want %+v", zone, got, r)
		}
	}
	if !(v.Zones[domain.ZoneHills].Low < v.Zones[domain.ZoneLT2].Low &&
		v.Zones[domain.ZoneLT2].Low < v.Zones[domain.ZoneLT1].Low &&
		v.Zones[domain.ZoneLT1].Low < v.Zones[domain.ZoneEasy].Low) {
		t.Errorf("zones not ordered by intensity: %+v", v.Zones)
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	current, _ := FromPerformance(domain.Race10K, "50:00", false)
	goal, _ := FromPerformance(domain.Race10K, "42:00", true)

	first := Interpolate(current, goal, 10, 1)
	last := Interpolate(current, goal, 10, 10)
	mid := Interpolate(current, goal, 10, 5)
	for _, d := range domain.RaceDistances {
		if math.Abs(first.Race[d]-current[d]) > 1e-9 {
			t.Errorf("week 1 %s = %v, want current %v", d, first.Race[d], current[d])
		}
		if math.Abs(last.Race[d]-goal[d]) > 1e-9 {
			t.Errorf("week 10 %s = %v, want goal %v", d, last.Race[d], goal[d])
		}
		if mid.Race[d] > current[d] || mid.Race[d] < goal[d] {
			t.Errorf("week 5 %s = %v outside [%v, %v]", d, mid.Race[d], goal[d], current[d])
		}
	}
}

func TestVectorPace(t *testing.T) {
	current, _ := FromPerformance(domain.Race5K, "19:56", false)
	v := Interpolate(current, current, 1, 1)

	p, ok := v.Pace(domain.ZoneLT1)
	if !ok || !p.Range || p.Low != 455 || p.High != 475 {
		t.Errorf("Pace(LT1) = %+v, %v", p, ok)
	}
	p, ok = v.Pace(domain.PaceZone(domain.Race5K))
	if !ok || p.Range || p.Low != current[domain.Race5K] {
		t.Errorf("Pace(5K) = %+v, %v", p, ok)
	}
	if _, ok := v.Pace("Sprint"); ok {
		t.Error("Pace(Sprint) should not resolve")
	}
}

func TestFormatPace(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{455, "7:35 min/mi"},
		{420, "7:00 min/mi"},
		{384.57, "6:25 min/mi"},
		{479.6, "8:00 min/mi"},
	}
	for _, tt := range tests {
		if got := FormatPace(tt.in); got != tt.want {
			t.Errorf("FormatPace(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
