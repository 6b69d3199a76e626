package plangen

import (
	"context"
	"errors"
	"math"
	"testing"

	"alcyxob/training-planner/internal/domain"
)

func TestPadDistanceAddsTenToTwentyEasyMinutes(t *testing.T) {
	for _, easy := range []float64{420, 530, 600, 700} {
		for core := 0.0; core <= 20; core += 0.5 {
			total := padDistance(core, easy)
			added := (total - core) * easy / 60
			if added <= minPadMinutes || added >= maxPadMinutes {
				t.Errorf("padDistance(%v, %v) = %v adds %.1f min", core, easy, total, added)
			}
			if math.Mod(total, 0.5) != 0 {
				t.Errorf("padDistance(%v, %v) = %v not on a half-mile grid", core, easy, total)
			}
		}
	}
}

func TestScheduleKeyWorkouts(t *testing.T) {
	p := testProfile()
	wc, err := NewWeekContext(p, 1)
	if err != nil {
		t.Fatal(err)
	}
	drafts, _ := TemplateDrafter{}.DraftWorkouts(context.Background(), DraftRequestFor(wc))
	week, err := ScheduleKeyWorkouts(wc, drafts)
	if err != nil {
		t.Fatal(err)
	}

	if week.ID != "week-1" || week.Week != 1 {
		t.Errorf("week id = %q/%d", week.ID, week.Week)
	}
	if got := domain.DateKey(week.StartDate); got != "2025-01-06" {
		t.Errorf("start = %s", got)
	}
	if got := domain.DateKey(week.EndDate); got != "2025-01-12" {
		t.Errorf("end = %s", got)
	}

	want := []struct {
		day      domain.Weekday
		tag      domain.WorkoutTag
		distance float64
		date     string
	}{
		{domain.Tuesday, domain.TagLT1, 8, "2025-01-07"},
		{domain.Thursday, domain.TagLT2, 8, "2025-01-09"},
		{domain.Saturday, domain.TagHills, 4, "2025-01-11"},
	}
	if len(week.Workouts) != len(want) {
		t.Fatalf("got %d workouts, want %d", len(week.Workouts), len(want))
	}
	sum := 0.0
	for i, w := range want {
		got := week.Workouts[i]
		if got.DayOfWeek != w.day || got.Tags != w.tag || got.Distance != w.distance || domain.DateKey(got.Date) != w.date {
			t.Errorf("workout %d = %s %s %.1f mi %s, want %s %s %.1f mi %s",
				i, got.DayOfWeek, got.Tags, got.Distance, domain.DateKey(got.Date), w.day, w.tag, w.distance, w.date)
		}
		if len(got.TargetPace) == 0 {
			t.Errorf("workout %d has no target pace", i)
		}
		sum += got.Distance
	}
	if week.TotalMileage != sum {
		t.Errorf("TotalMileage = %v, want %v", week.TotalMileage, sum)
	}

	lt1 := week.Workouts[0]
	if lt1.CooldownTarget != "Cooldown to 8" {
		t.Errorf("CooldownTarget = %q", lt1.CooldownTarget)
	}
	// core 6 mi: warmup 900 s, 3 x (720 + 240) rounded up to 3000 s, then 2 mi easy at 530 s/mi
	if lt1.Duration != 900+3000+2*530 {
		t.Errorf("LT1 duration = %v", lt1.Duration)
	}
	if len(lt1.Cooldown) != 1 || lt1.Cooldown[0].Set.Zone != domain.ZoneEasy {
		t.Errorf("cooldown = %+v", lt1.Cooldown)
	}
}

func TestScheduleKeyWorkoutsDoubleThreshold(t *testing.T) {
	p := testProfile()
	p.Experience = domain.ExperienceAdvanced
	p.DoubleThresholdDays = 2
	wc, err := NewWeekContext(p, 1)
	if err != nil {
		t.Fatal(err)
	}
	req := DraftRequestFor(wc)
	if req.Counts.LT1 != 2 || req.Counts.LT2 != 2 || req.Counts.Hills != 1 || req.Counts.LongRun != 0 {
		t.Fatalf("counts = %+v", req.Counts)
	}
	if req.Targets != (domain.DraftTargets{LT1Minutes: 30, LT2Minutes: 30}) {
		t.Fatalf("targets = %+v", req.Targets)
	}
	drafts, _ := TemplateDrafter{}.DraftWorkouts(context.Background(), req)
	week, err := ScheduleKeyWorkouts(wc, drafts)
	if err != nil {
		t.Fatal(err)
	}
	names := map[domain.Weekday][]string{}
	for _, w := range week.Workouts {
		names[w.DayOfWeek] = append(names[w.DayOfWeek], w.Name)
	}
	for _, day := range []domain.Weekday{domain.Tuesday, domain.Thursday} {
		got := names[day]
		if len(got) != 2 || got[0][:4] != "(AM)" || got[1][:4] != "(PM)" {
			t.Errorf("%s sessions = %v, want AM LT1 and PM LT2", day, got)
		}
	}
}

func TestValidateDrafts(t *testing.T) {
	good := domain.DraftWorkout{
		Name:    "LT1 3 x 12:00",
		Tags:    domain.TagLT1,
		Workout: []domain.Segment{domain.Set(domain.ZoneLT1, 3, domain.LengthTime, 720, 240)},
	}
	if err := ValidateDrafts([]domain.DraftWorkout{good}); err != nil {
		t.Fatalf("ValidateDrafts(good) = %v", err)
	}

	bad := map[string]func(d *domain.DraftWorkout){
		"no name":      func(d *domain.DraftWorkout) { d.Name = "" },
		"easy tag":     func(d *domain.DraftWorkout) { d.Tags = domain.TagEasy },
		"no main set":  func(d *domain.DraftWorkout) { d.Workout = nil },
		"unknown zone": func(d *domain.DraftWorkout) { d.Workout[0].Set.Zone = "Tempo" },
		"zero length":  func(d *domain.DraftWorkout) { d.Workout[0].Set.Length.Amount = 0 },
		"bad kind":     func(d *domain.DraftWorkout) { d.Workout[0].Set.Length.Kind = "laps" },
		"negative rest": func(d *domain.DraftWorkout) {
			d.Warmup = []domain.Segment{domain.Rest(-5)}
		},
	}
	for name, mutate := range bad {
		t.Run(name, func(t *testing.T) {
			d := good
			d.Workout = domain.CloneSegments(good.Workout)
			mutate(&d)
			err := ValidateDrafts([]domain.DraftWorkout{good, d})
			if err == nil || !errors.Is(err, ErrInvalidPlanFormat) {
				t.Errorf("ValidateDrafts() = %v, want ErrInvalidPlanFormat", err)
			}
		})
	}
}
