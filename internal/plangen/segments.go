package plangen

import (
	"fmt"
	"math"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/pacing"
)

const metersPerMile = 1609

// Totals is the distance (miles) and duration (seconds) of a segment list.
type Totals struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

// Rounded snaps distance to the nearest half mile and duration up to the next five minutes.
func (t Totals) Rounded() Totals {
	return Totals{
		Distance: math.Round(t.Distance/0.5) * 0.5,
		Duration: math.Ceil(t.Duration/300) * 300,
	}
}

func (t Totals) Add(o Totals) Totals {
	return Totals{Distance: t.Distance + o.Distance, Duration: t.Duration + o.Duration}
}

// Evaluate sums the segments at the given paces. Rest is added after every rep.
func Evaluate(segments []domain.Segment, paces pacing.Vector) (Totals, error) {
	var t Totals
	for i, seg := range segments {
		switch seg.Kind {
		case domain.SegmentRest:
			t.Duration += seg.RestSeconds
		case domain.SegmentSet:
			set := seg.Set
			if set == nil {
				return Totals{}, fmt.Errorf("%w: segment %d has no set", ErrInvalidPlanFormat, i)
			}
			pace, ok := paces.Pace(set.Zone)
			if !ok || pace.Seconds() <= 0 {
				return Totals{}, fmt.Errorf("%w: segment %d has unknown pace zone %q", ErrInvalidPlanFormat, i, set.Zone)
			}
			reps := float64(set.RepCount())
			switch set.Length.Kind {
			case domain.LengthTime:
				t.Distance += set.Length.Amount / pace.Seconds() * reps
				t.Duration += (set.Length.Amount + set.Rest) * reps
			case domain.LengthDistance:
				miles := set.Length.Amount / metersPerMile
				t.Distance += miles * reps
				t.Duration += (math.Round(miles*pace.Seconds()) + set.Rest) * reps
			default:
				return Totals{}, fmt.Errorf("%w: segment %d has unknown length kind %q", ErrInvalidPlanFormat, i, set.Length.Kind)
			}
		default:
			return Totals{}, fmt.Errorf("%w: segment %d has unknown kind %q", ErrInvalidPlanFormat, i, seg.Kind)
		}
	}
	return t, nil
}

// PaceEntries lists the distinct zone/pace pairs the segments reference, first seen first.
func PaceEntries(segments []domain.Segment, paces pacing.Vector) []domain.PaceEntry {
	out := []domain.PaceEntry{}
	for _, seg := range segments {
		if seg.Kind != domain.SegmentSet || seg.Set == nil {
			continue
		}
		pace, ok := paces.Pace(seg.Set.Zone)
		if !ok {
			continue
		}
		entry := domain.PaceEntry{Zone: seg.Set.Zone, Pace: pace}
		dup := false
		for _, e := range out {
			if e == entry {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, entry)
		}
	}
	return out
}
