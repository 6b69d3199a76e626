package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Pace is seconds per mile, either a single value or a [Low, High] range.
type Pace struct {
	Low   float64 `bson:"low" json:"-"`
	High  float64 `bson:"high" json:"-"`
	Range bool    `bson:"range" json:"-"`
}

// SinglePace builds a non-range pace.
func SinglePace(v float64) Pace { return Pace{Low: v, High: v} }

// PaceRange builds a range pace.
func PaceRange(low, high float64) Pace { return Pace{Low: low, High: high, Range: true} }

// Seconds returns the pace used for distance/duration conversions (the fast end of a range).
func (p Pace) Seconds() float64 { return p.Low }

func (p Pace) MarshalJSON() ([]byte, error) {
	if p.Range {
		return json.Marshal([2]float64{p.Low, p.High})
	}
	return json.Marshal(p.Low)
}

func (p *Pace) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var r []float64
		if err := json.Unmarshal(data, &r); err != nil {
			return fmt.Errorf("pace: %w", err)
		}
		if len(r) != 2 {
			return fmt.Errorf("pace: range must have exactly two values")
		}
		*p = PaceRange(r[0], r[1])
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("pace: %w", err)
	}
	*p = SinglePace(v)
	return nil
}

// PaceEntry is one distinct pace a workout references.
type PaceEntry struct {
	Zone PaceZone `bson:"type" json:"type"`
	Pace Pace     `bson:"pace" json:"pace"`
}
