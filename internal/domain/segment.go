// internal/domain/segment.go
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// PaceZone names the pace a set is run at: either a race distance or a training zone.
type PaceZone string

const (
	ZoneLT1   PaceZone = "LT1"
	ZoneLT2   PaceZone = "LT2"
	ZoneEasy  PaceZone = "Easy"
	ZoneHills PaceZone = "Hills"
)

// TrainingZones are the derived zones (always ranges).
var TrainingZones = []PaceZone{ZoneLT1, ZoneLT2, ZoneEasy, ZoneHills}

// Valid reports whether z is a training zone or a canonical race distance.
func (z PaceZone) Valid() bool {
	for _, tz := range TrainingZones {
		if tz == z {
			return true
		}
	}
	return RaceDistance(z).Valid()
}

// LengthKind tells whether a set leg is measured in seconds or meters.
type LengthKind string

const (
	LengthTime     LengthKind = "time"     // seconds
	LengthDistance LengthKind = "distance" // meters
)

// SegmentLength is the size of one rep.
type SegmentLength struct {
	Kind   LengthKind `bson:"type" json:"type"`
	Amount float64    `bson:"amount" json:"amount"`
}

// WorkoutSet is reps x length at a pace zone, with optional rest after each rep.
type WorkoutSet struct {
	Zone   PaceZone      `bson:"type" json:"type"`
	Reps   int           `bson:"reps,omitempty" json:"reps,omitempty"` // 0 means a single rep
	Length SegmentLength `bson:"length" json:"length"`
	Rest   float64       `bson:"rest,omitempty" json:"rest,omitempty"` // seconds
}

// RepCount returns Reps with the implicit single rep applied.
func (s WorkoutSet) RepCount() int {
	if s.Reps <= 0 {
		return 1
	}
	return s.Reps
}

// SegmentKind discriminates Segment.
type SegmentKind string

const (
	SegmentRest SegmentKind = "rest"
	SegmentSet  SegmentKind = "set"
)

// Segment is either a bare rest (seconds) or a structured WorkoutSet.
// On the wire a rest is a bare JSON number and a set is an object.
type Segment struct {
	Kind        SegmentKind `bson:"kind" json:"-"`
	RestSeconds float64     `bson:"restSeconds,omitempty" json:"-"`
	Set         *WorkoutSet `bson:"set,omitempty" json:"-"`
}

// Rest builds a bare rest segment.
func Rest(seconds float64) Segment {
	return Segment{Kind: SegmentRest, RestSeconds: seconds}
}

// Set builds a structured segment.
func Set(zone PaceZone, reps int, kind LengthKind, amount, rest float64) Segment {
	return Segment{Kind: SegmentSet, Set: &WorkoutSet{
		Zone:   zone,
		Reps:   reps,
		Length: SegmentLength{Kind: kind, Amount: amount},
		Rest:   rest,
	}}
}

// Clone returns a copy that shares no memory with s.
func (s Segment) Clone() Segment {
	if s.Set != nil {
		set := *s.Set
		s.Set = &set
	}
	return s
}

func (s Segment) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case SegmentRest:
		return []byte(strconv.FormatFloat(s.RestSeconds, 'f', -1, 64)), nil
	case SegmentSet:
		if s.Set == nil {
			return nil, fmt.Errorf("segment: set kind without a set")
		}
		return json.Marshal(s.Set)
	default:
		return nil, fmt.Errorf("segment: unknown kind %q", s.Kind)
	}
}

func (s *Segment) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("segment: empty value")
	}
	if data[0] != '{' {
		var secs float64
		if err := json.Unmarshal(data, &secs); err != nil {
			return fmt.Errorf("segment: expected a number or an object: %w", err)
		}
		*s = Rest(secs)
		return nil
	}

	// {"rest": n} without a pace zone is also accepted as a bare rest.
	var probe struct {
		Type *PaceZone `json:"type"`
		Rest *float64  `json:"rest"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("segment: %w", err)
	}
	if probe.Type == nil {
		if probe.Rest == nil {
			return fmt.Errorf("segment: object has neither type nor rest")
		}
		*s = Rest(*probe.Rest)
		return nil
	}
	var set WorkoutSet
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("segment: %w", err)
	}
	*s = Segment{Kind: SegmentSet, Set: &set}
	return nil
}

// CloneSegments deep-copies a segment list, keeping nil as nil.
func CloneSegments(in []Segment) []Segment {
	if in == nil {
		return nil
	}
	out := make([]Segment, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
