// internal/domain/operation.go
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownOperation is returned when decoding an operation whose type is not part of the vocabulary.
var ErrUnknownOperation = errors.New("unknown plan operation")

// OperationType is the wire discriminator of a PlanOperation.
type OperationType string

const (
	OpMoveWorkout                  OperationType = "MoveWorkout"
	OpReplaceWorkout               OperationType = "ReplaceWorkout"
	OpModifyWorkout                OperationType = "ModifyWorkout"
	OpInsertWorkout                OperationType = "InsertWorkout"
	OpDeleteWorkout                OperationType = "DeleteWorkout"
	OpSwapWorkouts                 OperationType = "SwapWorkouts"
	OpShiftWeek                    OperationType = "ShiftWeek"
	OpAdjustWeekVolume             OperationType = "AdjustWeekVolume"
	OpAdjustIntensity              OperationType = "AdjustIntensity"
	OpSetPlanProperty              OperationType = "SetPlanProperty"
	OpAddAnnotation                OperationType = "AddAnnotation"
	OpExplainWorkout               OperationType = "ExplainWorkout"
	OpAdjustWorkoutIntensity       OperationType = "AdjustWorkoutIntensity"
	OpModifyWorkoutBasedOnFeedback OperationType = "ModifyWorkoutBasedOnFeedback"
)

// PlanOperation is one mutation intent. The set of implementations is closed
// to this package.
type PlanOperation interface {
	Type() OperationType
	isPlanOperation()
}

type MoveWorkout struct {
	Date   string `json:"date"`
	ToDate string `json:"toDate"`
}

type ReplaceWorkout struct {
	Date    string          `json:"date"`
	Workout TrainingWorkout `json:"workout"`
}

// WorkoutPatch carries the fields a ModifyWorkout sets. Nil fields are left untouched.
type WorkoutPatch struct {
	Name            *string     `json:"name,omitempty"`
	Tags            *WorkoutTag `json:"tags,omitempty"`
	Workout         []Segment   `json:"workout,omitempty"`
	Warmup          []Segment   `json:"warmup,omitempty"`
	Cooldown        []Segment   `json:"cooldown,omitempty"`
	Distance        *float64    `json:"distance,omitempty"`
	Duration        *float64    `json:"duration,omitempty"`
	TargetHeartRate *string     `json:"targetHeartRate,omitempty"`
	TargetPace      []PaceEntry `json:"targetPace,omitempty"`
	Notes           *string     `json:"notes,omitempty"`
}

type ModifyWorkout struct {
	Date      string       `json:"date"`
	NewValues WorkoutPatch `json:"newValues"`
}

type InsertWorkout struct {
	Date    string          `json:"date"`
	Workout TrainingWorkout `json:"workout"`
}

type DeleteWorkout struct {
	Date string `json:"date"`
}

type SwapWorkouts struct {
	Date   string `json:"date"`
	ToDate string `json:"toDate"`
}

type ShiftWeek struct {
	Week      int `json:"week"`
	DeltaDays int `json:"deltaDays"`
}

type AdjustWeekVolume struct {
	Week   int     `json:"week"`
	Factor float64 `json:"factor"` // 0.9 = 10% less volume
}

// IntensityDirection for AdjustIntensity.
type IntensityDirection string

const (
	DirectionUp   IntensityDirection = "up"
	DirectionDown IntensityDirection = "down"
)

type AdjustIntensity struct {
	Week      int                `json:"week"`
	Direction IntensityDirection `json:"direction"`
}

type SetPlanProperty struct {
	ID      string   `json:"id,omitempty"`
	Comment string   `json:"comment,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type AddAnnotation struct {
	Date    string `json:"date"`
	Comment string `json:"comment"`
}

// ExplainWorkout is read-only. An empty Date means today.
type ExplainWorkout struct {
	Date  string `json:"date,omitempty"`
	Query string `json:"query,omitempty"`
}

// IntensityAdjustment for a single workout.
type IntensityAdjustment string

const (
	AdjustEasier   IntensityAdjustment = "easier"
	AdjustHarder   IntensityAdjustment = "harder"
	AdjustSkip     IntensityAdjustment = "skip"
	AdjustModerate IntensityAdjustment = "moderate"
)

type AdjustWorkoutIntensity struct {
	Date         string              `json:"date"`
	Adjustment   IntensityAdjustment `json:"adjustment"`
	Reason       string              `json:"reason"` // "fatigue", "injury", "feeling_great", ...
	UserFeedback string              `json:"userFeedback"`
}

// ModificationKind hints which flavour of session the athlete should get instead.
type ModificationKind string

const (
	ModificationEasy     ModificationKind = "easy"
	ModificationRecovery ModificationKind = "recovery"
	ModificationOriginal ModificationKind = "original"
)

type SuggestedModifications struct {
	Intensity IntensityAdjustment `json:"intensity,omitempty"`
	Distance  *float64            `json:"distance,omitempty"`
	Duration  *float64            `json:"duration,omitempty"`
	Type      ModificationKind    `json:"type,omitempty"`
}

type ModifyWorkoutBasedOnFeedback struct {
	Date                   string                 `json:"date"`
	UserFeedback           string                 `json:"userFeedback"`
	SuggestedModifications SuggestedModifications `json:"suggestedModifications"`
}

func (MoveWorkout) Type() OperationType                  { return OpMoveWorkout }
func (ReplaceWorkout) Type() OperationType               { return OpReplaceWorkout }
func (ModifyWorkout) Type() OperationType                { return OpModifyWorkout }
func (InsertWorkout) Type() OperationType                { return OpInsertWorkout }
func (DeleteWorkout) Type() OperationType                { return OpDeleteWorkout }
func (SwapWorkouts) Type() OperationType                 { return OpSwapWorkouts }
func (ShiftWeek) Type() OperationType                    { return OpShiftWeek }
func (AdjustWeekVolume) Type() OperationType             { return OpAdjustWeekVolume }
func (AdjustIntensity) Type() OperationType              { return OpAdjustIntensity }
func (SetPlanProperty) Type() OperationType              { return OpSetPlanProperty }
func (AddAnnotation) Type() OperationType                { return OpAddAnnotation }
func (ExplainWorkout) Type() OperationType               { return OpExplainWorkout }
func (AdjustWorkoutIntensity) Type() OperationType       { return OpAdjustWorkoutIntensity }
func (ModifyWorkoutBasedOnFeedback) Type() OperationType { return OpModifyWorkoutBasedOnFeedback }

func (MoveWorkout) isPlanOperation()                  {}
func (ReplaceWorkout) isPlanOperation()               {}
func (ModifyWorkout) isPlanOperation()                {}
func (InsertWorkout) isPlanOperation()                {}
func (DeleteWorkout) isPlanOperation()                {}
func (SwapWorkouts) isPlanOperation()                 {}
func (ShiftWeek) isPlanOperation()                    {}
func (AdjustWeekVolume) isPlanOperation()             {}
func (AdjustIntensity) isPlanOperation()              {}
func (SetPlanProperty) isPlanOperation()              {}
func (AddAnnotation) isPlanOperation()                {}
func (ExplainWorkout) isPlanOperation()               {}
func (AdjustWorkoutIntensity) isPlanOperation()       {}
func (ModifyWorkoutBasedOnFeedback) isPlanOperation() {}

// EncodeOperation renders op as a JSON object with its "type" discriminator first.
func EncodeOperation(op PlanOperation) ([]byte, error) {
	body, err := json.Marshal(op)
	if err != nil {
		return nil, err
	}
	typ, err := json.Marshal(op.Type())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(typ)
	if inner := bytes.TrimSpace(body[1 : len(body)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeOperation picks the variant from the "type" field and decodes the rest into it.
func DecodeOperation(data []byte) (PlanOperation, error) {
	var probe struct {
		Type OperationType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode operation: %w", err)
	}
	switch probe.Type {
	case OpMoveWorkout:
		return decodeAs[MoveWorkout](data)
	case OpReplaceWorkout:
		return decodeAs[ReplaceWorkout](data)
	case OpModifyWorkout:
		return decodeAs[ModifyWorkout](data)
	case OpInsertWorkout:
		return decodeAs[InsertWorkout](data)
	case OpDeleteWorkout:
		return decodeAs[DeleteWorkout](data)
	case OpSwapWorkouts:
		return decodeAs[SwapWorkouts](data)
	case OpShiftWeek:
		return decodeAs[ShiftWeek](data)
	case OpAdjustWeekVolume:
		return decodeAs[AdjustWeekVolume](data)
	case OpAdjustIntensity:
		return decodeAs[AdjustIntensity](data)
	case OpSetPlanProperty:
		return decodeAs[SetPlanProperty](data)
	case OpAddAnnotation:
		return decodeAs[AddAnnotation](data)
	case OpExplainWorkout:
		return decodeAs[ExplainWorkout](data)
	case OpAdjustWorkoutIntensity:
		return decodeAs[AdjustWorkoutIntensity](data)
	case OpModifyWorkoutBasedOnFeedback:
		return decodeAs[ModifyWorkoutBasedOnFeedback](data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, probe.Type)
	}
}

func decodeAs[T PlanOperation](data []byte) (PlanOperation, error) {
	var op T
	if err := json.Unmarshal(data, &op); err != nil {
		return nil, fmt.Errorf("decode %s: %w", op.Type(), err)
	}
	return op, nil
}

// Operations is an ordered operation list with a discriminated JSON codec.
type Operations []PlanOperation

func (ops Operations) MarshalJSON() ([]byte, error) {
	if ops == nil {
		return []byte("[]"), nil
	}
	raw := make([]json.RawMessage, len(ops))
	for i, op := range ops {
		b, err := EncodeOperation(op)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		raw[i] = b
	}
	return json.Marshal(raw)
}

func (ops *Operations) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Operations, 0, len(raw))
	for i, r := range raw {
		op, err := DecodeOperation(r)
		if err != nil {
			return fmt.Errorf("operation %d: %w", i, err)
		}
		out = append(out, op)
	}
	*ops = out
	return nil
}
