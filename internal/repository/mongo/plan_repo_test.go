package mongo

import (
	"encoding/json"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"alcyxob/training-planner/internal/domain"
)

func TestChangelogEntryRoundTrip(t *testing.T) {
	factor := 0.8
	audit := domain.AuditRecord{
		ID:    "a1",
		AtISO: "2025-01-16T10:00:00Z",
		Actor: "athlete",
		Operations: domain.Operations{
			domain.AdjustWeekVolume{Week: 2, Factor: factor},
			domain.MoveWorkout{Date: "2025-01-14", ToDate: "2025-01-15"},
			domain.ModifyWorkoutBasedOnFeedback{
				Date:                   "2025-01-16",
				SuggestedModifications: domain.SuggestedModifications{Type: domain.ModificationRecovery},
			},
		},
		Changeset: []domain.PatchOp{
			{Op: "replace", Path: "/1/totalMileage", Value: 32.5},
			{Op: "add", Path: "/1/workouts/2", Value: map[string]any{"name": "Easy Run", "distance": 5}},
			{Op: "move", From: "/1/workouts/0", Path: "/1/workouts/1"},
		},
		Warnings:  []string{},
	}
	entry, err := newChangelogEntry(audit)
	if err != nil {
		t.Fatal(err)
	}

	// Through BSON, as the driver would store it.
	data, err := bson.Marshal(entry)
	if err != nil {
		t.Fatal(err)
	}
	var stored changelogEntry
	if err := bson.Unmarshal(data, &stored); err != nil {
		t.Fatal(err)
	}
	if got := stored.Operations[0].Lookup("type").StringValue(); got != "AdjustWeekVolume" {
		t.Errorf("stored type = %q", got)
	}

	got, err := stored.record()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Operations, audit.Operations) {
		t.Errorf("operations = %#v", got.Operations)
	}
	if got.ID != "a1" || got.Actor != "athlete" {
		t.Errorf("record = %+v", got)
	}
	want, _ := json.Marshal(audit.Changeset)
	have, err := json.Marshal(got.Changeset)
	if err != nil {
		t.Fatal(err)
	}
	if string(have) != string(want) {
		t.Errorf("changeset = %s, want %s", have, want)
	}
}

func TestDocID(t *testing.T) {
	if got := docID("u1", domain.WeekID(3)); got != "u1/week-3" {
		t.Errorf("docID = %q", got)
	}
}
