// internal/domain/plan.go
package domain

import "time"

// Virtual plan identifiers addressing the per-week document layout.
const (
	CurrentPlanID = "current-plan"
	DefaultPlanID = "default"
)

// IsCurrentPlan reports whether planID addresses the per-week layout rather than a single plan document.
func IsCurrentPlan(planID string) bool {
	return planID == CurrentPlanID || planID == DefaultPlanID
}

// Plan is a stored plan snapshot.
type Plan struct {
	UserID    string         `bson:"userId" json:"userId"`
	PlanID    string         `bson:"planId" json:"planId"`
	Weeks     []TrainingWeek `bson:"weeks" json:"weeks"`
	Version   int            `bson:"version" json:"version"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// PatchOp is one RFC 6902 operation of a changeset.
type PatchOp struct {
	Op    string `bson:"op" json:"op"`
	Path  string `bson:"path" json:"path"`
	From  string `bson:"from,omitempty" json:"from,omitempty"`
	Value any    `bson:"value,omitempty" json:"value,omitempty"`
}

// AuditRecord is appended to a plan's changelog on every applied save.
type AuditRecord struct {
	ID         string     `bson:"id" json:"id"`
	AtISO      string     `bson:"atISO" json:"atISO"`
	Actor      string     `bson:"actor" json:"actor"`
	Operations Operations `bson:"-" json:"operations"` // stored through its JSON form
	Changeset  []PatchOp  `bson:"changeset" json:"changeset"`
	Warnings   []string   `bson:"warnings" json:"warnings"`
}
