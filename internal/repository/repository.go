package repository

import (
	"context"
	"fmt"

	"alcyxob/training-planner/internal/domain"
)

// Error constants for the repository layer.
var (
	ErrNotFound        = RepositoryError("not found")
	ErrVersionConflict = RepositoryError("version conflict")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// VersionConflictError reports an optimistic-concurrency failure. It matches
// ErrVersionConflict under errors.Is and is safe to retry after reloading.
type VersionConflictError struct {
	PlanID   string
	Expected int
	Actual   int
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("version conflict on plan %q: expected %d, stored %d", e.PlanID, e.Expected, e.Actual)
}

func (e *VersionConflictError) Is(target error) bool { return target == ErrVersionConflict }

// StorageError wraps a backend failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

// PlanRepository is the versioned plan store.
//
// A planID for which domain.IsCurrentPlan is true addresses one document per
// week, each upserted independently: writers on the same week race with last
// write wins and the returned version is expectedVersion+1 by convention.
// PruneWeeks drops that layout's weeks numbered above lastWeek.
// Any other planID addresses a single document that is only written when its
// stored version equals expectedVersion (a missing document has version 0);
// the audit record is appended to that document's changelog.
type PlanRepository interface {
	GetPlan(ctx context.Context, userID, planID string) (*domain.Plan, error)
	SavePlan(ctx context.Context, userID, planID string, weeks []domain.TrainingWeek, expectedVersion int, audit domain.AuditRecord) (int, error)
	Changelog(ctx context.Context, userID, planID string) ([]domain.AuditRecord, error)
	PruneWeeks(ctx context.Context, userID string, lastWeek int) error
}

// ProfileRepository stores athlete profiles keyed by user id.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*domain.AthleteProfile, error)
	UpsertProfile(ctx context.Context, profile *domain.AthleteProfile) error
}
