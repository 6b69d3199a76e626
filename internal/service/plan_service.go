package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/logger"
	"alcyxob/training-planner/internal/plangen"
	"alcyxob/training-planner/internal/planops"
	"alcyxob/training-planner/internal/repository"
	"alcyxob/training-planner/internal/storage"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrInvalidMode       = errors.New("mode must be simulate or apply")
	ErrExportUnavailable = errors.New("object storage is not configured")
)

// Audit actors recorded on saves.
const (
	ActorAPI       = "api"
	ActorGenerator = "generator"
	ActorFeedback  = "feedback"
)

// Mode selects whether ApplyOperations persists its result.
type Mode string

const (
	ModeSimulate Mode = "simulate"
	ModeApply    Mode = "apply"
)

// ApplyRequest describes one ApplyOperations call. A nil ExpectedVersion means
// the version read at load time.
type ApplyRequest struct {
	PlanID          string
	Mode            Mode
	ExpectedVersion *int
	Actor           string
	Operations      []domain.PlanOperation
}

// ApplyResult is the engine result plus the versions on either side of the save.
type ApplyResult struct {
	planops.Result
	Mode        Mode   `json:"mode"`
	FromVersion int    `json:"fromVersion"`
	ToVersion   int    `json:"toVersion"`
	AuditID     string `json:"auditId,omitempty"`
}

// ExportResult points at an exported plan snapshot.
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Version   int       `json:"version"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// --- Service Interface ---
type PlanService interface {
	GeneratePlan(ctx context.Context, userID, planID string, profile domain.AthleteProfile) (*domain.Plan, error)
	GetPlan(ctx context.Context, userID, planID string) (*domain.Plan, error)
	Changelog(ctx context.Context, userID, planID string) ([]domain.AuditRecord, error)
	Simulate(weeks []domain.TrainingWeek, ops []domain.PlanOperation) (planops.Result, error)
	ApplyOperations(ctx context.Context, userID string, req ApplyRequest) (*ApplyResult, error)
	Export(ctx context.Context, userID, planID string) (*ExportResult, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	plans       repository.PlanRepository
	profiles    repository.ProfileRepository
	drafter     plangen.Drafter
	archive     storage.SnapshotArchive // nil disables snapshots and exports
	concurrency int
	log         *logger.Logger
	now         func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	plans repository.PlanRepository,
	profiles repository.ProfileRepository,
	drafter plangen.Drafter,
	archive storage.SnapshotArchive,
	concurrency int,
	log *logger.Logger,
) PlanService {
	if drafter == nil {
		drafter = plangen.TemplateDrafter{}
	}
	return &planService{
		plans:       plans,
		profiles:    profiles,
		drafter:     drafter,
		archive:     archive,
		concurrency: concurrency,
		log:         log,
		now:         time.Now,
	}
}

func planIDOrDefault(planID string) string {
	if planID == "" {
		return domain.CurrentPlanID
	}
	return planID
}

// GeneratePlan builds every week for profile and stores it under planID. An
// empty planID means the current plan; any other id creates or replaces a
// single-document plan with its own changelog.
func (s *planService) GeneratePlan(ctx context.Context, userID, planID string, profile domain.AthleteProfile) (*domain.Plan, error) {
	planID = planIDOrDefault(planID)
	profile.UserID = userID
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	weeks, err := plangen.GeneratePlan(ctx, &profile, s.drafter, s.concurrency)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.UpsertProfile(ctx, &profile); err != nil {
		return nil, err
	}

	expected := 0
	if current, err := s.plans.GetPlan(ctx, userID, planID); err == nil {
		expected = current.Version
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	audit := domain.AuditRecord{
		ID:         uuid.NewString(),
		AtISO:      now.Format(time.RFC3339),
		Actor:      ActorGenerator,
		Operations: domain.Operations{},
		Changeset:  []domain.PatchOp{},
		Warnings:   []string{},
	}
	version, err := s.plans.SavePlan(ctx, userID, planID, weeks, expected, audit)
	if err != nil {
		return nil, err
	}
	if domain.IsCurrentPlan(planID) {
		if err := s.plans.PruneWeeks(ctx, userID, len(weeks)); err != nil {
			return nil, err
		}
	}

	plan := &domain.Plan{
		UserID:    userID,
		PlanID:    planID,
		Weeks:     weeks,
		Version:   version,
		UpdatedAt: now,
	}
	s.log.Info("Plan generated", "userId", userID, "planId", planID, "weeks", len(weeks), "version", version)
	s.archiveSnapshot(ctx, plan, audit.ID)
	return plan, nil
}

func (s *planService) GetPlan(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	return s.plans.GetPlan(ctx, userID, planIDOrDefault(planID))
}

func (s *planService) Changelog(ctx context.Context, userID, planID string) ([]domain.AuditRecord, error) {
	return s.plans.Changelog(ctx, userID, planIDOrDefault(planID))
}

// Simulate runs ops against weeks without touching storage.
func (s *planService) Simulate(weeks []domain.TrainingWeek, ops []domain.PlanOperation) (planops.Result, error) {
	return planops.NewEngine(s.now).Run(weeks, ops)
}

// ApplyOperations loads the plan, runs ops and, in apply mode, saves the
// result with an audit record. An apply that changes nothing is not saved.
func (s *planService) ApplyOperations(ctx context.Context, userID string, req ApplyRequest) (*ApplyResult, error) {
	if req.Mode == "" {
		req.Mode = ModeApply
	}
	if req.Mode != ModeSimulate && req.Mode != ModeApply {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, req.Mode)
	}
	planID := planIDOrDefault(req.PlanID)

	plan, err := s.plans.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	res, err := planops.NewEngine(s.now).Run(plan.Weeks, req.Operations)
	if err != nil {
		return nil, err
	}

	out := &ApplyResult{
		Result:      res,
		Mode:        req.Mode,
		FromVersion: plan.Version,
		ToVersion:   plan.Version,
	}
	if req.Mode == ModeSimulate || len(res.Changeset) == 0 {
		return out, nil
	}

	expected := plan.Version
	if req.ExpectedVersion != nil {
		expected = *req.ExpectedVersion
	}
	actor := req.Actor
	if actor == "" {
		actor = ActorAPI
	}
	audit := domain.AuditRecord{
		ID:         uuid.NewString(),
		AtISO:      s.now().UTC().Format(time.RFC3339),
		Actor:      actor,
		Operations: domain.Operations(req.Operations),
		Changeset:  res.Changeset,
		Warnings:   res.Warnings,
	}

	// Week documents are written one by one, so only the weeks that changed go out.
	toSave := res.UpdatedPlan
	if domain.IsCurrentPlan(planID) {
		toSave = res.UpdatedWeeks
	}
	version, err := s.plans.SavePlan(ctx, userID, planID, toSave, expected, audit)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			s.log.Warn("Plan save rejected", "userId", userID, "planId", planID, "error", err)
		}
		return nil, err
	}
	out.FromVersion = expected
	out.ToVersion = version
	out.AuditID = audit.ID

	s.log.Info("Plan operations applied",
		"userId", userID, "planId", planID, "actor", actor,
		"operations", len(req.Operations), "updatedWeeks", len(res.UpdatedWeeks),
		"warnings", len(res.Warnings), "version", version)

	s.archiveSnapshot(ctx, &domain.Plan{
		UserID:    userID,
		PlanID:    planID,
		Weeks:     res.UpdatedPlan,
		Version:   version,
		UpdatedAt: s.now().UTC(),
	}, audit.ID)
	return out, nil
}

// archiveSnapshot copies plan into object storage. Failures are logged, never returned.
func (s *planService) archiveSnapshot(ctx context.Context, plan *domain.Plan, auditID string) {
	if s.archive == nil {
		return
	}
	body, err := json.Marshal(plan)
	if err != nil {
		s.log.Error("Failed to encode plan snapshot", "planId", plan.PlanID, "error", err)
		return
	}
	key := storage.SnapshotKey(plan.UserID, plan.PlanID, plan.Version, auditID)
	if err := s.archive.PutSnapshot(ctx, key, body); err != nil {
		s.log.Warn("Failed to archive plan snapshot", "key", key, "error", err)
	}
}

// Export writes the stored plan to object storage and returns a temporary download URL.
func (s *planService) Export(ctx context.Context, userID, planID string) (*ExportResult, error) {
	if s.archive == nil {
		return nil, ErrExportUnavailable
	}
	plan, err := s.plans.GetPlan(ctx, userID, planIDOrDefault(planID))
	if err != nil {
		return nil, err
	}
	body, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := storage.ExportKey(userID, plan.PlanID, uuid.NewString())
	if err := s.archive.PutSnapshot(ctx, key, body); err != nil {
		return nil, err
	}
	url, err := s.archive.PresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Key:       key,
		URL:       url,
		Version:   plan.Version,
		ExpiresAt: s.now().UTC().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}
