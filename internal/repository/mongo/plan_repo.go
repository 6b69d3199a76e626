// internal/repository/mongo/plan_repo.go
package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/repository"
)

const (
	planCollectionName     = "plans"      // one document per explicit plan id
	planWeekCollectionName = "plan_weeks" // one document per (user, week) for the current plan
)

var (
	weekIndexKeys = bson.D{{Key: "userId", Value: 1}, {Key: "week", Value: 1}}
	userIndexKeys = bson.D{{Key: "userId", Value: 1}}
)

type weekDocument struct {
	ID        string              `bson:"_id"` // userId/weekId
	UserID    string              `bson:"userId"`
	Week      domain.TrainingWeek `bson:",inline"`
	Version   int                 `bson:"version"`
	UpdatedAt time.Time           `bson:"updatedAt"`
	Actor     string              `bson:"actor,omitempty"`
}

// weekFields is the $set half of a week upsert; version is bumped separately.
type weekFields struct {
	UserID    string              `bson:"userId"`
	Week      domain.TrainingWeek `bson:",inline"`
	UpdatedAt time.Time           `bson:"updatedAt"`
	Actor     string              `bson:"actor,omitempty"`
}

type planDocument struct {
	ID        string                `bson:"_id"` // userId/planId
	UserID    string                `bson:"userId"`
	PlanID    string                `bson:"planId"`
	Weeks     []domain.TrainingWeek `bson:"weeks"`
	Version   int                   `bson:"version"`
	UpdatedAt time.Time             `bson:"updatedAt"`
	Actor     string                `bson:"actor,omitempty"`
	Changelog []changelogEntry      `bson:"changelog"`
}

type changelogEntry struct {
	ID         string           `bson:"id"`
	AtISO      string           `bson:"atISO"`
	Actor      string           `bson:"actor"`
	Operations []bson.Raw `bson:"operations"`
	Changeset  []bson.Raw `bson:"changeset"` // patch ops as documents; values keep their JSON shape
	Warnings   []string   `bson:"warnings"`
}

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	plans *mongo.Collection
	weeks *mongo.Collection
	now   func() time.Time
}

// NewMongoPlanRepository creates a new plan repository.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		plans: db.Collection(planCollectionName),
		weeks: db.Collection(planWeekCollectionName),
		now:   time.Now,
	}
}

func docID(userID, key string) string { return userID + "/" + key }

func storageErr(op string, err error) error {
	return &repository.StorageError{Op: op, Err: err}
}

func (r *mongoPlanRepository) GetPlan(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	if domain.IsCurrentPlan(planID) {
		return r.getWeeks(ctx, userID, planID)
	}
	var doc planDocument
	err := r.plans.FindOne(ctx, bson.M{"_id": docID(userID, planID)}, options.FindOne().SetProjection(bson.M{"changelog": 0})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, storageErr("get plan", err)
	}
	return &domain.Plan{
		UserID:    userID,
		PlanID:    planID,
		Weeks:     doc.Weeks,
		Version:   doc.Version,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (r *mongoPlanRepository) getWeeks(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	cursor, err := r.weeks.Find(ctx, bson.M{"userId": userID}, options.Find().SetSort(bson.D{{Key: "week", Value: 1}}))
	if err != nil {
		return nil, storageErr("find weeks", err)
	}
	defer cursor.Close(ctx)

	var docs []weekDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, storageErr("decode weeks", err)
	}
	if len(docs) == 0 {
		return nil, repository.ErrNotFound
	}
	plan := &domain.Plan{UserID: userID, PlanID: planID, Weeks: make([]domain.TrainingWeek, 0, len(docs))}
	for _, d := range docs {
		plan.Weeks = append(plan.Weeks, d.Week)
		plan.Version = max(plan.Version, d.Version)
		if d.UpdatedAt.After(plan.UpdatedAt) {
			plan.UpdatedAt = d.UpdatedAt
		}
	}
	return plan, nil
}

func (r *mongoPlanRepository) SavePlan(ctx context.Context, userID, planID string, weeks []domain.TrainingWeek, expectedVersion int, audit domain.AuditRecord) (int, error) {
	now := r.now().UTC()
	if domain.IsCurrentPlan(planID) {
		return r.saveWeeks(ctx, userID, weeks, expectedVersion, audit.Actor, now)
	}

	entry, err := newChangelogEntry(audit)
	if err != nil {
		return 0, err
	}
	id := docID(userID, planID)

	if expectedVersion == 0 {
		doc := planDocument{
			ID: id, UserID: userID, PlanID: planID,
			Weeks: weeks, Version: 1, UpdatedAt: now, Actor: audit.Actor,
			Changelog: []changelogEntry{entry},
		}
		if _, err := r.plans.InsertOne(ctx, doc); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return 0, r.conflict(ctx, id, planID, expectedVersion)
			}
			return 0, storageErr("insert plan", err)
		}
		return 1, nil
	}

	// The version predicate makes the write a compare-and-swap on the document.
	filter := bson.M{"_id": id, "version": expectedVersion}
	update := bson.M{
		"$set":  bson.M{"weeks": weeks, "updatedAt": now, "actor": audit.Actor},
		"$inc":  bson.M{"version": 1},
		"$push": bson.M{"changelog": entry},
	}
	res, err := r.plans.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, storageErr("update plan", err)
	}
	if res.MatchedCount == 0 {
		return 0, r.conflict(ctx, id, planID, expectedVersion)
	}
	return expectedVersion + 1, nil
}

func (r *mongoPlanRepository) conflict(ctx context.Context, id, planID string, expected int) error {
	var doc struct {
		Version int `bson:"version"`
	}
	err := r.plans.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"version": 1})).Decode(&doc)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return storageErr("read version", err)
	}
	return &repository.VersionConflictError{PlanID: planID, Expected: expected, Actual: doc.Version}
}

// saveWeeks upserts each week on its own.
func (r *mongoPlanRepository) saveWeeks(ctx context.Context, userID string, weeks []domain.TrainingWeek, expectedVersion int, actor string, now time.Time) (int, error) {
	for _, w := range weeks {
		update := bson.M{
			"$set": weekFields{UserID: userID, Week: w, UpdatedAt: now, Actor: actor},
			"$inc": bson.M{"version": 1},
		}
		_, err := r.weeks.UpdateOne(ctx, bson.M{"_id": docID(userID, w.ID)}, update, options.Update().SetUpsert(true))
		if err != nil {
			return 0, storageErr("upsert "+w.ID, err)
		}
	}
	return expectedVersion + 1, nil
}

func (r *mongoPlanRepository) PruneWeeks(ctx context.Context, userID string, lastWeek int) error {
	if _, err := r.weeks.DeleteMany(ctx, bson.M{"userId": userID, "week": bson.M{"$gt": lastWeek}}); err != nil {
		return storageErr("prune weeks", err)
	}
	return nil
}

func (r *mongoPlanRepository) Changelog(ctx context.Context, userID, planID string) ([]domain.AuditRecord, error) {
	var doc planDocument
	err := r.plans.FindOne(ctx, bson.M{"_id": docID(userID, planID)}, options.FindOne().SetProjection(bson.M{"changelog": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, storageErr("get changelog", err)
	}
	out := make([]domain.AuditRecord, 0, len(doc.Changelog))
	for _, e := range doc.Changelog {
		rec, err := e.record()
		if err != nil {
			return nil, storageErr("decode changelog", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Operations are a JSON-discriminated union; they are stored as the documents
// their JSON form describes.
func newChangelogEntry(a domain.AuditRecord) (changelogEntry, error) {
	e := changelogEntry{
		ID:         a.ID,
		AtISO:      a.AtISO,
		Actor:      a.Actor,
		Operations: make([]bson.Raw, 0, len(a.Operations)),
		Changeset:  make([]bson.Raw, 0, len(a.Changeset)),
		Warnings:   a.Warnings,
	}
	for _, p := range a.Changeset {
		data, err := json.Marshal(p)
		if err != nil {
			return changelogEntry{}, storageErr("encode patch", err)
		}
		var raw bson.Raw
		if err := bson.UnmarshalExtJSON(data, false, &raw); err != nil {
			return changelogEntry{}, storageErr("encode patch", err)
		}
		e.Changeset = append(e.Changeset, raw)
	}
	for _, op := range a.Operations {
		data, err := domain.EncodeOperation(op)
		if err != nil {
			return changelogEntry{}, err
		}
		var raw bson.Raw
		if err := bson.UnmarshalExtJSON(data, false, &raw); err != nil {
			return changelogEntry{}, storageErr("encode operation", err)
		}
		e.Operations = append(e.Operations, raw)
	}
	return e, nil
}

func (e changelogEntry) record() (domain.AuditRecord, error) {
	rec := domain.AuditRecord{
		ID:         e.ID,
		AtISO:      e.AtISO,
		Actor:      e.Actor,
		Operations: make(domain.Operations, 0, len(e.Operations)),
		Changeset:  make([]domain.PatchOp, 0, len(e.Changeset)),
		Warnings:   e.Warnings,
	}
	for _, raw := range e.Changeset {
		data, err := bson.MarshalExtJSON(raw, false, false)
		if err != nil {
			return rec, err
		}
		var p domain.PatchOp
		if err := json.Unmarshal(data, &p); err != nil {
			return rec, err
		}
		rec.Changeset = append(rec.Changeset, p)
	}
	for _, raw := range e.Operations {
		data, err := bson.MarshalExtJSON(raw, false, false)
		if err != nil {
			return rec, err
		}
		op, err := domain.DecodeOperation(data)
		if err != nil {
			return rec, err
		}
		rec.Operations = append(rec.Operations, op)
	}
	return rec, nil
}
