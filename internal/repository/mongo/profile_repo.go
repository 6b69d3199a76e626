package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"alcyxob/training-planner/internal/domain"
	"alcyxob/training-planner/internal/repository"
)

const profileCollectionName = "athlete_profiles"

type profileDocument struct {
	ID      string                `bson:"_id"` // userId
	Profile domain.AthleteProfile `bson:",inline"`
}

// mongoProfileRepository implements repository.ProfileRepository using MongoDB.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{collection: db.Collection(profileCollectionName)}
}

func (r *mongoProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.AthleteProfile, error) {
	var doc profileDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, storageErr("get profile", err)
	}
	return &doc.Profile, nil
}

// UpsertProfile replaces the stored profile wholesale.
func (r *mongoProfileRepository) UpsertProfile(ctx context.Context, profile *domain.AthleteProfile) error {
	if profile.UserID == "" {
		return errors.New("profile requires a userId")
	}
	p := *profile
	p.UpdatedAt = time.Now().UTC()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.UserID}, profileDocument{ID: p.UserID, Profile: p}, options.Replace().SetUpsert(true))
	if err != nil {
		return storageErr("upsert profile", err)
	}
	return nil
}
