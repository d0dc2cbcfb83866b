package repository

import (
	"campus-rewards/internal/model"
	apperrors "campus-rewards/pkg/errors"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongodbProfileRepository implements ProfileRepository using MongoDB
type mongodbProfileRepository struct {
	collection *mongo.Collection
}

// NewProfileRepository creates a new MongoDB-based profile repository
func NewProfileRepository(db *mongo.Database) ProfileRepository {
	return &mongodbProfileRepository{
		collection: db.Collection("profiles"),
	}
}

// Create provisions a new profile; the unique index on user_id enforces
// one profile per user
func (r *mongodbProfileRepository) Create(ctx context.Context, profile *model.RewardsProfile) error {
	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrProfileExists
		}
		return err
	}

	return nil
}

// GetByUserID retrieves the profile owned by a user
func (r *mongodbProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.RewardsProfile, error) {
	var profile model.RewardsProfile
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// GetByID retrieves a profile by its id
func (r *mongodbProfileRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.RewardsProfile, error) {
	var profile model.RewardsProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}

	return &profile, nil
}

// AddCredits atomically increments both balance fields
func (r *mongodbProfileRepository) AddCredits(ctx context.Context, id primitive.ObjectID, amount int64) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{
			"current_credits": amount,
			"earned_credits":  amount,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrProfileNotFound
	}

	return nil
}

// AdjustCurrent atomically moves current_credits by delta. Debits carry a
// balance guard in the filter so the document can never go negative, even
// under concurrent spenders.
func (r *mongodbProfileRepository) AdjustCurrent(ctx context.Context, id primitive.ObjectID, delta int64) error {
	filter := bson.M{"_id": id}
	if delta < 0 {
		filter["current_credits"] = bson.M{"$gte": -delta} // Only debit if balance covers it
	}

	updateResult := r.collection.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$inc": bson.M{"current_credits": delta}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetUpsert(false),
	)

	if updateResult.Err() != nil {
		if updateResult.Err() == mongo.ErrNoDocuments {
			return apperrors.ErrInsufficientCredits
		}
		return updateResult.Err()
	}

	return nil
}

// ListTopByEarned returns up to limit profiles ranked by lifetime earnings
func (r *mongodbProfileRepository) ListTopByEarned(ctx context.Context, limit int) ([]*model.RewardsProfile, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "earned_credits", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var profiles []*model.RewardsProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}

	return profiles, nil
}
