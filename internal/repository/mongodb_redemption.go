package repository

import (
	"campus-rewards/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongodbRedemptionRepository implements RedemptionRepository using MongoDB
type mongodbRedemptionRepository struct {
	collection *mongo.Collection
}

// NewRedemptionRepository creates a new MongoDB-based redemption repository
func NewRedemptionRepository(db *mongo.Database) RedemptionRepository {
	return &mongodbRedemptionRepository{
		collection: db.Collection("redemptions"),
	}
}

// Create records a redemption receipt
func (r *mongodbRedemptionRepository) Create(ctx context.Context, receipt *model.RedeemedReward) error {
	_, err := r.collection.InsertOne(ctx, receipt)
	return err
}

// ListByUser retrieves a user's receipts, most recent first
func (r *mongodbRedemptionRepository) ListByUser(ctx context.Context, userID string) ([]*model.RedeemedReward, error) {
	opts := options.Find().SetSort(bson.D{{Key: "redeemed_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var receipts []*model.RedeemedReward
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, err
	}

	return receipts, nil
}
