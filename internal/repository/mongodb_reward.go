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

// mongodbRewardRepository implements RewardRepository using MongoDB
type mongodbRewardRepository struct {
	collection *mongo.Collection
}

// NewRewardRepository creates a new MongoDB-based reward repository
func NewRewardRepository(db *mongo.Database) RewardRepository {
	return &mongodbRewardRepository{
		collection: db.Collection("rewards"),
	}
}

// Create lists a new catalog item
func (r *mongodbRewardRepository) Create(ctx context.Context, reward *model.Reward) error {
	_, err := r.collection.InsertOne(ctx, reward)
	return err
}

// GetByID retrieves a catalog item
func (r *mongodbRewardRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Reward, error) {
	var reward model.Reward
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&reward)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrRewardUnavailable
		}
		return nil, err
	}

	return &reward, nil
}

// DecrementQuantity atomically decrements the remaining inventory of a reward
func (r *mongodbRewardRepository) DecrementQuantity(ctx context.Context, id primitive.ObjectID, n int64) error {
	updateResult := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{
			"_id":      id,
			"quantity": bson.M{"$gte": n}, // Only update if stock >= n
		},
		bson.M{"$inc": bson.M{"quantity": -n}}, // Atomic decrement
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetUpsert(false),
	)

	if updateResult.Err() != nil {
		if updateResult.Err() == mongo.ErrNoDocuments {
			return apperrors.ErrRewardUnavailable
		}
		return updateResult.Err()
	}

	return nil
}

// List retrieves all catalog items, most recently listed first
func (r *mongodbRewardRepository) List(ctx context.Context) ([]*model.Reward, error) {
	opts := options.Find().SetSort(bson.D{{Key: "listed_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rewards []*model.Reward
	if err := cursor.All(ctx, &rewards); err != nil {
		return nil, err
	}

	return rewards, nil
}

// ListAvailable retrieves catalog items with stock remaining
func (r *mongodbRewardRepository) ListAvailable(ctx context.Context) ([]*model.Reward, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"quantity": bson.M{"$gt": 0}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rewards []*model.Reward
	if err := cursor.All(ctx, &rewards); err != nil {
		return nil, err
	}

	return rewards, nil
}
