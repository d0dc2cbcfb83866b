package repository

import (
	"campus-rewards/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongodbTransactionRepository implements TransactionRepository using MongoDB
type mongodbTransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new MongoDB-based transaction repository
func NewTransactionRepository(db *mongo.Database) TransactionRepository {
	return &mongodbTransactionRepository{
		collection: db.Collection("transactions"),
	}
}

// Create appends a ledger entry
func (r *mongodbTransactionRepository) Create(ctx context.Context, tx *model.CreditTransaction) error {
	_, err := r.collection.InsertOne(ctx, tx)
	return err
}

// ListByProfile retrieves a profile's ledger entries, newest first
func (r *mongodbTransactionRepository) ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]*model.CreditTransaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "received_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"profile_id": profileID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var transactions []*model.CreditTransaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}

	return transactions, nil
}
