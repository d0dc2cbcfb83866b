package repository

import (
	"campus-rewards/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardRepository defines the interface for reward catalog data operations
type RewardRepository interface {
	// Create lists a new catalog item
	Create(ctx context.Context, reward *model.Reward) error

	// GetByID retrieves a catalog item
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Reward, error)

	// DecrementQuantity atomically decrements remaining inventory.
	// Returns an error if fewer than n units remain.
	DecrementQuantity(ctx context.Context, id primitive.ObjectID, n int64) error

	// List retrieves all catalog items, most recently listed first
	List(ctx context.Context) ([]*model.Reward, error)

	// ListAvailable retrieves catalog items with stock remaining
	ListAvailable(ctx context.Context) ([]*model.Reward, error)
}
