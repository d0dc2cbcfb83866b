package repository

import (
	"campus-rewards/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileRepository defines the interface for rewards profile data operations
type ProfileRepository interface {
	// Create provisions a new profile; one per user
	Create(ctx context.Context, profile *model.RewardsProfile) error

	// GetByUserID retrieves the profile owned by a user
	GetByUserID(ctx context.Context, userID string) (*model.RewardsProfile, error)

	// GetByID retrieves a profile by its id
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.RewardsProfile, error)

	// AddCredits atomically increments both current and earned credits
	AddCredits(ctx context.Context, id primitive.ObjectID, amount int64) error

	// AdjustCurrent atomically moves current credits by delta, leaving
	// earned credits untouched. A negative delta only applies when the
	// balance covers it.
	AdjustCurrent(ctx context.Context, id primitive.ObjectID, delta int64) error

	// ListTopByEarned returns up to limit profiles ranked by lifetime
	// earnings, ties broken by profile id
	ListTopByEarned(ctx context.Context, limit int) ([]*model.RewardsProfile, error)
}
