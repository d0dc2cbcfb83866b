package repository

import (
	"campus-rewards/internal/model"
	"context"
)

// RedemptionRepository defines the interface for redemption receipts
type RedemptionRepository interface {
	// Create records the receipt of a completed redemption
	Create(ctx context.Context, receipt *model.RedeemedReward) error

	// ListByUser retrieves a user's receipts, most recent first
	ListByUser(ctx context.Context, userID string) ([]*model.RedeemedReward, error)
}
