package repository

import (
	"campus-rewards/internal/model"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionRepository defines the interface for the append-only ledger
type TransactionRepository interface {
	// Create appends a ledger entry; entries are never updated or deleted
	Create(ctx context.Context, tx *model.CreditTransaction) error

	// ListByProfile retrieves a profile's ledger entries, newest first
	ListByProfile(ctx context.Context, profileID primitive.ObjectID) ([]*model.CreditTransaction, error)
}
