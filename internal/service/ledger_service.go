package service

import (
	"campus-rewards/internal/model"
	"campus-rewards/internal/repository"
	apperrors "campus-rewards/pkg/errors"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerService owns the profile store and the append-only transaction
// log. Every balance change goes through here or the RedemptionService;
// no other code path touches these collections.
type LedgerService struct {
	profiles     repository.ProfileRepository
	transactions repository.TransactionRepository
	tx           TxRunner
}

// NewLedgerService creates a new ledger service
func NewLedgerService(profiles repository.ProfileRepository, transactions repository.TransactionRepository, tx TxRunner) *LedgerService {
	return &LedgerService{
		profiles:     profiles,
		transactions: transactions,
		tx:           tx,
	}
}

// CreateProfile provisions a rewards profile for a user. Profiles are
// created explicitly at signup; Credit and Redeem never create one.
func (s *LedgerService) CreateProfile(ctx context.Context, userID, displayName string) (*model.RewardsProfile, error) {
	profile := &model.RewardsProfile{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile retrieves the profile owned by a user
func (s *LedgerService) GetProfile(ctx context.Context, userID string) (*model.RewardsProfile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Credit appends a positive ledger entry and increments both the current
// balance and the lifetime earned total in one atomic unit. Crediting is
// not idempotent per event: callers that need exactly-once-per-event
// semantics must dedupe before calling.
func (s *LedgerService) Credit(ctx context.Context, profileID primitive.ObjectID, amount int64, eventID string) error {
	if amount <= 0 {
		return apperrors.ErrInvalidAmount
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry := &model.CreditTransaction{
			ID:         primitive.NewObjectID(),
			ProfileID:  profileID,
			EventID:    eventID,
			Amount:     amount,
			ReceivedAt: time.Now(),
		}
		if err := s.transactions.Create(txCtx, entry); err != nil {
			return err
		}

		return s.profiles.AddCredits(txCtx, profileID, amount)
	})
}

// Adjust applies a manual balance correction. It records a ledger entry
// and moves the current balance only; lifetime earnings never change
// through this path. A debit larger than the balance fails.
func (s *LedgerService) Adjust(ctx context.Context, profileID primitive.ObjectID, amount int64, note string) error {
	if amount == 0 {
		return apperrors.ErrInvalidAmount
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.profiles.GetByID(txCtx, profileID); err != nil {
			return err
		}

		if err := s.profiles.AdjustCurrent(txCtx, profileID, amount); err != nil {
			return err
		}

		entry := &model.CreditTransaction{
			ID:         primitive.NewObjectID(),
			ProfileID:  profileID,
			Amount:     amount,
			Note:       note,
			ReceivedAt: time.Now(),
		}
		return s.transactions.Create(txCtx, entry)
	})
}

// ListTransactions retrieves a profile's ledger entries, newest first
func (s *LedgerService) ListTransactions(ctx context.Context, profileID primitive.ObjectID) ([]*model.CreditTransaction, error) {
	if _, err := s.profiles.GetByID(ctx, profileID); err != nil {
		return nil, err
	}

	return s.transactions.ListByProfile(ctx, profileID)
}
