package service

import (
	"campus-rewards/internal/model"
	"campus-rewards/internal/repository"
	apperrors "campus-rewards/pkg/errors"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedemptionService executes reward redemptions. The whole state
// transition — inventory decrement, balance debit, ledger entry, receipt —
// runs inside one transaction, and both contended fields are guarded by
// conditional updates, so concurrent redeemers against the same reward or
// profile can never oversell inventory or drive a balance negative.
type RedemptionService struct {
	rewards      repository.RewardRepository
	profiles     repository.ProfileRepository
	transactions repository.TransactionRepository
	redemptions  repository.RedemptionRepository
	tx           TxRunner
}

// NewRedemptionService creates a new redemption service
func NewRedemptionService(
	rewards repository.RewardRepository,
	profiles repository.ProfileRepository,
	transactions repository.TransactionRepository,
	redemptions repository.RedemptionRepository,
	tx TxRunner,
) *RedemptionService {
	return &RedemptionService{
		rewards:      rewards,
		profiles:     profiles,
		transactions: transactions,
		redemptions:  redemptions,
		tx:           tx,
	}
}

// Redeem attempts to redeem quantity units of a reward against a
// profile's balance. On success it returns the receipt; on failure the
// transaction is aborted and no state changes.
func (s *RedemptionService) Redeem(ctx context.Context, rewardID, profileID primitive.ObjectID, quantity int64) (*model.RedeemedReward, error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	var receipt *model.RedeemedReward
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		reward, err := s.rewards.GetByID(txCtx, rewardID)
		if err != nil {
			return err
		}
		if reward.Quantity < quantity {
			return apperrors.ErrRewardUnavailable
		}

		cost := reward.UnitCost() * quantity

		profile, err := s.profiles.GetByID(txCtx, profileID)
		if err != nil {
			return err
		}

		// The $gte guards on both documents re-check the preconditions
		// at write time; a concurrent redemption that raced past the
		// reads above fails here and aborts cleanly.
		if err := s.rewards.DecrementQuantity(txCtx, rewardID, quantity); err != nil {
			return err
		}
		if err := s.profiles.AdjustCurrent(txCtx, profileID, -cost); err != nil {
			return err
		}

		entry := &model.CreditTransaction{
			ID:         primitive.NewObjectID(),
			ProfileID:  profileID,
			Amount:     -cost,
			ReceivedAt: time.Now(),
		}
		if err := s.transactions.Create(txCtx, entry); err != nil {
			return err
		}

		receipt = &model.RedeemedReward{
			ID:          primitive.NewObjectID(),
			UserID:      profile.UserID,
			RewardID:    reward.ID,
			Item:        reward.Item,
			Description: reward.Description,
			ImageURL:    reward.ImageURL,
			Quantity:    quantity,
			TotalCost:   cost,
			RedeemedAt:  time.Now(),
		}
		return s.redemptions.Create(txCtx, receipt)
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}
