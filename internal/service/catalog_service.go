package service

import (
	"campus-rewards/internal/model"
	"campus-rewards/internal/repository"
	apperrors "campus-rewards/pkg/errors"
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogService handles reward catalog administration. The caller must
// already be authorized; the role gate lives at the HTTP boundary and
// runs before any of this.
type CatalogService struct {
	rewards repository.RewardRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(rewards repository.RewardRepository) *CatalogService {
	return &CatalogService{
		rewards: rewards,
	}
}

// CreateReward validates and lists a new catalog item
func (s *CatalogService) CreateReward(ctx context.Context, req *model.CreateRewardRequest) (*model.Reward, error) {
	item := strings.TrimSpace(req.Item)
	if item == "" {
		return nil, apperrors.NewValidation("item", "item name is required")
	}
	if req.Quantity <= 0 {
		return nil, apperrors.NewValidation("quantity", "quantity must be a positive integer")
	}
	if req.DefaultCost <= 0 {
		return nil, apperrors.NewValidation("default_cost", "default cost must be a positive integer")
	}

	var discount int64
	if req.DiscountCost != nil {
		discount = *req.DiscountCost
		if discount <= 0 || discount > req.DefaultCost {
			return nil, apperrors.NewValidation("discount_cost",
				"discount cost must be a positive integer no greater than default cost")
		}
	}

	reward := &model.Reward{
		ID:           primitive.NewObjectID(),
		Item:         item,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Quantity:     req.Quantity,
		DefaultCost:  req.DefaultCost,
		DiscountCost: discount,
		ListedAt:     time.Now(),
	}

	if err := s.rewards.Create(ctx, reward); err != nil {
		return nil, err
	}

	return reward, nil
}

// ListRewards retrieves the full catalog, most recently listed first
func (s *CatalogService) ListRewards(ctx context.Context) ([]*model.Reward, error) {
	return s.rewards.List(ctx)
}

// ListAvailableRewards retrieves catalog items with stock remaining
func (s *CatalogService) ListAvailableRewards(ctx context.Context) ([]*model.Reward, error) {
	return s.rewards.ListAvailable(ctx)
}
