package service

import (
	"campus-rewards/internal/cache"
	"campus-rewards/internal/model"
	"campus-rewards/internal/repository"
	"context"
)

// DefaultLeaderboardLimit caps leaderboard queries; requests above it are
// clamped and requests without a limit use it as-is.
const DefaultLeaderboardLimit = 200

// LeaderboardService serves read-only reporting: the ranked leaderboard
// and per-user redemption history. Ranks come from the earned_credits
// aggregate on the profile; the transaction log is audit only.
type LeaderboardService struct {
	profiles    repository.ProfileRepository
	redemptions repository.RedemptionRepository
	cache       *cache.LeaderboardCache
}

// NewLeaderboardService creates a new leaderboard service. The cache may
// be nil, in which case every read hits the profile store.
func NewLeaderboardService(profiles repository.ProfileRepository, redemptions repository.RedemptionRepository, c *cache.LeaderboardCache) *LeaderboardService {
	return &LeaderboardService{
		profiles:    profiles,
		redemptions: redemptions,
		cache:       c,
	}
}

// Leaderboard returns up to limit profiles ranked descending by lifetime
// earnings, ties broken by profile id
func (s *LeaderboardService) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardRow, error) {
	if limit <= 0 || limit > DefaultLeaderboardLimit {
		limit = DefaultLeaderboardLimit
	}

	if rows, ok := s.cache.Get(ctx, limit); ok {
		return rows, nil
	}

	profiles, err := s.profiles.ListTopByEarned(ctx, limit)
	if err != nil {
		return nil, err
	}

	rows := make([]model.LeaderboardRow, 0, len(profiles))
	for i, p := range profiles {
		rows = append(rows, model.LeaderboardRow{
			Rank:           i + 1,
			UserID:         p.UserID,
			DisplayName:    p.DisplayName,
			EarnedCredits:  p.EarnedCredits,
			CurrentCredits: p.CurrentCredits,
		})
	}

	s.cache.Set(ctx, limit, rows)

	return rows, nil
}

// ListRedeemedRewards retrieves a user's redemption receipts, most
// recent first. Reward metadata comes straight off the receipt.
func (s *LeaderboardService) ListRedeemedRewards(ctx context.Context, userID string) ([]*model.RedeemedReward, error) {
	return s.redemptions.ListByUser(ctx, userID)
}
