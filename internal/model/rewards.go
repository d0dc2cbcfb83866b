package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardsProfile holds a user's spendable balance and lifetime earnings.
// DisplayName is denormalized from the external user record at
// provisioning time so the leaderboard never has to reach outside
// this service.
type RewardsProfile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         string             `bson:"user_id" json:"user_id"` // Unique index
	DisplayName    string             `bson:"display_name" json:"display_name"`
	CurrentCredits int64              `bson:"current_credits" json:"current_credits"`
	EarnedCredits  int64              `bson:"earned_credits" json:"earned_credits"` // Only ever increases
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// CreditTransaction is an immutable ledger entry. Amount is signed:
// positive for credits, negative for debits.
type CreditTransaction struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProfileID  primitive.ObjectID `bson:"profile_id" json:"profile_id"`
	EventID    string             `bson:"event_id,omitempty" json:"event_id,omitempty"` // Optional source event
	Amount     int64              `bson:"amount" json:"amount"`
	Note       string             `bson:"note,omitempty" json:"note,omitempty"` // Set by manual adjustments
	ReceivedAt time.Time          `bson:"received_at" json:"received_at"`
}

// Reward is a catalog item backed by finite inventory.
type Reward struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Item         string             `bson:"item" json:"item"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL     string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Quantity     int64              `bson:"quantity" json:"quantity"`
	DefaultCost  int64              `bson:"default_cost" json:"default_cost"`
	DiscountCost int64              `bson:"discount_cost,omitempty" json:"discount_cost,omitempty"` // 0 means no discount
	ListedAt     time.Time          `bson:"listed_at" json:"listed_at"`
}

// UnitCost returns the effective per-unit redemption cost. A discount
// above the default cost is an invalid catalog entry; creation rejects
// it, but if one ever exists the discount is void.
func (r *Reward) UnitCost() int64 {
	if r.DiscountCost > 0 && r.DiscountCost <= r.DefaultCost {
		return r.DiscountCost
	}
	return r.DefaultCost
}

// RedeemedReward is the receipt of one completed redemption. Reward
// metadata is denormalized for querying so history listings need no join.
type RedeemedReward struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"user_id" json:"user_id"`
	RewardID    primitive.ObjectID `bson:"reward_id" json:"reward_id"`
	Item        string             `bson:"item" json:"item"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Quantity    int64              `bson:"quantity" json:"quantity"`
	TotalCost   int64              `bson:"total_cost" json:"total_cost"`
	RedeemedAt  time.Time          `bson:"redeemed_at" json:"redeemed_at"`
}

// CreateProfileRequest represents the request to provision a rewards profile
type CreateProfileRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

// CreditRequest represents the request to credit a profile
type CreditRequest struct {
	ProfileID string `json:"profile_id" binding:"required"`
	Amount    int64  `json:"amount"`
	EventID   string `json:"event_id"`
}

// AdjustRequest represents a manual balance correction
type AdjustRequest struct {
	ProfileID string `json:"profile_id" binding:"required"`
	Amount    int64  `json:"amount"`
	Note      string `json:"note"`
}

// RedeemRequest represents the request to redeem a reward. A missing
// quantity means one unit; an explicit zero is rejected.
type RedeemRequest struct {
	RewardID  string `json:"reward_id" binding:"required"`
	ProfileID string `json:"profile_id" binding:"required"`
	Quantity  *int64 `json:"quantity"`
}

// CreateRewardRequest represents the request to list a new catalog item
type CreateRewardRequest struct {
	Item         string `json:"item"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	Quantity     int64  `json:"quantity"`
	DefaultCost  int64  `json:"default_cost"`
	DiscountCost *int64 `json:"discount_cost"`
}

// LeaderboardRow is one ranked leaderboard entry
type LeaderboardRow struct {
	Rank           int    `json:"rank"`
	UserID         string `json:"user_id"`
	DisplayName    string `json:"display_name"`
	EarnedCredits  int64  `json:"earned_credits"`
	CurrentCredits int64  `json:"current_credits"`
}
