package main

import (
	"campus-rewards/internal/model"
	"campus-rewards/internal/service"
	apperrors "campus-rewards/pkg/errors"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// createProfileHandler handles POST /api/profiles
func createProfileHandler(svc *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.CreateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
			return
		}

		if _, err := uuid.Parse(req.UserID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "user id must be a UUID"})
			return
		}

		profile, err := svc.CreateProfile(c.Request.Context(), req.UserID, req.DisplayName)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrProfileExists):
				c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "rewards profile already exists"})
			default:
				log.Printf("Create profile error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create profile"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{"ok": true, "profile": profile})
	}
}

// getProfileHandler handles GET /api/profiles/:userId
func getProfileHandler(svc *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		profile, err := svc.GetProfile(c.Request.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrProfileNotFound):
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "rewards profile not found"})
			default:
				log.Printf("Get profile error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to get profile"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "profile": profile})
	}
}

// listTransactionsHandler handles GET /api/profiles/:userId/transactions
func listTransactionsHandler(svc *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")

		profile, err := svc.GetProfile(c.Request.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrProfileNotFound):
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "rewards profile not found"})
			default:
				log.Printf("List transactions error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list transactions"})
			}
			return
		}

		transactions, err := svc.ListTransactions(c.Request.Context(), profile.ID)
		if err != nil {
			log.Printf("List transactions error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list transactions"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "transactions": transactions})
	}
}

// creditHandler handles POST /api/credits
func creditHandler(svc *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.CreditRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
			return
		}

		profileID, err := primitive.ObjectIDFromHex(req.ProfileID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid profile id"})
			return
		}
		if req.EventID != "" {
			if _, err := uuid.Parse(req.EventID); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "event id must be a UUID"})
				return
			}
		}

		if err := svc.Credit(c.Request.Context(), profileID, req.Amount, req.EventID); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidAmount):
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "amount must be a positive integer"})
			case errors.Is(err, apperrors.ErrProfileNotFound):
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "rewards profile not found"})
			default:
				log.Printf("Credit error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to credit profile"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// adjustHandler handles POST /api/credits/adjust (admin only)
func adjustHandler(svc *service.LedgerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.AdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
			return
		}

		profileID, err := primitive.ObjectIDFromHex(req.ProfileID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid profile id"})
			return
		}

		if err := svc.Adjust(c.Request.Context(), profileID, req.Amount, req.Note); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidAmount):
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "amount must be a non-zero integer"})
			case errors.Is(err, apperrors.ErrProfileNotFound):
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "rewards profile not found"})
			case errors.Is(err, apperrors.ErrInsufficientCredits):
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "not enough credits"})
			default:
				log.Printf("Adjust error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to adjust balance"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// createRewardHandler handles POST /api/rewards (admin only)
func createRewardHandler(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.CreateRewardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
			return
		}

		reward, err := svc.CreateReward(c.Request.Context(), &req)
		if err != nil {
			var vErr *apperrors.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": vErr.Message, "field": vErr.Field})
				return
			}
			log.Printf("Create reward error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create reward"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"ok": true, "reward": reward})
	}
}

// listRewardsHandler handles GET /api/rewards
func listRewardsHandler(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rewards, err := svc.ListRewards(c.Request.Context())
		if err != nil {
			log.Printf("List rewards error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list rewards"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "rewards": rewards})
	}
}

// listAvailableRewardsHandler handles GET /api/rewards/available
func listAvailableRewardsHandler(svc *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rewards, err := svc.ListAvailableRewards(c.Request.Context())
		if err != nil {
			log.Printf("List rewards error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list rewards"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "rewards": rewards})
	}
}

// redeemHandler handles POST /api/rewards/redeem
func redeemHandler(svc *service.RedemptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.RedeemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request body"})
			return
		}

		rewardID, err := primitive.ObjectIDFromHex(req.RewardID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid reward id"})
			return
		}
		profileID, err := primitive.ObjectIDFromHex(req.ProfileID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid profile id"})
			return
		}

		quantity := int64(1)
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		receipt, err := svc.Redeem(c.Request.Context(), rewardID, profileID, quantity)
		if err != nil {
			switch {
			case errors.Is(err, apperrors.ErrInvalidQuantity):
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "quantity must be a positive integer"})
			case errors.Is(err, apperrors.ErrRewardUnavailable):
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "reward unavailable"})
			case errors.Is(err, apperrors.ErrInsufficientCredits):
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "not enough credits"})
			case errors.Is(err, apperrors.ErrProfileNotFound):
				c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "rewards profile not found"})
			default:
				log.Printf("Redeem error: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "unable to redeem reward"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "receipt": receipt})
	}
}

// leaderboardHandler handles GET /api/leaderboard
func leaderboardHandler(svc *service.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "limit must be an integer"})
				return
			}
			limit = parsed
		}

		rows, err := svc.Leaderboard(c.Request.Context(), limit)
		if err != nil {
			log.Printf("Leaderboard error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to fetch leaderboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "data": rows})
	}
}

// listRedeemedHandler handles GET /api/users/:userId/redeemed
func listRedeemedHandler(svc *service.LeaderboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userId")
		if _, err := uuid.Parse(userID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "user id must be a UUID"})
			return
		}

		receipts, err := svc.ListRedeemedRewards(c.Request.Context(), userID)
		if err != nil {
			log.Printf("List redeemed error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list redeemed rewards"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ok": true, "redeemed": receipts})
	}
}
