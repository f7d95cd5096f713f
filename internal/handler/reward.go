package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/middleware"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/service"
)

func (h *Handler) GetRewards(c *fiber.Ctx) error {
	rewards, err := h.rewardSvc.ListRewards(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load rewards",
		})
	}

	return c.JSON(fiber.Map{
		"rewards": rewards,
	})
}

func (h *Handler) RedeemReward(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	rewardID, err := uuid.Parse(c.Params("reward_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid reward id",
		})
	}

	result, err := h.rewardSvc.Redeem(c.Context(), userID, rewardID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRewardNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "reward not found",
			})
		case errors.Is(err, service.ErrRewardInactive), errors.Is(err, service.ErrTierTooLow):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, repository.ErrInsufficientPoints):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "not enough points for this reward",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to redeem reward",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"reward":         result.Reward,
		"points_balance": result.NewBalance,
	})
}
