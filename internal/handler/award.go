package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/middleware"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/service"
)

// RateLimitedMessage is part of the documented API contract; clients match
// on it.
const RateLimitedMessage = "Rate limited. Wait 1 minute between chat rewards."

type AwardPointsRequest struct {
	Type     string `json:"type"`
	Points   int64  `json:"points"`
	SourceID string `json:"source_id,omitempty"`
}

// AwardPoints records one points-earning interaction and returns the
// caller's updated standing.
func (h *Handler) AwardPoints(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req AwardPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	result, err := h.awardSvc.Award(c.Context(), userID, service.AwardRequest{
		Type:     req.Type,
		Points:   req.Points,
		SourceID: req.SourceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAction), errors.Is(err, service.ErrInvalidPoints):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, service.ErrRateLimited):
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": RateLimitedMessage,
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record points award",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"points_earned": result.PointsEarned,
		"total_points":  result.TotalPoints,
		"tier":          result.Tier,
		"user_name":     result.DisplayName,
	})
}

// GetPointsHistory returns the caller's ledger, newest first.
func (h *Handler) GetPointsHistory(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	transactions, err := h.awardSvc.GetHistory(c.Context(), userID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load points history",
		})
	}

	return c.JSON(fiber.Map{
		"transactions": transactions,
	})
}
