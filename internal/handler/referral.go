package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/middleware"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/service"
)

type ApplyReferralRequest struct {
	Code string `json:"code"`
}

func (h *Handler) GetReferralCode(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	code, err := h.referralSvc.GetCode(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load referral code",
		})
	}

	stats, err := h.referralSvc.GetStats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load referral stats",
		})
	}

	return c.JSON(fiber.Map{
		"code":  code,
		"stats": stats,
	})
}

func (h *Handler) ApplyReferralCode(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req ApplyReferralRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "referral code is required",
		})
	}

	referral, err := h.referralSvc.ApplyCode(c.Context(), userID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReferralCode),
			errors.Is(err, service.ErrSelfReferral),
			errors.Is(err, service.ErrReferralAlreadyExists):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to apply referral code",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"bonus_points": referral.BonusPoints,
	})
}

func (h *Handler) GetReferredUsers(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	users, err := h.referralSvc.GetReferredUsers(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load referred users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}
