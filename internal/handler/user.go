package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/middleware"
)

// GetMe resolves the authenticated identity to a member profile, creating
// it on first contact.
func (h *Handler) GetMe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	user, err := h.userService.GetOrCreateUser(c.Context(), userID, middleware.GetDisplayName(c), middleware.GetEmail(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load profile",
		})
	}

	return c.JSON(user)
}
