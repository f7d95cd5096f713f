package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/middleware"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/service"
)

type CheckInRequest struct {
	Mood string `json:"mood"`
}

type SongRequestBody struct {
	Track  string `json:"track"`
	Artist string `json:"artist"`
}

func (h *Handler) CheckIn(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	err := h.communitySvc.CheckIn(c.Context(), userID, middleware.GetDisplayName(c), req.Mood)
	if err != nil {
		if errors.Is(err, service.ErrMoodTooLong) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to check in",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *Handler) CheckOut(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	if err := h.communitySvc.CheckOut(c.Context(), userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to check out",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}

func (h *Handler) GetActiveMembers(c *fiber.Ctx) error {
	members, err := h.communitySvc.ActiveMembers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load active members",
		})
	}

	return c.JSON(fiber.Map{
		"members": members,
	})
}

func (h *Handler) CreateSongRequest(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req SongRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	songRequest, err := h.communitySvc.RequestSong(c.Context(), userID, req.Track, req.Artist)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTrack) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create song request",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"request": songRequest,
	})
}

func (h *Handler) GetSongRequests(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	requests, err := h.communitySvc.ListSongRequests(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load song requests",
		})
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}
