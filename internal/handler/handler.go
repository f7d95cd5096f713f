package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/config"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/service"
)

// Pinger reports whether the backing store is reachable. Satisfied by
// *repository.Repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	cfg          *config.Config
	db           Pinger
	userService  *service.UserService
	awardSvc     *service.AwardService
	rewardSvc    *service.RewardService
	referralSvc  *service.ReferralService
	communitySvc *service.CommunityService
}

func New(
	cfg *config.Config,
	db Pinger,
	userService *service.UserService,
	awardSvc *service.AwardService,
	rewardSvc *service.RewardService,
	referralSvc *service.ReferralService,
	communitySvc *service.CommunityService,
) *Handler {
	return &Handler{
		cfg:          cfg,
		db:           db,
		userService:  userService,
		awardSvc:     awardSvc,
		rewardSvc:    rewardSvc,
		referralSvc:  referralSvc,
		communitySvc: communitySvc,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
		})
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
