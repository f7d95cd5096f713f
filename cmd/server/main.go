package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/cache"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/config"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/handler"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/middleware"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/repository"
	"github.com/kurdim12/savvy-loyalty-system-blueprint-sub004/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Connect to redis (community presence)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	presence := cache.NewPresence(rdb, config.PresenceTTL)

	// Create services
	userService := service.NewUserService(repo)
	awardSvc := service.NewAwardService(repo)
	rewardSvc := service.NewRewardService(repo)
	referralSvc := service.NewReferralService(repo, cfg.Loyalty.ReferralBonusPoints)
	communitySvc := service.NewCommunityService(repo, presence)

	// Create handlers
	h := handler.New(cfg, repo, userService, awardSvc, rewardSvc, referralSvc, communitySvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", h.Health)

	// API routes with bearer-token authentication
	api := app.Group("/api", middleware.BearerAuth(cfg))

	// User
	api.Get("/user/me", h.GetMe)

	// Points
	api.Post("/points/award", h.AwardPoints)
	api.Get("/points/history", h.GetPointsHistory)

	// Rewards
	api.Get("/rewards", h.GetRewards)
	api.Post("/rewards/:reward_id/redeem", h.RedeemReward)

	// Referrals
	api.Get("/referral/code", h.GetReferralCode)
	api.Post("/referral/apply", h.ApplyReferralCode)
	api.Get("/referral/users", h.GetReferredUsers)

	// Community hub
	api.Post("/community/checkin", h.CheckIn)
	api.Post("/community/checkout", h.CheckOut)
	api.Get("/community/active", h.GetActiveMembers)
	api.Post("/community/song-request", h.CreateSongRequest)
	api.Get("/community/song-requests", h.GetSongRequests)

	// Start standing reconciliation job
	reconcile := service.NewReconcileWorker(repo, log)
	if err := reconcile.Start(); err != nil {
		log.Fatalf("Failed to start reconcile worker: %v", err)
	}
	defer reconcile.Stop()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Infof("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
