package server

import (
	"strings"
	"time"

	"github.com/famquest/famquest-backend/internal/bootstrap"
	"github.com/famquest/famquest-backend/internal/config"
	"github.com/famquest/famquest-backend/internal/middleware"
	"github.com/famquest/famquest-backend/internal/scheduler"

	championHttp "github.com/famquest/famquest-backend/internal/modules/champion/delivery/http"
	championRepo "github.com/famquest/famquest-backend/internal/modules/champion/repository"
	championService "github.com/famquest/famquest-backend/internal/modules/champion/service"

	economyHttp "github.com/famquest/famquest-backend/internal/modules/economy/delivery/http"
	economyRepo "github.com/famquest/famquest-backend/internal/modules/economy/repository"
	economyService "github.com/famquest/famquest-backend/internal/modules/economy/service"

	feedHttp "github.com/famquest/famquest-backend/internal/modules/feed/delivery/http"
	feedRepo "github.com/famquest/famquest-backend/internal/modules/feed/repository"
	feedService "github.com/famquest/famquest-backend/internal/modules/feed/service"

	participantRepo "github.com/famquest/famquest-backend/internal/modules/participant/repository"

	rankingHttp "github.com/famquest/famquest-backend/internal/modules/ranking/delivery/http"
	rankingRepo "github.com/famquest/famquest-backend/internal/modules/ranking/repository"
	rankingService "github.com/famquest/famquest-backend/internal/modules/ranking/service"

	rewardHttp "github.com/famquest/famquest-backend/internal/modules/reward/delivery/http"
	rewardRepo "github.com/famquest/famquest-backend/internal/modules/reward/repository"
	rewardService "github.com/famquest/famquest-backend/internal/modules/reward/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	scheduler   *scheduler.Scheduler
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	// Repositories
	participants := participantRepo.NewParticipantRepository(db)
	activity := rankingRepo.NewActivityRepository(db)
	snapshots := rankingRepo.NewSnapshotRepository(db)
	champions := championRepo.NewChampionRepository(db)
	economyR := economyRepo.NewEconomyRepository(db)
	allowances := rewardRepo.NewAllowanceRepository(db)
	feedR := feedRepo.NewFeedRepository(db)

	// Services
	aggregator := rankingService.NewScoreAggregator(activity, time.Now)
	rankingSvc := rankingService.NewRankingService(aggregator, participants, snapshots, redisClient)
	leaderboardHandler := rankingHttp.NewLeaderboardHandler(rankingSvc, participants)

	feedSvc := feedService.NewFeedService(feedR, redisClient)
	feedHandler := feedHttp.NewFeedHandler(feedSvc, participants)

	spinCfg := bootstrap.DefaultSpinConfig()

	championSvc := championService.NewChampionService(champions, rankingSvc, participants, allowances, feedSvc, spinCfg.ChampionDailyGrant, time.Now)
	championHandler := championHttp.NewChampionHandler(championSvc, participants)

	pricing := economyService.DynamicPricingConfig{
		Threshold:      cfg.PricingThreshold,
		MaxCorrection:  cfg.PricingMaxCorrection,
		CorrectionStep: cfg.PricingCorrectionStep,
	}
	economySvc := economyService.NewEconomyService(economyR, pricing, bootstrap.DefaultPointSinks(), time.Now)
	economyHandler := economyHttp.NewEconomyHandler(economySvc, participants)

	rewardSvc := rewardService.NewRewardService(
		allowances,
		participants,
		championSvc,
		economySvc,
		spinCfg,
		bootstrap.DefaultPackConfigs(),
		bootstrap.DefaultCollectibleCatalog(),
		rewardService.NewLockedRand(time.Now().UnixNano()),
		time.Now,
	)
	rewardHandler := rewardHttp.NewRewardHandler(rewardSvc)

	// Weekly champion batch
	weekly := scheduler.New(rankingSvc, championSvc, participants)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(participants, cfg.JWTSecret)

	api := router.Group("/api")

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes (parents only)
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireParent())
		{
			adminGroup.POST("/champions/:family_id/process", championHandler.ProcessChampions)
			adminGroup.GET("/economy/dashboard", economyHandler.GetDashboard)
		}

		// Leaderboard routes
		protected.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		protected.GET("/champions/me", championHandler.GetChampionStatus)

		// Economy routes
		protected.GET("/economy/dashboard", economyHandler.GetDashboard)

		// Family feed
		protected.GET("/feed", feedHandler.GetFeed)

		// Reward routes
		protected.POST("/rewards/spin", rewardHandler.DrawSpin)
		protected.POST("/rewards/packs/:pack_id", rewardHandler.OpenPack)
		protected.GET("/rewards/collection", rewardHandler.GetCollection)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		scheduler:   weekly,
	}
}

// StartScheduler registers and starts the weekly champion batch.
func (s *Server) StartScheduler(cronSpec string) error {
	if err := s.scheduler.Register(cronSpec); err != nil {
		return err
	}
	s.scheduler.Start()
	return nil
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
