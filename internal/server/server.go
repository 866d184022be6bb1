package server

import (
	"log"
	"strings"
	"time"

	"anoa.com/signcollect/internal/config"
	"anoa.com/signcollect/internal/handler"
	"anoa.com/signcollect/internal/middleware"
	"anoa.com/signcollect/internal/repository"
	"anoa.com/signcollect/internal/service"
	"anoa.com/signcollect/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Server {
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	glossRepo := repository.NewGlossRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	mediaStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	var meiliSvc service.MeiliSearchService
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		meiliSvc = service.NewMeiliSearchService(meiliClient)
	}

	authSvc := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authSvc)

	scoreSvc := service.NewScoreService(scoreRepo, userRepo)
	profileSvc := service.NewProfileService(userRepo, scoreSvc)
	profileHandler := handler.NewProfileHandler(profileSvc, scoreSvc)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	videoSvc := service.NewVideoService(videoRepo, glossRepo, scoreRepo, cfg, redisClient)
	videoHandler := handler.NewVideoHandler(videoSvc, mediaStorage)

	reviewSvc := service.NewReviewService(videoRepo, glossRepo, scoreRepo, scoreSvc, notificationSvc, cfg)
	reviewHandler := handler.NewReviewHandler(reviewSvc, scoreSvc)

	bunchSvc := service.NewBunchService(glossRepo, videoRepo, cfg)
	bunchHandler := handler.NewBunchHandler(bunchSvc)

	glossSvc := service.NewGlossService(glossRepo, categoryRepo, scoreRepo, meiliSvc, cfg)
	glossHandler := handler.NewGlossHandler(glossSvc)

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.PUT("/auth/password", authHandler.ChangePassword)

		// Video lifecycle
		protected.POST("/videos", videoHandler.CreateVideos)
		protected.GET("/videos", videoHandler.ListVideos)
		protected.GET("/videos/unreviewed", videoHandler.ListUnreviewed)
		protected.GET("/videos/:uuid", videoHandler.GetVideo)
		protected.GET("/videos/:uuid/score", videoHandler.GetVideoScore)
		protected.POST("/videos/:uuid/upload", videoHandler.Upload)
		protected.POST("/videos/:uuid/review/:action", reviewHandler.Review)

		// Task assignment
		protected.GET("/bunch", bunchHandler.GetBunch)

		// Dictionary
		protected.GET("/glosses", glossHandler.ListGlosses)
		protected.GET("/glosses/:id", glossHandler.GetGloss)
		protected.GET("/categories", glossHandler.GetCategories)

		// Scores
		protected.GET("/scores/legend", reviewHandler.ScoreLegend)
		protected.GET("/leaderboard", profileHandler.GetLeaderboard)
		protected.GET("/profile/me", profileHandler.GetCurrentProfile)

		// Notifications
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/glosses", glossHandler.CreateGloss)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	origins := strings.Split(cfg.AllowedOrigins, ",")

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
