package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/coverpoint/clubhouse/internal/broker"
	"github.com/coverpoint/clubhouse/internal/config"
	"github.com/coverpoint/clubhouse/internal/database"
	"github.com/coverpoint/clubhouse/internal/handler"
	"github.com/coverpoint/clubhouse/internal/mailer"
	"github.com/coverpoint/clubhouse/internal/middleware"
	"github.com/coverpoint/clubhouse/internal/models"
	"github.com/coverpoint/clubhouse/internal/repository"
	"github.com/coverpoint/clubhouse/internal/service"
	"github.com/coverpoint/clubhouse/internal/uploads"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db := database.Get(cfg)
	database.Migrate(db)
	defer database.Close()

	// Redis backs both the live-event fan-out and the auth rate limiter
	eventBroker, err := broker.NewRedisEventBroker(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis broker: %v", err)
	}
	defer eventBroker.Close()

	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	imageUploader, err := uploads.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("Failed to initialize image uploader: %v", err)
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)

	// Initialize services
	authService := service.NewAuthService(accountRepo, verificationRepo, smtpMailer, cfg.JWTSecret, cfg.JWTExpiry, cfg.ResetCodeTTL)
	rosterService := service.NewRosterService(accountRepo)
	matchService := service.NewMatchService(matchRepo, eventBroker)
	galleryService := service.NewGalleryService(galleryRepo, imageUploader)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	playerHandler := handler.NewPlayerHandler(rosterService)
	matchHandler := handler.NewMatchHandler(matchService)
	galleryHandler := handler.NewGalleryHandler(galleryService)

	liveHandler, err := handler.NewLiveHandler(eventBroker)
	if err != nil {
		log.Fatalf("Failed to start live feed: %v", err)
	}

	rateLimiter := middleware.NewRateLimiter(eventBroker.Client(), middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
	})

	router := setupRouter(cfg, authHandler, playerHandler, matchHandler, galleryHandler, liveHandler, rateLimiter)

	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func setupRouter(
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	playerHandler *handler.PlayerHandler,
	matchHandler *handler.MatchHandler,
	galleryHandler *handler.GalleryHandler,
	liveHandler *handler.LiveHandler,
	rateLimiter *middleware.RateLimiter,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Public auth routes, rate limited
	auth := router.Group("/api/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/verify-code", authHandler.VerifyCode)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	// Public read routes
	api := router.Group("/api")
	{
		api.GET("/players", playerHandler.List)
		api.GET("/players/:username", playerHandler.Get)
		api.POST("/players/:username/like", playerHandler.Like)
		api.GET("/matches", matchHandler.List)
		api.GET("/matches/:id", matchHandler.Get)
		api.GET("/gallery", galleryHandler.List)
		api.POST("/gallery/:id/like", galleryHandler.Like)
		api.GET("/live", liveHandler.HandleLive)
	}

	// Authenticated routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		protected.PATCH("/players/:username", middleware.RequireOwner("username"), playerHandler.Update)
		protected.POST("/gallery", galleryHandler.Upload)
		protected.DELETE("/gallery/:id", galleryHandler.Delete)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/players", playerHandler.ListAll)
		admin.POST("/players/:id/approve", playerHandler.Approve)
		admin.POST("/players/:id/reject", playerHandler.Reject)
		admin.DELETE("/players/:id", playerHandler.Delete)

		admin.POST("/matches", matchHandler.Create)
		admin.PUT("/matches/:id", matchHandler.Update)
		admin.DELETE("/matches/:id", matchHandler.Delete)
		admin.POST("/matches/:id/result", matchHandler.PublishResult)
	}

	return router
}
